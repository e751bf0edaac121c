package matching

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_BlankJobDescription(t *testing.T) {
	for _, jd := range []string{"", "   ", "\n\t"} {
		_, err := Match("some resume", jd)
		assert.ErrorIs(t, err, ErrInvalidInput, "jd=%q", jd)
	}
}

func TestMatch_MixedResume(t *testing.T) {
	res, err := Match(
		"I have experience in python and projects using sql",
		"We need a developer with Python and SQL experience and strong projects",
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"python", "sql", "experience", "projects"}, res.Matched)
	assert.Equal(t, []string{"need", "developer", "strong"}, res.Missing)
	assert.Equal(t, 7, res.TotalKeywords)
	assert.Equal(t, 57, res.Score)
	assert.Equal(t, []string{
		"Your resume is missing important keywords from the job description: need, developer, strong",
		"Highlight more relevant technical skills and project details to improve ATS score.",
	}, res.Suggestions)
}

func TestMatch_NothingMatched(t *testing.T) {
	res, err := Match("Basic web development", "Must know Kubernetes and Docker")
	require.NoError(t, err)

	assert.Empty(t, res.Matched)
	assert.NotNil(t, res.Matched)
	assert.Equal(t, []string{"must", "know", "kubernetes", "docker"}, res.Missing)
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, []string{
		"Your resume is missing important keywords from the job description: must, know, kubernetes, docker",
		"Highlight more relevant technical skills and project details to improve ATS score.",
		"Include a 'Projects' section with tech stack and outcomes.",
	}, res.Suggestions)
}

func TestMatch_AllStopWords(t *testing.T) {
	res, err := Match("anything", "the and for with")
	require.NoError(t, err)

	assert.Equal(t, 0, res.TotalKeywords)
	assert.Equal(t, 0, res.Score)
	assert.Empty(t, res.Matched)
	assert.Empty(t, res.Missing)
	assert.Equal(t, []string{
		"Highlight more relevant technical skills and project details to improve ATS score.",
		"Include a 'Projects' section with tech stack and outcomes.",
	}, res.Suggestions)
}

func TestMatch_FullMatch(t *testing.T) {
	res, err := Match("Python developer. Projects and experience listed.", "Python Developer")
	require.NoError(t, err)

	assert.Equal(t, 100, res.Score)
	assert.Empty(t, res.Missing)
	assert.Equal(t, []string{suggestMoreSkills}, res.Suggestions)
}

func TestMatch_ExperienceSuggestion(t *testing.T) {
	res, err := Match("projects", "Experience with Golang")
	require.NoError(t, err)
	assert.Contains(t, res.Suggestions, suggestExperience)

	res, err = Match("projects and experience", "Experience with Golang")
	require.NoError(t, err)
	assert.NotContains(t, res.Suggestions, suggestExperience)
}

func TestMatch_SubstringContainment(t *testing.T) {
	res, err := Match("testing frameworks", "test")
	require.NoError(t, err)
	assert.Equal(t, []string{"test"}, res.Matched)

	res, err = Match("test", "testing")
	require.NoError(t, err)
	assert.Equal(t, []string{"testing"}, res.Missing)
}

func TestMatch_EmptyResume(t *testing.T) {
	res, err := Match("", "Golang Kafka")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, []string{"golang", "kafka"}, res.Missing)
}

func TestMatch_MissingListCappedAtTwelve(t *testing.T) {
	words := []string{
		"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf",
		"hotel", "india", "juliet", "kilo", "lima", "mike", "november",
	}
	res, err := Match("", strings.Join(words, " "))
	require.NoError(t, err)

	require.Len(t, res.Missing, len(words))
	assert.Equal(t, suggestMissingPrefix+strings.Join(words[:12], ", "), res.Suggestions[0])
}

func TestMatch_Rounding(t *testing.T) {
	tests := []struct {
		name   string
		resume string
		jd     string
		want   int
	}{
		{name: "one of eight rounds half up", resume: "alpha", jd: "alpha bravo charlie delta echo foxtrot golf hotel", want: 13},
		{name: "one of three", resume: "alpha", jd: "alpha bravo charlie", want: 33},
		{name: "two of three", resume: "alpha bravo", jd: "alpha bravo charlie", want: 67},
		{name: "one of two", resume: "alpha", jd: "alpha bravo", want: 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Match(tt.resume, tt.jd)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Score)
		})
	}
}

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "dedupe keeps first occurrence", in: "Go Golang golang GOLANG rust Rust", want: []string{"golang", "rust"}},
		{name: "digits and underscores break words", in: "python3 go_lang node.js abc", want: []string{"node", "abc"}},
		{name: "short words dropped", in: "c++ is ok", want: []string{}},
		{name: "stop words dropped", in: "you will work with our team", want: []string{"work", "team"}},
		{name: "stop words dropped in any case", in: "YOU Will WORK With OUR Team", want: []string{"work", "team"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractKeywords(tt.in))
		})
	}
}

func TestMatch_Invariants(t *testing.T) {
	inputs := [][2]string{
		{"go redis postgres kafka", "We want Go, Redis, Postgres, Kafka and Kubernetes skills for this role"},
		{"", "Data engineer with Spark and Airflow experience"},
		{"the and with your", "the and with your job role"},
	}
	for _, in := range inputs {
		res, err := Match(in[0], in[1])
		require.NoError(t, err)

		assert.Equal(t, res.TotalKeywords, len(res.Matched)+len(res.Missing))
		assert.GreaterOrEqual(t, res.Score, 0)
		assert.LessOrEqual(t, res.Score, 100)

		seen := map[string]bool{}
		for _, k := range res.Matched {
			seen[k] = true
			assert.False(t, isStopWord(k))
		}
		for _, k := range res.Missing {
			assert.False(t, seen[k], "keyword %q in both sets", k)
			assert.False(t, isStopWord(k))
		}
	}
}

func TestMatch_DeterministicUnderConcurrency(t *testing.T) {
	resume := "Built projects in Go and Python with experience in Docker"
	jd := "Looking for Go, Python, Docker and Kubernetes experience"

	want, err := Match(resume, jd)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]KeywordResult, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Match(resume, jd)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
