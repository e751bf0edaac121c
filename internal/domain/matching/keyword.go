package matching

import (
	"errors"
	"math"
	"regexp"
	"strings"
)

// ErrInvalidInput is returned when the job description is missing or blank.
var ErrInvalidInput = errors.New("job description is required")

const (
	// MissingKeywordsListed caps how many missing keywords the first suggestion names.
	MissingKeywordsListed = 12
	// MinMatchedKeywords is the matched count below which the "add skills" suggestion fires.
	MinMatchedKeywords = 5
)

const (
	suggestMissingPrefix = "Your resume is missing important keywords from the job description: "
	suggestMoreSkills    = "Highlight more relevant technical skills and project details to improve ATS score."
	suggestExperience    = "Add an 'Experience' section with metrics and achievements."
	suggestProjects      = "Include a 'Projects' section with tech stack and outcomes."
)

// Runs of three or more ASCII letters bounded by non-word characters. "python3" yields nothing.
var keywordPattern = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)

// stopWords are filler words dropped from job-description keywords. Entries are lowercase and
// the map is never written after init.
var stopWords = map[string]struct{}{
	"and": {}, "the": {}, "with": {}, "your": {}, "that": {}, "from": {}, "for": {}, "you": {}, "are": {}, "will": {},
	"this": {}, "have": {}, "but": {}, "not": {}, "all": {}, "any": {}, "job": {}, "role": {}, "who": {}, "our": {},
	"in": {}, "on": {}, "is": {}, "of": {}, "as": {}, "by": {}, "be": {}, "or": {}, "to": {}, "a": {},
}

// KeywordResult is the outcome of one resume check. Matched and Missing partition the
// job-description keywords in first-occurrence order; Score is the matched percentage.
type KeywordResult struct {
	Score         int
	Matched       []string
	Missing       []string
	Suggestions   []string
	TotalKeywords int
}

// isStopWord expects a lowercased token.
func isStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// ExtractKeywords returns the deduplicated, stop-word-filtered keywords of text in first-occurrence order.
func ExtractKeywords(text string) []string {
	tokens := keywordPattern.FindAllString(strings.ToLower(text), -1)

	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if isStopWord(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Match scores resumeText against the keywords of jobDescription.
// A keyword counts as matched when it occurs anywhere in the resume, including inside longer words.
func Match(resumeText, jobDescription string) (KeywordResult, error) {
	jd := strings.TrimSpace(jobDescription)
	if jd == "" {
		return KeywordResult{}, ErrInvalidInput
	}

	resume := strings.ToLower(resumeText)
	jd = strings.ToLower(jd)

	keywords := ExtractKeywords(jd)

	matched := make([]string, 0, len(keywords))
	missing := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if strings.Contains(resume, k) {
			matched = append(matched, k)
		} else {
			missing = append(missing, k)
		}
	}

	suggestions := make([]string, 0, 4)
	if len(missing) > 0 {
		listed := missing
		if len(listed) > MissingKeywordsListed {
			listed = listed[:MissingKeywordsListed]
		}
		suggestions = append(suggestions, suggestMissingPrefix+strings.Join(listed, ", "))
	}
	if len(matched) < MinMatchedKeywords {
		suggestions = append(suggestions, suggestMoreSkills)
	}
	if strings.Contains(jd, "experience") && !strings.Contains(resume, "experience") {
		suggestions = append(suggestions, suggestExperience)
	}
	if !strings.Contains(resume, "projects") {
		suggestions = append(suggestions, suggestProjects)
	}

	return KeywordResult{
		Score:         score(len(matched), len(keywords)),
		Matched:       matched,
		Missing:       missing,
		Suggestions:   suggestions,
		TotalKeywords: len(keywords),
	}, nil
}

// score is the matched percentage with halves rounded up; 0 when there is nothing to match.
func score(matched, total int) int {
	if total <= 0 {
		return 0
	}
	s := int(math.Floor(float64(matched)/float64(total)*100 + 0.5))
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
