package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"placement-prep/internal/domain/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Text(t *testing.T) {
	res, err := matching.Match("Basic web development", "Must know Kubernetes and Docker")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, render(&buf, res, false))
	out := buf.String()
	assert.Contains(t, out, "Score: 0% (0 of 4 keywords)")
	assert.Contains(t, out, "Matched: -")
	assert.Contains(t, out, "Missing: must, know, kubernetes, docker")
	assert.Contains(t, out, "  - Include a 'Projects' section with tech stack and outcomes.")
}

func TestRun_JSONFromFiles(t *testing.T) {
	dir := t.TempDir()
	resume := filepath.Join(dir, "resume.txt")
	jd := filepath.Join(dir, "jd.txt")
	require.NoError(t, os.WriteFile(resume, []byte("Python developer. Projects and experience listed."), 0o600))
	require.NoError(t, os.WriteFile(jd, []byte("Python Developer"), 0o600))

	resumePath, jdPath, jdText, asJSON = resume, jd, "", true
	t.Cleanup(func() { resumePath, jdPath, jdText, asJSON = "", "", "", false })

	var buf bytes.Buffer
	require.NoError(t, run(&buf))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.EqualValues(t, 100, got["score"])
	assert.EqualValues(t, 2, got["totalKeywords"])
	assert.Equal(t, []any{}, got["missing"])
}

func TestRun_UnsupportedResume(t *testing.T) {
	dir := t.TempDir()
	resume := filepath.Join(dir, "resume.png")
	require.NoError(t, os.WriteFile(resume, []byte("x"), 0o600))

	resumePath, jdPath, jdText, asJSON = resume, "", "Go developer", false
	t.Cleanup(func() { resumePath, jdPath, jdText, asJSON = "", "", "", false })

	assert.Error(t, run(&bytes.Buffer{}))
}
