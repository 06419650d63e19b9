package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/mock-interviewer/internal/domain"
)

func TestSampleIsValid(t *testing.T) {
	t.Parallel()

	doc := Sample()
	assert.Equal(t, "John Smith", doc.Candidate.Name)
	assert.Equal(t, "Senior Software Engineer - Backend", doc.Job.Title)

	gaps := domain.SkillGaps(doc.Candidate, doc.Job)
	assert.Contains(t, gaps, "kafka")
	assert.NotContains(t, gaps, "python")

	doc.Candidate.Name = "changed"
	assert.Equal(t, "John Smith", Sample().Candidate.Name, "every call returns a fresh copy")
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
candidate:
  name: Jane Doe
  skills: [python, sql]
  experience_years: 4
job:
  title: Backend Engineer
  required_skills: [python, docker, kubernetes]
`), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"docker", "kubernetes"}, domain.SkillGaps(doc.Candidate, doc.Job))
}

func TestParseRejectsMalformedDocuments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		validation bool
	}{
		{name: "empty", input: ""},
		{name: "unknown key", input: "candidate:\n  name: x\n  hobbies: [chess]\n"},
		{name: "missing job", input: "candidate:\n  name: x\n  skills: [go]\n", validation: true},
		{name: "candidate without skills", input: "candidate:\n  name: x\njob:\n  title: y\n  required_skills: [go]\n", validation: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.input))
			require.Error(t, err)

			var vErr *domain.ValidationError
			assert.Equal(t, tt.validation, errors.As(err, &vErr))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
