package report

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/mock-interviewer/internal/domain"
)

func sampleScore() domain.InterviewScore {
	return domain.InterviewScore{
		Candidate:       "Jane Doe",
		JobTitle:        "Backend Engineer",
		TotalScore:      72.456,
		Readiness:       domain.ReadinessAverage,
		HiringReadiness: domain.HiringNeedsDevelopment,
		RoleFit:         66.67,
		SkillAreaScores: map[domain.SkillArea]domain.AreaScore{
			domain.Technical:      {Area: domain.Technical, Score: 80, Questions: 2, Tested: true},
			domain.ProblemSolving: {Area: domain.ProblemSolving, Score: 55, Questions: 1, Tested: true},
			domain.Behavioral:     {Area: domain.Behavioral},
		},
		Strengths:            []string{"Strong technical skills"},
		TechnicalDepth:       78.5,
		TechnicalDepthTested: true,
		ActionableFeedback:   []string{"Keep practicing"},
		CompletionPercentage: 60,
		QuestionsAnswered:    3,
		TotalQuestions:       5,
		EarlyTermination:     true,
	}
}

func TestWrite(t *testing.T) {
	t.Parallel()

	history := []domain.AnswerEvaluation{{
		SkillArea:    domain.ProblemSolving,
		Difficulty:   domain.Medium,
		OverallScore: 55,
		Scores:       domain.Dimensions{Accuracy: 60, Clarity: 50, Depth: 40, Relevance: 70, TimeEfficiency: 100},
	}}

	var out strings.Builder
	require.NoError(t, Write(&out, Data{Score: sampleScore(), History: history, Duration: 95 * time.Second}))
	text := out.String()

	for _, want := range []string{
		"MOCK INTERVIEW REPORT",
		"Final Score:             72.46/100",
		"Technical:               80/100 (2 questions)",
		"Problem Solving:         55/100 (1 question)",
		"Behavioral:              no data",
		"System Design:           no data",
		"Ended Early:             yes",
		"Technical Depth:         78.5/100",
		"Duration:                1m35s",
		"✓ Strong technical skills",
		"• Keep practicing",
		"Question 1 (Problem Solving, medium): 55/100",
		"Accuracy: 60 | Clarity: 50 | Depth: 40 | Relevance: 70 | Time Management: 100",
	} {
		assert.Contains(t, text, want)
	}
	assert.NotContains(t, text, "AREAS FOR IMPROVEMENT", "empty sections are omitted")
}

func TestWriteMarksUntestedTechnicalDepth(t *testing.T) {
	t.Parallel()

	score := sampleScore()
	score.TechnicalDepth = 0
	score.TechnicalDepthTested = false

	var out strings.Builder
	require.NoError(t, Write(&out, Data{Score: score}))

	assert.Contains(t, out.String(), "Technical Depth:         no data")
	assert.NotContains(t, out.String(), "Technical Depth:         0/100")
}

func TestWriteEvaluation(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	require.NoError(t, WriteEvaluation(&out, domain.AnswerEvaluation{
		OverallScore:        41.5,
		Feedback:            "Accuracy: Fair - Room for improvement.",
		AreasForImprovement: []string{"Missing key concepts: caching"},
	}))

	text := out.String()
	assert.Contains(t, text, "Overall Score:           41.5/100")
	assert.Contains(t, text, "Time Management:")
	assert.Contains(t, text, "✗ Missing key concepts: caching")
	assert.NotContains(t, text, "Strengths:")
}

func TestAreaLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "System Design", AreaLabel(domain.SystemDesign))
	assert.Equal(t, "Technical", AreaLabel(domain.Technical))
}

func TestDumpToTmpFile(t *testing.T) {
	t.Parallel()

	name, err := DumpToTmpFile(sampleScore(), "interview_score_*.json")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(name) })

	data, err := os.ReadFile(name)
	require.NoError(t, err)

	var decoded domain.InterviewScore
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Jane Doe", decoded.Candidate)
	assert.Equal(t, domain.HiringNeedsDevelopment, decoded.HiringReadiness)
}
