package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/mock-interviewer/internal/ai"
	"github.com/spigell/mock-interviewer/internal/domain"
)

type stubGenerator struct {
	response string
	err      error
	system   string
	message  string
}

func (s *stubGenerator) GenerateContent(_ context.Context, system, message string) (string, error) {
	s.system = system
	s.message = message
	return s.response, s.err
}

func (s *stubGenerator) Model() string { return "stub" }

func sampleRequest() ai.GradeRequest {
	return ai.GradeRequest{
		Question: domain.Question{
			ID:                "q-1-technical-easy",
			Text:              "What is Docker?",
			SkillArea:         domain.Technical,
			Difficulty:        domain.Easy,
			ExpectedConcepts:  []string{"containers", "images"},
			IdealAnswerPoints: []string{"Explain isolation"},
		},
		Answer: "Docker runs containers built from images.",
	}
}

func TestGraderParsesFencedResponse(t *testing.T) {
	gen := &stubGenerator{response: "```json\n{\"accuracy_score\": 85, \"clarity_score\": \"70\", \"depth_score\": 120, \"relevance_score\": -5, \"overall_feedback\": \" solid \", \"strengths\": [\"concise\"], \"areas_for_improvement\": [\"examples\"]}\n```"}
	grader := NewGrader(gen, zap.NewNop(), 0)

	grade, err := grader.Grade(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if grade.Accuracy != 85 || grade.Clarity != 70 {
		t.Fatalf("unexpected scores: %+v", grade)
	}
	if grade.Depth != 100 || grade.Relevance != 0 {
		t.Fatalf("expected scores to be clamped, got %+v", grade)
	}
	if grade.Feedback != "solid" {
		t.Fatalf("unexpected feedback: %q", grade.Feedback)
	}
	if len(grade.Strengths) != 1 || len(grade.Improvements) != 1 {
		t.Fatalf("unexpected lists: %+v", grade)
	}
	if grade.Raw != gen.response {
		t.Fatalf("expected raw response to be kept")
	}
}

func TestGraderBuildsPrompt(t *testing.T) {
	gen := &stubGenerator{response: `{"accuracy_score": 1, "clarity_score": 1, "depth_score": 1, "relevance_score": 1}`}
	grader := NewGrader(gen, nil, 0)

	if _, err := grader.Grade(context.Background(), sampleRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gen.system != systemInstruction {
		t.Fatalf("unexpected system instruction: %q", gen.system)
	}
	for _, want := range []string{"What is Docker?", "technical", "easy", "- containers", "- Explain isolation", "Docker runs containers"} {
		if !strings.Contains(gen.message, want) {
			t.Fatalf("prompt is missing %q:\n%s", want, gen.message)
		}
	}
	if strings.Contains(gen.message, "{{") {
		t.Fatalf("prompt has unresolved placeholders:\n%s", gen.message)
	}
}

func TestGraderRejectsIncompleteResponse(t *testing.T) {
	gen := &stubGenerator{response: `{"accuracy_score": 90, "clarity_score": 80}`}
	grader := NewGrader(gen, nil, 0)

	_, err := grader.Grade(context.Background(), sampleRequest())
	if err == nil {
		t.Fatal("expected error for missing scores")
	}
	if !strings.Contains(err.Error(), "depth_score") || !strings.Contains(err.Error(), "relevance_score") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGraderPropagatesGeneratorError(t *testing.T) {
	boom := errors.New("boom")
	grader := NewGrader(&stubGenerator{err: boom}, nil, 0)

	if _, err := grader.Grade(context.Background(), sampleRequest()); !errors.Is(err, boom) {
		t.Fatalf("expected generator error, got %v", err)
	}
}

func TestExtractJSON(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":               "{\"a\":1}",
		"```json\n{\"a\":1}\n```": "{\"a\":1}",
		"```\n{\"a\":1}```":       "{\"a\":1}",
		"  `{\"a\":1}`  ":         "{\"a\":1}",
	}
	for input, want := range cases {
		if got := extractJSON(input); got != want {
			t.Fatalf("extractJSON(%q) = %q, want %q", input, got, want)
		}
	}
}
