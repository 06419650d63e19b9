package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spigell/mock-interviewer/internal/domain"
	"github.com/spigell/mock-interviewer/internal/evaluation"
)

type stubGrader struct {
	grade    *Grade
	err      error
	deadline bool
}

func (s *stubGrader) Grade(ctx context.Context, _ GradeRequest) (*Grade, error) {
	_, s.deadline = ctx.Deadline()
	return s.grade, s.err
}

func TestScorerUsesGrade(t *testing.T) {
	t.Parallel()

	grader := &stubGrader{grade: &Grade{Accuracy: 90, Clarity: 80, Depth: 70, Relevance: 60}}
	scorer := NewScorer(context.Background(), grader, nil, time.Minute, nil)

	dims, err := scorer.Score(evaluation.ScoreRequest{
		Question:  domain.Question{ID: "q", TimeLimit: 100},
		Answer:    "answer",
		TimeTaken: 80,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := domain.Dimensions{Accuracy: 90, Clarity: 80, Depth: 70, Relevance: 60, TimeEfficiency: 100}
	if dims != want {
		t.Fatalf("expected %+v, got %+v", want, dims)
	}
	if !grader.deadline {
		t.Fatalf("expected the grading context to carry a deadline")
	}
}

func TestScorerReturnsModelNotes(t *testing.T) {
	t.Parallel()

	grader := &stubGrader{grade: &Grade{
		Accuracy:     50,
		Clarity:      50,
		Depth:        50,
		Relevance:    50,
		Feedback:     "Solid start.",
		Strengths:    []string{"Clear example"},
		Improvements: []string{"Discuss trade-offs"},
	}}
	scorer := NewScorer(context.Background(), grader, nil, 0, nil)

	_, notes, err := scorer.ScoreWithNotes(evaluation.ScoreRequest{Question: domain.Question{ID: "q", TimeLimit: 100}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notes == nil || notes.Feedback != "Solid start." {
		t.Fatalf("expected model feedback, got %+v", notes)
	}
	if len(notes.Strengths) != 1 || len(notes.Improvements) != 1 || notes.Improvements[0] != "Discuss trade-offs" {
		t.Fatalf("unexpected notes: %+v", notes)
	}

	evaluator, err := evaluation.NewEvaluator(scorer, domain.DefaultWeights(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	eval, err := evaluator.Evaluate(domain.Question{ID: "q", TimeLimit: 100}, "answer", 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval.Feedback != "Solid start." || eval.Strengths[0] != "Clear example" {
		t.Fatalf("expected the evaluation to carry model notes, got %+v", eval)
	}
}

func TestScorerFallsBackOnError(t *testing.T) {
	t.Parallel()

	fallback := evaluation.ScorerFunc(func(evaluation.ScoreRequest) (domain.Dimensions, error) {
		return domain.Dimensions{Accuracy: 1, Clarity: 2, Depth: 3, Relevance: 4, TimeEfficiency: 5}, nil
	})
	scorer := NewScorer(context.Background(), &stubGrader{err: errors.New("quota")}, fallback, 0, nil)

	dims, notes, err := scorer.ScoreWithNotes(evaluation.ScoreRequest{Question: domain.Question{ID: "q", TimeLimit: 100}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dims.Accuracy != 1 || dims.TimeEfficiency != 5 {
		t.Fatalf("expected fallback scores, got %+v", dims)
	}
	if notes != nil {
		t.Fatalf("expected no notes from the fallback, got %+v", notes)
	}
}
