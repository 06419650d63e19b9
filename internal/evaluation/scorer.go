package evaluation

import "github.com/spigell/mock-interviewer/internal/domain"

// ScoreRequest is the input of a dimension scorer.
type ScoreRequest struct {
	Question  domain.Question
	Answer    string
	TimeTaken int
}

// DimensionScorer produces the five dimension scores of one answer.
// The local heuristic and model-backed graders both implement it.
type DimensionScorer interface {
	Score(req ScoreRequest) (domain.Dimensions, error)
}

// ScorerFunc adapts a function to DimensionScorer.
type ScorerFunc func(req ScoreRequest) (domain.Dimensions, error)

func (f ScorerFunc) Score(req ScoreRequest) (domain.Dimensions, error) {
	return f(req)
}

// Notes is commentary a scorer attaches to its scores.
type Notes struct {
	Feedback     string
	Strengths    []string
	Improvements []string
}

// NotingScorer is a DimensionScorer that can also comment on the answer.
// Nil notes mean the evaluator writes its own.
type NotingScorer interface {
	DimensionScorer
	ScoreWithNotes(req ScoreRequest) (domain.Dimensions, *Notes, error)
}
