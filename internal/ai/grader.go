package ai

import (
	"context"

	"github.com/spigell/mock-interviewer/internal/domain"
)

// GradeRequest is the question and answer sent to a model-backed grader.
type GradeRequest struct {
	Question domain.Question
	Answer   string
}

// Grade is the model's verdict. Scores are within [0, 100].
type Grade struct {
	Accuracy     float64
	Clarity      float64
	Depth        float64
	Relevance    float64
	Feedback     string
	Strengths    []string
	Improvements []string
	Raw          string
}

// Grader scores answers with an external language model.
type Grader interface {
	Grade(ctx context.Context, req GradeRequest) (*Grade, error)
}
