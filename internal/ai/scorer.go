package ai

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/mock-interviewer/internal/domain"
	"github.com/spigell/mock-interviewer/internal/evaluation"
)

// Scorer adapts a Grader to evaluation.DimensionScorer. Time efficiency is
// always computed locally. When the grader fails the fallback scorer is used.
type Scorer struct {
	ctx      context.Context
	grader   Grader
	fallback evaluation.DimensionScorer
	timeout  time.Duration
	logger   *zap.Logger
}

// NewScorer binds the grader to ctx; every model call is limited by timeout when positive.
// A nil fallback means the heuristic scorer.
func NewScorer(ctx context.Context, grader Grader, fallback evaluation.DimensionScorer, timeout time.Duration, logger *zap.Logger) *Scorer {
	if fallback == nil {
		fallback = evaluation.NewHeuristicScorer()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{ctx: ctx, grader: grader, fallback: fallback, timeout: timeout, logger: logger}
}

func (s *Scorer) Score(req evaluation.ScoreRequest) (domain.Dimensions, error) {
	dims, _, err := s.ScoreWithNotes(req)
	return dims, err
}

// ScoreWithNotes also returns the model's commentary. Heuristic fallback scores carry no notes.
func (s *Scorer) ScoreWithNotes(req evaluation.ScoreRequest) (domain.Dimensions, *evaluation.Notes, error) {
	ctx := s.ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	grade, err := s.grader.Grade(ctx, GradeRequest{Question: req.Question, Answer: req.Answer})
	if err != nil {
		s.logger.Warn("model grading failed, using heuristic scores",
			zap.String("question_id", req.Question.ID),
			zap.Error(err),
		)
		dims, err := s.fallback.Score(req)
		return dims, nil, err
	}

	s.logger.Debug("answer graded by model",
		zap.String("question_id", req.Question.ID),
		zap.Int("strengths", len(grade.Strengths)),
		zap.Int("improvements", len(grade.Improvements)),
	)

	notes := &evaluation.Notes{
		Feedback:     grade.Feedback,
		Strengths:    grade.Strengths,
		Improvements: grade.Improvements,
	}

	return domain.Dimensions{
		Accuracy:       grade.Accuracy,
		Clarity:        grade.Clarity,
		Depth:          grade.Depth,
		Relevance:      grade.Relevance,
		TimeEfficiency: evaluation.TimeEfficiency(req.TimeTaken, req.Question.TimeLimit),
	}, notes, nil
}
