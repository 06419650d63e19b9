package evaluation

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/mock-interviewer/internal/domain"
)

// ErrNegativeTime is returned for a negative time_taken.
var ErrNegativeTime = errors.New("time taken must not be negative")

// Evaluator turns dimension scores into a complete AnswerEvaluation.
type Evaluator struct {
	scorer  DimensionScorer
	weights domain.Weights
	logger  *zap.Logger
}

// NewEvaluator validates the weights. A nil scorer means the heuristic scorer.
func NewEvaluator(scorer DimensionScorer, weights domain.Weights, logger *zap.Logger) (*Evaluator, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if scorer == nil {
		scorer = NewHeuristicScorer()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{scorer: scorer, weights: weights, logger: logger}, nil
}

// Evaluate scores one answer. overall_score is the exact weighted sum of the rounded dimensions.
func (e *Evaluator) Evaluate(q domain.Question, answer string, timeTaken int) (domain.AnswerEvaluation, error) {
	if timeTaken < 0 {
		return domain.AnswerEvaluation{}, fmt.Errorf("evaluating %s: %w", q.ID, ErrNegativeTime)
	}

	dims, notes, err := e.score(ScoreRequest{Question: q, Answer: answer, TimeTaken: timeTaken})
	if err != nil {
		return domain.AnswerEvaluation{}, fmt.Errorf("scoring answer for %s: %w", q.ID, err)
	}
	dims = dims.Clamp()
	dims = domain.Dimensions{
		Accuracy:       domain.Round2(dims.Accuracy),
		Clarity:        domain.Round2(dims.Clarity),
		Depth:          domain.Round2(dims.Depth),
		Relevance:      domain.Round2(dims.Relevance),
		TimeEfficiency: domain.Round2(dims.TimeEfficiency),
	}

	covered, missed := splitConcepts(analyze(answer), q.ExpectedConcepts)

	eval := domain.AnswerEvaluation{
		QuestionID:          q.ID,
		SkillArea:           q.SkillArea,
		Difficulty:          q.Difficulty,
		AnswerText:          answer,
		TimeTaken:           timeTaken,
		Scores:              dims,
		OverallScore:        e.weights.Apply(dims),
		Feedback:            feedbackText(dims),
		KeyPointsCovered:    covered,
		MissedConcepts:      missed,
		Strengths:           strengths(dims),
		AreasForImprovement: improvements(dims, missed, timeTaken, q.TimeLimit),
	}

	if notes != nil {
		applyNotes(&eval, notes)
	}

	e.logger.Debug("answer evaluated",
		zap.String("question_id", q.ID),
		zap.Float64("overall_score", eval.OverallScore),
		zap.Float64("accuracy", dims.Accuracy),
		zap.Float64("clarity", dims.Clarity),
		zap.Float64("depth", dims.Depth),
		zap.Float64("relevance", dims.Relevance),
		zap.Float64("time_efficiency", dims.TimeEfficiency),
	)

	return eval, nil
}

func (e *Evaluator) score(req ScoreRequest) (domain.Dimensions, *Notes, error) {
	if ns, ok := e.scorer.(NotingScorer); ok {
		return ns.ScoreWithNotes(req)
	}
	dims, err := e.scorer.Score(req)
	return dims, nil, err
}

// applyNotes replaces the generated commentary with the scorer's where it has any.
// Missed concepts stay in the improvements.
func applyNotes(eval *domain.AnswerEvaluation, notes *Notes) {
	if fb := strings.TrimSpace(notes.Feedback); fb != "" {
		eval.Feedback = fb
	}
	if len(notes.Strengths) > 0 {
		eval.Strengths = slices.Clone(notes.Strengths)
	}
	if len(notes.Improvements) > 0 {
		improvements := slices.Clone(notes.Improvements)
		if len(eval.MissedConcepts) > 0 {
			improvements = append(improvements, missingConceptsLine(eval.MissedConcepts))
		}
		eval.AreasForImprovement = improvements
	}
}

// Weights returns the configured evaluation weights.
func (e *Evaluator) Weights() domain.Weights {
	return e.weights
}
