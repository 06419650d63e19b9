package interview

import (
	"go.uber.org/zap"

	"github.com/spigell/mock-interviewer/internal/domain"
)

// Adapter regenerates a question for a new difficulty.
type Adapter interface {
	Adapt(currentScore float64, next domain.Question) (domain.Question, error)
}

// DifficultyController decides the difficulty of the next unanswered question.
type DifficultyController struct {
	adapter Adapter
	logger  *zap.Logger
}

func NewDifficultyController(adapter Adapter, logger *zap.Logger) *DifficultyController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DifficultyController{adapter: adapter, logger: logger}
}

// Next returns next adapted to the score of the answer just given.
func (c *DifficultyController) Next(score float64, next domain.Question) (domain.Question, error) {
	adapted, err := c.adapter.Adapt(score, next)
	if err != nil {
		return domain.Question{}, err
	}
	if adapted.Difficulty != next.Difficulty {
		c.logger.Info("difficulty adjusted",
			zap.Stringer("from", next.Difficulty),
			zap.Stringer("to", adapted.Difficulty),
			zap.Float64("score", score),
		)
	}
	return adapted, nil
}

// TerminationMonitor ends an interview when the rolling average drops below the threshold.
type TerminationMonitor struct {
	threshold float64
	window    int
}

func NewTerminationMonitor(threshold float64, window int) *TerminationMonitor {
	return &TerminationMonitor{threshold: threshold, window: window}
}

// ShouldTerminate reports whether the mean of the last window overall scores is
// below the threshold. It never fires before window evaluations exist.
func (m *TerminationMonitor) ShouldTerminate(history []domain.AnswerEvaluation) (bool, float64) {
	if len(history) < m.window {
		return false, 0
	}
	sum := 0.0
	for _, e := range history[len(history)-m.window:] {
		sum += e.OverallScore
	}
	avg := sum / float64(m.window)
	return avg < m.threshold, avg
}
