package config

import (
	"fmt"

	"github.com/spigell/mock-interviewer/internal/domain"
)

const (
	// MinTerminationWindow is the fewest answers the termination monitor looks at.
	MinTerminationWindow = 3
)

// TimeLimits maps every difficulty to its answer time limit in seconds.
type TimeLimits struct {
	Easy   int `mapstructure:"easy" json:"easy"`
	Medium int `mapstructure:"medium" json:"medium"`
	Hard   int `mapstructure:"hard" json:"hard"`
}

// For returns the limit configured for the difficulty.
func (t TimeLimits) For(d domain.Difficulty) int {
	switch d {
	case domain.Easy:
		return t.Easy
	case domain.Medium:
		return t.Medium
	default:
		return t.Hard
	}
}

// Interview is the configuration injected into every interview session.
type Interview struct {
	MaxQuestions              int            `mapstructure:"max-questions"`
	TimeLimits                TimeLimits     `mapstructure:"time-limits"`
	Weights                   domain.Weights `mapstructure:"weights"`
	EarlyTerminationThreshold float64        `mapstructure:"early-termination-threshold"`
	TerminationWindow         int            `mapstructure:"termination-window"`
	PassingThreshold          float64        `mapstructure:"passing-threshold"`
	EscalateThreshold         float64        `mapstructure:"escalate-threshold"`
	DeescalateThreshold       float64        `mapstructure:"deescalate-threshold"`
	CompletionPenalty         float64        `mapstructure:"completion-penalty"`
	Seed                      uint64         `mapstructure:"seed"`
}

// Default returns the stock interview configuration.
func Default() Interview {
	return Interview{
		MaxQuestions:              5,
		TimeLimits:                TimeLimits{Easy: 120, Medium: 180, Hard: 240},
		Weights:                   domain.DefaultWeights(),
		EarlyTerminationThreshold: 40,
		TerminationWindow:         MinTerminationWindow,
		PassingThreshold:          60,
		EscalateThreshold:         80,
		DeescalateThreshold:       50,
		CompletionPenalty:         0.9,
	}
}

// Validate reports the first inconsistent setting.
func (c Interview) Validate() error {
	if c.MaxQuestions <= 0 {
		return fmt.Errorf("max-questions must be positive, got %d", c.MaxQuestions)
	}
	for _, d := range domain.Difficulties() {
		if c.TimeLimits.For(d) <= 0 {
			return fmt.Errorf("time limit for %s must be positive, got %d", d, c.TimeLimits.For(d))
		}
	}
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if c.TerminationWindow < MinTerminationWindow {
		return fmt.Errorf("termination-window must be at least %d, got %d", MinTerminationWindow, c.TerminationWindow)
	}
	for name, v := range map[string]float64{
		"early-termination-threshold": c.EarlyTerminationThreshold,
		"passing-threshold":           c.PassingThreshold,
		"escalate-threshold":          c.EscalateThreshold,
		"deescalate-threshold":        c.DeescalateThreshold,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s must be within [0, 100], got %v", name, v)
		}
	}
	if c.DeescalateThreshold > c.EscalateThreshold {
		return fmt.Errorf("deescalate-threshold (%v) must not exceed escalate-threshold (%v)", c.DeescalateThreshold, c.EscalateThreshold)
	}
	if c.CompletionPenalty <= 0 || c.CompletionPenalty > 1 {
		return fmt.Errorf("completion-penalty must be within (0, 1], got %v", c.CompletionPenalty)
	}
	return nil
}
