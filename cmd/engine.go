package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/mock-interviewer/internal/ai"
	"github.com/spigell/mock-interviewer/internal/ai/gemini"
	"github.com/spigell/mock-interviewer/internal/evaluation"
	"github.com/spigell/mock-interviewer/internal/interview"
	"github.com/spigell/mock-interviewer/internal/profile"
	"github.com/spigell/mock-interviewer/internal/questions"
	"github.com/spigell/mock-interviewer/internal/scoring"
	"github.com/spigell/mock-interviewer/internal/secrets"
)

// engine bundles the collaborators every command needs.
type engine struct {
	registry  *interview.Registry
	generator *questions.Generator
	scorer    *scoring.Scorer
	profile   *profile.Document
}

func newEngine(ctx context.Context, config *Config, logger *zap.Logger) (*engine, error) {
	doc, err := loadProfile(config, logger)
	if err != nil {
		return nil, err
	}

	generator, err := questions.NewGenerator(config.Interview, nil, logger.Named("questions"))
	if err != nil {
		return nil, fmt.Errorf("building question generator: %w", err)
	}

	dimensionScorer, err := newDimensionScorer(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("model grading is unavailable, using heuristic scores", zap.Error(err))
		dimensionScorer = nil
	}

	evaluator, err := evaluation.NewEvaluator(dimensionScorer, config.Interview.Weights, logger.Named("evaluation"))
	if err != nil {
		return nil, fmt.Errorf("building answer evaluator: %w", err)
	}

	rules := scoring.DefaultRules()
	if config.Feedback != nil {
		for _, name := range config.Feedback.DisabledRules {
			scoring.DisableByName(rules, strings.TrimSpace(name), "disabled in config")
		}
	}
	for _, status := range scoring.Describe(rules) {
		logger.Debug("feedback rule",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
		)
	}

	finalScorer := scoring.NewScorer(config.Interview, rules, logger.Named("scoring"))

	registry := interview.NewRegistry(config.Interview, interview.Deps{
		Planner:   generator,
		Evaluator: evaluator,
		Scorer:    finalScorer,
		Logger:    logger.Named("interview"),
	})

	return &engine{
		registry:  registry,
		generator: generator,
		scorer:    finalScorer,
		profile:   doc,
	}, nil
}

func loadProfile(config *Config, logger *zap.Logger) (*profile.Document, error) {
	path := strings.TrimSpace(config.ProfileFile)
	if path == "" {
		logger.Info("using the bundled sample profile")
		return profile.Sample(), nil
	}

	doc, err := profile.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded profile", zap.String("file", path))
	return doc, nil
}

// newDimensionScorer returns nil when model grading is disabled.
func newDimensionScorer(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (evaluation.DimensionScorer, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai grading is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	genLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", cfg.Gemini.Model),
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	grader := gemini.NewGrader(generator, logger, cfg.Gemini.MaxLogLength)

	logger.Info("grading answers with gemini", zap.String("model", generator.Model()))

	return ai.NewScorer(ctx, grader, nil, cfg.Timeout, logger.Named("ai")), nil
}
