package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/mock-interviewer/internal/config"
)

const (
	app       = "mock-interviewer"
	envPrefix = "MOCK_INTERVIEWER"
)

type Config struct {
	Interview   config.Interview `mapstructure:"interview"`
	AI          *AIConfig        `mapstructure:"ai"`
	Feedback    *FeedbackConfig  `mapstructure:"feedback"`
	ProfileFile string           `mapstructure:"profile-file"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type FeedbackConfig struct {
	DisabledRules []string `mapstructure:"disabled-rules"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "mock-interviewer runs adaptive mock interviews and scores the answers",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is mock-interviewer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "candidate and job profile file (default is the bundled sample)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("profile-file", rootCmd.PersistentFlags().Lookup("profile"))

	setDefaults()
}

func setDefaults() {
	d := config.Default()

	viper.SetDefault("interview.max-questions", d.MaxQuestions)
	viper.SetDefault("interview.time-limits.easy", d.TimeLimits.Easy)
	viper.SetDefault("interview.time-limits.medium", d.TimeLimits.Medium)
	viper.SetDefault("interview.time-limits.hard", d.TimeLimits.Hard)
	viper.SetDefault("interview.weights.accuracy", d.Weights.Accuracy)
	viper.SetDefault("interview.weights.clarity", d.Weights.Clarity)
	viper.SetDefault("interview.weights.depth", d.Weights.Depth)
	viper.SetDefault("interview.weights.relevance", d.Weights.Relevance)
	viper.SetDefault("interview.weights.time-efficiency", d.Weights.TimeEfficiency)
	viper.SetDefault("interview.early-termination-threshold", d.EarlyTerminationThreshold)
	viper.SetDefault("interview.termination-window", d.TerminationWindow)
	viper.SetDefault("interview.passing-threshold", d.PassingThreshold)
	viper.SetDefault("interview.escalate-threshold", d.EscalateThreshold)
	viper.SetDefault("interview.deescalate-threshold", d.DeescalateThreshold)
	viper.SetDefault("interview.completion-penalty", d.CompletionPenalty)
	viper.SetDefault("interview.seed", d.Seed)

	viper.SetDefault("ai.enabled", false)
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.timeout", 60*time.Second)
	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("ai.gemini.max-retries", 3)
	viper.SetDefault("ai.gemini.max-log-length", 200)
	viper.SetDefault("feedback.disabled-rules", []string{})
}

func initConfig() {
	if versionCmd.CalledAs() != "" {
		return
	}

	// .env is optional; a broken one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Without an explicit --config the defaults are enough.
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var cfg *Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	if cfg == nil {
		return nil, errors.New("config is empty")
	}

	if err := cfg.Interview.Validate(); err != nil {
		return cfg, fmt.Errorf("interview config: %w", err)
	}

	return cfg, nil
}
