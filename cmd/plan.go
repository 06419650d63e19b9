package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/mock-interviewer/internal/domain"
	"github.com/spigell/mock-interviewer/internal/logger"
	"github.com/spigell/mock-interviewer/internal/report"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the question plan generated for the profile",
	Run: func(cmd *cobra.Command, _ []string) {
		plan(cmd)
	},
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().Bool("as-json", false, "print the plan as json")
}

func plan(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	// Planning never grades answers.
	config.AI = nil

	eng, err := newEngine(context.Background(), config, logger)
	if err != nil {
		logger.Fatal("preparing the plan", zap.Error(err))
	}

	questions, err := eng.generator.Generate(eng.profile.Candidate, eng.profile.Job, config.Interview.MaxQuestions)
	if err != nil {
		logger.Fatal("generating questions", zap.Error(err))
	}

	views := make([]domain.QuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, q.View(len(questions)))
	}

	if asJSON, _ := cmd.Flags().GetBool("as-json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(views); err != nil {
			logger.Fatal("encoding the plan", zap.Error(err))
		}
		return
	}

	gaps := domain.SkillGaps(eng.profile.Candidate, eng.profile.Job)
	fmt.Printf("Position: %s\nSkill Gaps: %s\n", eng.profile.Job.Title, strings.Join(gaps, ", "))
	for _, v := range views {
		fmt.Printf("\n%d. [%s / %s / %ds] %s\n", v.Number, report.AreaLabel(v.SkillArea), v.Difficulty, v.TimeLimit, v.Text)
	}
}
