package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/mock-interviewer/internal/domain"
	"github.com/spigell/mock-interviewer/internal/interview"
	"github.com/spigell/mock-interviewer/internal/logger"
	"github.com/spigell/mock-interviewer/internal/report"
)

const (
	PromptNext       = "Next question"
	PromptProgress   = "Show progress"
	PromptQuit       = "Quit without a report"
	PromptShowReport = "Show the report again"
	PromptDumpScore  = "Dump score to file"
	PromptExit       = "Exit"
	scoreFilePattern = "interview_score_*.json"
)

var errExit = errors.New("exit requested")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive mock interview",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("ask-time", "t", false, "ask for the time taken instead of measuring it")
}

// run is the interactive interview.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the mock-interviewer", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	eng, err := newEngine(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing the interview", zap.Error(err))
	}

	session, err := eng.registry.Create(eng.profile.Candidate, eng.profile.Job)
	if err != nil {
		logger.Fatal("starting the interview", zap.Error(err))
	}

	printIntro(session)

	askTime := cmd.Flag("ask-time").Value.String() == "true"

	for {
		view, ok := session.CurrentView()
		if !ok {
			break
		}

		printQuestion(view)

		started := time.Now()
		answer, err := answerPrompt().Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		timeTaken := int(time.Since(started).Round(time.Second) / time.Second)
		if askTime {
			if timeTaken, err = timePrompt(view.TimeLimit); err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		res, err := session.SubmitAnswer(answer, timeTaken)
		if err != nil {
			logger.Fatal("submitting the answer", zap.Error(err))
		}

		if err := report.WriteEvaluation(os.Stdout, res.Evaluation); err != nil {
			logger.Fatal("printing the evaluation", zap.Error(err))
		}

		if res.Outcome == interview.OutcomeConclude {
			if res.Reason != "" {
				logger.Info("interview concluded", zap.String("reason", res.Reason))
			}
			break
		}

		if err := betweenQuestions(session); err != nil {
			if errors.Is(err, errExit) {
				logger.Info("exiting", zap.String("reason", "quit requested"))
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}

	score, err := eng.registry.Conclude(session.ID())
	if err != nil {
		logger.Fatal("concluding the interview", zap.Error(err))
	}

	summary := session.Summary()
	data := report.Data{
		Score:     score,
		History:   session.History(),
		StartedAt: summary.CreatedAt,
		Duration:  summary.Duration,
	}

	if err := report.Write(os.Stdout, data); err != nil {
		logger.Fatal("printing the report", zap.Error(err))
	}

	for {
		action := promptui.Select{
			Label: "What next?",
			Items: []string{PromptExit, PromptDumpScore, PromptShowReport},
		}
		_, selected, err := action.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleReportAction(selected, data, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleReportAction(action string, data report.Data, logger *zap.Logger) error {
	switch action {
	case PromptExit:
		return errExit
	case PromptShowReport:
		return report.Write(os.Stdout, data)
	case PromptDumpScore:
		filename, err := report.DumpToTmpFile(data.Score, scoreFilePattern)
		if err != nil {
			return fmt.Errorf("dump score to file: %w", err)
		}
		logger.Info("dumping score to file", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func betweenQuestions(session *interview.Session) error {
	for {
		prompt := promptui.Select{
			Label: "Proceed?",
			Items: []string{PromptNext, PromptProgress, PromptQuit},
		}
		_, action, err := prompt.Run()
		if err != nil {
			return err
		}

		switch action {
		case PromptNext:
			return nil
		case PromptQuit:
			return errExit
		case PromptProgress:
			s := session.Summary()
			fmt.Printf("\nAnswered %d of %d questions, average score %.2f, current difficulty %s\n\n",
				s.QuestionsAnswered, s.TotalQuestions, s.AverageScore, s.CurrentDifficulty)
		default:
			return fmt.Errorf("invalid action: %s", action)
		}
	}
}

func answerPrompt() *promptui.Prompt {
	return &promptui.Prompt{
		Label: "Your answer",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("answer must not be empty")
			}
			return nil
		},
	}
}

func timePrompt(limit int) (int, error) {
	prompt := promptui.Prompt{
		Label:   fmt.Sprintf("Time taken in seconds (limit %d)", limit),
		Default: fmt.Sprint(limit / 2),
		Validate: func(input string) error {
			var v int
			if _, err := fmt.Sscan(input, &v); err != nil || v < 0 {
				return errors.New("enter a non-negative number of seconds")
			}
			return nil
		},
	}

	raw, err := prompt.Run()
	if err != nil {
		return 0, err
	}

	var v int
	_, err = fmt.Sscan(raw, &v)
	return v, err
}

func printIntro(session *interview.Session) {
	s := session.Summary()
	rule := strings.Repeat("=", 80)
	fmt.Printf("%s\nMOCK INTERVIEW - %s\nPosition: %s\n%s\n", rule, s.Candidate, s.JobTitle, rule)

	gaps := session.SkillGaps()
	if len(gaps) == 0 {
		gaps = []string{"none"}
	}
	fmt.Printf("\nSkill Gaps Identified: %s\n", strings.Join(gaps, ", "))
	fmt.Printf("Total Questions: %d\n\n", s.TotalQuestions)
}

func printQuestion(view domain.QuestionView) {
	fmt.Printf("\nQuestion %d/%d\n", view.Number, view.Total)
	fmt.Printf("Area: %s\n", report.AreaLabel(view.SkillArea))
	fmt.Printf("Difficulty: %s\n", strings.ToUpper(view.Difficulty.String()))
	fmt.Printf("Time Limit: %d seconds\n", view.TimeLimit)
	fmt.Printf("Type: %s\n", view.Type)
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("\n%s\n\n", view.Text)
}
