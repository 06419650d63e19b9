package cmd

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/mock-interviewer/internal/interview"
	"github.com/spigell/mock-interviewer/internal/logger"
	"github.com/spigell/mock-interviewer/internal/profile"
	"github.com/spigell/mock-interviewer/internal/report"
	"github.com/spigell/mock-interviewer/internal/utils"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run non-interactive interviews with a canned answer",
	Run: func(cmd *cobra.Command, _ []string) {
		demo(cmd)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().IntP("sessions", "n", 1, "number of concurrent interview sessions")
	demoCmd.Flags().StringP("answer", "a", profile.SampleAnswer, "answer submitted to every question")
	demoCmd.Flags().Float64("time-ratio", 0.8, "fraction of the time limit reported as time taken")
	demoCmd.Flags().Duration("pause", 0, "pause between answers")
	demoCmd.Flags().Bool("dump", false, "dump every final score to a temp file")
}

func demo(cmd *cobra.Command) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	sessions, _ := cmd.Flags().GetInt("sessions")
	answer, _ := cmd.Flags().GetString("answer")
	ratio, _ := cmd.Flags().GetFloat64("time-ratio")
	pause, _ := cmd.Flags().GetDuration("pause")
	dump, _ := cmd.Flags().GetBool("dump")

	if sessions < 1 {
		logger.Fatal("at least one session is required", zap.Int("sessions", sessions))
	}
	if ratio < 0 {
		logger.Fatal("time ratio must not be negative", zap.Float64("time_ratio", ratio))
	}

	eng, err := newEngine(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing the interview", zap.Error(err))
	}

	logger.Info("starting demo interviews", zap.Int("sessions", sessions))

	reports := make([]bytes.Buffer, sessions)
	g, gctx := errgroup.WithContext(ctx)
	for i := range sessions {
		g.Go(func() error {
			return runDemoSession(gctx, eng, demoOptions{
				answer: answer,
				ratio:  ratio,
				pause:  pause,
				dump:   dump,
			}, &reports[i], logger)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Fatal("demo interview failed", zap.Error(err))
	}

	for i := range reports {
		if _, err := reports[i].WriteTo(os.Stdout); err != nil {
			logger.Fatal("printing the report", zap.Error(err))
		}
	}

	for _, s := range eng.registry.List() {
		logger.Info("session finished",
			zap.String("session_id", s.ID),
			zap.String("status", string(s.Status)),
			zap.Int("answered", s.QuestionsAnswered),
			zap.Float64("average_score", s.AverageScore),
		)
	}
}

type demoOptions struct {
	answer string
	ratio  float64
	pause  time.Duration
	dump   bool
}

func runDemoSession(ctx context.Context, eng *engine, opts demoOptions, out *bytes.Buffer, logger *zap.Logger) error {
	session, err := eng.registry.Create(eng.profile.Candidate, eng.profile.Job)
	if err != nil {
		return err
	}

	for {
		q, ok := session.CurrentQuestion()
		if !ok {
			break
		}

		timeTaken := int(float64(q.TimeLimit) * opts.ratio)
		res, err := session.SubmitAnswer(opts.answer, timeTaken)
		if err != nil {
			return fmt.Errorf("session %s: %w", session.ID(), err)
		}

		if res.Outcome == interview.OutcomeConclude {
			break
		}

		if err := utils.WaitFor(ctx, opts.pause); err != nil {
			return err
		}
	}

	score, err := eng.registry.Conclude(session.ID())
	if err != nil {
		return err
	}

	summary := session.Summary()
	if err := report.Write(out, report.Data{
		Score:     score,
		History:   session.History(),
		StartedAt: summary.CreatedAt,
		Duration:  summary.Duration,
	}); err != nil {
		return err
	}

	if opts.dump {
		filename, err := report.DumpToTmpFile(score, scoreFilePattern)
		if err != nil {
			return fmt.Errorf("dump score to file: %w", err)
		}
		logger.Info("dumping score to file",
			zap.String("session_id", session.ID()),
			zap.String("filename", filename),
		)
	}

	return nil
}
