package interview

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/mock-interviewer/internal/config"
	"github.com/spigell/mock-interviewer/internal/domain"
)

func TestRegistryLifecycle(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	r := NewRegistry(cfg, testDeps(t, cfg, scoreEvaluator{}))

	s, err := r.Create(sampleProfile(), sampleJob())
	require.NoError(t, err)
	assert.Len(t, s.ID(), 36)

	got, err := r.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	view, err := r.CurrentQuestion(s.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, view.Number)

	for i := 0; i < 3; i++ {
		_, err := r.Submit(s.ID(), "10", 60)
		require.NoError(t, err)
	}

	_, err = r.CurrentQuestion(s.ID())
	assert.True(t, errors.Is(err, ErrNoActiveQuestion))

	score, err := r.Conclude(s.ID())
	require.NoError(t, err)
	assert.True(t, score.EarlyTermination)

	require.NoError(t, r.Delete(s.ID()))
	_, err = r.Get(s.ID())
	assert.True(t, errors.Is(err, ErrSessionNotFound))
	assert.True(t, errors.Is(r.Delete(s.ID()), ErrSessionNotFound))
}

func TestRegistryCreateRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	r := NewRegistry(cfg, testDeps(t, cfg, scoreEvaluator{}))

	_, err := r.Create(&domain.CandidateProfile{}, sampleJob())
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, 0, r.Len())
}

func TestConcurrentSessionsAreIndependent(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	r := NewRegistry(cfg, testDeps(t, cfg, nil))

	const sessions = 8
	var g errgroup.Group
	for i := 0; i < sessions; i++ {
		g.Go(func() error {
			s, err := r.Create(sampleProfile(), sampleJob())
			if err != nil {
				return err
			}
			for {
				if _, ok := s.CurrentQuestion(); !ok {
					break
				}
				answer := fmt.Sprintf("Docker and Kubernetes run containers. For example, session %d deployed services because scaling was needed.", i)
				if _, err := s.SubmitAnswer(answer, 100); err != nil {
					return err
				}
			}
			_, err = s.Conclude()
			return err
		})
	}
	require.NoError(t, g.Wait())

	summaries := r.List()
	require.Len(t, summaries, sessions)
	for _, sum := range summaries {
		assert.Equal(t, StatusConcluded, sum.Status)
	}
}

func TestConcurrentSubmitsOnOneSessionAreSerialized(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.EarlyTerminationThreshold = 0
	s, err := NewSession("shared", sampleProfile(), sampleJob(), cfg, testDeps(t, cfg, scoreEvaluator{}))
	require.NoError(t, err)

	var g errgroup.Group
	results := make([]error, 10)
	for i := range results {
		g.Go(func() error {
			_, results[i] = s.SubmitAnswer("70", 100)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	succeeded, rejected := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSessionState):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 5, rejected)
	assert.Len(t, s.History(), 5)
	assert.Equal(t, StatusCompleted, s.Status())
}
