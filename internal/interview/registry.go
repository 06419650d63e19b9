package interview

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/mock-interviewer/internal/config"
	"github.com/spigell/mock-interviewer/internal/domain"
)

// Registry keeps live sessions in memory, keyed by a generated session ID.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	cfg    config.Interview
	deps   Deps
	newID  func() string
	logger *zap.Logger
}

func NewRegistry(cfg config.Interview, deps Deps) *Registry {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Registry{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		deps:     deps,
		newID:    uuid.NewString,
		logger:   deps.Logger,
	}
}

// Create starts a new session and registers it.
func (r *Registry) Create(profile *domain.CandidateProfile, req *domain.JobRequirement) (*Session, error) {
	s, err := NewSession(r.newID(), profile, req, r.cfg, r.deps)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.sessions[s.ID()] = s
	total := len(r.sessions)
	r.mu.Unlock()

	r.logger.Debug("session registered", zap.String("session_id", s.ID()), zap.Int("sessions", total))
	return s, nil
}

// Get returns the session with the given ID.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Delete forgets the session.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(r.sessions, id)
	return nil
}

// CurrentQuestion returns the pending question of a session or ErrNoActiveQuestion.
func (r *Registry) CurrentQuestion(id string) (domain.QuestionView, error) {
	s, err := r.Get(id)
	if err != nil {
		return domain.QuestionView{}, err
	}
	view, ok := s.CurrentView()
	if !ok {
		return domain.QuestionView{}, fmt.Errorf("%w: session %s is %s", ErrNoActiveQuestion, id, s.Status())
	}
	return view, nil
}

// Submit records an answer for the session.
func (r *Registry) Submit(id, answer string, timeTaken int) (SubmitResult, error) {
	s, err := r.Get(id)
	if err != nil {
		return SubmitResult{}, err
	}
	return s.SubmitAnswer(answer, timeTaken)
}

// Conclude seals the session and returns its final score.
func (r *Registry) Conclude(id string) (domain.InterviewScore, error) {
	s, err := r.Get(id)
	if err != nil {
		return domain.InterviewScore{}, err
	}
	return s.Conclude()
}

// List returns summaries of all sessions, oldest first.
func (r *Registry) List() []Summary {
	r.mu.RLock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()

	summaries := make([]Summary, 0, len(sessions))
	for _, s := range sessions {
		summaries = append(summaries, s.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].ID < summaries[j].ID
		}
		return summaries[i].CreatedAt.Before(summaries[j].CreatedAt)
	})
	return summaries
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
