package interview

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/mock-interviewer/internal/config"
	"github.com/spigell/mock-interviewer/internal/domain"
	"github.com/spigell/mock-interviewer/internal/logger"
	"github.com/spigell/mock-interviewer/internal/scoring"
)

// Status is the state of an interview session.
type Status string

const (
	StatusInitialized     Status = "initialized"
	StatusInProgress      Status = "in_progress"
	StatusTerminatedEarly Status = "terminated_early"
	StatusCompleted       Status = "completed"
	StatusConcluded       Status = "concluded"
)

// Outcome tells the caller what to do after an answer was recorded.
type Outcome int

const (
	// OutcomeContinue means another question is pending.
	OutcomeContinue Outcome = iota
	// OutcomeConclude means the session must be concluded.
	OutcomeConclude
)

func (o Outcome) String() string {
	if o == OutcomeConclude {
		return "conclude"
	}
	return "continue"
}

// Planner builds question plans and adapts questions.
type Planner interface {
	Adapter
	Generate(profile *domain.CandidateProfile, req *domain.JobRequirement, n int) ([]domain.Question, error)
}

// AnswerEvaluator scores a single answer.
type AnswerEvaluator interface {
	Evaluate(q domain.Question, answer string, timeTaken int) (domain.AnswerEvaluation, error)
}

// FinalScorer aggregates a finished interview.
type FinalScorer interface {
	Calculate(in scoring.Input) domain.InterviewScore
}

// Deps are the collaborators shared by all sessions.
type Deps struct {
	Planner   Planner
	Evaluator AnswerEvaluator
	Scorer    FinalScorer
	Logger    *zap.Logger
}

// SubmitResult is the outcome of a recorded answer. Next is set only for OutcomeContinue.
type SubmitResult struct {
	Evaluation domain.AnswerEvaluation
	Outcome    Outcome
	Next       *domain.QuestionView
	Reason     string
}

// Summary is a point-in-time snapshot of a session.
type Summary struct {
	ID                string            `json:"session_id"`
	Candidate         string            `json:"candidate"`
	JobTitle          string            `json:"job_title"`
	Status            Status            `json:"status"`
	QuestionsAsked    int               `json:"questions_asked"`
	QuestionsAnswered int               `json:"questions_answered"`
	TotalQuestions    int               `json:"total_questions"`
	AverageScore      float64           `json:"average_score"`
	CurrentDifficulty domain.Difficulty `json:"current_difficulty"`
	TerminationReason string            `json:"termination_reason,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	Duration          time.Duration     `json:"duration"`
}

// Session is one candidate's interview. All methods are safe for concurrent use;
// calls on the same session are serialized.
type Session struct {
	mu sync.Mutex

	id          string
	profile     domain.CandidateProfile
	requirement domain.JobRequirement
	skillGaps   []string

	questions  []domain.Question
	current    int
	difficulty domain.Difficulty
	history    []domain.AnswerEvaluation

	status            Status
	terminationReason string

	createdAt   time.Time
	concludedAt time.Time
	score       *domain.InterviewScore

	evaluator  AnswerEvaluator
	scorer     FinalScorer
	controller *DifficultyController
	monitor    *TerminationMonitor

	now    func() time.Time
	logger *zap.Logger
}

// NewSession validates the inputs, generates the question plan and starts the interview.
func NewSession(id string, profile *domain.CandidateProfile, req *domain.JobRequirement, cfg config.Interview, deps Deps) (*Session, error) {
	if err := profile.Validate(); err != nil {
		return nil, &InvalidInputError{Err: err}
	}
	if err := req.Validate(); err != nil {
		return nil, &InvalidInputError{Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("interview config: %w", err)
	}
	if deps.Planner == nil || deps.Evaluator == nil || deps.Scorer == nil {
		return nil, fmt.Errorf("planner, evaluator and scorer are required")
	}

	log := logger.WithSessionFields(deps.Logger, id, profile.Name, req.Title)

	s := &Session{
		id:          id,
		profile:     cloneProfile(profile),
		requirement: cloneRequirement(req),
		skillGaps:   domain.SkillGaps(profile, req),
		status:      StatusInitialized,
		evaluator:   deps.Evaluator,
		scorer:      deps.Scorer,
		controller:  NewDifficultyController(deps.Planner, log),
		monitor:     NewTerminationMonitor(cfg.EarlyTerminationThreshold, cfg.TerminationWindow),
		now:         time.Now,
		logger:      log,
	}
	s.createdAt = s.now()

	plan, err := deps.Planner.Generate(&s.profile, &s.requirement, cfg.MaxQuestions)
	if err != nil {
		return nil, fmt.Errorf("generating questions: %w", err)
	}
	if len(plan) != cfg.MaxQuestions {
		return nil, fmt.Errorf("generating questions: expected %d questions, got %d", cfg.MaxQuestions, len(plan))
	}

	s.questions = plan
	s.difficulty = plan[0].Difficulty
	s.status = StatusInProgress

	s.logger.Info("interview session started",
		zap.Int("questions", len(plan)),
		zap.Strings("skill_gaps", s.skillGaps),
	)

	return s, nil
}

func (s *Session) ID() string { return s.id }

// Status returns the current state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// SkillGaps returns the gaps computed at session start.
func (s *Session) SkillGaps() []string {
	return slices.Clone(s.skillGaps)
}

// CurrentQuestion returns the pending question. It reports false once the plan
// is exhausted or the session is terminated or concluded.
func (s *Session) CurrentQuestion() (domain.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending()
}

// CurrentView is CurrentQuestion projected for callers.
func (s *Session) CurrentView() (domain.QuestionView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.pending()
	if !ok {
		return domain.QuestionView{}, false
	}
	return q.View(len(s.questions)), true
}

func (s *Session) pending() (domain.Question, bool) {
	if s.status != StatusInProgress || s.current >= len(s.questions) {
		return domain.Question{}, false
	}
	return s.questions[s.current], true
}

// SubmitAnswer evaluates the answer to the pending question and advances the
// session. Either every change is applied or none is.
func (s *Session) SubmitAnswer(answer string, timeTaken int) (SubmitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.pending()
	if !ok {
		return SubmitResult{}, &SessionStateError{Op: "submit_answer", Status: s.status, Reason: "no pending question"}
	}

	eval, err := s.evaluator.Evaluate(q, answer, timeTaken)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("evaluating answer to %s: %w", q.ID, err)
	}

	history := append(slices.Clone(s.history), eval)
	nextIndex := s.current + 1

	// Answering the last question completes the interview regardless of the average.
	var terminate bool
	var avg float64
	if nextIndex < len(s.questions) {
		terminate, avg = s.monitor.ShouldTerminate(history)
	}

	var next *domain.Question
	if !terminate && nextIndex < len(s.questions) {
		adapted, err := s.controller.Next(eval.OverallScore, s.questions[nextIndex])
		if err != nil {
			return SubmitResult{}, fmt.Errorf("adapting question %s: %w", s.questions[nextIndex].ID, err)
		}
		next = &adapted
	}

	// commit
	s.history = history
	s.current = nextIndex
	result := SubmitResult{Evaluation: eval, Outcome: OutcomeConclude}

	switch {
	case terminate:
		s.status = StatusTerminatedEarly
		s.terminationReason = fmt.Sprintf("average of the last %d scores (%.2f) is below %.2f",
			s.monitor.window, avg, s.monitor.threshold)
		result.Reason = s.terminationReason
		s.logger.Info("interview terminated early",
			zap.Float64("rolling_average", avg),
			zap.Int("answered", len(s.history)),
		)
	case next != nil:
		s.questions[nextIndex] = *next
		s.difficulty = next.Difficulty
		view := next.View(len(s.questions))
		result.Outcome = OutcomeContinue
		result.Next = &view
	default:
		s.status = StatusCompleted
		result.Reason = "all questions answered"
		s.logger.Info("interview completed", zap.Int("answered", len(s.history)))
	}

	s.logger.Debug("answer recorded",
		zap.String("question_id", q.ID),
		zap.Float64("overall_score", eval.OverallScore),
		zap.Stringer("outcome", result.Outcome),
	)

	return result, nil
}

// Conclude seals the session and produces the final score. It fails while
// questions remain and the interview was not terminated, or when called twice.
func (s *Session) Conclude() (domain.InterviewScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.status {
	case StatusConcluded:
		return domain.InterviewScore{}, &SessionStateError{Op: "conclude", Status: s.status, Reason: "already concluded"}
	case StatusTerminatedEarly, StatusCompleted:
	default:
		return domain.InterviewScore{}, &SessionStateError{
			Op:     "conclude",
			Status: s.status,
			Reason: fmt.Sprintf("%d of %d questions are still unanswered", len(s.questions)-s.current, len(s.questions)),
		}
	}

	score := s.scorer.Calculate(scoring.Input{
		History:          slices.Clone(s.history),
		Requirement:      &s.requirement,
		Profile:          &s.profile,
		Questions:        slices.Clone(s.questions),
		EarlyTermination: s.status == StatusTerminatedEarly,
	})

	s.score = &score
	s.status = StatusConcluded
	s.concludedAt = s.now()

	s.logger.Info("interview concluded",
		zap.Float64("total_score", score.TotalScore),
		zap.String("readiness", string(score.Readiness)),
	)

	return score, nil
}

// Score returns the final score once the session is concluded.
func (s *Session) Score() (domain.InterviewScore, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.score == nil {
		return domain.InterviewScore{}, false
	}
	return *s.score, true
}

// History returns a copy of the recorded evaluations.
func (s *Session) History() []domain.AnswerEvaluation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history)
}

// Questions returns a copy of the current plan, including adapted questions.
func (s *Session) Questions() []domain.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.questions)
}

// Summary returns a snapshot of the session progress.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	asked := s.current
	if _, ok := s.pending(); ok {
		asked++
	}

	avg := 0.0
	for _, e := range s.history {
		avg += e.OverallScore
	}
	if len(s.history) > 0 {
		avg = domain.Round2(avg / float64(len(s.history)))
	}

	end := s.now()
	if !s.concludedAt.IsZero() {
		end = s.concludedAt
	}

	return Summary{
		ID:                s.id,
		Candidate:         s.profile.Name,
		JobTitle:          s.requirement.Title,
		Status:            s.status,
		QuestionsAsked:    asked,
		QuestionsAnswered: len(s.history),
		TotalQuestions:    len(s.questions),
		AverageScore:      avg,
		CurrentDifficulty: s.difficulty,
		TerminationReason: s.terminationReason,
		CreatedAt:         s.createdAt,
		Duration:          end.Sub(s.createdAt),
	}
}

func cloneProfile(p *domain.CandidateProfile) domain.CandidateProfile {
	c := *p
	c.Skills = slices.Clone(p.Skills)
	c.Technologies = slices.Clone(p.Technologies)
	c.Strengths = slices.Clone(p.Strengths)
	return c
}

func cloneRequirement(r *domain.JobRequirement) domain.JobRequirement {
	c := *r
	c.RequiredSkills = slices.Clone(r.RequiredSkills)
	c.PreferredSkills = slices.Clone(r.PreferredSkills)
	c.Technologies = slices.Clone(r.Technologies)
	return c
}
