package scoring

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/mock-interviewer/internal/domain"
	"github.com/spigell/mock-interviewer/internal/evaluation"
)

const (
	maxWeakAreaAdvice   = 2
	maxMissedClusters   = 3
	maxLearnMoreTerms   = 5
	minSlowAnswers      = 2
	lowDimensionScore   = 50
	behavioralSTARLimit = 50
)

var areaAdvice = map[domain.SkillArea]string{
	domain.Technical:      "review the fundamentals of the technologies in the job description and practice explaining them",
	domain.ProblemSolving: "practice breaking problems down and discussing complexity and edge cases out loud",
	domain.Communication:  "practice explaining technical topics to non-technical listeners in a few clear steps",
	domain.Behavioral:     "prepare concrete stories about your past work with clear outcomes",
	domain.SystemDesign:   "study common architectures and practice reasoning about scalability and failure handling",
}

// feedbackInput is the data every feedback rule reads.
type feedbackInput struct {
	history          []domain.AnswerEvaluation
	areas            map[domain.SkillArea]domain.AreaScore
	requirement      *domain.JobRequirement
	passing          float64
	earlyTermination bool
	produced         int
}

// Rule produces actionable feedback items from the interview outcome.
type Rule interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Apply(in *feedbackInput) []string
}

// Status represents runtime information about a feedback rule.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
}

type rule struct {
	name     string
	disabled bool
	reason   string
	apply    func(in *feedbackInput) []string
}

func (r *rule) Name() string { return r.name }

func (r *rule) Disable(reason string) {
	r.disabled = true
	r.reason = reason
}

func (r *rule) IsEnabled() bool { return !r.disabled }

func (r *rule) Apply(in *feedbackInput) []string { return r.apply(in) }

func (r *rule) Status() Status {
	return Status{Name: r.name, Enabled: !r.disabled, Reason: r.reason}
}

// DefaultRules returns the feedback rules in the order their advice is reported.
func DefaultRules() []Rule {
	return []Rule{
		&rule{name: "weak_areas", apply: weakAreasAdvice},
		&rule{name: "missed_concepts", apply: missedConceptsAdvice},
		&rule{name: "learn_more", apply: learnMoreAdvice},
		&rule{name: "time_management", apply: timeManagementAdvice},
		&rule{name: "star_method", apply: starAdvice},
		&rule{name: "early_termination", apply: earlyTerminationAdvice},
		&rule{name: "keep_practicing", apply: defaultAdvice},
	}
}

// DisableByName marks a rule with the provided name as disabled while keeping it in the list.
func DisableByName(rules []Rule, name, reason string) {
	for _, r := range rules {
		if r.Name() == name {
			r.Disable(reason)
		}
	}
}

// Describe returns status entries for the provided rules.
func Describe(rules []Rule) []Status {
	statuses := make([]Status, 0, len(rules))
	for _, r := range rules {
		if reporter, ok := r.(interface{ Status() Status }); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}
		statuses = append(statuses, Status{Name: r.Name(), Enabled: r.IsEnabled()})
	}
	return statuses
}

func runRules(logger *zap.Logger, rules []Rule, in *feedbackInput) []string {
	feedback := []string{}
	for _, r := range rules {
		if !r.IsEnabled() {
			logger.Debug("feedback rule disabled", zap.String("name", r.Name()))
			continue
		}
		items := r.Apply(in)
		in.produced += len(items)
		feedback = append(feedback, items...)

		logger.Debug("feedback rule",
			zap.String("name", r.Name()),
			zap.Int("items", len(items)),
		)
	}
	return feedback
}

func weakAreasAdvice(in *feedbackInput) []string {
	var weak []domain.AreaScore
	for _, area := range domain.SkillAreas() {
		s := in.areas[area]
		if s.Tested && s.Score < in.passing {
			weak = append(weak, s)
		}
	}
	sort.SliceStable(weak, func(i, j int) bool { return weak[i].Score < weak[j].Score })
	if len(weak) > maxWeakAreaAdvice {
		weak = weak[:maxWeakAreaAdvice]
	}

	out := make([]string, 0, len(weak))
	for _, s := range weak {
		out = append(out, fmt.Sprintf("Improve %s skills: %s", s.Area.Label(), areaAdvice[s.Area]))
	}
	return out
}

type cluster struct {
	concept string
	count   int
}

// missedClusters groups missed concepts case-insensitively, most frequent first, ties alphabetical.
func missedClusters(history []domain.AnswerEvaluation) []cluster {
	counts := make(map[string]int)
	display := make(map[string]string)
	for _, e := range history {
		for _, c := range e.MissedConcepts {
			key := strings.ToLower(strings.TrimSpace(c))
			if key == "" {
				continue
			}
			if _, ok := display[key]; !ok {
				display[key] = strings.TrimSpace(c)
			}
			counts[key]++
		}
	}

	clusters := make([]cluster, 0, len(counts))
	for key, n := range counts {
		clusters = append(clusters, cluster{concept: display[key], count: n})
	}
	sort.Slice(clusters, func(i, j int) bool {
		if clusters[i].count != clusters[j].count {
			return clusters[i].count > clusters[j].count
		}
		return strings.ToLower(clusters[i].concept) < strings.ToLower(clusters[j].concept)
	})
	return clusters
}

func missedConceptsAdvice(in *feedbackInput) []string {
	clusters := missedClusters(in.history)
	if len(clusters) == 0 {
		return nil
	}
	if len(clusters) > maxMissedClusters {
		clusters = clusters[:maxMissedClusters]
	}

	names := make([]string, len(clusters))
	for i, c := range clusters {
		names[i] = c.concept
	}
	return []string{"Study the concepts you missed most often: " + strings.Join(names, ", ")}
}

func learnMoreAdvice(in *feedbackInput) []string {
	if in.requirement == nil || len(in.history) == 0 {
		return nil
	}

	answers := make([]string, len(in.history))
	for i, e := range in.history {
		answers[i] = e.AnswerText
	}
	text := strings.Join(answers, "\n")

	var missing []string
	for _, tech := range domain.NormalizeTerms(in.requirement.Technologies) {
		if !evaluation.ContainsPhrase(text, tech) {
			missing = append(missing, tech)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	if len(missing) > maxLearnMoreTerms {
		missing = missing[:maxLearnMoreTerms]
	}
	return []string{"Learn more about: " + strings.Join(missing, ", ")}
}

func timeManagementAdvice(in *feedbackInput) []string {
	slow := 0
	for _, e := range in.history {
		if e.Scores.TimeEfficiency < lowDimensionScore {
			slow++
		}
	}
	if slow < minSlowAnswers {
		return nil
	}
	return []string{"Work on time management: aim to use 70-90% of the time limit for each answer"}
}

func starAdvice(in *feedbackInput) []string {
	s := in.areas[domain.Behavioral]
	if !s.Tested || s.Score >= behavioralSTARLimit {
		return nil
	}
	return []string{"Use the STAR method (Situation, Task, Action, Result) to structure behavioral answers"}
}

func earlyTerminationAdvice(in *feedbackInput) []string {
	if !in.earlyTermination {
		return nil
	}
	return []string{"The interview ended early; practice the fundamentals before attempting a full interview again"}
}

func defaultAdvice(in *feedbackInput) []string {
	if in.produced > 0 {
		return nil
	}
	return []string{"Keep practicing with harder questions to build on your performance"}
}
