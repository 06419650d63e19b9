package scoring

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/mock-interviewer/internal/config"
	"github.com/spigell/mock-interviewer/internal/domain"
)

const (
	strongThreshold      = 75
	averageThreshold     = 60
	readyThreshold       = 75
	developmentThreshold = 55

	requiredFitWeight  = 0.7
	preferredFitWeight = 0.3

	hiringScoreWeight   = 0.6
	hiringRoleFitWeight = 0.4

	maxAreaStrengths   = 3
	maxAreaWeaknesses  = 3
	maxStrengths       = 5
	consistencySpread  = 20
	consistencyMinimum = 2
)

// Input is everything the final scorer reads. Questions is the full plan; its
// length is the configured number of questions.
type Input struct {
	History          []domain.AnswerEvaluation
	Requirement      *domain.JobRequirement
	Profile          *domain.CandidateProfile
	Questions        []domain.Question
	EarlyTermination bool
}

// Scorer aggregates an interview history into the final InterviewScore.
type Scorer struct {
	passing float64
	penalty float64
	rules   []Rule
	now     func() time.Time
	logger  *zap.Logger
}

// NewScorer uses DefaultRules when rules is nil.
func NewScorer(cfg config.Interview, rules []Rule, logger *zap.Logger) *Scorer {
	if rules == nil {
		rules = DefaultRules()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{
		passing: cfg.PassingThreshold,
		penalty: cfg.CompletionPenalty,
		rules:   rules,
		now:     time.Now,
		logger:  logger,
	}
}

// Rules returns the feedback rules used by the scorer.
func (s *Scorer) Rules() []Rule {
	return s.rules
}

func (s *Scorer) Calculate(in Input) domain.InterviewScore {
	history := in.History
	scores := overallScores(history)

	areas := AreaScores(history, in.Questions)

	total := mean(scores)
	if in.EarlyTermination {
		total *= s.penalty
	}
	total = domain.Round2(total)

	roleFit := domain.Round2(RoleFit(in.Profile, in.Requirement))
	hiringBlend := hiringScoreWeight*total + hiringRoleFitWeight*roleFit

	var timeEff, clarity, depth []float64
	for _, e := range history {
		timeEff = append(timeEff, e.Scores.TimeEfficiency)
		clarity = append(clarity, e.Scores.Clarity)
		if e.SkillArea == domain.Technical || e.SkillArea == domain.SystemDesign {
			depth = append(depth, e.Scores.Depth)
		}
	}

	completion := 0.0
	if len(in.Questions) > 0 {
		completion = math.Min(100, float64(len(history))/float64(len(in.Questions))*100)
	}

	result := domain.InterviewScore{
		TotalScore:           total,
		SkillAreaScores:      areas,
		QuestionScores:       scores,
		Strengths:            s.strengths(areas, scores),
		Weaknesses:           s.weaknesses(areas),
		Readiness:            readiness(total),
		HiringReadiness:      hiringReadiness(hiringBlend),
		RoleFit:              roleFit,
		TimeManagementScore:  domain.Round2(mean(timeEff)),
		AdaptabilityScore:    Adaptability(history),
		TechnicalDepth:       domain.Round2(mean(depth)),
		TechnicalDepthTested: len(depth) > 0,
		CommunicationQuality: domain.Round2(mean(clarity)),
		CompletionPercentage: domain.Round2(completion),
		EarlyTermination:     in.EarlyTermination,
		QuestionsAnswered:    len(history),
		TotalQuestions:       len(in.Questions),
		CalculatedAt:         s.now(),
	}
	if in.Profile != nil {
		result.Candidate = in.Profile.Name
	}
	if in.Requirement != nil {
		result.JobTitle = in.Requirement.Title
	}

	result.ActionableFeedback = runRules(s.logger, s.rules, &feedbackInput{
		history:          history,
		areas:            areas,
		requirement:      in.Requirement,
		passing:          s.passing,
		earlyTermination: in.EarlyTermination,
	})

	s.logger.Info("final score calculated",
		zap.Float64("total_score", result.TotalScore),
		zap.String("readiness", string(result.Readiness)),
		zap.String("hiring_readiness", string(result.HiringReadiness)),
		zap.Float64("completion_percentage", result.CompletionPercentage),
	)

	return result
}

// AreaScores groups overall scores by skill area. Every area is present;
// areas without answers have Tested=false.
func AreaScores(history []domain.AnswerEvaluation, questions []domain.Question) map[domain.SkillArea]domain.AreaScore {
	areaByQuestion := make(map[string]domain.SkillArea, len(questions))
	for _, q := range questions {
		areaByQuestion[q.ID] = q.SkillArea
	}

	grouped := make(map[domain.SkillArea][]float64)
	for _, e := range history {
		area := e.SkillArea
		if a, ok := areaByQuestion[e.QuestionID]; ok {
			area = a
		}
		grouped[area] = append(grouped[area], e.OverallScore)
	}

	areas := make(map[domain.SkillArea]domain.AreaScore, len(domain.SkillAreas()))
	for _, area := range domain.SkillAreas() {
		values := grouped[area]
		s := domain.AreaScore{Area: area, Questions: len(values)}
		if len(values) > 0 {
			s.Tested = true
			s.Score = domain.Round2(mean(values))
		}
		areas[area] = s
	}
	return areas
}

// RoleFit is 100 * (0.7 * coverage(required skills and technologies) + 0.3 * coverage(preferred)).
// An empty set counts as fully covered.
func RoleFit(p *domain.CandidateProfile, r *domain.JobRequirement) float64 {
	if p == nil || r == nil {
		return 0
	}
	have := p.Capabilities()
	required := domain.NormalizeTerms(append(append([]string{}, r.RequiredSkills...), r.Technologies...))
	preferred := domain.NormalizeTerms(r.PreferredSkills)
	return 100 * (requiredFitWeight*coverage(have, required) + preferredFitWeight*coverage(have, preferred))
}

func coverage(have map[string]struct{}, wanted []string) float64 {
	if len(wanted) == 0 {
		return 1
	}
	hits := 0
	for _, w := range wanted {
		if _, ok := have[w]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(wanted))
}

func readiness(total float64) domain.Readiness {
	switch {
	case total >= strongThreshold:
		return domain.ReadinessStrong
	case total >= averageThreshold:
		return domain.ReadinessAverage
	default:
		return domain.ReadinessNeedsImprovement
	}
}

func hiringReadiness(blend float64) domain.HiringReadiness {
	switch {
	case blend >= readyThreshold:
		return domain.HiringReady
	case blend >= developmentThreshold:
		return domain.HiringNeedsDevelopment
	default:
		return domain.HiringNotReady
	}
}

// strengths lists tested areas scoring at least 75, best first, plus consistency.
func (s *Scorer) strengths(areas map[domain.SkillArea]domain.AreaScore, scores []float64) []string {
	ranked := rankedAreas(areas, func(a domain.AreaScore) bool { return a.Score >= strongThreshold })
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if len(ranked) > maxAreaStrengths {
		ranked = ranked[:maxAreaStrengths]
	}

	out := []string{}
	for _, a := range ranked {
		out = append(out, "Strong "+a.Area.Label()+" skills")
	}
	if len(scores) >= consistencyMinimum && spread(scores) < consistencySpread {
		out = append(out, "Consistent performance across questions")
	}
	if len(out) > maxStrengths {
		out = out[:maxStrengths]
	}
	return out
}

// weaknesses lists tested areas below the passing threshold, weakest first.
func (s *Scorer) weaknesses(areas map[domain.SkillArea]domain.AreaScore) []string {
	ranked := rankedAreas(areas, func(a domain.AreaScore) bool { return a.Score < s.passing })
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score < ranked[j].Score })
	if len(ranked) > maxAreaWeaknesses {
		ranked = ranked[:maxAreaWeaknesses]
	}

	out := []string{}
	for _, a := range ranked {
		out = append(out, "Needs improvement in "+a.Area.Label())
	}
	return out
}

// rankedAreas returns tested areas matching keep, in canonical order.
func rankedAreas(areas map[domain.SkillArea]domain.AreaScore, keep func(domain.AreaScore) bool) []domain.AreaScore {
	var out []domain.AreaScore
	for _, area := range domain.SkillAreas() {
		a := areas[area]
		if a.Tested && keep(a) {
			out = append(out, a)
		}
	}
	return out
}

func spread(values []float64) float64 {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return hi - lo
}
