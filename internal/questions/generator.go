package questions

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/mock-interviewer/internal/config"
	"github.com/spigell/mock-interviewer/internal/domain"
)

// gapAreaKeywords classifies a skill gap into the area that should probe it.
// Terms matching none of these implicate the technical area.
var gapAreaKeywords = []struct {
	area     domain.SkillArea
	keywords []string
}{
	{domain.Communication, []string{"communication", "presentation", "writing", "documentation", "stakeholder"}},
	{domain.Behavioral, []string{"leadership", "teamwork", "mentoring", "collaboration", "management"}},
	{domain.ProblemSolving, []string{"problem solving", "problem-solving", "algorithm", "data structure", "debugging"}},
	{domain.SystemDesign, []string{"architecture", "system design", "distributed", "scalability", "microservice"}},
}

// Generator builds question plans and regenerates questions at a new difficulty.
type Generator struct {
	pack   *Pack
	limits config.TimeLimits
	seed   uint64

	escalate   float64
	deescalate float64

	logger *zap.Logger
}

// NewGenerator returns a generator over the given pack. A nil pack means the embedded default.
func NewGenerator(cfg config.Interview, pack *Pack, logger *zap.Logger) (*Generator, error) {
	if pack == nil {
		var err error
		pack, err = DefaultPack()
		if err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		pack:       pack,
		limits:     cfg.TimeLimits,
		seed:       cfg.Seed,
		escalate:   cfg.EscalateThreshold,
		deescalate: cfg.DeescalateThreshold,
		logger:     logger,
	}, nil
}

// Generate returns exactly n questions. Areas cycle through AreaOrder and
// difficulty follows DifficultySchedule. The result depends only on the inputs and the seed.
func (g *Generator) Generate(profile *domain.CandidateProfile, req *domain.JobRequirement, n int) ([]domain.Question, error) {
	if n <= 0 {
		return nil, fmt.Errorf("number of questions must be positive, got %d", n)
	}
	if profile == nil || req == nil {
		return nil, fmt.Errorf("profile and requirement are required")
	}

	gaps := domain.SkillGaps(profile, req)
	order := AreaOrder(gaps)
	schedule := DifficultySchedule(n)
	terms := topicTerms(gaps, req.Technologies)

	g.logger.Debug("generating question plan",
		zap.Int("count", n),
		zap.Strings("skill_gaps", gaps),
		zap.Strings("area_order", areaNames(order)),
	)

	plan := make([]domain.Question, 0, n)
	for i := 0; i < n; i++ {
		area := order[i%len(order)]
		concept, related, err := g.topics(area, terms, i)
		if err != nil {
			return nil, err
		}

		q, err := g.build(area, schedule[i], i, 0, concept, related)
		if err != nil {
			return nil, err
		}
		plan = append(plan, q)
	}

	g.logger.Info("question plan generated", zap.Int("count", len(plan)))
	return plan, nil
}

// Adapt regenerates next at the difficulty implied by currentScore. When the
// difficulty does not change next is returned as is. Skill area and topic are kept.
func (g *Generator) Adapt(currentScore float64, next domain.Question) (domain.Question, error) {
	target := NextDifficulty(currentScore, next.Difficulty, g.escalate, g.deescalate)
	if target == next.Difficulty {
		return next, nil
	}

	q, err := g.build(next.SkillArea, target, next.Position, next.Revision+1, next.Topic, next.RelatedTopic)
	if err != nil {
		return domain.Question{}, err
	}

	g.logger.Debug("question difficulty adapted",
		zap.String("question_id", next.ID),
		zap.String("new_question_id", q.ID),
		zap.Stringer("from", next.Difficulty),
		zap.Stringer("to", target),
		zap.Float64("score", currentScore),
	)
	return q, nil
}

// NextDifficulty applies the one-step escalation rule, clamped at the boundaries.
func NextDifficulty(score float64, current domain.Difficulty, escalate, deescalate float64) domain.Difficulty {
	switch {
	case score >= escalate:
		return current.Harder()
	case score < deescalate:
		return current.Easier()
	}
	return current
}

// DifficultySchedule starts easy and escalates across the plan.
// For n=5 it yields easy, medium, medium, hard, hard.
func DifficultySchedule(n int) []domain.Difficulty {
	schedule := make([]domain.Difficulty, n)
	denom := n - 1
	if denom < 1 {
		denom = 1
	}
	for i := range schedule {
		ratio := float64(i) / float64(denom)
		switch {
		case ratio < 0.2:
			schedule[i] = domain.Easy
		case ratio < 0.6:
			schedule[i] = domain.Medium
		default:
			schedule[i] = domain.Hard
		}
	}
	return schedule
}

// AreaOrder puts areas implicated by the skill gaps first, then the rest,
// each group in canonical order.
func AreaOrder(gaps []string) []domain.SkillArea {
	implicated := make(map[domain.SkillArea]bool)
	for _, gap := range gaps {
		implicated[ClassifyGap(gap)] = true
	}

	order := make([]domain.SkillArea, 0, len(domain.SkillAreas()))
	for _, area := range domain.SkillAreas() {
		if implicated[area] {
			order = append(order, area)
		}
	}
	for _, area := range domain.SkillAreas() {
		if !implicated[area] {
			order = append(order, area)
		}
	}
	return order
}

// ClassifyGap maps a skill gap to the skill area that probes it.
func ClassifyGap(gap string) domain.SkillArea {
	gap = strings.ToLower(gap)
	for _, rule := range gapAreaKeywords {
		for _, keyword := range rule.keywords {
			if strings.Contains(gap, keyword) {
				return rule.area
			}
		}
	}
	return domain.Technical
}

// topics picks {concept} and {related_concept} for the question at index.
// Terms rotate by index; without terms the area's fallback concepts are used.
func (g *Generator) topics(area domain.SkillArea, terms []string, index int) (string, string, error) {
	if len(terms) > 0 {
		concept := terms[index%len(terms)]
		if len(terms) > 1 {
			return concept, terms[(index+1)%len(terms)], nil
		}
		at, err := g.pack.Area(area)
		if err != nil {
			return "", "", err
		}
		return concept, firstOther(at.FallbackConcepts, concept), nil
	}

	at, err := g.pack.Area(area)
	if err != nil {
		return "", "", err
	}
	concept := at.FallbackConcepts[0]
	return concept, firstOther(at.FallbackConcepts, concept), nil
}

func (g *Generator) build(area domain.SkillArea, d domain.Difficulty, position, revision int, concept, related string) (domain.Question, error) {
	at, err := g.pack.Area(area)
	if err != nil {
		return domain.Question{}, err
	}

	id := fmt.Sprintf("q-%d-%s-%s", position+1, area, d)
	if revision > 0 {
		id = fmt.Sprintf("%s-r%d", id, revision)
	}

	rng := g.rng(id)
	values := Placeholders{
		PlaceholderConcept:        concept,
		PlaceholderRelatedConcept: related,
		PlaceholderProblem:        pick(rng, g.pack.Pools.Problems),
		PlaceholderSystem:         pick(rng, g.pack.Pools.Systems),
		PlaceholderTradeoff1:      pick(rng, g.pack.Pools.TradeoffsPrimary),
		PlaceholderTradeoff2:      pick(rng, g.pack.Pools.TradeoffsSecondary),
	}

	text, err := g.pack.Resolve(area, d, rng.IntN(max(g.pack.Variants(area, d), 1)), values)
	if err != nil {
		return domain.Question{}, err
	}

	expected := make([]string, 0, len(at.ExpectedConcepts))
	for _, c := range at.ExpectedConcepts {
		filled, err := g.pack.Fill(area, c, values)
		if err != nil {
			return domain.Question{}, err
		}
		expected = append(expected, filled)
	}

	return domain.Question{
		ID:                id,
		Text:              text,
		Difficulty:        d,
		SkillArea:         area,
		Type:              at.Type,
		Topic:             concept,
		RelatedTopic:      related,
		ExpectedConcepts:  expected,
		IdealAnswerPoints: append([]string(nil), at.IdealAnswerPoints...),
		TimeLimit:         g.limits.For(d),
		Position:          position,
		Revision:          revision,
	}, nil
}

func (g *Generator) rng(id string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return rand.New(rand.NewPCG(g.seed, h.Sum64()))
}

func topicTerms(gaps, technologies []string) []string {
	seen := make(map[string]struct{}, len(gaps))
	terms := make([]string, 0, len(gaps)+len(technologies))
	for _, list := range [][]string{gaps, domain.NormalizeTerms(technologies)} {
		for _, term := range list {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			terms = append(terms, term)
		}
	}
	return terms
}

func firstOther(values []string, exclude string) string {
	for _, v := range values {
		if !strings.EqualFold(v, exclude) {
			return v
		}
	}
	return exclude
}

func pick(rng *rand.Rand, values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[rng.IntN(len(values))]
}

func areaNames(areas []domain.SkillArea) []string {
	names := make([]string, len(areas))
	for i, a := range areas {
		names[i] = string(a)
	}
	return names
}
