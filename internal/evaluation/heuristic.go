package evaluation

import (
	"math"

	"github.com/spigell/mock-interviewer/internal/domain"
)

const (
	minWordsForAccuracy = 3

	optimalBandLow  = 0.7
	optimalBandHigh = 0.9
)

var (
	fillers = []string{
		"um", "umm", "uh", "like", "basically", "actually", "kinda", "sorta", "maybe", "probably",
		"you know", "sort of", "kind of", "i guess", "i don't know",
	}

	structureMarkers = []string{
		"first", "second", "third", "finally", "then", "therefore", "in summary",
		"to summarize", "for example", "specifically", "overall",
	}

	connectives = []string{
		"because", "therefore", "for example", "for instance", "such as", "which means",
		"as a result", "furthermore", "moreover", "additionally", "however", "consequently",
		"so that", "in detail", "specifically", "e.g", "in practice", "the reason",
	}

	expectedWords = map[domain.Difficulty]float64{
		domain.Easy:   60,
		domain.Medium: 100,
		domain.Hard:   150,
	}

	areaKeywords = map[domain.SkillArea][]string{
		domain.Technical: {
			"implementation", "architecture", "performance", "api", "database", "code", "service",
			"library", "framework", "data", "memory", "cache", "query", "deploy", "test", "configuration",
		},
		domain.ProblemSolving: {
			"algorithm", "complexity", "approach", "optimize", "optimization", "edge", "solution",
			"problem", "debug", "tradeoff", "structure", "step", "test", "input", "output",
		},
		domain.Communication: {
			"explain", "audience", "stakeholder", "stakeholders", "document", "documentation", "clear",
			"present", "listen", "feedback", "message", "example", "team", "meeting",
		},
		domain.Behavioral: {
			"team", "situation", "task", "action", "result", "learned", "conflict", "project",
			"responsibility", "decision", "colleague", "manager", "deadline", "outcome",
		},
		domain.SystemDesign: {
			"scalability", "availability", "latency", "throughput", "load", "balancer", "cache",
			"database", "replication", "partition", "shard", "queue", "consistency", "failover", "cost",
		},
	}
)

// HeuristicScorer scores answers with keyword and structure heuristics.
// It is deterministic and never fails.
type HeuristicScorer struct{}

func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{}
}

func (h *HeuristicScorer) Score(req ScoreRequest) (domain.Dimensions, error) {
	a := analyze(req.Answer)
	return domain.Dimensions{
		Accuracy:       accuracy(a, req.Question),
		Clarity:        clarity(a),
		Depth:          depth(a, req.Question),
		Relevance:      relevance(a, req.Question),
		TimeEfficiency: TimeEfficiency(req.TimeTaken, req.Question.TimeLimit),
	}, nil
}

// accuracy is 20 + 80 * expected concept coverage for answers of at least three words.
func accuracy(a analysis, q domain.Question) float64 {
	if len(a.tokens) < minWordsForAccuracy {
		return 0
	}
	if len(q.ExpectedConcepts) == 0 {
		return 50
	}
	covered, _ := splitConcepts(a, q.ExpectedConcepts)
	return 20 + 80*float64(len(covered))/float64(len(q.ExpectedConcepts))
}

// clarity combines clause length (40), sentence count (20), filler ratio (30) and structure markers (10).
func clarity(a analysis) float64 {
	words := float64(len(a.tokens))
	if words == 0 {
		return 0
	}

	clauses := a.clauses()
	if clauses == 0 {
		clauses = 1
	}
	avg := words / float64(clauses)

	var length float64
	switch {
	case avg < 6:
		length = 40 * avg / 6
	case avg <= 20:
		length = 40
	default:
		length = math.Max(0, 40-(avg-20)*2)
	}

	sentences := math.Min(20, 5*float64(len(a.sentences)))

	fillerCount := 0
	for _, f := range fillers {
		fillerCount += a.countPhrase(f)
	}
	fillerScore := 30 * (1 - math.Min(1, float64(fillerCount)/words*10))

	markers := 0
	for _, m := range structureMarkers {
		if a.containsPhrase(m) {
			markers++
		}
	}
	structure := math.Min(10, 5*float64(markers))

	return length + sentences + fillerScore + structure
}

// depth combines reasoning connectives (50), ideal point coverage (40) and length (10).
func depth(a analysis, q domain.Question) float64 {
	words := float64(len(a.tokens))
	if words == 0 {
		return 0
	}

	count := 0
	for _, c := range connectives {
		count += a.countPhrase(c)
	}
	reasoning := math.Min(50, 10*float64(count))

	coverage := 20.0
	if len(q.IdealAnswerPoints) > 0 {
		covered := 0
		for _, p := range q.IdealAnswerPoints {
			if a.covers(p) {
				covered++
			}
		}
		coverage = 40 * float64(covered) / float64(len(q.IdealAnswerPoints))
	}

	expected, ok := expectedWords[q.Difficulty]
	if !ok {
		expected = expectedWords[domain.Medium]
	}
	length := 10 * math.Min(1, words/expected)

	return reasoning + coverage + length
}

// relevance rewards distinct on-topic terms (70) and penalizes off-topic bulk through density (30).
func relevance(a analysis, q domain.Question) float64 {
	answerTerms := significant(a.tokens)
	if len(a.tokens) == 0 || len(answerTerms) == 0 {
		return 0
	}

	vocab := make(map[string]struct{})
	for _, c := range q.ExpectedConcepts {
		for _, t := range significant(tokenize(c)) {
			vocab[t] = struct{}{}
		}
	}
	for _, k := range areaKeywords[q.SkillArea] {
		vocab[k] = struct{}{}
	}
	for _, t := range significant(tokenize(q.Text)) {
		vocab[t] = struct{}{}
	}

	hits := 0
	for t := range vocab {
		if _, ok := a.tokenSet[t]; ok {
			hits++
		}
	}

	onTopic := 0
	for _, t := range answerTerms {
		if _, ok := vocab[t]; ok {
			onTopic++
		}
	}
	density := float64(onTopic) / float64(len(answerTerms))

	return 70*math.Min(1, float64(hits)/6) + 30*math.Min(1, density*4)
}

// TimeEfficiency gives full credit when time_taken/time_limit is within [0.7, 0.9]
// and decays linearly outside the band, reaching 0 at 0 and at 1.8.
func TimeEfficiency(timeTaken, timeLimit int) float64 {
	if timeTaken <= 0 || timeLimit <= 0 {
		return 0
	}
	ratio := float64(timeTaken) / float64(timeLimit)
	switch {
	case ratio < optimalBandLow:
		return 100 * ratio / optimalBandLow
	case ratio <= optimalBandHigh:
		return 100
	default:
		return math.Max(0, 100*(1-(ratio-optimalBandHigh)/optimalBandHigh))
	}
}

func splitConcepts(a analysis, concepts []string) (covered, missed []string) {
	covered = []string{}
	missed = []string{}
	for _, c := range concepts {
		if a.mentions(c) {
			covered = append(covered, c)
		} else {
			missed = append(missed, c)
		}
	}
	return covered, missed
}
