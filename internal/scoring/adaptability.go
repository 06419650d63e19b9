package scoring

import (
	"math"

	"github.com/spigell/mock-interviewer/internal/domain"
)

const neutralAdaptability = 50

// Adaptability measures how the candidate reacts to difficulty transitions.
//
// A transition event is a change of difficulty between two consecutive answers.
// After an escalation the reaction is clamp((delta+10)/20, -1, 1), so holding the
// score within 10 points of the previous answer already counts as positive. After a
// de-escalation the reaction is clamp(delta/20, -1, 1), so only recovery counts.
// The score is 50 + 50*mean(reactions).
//
// Without transitions and at least two answers the trend between the first and the
// second half of the interview is used: 50 + 25*clamp((mean2 - mean1)/40, -1, 1).
// Fewer than two answers yield the neutral 50.
func Adaptability(history []domain.AnswerEvaluation) float64 {
	if len(history) < 2 {
		return neutralAdaptability
	}

	var reactions []float64
	for i := 1; i < len(history); i++ {
		prev, cur := history[i-1], history[i]
		delta := cur.OverallScore - prev.OverallScore
		switch {
		case cur.Difficulty > prev.Difficulty:
			reactions = append(reactions, clamp((delta+10)/20, -1, 1))
		case cur.Difficulty < prev.Difficulty:
			reactions = append(reactions, clamp(delta/20, -1, 1))
		}
	}

	if len(reactions) > 0 {
		return domain.Round2(neutralAdaptability + 50*mean(reactions))
	}

	half := len(history) / 2
	first := overallScores(history[:half])
	second := overallScores(history[half:])
	trend := clamp((mean(second)-mean(first))/40, -1, 1)
	return domain.Round2(neutralAdaptability + 25*trend)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func overallScores(history []domain.AnswerEvaluation) []float64 {
	scores := make([]float64, len(history))
	for i, e := range history {
		scores[i] = e.OverallScore
	}
	return scores
}
