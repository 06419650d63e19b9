package evaluation

import (
	"fmt"
	"strings"

	"github.com/spigell/mock-interviewer/internal/domain"
)

const (
	strengthThreshold    = 80
	improvementThreshold = 50

	maxMissedInFeedback = 2
)

var dimensionLabels = map[domain.Dimension]string{
	domain.DimensionAccuracy:       "Accuracy",
	domain.DimensionClarity:        "Clarity",
	domain.DimensionDepth:          "Depth",
	domain.DimensionRelevance:      "Relevance",
	domain.DimensionTimeEfficiency: "Time Management",
}

var strengthTemplates = map[domain.Dimension]string{
	domain.DimensionAccuracy:       "Covered the expected concepts accurately",
	domain.DimensionClarity:        "Clear and well-structured explanation",
	domain.DimensionDepth:          "Thorough answer backed by reasoning and examples",
	domain.DimensionRelevance:      "Stayed focused on the question",
	domain.DimensionTimeEfficiency: "Used the available time well",
}

var improvementTemplates = map[domain.Dimension]string{
	domain.DimensionAccuracy:  "Address the core concepts the question asks about",
	domain.DimensionClarity:   "Structure the answer into shorter, direct sentences and avoid filler words",
	domain.DimensionDepth:     "Add concrete examples and explain the reasoning behind them",
	domain.DimensionRelevance: "Keep the answer focused on the question topic",
}

// DimensionLabel is the display name of a dimension.
func DimensionLabel(d domain.Dimension) string {
	return dimensionLabels[d]
}

// Band names the performance band of a score.
func Band(score float64) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

var bandAdvice = map[string]string{
	"Excellent":         "Well done!",
	"Good":              "Solid response.",
	"Fair":              "Room for improvement.",
	"Needs Improvement": "Focus here.",
}

func feedbackText(dims domain.Dimensions) string {
	lines := make([]string, 0, len(domain.DimensionOrder()))
	for _, d := range domain.DimensionOrder() {
		band := Band(dims.Get(d))
		lines = append(lines, fmt.Sprintf("%s: %s - %s", dimensionLabels[d], band, bandAdvice[band]))
	}
	return strings.Join(lines, "\n")
}

func strengths(dims domain.Dimensions) []string {
	out := []string{}
	for _, d := range domain.DimensionOrder() {
		if dims.Get(d) >= strengthThreshold {
			out = append(out, strengthTemplates[d])
		}
	}
	return out
}

func improvements(dims domain.Dimensions, missed []string, timeTaken, timeLimit int) []string {
	out := []string{}
	for _, d := range domain.DimensionOrder() {
		if dims.Get(d) >= improvementThreshold {
			continue
		}
		if d == domain.DimensionTimeEfficiency {
			out = append(out, pacingAdvice(timeTaken, timeLimit))
			continue
		}
		out = append(out, improvementTemplates[d])
	}

	if len(missed) > 0 {
		out = append(out, missingConceptsLine(missed))
	}
	return out
}

func missingConceptsLine(missed []string) string {
	if len(missed) > maxMissedInFeedback {
		missed = missed[:maxMissedInFeedback]
	}
	return "Missing key concepts: " + strings.Join(missed, ", ")
}

func pacingAdvice(timeTaken, timeLimit int) string {
	if timeLimit > 0 && float64(timeTaken) > optimalBandHigh*float64(timeLimit) {
		return "Answer more concisely to stay within the time limit"
	}
	return "Take more time to develop the answer fully"
}
