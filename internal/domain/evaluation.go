package domain

import (
	"fmt"
	"math"
)

// Dimension names one of the five scoring axes.
type Dimension string

const (
	DimensionAccuracy       Dimension = "accuracy"
	DimensionClarity        Dimension = "clarity"
	DimensionDepth          Dimension = "depth"
	DimensionRelevance      Dimension = "relevance"
	DimensionTimeEfficiency Dimension = "time_efficiency"
)

// DimensionOrder is the fixed order used for feedback and reports.
func DimensionOrder() []Dimension {
	return []Dimension{DimensionAccuracy, DimensionClarity, DimensionDepth, DimensionRelevance, DimensionTimeEfficiency}
}

// Dimensions holds the five 0-100 scores of one answer.
type Dimensions struct {
	Accuracy       float64 `json:"accuracy"`
	Clarity        float64 `json:"clarity"`
	Depth          float64 `json:"depth"`
	Relevance      float64 `json:"relevance"`
	TimeEfficiency float64 `json:"time_efficiency"`
}

func (d Dimensions) Get(dim Dimension) float64 {
	switch dim {
	case DimensionAccuracy:
		return d.Accuracy
	case DimensionClarity:
		return d.Clarity
	case DimensionDepth:
		return d.Depth
	case DimensionRelevance:
		return d.Relevance
	case DimensionTimeEfficiency:
		return d.TimeEfficiency
	}
	return 0
}

// Clamp bounds every dimension to [0, 100]; NaN becomes 0.
func (d Dimensions) Clamp() Dimensions {
	return Dimensions{
		Accuracy:       ClampScore(d.Accuracy),
		Clarity:        ClampScore(d.Clarity),
		Depth:          ClampScore(d.Depth),
		Relevance:      ClampScore(d.Relevance),
		TimeEfficiency: ClampScore(d.TimeEfficiency),
	}
}

// Weights are the evaluation weights. They must sum to exactly 1.0.
type Weights struct {
	Accuracy       float64 `mapstructure:"accuracy" json:"accuracy"`
	Clarity        float64 `mapstructure:"clarity" json:"clarity"`
	Depth          float64 `mapstructure:"depth" json:"depth"`
	Relevance      float64 `mapstructure:"relevance" json:"relevance"`
	TimeEfficiency float64 `mapstructure:"time-efficiency" json:"time_efficiency"`
}

const weightTolerance = 1e-9

// DefaultWeights returns 0.25/0.20/0.25/0.20/0.10.
func DefaultWeights() Weights {
	return Weights{Accuracy: 0.25, Clarity: 0.20, Depth: 0.25, Relevance: 0.20, TimeEfficiency: 0.10}
}

func (w Weights) Sum() float64 {
	return w.Accuracy + w.Clarity + w.Depth + w.Relevance + w.TimeEfficiency
}

func (w Weights) Validate() error {
	for _, v := range []float64{w.Accuracy, w.Clarity, w.Depth, w.Relevance, w.TimeEfficiency} {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("weights must be non-negative numbers, got %v", w)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %.6f", sum)
	}
	return nil
}

// Apply returns the weighted sum of the dimensions.
func (w Weights) Apply(d Dimensions) float64 {
	return d.Accuracy*w.Accuracy +
		d.Clarity*w.Clarity +
		d.Depth*w.Depth +
		d.Relevance*w.Relevance +
		d.TimeEfficiency*w.TimeEfficiency
}

// AnswerEvaluation is the immutable result of scoring one answer.
type AnswerEvaluation struct {
	QuestionID          string     `json:"question_id"`
	SkillArea           SkillArea  `json:"skill_area"`
	Difficulty          Difficulty `json:"difficulty"`
	AnswerText          string     `json:"answer_text"`
	TimeTaken           int        `json:"time_taken"`
	Scores              Dimensions `json:"scores"`
	OverallScore        float64    `json:"overall_score"`
	Feedback            string     `json:"feedback"`
	KeyPointsCovered    []string   `json:"key_points_covered"`
	MissedConcepts      []string   `json:"missed_concepts"`
	Strengths           []string   `json:"strengths"`
	AreasForImprovement []string   `json:"areas_for_improvement"`
}

// ClampScore bounds v to [0, 100].
func ClampScore(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

// Round2 rounds to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
