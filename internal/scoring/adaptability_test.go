package scoring

import (
	"testing"

	"github.com/spigell/mock-interviewer/internal/domain"
)

type point struct {
	score float64
	diff  domain.Difficulty
}

func history(points ...point) []domain.AnswerEvaluation {
	out := make([]domain.AnswerEvaluation, len(points))
	for i, p := range points {
		out[i] = domain.AnswerEvaluation{OverallScore: p.score, Difficulty: p.diff}
	}
	return out
}

func TestAdaptability(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  []domain.AnswerEvaluation
		expect float64
	}{
		{
			name:   "no answers is neutral",
			expect: 50,
		},
		{
			name:   "single answer is neutral",
			input:  history(point{80, domain.Easy}),
			expect: 50,
		},
		{
			name:   "holding the score after escalation",
			input:  history(point{85, domain.Easy}, point{85, domain.Medium}),
			expect: 75,
		},
		{
			name:   "improving after escalation is capped",
			input:  history(point{80, domain.Easy}, point{95, domain.Medium}),
			expect: 100,
		},
		{
			name:   "collapsing after escalation",
			input:  history(point{90, domain.Medium}, point{50, domain.Hard}),
			expect: 0,
		},
		{
			name:   "recovering after de-escalation",
			input:  history(point{40, domain.Medium}, point{50, domain.Easy}),
			expect: 75,
		},
		{
			name:   "two events are averaged",
			input:  history(point{85, domain.Easy}, point{85, domain.Medium}, point{45, domain.Hard}, point{55, domain.Medium}),
			expect: 50 + 50*(0.5+(-1)+0.5)/3,
		},
		{
			name:   "flat difficulty uses the trend",
			input:  history(point{50, domain.Medium}, point{60, domain.Medium}, point{70, domain.Medium}, point{80, domain.Medium}),
			expect: 50 + 25*0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Adaptability(tt.input)
			if got != domain.Round2(tt.expect) {
				t.Fatalf("expected %v, got %v", domain.Round2(tt.expect), got)
			}
		})
	}
}
