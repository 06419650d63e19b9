// Package report renders interview results for humans and dumps them for machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spigell/mock-interviewer/internal/domain"
	"github.com/spigell/mock-interviewer/internal/evaluation"
)

const (
	ruleWidth  = 80
	labelWidth = 24
)

var titleCaser = cases.Title(language.English)

// Data is everything the final report shows.
type Data struct {
	Score     domain.InterviewScore
	History   []domain.AnswerEvaluation
	StartedAt time.Time
	Duration  time.Duration
}

// AreaLabel is the display name of a skill area, e.g. "Problem Solving".
func AreaLabel(a domain.SkillArea) string {
	return titleCaser.String(a.Label())
}

// Write renders the final interview report.
func Write(w io.Writer, d Data) error {
	var b strings.Builder
	s := d.Score

	header(&b, "MOCK INTERVIEW REPORT")
	row(&b, "Candidate", s.Candidate)
	row(&b, "Position", s.JobTitle)
	if !d.StartedAt.IsZero() {
		row(&b, "Interview Date", d.StartedAt.Format("2006-01-02 15:04:05"))
	}
	if d.Duration > 0 {
		row(&b, "Duration", d.Duration.Round(time.Second).String())
	}

	header(&b, "OVERALL PERFORMANCE")
	row(&b, "Final Score", outOf100(s.TotalScore))
	row(&b, "Readiness Category", string(s.Readiness))
	row(&b, "Hiring Readiness", string(s.HiringReadiness))
	row(&b, "Estimated Role Fit", formatScore(s.RoleFit)+"%")
	row(&b, "Completion", formatScore(s.CompletionPercentage)+"%")
	row(&b, "Questions Answered", fmt.Sprintf("%d/%d", s.QuestionsAnswered, s.TotalQuestions))
	if s.EarlyTermination {
		row(&b, "Ended Early", "yes")
	}

	header(&b, "SKILL AREA BREAKDOWN")
	for _, area := range domain.SkillAreas() {
		as, ok := s.SkillAreaScores[area]
		if !ok || !as.Tested {
			row(&b, AreaLabel(area), "no data")
			continue
		}
		row(&b, AreaLabel(area), fmt.Sprintf("%s (%d %s)", outOf100(as.Score), as.Questions, plural(as.Questions, "question")))
	}

	header(&b, "COMPONENT SCORES")
	if s.TechnicalDepthTested {
		row(&b, "Technical Depth", outOf100(s.TechnicalDepth))
	} else {
		row(&b, "Technical Depth", "no data")
	}
	row(&b, "Communication Quality", outOf100(s.CommunicationQuality))
	row(&b, "Time Management", outOf100(s.TimeManagementScore))
	row(&b, "Adaptability", outOf100(s.AdaptabilityScore))

	list(&b, "STRENGTHS", "✓", s.Strengths)
	list(&b, "AREAS FOR IMPROVEMENT", "✗", s.Weaknesses)
	list(&b, "ACTIONABLE FEEDBACK", "•", s.ActionableFeedback)

	if len(d.History) > 0 {
		header(&b, "INDIVIDUAL QUESTION SCORES")
		for i, e := range d.History {
			fmt.Fprintf(&b, "\nQuestion %d (%s, %s): %s\n", i+1, AreaLabel(e.SkillArea), e.Difficulty, outOf100(e.OverallScore))
			fmt.Fprintf(&b, "  %s\n", componentLine(e.Scores))
		}
	}

	b.WriteString(strings.Repeat("=", ruleWidth) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteEvaluation renders the result of one answer.
func WriteEvaluation(w io.Writer, e domain.AnswerEvaluation) error {
	var b strings.Builder

	header(&b, "EVALUATION RESULTS")
	row(&b, "Overall Score", outOf100(e.OverallScore))
	b.WriteString("\nComponent Scores:\n")
	for _, dim := range domain.DimensionOrder() {
		row(&b, "  "+evaluation.DimensionLabel(dim), outOf100(e.Scores.Get(dim)))
	}

	if e.Feedback != "" {
		b.WriteString("\nFeedback:\n")
		b.WriteString(e.Feedback + "\n")
	}
	if len(e.Strengths) > 0 {
		b.WriteString("\nStrengths:\n")
		for _, item := range e.Strengths {
			fmt.Fprintf(&b, "  ✓ %s\n", item)
		}
	}
	if len(e.AreasForImprovement) > 0 {
		b.WriteString("\nAreas for Improvement:\n")
		for _, item := range e.AreasForImprovement {
			fmt.Fprintf(&b, "  ✗ %s\n", item)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// DumpToTmpFile writes v as indented JSON to a new temp file and returns its name.
func DumpToTmpFile(v any, pattern string) (string, error) {
	file, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func header(b *strings.Builder, title string) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintf(b, "\n%s\n%s\n%s\n", rule, title, rule)
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s %s\n", runewidth.FillRight(label+":", labelWidth), value)
}

func list(b *strings.Builder, title, marker string, items []string) {
	if len(items) == 0 {
		return
	}
	header(b, title)
	for _, item := range items {
		fmt.Fprintf(b, "  %s %s\n", marker, item)
	}
}

func componentLine(d domain.Dimensions) string {
	parts := make([]string, 0, len(domain.DimensionOrder()))
	for _, dim := range domain.DimensionOrder() {
		parts = append(parts, fmt.Sprintf("%s: %s", evaluation.DimensionLabel(dim), formatScore(d.Get(dim))))
	}
	return strings.Join(parts, " | ")
}

func outOf100(v float64) string {
	return formatScore(v) + "/100"
}

func formatScore(v float64) string {
	return strconv.FormatFloat(domain.Round2(v), 'f', -1, 64)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
