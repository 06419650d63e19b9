package questions

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/spigell/mock-interviewer/internal/config"
	"github.com/spigell/mock-interviewer/internal/domain"
)

func newTestGenerator(t *testing.T, seed uint64) *Generator {
	t.Helper()

	cfg := config.Default()
	cfg.Seed = seed
	g, err := NewGenerator(cfg, nil, nil)
	if err != nil {
		t.Fatalf("creating generator: %v", err)
	}
	return g
}

func sampleInputs() (*domain.CandidateProfile, *domain.JobRequirement) {
	profile := &domain.CandidateProfile{
		Name:         "Jane",
		Skills:       []string{"python", "sql"},
		Technologies: []string{"postgresql"},
	}
	job := &domain.JobRequirement{
		Title:          "Backend Engineer",
		RequiredSkills: []string{"python", "docker", "kubernetes"},
		Technologies:   []string{"Docker", "PostgreSQL", "Redis"},
	}
	return profile, job
}

func TestDefaultPackIsValid(t *testing.T) {
	t.Parallel()

	pack, err := DefaultPack()
	if err != nil {
		t.Fatalf("default pack must parse: %v", err)
	}
	for _, area := range domain.SkillAreas() {
		for _, d := range domain.Difficulties() {
			if pack.Variants(area, d) == 0 {
				t.Fatalf("no templates for %s/%s", area, d)
			}
		}
	}
}

func TestGenerateReturnsExactlyN(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, 7)
	profile, job := sampleInputs()

	for _, n := range []int{1, 2, 5, 7, 12} {
		plan, err := g.Generate(profile, job, n)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if len(plan) != n {
			t.Fatalf("n=%d: expected %d questions, got %d", n, n, len(plan))
		}
		for i, q := range plan {
			if q.TimeLimit <= 0 {
				t.Fatalf("question %d has non-positive time limit", i)
			}
			if !q.Difficulty.Valid() || !q.SkillArea.Valid() {
				t.Fatalf("question %d has invalid difficulty/area: %+v", i, q)
			}
			if q.Position != i {
				t.Fatalf("question %d has position %d", i, q.Position)
			}
			if strings.Contains(q.Text, "{") {
				t.Fatalf("question %d has unresolved placeholder: %q", i, q.Text)
			}
		}
	}
}

func TestGenerateRejectsNonPositiveN(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, 0)
	profile, job := sampleInputs()
	if _, err := g.Generate(profile, job, 0); err == nil {
		t.Fatalf("expected error for n=0")
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	t.Parallel()

	profile, job := sampleInputs()

	first, err := newTestGenerator(t, 42).Generate(profile, job, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := newTestGenerator(t, 42).Generate(profile, job, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("plans differ for the same seed")
	}
}

func TestDifficultySchedule(t *testing.T) {
	t.Parallel()

	want := []domain.Difficulty{domain.Easy, domain.Medium, domain.Medium, domain.Hard, domain.Hard}
	if got := DifficultySchedule(5); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := DifficultySchedule(1); !reflect.DeepEqual(got, []domain.Difficulty{domain.Easy}) {
		t.Fatalf("single question must be easy, got %v", got)
	}

	schedule := DifficultySchedule(10)
	for i := 1; i < len(schedule); i++ {
		if schedule[i] < schedule[i-1] {
			t.Fatalf("schedule must not decrease: %v", schedule)
		}
	}
}

func TestAreaOrderPrioritizesGaps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		gaps   []string
		expect []domain.SkillArea
	}{
		{
			name:   "no gaps keeps canonical order",
			expect: domain.SkillAreas(),
		},
		{
			name: "design and leadership gaps first",
			gaps: []string{"distributed systems", "leadership"},
			expect: []domain.SkillArea{
				domain.Behavioral, domain.SystemDesign,
				domain.Technical, domain.ProblemSolving, domain.Communication,
			},
		},
		{
			name: "technology gaps implicate technical",
			gaps: []string{"docker", "written communication"},
			expect: []domain.SkillArea{
				domain.Technical, domain.Communication,
				domain.ProblemSolving, domain.Behavioral, domain.SystemDesign,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := AreaOrder(tt.gaps); !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestGenerateUsesGapsAsTopics(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, 1)
	profile, job := sampleInputs()

	plan, err := g.Generate(profile, job, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// gaps are docker, kubernetes, redis (sorted); technologies follow.
	if plan[0].SkillArea != domain.Technical {
		t.Fatalf("expected first question to probe technical gaps, got %s", plan[0].SkillArea)
	}
	if plan[0].Topic != "docker" {
		t.Fatalf("expected first topic docker, got %q", plan[0].Topic)
	}
	if plan[0].ExpectedConcepts[0] != "docker" {
		t.Fatalf("expected topic in technical concepts, got %v", plan[0].ExpectedConcepts)
	}
	if plan[1].Topic != "kubernetes" {
		t.Fatalf("expected second topic kubernetes, got %q", plan[1].Topic)
	}
}

func TestGenerateFallsBackWithoutTerms(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, 1)
	profile := &domain.CandidateProfile{Skills: []string{"go"}}
	job := &domain.JobRequirement{Title: "Go Developer", RequiredSkills: []string{"go"}}

	plan, err := g.Generate(profile, job, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan[0].Topic != "REST API" {
		t.Fatalf("expected fallback concept REST API, got %q", plan[0].Topic)
	}
	if plan[0].RelatedTopic != "Caching" {
		t.Fatalf("expected fallback related concept Caching, got %q", plan[0].RelatedTopic)
	}
}

func TestAdaptIsClampedAndMonotonic(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, 3)
	profile, job := sampleInputs()
	plan, err := g.Generate(profile, job, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := plan[0]
	for i := 0; i < 5; i++ {
		next, err := g.Adapt(95, q)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if next.Difficulty < q.Difficulty || next.Difficulty > domain.Hard {
			t.Fatalf("escalation must be monotonic and clamped: %s -> %s", q.Difficulty, next.Difficulty)
		}
		if next.SkillArea != q.SkillArea || next.Topic != q.Topic {
			t.Fatalf("adapt must keep area and topic")
		}
		q = next
	}
	if q.Difficulty != domain.Hard {
		t.Fatalf("expected hard after repeated escalation, got %s", q.Difficulty)
	}

	for i := 0; i < 5; i++ {
		next, err := g.Adapt(10, q)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if next.Difficulty > q.Difficulty || next.Difficulty < domain.Easy {
			t.Fatalf("de-escalation must be monotonic and clamped: %s -> %s", q.Difficulty, next.Difficulty)
		}
		q = next
	}
	if q.Difficulty != domain.Easy {
		t.Fatalf("expected easy after repeated de-escalation, got %s", q.Difficulty)
	}
	if q.TimeLimit != 120 {
		t.Fatalf("expected easy time limit, got %d", q.TimeLimit)
	}
}

func TestAdaptKeepsQuestionInNeutralBand(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, 3)
	profile, job := sampleInputs()
	plan, err := g.Generate(profile, job, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	next, err := g.Adapt(65, plan[1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(next, plan[1]) {
		t.Fatalf("expected unchanged question, got %+v", next)
	}
}

func TestNextDifficulty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score   float64
		current domain.Difficulty
		expect  domain.Difficulty
	}{
		{80, domain.Easy, domain.Medium},
		{79.99, domain.Easy, domain.Easy},
		{50, domain.Medium, domain.Medium},
		{49.99, domain.Medium, domain.Easy},
		{100, domain.Hard, domain.Hard},
		{0, domain.Easy, domain.Easy},
	}

	for _, tt := range tests {
		if got := NextDifficulty(tt.score, tt.current, 80, 50); got != tt.expect {
			t.Fatalf("score %v from %s: expected %s, got %s", tt.score, tt.current, tt.expect, got)
		}
	}
}

func TestParsePackRejectsUnknownPlaceholder(t *testing.T) {
	t.Parallel()

	pack, err := DefaultPack()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	area := pack.Areas[domain.Technical]
	area.Templates = map[string][]string{
		"easy":   {"What is {gizmo}?"},
		"medium": {"ok"},
		"hard":   {"ok"},
	}
	pack.Areas[domain.Technical] = area

	var tmplErr *TemplateError
	if err := pack.Validate(); !errors.As(err, &tmplErr) {
		t.Fatalf("expected TemplateError, got %v", err)
	}
	if tmplErr.Area != domain.Technical || !strings.Contains(tmplErr.Reason, "gizmo") {
		t.Fatalf("unexpected template error: %v", tmplErr)
	}
}

func TestResolveReportsMissingValue(t *testing.T) {
	t.Parallel()

	pack, err := DefaultPack()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var tmplErr *TemplateError
	_, err = pack.Resolve(domain.SystemDesign, domain.Easy, 0, Placeholders{})
	if !errors.As(err, &tmplErr) {
		t.Fatalf("expected TemplateError, got %v", err)
	}
}
