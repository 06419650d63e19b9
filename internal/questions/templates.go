package questions

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spigell/mock-interviewer/internal/domain"
)

//go:embed templates.yaml
var defaultPackData []byte

const (
	PlaceholderConcept        = "concept"
	PlaceholderRelatedConcept = "related_concept"
	PlaceholderProblem        = "problem"
	PlaceholderSystem         = "system"
	PlaceholderTradeoff1      = "tradeoff1"
	PlaceholderTradeoff2      = "tradeoff2"
)

var (
	placeholderPattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

	knownPlaceholders = map[string]struct{}{
		PlaceholderConcept:        {},
		PlaceholderRelatedConcept: {},
		PlaceholderProblem:        {},
		PlaceholderSystem:         {},
		PlaceholderTradeoff1:      {},
		PlaceholderTradeoff2:      {},
	}
)

// TemplateError reports a malformed or missing question template.
type TemplateError struct {
	Area       domain.SkillArea
	Difficulty string
	Template   string
	Reason     string
}

func (e *TemplateError) Error() string {
	if e.Template == "" {
		return fmt.Sprintf("template %s/%s: %s", e.Area, e.Difficulty, e.Reason)
	}
	return fmt.Sprintf("template %s/%s %q: %s", e.Area, e.Difficulty, e.Template, e.Reason)
}

// Pools are the shared substitution values for the non-concept placeholders.
type Pools struct {
	Problems           []string `yaml:"problems"`
	Systems            []string `yaml:"systems"`
	TradeoffsPrimary   []string `yaml:"tradeoffs_primary"`
	TradeoffsSecondary []string `yaml:"tradeoffs_secondary"`
}

// AreaTemplates holds everything needed to produce questions for one skill area.
type AreaTemplates struct {
	Type              string              `yaml:"type"`
	FallbackConcepts  []string            `yaml:"fallback_concepts"`
	ExpectedConcepts  []string            `yaml:"expected_concepts"`
	IdealAnswerPoints []string            `yaml:"ideal_answer_points"`
	Templates         map[string][]string `yaml:"templates"`
}

// Pack is the template resolution capability keyed by (skill area, difficulty).
type Pack struct {
	Pools Pools                              `yaml:"pools"`
	Areas map[domain.SkillArea]AreaTemplates `yaml:"areas"`
}

// Placeholders carries the values substituted into a template.
type Placeholders map[string]string

// DefaultPack parses the embedded template pack.
func DefaultPack() (*Pack, error) {
	return ParsePack(defaultPackData)
}

// ParsePack decodes and validates a YAML template pack.
func ParsePack(data []byte) (*Pack, error) {
	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("decoding template pack: %w", err)
	}
	if err := pack.Validate(); err != nil {
		return nil, err
	}
	return &pack, nil
}

// Validate checks that every area and difficulty has at least one template,
// that every template only uses known placeholders and that the pools are populated.
func (p *Pack) Validate() error {
	pools := map[string][]string{
		"problems":            p.Pools.Problems,
		"systems":             p.Pools.Systems,
		"tradeoffs_primary":   p.Pools.TradeoffsPrimary,
		"tradeoffs_secondary": p.Pools.TradeoffsSecondary,
	}
	for name, values := range pools {
		if len(values) == 0 {
			return fmt.Errorf("template pack: pool %q is empty", name)
		}
	}

	for _, area := range domain.SkillAreas() {
		at, ok := p.Areas[area]
		if !ok {
			return &TemplateError{Area: area, Difficulty: "*", Reason: "no templates for skill area"}
		}
		if len(at.FallbackConcepts) == 0 {
			return &TemplateError{Area: area, Difficulty: "*", Reason: "fallback_concepts must not be empty"}
		}
		for _, d := range domain.Difficulties() {
			list := at.Templates[d.String()]
			if len(list) == 0 {
				return &TemplateError{Area: area, Difficulty: d.String(), Reason: "no templates"}
			}
			for _, tmpl := range list {
				if err := checkPlaceholders(area, d.String(), tmpl); err != nil {
					return err
				}
			}
		}
		for _, concept := range at.ExpectedConcepts {
			if err := checkPlaceholders(area, "*", concept); err != nil {
				return err
			}
		}
	}

	return nil
}

// Area returns the templates of a skill area.
func (p *Pack) Area(area domain.SkillArea) (AreaTemplates, error) {
	at, ok := p.Areas[area]
	if !ok {
		return AreaTemplates{}, &TemplateError{Area: area, Difficulty: "*", Reason: "no templates for skill area"}
	}
	return at, nil
}

// Variants returns the number of templates for (area, difficulty).
func (p *Pack) Variants(area domain.SkillArea, d domain.Difficulty) int {
	return len(p.Areas[area].Templates[d.String()])
}

// Resolve fills the template at the given variant index. The index wraps around.
func (p *Pack) Resolve(area domain.SkillArea, d domain.Difficulty, variant int, values Placeholders) (string, error) {
	at, err := p.Area(area)
	if err != nil {
		return "", err
	}
	list := at.Templates[d.String()]
	if len(list) == 0 {
		return "", &TemplateError{Area: area, Difficulty: d.String(), Reason: "no templates"}
	}
	if variant < 0 {
		variant = -variant
	}
	return fill(area, d.String(), list[variant%len(list)], values)
}

// Fill substitutes placeholders in an arbitrary area-scoped string, such as an expected concept.
func (p *Pack) Fill(area domain.SkillArea, text string, values Placeholders) (string, error) {
	return fill(area, "*", text, values)
}

func fill(area domain.SkillArea, difficulty, tmpl string, values Placeholders) (string, error) {
	var missing string
	out := placeholderPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[1 : len(match)-1]
		value, ok := values[name]
		if !ok || strings.TrimSpace(value) == "" {
			if missing == "" {
				missing = name
			}
			return match
		}
		return value
	})
	if missing != "" {
		return "", &TemplateError{Area: area, Difficulty: difficulty, Template: tmpl, Reason: fmt.Sprintf("no value for placeholder {%s}", missing)}
	}
	return out, nil
}

func checkPlaceholders(area domain.SkillArea, difficulty, tmpl string) error {
	for _, match := range placeholderPattern.FindAllStringSubmatch(tmpl, -1) {
		if _, ok := knownPlaceholders[match[1]]; !ok {
			return &TemplateError{Area: area, Difficulty: difficulty, Template: tmpl, Reason: fmt.Sprintf("unknown placeholder {%s}", match[1])}
		}
	}
	if strings.Count(tmpl, "{") != strings.Count(tmpl, "}") {
		return &TemplateError{Area: area, Difficulty: difficulty, Template: tmpl, Reason: "unbalanced braces"}
	}
	return nil
}
