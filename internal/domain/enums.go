package domain

import (
	"fmt"
	"strings"
)

// Difficulty is the ordered question complexity level: easy < medium < hard.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

var difficultyNames = [...]string{"easy", "medium", "hard"}

// Difficulties lists every level in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

func (d Difficulty) String() string {
	if !d.Valid() {
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

func (d Difficulty) Valid() bool {
	return d >= Easy && d <= Hard
}

// Harder returns the next level up, clamped at Hard.
func (d Difficulty) Harder() Difficulty {
	if d >= Hard {
		return Hard
	}
	return d + 1
}

// Easier returns the next level down, clamped at Easy.
func (d Difficulty) Easier() Difficulty {
	if d <= Easy {
		return Easy
	}
	return d - 1
}

// MarshalText keeps difficulties human readable in JSON and YAML.
func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid difficulty %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDifficulty parses a case-insensitive difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range difficultyNames {
		if name == s {
			return Difficulty(i), nil
		}
	}
	return Easy, fmt.Errorf("unknown difficulty %q", s)
}

// SkillArea categorizes questions and score breakdowns.
type SkillArea string

const (
	Technical      SkillArea = "technical"
	ProblemSolving SkillArea = "problem_solving"
	Communication  SkillArea = "communication"
	Behavioral     SkillArea = "behavioral"
	SystemDesign   SkillArea = "system_design"
)

// SkillAreas returns the canonical area order used for cycling and reports.
func SkillAreas() []SkillArea {
	return []SkillArea{Technical, ProblemSolving, Communication, Behavioral, SystemDesign}
}

func (a SkillArea) Valid() bool {
	switch a {
	case Technical, ProblemSolving, Communication, Behavioral, SystemDesign:
		return true
	}
	return false
}

// Label is the area name with underscores replaced by spaces.
func (a SkillArea) Label() string {
	return strings.ReplaceAll(string(a), "_", " ")
}

// ParseSkillArea accepts the canonical names as well as spaced or dashed variants.
func ParseSkillArea(s string) (SkillArea, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	area := SkillArea(normalized)
	if !area.Valid() {
		return "", fmt.Errorf("unknown skill area %q", s)
	}
	return area, nil
}

// Readiness bands the total interview score.
type Readiness string

const (
	ReadinessStrong           Readiness = "Strong"
	ReadinessAverage          Readiness = "Average"
	ReadinessNeedsImprovement Readiness = "Needs Improvement"
)

// HiringReadiness bands the blend of total score and role fit.
type HiringReadiness string

const (
	HiringReady            HiringReadiness = "Ready"
	HiringNeedsDevelopment HiringReadiness = "Needs Development"
	HiringNotReady         HiringReadiness = "Not Ready"
)
