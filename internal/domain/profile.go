package domain

import (
	"fmt"
	"sort"
	"strings"
)

// CandidateProfile is supplied by resume extraction and never mutated by the core.
type CandidateProfile struct {
	Name            string   `json:"name" yaml:"name"`
	Skills          []string `json:"skills" yaml:"skills"`
	Technologies    []string `json:"technologies" yaml:"technologies"`
	ExperienceYears int      `json:"experience_years" yaml:"experience_years"`
	Strengths       []string `json:"strengths,omitempty" yaml:"strengths"`
}

// JobRequirement is supplied by job description extraction and never mutated by the core.
type JobRequirement struct {
	Title           string   `json:"title" yaml:"title"`
	RequiredSkills  []string `json:"required_skills" yaml:"required_skills"`
	PreferredSkills []string `json:"preferred_skills" yaml:"preferred_skills"`
	Technologies    []string `json:"technologies" yaml:"technologies"`
	ExperienceLevel string   `json:"experience_level" yaml:"experience_level"`
}

// ValidationError reports a malformed external input.
type ValidationError struct {
	Input  string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("%s.%s: %s", e.Input, e.Field, e.Reason)
}

// Validate rejects a profile with no usable skill signal or a negative experience.
func (p *CandidateProfile) Validate() error {
	if p == nil {
		return &ValidationError{Input: "candidate", Reason: "profile is required"}
	}
	if p.ExperienceYears < 0 {
		return &ValidationError{Input: "candidate", Field: "experience_years", Reason: "must not be negative"}
	}
	if len(NormalizeTerms(p.Skills)) == 0 && len(NormalizeTerms(p.Technologies)) == 0 {
		return &ValidationError{Input: "candidate", Field: "skills", Reason: "at least one skill or technology is required"}
	}
	return nil
}

// Validate rejects a requirement that names nothing to interview against.
func (r *JobRequirement) Validate() error {
	if r == nil {
		return &ValidationError{Input: "job", Reason: "requirement is required"}
	}
	if strings.TrimSpace(r.Title) == "" {
		return &ValidationError{Input: "job", Field: "title", Reason: "must not be empty"}
	}
	if len(NormalizeTerms(r.RequiredSkills)) == 0 &&
		len(NormalizeTerms(r.PreferredSkills)) == 0 &&
		len(NormalizeTerms(r.Technologies)) == 0 {
		return &ValidationError{Input: "job", Field: "required_skills", Reason: "at least one skill or technology is required"}
	}
	return nil
}

// Capabilities is the candidate's skills and technologies as one normalized set.
func (p *CandidateProfile) Capabilities() map[string]struct{} {
	return toSet(NormalizeTerms(append(append([]string{}, p.Skills...), p.Technologies...)))
}

// SkillGaps returns (required ∪ preferred ∪ technologies) − (candidate skills ∪ technologies),
// lower-cased and sorted.
func SkillGaps(p *CandidateProfile, r *JobRequirement) []string {
	if p == nil || r == nil {
		return nil
	}

	have := p.Capabilities()
	wanted := NormalizeTerms(append(append(append([]string{}, r.RequiredSkills...), r.PreferredSkills...), r.Technologies...))

	gaps := make([]string, 0, len(wanted))
	for _, term := range wanted {
		if _, ok := have[term]; !ok {
			gaps = append(gaps, term)
		}
	}
	return gaps
}

// NormalizeTerms lower-cases, trims, de-duplicates and sorts the given terms.
func NormalizeTerms(terms []string) []string {
	set := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		term = strings.Join(strings.Fields(strings.ToLower(term)), " ")
		if term == "" {
			continue
		}
		set[term] = struct{}{}
	}

	result := make([]string, 0, len(set))
	for term := range set {
		result = append(result, term)
	}
	sort.Strings(result)
	return result
}

func toSet(terms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		set[term] = struct{}{}
	}
	return set
}
