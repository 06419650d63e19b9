// Package profile loads the candidate profile and job requirement an interview runs against.
package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	_ "embed"

	"gopkg.in/yaml.v3"

	"github.com/spigell/mock-interviewer/internal/domain"
)

//go:embed sample.yaml
var sampleYAML []byte

// SampleAnswer is the canned answer used by non-interactive runs.
const SampleAnswer = "Based on my understanding, I would approach this problem by first " +
	"understanding the requirements and constraints. I would design a solution " +
	"that balances performance, scalability, and maintainability. The key is to " +
	"use best practices and consider edge cases. For example, I would implement " +
	"proper error handling and logging. Additionally, I would write unit tests " +
	"to ensure the solution works correctly. Throughout the process, I would " +
	"consider monitoring and optimization strategies."

// Document is the on-disk layout of a profile file.
type Document struct {
	Candidate *domain.CandidateProfile `yaml:"candidate"`
	Job       *domain.JobRequirement   `yaml:"job"`
}

// Validate checks both sections.
func (d *Document) Validate() error {
	if d == nil {
		return errors.New("profile document is empty")
	}
	if err := d.Candidate.Validate(); err != nil {
		return err
	}
	return d.Job.Validate()
}

// Load reads and validates a profile file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile file %q: %w", path, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("profile file %q: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a profile document. Unknown keys are rejected.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("profile document is empty")
		}
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Sample returns a fresh copy of the bundled demo profile.
func Sample() *Document {
	doc, err := Parse(sampleYAML)
	if err != nil {
		panic(fmt.Sprintf("bundled sample profile is invalid: %v", err))
	}
	return doc
}
