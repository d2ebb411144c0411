package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFacts reads extracted facts from a YAML file, normalizing and
// validating every category against the closed enumeration.
func LoadFacts(path string) ([]Fact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read facts: %w", err)
	}

	var facts []Fact
	if err := yaml.Unmarshal(data, &facts); err != nil {
		return nil, fmt.Errorf("parse facts: %w", err)
	}

	for i, f := range facts {
		category, err := ParseCategory(string(f.Category))
		if err != nil {
			return nil, fmt.Errorf("fact %d (%q): %w", i, f.Text, err)
		}
		facts[i].Category = category
	}

	return facts, nil
}

// LoadAnnotatedFacts reads trust-annotated facts from a YAML file
func LoadAnnotatedFacts(path string) ([]AnnotatedFact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read annotated facts: %w", err)
	}

	var facts []AnnotatedFact
	if err := yaml.Unmarshal(data, &facts); err != nil {
		return nil, fmt.Errorf("parse annotated facts: %w", err)
	}

	for i, f := range facts {
		category, err := ParseCategory(string(f.Category))
		if err != nil {
			return nil, fmt.Errorf("fact %d (%q): %w", i, f.Text, err)
		}
		facts[i].Category = category
		if f.VerificationStatus == "" {
			facts[i].VerificationStatus = StatusUnverified
		}
	}

	return facts, nil
}

// SaveFacts writes extracted facts as YAML
func SaveFacts(facts []Fact, path string) error {
	data, err := yaml.Marshal(facts)
	if err != nil {
		return fmt.Errorf("marshal facts: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write facts: %w", err)
	}

	return nil
}

// SaveAnnotatedFacts writes annotated facts as YAML
func SaveAnnotatedFacts(facts []AnnotatedFact, path string) error {
	data, err := yaml.Marshal(facts)
	if err != nil {
		return fmt.Errorf("marshal annotated facts: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write annotated facts: %w", err)
	}

	return nil
}
