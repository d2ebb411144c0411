package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Channel is the delivery channel for an outreach message
type Channel string

const (
	ChannelEmail      Channel = "email"
	ChannelLinkedInDM Channel = "linkedin_dm"
)

// RecipientType classifies the target of an outreach message
type RecipientType string

const (
	RecipientRecruiter     RecipientType = "recruiter"
	RecipientHiringManager RecipientType = "hiring_manager"
	RecipientFounder       RecipientType = "founder"
)

// PromptSpec describes one outreach scenario to evaluate. Specs are loaded
// from static configuration and are read-only during evaluation.
type PromptSpec struct {
	ID            string        `json:"id" yaml:"id"`
	Channel       Channel       `json:"channel" yaml:"channel"`
	RecipientType RecipientType `json:"recipient_type" yaml:"recipient_type"`
	Company       string        `json:"company" yaml:"company"`
	TargetRole    string        `json:"target_role" yaml:"target_role"`
	Tone          string        `json:"tone" yaml:"tone"`
	MaxWords      int           `json:"max_words" yaml:"max_words"`
	AllowedFacts  []string      `json:"allowed_facts" yaml:"allowed_facts"`
	MustInclude   []string      `json:"must_include" yaml:"must_include"`
	Notes         string        `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Validate checks a PromptSpec for structural errors. Invalid specs must be
// rejected at load time, never silently defaulted.
func (p PromptSpec) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("prompt spec missing id")
	}
	switch p.Channel {
	case ChannelEmail, ChannelLinkedInDM:
	default:
		return fmt.Errorf("prompt %s: unknown channel %q", p.ID, p.Channel)
	}
	switch p.RecipientType {
	case RecipientRecruiter, RecipientHiringManager, RecipientFounder:
	default:
		return fmt.Errorf("prompt %s: unknown recipient type %q", p.ID, p.RecipientType)
	}
	if p.MaxWords <= 0 {
		return fmt.Errorf("prompt %s: max_words must be positive, got %d", p.ID, p.MaxWords)
	}
	return nil
}

// LoadPromptSpecs reads prompt specs from a YAML or JSON file and validates
// every entry before returning.
func LoadPromptSpecs(path string) ([]PromptSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts: %w", err)
	}

	var specs []PromptSpec
	if filepath.Ext(path) == ".json" {
		if err := json.Unmarshal(data, &specs); err != nil {
			return nil, fmt.Errorf("parse prompts: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &specs); err != nil {
			return nil, fmt.Errorf("parse prompts: %w", err)
		}
	}

	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, err
		}
	}

	return specs, nil
}
