package summarize

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PromptSet is the catalog of named prompts loaded from a YAML file, keyed by
// category ("system" or "user") and name.
type PromptSet struct {
	System map[string]string `yaml:"system"`
	User   map[string]string `yaml:"user"`
}

// LoadPrompts reads the prompt catalog from path.
func LoadPrompts(path string) (*PromptSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt file: %w", err)
	}
	var set PromptSet
	if err := yaml.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("parse prompt file: %w", err)
	}
	return &set, nil
}

// Lookup returns the prompt for a category and name.
func (p *PromptSet) Lookup(category, name string) (string, error) {
	var prompts map[string]string
	switch category {
	case "system":
		prompts = p.System
	case "user":
		prompts = p.User
	default:
		return "", fmt.Errorf("unknown prompt category: %s", category)
	}
	prompt, ok := prompts[name]
	if !ok {
		return "", fmt.Errorf("unknown %s prompt: %s", category, name)
	}
	return prompt, nil
}
