package prompts

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Override replaces the text of a registered prompt. Empty fields keep the
// registered value; validators and schema always come from the built-in spec.
type Override struct {
	Name    string `yaml:"name"`
	Version int    `yaml:"version"`
	System  string `yaml:"system"`
	User    string `yaml:"user"`
}

type overrideFile struct {
	Prompts []Override `yaml:"prompts"`
}

// LoadOverrides reads a YAML file of prompt overrides and re-registers each
// named prompt. An empty path is a no-op. Returns the names applied.
func LoadOverrides(path string) ([]PromptName, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt overrides: %w", err)
	}
	return ApplyOverrides(raw)
}

// ApplyOverrides parses raw YAML and applies it. Nothing is registered if any
// entry is invalid.
func ApplyOverrides(raw []byte) ([]PromptName, error) {
	var f overrideFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse prompt overrides: %w", err)
	}
	compiled := make([]Template, 0, len(f.Prompts))
	for i, o := range f.Prompts {
		name := PromptName(strings.TrimSpace(o.Name))
		base, ok := lookup(name)
		if !ok {
			return nil, fmt.Errorf("prompt override %d: unknown prompt %q", i, o.Name)
		}
		s := base.spec
		if o.Version > 0 {
			s.Version = o.Version
		} else {
			s.Version = base.Version + 1
		}
		if strings.TrimSpace(o.System) != "" {
			s.System = o.System
		}
		if strings.TrimSpace(o.User) != "" {
			s.User = o.User
		}
		t, err := MakeTemplate(s)
		if err != nil {
			return nil, fmt.Errorf("prompt override %s: %w", name, err)
		}
		compiled = append(compiled, t)
	}
	names := make([]PromptName, 0, len(compiled))
	for _, t := range compiled {
		Register(t)
		names = append(names, t.Name)
	}
	return names, nil
}
