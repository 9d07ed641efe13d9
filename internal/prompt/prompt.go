// Package prompt loads extraction prompt templates from a YAML file
// keyed by name. Templates carry {sections} and {text} placeholders
// filled per chunk.
package prompt

import (
	"fmt"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v2"

	"finstmt/internal/domain"
)

// Template is a prompt with {sections} and {text} placeholders.
type Template string

// Fill substitutes the section hint and chunk text into the template.
func (t Template) Fill(section, text string) string {
	return strings.NewReplacer(
		"{sections}", section,
		"{text}", text,
	).Replace(string(t))
}

// Library is a keyed collection of prompt templates.
type Library struct {
	templates map[string]Template
}

// LoadLibrary parses a YAML file of key -> template string.
func LoadLibrary(path string) (*Library, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading prompt file %s: %w", path, err)
	}
	var entries map[string]string
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parsing prompt file %s: %w", path, err)
	}
	templates := make(map[string]Template, len(entries))
	for key, text := range entries {
		templates[key] = Template(text)
	}
	return &Library{templates: templates}, nil
}

// Get returns the template under key.
func (l *Library) Get(key string) (Template, error) {
	t, ok := l.templates[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownPromptKey, key)
	}
	return t, nil
}
