package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Loader loads and parses graph configuration files, validating against a
// kind registry of task constructors the caller controls.
type Loader struct {
	knownKinds map[string]bool
}

// NewLoader creates a configuration loader. knownKinds should list every
// kind string the caller's kind registry can construct; pass nil to skip
// kind validation entirely.
func NewLoader(knownKinds map[string]bool) *Loader {
	return &Loader{knownKinds: knownKinds}
}

// LoadFromFile loads and parses a graph configuration from a JSON file.
// File errors are wrapped with context (use os.IsNotExist to check for a
// missing file).
func (l *Loader) LoadFromFile(path string) (*GraphConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg, err := l.LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromBytes parses and validates a graph configuration from raw JSON
// bytes. Empty data (len==0) returns ErrConfigEmpty; parse errors are
// wrapped (use json.SyntaxError to check for parse failures).
func (l *Loader) LoadFromBytes(data []byte) (*GraphConfig, error) {
	if len(data) == 0 {
		return nil, ErrConfigEmpty
	}

	var cfg GraphConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	validator := NewValidator(l.knownKinds)
	if err := validator.Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
