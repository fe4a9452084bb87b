package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rgehrsitz/finplan/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of plan files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return config, nil
}

// Parse decodes and validates plan bytes. Unknown keys are rejected so a
// misspelled field does not silently default to zero.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("configuration validation failed: %w",
				domain.NewInvalidInputError("", "plan file is empty"))
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// ValidateConfiguration checks that at least one section is present and
// that every present section satisfies its calculator's preconditions
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config.IsEmpty() {
		return domain.NewInvalidInputError("", "plan needs at least one of snapshot, goal, scenario, wealth")
	}
	if config.Snapshot != nil {
		if err := config.Snapshot.Validate(); err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
	}
	if config.Goal != nil {
		if err := config.Goal.Validate(); err != nil {
			return fmt.Errorf("goal: %w", err)
		}
	}
	if config.Scenario != nil {
		if err := config.Scenario.Validate(); err != nil {
			return fmt.Errorf("scenario: %w", err)
		}
	}
	if config.Wealth != nil {
		if err := config.Wealth.Validate(); err != nil {
			return fmt.Errorf("wealth: %w", err)
		}
	}
	return nil
}
