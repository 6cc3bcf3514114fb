package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/assetsaving/internal/contract"
	"github.com/roach88/assetsaving/internal/wire"
)

// Scenario defines a sequence of proposals and their expected verdicts.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// EvalTime is the evaluation time of every step that sets none.
	EvalTime wire.Timestamp `yaml:"eval_time"`

	// AccumulatePolicy is "unchecked" (default) or "reject".
	AccumulatePolicy string `yaml:"accumulate_policy,omitempty"`

	// LegacyMessages reports the legacy contract texts.
	LegacyMessages bool `yaml:"legacy_messages,omitempty"`

	// Parties is the alias directory. Keys default to alias-derived keys.
	Parties map[string]wire.PartyDoc `yaml:"parties"`

	// Records are named records the steps refer to.
	Records map[string]wire.RecordDoc `yaml:"records"`

	// Steps are verified in order.
	Steps []Step `yaml:"steps"`
}

// Step is one proposal and its expected verdict.
type Step struct {
	// Transition may be empty to test the missing-command rejection.
	Transition string         `yaml:"transition"`
	EvalTime   wire.Timestamp `yaml:"eval_time,omitempty"`
	Consumed   []string       `yaml:"consumed,omitempty"`
	Produced   []string       `yaml:"produced,omitempty"`
	Signers    []string       `yaml:"signers,omitempty"`
	Expect     *Expect        `yaml:"expect"`
}

// Expect is the verdict a step must produce.
type Expect struct {
	Accept bool `yaml:"accept"`

	// Message, when set, must equal the rejection message exactly.
	Message string `yaml:"message,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and that every
// reference resolves.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.EvalTime.IsZero() {
		return fmt.Errorf("eval_time is required")
	}
	switch s.AccumulatePolicy {
	case "", "unchecked", "reject":
	default:
		return fmt.Errorf("accumulate_policy must be unchecked or reject, got %q", s.AccumulatePolicy)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for name, r := range s.Records {
		if _, ok := s.Parties[r.Bank]; !ok {
			return fmt.Errorf("records.%s: unknown bank %q", name, r.Bank)
		}
		if _, ok := s.Parties[r.Customer]; !ok {
			return fmt.Errorf("records.%s: unknown customer %q", name, r.Customer)
		}
	}

	for i, step := range s.Steps {
		if step.Transition != "" {
			if _, err := contract.ParseTransition(step.Transition); err != nil {
				return fmt.Errorf("steps[%d]: %w", i, err)
			}
		}
		for _, name := range append(append([]string{}, step.Consumed...), step.Produced...) {
			if _, ok := s.Records[name]; !ok {
				return fmt.Errorf("steps[%d]: unknown record %q", i, name)
			}
		}
		if step.Expect == nil {
			return fmt.Errorf("steps[%d]: expect is required", i)
		}
		if step.Expect.Accept && step.Expect.Message != "" {
			return fmt.Errorf("steps[%d].expect: message is only valid when accept is false", i)
		}
	}
	return nil
}
