package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/asuai-cs/secverify/internal/invariant"
)

// Scenario defines one conformance case: input vectors plus the
// expected verdict for every registered invariant.
type Scenario struct {
	// Name uniquely identifies this scenario; it doubles as the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Vectors is the input sequence in wire encoding. May be empty to
	// exercise the vacuous-pass behavior.
	Vectors []ScenarioVector `yaml:"vectors"`

	// Expect lists the expected verdicts, one per invariant, in
	// registry order. Mutually exclusive with ExpectError.
	Expect []Expectation `yaml:"expect,omitempty"`

	// ExpectError names the expected failure class for malformed-input
	// scenarios: "validation" or "boundary".
	ExpectError string `yaml:"expect_error,omitempty"`
}

// ScenarioVector is one wire record in a scenario file.
type ScenarioVector struct {
	Instr     string `yaml:"instr"`
	PC        string `yaml:"pc"`
	MemDataIn string `yaml:"mem_data_in"`
}

// Expectation is the expected verdict for one invariant.
type Expectation struct {
	Name   string `yaml:"name"`
	Status string `yaml:"status"`

	// Counterexample, when set, must be a substring of the rendered
	// counterexample. Only meaningful for FAIL expectations.
	Counterexample string `yaml:"counterexample,omitempty"`
}

// Expected error classes.
const (
	ExpectValidationError = "validation"
	ExpectBoundaryError   = "boundary"
)

// LoadScenario reads and parses a scenario YAML file. Unknown fields
// are rejected to catch typos in scenario files.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.ExpectError != "" {
		if len(s.Expect) > 0 {
			return fmt.Errorf("expect and expect_error are mutually exclusive")
		}
		if s.ExpectError != ExpectValidationError && s.ExpectError != ExpectBoundaryError {
			return fmt.Errorf("unknown expect_error %q", s.ExpectError)
		}
		return nil
	}

	if len(s.Expect) == 0 {
		return fmt.Errorf("expect list is required (or expect_error)")
	}
	for i, e := range s.Expect {
		if e.Name == "" {
			return fmt.Errorf("expect[%d]: name is required", i)
		}
		switch invariant.Status(e.Status) {
		case invariant.StatusPass, invariant.StatusFail:
		default:
			return fmt.Errorf("expect[%d]: status must be PASS or FAIL, got %q", i, e.Status)
		}
		if e.Counterexample != "" && invariant.Status(e.Status) != invariant.StatusFail {
			return fmt.Errorf("expect[%d]: counterexample only valid with FAIL", i)
		}
	}
	return nil
}
