package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// Scenarios replay a sequence of list operations and assert on the
// resulting order and rank invariants.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// List is the container ID the scenario operates on.
	List string `yaml:"list"`

	// MaxKeyLen overrides the engine's automatic rebalance threshold.
	// Zero keeps the engine default.
	MaxKeyLen int `yaml:"max_key_len,omitempty"`

	// Setup contains operations that establish initial state.
	// Setup steps must succeed; expect_error is not allowed here.
	Setup []Step `yaml:"setup,omitempty"`

	// Steps contains the main operation sequence.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final order and rank invariants.
	// Supported types: order, unique_ranks, rebalance_count
	Assertions []Assertion `yaml:"assertions"`
}

// Step represents a single list operation.
type Step struct {
	// Op names the operation: append, insert_after, move_after, remove,
	// reload, or rebalance.
	Op string `yaml:"op"`

	// Task is the task ID the operation targets.
	// Required for append, insert_after, move_after, and remove.
	Task string `yaml:"task,omitempty"`

	// Title is the task title for append and insert_after.
	// Defaults to the task ID.
	Title string `yaml:"title,omitempty"`

	// After is the anchor task ID for insert_after and move_after.
	// Empty means the front of the list.
	After string `yaml:"after,omitempty"`

	// ExpectError names the error code this step must fail with.
	// Empty means the step must succeed.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Assertion validates the final state of the scenario's list.
type Assertion struct {
	// Type specifies the assertion type:
	// - "order": final task ID order matches exactly
	// - "unique_ranks": ranks strictly increase and memory matches store
	// - "rebalance_count": engine performed exactly Count rebalances
	Type string `yaml:"type"`

	// Order is the expected task ID order (used by order).
	Order []string `yaml:"order,omitempty"`

	// Count is the expected number of rebalances (used by rebalance_count).
	Count int `yaml:"count,omitempty"`
}

// Step operation constants.
const (
	OpAppend      = "append"
	OpInsertAfter = "insert_after"
	OpMoveAfter   = "move_after"
	OpRemove      = "remove"
	OpReload      = "reload"
	OpRebalance   = "rebalance"
)

// Assertion type constants.
const (
	AssertOrder          = "order"
	AssertUniqueRanks    = "unique_ranks"
	AssertRebalanceCount = "rebalance_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "step:" vs "steps:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate required fields
	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.List == "" {
		return fmt.Errorf("list is required")
	}

	if s.MaxKeyLen < 0 {
		return fmt.Errorf("max_key_len must be non-negative")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	// Validate setup steps (if present)
	for i, step := range s.Setup {
		if err := validateStep(&step); err != nil {
			return fmt.Errorf("setup[%d]: %w", i, err)
		}
		if step.ExpectError != "" {
			return fmt.Errorf("setup[%d]: expect_error is not allowed in setup", i)
		}
	}

	// Validate main steps
	for i, step := range s.Steps {
		if err := validateStep(&step); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}

	// Validate assertions
	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStep validates a single step based on its operation.
func validateStep(s *Step) error {
	switch s.Op {
	case "":
		return fmt.Errorf("op is required")
	case OpAppend:
		if s.Task == "" {
			return fmt.Errorf("task is required for %s", s.Op)
		}
		if s.After != "" {
			return fmt.Errorf("after is not allowed for %s", s.Op)
		}
	case OpInsertAfter, OpMoveAfter:
		if s.Task == "" {
			return fmt.Errorf("task is required for %s", s.Op)
		}
	case OpRemove:
		if s.Task == "" {
			return fmt.Errorf("task is required for %s", s.Op)
		}
		if s.After != "" {
			return fmt.Errorf("after is not allowed for %s", s.Op)
		}
		if s.Title != "" {
			return fmt.Errorf("title is not allowed for %s", s.Op)
		}
	case OpReload, OpRebalance:
		if s.Task != "" || s.After != "" || s.Title != "" {
			return fmt.Errorf("task, title, and after are not allowed for %s", s.Op)
		}
	default:
		return fmt.Errorf("unknown op %q", s.Op)
	}

	if s.Op == OpMoveAfter && s.Title != "" {
		return fmt.Errorf("title is not allowed for %s", s.Op)
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertOrder:
		if a.Order == nil {
			return fmt.Errorf("assertions[%d]: order list is required for order", index)
		}
	case AssertUniqueRanks:
		if len(a.Order) != 0 || a.Count != 0 {
			return fmt.Errorf("assertions[%d]: unique_ranks takes no parameters", index)
		}
	case AssertRebalanceCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for rebalance_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
