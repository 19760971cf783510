package harness

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TraceSnapshot captures a complete scenario execution for golden file
// comparison.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	List         string       `json:"list"`
	Pass         bool         `json:"pass"`
	Trace        []TraceEvent `json:"trace"`
	Order        []string     `json:"order"`
	Errors       []string     `json:"errors,omitempty"`
}

// MarshalSnapshot renders a snapshot as indented JSON with a trailing
// newline. encoding/json emits struct fields in declaration order, so
// the output is deterministic and golden files stay hand-editable.
func MarshalSnapshot(s TraceSnapshot) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// Snapshot builds the golden snapshot for a scenario run.
func Snapshot(scenario *Scenario, result *Result) TraceSnapshot {
	return TraceSnapshot{
		ScenarioName: scenario.Name,
		List:         scenario.List,
		Pass:         result.Pass,
		Trace:        result.Trace,
		Order:        result.Order,
		Errors:       result.Errors,
	}
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/scenarios/golden/{scenario.Name}.golden.
// That is the same golden/ directory the test CLI command resolves next
// to a scenario file, so both paths check the same fixtures.
//
// The snapshot includes the pass flag and any errors, so a failing
// assertion diverges from its golden and fails the test.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails outright.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	// Run the scenario
	result, err := Run(scenario)
	if err != nil {
		return err
	}

	data, err := MarshalSnapshot(Snapshot(scenario, result))
	if err != nil {
		return err
	}

	// Compare with golden file using goldie
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/scenarios/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return nil
}
