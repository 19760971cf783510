package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScenario writes scenario YAML to a temp file and returns its path.
func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, `
name: test_scenario
description: "Append then insert behind the first task"
list: inbox
setup:
  - op: append
    task: A
steps:
  - op: insert_after
    task: B
    title: "buy milk"
    after: A
assertions:
  - type: order
    order: [A, B]
  - type: unique_ranks
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "Append then insert behind the first task", scenario.Description)
	assert.Equal(t, "inbox", scenario.List)
	require.Len(t, scenario.Setup, 1)
	require.Len(t, scenario.Steps, 1)
	require.Len(t, scenario.Assertions, 2)

	assert.Equal(t, OpAppend, scenario.Setup[0].Op)
	assert.Equal(t, "A", scenario.Setup[0].Task)

	step := scenario.Steps[0]
	assert.Equal(t, OpInsertAfter, step.Op)
	assert.Equal(t, "B", step.Task)
	assert.Equal(t, "buy milk", step.Title)
	assert.Equal(t, "A", step.After)

	assert.Equal(t, AssertOrder, scenario.Assertions[0].Type)
	assert.Equal(t, []string{"A", "B"}, scenario.Assertions[0].Order)
	assert.Equal(t, AssertUniqueRanks, scenario.Assertions[1].Type)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_MalformedYAML(t *testing.T) {
	path := writeScenario(t, "name: [unclosed")

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_UnknownFieldsRejected(t *testing.T) {
	// "step:" instead of "steps:" must fail loudly instead of silently
	// running zero steps.
	path := writeScenario(t, `
name: typo
description: "typo in steps key"
list: inbox
step:
  - op: append
    task: A
assertions:
  - type: unique_ranks
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing name",
			content: `
description: "d"
list: inbox
steps:
  - op: append
    task: A
assertions:
  - type: unique_ranks
`,
			wantErr: "name is required",
		},
		{
			name: "missing description",
			content: `
name: s
list: inbox
steps:
  - op: append
    task: A
assertions:
  - type: unique_ranks
`,
			wantErr: "description is required",
		},
		{
			name: "missing list",
			content: `
name: s
description: "d"
steps:
  - op: append
    task: A
assertions:
  - type: unique_ranks
`,
			wantErr: "list is required",
		},
		{
			name: "missing steps",
			content: `
name: s
description: "d"
list: inbox
assertions:
  - type: unique_ranks
`,
			wantErr: "steps list is required",
		},
		{
			name: "missing assertions",
			content: `
name: s
description: "d"
list: inbox
steps:
  - op: append
    task: A
`,
			wantErr: "assertions list is required",
		},
		{
			name: "negative max_key_len",
			content: `
name: s
description: "d"
list: inbox
max_key_len: -1
steps:
  - op: append
    task: A
assertions:
  - type: unique_ranks
`,
			wantErr: "max_key_len must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, tt.content)

			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_SetupRejectsExpectError(t *testing.T) {
	path := writeScenario(t, `
name: s
description: "setup must not expect errors"
list: inbox
setup:
  - op: append
    task: A
    expect_error: DUPLICATE_TASK
steps:
  - op: append
    task: B
assertions:
  - type: unique_ranks
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expect_error is not allowed in setup")
}

func TestLoadScenario_StepValidation(t *testing.T) {
	tests := []struct {
		name    string
		step    string
		wantErr string
	}{
		{
			name:    "missing op",
			step:    "  - task: A",
			wantErr: "op is required",
		},
		{
			name:    "unknown op",
			step:    "  - op: shuffle",
			wantErr: `unknown op "shuffle"`,
		},
		{
			name:    "append missing task",
			step:    "  - op: append",
			wantErr: "task is required for append",
		},
		{
			name: "append with after",
			step: `  - op: append
    task: A
    after: B`,
			wantErr: "after is not allowed for append",
		},
		{
			name:    "insert_after missing task",
			step:    "  - op: insert_after",
			wantErr: "task is required for insert_after",
		},
		{
			name:    "move_after missing task",
			step:    "  - op: move_after",
			wantErr: "task is required for move_after",
		},
		{
			name: "move_after with title",
			step: `  - op: move_after
    task: A
    title: nope`,
			wantErr: "title is not allowed for move_after",
		},
		{
			name:    "remove missing task",
			step:    "  - op: remove",
			wantErr: "task is required for remove",
		},
		{
			name: "remove with after",
			step: `  - op: remove
    task: A
    after: B`,
			wantErr: "after is not allowed for remove",
		},
		{
			name: "remove with title",
			step: `  - op: remove
    task: A
    title: nope`,
			wantErr: "title is not allowed for remove",
		},
		{
			name: "reload with task",
			step: `  - op: reload
    task: A`,
			wantErr: "not allowed for reload",
		},
		{
			name: "rebalance with after",
			step: `  - op: rebalance
    after: A`,
			wantErr: "not allowed for rebalance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, `
name: s
description: "d"
list: inbox
steps:
`+tt.step+`
assertions:
  - type: unique_ranks
`)

			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_AssertionValidation(t *testing.T) {
	tests := []struct {
		name      string
		assertion string
		wantErr   string
	}{
		{
			name:      "missing type",
			assertion: "  - order: [A]",
			wantErr:   "type is required",
		},
		{
			name:      "unknown type",
			assertion: "  - type: rank_histogram",
			wantErr:   `unknown assertion type "rank_histogram"`,
		},
		{
			name:      "order missing order list",
			assertion: "  - type: order",
			wantErr:   "order list is required",
		},
		{
			name: "unique_ranks with parameters",
			assertion: `  - type: unique_ranks
    count: 2`,
			wantErr: "unique_ranks takes no parameters",
		},
		{
			name: "rebalance_count negative",
			assertion: `  - type: rebalance_count
    count: -1`,
			wantErr: "count must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, `
name: s
description: "d"
list: inbox
steps:
  - op: append
    task: A
assertions:
`+tt.assertion+`
`)

			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_EmptyOrderAllowed(t *testing.T) {
	// An explicitly empty order asserts the list ends up empty.
	path := writeScenario(t, `
name: s
description: "remove everything"
list: inbox
steps:
  - op: append
    task: A
  - op: remove
    task: A
assertions:
  - type: order
    order: []
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	require.Len(t, scenario.Assertions, 1)
	assert.NotNil(t, scenario.Assertions[0].Order)
	assert.Empty(t, scenario.Assertions[0].Order)
}

func TestLoadScenario_RebalanceCountZeroAllowed(t *testing.T) {
	path := writeScenario(t, `
name: s
description: "no rebalances expected"
list: inbox
steps:
  - op: append
    task: A
assertions:
  - type: rebalance_count
    count: 0
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	require.Len(t, scenario.Assertions, 1)
	assert.Equal(t, 0, scenario.Assertions[0].Count)
}

func TestLoadScenario_MaxKeyLenOverride(t *testing.T) {
	path := writeScenario(t, `
name: s
description: "tight threshold"
list: inbox
max_key_len: 3
steps:
  - op: append
    task: A
assertions:
  - type: unique_ranks
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, 3, scenario.MaxKeyLen)
}

func TestOperationConstants(t *testing.T) {
	assert.Equal(t, "append", OpAppend)
	assert.Equal(t, "insert_after", OpInsertAfter)
	assert.Equal(t, "move_after", OpMoveAfter)
	assert.Equal(t, "remove", OpRemove)
	assert.Equal(t, "reload", OpReload)
	assert.Equal(t, "rebalance", OpRebalance)
}

func TestAssertionConstants(t *testing.T) {
	assert.Equal(t, "order", AssertOrder)
	assert.Equal(t, "unique_ranks", AssertUniqueRanks)
	assert.Equal(t, "rebalance_count", AssertRebalanceCount)
}

func TestLoadExampleScenarios(t *testing.T) {
	// Every shipped scenario file must load cleanly and carry the name
	// its golden file is resolved by.
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths, "no example scenarios found")

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			base := filepath.Base(path)
			want := base[:len(base)-len(filepath.Ext(base))]
			assert.Equal(t, want, scenario.Name, "scenario name must match file name")
		})
	}
}
