package harness

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/betwixt/internal/list"
	"github.com/roach88/betwixt/internal/store"
	"github.com/roach88/betwixt/internal/task"
)

// newAssertionContext builds a real store and list with the given tasks
// appended, for exercising assertions against genuine final state.
func newAssertionContext(t *testing.T, ids ...string) *AssertionContext {
	t.Helper()
	ctx := context.Background()

	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.EnsureList(ctx, "inbox"))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	l := list.New("inbox", st, list.WithLogger(logger))
	for _, id := range ids {
		require.NoError(t, l.Append(ctx, task.Task{ID: id, Title: id}))
	}

	return &AssertionContext{List: l, Store: st, Ctx: ctx}
}

func TestAssertOrder_Match(t *testing.T) {
	result := NewResult()
	result.Order = []string{"A", "B", "C"}

	err := assertOrder(result, Assertion{Type: AssertOrder, Order: []string{"A", "B", "C"}})
	assert.NoError(t, err)
}

func TestAssertOrder_Mismatch(t *testing.T) {
	result := NewResult()
	result.Order = []string{"A", "C", "B"}
	result.AddStep(Step{Op: OpAppend, Task: "A"}, "", []string{"A"})

	err := assertOrder(result, Assertion{Type: AssertOrder, Order: []string{"A", "B", "C"}})
	require.Error(t, err)

	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AssertOrder, ae.Type)
	assert.Contains(t, ae.Expected, "[A B C]")
	assert.Contains(t, ae.Actual, "[A C B]")
	assert.Len(t, ae.Trace, 1)
}

func TestAssertOrder_EmptyExpectsEmpty(t *testing.T) {
	result := NewResult()

	err := assertOrder(result, Assertion{Type: AssertOrder, Order: []string{}})
	assert.NoError(t, err)
}

func TestAssertUniqueRanks_HealthyState(t *testing.T) {
	actx := newAssertionContext(t, "A", "B", "C")
	result := NewResult()

	err := assertUniqueRanks(result, actx)
	assert.NoError(t, err)
}

func TestAssertUniqueRanks_EmptyList(t *testing.T) {
	actx := newAssertionContext(t)
	result := NewResult()

	err := assertUniqueRanks(result, actx)
	assert.NoError(t, err)
}

func TestAssertUniqueRanks_StoreDrifted(t *testing.T) {
	actx := newAssertionContext(t, "A", "B")
	result := NewResult()

	// Move A's stored rank behind B without telling the engine
	moved, ok := actx.List.Get("A")
	require.True(t, ok)
	moved.Rank = "a5"
	require.NoError(t, actx.Store.WriteTask(actx.Ctx, "inbox", moved))

	err := assertUniqueRanks(result, actx)
	require.Error(t, err)

	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AssertUniqueRanks, ae.Type)
	assert.Contains(t, ae.Actual, "stored[0]")
}

func TestAssertUniqueRanks_ExtraStoredRow(t *testing.T) {
	actx := newAssertionContext(t, "A", "B")
	result := NewResult()

	ghost := task.Task{ID: "ghost", Title: "ghost", Rank: "a9"}
	require.NoError(t, actx.Store.WriteTask(actx.Ctx, "inbox", ghost))

	err := assertUniqueRanks(result, actx)
	require.Error(t, err)

	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Expected, "2 stored tasks")
	assert.Contains(t, ae.Actual, "3 stored tasks")
}

func TestAssertUniqueRanks_InvalidRankDetected(t *testing.T) {
	actx := newAssertionContext(t)
	result := NewResult()

	// A rank with a trailing fraction zero is never minted by the
	// allocator; loading it must be flagged.
	bad := task.Task{ID: "A", Title: "a", Rank: "a00"}
	require.NoError(t, actx.Store.WriteTask(actx.Ctx, "inbox", bad))
	require.NoError(t, actx.List.Load(actx.Ctx))

	err := assertUniqueRanks(result, actx)
	require.Error(t, err)

	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Actual, "invalid rank")
}

func TestAssertRebalanceCount_Match(t *testing.T) {
	actx := newAssertionContext(t, "A", "B")
	result := NewResult()

	require.NoError(t, actx.List.RebalanceNow(actx.Ctx))

	err := assertRebalanceCount(result, Assertion{Type: AssertRebalanceCount, Count: 1}, actx)
	assert.NoError(t, err)
}

func TestAssertRebalanceCount_Mismatch(t *testing.T) {
	actx := newAssertionContext(t, "A", "B")
	result := NewResult()

	err := assertRebalanceCount(result, Assertion{Type: AssertRebalanceCount, Count: 1}, actx)
	require.Error(t, err)

	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Expected, "1 rebalances")
	assert.Contains(t, ae.Actual, "0 rebalances")
}

func TestEvaluateAssertions_AllPass(t *testing.T) {
	actx := newAssertionContext(t, "A", "B")
	result := NewResult()
	result.Order = []string{"A", "B"}

	msgs := EvaluateAssertions(result, []Assertion{
		{Type: AssertOrder, Order: []string{"A", "B"}},
		{Type: AssertUniqueRanks},
		{Type: AssertRebalanceCount, Count: 0},
	}, actx)

	assert.Empty(t, msgs)
}

func TestEvaluateAssertions_SomeFail(t *testing.T) {
	actx := newAssertionContext(t, "A", "B")
	result := NewResult()
	result.Order = []string{"A", "B"}

	msgs := EvaluateAssertions(result, []Assertion{
		{Type: AssertOrder, Order: []string{"B", "A"}},
		{Type: AssertUniqueRanks},
		{Type: AssertRebalanceCount, Count: 3},
	}, actx)

	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0], "Assertion failed: order")
	assert.Contains(t, msgs[1], "Assertion failed: rebalance_count")
}

func TestEvaluateAssertions_UnknownType(t *testing.T) {
	actx := newAssertionContext(t)
	result := NewResult()

	msgs := EvaluateAssertions(result, []Assertion{
		{Type: "rank_histogram"},
	}, actx)

	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], `unknown assertion type "rank_histogram"`)
}

func TestAssertionError_ErrorFormat(t *testing.T) {
	err := &AssertionError{
		Type:     AssertOrder,
		Expected: "[A B]",
		Actual:   "[B A]",
		Trace: []TraceEvent{
			{Op: OpAppend, Task: "A", Order: []string{"A"}},
			{Op: OpInsertAfter, Task: "X", After: "A", Order: []string{"A", "X"}},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: order")
	assert.Contains(t, msg, "Expected: [A B]")
	assert.Contains(t, msg, "Actual: [B A]")
	assert.Contains(t, msg, "[1] append A -> [A]")
	assert.Contains(t, msg, "[2] insert_after X after A -> [A X]")
}

func TestEqualIDs(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want bool
	}{
		{name: "both nil", a: nil, b: nil, want: true},
		{name: "nil vs empty", a: nil, b: []string{}, want: true},
		{name: "same", a: []string{"A", "B"}, b: []string{"A", "B"}, want: true},
		{name: "different order", a: []string{"A", "B"}, b: []string{"B", "A"}, want: false},
		{name: "different length", a: []string{"A"}, b: []string{"A", "B"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, equalIDs(tt.a, tt.b))
		})
	}
}
