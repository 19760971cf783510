package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/betwixt/internal/list"
	"github.com/roach88/betwixt/internal/rank"
	"github.com/roach88/betwixt/internal/store"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	// Header with assertion type
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)

	// Expected vs Actual (most important info)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	// Full trace for context
	fmt.Fprintf(&buf, "\nFull trace:\n")
	for i, event := range e.Trace {
		if event.After != "" {
			fmt.Fprintf(&buf, "  [%d] %s %s after %s -> %v\n", i+1, event.Op, event.Task, event.After, event.Order)
		} else {
			fmt.Fprintf(&buf, "  [%d] %s %s -> %v\n", i+1, event.Op, event.Task, event.Order)
		}
	}

	return buf.String()
}

// AssertionContext provides access to the final scenario state.
type AssertionContext struct {
	List  *list.List
	Store *store.Store
	Ctx   context.Context
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertOrder:
			err = assertOrder(result, assertion)
		case AssertUniqueRanks:
			err = assertUniqueRanks(result, actx)
		case AssertRebalanceCount:
			err = assertRebalanceCount(result, assertion, actx)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}

// assertOrder checks that the final task ID order matches exactly.
func assertOrder(result *Result, assertion Assertion) error {
	if equalIDs(result.Order, assertion.Order) {
		return nil
	}

	return &AssertionError{
		Type:     AssertOrder,
		Expected: fmt.Sprintf("%v", assertion.Order),
		Actual:   fmt.Sprintf("%v", result.Order),
		Trace:    result.Trace,
	}
}

// assertUniqueRanks checks the core position invariants: in-memory ranks
// are valid and strictly increasing, and the store holds the same tasks
// with the same ranks in the same order.
func assertUniqueRanks(result *Result, actx *AssertionContext) error {
	inMemory := actx.List.Tasks()

	for i, t := range inMemory {
		if err := t.Rank.Validate(); err != nil {
			return &AssertionError{
				Type:     AssertUniqueRanks,
				Expected: "all ranks valid",
				Actual:   fmt.Sprintf("task %s has invalid rank %q: %v", t.ID, t.Rank, err),
				Trace:    result.Trace,
			}
		}
		if i > 0 && rank.Compare(inMemory[i-1].Rank, t.Rank) >= 0 {
			return &AssertionError{
				Type:     AssertUniqueRanks,
				Expected: "strictly increasing ranks",
				Actual: fmt.Sprintf("rank %q of %s is not below rank %q of %s",
					inMemory[i-1].Rank, inMemory[i-1].ID, t.Rank, t.ID),
				Trace: result.Trace,
			}
		}
	}

	stored, err := actx.Store.ReadList(actx.Ctx, actx.List.ID())
	if err != nil {
		return fmt.Errorf("unique_ranks: read store: %w", err)
	}

	if len(stored) != len(inMemory) {
		return &AssertionError{
			Type:     AssertUniqueRanks,
			Expected: fmt.Sprintf("%d stored tasks", len(inMemory)),
			Actual:   fmt.Sprintf("%d stored tasks", len(stored)),
			Trace:    result.Trace,
		}
	}
	for i, t := range stored {
		if t.ID != inMemory[i].ID || t.Rank != inMemory[i].Rank {
			return &AssertionError{
				Type:     AssertUniqueRanks,
				Expected: fmt.Sprintf("stored[%d] = %s rank %q", i, inMemory[i].ID, inMemory[i].Rank),
				Actual:   fmt.Sprintf("stored[%d] = %s rank %q", i, t.ID, t.Rank),
				Trace:    result.Trace,
			}
		}
	}

	return nil
}

// assertRebalanceCount checks the engine performed exactly the expected
// number of rebalances.
func assertRebalanceCount(result *Result, assertion Assertion, actx *AssertionContext) error {
	actual := actx.List.Rebalances()
	if actual == assertion.Count {
		return nil
	}

	return &AssertionError{
		Type:     AssertRebalanceCount,
		Expected: fmt.Sprintf("%d rebalances", assertion.Count),
		Actual:   fmt.Sprintf("%d rebalances", actual),
		Trace:    result.Trace,
	}
}

// equalIDs reports whether two ID slices hold the same IDs in the same
// order. Both empty and nil compare equal.
func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
