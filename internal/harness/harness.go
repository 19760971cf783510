package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/betwixt/internal/list"
	"github.com/roach88/betwixt/internal/store"
	"github.com/roach88/betwixt/internal/task"
)

// Harness executes one scenario against a real list engine.
type Harness struct {
	store  *store.Store
	list   *list.List
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory database for isolation.
// Rank assignment is a pure function of the existing order, so repeated
// runs produce identical traces.
//
// Execution flow:
//  1. Create fresh in-memory database and list engine
//  2. Execute setup steps (any failure aborts the run)
//  3. Execute main steps, checking expect_error clauses
//  4. Evaluate assertions against the final state
//  5. Return result with pass/fail, trace, and errors
func Run(scenario *Scenario) (*Result, error) {
	// Create fresh in-memory SQLite database
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	if err := st.EnsureList(ctx, scenario.List); err != nil {
		return nil, fmt.Errorf("failed to prepare list: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests

	opts := []list.Option{list.WithLogger(logger)}
	if scenario.MaxKeyLen > 0 {
		opts = append(opts, list.WithMaxKeyLen(scenario.MaxKeyLen))
	}

	h := &Harness{
		store:  st,
		list:   list.New(scenario.List, st, opts...),
		logger: logger,
	}

	result := NewResult()

	// Setup steps must succeed
	for i, step := range scenario.Setup {
		if err := h.apply(ctx, step); err != nil {
			return nil, fmt.Errorf("setup[%d]: %s %s: %w", i, step.Op, step.Task, err)
		}
		result.AddStep(step, "", h.list.TaskIDs())
	}

	// Main steps
	for i, step := range scenario.Steps {
		err := h.apply(ctx, step)
		code := errorCode(err)
		result.AddStep(step, code, h.list.TaskIDs())

		if step.ExpectError != "" {
			if err == nil {
				result.AddError(fmt.Sprintf("steps[%d]: expected %s error, step succeeded", i, step.ExpectError))
				break
			}
			if code != step.ExpectError {
				result.AddError(fmt.Sprintf("steps[%d]: expected %s error, got: %v", i, step.ExpectError, err))
				break
			}
			continue
		}
		if err != nil {
			result.AddError(fmt.Sprintf("steps[%d]: %s %s: %v", i, step.Op, step.Task, err))
			break
		}
	}

	result.Order = h.list.TaskIDs()

	// Evaluate assertions against the final state
	actx := &AssertionContext{
		List:  h.list,
		Store: st,
		Ctx:   ctx,
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	return result, nil
}

// apply executes a single step against the list engine.
func (h *Harness) apply(ctx context.Context, step Step) error {
	switch step.Op {
	case OpAppend:
		return h.list.Append(ctx, newTask(step))
	case OpInsertAfter:
		return h.list.InsertAfter(ctx, newTask(step), step.After)
	case OpMoveAfter:
		return h.list.MoveAfter(ctx, step.Task, step.After)
	case OpRemove:
		return h.list.Remove(ctx, step.Task)
	case OpReload:
		return h.list.Load(ctx)
	case OpRebalance:
		return h.list.RebalanceNow(ctx)
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
}

// newTask builds the task a step inserts. The title defaults to the
// task ID so scenarios stay terse.
func newTask(step Step) task.Task {
	title := step.Title
	if title == "" {
		title = step.Task
	}
	return task.Task{
		ID:    step.Task,
		Title: task.NormalizeTitle(title),
	}
}

// errorCode extracts the operation error code from err.
// Returns "" for nil and "error" for untyped failures.
func errorCode(err error) string {
	if err == nil {
		return ""
	}
	var oe *list.OpError
	if errors.As(err, &oe) {
		return string(oe.Code)
	}
	return "error"
}
