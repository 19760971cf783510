package harness

// TraceEvent records one executed step and the task ID order it left
// behind. Ranks are deliberately absent: the trace captures what a user
// observes, so goldens stay stable across allocator spacing changes.
type TraceEvent struct {
	Op    string   `json:"op"`
	Task  string   `json:"task,omitempty"`
	After string   `json:"after,omitempty"`
	Error string   `json:"error,omitempty"` // error code when the step failed
	Order []string `json:"order"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True when every step and assertion held.
	Pass bool `json:"pass"`

	// Trace contains one event per executed step, in order.
	Trace []TraceEvent `json:"trace"`

	// Order is the final task ID order.
	Order []string `json:"order"`

	// Errors contains step and assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for scenario execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Order:  []string{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// AddStep appends a trace event for an executed step.
// errCode is the observed error code, empty on success.
func (r *Result) AddStep(step Step, errCode string, order []string) {
	r.Trace = append(r.Trace, TraceEvent{
		Op:    step.Op,
		Task:  step.Task,
		After: step.After,
		Error: errCode,
		Order: order,
	})
}
