package list

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/roach88/betwixt/internal/rank"
	"github.com/roach88/betwixt/internal/task"
)

// Store is the persistence boundary the list engine writes through.
// *store.Store satisfies it; tests substitute in-memory fakes.
type Store interface {
	// ReadList returns all tasks of a list. The engine re-sorts on load,
	// so row order is not part of the contract.
	ReadList(ctx context.Context, listID string) ([]task.Task, error)

	// WriteTask inserts or updates a single task row.
	WriteTask(ctx context.Context, listID string, t task.Task) error

	// ReplaceTasks replaces every task row of a list in one atomic
	// operation. A failure must leave the stored list unchanged.
	ReplaceTasks(ctx context.Context, listID string, tasks []task.Task) error

	// DeleteTask removes a single task row. Deleting an absent row is
	// not an error.
	DeleteTask(ctx context.Context, listID, taskID string) error
}

// DefaultMaxKeyLen is the rank length beyond which an insertion or move
// triggers an automatic rebalance.
const DefaultMaxKeyLen = 64

// List is the ordered collection of one container's tasks.
//
// CRITICAL: All mutations are serialized by the list mutex and follow
// the same flow: compute the new rank from the in-memory neighbors,
// apply the change in memory, persist while still holding the lock, and
// roll the memory change back if the store rejects the write. The
// in-memory order therefore always matches the last successful
// persistence outcome.
//
// Thread-safety model:
//   - all exported methods are safe to call from any goroutine
//   - a Load whose read returns after the list state moved on discards
//     its result instead of installing stale order
type List struct {
	id    string
	store Store
	log   *slog.Logger

	mu        sync.Mutex
	tasks     []task.Task // ascending by (rank, id)
	gen       uint64      // bumped by every load start and successful mutation
	maxKeyLen int

	rebalances     int
	needsRebalance bool
}

// Option configures a List.
type Option func(*List)

// WithLogger sets the logger for list events. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(l *List) {
		l.log = log
	}
}

// WithMaxKeyLen sets the rank length threshold for automatic rebalancing.
// Zero disables automatic rebalancing; RebalanceNow is unaffected.
func WithMaxKeyLen(n int) Option {
	return func(l *List) {
		l.maxKeyLen = n
	}
}

// New creates an empty List for the container listID, writing through st.
// Call Load to pick up previously stored tasks.
func New(listID string, st Store, opts ...Option) *List {
	l := &List{
		id:        listID,
		store:     st,
		log:       slog.Default(),
		maxKeyLen: DefaultMaxKeyLen,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ID returns the container ID this list manages.
func (l *List) ID() string {
	return l.id
}

// Load reads the stored tasks and installs them as the authoritative
// order, sorted ascending by rank with ID as the tie-break.
//
// The read happens outside the lock so loads can overlap. A Load whose
// read returns after a newer Load started, or after any mutation
// committed, is superseded: it discards its result and returns nil.
// Duplicate ranks in stored data are tolerated but flagged, and the next
// rank-computing operation repairs them with a rebalance.
func (l *List) Load(ctx context.Context) error {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.mu.Unlock()

	tasks, err := l.store.ReadList(ctx, l.id)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		l.log.Debug("load superseded", "list", l.id)
		return nil
	}
	if err != nil {
		return newPersistenceError(l.id, "", "read list", err)
	}

	sortTasks(tasks)
	l.tasks = tasks
	l.needsRebalance = false
	for i := 1; i < len(tasks); i++ {
		if tasks[i].Rank == tasks[i-1].Rank {
			l.needsRebalance = true
			l.log.Warn("duplicate rank in stored data",
				"list", l.id,
				"rank", tasks[i].Rank.String(),
				"tasks", tasks[i-1].ID+","+tasks[i].ID)
		}
	}
	l.log.Debug("list loaded", "list", l.id, "tasks", len(tasks))
	return nil
}

// InsertAfter inserts t immediately after the task afterID, or at the
// front of the list when afterID is empty. Any rank already set on t is
// ignored; the engine assigns one between the current neighbors.
//
// Repeated insertion after the same anchor places the newest task
// closest to the anchor.
func (l *List) InsertAfter(ctx context.Context, t task.Task, afterID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t.ID == "" {
		return newInvalidTaskError(l.id, "task id is empty")
	}
	if indexOf(l.tasks, t.ID) >= 0 {
		return newDuplicateTaskError(l.id, t.ID)
	}
	if err := l.repairLocked(ctx); err != nil {
		return err
	}

	pos := 0
	var lo rank.Key
	if afterID != "" {
		idx := indexOf(l.tasks, afterID)
		if idx < 0 {
			return newUnknownTaskError(l.id, afterID)
		}
		pos = idx + 1
		lo = l.tasks[idx].Rank
	}
	var hi rank.Key
	if pos < len(l.tasks) {
		hi = l.tasks[pos].Rank
	}

	k, err := rank.Between(lo, hi)
	if err != nil {
		return fmt.Errorf("compute rank after %q: %w", afterID, err)
	}
	t.Rank = k

	l.insertAt(pos, t)
	if err := l.store.WriteTask(ctx, l.id, t); err != nil {
		l.removeAt(pos)
		return newPersistenceError(l.id, t.ID, "write task", err)
	}
	l.gen++
	l.log.Debug("task inserted",
		"list", l.id, "task", t.ID, "after", afterID, "rank", k.String())

	l.maybeRebalance(ctx, len(k))
	return nil
}

// Append inserts t at the end of the list. Any rank already set on t is
// ignored.
func (l *List) Append(ctx context.Context, t task.Task) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t.ID == "" {
		return newInvalidTaskError(l.id, "task id is empty")
	}
	if indexOf(l.tasks, t.ID) >= 0 {
		return newDuplicateTaskError(l.id, t.ID)
	}
	if err := l.repairLocked(ctx); err != nil {
		return err
	}

	var k rank.Key
	if len(l.tasks) == 0 {
		k = rank.First()
	} else {
		var err error
		k, err = rank.After(l.tasks[len(l.tasks)-1].Rank)
		if err != nil {
			return fmt.Errorf("compute append rank: %w", err)
		}
	}
	t.Rank = k

	l.tasks = append(l.tasks, t)
	if err := l.store.WriteTask(ctx, l.id, t); err != nil {
		l.tasks = l.tasks[:len(l.tasks)-1]
		return newPersistenceError(l.id, t.ID, "write task", err)
	}
	l.gen++
	l.log.Debug("task appended", "list", l.id, "task", t.ID, "rank", k.String())

	l.maybeRebalance(ctx, len(k))
	return nil
}

// MoveAfter reassigns taskID's rank as if it were freshly inserted after
// afterID, or at the front when afterID is empty. Neighbors are computed
// with the moving task excluded; its old rank is discarded. On write
// failure the task keeps its previous rank and position.
func (l *List) MoveAfter(ctx context.Context, taskID, afterID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if taskID == "" {
		return newInvalidTaskError(l.id, "task id is empty")
	}
	if taskID == afterID {
		return newInvalidAnchorError(l.id, afterID, "cannot move a task after itself")
	}
	if indexOf(l.tasks, taskID) < 0 {
		return newUnknownTaskError(l.id, taskID)
	}
	if err := l.repairLocked(ctx); err != nil {
		return err
	}

	from := indexOf(l.tasks, taskID)
	moved := l.tasks[from]
	rest := make([]task.Task, 0, len(l.tasks)-1)
	rest = append(rest, l.tasks[:from]...)
	rest = append(rest, l.tasks[from+1:]...)

	pos := 0
	var lo rank.Key
	if afterID != "" {
		idx := indexOf(rest, afterID)
		if idx < 0 {
			return newUnknownTaskError(l.id, afterID)
		}
		pos = idx + 1
		lo = rest[idx].Rank
	}
	var hi rank.Key
	if pos < len(rest) {
		hi = rest[pos].Rank
	}

	k, err := rank.Between(lo, hi)
	if err != nil {
		return fmt.Errorf("compute rank after %q: %w", afterID, err)
	}
	moved.Rank = k

	next := make([]task.Task, 0, len(l.tasks))
	next = append(next, rest[:pos]...)
	next = append(next, moved)
	next = append(next, rest[pos:]...)

	old := l.tasks
	l.tasks = next
	if err := l.store.WriteTask(ctx, l.id, moved); err != nil {
		l.tasks = old
		return newPersistenceError(l.id, taskID, "write task", err)
	}
	l.gen++
	l.log.Debug("task moved",
		"list", l.id, "task", taskID, "after", afterID, "rank", k.String())

	l.maybeRebalance(ctx, len(k))
	return nil
}

// Remove deletes taskID from the list. On write failure the task stays.
func (l *List) Remove(ctx context.Context, taskID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := indexOf(l.tasks, taskID)
	if idx < 0 {
		return newUnknownTaskError(l.id, taskID)
	}

	rest := make([]task.Task, 0, len(l.tasks)-1)
	rest = append(rest, l.tasks[:idx]...)
	rest = append(rest, l.tasks[idx+1:]...)

	old := l.tasks
	l.tasks = rest
	if err := l.store.DeleteTask(ctx, l.id, taskID); err != nil {
		l.tasks = old
		return newPersistenceError(l.id, taskID, "delete task", err)
	}
	l.gen++
	l.log.Debug("task removed", "list", l.id, "task", taskID)
	return nil
}

// RebalanceNow recomputes evenly spaced ranks for every task and persists
// them as one atomic replacement. On failure neither memory nor store
// changes.
func (l *List) RebalanceNow(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rebalanceLocked(ctx)
}

// Len returns the number of tasks in the list.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

// Tasks returns a copy of the tasks in display order.
func (l *List) Tasks() []task.Task {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]task.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// TaskIDs returns the task IDs in display order.
func (l *List) TaskIDs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.tasks))
	for i, t := range l.tasks {
		out[i] = t.ID
	}
	return out
}

// Get returns the task with the given ID.
func (l *List) Get(taskID string) (task.Task, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	idx := indexOf(l.tasks, taskID)
	if idx < 0 {
		return task.Task{}, false
	}
	return l.tasks[idx], true
}

// Rebalances returns how many rebalances this List has performed.
func (l *List) Rebalances() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rebalances
}

// rebalanceLocked computes the replacement order into a fresh slice and
// swaps it in only after the store accepted the full batch.
func (l *List) rebalanceLocked(ctx context.Context) error {
	if len(l.tasks) == 0 {
		l.needsRebalance = false
		return nil
	}

	keys, err := rank.Spread("", "", len(l.tasks))
	if err != nil {
		return fmt.Errorf("compute rebalance ranks: %w", err)
	}
	next := make([]task.Task, len(l.tasks))
	copy(next, l.tasks)
	for i := range next {
		next[i].Rank = keys[i]
	}

	if err := l.store.ReplaceTasks(ctx, l.id, next); err != nil {
		return newRebalanceError(l.id, err)
	}
	l.tasks = next
	l.gen++
	l.rebalances++
	l.needsRebalance = false
	l.log.Info("list rebalanced", "list", l.id, "tasks", len(next))
	return nil
}

// repairLocked rebalances when a previous Load found duplicate ranks.
// Rank computation needs strictly increasing neighbors, so the repair
// runs before the operation that would consult them.
func (l *List) repairLocked(ctx context.Context) error {
	if !l.needsRebalance {
		return nil
	}
	return l.rebalanceLocked(ctx)
}

// maybeRebalance runs an automatic rebalance when the rank that was just
// written crossed the length threshold. The triggering operation already
// committed, so a failure here is logged and left for the next trigger
// rather than failing the caller.
func (l *List) maybeRebalance(ctx context.Context, keyLen int) {
	if l.maxKeyLen <= 0 || keyLen <= l.maxKeyLen {
		return
	}
	if err := l.rebalanceLocked(ctx); err != nil {
		l.log.Error("automatic rebalance failed", "list", l.id, "error", err)
	}
}

func (l *List) insertAt(pos int, t task.Task) {
	l.tasks = append(l.tasks, task.Task{})
	copy(l.tasks[pos+1:], l.tasks[pos:])
	l.tasks[pos] = t
}

func (l *List) removeAt(pos int) {
	l.tasks = append(l.tasks[:pos], l.tasks[pos+1:]...)
}

// indexOf returns the position of id in tasks, or -1.
func indexOf(tasks []task.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// sortTasks orders tasks ascending by rank, breaking ties by ID so load
// order is deterministic even for damaged data.
func sortTasks(tasks []task.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Rank != tasks[j].Rank {
			return rank.Less(tasks[i].Rank, tasks[j].Rank)
		}
		return tasks[i].ID < tasks[j].ID
	})
}
