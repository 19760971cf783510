package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/roach88/betwixt/internal/task"
)

// MemStore is an in-memory implementation of the list engine's store
// boundary, used by tests that need precise control over persistence
// outcomes.
//
// Failure injection: set WriteErr, ReplaceErr, DeleteErr, or ReadErr to
// make the corresponding operation fail without touching stored state,
// mirroring a real store that rejects a write atomically.
//
// OnRead, when set, runs during ReadList after the snapshot is taken and
// before it is returned. Tests use it to interleave other operations
// while a load is in flight.
//
// Thread-safety: MemStore is safe for concurrent use. Configure the
// injection fields before handing it to concurrent goroutines.
type MemStore struct {
	mu    sync.Mutex
	lists map[string]map[string]task.Task

	WriteErr   error
	ReplaceErr error
	DeleteErr  error
	ReadErr    error

	OnRead func()

	writes   int
	replaces int
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{lists: make(map[string]map[string]task.Task)}
}

// ReadList returns the stored tasks of a list sorted by rank. The OnRead
// hook runs outside the store lock, so it may issue further store
// operations.
func (s *MemStore) ReadList(ctx context.Context, listID string) ([]task.Task, error) {
	s.mu.Lock()
	if s.ReadErr != nil {
		err := s.ReadErr
		s.mu.Unlock()
		return nil, err
	}
	out := make([]task.Task, 0, len(s.lists[listID]))
	for _, t := range s.lists[listID] {
		out = append(out, t)
	}
	hook := s.OnRead
	s.mu.Unlock()

	sortByRank(out)
	if hook != nil {
		hook()
	}
	return out, nil
}

// WriteTask inserts or updates a single task.
func (s *MemStore) WriteTask(ctx context.Context, listID string, t task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	if s.lists[listID] == nil {
		s.lists[listID] = make(map[string]task.Task)
	}
	s.lists[listID][t.ID] = t
	s.writes++
	return nil
}

// ReplaceTasks swaps a list's stored tasks for the given set. The
// replacement is all-or-nothing: when ReplaceErr is set nothing changes.
func (s *MemStore) ReplaceTasks(ctx context.Context, listID string, tasks []task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReplaceErr != nil {
		return s.ReplaceErr
	}
	next := make(map[string]task.Task, len(tasks))
	for _, t := range tasks {
		next[t.ID] = t
	}
	s.lists[listID] = next
	s.replaces++
	return nil
}

// DeleteTask removes a single task. Deleting an absent task is not an
// error.
func (s *MemStore) DeleteTask(ctx context.Context, listID, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	delete(s.lists[listID], taskID)
	return nil
}

// SetTasks seeds a list's stored tasks directly, bypassing the store
// interface and its failure injection.
func (s *MemStore) SetTasks(listID string, tasks []task.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make(map[string]task.Task, len(tasks))
	for _, t := range tasks {
		next[t.ID] = t
	}
	s.lists[listID] = next
}

// StoredTasks returns a list's stored tasks sorted by rank, for
// asserting on persistence outcomes.
func (s *MemStore) StoredTasks(listID string) []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]task.Task, 0, len(s.lists[listID]))
	for _, t := range s.lists[listID] {
		out = append(out, t)
	}
	sortByRank(out)
	return out
}

// Writes returns how many single-task writes succeeded.
func (s *MemStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Replaces returns how many batch replacements succeeded.
func (s *MemStore) Replaces() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaces
}

func sortByRank(tasks []task.Task) {
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Rank != tasks[j].Rank {
			return tasks[i].Rank < tasks[j].Rank
		}
		return tasks[i].ID < tasks[j].ID
	})
}
