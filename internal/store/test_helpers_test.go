package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/betwixt/internal/rank"
	"github.com/roach88/betwixt/internal/task"
)

// createTestStore creates a file-backed store in a test temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestTask builds a task with the given id, title, and rank.
func createTestTask(id, title, r string) task.Task {
	return task.Task{
		ID:    id,
		Title: title,
		Rank:  rank.Key(r),
	}
}

// seedList registers a list and writes the given tasks into it.
func seedList(t *testing.T, s *Store, listID string, tasks ...task.Task) {
	t.Helper()
	ctx := context.Background()
	if err := s.EnsureList(ctx, listID); err != nil {
		t.Fatalf("EnsureList(%q) failed: %v", listID, err)
	}
	for _, tk := range tasks {
		if err := s.WriteTask(ctx, listID, tk); err != nil {
			t.Fatalf("WriteTask(%q, %q) failed: %v", listID, tk.ID, err)
		}
	}
}
