package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/betwixt/internal/list"
	"github.com/roach88/betwixt/internal/store"
	"github.com/roach88/betwixt/internal/task"
)

// newTestDB creates a database seeded with tasks task-1..task-n carrying
// the given titles, appended to listID in order. Seeding goes through the
// engine so the ranks are the ones a real session would have written.
func newTestDB(t *testing.T, listID string, titles ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")

	st, err := store.Open(path)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	require.NoError(t, st.EnsureList(ctx, listID))
	l := list.New(listID, st)
	for i, title := range titles {
		id := fmt.Sprintf("task-%d", i+1)
		require.NoError(t, l.Append(ctx, task.Task{ID: id, Title: title}))
	}
	return path
}

// readTasks returns the stored tasks of listID in display order.
func readTasks(t *testing.T, path, listID string) []task.Task {
	t.Helper()
	st, err := store.Open(path)
	require.NoError(t, err)
	defer st.Close()

	tasks, err := st.ReadList(context.Background(), listID)
	require.NoError(t, err)
	return tasks
}

// readOrder returns the stored task IDs of listID in display order.
func readOrder(t *testing.T, path, listID string) []string {
	t.Helper()
	tasks := readTasks(t, path, listID)
	ids := make([]string, len(tasks))
	for i, tk := range tasks {
		ids[i] = tk.ID
	}
	return ids
}
