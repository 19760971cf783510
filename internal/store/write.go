package store

import (
	"context"
	"fmt"

	"github.com/roach88/betwixt/internal/task"
)

// EnsureList creates the list row if it does not already exist.
// Uses ON CONFLICT(id) DO NOTHING for idempotency.
func (s *Store) EnsureList(ctx context.Context, listID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO lists (id)
		VALUES (?)
		ON CONFLICT(id) DO NOTHING
	`, listID)
	if err != nil {
		return fmt.Errorf("ensure list: %w", err)
	}
	return nil
}

// DeleteList removes a list and, via ON DELETE CASCADE, all of its tasks.
// Deleting an absent list is not an error.
func (s *Store) DeleteList(ctx context.Context, listID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM lists WHERE id = ?
	`, listID)
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	return nil
}

// WriteTask inserts or updates a single task row.
// Uses ON CONFLICT(list_id, id) DO UPDATE so a move (same task, new rank)
// is a plain write.
//
// Note: The list referenced by listID must exist (foreign key constraint).
// Note: Writing a rank already held by another task in the list violates
// UNIQUE(list_id, rank) and returns an error without changing anything.
func (s *Store) WriteTask(ctx context.Context, listID string, t task.Task) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (list_id, id, title, rank)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(list_id, id) DO UPDATE SET
			title = excluded.title,
			rank = excluded.rank
	`,
		listID,
		t.ID,
		t.Title,
		string(t.Rank),
	)
	if err != nil {
		return fmt.Errorf("write task: %w", err)
	}

	return nil
}

// ReplaceTasks atomically replaces every task row of a list.
//
// The delete and the inserts run in one transaction, so the swap is
// all-or-nothing: reassigned ranks cannot collide with rows from the
// previous assignment part-way through, and a failure leaves the stored
// list unchanged.
func (s *Store) ReplaceTasks(ctx context.Context, listID string, tasks []task.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace tasks: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM tasks WHERE list_id = ?
	`, listID); err != nil {
		return fmt.Errorf("replace tasks: clear list: %w", err)
	}

	for _, t := range tasks {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (list_id, id, title, rank)
			VALUES (?, ?, ?, ?)
		`,
			listID,
			t.ID,
			t.Title,
			string(t.Rank),
		); err != nil {
			return fmt.Errorf("replace tasks: insert task %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace tasks: commit: %w", err)
	}

	return nil
}

// DeleteTask removes a single task row.
// Deleting an absent task is not an error.
func (s *Store) DeleteTask(ctx context.Context, listID, taskID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM tasks WHERE list_id = ? AND id = ?
	`, listID, taskID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
