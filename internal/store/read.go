package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/betwixt/internal/rank"
	"github.com/roach88/betwixt/internal/task"
)

// ReadList returns all tasks of a list in display order.
// Ordering is deterministic: ORDER BY rank ASC, id ASC, both COLLATE
// BINARY. Equal ranks cannot occur in healthy data, but damaged data
// still reads back in a stable order.
//
// Returns an empty slice (not nil) when the list has no tasks or does
// not exist.
func (s *Store) ReadList(ctx context.Context, listID string) ([]task.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, rank
		FROM tasks
		WHERE list_id = ?
		ORDER BY rank COLLATE BINARY ASC, id COLLATE BINARY ASC
	`, listID)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	// Return empty slice instead of nil
	if tasks == nil {
		tasks = []task.Task{}
	}

	return tasks, nil
}

// ReadTask retrieves a single task by list and task ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadTask(ctx context.Context, listID, taskID string) (task.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, rank
		FROM tasks
		WHERE list_id = ? AND id = ?
	`, listID, taskID)

	var t task.Task
	var r string
	if err := row.Scan(&t.ID, &t.Title, &r); err != nil {
		return task.Task{}, err
	}
	t.Rank = rank.Key(r)
	return t, nil
}

// ListInfo summarizes one stored list.
type ListInfo struct {
	ID    string
	Tasks int
}

// Lists returns every known list with its task count, ordered by ID.
// Returns an empty slice (not nil) when no lists exist.
func (s *Store) Lists(ctx context.Context) ([]ListInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.id, COUNT(t.id)
		FROM lists l
		LEFT JOIN tasks t ON t.list_id = l.id
		GROUP BY l.id
		ORDER BY l.id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query lists: %w", err)
	}
	defer rows.Close()

	var infos []ListInfo
	for rows.Next() {
		var info ListInfo
		if err := rows.Scan(&info.ID, &info.Tasks); err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lists: %w", err)
	}

	if infos == nil {
		infos = []ListInfo{}
	}

	return infos, nil
}

// scanTask scans a row into a Task struct.
func scanTask(rows *sql.Rows) (task.Task, error) {
	var t task.Task
	var r string

	if err := rows.Scan(&t.ID, &t.Title, &r); err != nil {
		return task.Task{}, fmt.Errorf("scan task: %w", err)
	}

	t.Rank = rank.Key(r)
	return t, nil
}
