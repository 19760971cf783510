// Package store provides SQLite-backed durable storage for task lists.
//
// The store holds two tables:
//   - lists: known list containers
//   - tasks: one row per task, keyed by (list_id, id), ordered by rank
//
// # Invariants
//
// Rank Uniqueness:
//   - UNIQUE(list_id, rank) constraint
//   - Two tasks in one list can never share a position
//
// Deterministic Query Results:
//   - All list reads use: ORDER BY rank COLLATE BINARY ASC, id COLLATE BINARY ASC
//   - Equal ranks cannot occur in healthy data, but damaged data still
//     reads back in a stable order
//
// Atomic Replacement:
//   - ReplaceTasks swaps a whole list inside one transaction
//   - Reassigned ranks never collide with rows from the previous
//     assignment part-way through, and a failure changes nothing
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
