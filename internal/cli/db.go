package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/roach88/betwixt/internal/list"
	"github.com/roach88/betwixt/internal/store"
)

// configureLogging installs the process-wide slog handler based on the
// verbose flag. Log output goes to stderr so it never corrupts JSON on
// stdout.
func configureLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// openStore opens the database at path, creating it if it does not exist.
// The caller owns the returned store and must Close it.
func openStore(path string) (*store.Store, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// openList registers listID in the store if needed and returns the list
// engine with the stored tasks loaded. Commands that mutate a list go
// through here so every mutation sees the persisted state first.
func openList(ctx context.Context, st *store.Store, listID string) (*list.List, error) {
	if err := st.EnsureList(ctx, listID); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to register list", err)
	}
	l := list.New(listID, st)
	if err := l.Load(ctx); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load list", err)
	}
	return l, nil
}

// outputOpError renders a rejected list operation and maps it to an exit
// code. Contract rejections (unknown task, duplicate, bad anchor) exit
// with ExitFailure; anything else is a command error.
func outputOpError(formatter *OutputFormatter, err error) error {
	var opErr *list.OpError
	if errors.As(err, &opErr) {
		_ = formatter.Error(string(opErr.Code), opErr.Error(), nil)
		return NewExitError(ExitFailure, opErr.Error())
	}
	_ = formatter.Error("ERROR", err.Error(), nil)
	return WrapExitError(ExitCommandError, "operation failed", err)
}

// taskPosition returns the 1-based position of id in ids, or 0 when
// absent.
func taskPosition(ids []string, id string) int {
	for i, candidate := range ids {
		if candidate == id {
			return i + 1
		}
	}
	return 0
}
