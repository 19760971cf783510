package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// MoveOptions holds flags for the move command.
type MoveOptions struct {
	*RootOptions
	Database string
	After    string
	Front    bool
}

// MoveResult holds the outcome of a move for JSON output. Position is
// 1-based, matching the numbering printed by show.
type MoveResult struct {
	List     string `json:"list"`
	ID       string `json:"id"`
	Rank     string `json:"rank"`
	Position int    `json:"position"`
}

// NewMoveCommand creates the move command.
func NewMoveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MoveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "move <list> <task-id>",
		Short: "Move a task within a list",
		Long: `Move a task to a new position in its list.

The task is re-ranked as if freshly inserted at the target position;
only the moved task is written. --after places it immediately after an
existing task, --front places it before the first task.

Example:
  betwixt move --db ./tasks.db inbox task-3 --front
  betwixt move --db ./tasks.db inbox task-3 --after task-7`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMove(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.After, "after", "", "move after this task ID")
	cmd.Flags().BoolVar(&opts.Front, "front", false, "move to the front of the list")

	return cmd
}

func runMove(opts *MoveOptions, listID, taskID string, cmd *cobra.Command) error {
	if opts.After != "" && opts.Front {
		return NewExitError(ExitCommandError, "--after and --front are mutually exclusive")
	}
	if opts.After == "" && !opts.Front {
		return NewExitError(ExitCommandError, "one of --after or --front is required")
	}
	configureLogging(opts.Verbose)

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := openStore(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	l, err := openList(ctx, st, listID)
	if err != nil {
		return err
	}

	if err := l.MoveAfter(ctx, taskID, opts.After); err != nil {
		return outputOpError(formatter, err)
	}

	stored, _ := l.Get(taskID)
	result := MoveResult{
		List:     listID,
		ID:       taskID,
		Rank:     stored.Rank.String(),
		Position: taskPosition(l.TaskIDs(), taskID),
	}
	return outputMoveSuccess(formatter, result)
}

// outputMoveSuccess outputs the moved task.
func outputMoveSuccess(formatter *OutputFormatter, result MoveResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Moved %s to position %d in %s\n",
		result.ID, result.Position, result.List)
	formatter.VerboseLog("rank: %s", result.Rank)
	return nil
}
