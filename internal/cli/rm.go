package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// RemoveOptions holds flags for the rm command.
type RemoveOptions struct {
	*RootOptions
	Database string
}

// RemoveResult holds the outcome of a removal for JSON output.
type RemoveResult struct {
	List      string `json:"list"`
	ID        string `json:"id"`
	Remaining int    `json:"remaining"`
}

// NewRemoveCommand creates the rm command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RemoveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "rm <list> <task-id>",
		Short: "Remove a task from a list",
		Long: `Remove a task from a list.

The surviving tasks keep their ranks; removal never re-ranks anything.

Example:
  betwixt rm --db ./tasks.db inbox task-3`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runRemove(opts *RemoveOptions, listID, taskID string, cmd *cobra.Command) error {
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

	if err := l.Remove(ctx, taskID); err != nil {
		return outputOpError(formatter, err)
	}

	result := RemoveResult{
		List:      listID,
		ID:        taskID,
		Remaining: l.Len(),
	}
	return outputRemoveSuccess(formatter, result)
}

// outputRemoveSuccess outputs the removal.
func outputRemoveSuccess(formatter *OutputFormatter, result RemoveResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Removed %s from %s (%d remaining)\n",
		result.ID, result.List, result.Remaining)
	return nil
}
