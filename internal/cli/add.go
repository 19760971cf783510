package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/betwixt/internal/task"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Database string
	ID       string
	After    string
	Front    bool

	// IDGen allows overriding the task ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDGen task.IDGenerator
}

// AddResult holds the outcome of an add for JSON output. Position is
// 1-based, matching the numbering printed by show.
type AddResult struct {
	List     string `json:"list"`
	ID       string `json:"id"`
	Title    string `json:"title"`
	Rank     string `json:"rank"`
	Position int    `json:"position"`
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <list> <title>",
		Short: "Add a task to a list",
		Long: `Add a task to a list.

By default the task is appended at the end. --after places it immediately
after an existing task, --front places it before the first task. Only the
new task is written; no other task changes rank.

Example:
  betwixt add --db ./tasks.db inbox "write the report"
  betwixt add --db ./tasks.db inbox "urgent" --front
  betwixt add --db ./tasks.db inbox "follow-up" --after task-7`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.ID, "id", "", "task ID (default: generated UUIDv7)")
	cmd.Flags().StringVar(&opts.After, "after", "", "insert after this task ID")
	cmd.Flags().BoolVar(&opts.Front, "front", false, "insert at the front of the list")

	return cmd
}

func runAdd(opts *AddOptions, listID, title string, cmd *cobra.Command) error {
	if opts.After != "" && opts.Front {
		return NewExitError(ExitCommandError, "--after and --front are mutually exclusive")
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

	idGen := opts.IDGen
	if idGen == nil {
		idGen = task.UUIDv7Generator{}
	}
	id := opts.ID
	if id == "" {
		id = idGen.Generate()
	}
	t := task.Task{ID: id, Title: task.NormalizeTitle(title)}

	switch {
	case opts.Front:
		err = l.InsertAfter(ctx, t, "")
	case opts.After != "":
		err = l.InsertAfter(ctx, t, opts.After)
	default:
		err = l.Append(ctx, t)
	}
	if err != nil {
		return outputOpError(formatter, err)
	}

	stored, _ := l.Get(id)
	result := AddResult{
		List:     listID,
		ID:       id,
		Title:    stored.Title,
		Rank:     stored.Rank.String(),
		Position: taskPosition(l.TaskIDs(), id),
	}
	return outputAddSuccess(formatter, result)
}

// outputAddSuccess outputs the added task.
func outputAddSuccess(formatter *OutputFormatter, result AddResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Added %s to %s at position %d\n",
		result.ID, result.List, result.Position)
	formatter.VerboseLog("rank: %s", result.Rank)
	return nil
}
