package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Database string
	Keys     bool
}

// TaskView is one task in show output. Rank is included only with --keys.
type TaskView struct {
	Position int    `json:"position"`
	ID       string `json:"id"`
	Title    string `json:"title"`
	Rank     string `json:"rank,omitempty"`
}

// ShowResult holds the tasks of one list for JSON output.
type ShowResult struct {
	List  string     `json:"list"`
	Count int        `json:"count"`
	Tasks []TaskView `json:"tasks"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <list>",
		Short: "Show the tasks of a list in order",
		Long: `Show the tasks of a list in stored order.

Order comes from the persisted rank keys; a list read back from the
database always matches the order it was written in.

Example:
  betwixt show --db ./tasks.db inbox
  betwixt show --db ./tasks.db inbox --keys`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().BoolVar(&opts.Keys, "keys", false, "include rank keys in the output")

	return cmd
}

func runShow(opts *ShowOptions, listID string, cmd *cobra.Command) error {
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

	tasks, err := st.ReadList(context.Background(), listID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read list", err)
	}

	result := ShowResult{
		List:  listID,
		Count: len(tasks),
		Tasks: make([]TaskView, 0, len(tasks)),
	}
	for i, t := range tasks {
		view := TaskView{
			Position: i + 1,
			ID:       t.ID,
			Title:    t.Title,
		}
		if opts.Keys {
			view.Rank = t.Rank.String()
		}
		result.Tasks = append(result.Tasks, view)
	}
	return outputShowResult(formatter, result, opts.Keys)
}

// outputShowResult outputs the list contents.
func outputShowResult(formatter *OutputFormatter, result ShowResult, keys bool) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "%s: %d task(s)\n", result.List, result.Count)
	for _, t := range result.Tasks {
		if keys {
			fmt.Fprintf(w, "  %d. %s (%s) rank=%s\n", t.Position, t.Title, t.ID, t.Rank)
		} else {
			fmt.Fprintf(w, "  %d. %s (%s)\n", t.Position, t.Title, t.ID)
		}
	}
	return nil
}
