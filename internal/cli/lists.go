package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// ListsOptions holds flags for the lists command.
type ListsOptions struct {
	*RootOptions
	Database string
}

// ListView is one list in lists output.
type ListView struct {
	ID    string `json:"id"`
	Tasks int    `json:"tasks"`
}

// ListsResult holds the list registry for JSON output.
type ListsResult struct {
	Count int        `json:"count"`
	Lists []ListView `json:"lists"`
}

// NewListsCommand creates the lists command.
func NewListsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Show all lists in the database",
		Long: `Show all lists in the database with their task counts.

Example:
  betwixt lists --db ./tasks.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLists(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runLists(opts *ListsOptions, cmd *cobra.Command) error {
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

	infos, err := st.Lists(context.Background())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read lists", err)
	}

	result := ListsResult{Count: len(infos), Lists: make([]ListView, 0, len(infos))}
	for _, info := range infos {
		result.Lists = append(result.Lists, ListView{ID: info.ID, Tasks: info.Tasks})
	}
	return outputListsResult(formatter, result)
}

// outputListsResult outputs the list registry.
func outputListsResult(formatter *OutputFormatter, result ListsResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	if result.Count == 0 {
		fmt.Fprintln(w, "No lists found.")
		return nil
	}
	fmt.Fprintf(w, "%d list(s)\n", result.Count)
	for _, info := range result.Lists {
		fmt.Fprintf(w, "  %s: %d task(s)\n", info.ID, info.Tasks)
	}
	return nil
}
