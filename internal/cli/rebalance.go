package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/betwixt/internal/task"
)

// RebalanceOptions holds flags for the rebalance command.
type RebalanceOptions struct {
	*RootOptions
	Database string
}

// RebalanceResult holds the outcome of a rebalance for JSON output.
type RebalanceResult struct {
	List              string `json:"list"`
	Tasks             int    `json:"tasks"`
	LongestRankBefore int    `json:"longest_rank_before"`
	LongestRankAfter  int    `json:"longest_rank_after"`
}

// NewRebalanceCommand creates the rebalance command.
func NewRebalanceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RebalanceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "rebalance <list>",
		Short: "Rewrite a list with minimal rank keys",
		Long: `Rewrite every rank in a list with the shortest possible keys.

Rank keys grow when tasks are repeatedly inserted at the same spot.
Rebalancing reassigns evenly spaced short keys to the whole list in one
transaction, keeping the order exactly as it is.

Example:
  betwixt rebalance --db ./tasks.db inbox`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRebalance(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runRebalance(opts *RebalanceOptions, listID string, cmd *cobra.Command) error {
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

	before := maxRankLen(l.Tasks())
	if err := l.RebalanceNow(ctx); err != nil {
		return outputOpError(formatter, err)
	}

	result := RebalanceResult{
		List:              listID,
		Tasks:             l.Len(),
		LongestRankBefore: before,
		LongestRankAfter:  maxRankLen(l.Tasks()),
	}
	return outputRebalanceSuccess(formatter, result)
}

// outputRebalanceSuccess outputs the rebalance summary.
func outputRebalanceSuccess(formatter *OutputFormatter, result RebalanceResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Rebalanced %s: %d task(s), longest rank %d -> %d chars\n",
		result.List, result.Tasks, result.LongestRankBefore, result.LongestRankAfter)
	return nil
}

// maxRankLen returns the length of the longest rank key in tasks.
func maxRankLen(tasks []task.Task) int {
	longest := 0
	for _, t := range tasks {
		if n := len(t.Rank); n > longest {
			longest = n
		}
	}
	return longest
}
