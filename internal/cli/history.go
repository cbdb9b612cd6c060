package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/glgen/internal/ledger"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Ledger string
	Limit  int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded generate runs",
		Long: `List the runs recorded by generate --ledger, newest first, with the
plan digest and the digest of every artifact.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "SQLite ledger path (required)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "show at most this many runs (0 = all)")
	_ = cmd.MarkFlagRequired("ledger")

	return cmd
}

func runHistory(ctx context.Context, opts *HistoryOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	// Reading must not create an empty ledger.
	if _, err := os.Stat(opts.Ledger); errors.Is(err, fs.ErrNotExist) {
		return outputError(formatter, fail(ErrCodeNotFound, fmt.Errorf("ledger not found: %s", opts.Ledger)), nil)
	}

	l, err := ledger.Open(opts.Ledger)
	if err != nil {
		return outputError(formatter, fail(ErrCodeLedger, err), nil)
	}
	defer l.Close()

	runs, err := l.Runs(ctx, opts.Limit)
	if err != nil {
		return outputError(formatter, fail(ErrCodeLedger, err), nil)
	}

	if formatter.Format == "json" {
		return formatter.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded")
		return nil
	}
	for _, r := range runs {
		changed := 0
		for _, a := range r.Artifacts {
			if a.Changed {
				changed++
			}
		}
		fmt.Fprintf(formatter.Writer, "#%d %s plan=%s registry=%s artifacts=%d changed=%d\n",
			r.Seq, r.ID, short(r.PlanDigest), r.Registry, len(r.Artifacts), changed)
		if formatter.Verbose {
			for _, a := range r.Artifacts {
				fmt.Fprintf(formatter.Writer, "    %s %s\n", short(a.Digest), a.Path)
			}
		}
	}
	return nil
}

func short(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}
