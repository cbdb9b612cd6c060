package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/glgen/internal/artifact"
	"github.com/roach88/glgen/internal/pipeline"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	SourceOptions
}

// CheckResult is the JSON payload of a check run.
type CheckResult struct {
	Fresh   int               `json:"fresh"`
	Pending []artifact.Status `json:"pending,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify generated artifacts are up to date",
		Long: `Regenerate every artifact in memory and compare it byte for byte with
the file on disk. Nothing is written.

Exits with status 1 when any artifact is stale or missing.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, cmd)
		},
	}

	opts.addFlags(cmd)

	return cmd
}

func runCheck(opts *CheckOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	p, reg, err := opts.load(formatter)
	if err != nil {
		return outputError(formatter, err, nil)
	}

	result, err := pipeline.Run(p, reg)
	if err != nil {
		return outputError(formatter, fail(ErrCodeGenerateFailed, err), nil)
	}

	statuses, err := artifact.Compare(result.Artifacts)
	if err != nil {
		return outputError(formatter, err, nil)
	}

	pending := artifact.Pending(statuses)
	out := &CheckResult{Fresh: len(statuses) - len(pending), Pending: pending}

	if len(pending) == 0 {
		if formatter.Format == "json" {
			return formatter.Success(out)
		}
		return formatter.Success(fmt.Sprintf("✓ %d artifact(s) up to date", out.Fresh))
	}

	message := fmt.Sprintf("%d of %d artifact(s) out of date", len(pending), len(statuses))
	if formatter.Format == "json" {
		_ = formatter.Error(ErrCodeStale, message, out)
	} else {
		fmt.Fprintf(formatter.Writer, "✗ %s\n", message)
		for _, s := range pending {
			fmt.Fprintf(formatter.Writer, "  %-8s %s\n", s.State, s.Path)
		}
	}
	return NewExitError(ExitStale, fmt.Sprintf("%s: %s", ErrCodeStale, message))
}
