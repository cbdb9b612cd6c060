package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/glgen/internal/artifact"
	"github.com/roach88/glgen/internal/decl"
	"github.com/roach88/glgen/internal/gen"
	"github.com/roach88/glgen/internal/ledger"
	"github.com/roach88/glgen/internal/pipeline"
	"github.com/roach88/glgen/internal/plan"
	"github.com/roach88/glgen/internal/registry"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	SourceOptions
	Ledger string // sqlite ledger path; empty disables recording
}

// GenerateResult is the JSON payload of a generate run.
type GenerateResult struct {
	RunID      string            `json:"run_id,omitempty"`
	PlanDigest string            `json:"plan_digest"`
	Written    int               `json:"written"`
	Unchanged  int               `json:"unchanged"`
	Artifacts  []artifact.Status `json:"artifacts"`
	Divergence []gen.Divergence  `json:"divergence,omitempty"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate trampolines, entry tables and enum tables",
		Long: `Run every selection of the plan against the registry and write the
resulting artifacts.

All artifacts are rendered in memory first. If any selection fails nothing is
written; otherwise changed artifacts are replaced atomically and unchanged
ones are left alone.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), opts, cmd)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "record the run in this SQLite ledger")

	return cmd
}

func runGenerate(ctx context.Context, opts *GenerateOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
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

	statuses, err := artifact.WriteAll(result.Artifacts)
	if err != nil {
		return outputError(formatter, fail(ErrCodeWriteFailed, err), nil)
	}

	digest, err := p.Digest()
	if err != nil {
		return outputError(formatter, err, nil)
	}

	out := &GenerateResult{
		PlanDigest: digest,
		Artifacts:  statuses,
		Divergence: result.Divergence(),
	}
	for _, s := range statuses {
		if s.State == artifact.StateFresh {
			out.Unchanged++
		} else {
			out.Written++
		}
		formatter.VerboseLog("%-8s %s", s.State, s.Path)
	}

	if opts.Ledger != "" {
		run, err := recordRun(ctx, opts.Ledger, p, reg, digest, result, statuses)
		if err != nil {
			return outputError(formatter, fail(ErrCodeLedger, err), nil)
		}
		out.RunID = run.ID
		formatter.VerboseLog("Recorded run %s (seq %d)", run.ID, run.Seq)
	}

	warnings := divergenceWarnings(out.Divergence)
	if formatter.Format == "json" {
		return formatter.SuccessWithWarnings(out, warnings)
	}
	return formatter.SuccessWithWarnings(
		fmt.Sprintf("✓ Generated %d artifact(s): %d written, %d unchanged",
			len(statuses), out.Written, out.Unchanged),
		warnings)
}

func recordRun(ctx context.Context, path string, p *plan.Plan, reg *registry.Registry,
	digest string, result *pipeline.Result, statuses []artifact.Status) (ledger.Run, error) {
	l, err := ledger.Open(path)
	if err != nil {
		return ledger.Run{}, err
	}
	defer l.Close()

	run := ledger.Run{
		PlanDigest:     digest,
		Registry:       p.RegistryPath(),
		RegistryDigest: reg.Digest(),
	}
	for i, a := range result.Artifacts {
		run.Artifacts = append(run.Artifacts, ledger.Artifact{
			Path:    a.Path,
			Kind:    string(a.Kind),
			Digest:  statuses[i].Digest,
			Changed: statuses[i].State != artifact.StateFresh,
		})
	}
	return l.Record(ctx, run)
}

func divergenceWarnings(divs []gen.Divergence) []string {
	var out []string
	for _, d := range divs {
		sigs := make([]string, len(d.Signatures))
		for i, s := range d.Signatures {
			sigs[i] = fmt.Sprintf("%s %s(%s)", s.ReturnType, s.Name, decl.FormatParams(s.Params))
		}
		out = append(out, fmt.Sprintf("%s declared with %d different signatures: %s",
			d.Name, len(d.Signatures), strings.Join(sigs, "; ")))
	}
	return out
}
