package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/glgen/internal/plan"
)

// PlanOptions holds flags for the plan command.
type PlanOptions struct {
	*RootOptions
	SourceOptions
}

// PlanResult is the JSON payload of the plan command.
type PlanResult struct {
	Digest  string     `json:"digest"`
	BaseDir string     `json:"base_dir,omitempty"`
	Plan    *plan.Plan `json:"plan"`
}

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the resolved generation plan",
		Long: `Validate the plan and print it with every default made explicit.

Without --plan the built-in reference plan is printed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(opts, cmd)
		},
	}

	opts.addFlags(cmd)

	return cmd
}

func runPlan(opts *PlanOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	p, err := opts.loadPlan()
	if err != nil {
		return outputError(formatter, err, nil)
	}
	digest, err := p.Digest()
	if err != nil {
		return outputError(formatter, err, nil)
	}
	formatter.VerboseLog("Plan digest %s", digest)

	resolved := p.Resolved()
	if formatter.Format == "json" {
		return formatter.Success(&PlanResult{Digest: digest, BaseDir: p.BaseDir(), Plan: resolved})
	}

	data, err := yaml.Marshal(resolved)
	if err != nil {
		return outputError(formatter, err, nil)
	}
	_, err = formatter.Writer.Write(data)
	return err
}
