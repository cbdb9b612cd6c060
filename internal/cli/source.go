package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/glgen/internal/plan"
	"github.com/roach88/glgen/internal/registry"
)

// SourceOptions selects the plan and registry a command works from.
type SourceOptions struct {
	Plan     string // plan file; empty selects the built-in reference plan
	Registry string // overrides the plan's registry path
	OutDir   string // base directory for relative plan paths
}

func (o *SourceOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Plan, "plan", "p", "", "plan file (.yaml or .cue); default is the built-in reference plan")
	cmd.Flags().StringVarP(&o.Registry, "registry", "r", "", "registry XML path, overriding the plan")
	cmd.Flags().StringVarP(&o.OutDir, "out-dir", "o", "", "base directory for relative paths in the plan")
}

// loadPlan reads the plan and applies the command-line overrides.
func (o *SourceOptions) loadPlan() (*plan.Plan, error) {
	var p *plan.Plan
	if o.Plan == "" {
		p = plan.Default()
	} else {
		loaded, err := plan.Load(o.Plan)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fail(ErrCodeNotFound, err)
			}
			return nil, fail(ErrCodePlanInvalid, err)
		}
		p = loaded
	}

	if o.OutDir != "" {
		p.SetBaseDir(o.OutDir)
	}
	if o.Registry != "" {
		abs, err := filepath.Abs(o.Registry)
		if err != nil {
			return nil, fail(ErrCodeGeneric, fmt.Errorf("resolving registry path: %w", err))
		}
		p.Registry = abs
	}
	if err := p.Validate(); err != nil {
		return nil, fail(ErrCodePlanInvalid, fmt.Errorf("invalid plan: %w", err))
	}
	return p, nil
}

// load reads the plan and the registry it names.
func (o *SourceOptions) load(formatter *OutputFormatter) (*plan.Plan, *registry.Registry, error) {
	p, err := o.loadPlan()
	if err != nil {
		return nil, nil, err
	}
	formatter.VerboseLog("Using plan %s", planName(o.Plan))

	reg, err := registry.Load(p.RegistryPath())
	if err != nil {
		return nil, nil, fail(registryCode(err), err)
	}
	formatter.VerboseLog("Loaded registry %s (APIs: %v)", reg.Path(), reg.APIs())
	return p, reg, nil
}

func planName(path string) string {
	if path == "" {
		return "(built-in reference plan)"
	}
	return path
}
