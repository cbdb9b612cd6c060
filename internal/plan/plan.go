package plan

import (
	"fmt"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/roach88/glgen/internal/gen"
	"github.com/roach88/glgen/internal/ir"
)

// Plan is one generation run.
type Plan struct {
	Registry        string              `json:"registry" yaml:"registry"`
	Macros          gen.Macros          `json:"macros,omitempty" yaml:"macros,omitempty"`
	SymbolOverrides gen.SymbolOverrides `json:"symbol_overrides,omitempty" yaml:"symbol_overrides,omitempty"`
	Trampolines     []Trampoline        `json:"trampolines,omitempty" yaml:"trampolines,omitempty"`
	Collector       *Collector          `json:"collector,omitempty" yaml:"collector,omitempty"`

	baseDir string
}

// Trampoline is one trampoline artifact and the selections that fill it.
type Trampoline struct {
	Output     string         `json:"output" yaml:"output"`
	Selections []ir.Selection `json:"selections" yaml:"selections"`
}

// Collector names the collected artifacts and the ordered selections that
// feed them.
type Collector struct {
	Entries    string         `json:"entries" yaml:"entries"`
	Trace      string         `json:"trace" yaml:"trace"`
	Enums      string         `json:"enums" yaml:"enums"`
	Selections []ir.Selection `json:"selections" yaml:"selections"`
}

// PlanError reports an invalid plan field.
type PlanError struct {
	Field   string
	Message string
}

func (e *PlanError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// BaseDir returns the directory relative paths resolve against.
func (p *Plan) BaseDir() string {
	return p.baseDir
}

// SetBaseDir changes the directory relative paths resolve against.
func (p *Plan) SetBaseDir(dir string) {
	p.baseDir = dir
}

// Resolve returns path as an absolute path or joined to the base directory.
func (p *Plan) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || p.baseDir == "" {
		return path
	}
	return filepath.Join(p.baseDir, path)
}

// RegistryPath returns the resolved registry path.
func (p *Plan) RegistryPath() string {
	return p.Resolve(p.Registry)
}

// MacroSet returns the configured macros with defaults filled in.
func (p *Plan) MacroSet() gen.Macros {
	return p.Macros.WithDefaults()
}

// Overrides returns the symbol override table. An absent table means the
// default overrides; an explicitly empty one disables them.
func (p *Plan) Overrides() gen.SymbolOverrides {
	if p.SymbolOverrides == nil {
		return gen.DefaultOverrides()
	}
	return p.SymbolOverrides
}

// Resolved returns a copy with macro and override defaults made explicit.
func (p *Plan) Resolved() *Plan {
	out := *p
	out.Macros = p.MacroSet()
	out.SymbolOverrides = p.Overrides()
	return &out
}

// Outputs returns every artifact path the plan writes, resolved, in plan order.
func (p *Plan) Outputs() []string {
	var out []string
	for _, t := range p.Trampolines {
		out = append(out, p.Resolve(t.Output))
	}
	if c := p.Collector; c != nil {
		out = append(out, p.Resolve(c.Entries), p.Resolve(c.Trace), p.Resolve(c.Enums))
	}
	return out
}

// Digest identifies the plan's content. Base directory is not included.
func (p *Plan) Digest() (string, error) {
	data, err := yaml.Marshal(p.Resolved())
	if err != nil {
		return "", fmt.Errorf("marshaling plan: %w", err)
	}
	return ir.PlanDigest(data), nil
}

// Validate checks the rules the schema cannot express.
func (p *Plan) Validate() error {
	if p.Registry == "" {
		return &PlanError{Field: "registry", Message: "registry is required"}
	}
	if len(p.Trampolines) == 0 && p.Collector == nil {
		return &PlanError{Message: "plan produces no artifacts: add trampolines or a collector"}
	}

	seen := make(map[string]string)
	claim := func(field, path string) error {
		if path == "" {
			return &PlanError{Field: field, Message: "output path is required"}
		}
		resolved := p.Resolve(path)
		if prev, ok := seen[resolved]; ok {
			return &PlanError{Field: field, Message: fmt.Sprintf("output %s already written by %s", path, prev)}
		}
		seen[resolved] = field
		return nil
	}

	for i, t := range p.Trampolines {
		field := fmt.Sprintf("trampolines[%d]", i)
		if err := claim(field+".output", t.Output); err != nil {
			return err
		}
		if err := validateSelections(field+".selections", t.Selections); err != nil {
			return err
		}
	}

	if c := p.Collector; c != nil {
		for _, out := range []struct{ field, path string }{
			{"collector.entries", c.Entries},
			{"collector.trace", c.Trace},
			{"collector.enums", c.Enums},
		} {
			if err := claim(out.field, out.path); err != nil {
				return err
			}
		}
		if err := validateSelections("collector.selections", c.Selections); err != nil {
			return err
		}
	}
	return nil
}

func validateSelections(field string, sels []ir.Selection) error {
	if len(sels) == 0 {
		return &PlanError{Field: field, Message: "at least one selection is required"}
	}
	for i, s := range sels {
		f := fmt.Sprintf("%s[%d]", field, i)
		if s.API == "" {
			return &PlanError{Field: f + ".api", Message: "api is required"}
		}
		if !ir.ValidExtensionModes[s.Mode()] {
			return &PlanError{Field: f + ".extensions", Message: fmt.Sprintf("invalid mode %q: must be none, default or list", s.Extensions)}
		}
		if s.Mode() == ir.ExtensionsList && len(s.Include) == 0 {
			return &PlanError{Field: f + ".include", Message: "list mode requires at least one extension"}
		}
		if s.Mode() == ir.ExtensionsNone && (len(s.Include) > 0 || len(s.Exclude) > 0) {
			return &PlanError{Field: f + ".extensions", Message: "include/exclude need an extension mode"}
		}
		if s.Versions != "" {
			if _, err := regexp.Compile(s.Versions); err != nil {
				return &PlanError{Field: f + ".versions", Message: fmt.Sprintf("invalid pattern: %v", err)}
			}
		}
	}
	return nil
}
