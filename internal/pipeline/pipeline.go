package pipeline

import (
	"bytes"
	"fmt"
	"io"

	"github.com/roach88/glgen/internal/gen"
	"github.com/roach88/glgen/internal/ir"
	"github.com/roach88/glgen/internal/logger"
	"github.com/roach88/glgen/internal/plan"
)

// Kind identifies what an artifact contains.
type Kind string

const (
	KindTrampoline Kind = "trampoline"
	KindEntries    Kind = "entries"
	KindTrace      Kind = "trace"
	KindEnums      Kind = "enums"
)

// Artifact is one rendered output file.
type Artifact struct {
	Path string `json:"path"`
	Kind Kind   `json:"kind"`
	Data []byte `json:"-"`
}

// Result holds everything a run produced.
type Result struct {
	Artifacts []Artifact `json:"artifacts"`
	// Tables is nil when the plan has no collector.
	Tables *gen.Tables `json:"tables,omitempty"`
}

// Divergence returns the divergent-signature warnings of the run.
func (r *Result) Divergence() []gen.Divergence {
	if r.Tables == nil {
		return nil
	}
	return r.Tables.Divergence
}

// Lookup returns the artifact written to path.
func (r *Result) Lookup(path string) (Artifact, bool) {
	for _, a := range r.Artifacts {
		if a.Path == path {
			return a, true
		}
	}
	return Artifact{}, false
}

// Run executes p against provider. Artifact paths are resolved against the
// plan's base directory and appear in plan order.
func Run(p *plan.Plan, provider gen.Provider) (*Result, error) {
	macros := p.MacroSet()
	overrides := p.Overrides()
	result := &Result{}

	for i, t := range p.Trampolines {
		var buf bytes.Buffer
		tramp := gen.NewTrampoline(&buf, macros, overrides)
		if err := gen.Drive(provider, t.Selections, tramp); err != nil {
			return nil, fmt.Errorf("trampoline %d (%s): %w", i, t.Output, err)
		}
		logger.Logger.Debugw("rendered trampoline", "output", t.Output, "commands", tramp.Count())
		result.Artifacts = append(result.Artifacts, Artifact{
			Path: p.Resolve(t.Output),
			Kind: KindTrampoline,
			Data: buf.Bytes(),
		})
	}

	if c := p.Collector; c != nil {
		collector := gen.NewCollector()
		if err := gen.Drive(provider, c.Selections, collector); err != nil {
			return nil, fmt.Errorf("collector: %w", err)
		}
		tables := collector.Finish()
		logger.Logger.Debugw("collected tables",
			"commands", len(tables.Commands), "enums", len(tables.Enums), "divergent", len(tables.Divergence))

		for _, out := range []struct {
			path  string
			kind  Kind
			write func(io.Writer, gen.Macros) error
		}{
			{c.Entries, KindEntries, tables.WriteEntries},
			{c.Trace, KindTrace, tables.WriteTrace},
			{c.Enums, KindEnums, tables.WriteEnums},
		} {
			var buf bytes.Buffer
			if err := out.write(&buf, macros); err != nil {
				return nil, fmt.Errorf("rendering %s: %w", out.kind, err)
			}
			result.Artifacts = append(result.Artifacts, Artifact{
				Path: p.Resolve(out.path),
				Kind: out.kind,
				Data: buf.Bytes(),
			})
		}
		result.Tables = tables
	}

	return result, nil
}

// Digests returns the content digest of every artifact keyed by path.
func (r *Result) Digests() map[string]string {
	out := make(map[string]string, len(r.Artifacts))
	for _, a := range r.Artifacts {
		out[a.Path] = ir.ArtifactDigest(a.Data)
	}
	return out
}
