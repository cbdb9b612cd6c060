package gen

import (
	"fmt"
	"io"
	"sort"

	"github.com/roach88/glgen/internal/decl"
	"github.com/roach88/glgen/internal/ir"
	"github.com/roach88/glgen/internal/logger"
)

// Divergence reports a name that survived deduplication more than once
// with different signatures.
type Divergence struct {
	Name       string       `json:"name"`
	Signatures []ir.Command `json:"signatures"`
}

// Tables is the finalised output of a Collector.
type Tables struct {
	Commands   []ir.Command `json:"commands"`
	Enums      []EnumEntry  `json:"enums"`
	Divergence []Divergence `json:"divergence,omitempty"`
}

// Finish sorts the collected commands by name and drops every record equal
// to its immediate predecessor. Same-name records with different signatures
// are kept and reported in Divergence.
func (c *Collector) Finish() *Tables {
	cmds := c.Commands()
	sort.SliceStable(cmds, func(i, j int) bool {
		return cmds[i].Name < cmds[j].Name
	})

	deduped := make([]ir.Command, 0, len(cmds))
	for _, cmd := range cmds {
		if n := len(deduped); n > 0 && deduped[n-1].Equal(cmd) {
			continue
		}
		deduped = append(deduped, cmd)
	}

	return &Tables{
		Commands:   deduped,
		Enums:      c.enums.Entries(),
		Divergence: findDivergence(deduped),
	}
}

// findDivergence groups the sorted commands by name and reports groups with
// more than one distinct signature.
func findDivergence(sorted []ir.Command) []Divergence {
	var out []Divergence
	for i := 0; i < len(sorted); {
		j := i + 1
		for j < len(sorted) && sorted[j].Name == sorted[i].Name {
			j++
		}
		if j-i > 1 {
			seen := make(map[string]bool)
			var sigs []ir.Command
			for _, cmd := range sorted[i:j] {
				key := ir.SignatureKey(cmd)
				if !seen[key] {
					seen[key] = true
					sigs = append(sigs, cmd)
				}
			}
			if len(sigs) > 1 {
				logger.Logger.Warnw("command declared with divergent signatures",
					"name", sorted[i].Name, "signatures", len(sigs))
				out = append(out, Divergence{Name: sorted[i].Name, Signatures: sigs})
			}
		}
		i = j
	}
	return out
}

// WriteEntries writes one ENTRY(rtype, name, params) line per command.
func (t *Tables) WriteEntries(w io.Writer, m Macros) error {
	m = m.WithDefaults()
	for _, cmd := range t.Commands {
		if _, err := fmt.Fprintf(w, "%s(%s, %s, %s)\n",
			m.Entry, cmd.ReturnType, cmd.Name, decl.FormatParams(cmd.Params)); err != nil {
			return fmt.Errorf("writing entry for %s: %w", cmd.Name, err)
		}
	}
	return nil
}

// WriteTrace writes one trace line per command. Void commands use the
// _VOID macro and omit the return type; type/name pairs follow only when
// the command has parameters.
func (t *Tables) WriteTrace(w io.Writer, m Macros) error {
	m = m.WithDefaults()
	for _, cmd := range t.Commands {
		head := fmt.Sprintf("%s(%s, ", m.Trace, cmd.ReturnType)
		if cmd.IsVoid() {
			head = m.TraceVoid() + "("
		}
		pairs := ""
		if len(cmd.Params) > 0 {
			pairs = ", " + decl.FormatTypeNamePairs(cmd.Params)
		}
		if _, err := fmt.Fprintf(w, "%s%s, (%s), (%s), %d%s)\n",
			head, cmd.Name, decl.FormatParams(cmd.Params), decl.FormatArgs(cmd.Params),
			len(cmd.Params), pairs); err != nil {
			return fmt.Errorf("writing trace for %s: %w", cmd.Name, err)
		}
	}
	return nil
}

// WriteEnums writes one ENUM(value,name) line per entry in insertion order.
func (t *Tables) WriteEnums(w io.Writer, m Macros) error {
	m = m.WithDefaults()
	for _, e := range t.Enums {
		if _, err := fmt.Fprintf(w, "%s(%s,%s)\n", m.Enum, e.Value, e.Name); err != nil {
			return fmt.Errorf("writing enum %s: %w", e.Name, err)
		}
	}
	return nil
}
