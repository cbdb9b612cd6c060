package gen

import (
	"fmt"
	"io"

	"github.com/roach88/glgen/internal/decl"
	"github.com/roach88/glgen/internal/ir"
)

// Trampoline writes one forwarding definition per matched command:
//
//	<rtype> API_ENTRY(<symbol>)(<params>) {
//	    CALL_GL_API[_RETURN](<name>[, <args>]);
//	}
//
// Commands are written in match order with no deduplication.
type Trampoline struct {
	w         io.Writer
	macros    Macros
	overrides SymbolOverrides
	count     int
}

// NewTrampoline creates a trampoline writer. A nil overrides table disables
// symbol redirection.
func NewTrampoline(w io.Writer, macros Macros, overrides SymbolOverrides) *Trampoline {
	return &Trampoline{w: w, macros: macros.WithDefaults(), overrides: overrides}
}

// VisitCommand parses and emits a command.
func (t *Trampoline) VisitCommand(node *ir.Node) error {
	cmd, err := decl.ParseCommand(node)
	if err != nil {
		return err
	}
	return t.Emit(cmd)
}

// VisitEnum ignores enums; trampolines only cover commands.
func (t *Trampoline) VisitEnum(*ir.Node) error {
	return nil
}

// Emit writes the definition for cmd.
func (t *Trampoline) Emit(cmd ir.Command) error {
	call := t.macros.ValueDispatch
	if cmd.IsVoid() {
		call = t.macros.VoidDispatch
	}
	sep := ""
	if len(cmd.Params) > 0 {
		sep = ", "
	}

	_, err := fmt.Fprintf(t.w, "%s %s(%s)(%s) {\n    %s(%s%s%s);\n}\n",
		cmd.ReturnType, t.macros.EntryPoint, t.overrides.Symbol(cmd.Name), decl.FormatParams(cmd.Params),
		call, cmd.Name, sep, decl.FormatArgs(cmd.Params))
	if err != nil {
		return fmt.Errorf("writing trampoline for %s: %w", cmd.Name, err)
	}
	t.count++
	return nil
}

// Count returns the number of definitions written.
func (t *Trampoline) Count() int {
	return t.count
}
