package gen

import (
	"fmt"

	"github.com/roach88/glgen/internal/ir"
	"github.com/roach88/glgen/internal/logger"
)

// Visitor receives the declarations matched by a selection.
type Visitor interface {
	VisitCommand(node *ir.Node) error
	VisitEnum(node *ir.Node) error
}

// Provider resolves a selection and calls v once per matching command and
// enum, in the description's declared order.
type Provider interface {
	ForEachMatch(sel ir.Selection, v Visitor) error
}

// Drive issues selections to p strictly in order, attaching v to each.
// The first failing selection aborts the run.
func Drive(p Provider, selections []ir.Selection, v Visitor) error {
	for i, sel := range selections {
		logger.Logger.Debugw("visiting selection", "index", i, "selection", sel.String())
		if err := p.ForEachMatch(sel, v); err != nil {
			return fmt.Errorf("selection %d (%s): %w", i, sel, err)
		}
	}
	return nil
}
