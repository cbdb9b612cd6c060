package decl

import (
	"strings"

	"github.com/roach88/glgen/internal/ir"
)

// FormatParams renders a C parameter list, or "void" when there are none.
func FormatParams(params []ir.TypedName) string {
	if len(params) == 0 {
		return "void"
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Type + " " + p.Name
	}
	return strings.Join(parts, ", ")
}

// FormatArgs renders the argument list that forwards params by name.
func FormatArgs(params []ir.TypedName) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name
	}
	return strings.Join(parts, ", ")
}

// FormatTypeNamePairs renders `"type", name` for each parameter.
func FormatTypeNamePairs(params []ir.TypedName) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = `"` + p.Type + `", ` + p.Name
	}
	return strings.Join(parts, ", ")
}
