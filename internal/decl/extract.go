package decl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/glgen/internal/ir"
)

// NameTag is the tag of the child that carries the declared name.
const NameTag = "name"

// ErrNoName is wrapped by DeclError when a declaration has no name carrier.
var ErrNoName = errors.New("declaration has no name")

// DeclError reports a malformed declaration node.
type DeclError struct {
	Command string // enclosing command, if known
	Node    string // tag of the offending node
	Message string
	Err     error
}

func (e *DeclError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("%s: <%s>: %s", e.Command, e.Node, e.Message)
	}
	return fmt.Sprintf("<%s>: %s", e.Node, e.Message)
}

func (e *DeclError) Unwrap() error {
	return e.Err
}

// Extract splits a declaration node into its type and name.
// The second result is false when no child carries the name; the returned
// Type is still populated so callers can recognise a bare "void".
func Extract(n *ir.Node) (ir.TypedName, bool) {
	var b strings.Builder
	b.WriteString(n.Text)
	for _, child := range n.Children {
		if child.Tag == NameTag {
			return ir.TypedName{Type: strings.TrimSpace(b.String()), Name: child.Text}, true
		}
		b.WriteString(child.Text)
		b.WriteString(child.Tail)
	}
	return ir.TypedName{Type: strings.TrimSpace(b.String())}, false
}

// ParseCommand builds a Command from a <command> node's <proto> and <param>
// children. A nameless parameter is accepted only when its type is exactly
// "void", and is then dropped.
func ParseCommand(n *ir.Node) (ir.Command, error) {
	proto := n.Child("proto")
	if proto == nil {
		return ir.Command{}, &DeclError{Node: n.Tag, Message: "missing <proto>", Err: ErrNoName}
	}
	ret, ok := Extract(proto)
	if !ok || ret.Name == "" {
		return ir.Command{}, &DeclError{Node: proto.Tag, Message: fmt.Sprintf("no name after %q", ret.Type), Err: ErrNoName}
	}

	cmd := ir.Command{ReturnType: ret.Type, Name: ret.Name}
	for i, p := range n.ChildrenByTag("param") {
		param, ok := Extract(p)
		if !ok {
			if param.Type == "void" {
				continue
			}
			return ir.Command{}, &DeclError{
				Command: ret.Name,
				Node:    p.Tag,
				Message: fmt.Sprintf("parameter %d of type %q has no name", i, param.Type),
				Err:     ErrNoName,
			}
		}
		cmd.Params = append(cmd.Params, param)
	}
	return cmd, nil
}
