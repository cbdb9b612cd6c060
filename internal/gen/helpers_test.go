package gen

import (
	"github.com/roach88/glgen/internal/ir"
)

// commandNode builds a <command> node the way the registry delivers it.
// Each param is {type, name}; an empty name produces a nameless param.
func commandNode(rtype, name string, params ...[2]string) *ir.Node {
	n := &ir.Node{Tag: "command", Children: []*ir.Node{{
		Tag:      "proto",
		Text:     rtype + " ",
		Children: []*ir.Node{{Tag: "name", Text: name}},
	}}}
	for _, p := range params {
		param := &ir.Node{Tag: "param", Text: p[0] + " "}
		if p[1] != "" {
			param.Children = []*ir.Node{{Tag: "name", Text: p[1]}}
		}
		n.Children = append(n.Children, param)
	}
	return n
}

func enumNode(name, value, typ string) *ir.Node {
	attrs := map[string]string{"name": name, "value": value}
	if typ != "" {
		attrs["type"] = typ
	}
	return &ir.Node{Tag: "enum", Attrs: attrs}
}

// match is one declaration a fakeProvider delivers.
type match struct {
	command *ir.Node
	enum    *ir.Node
}

// fakeProvider serves canned matches keyed by selection API and mode.
type fakeProvider struct {
	matches map[string][]match
	visited []ir.Selection
	err     error
}

func selKey(sel ir.Selection) string {
	return sel.API + "/" + string(sel.Mode())
}

func (p *fakeProvider) ForEachMatch(sel ir.Selection, v Visitor) error {
	p.visited = append(p.visited, sel)
	if p.err != nil {
		return p.err
	}
	for _, m := range p.matches[selKey(sel)] {
		if m.command != nil {
			if err := v.VisitCommand(m.command); err != nil {
				return err
			}
		}
		if m.enum != nil {
			if err := v.VisitEnum(m.enum); err != nil {
				return err
			}
		}
	}
	return nil
}
