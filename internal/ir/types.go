package ir

// TypedName is a C declaration split into its type text and declared name.
// Type is the trimmed concatenation of every fragment preceding the name.
type TypedName struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// Command is one API entry point: return type, name and ordered parameters.
type Command struct {
	ReturnType string      `json:"return_type"`
	Name       string      `json:"name"`
	Params     []TypedName `json:"params"`
}

// IsVoid reports whether the command returns nothing.
func (c Command) IsVoid() bool {
	return c.ReturnType == "void"
}

// Equal reports structural equality with other.
func (c Command) Equal(other Command) bool {
	if c.ReturnType != other.ReturnType || c.Name != other.Name {
		return false
	}
	if len(c.Params) != len(other.Params) {
		return false
	}
	for i := range c.Params {
		if c.Params[i] != other.Params[i] {
			return false
		}
	}
	return true
}

// Enum is a named constant as declared by the API description.
// Type is the numeric type tag ("", "i", "u", "ull").
type Enum struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
}

// Node is a mixed-content description node: leading text, ordered children,
// and the free text that trails the node inside its parent.
type Node struct {
	Tag      string
	Text     string
	Tail     string
	Attrs    map[string]string
	Children []*Node
}

// Attr returns the named attribute, or "" if absent.
func (n *Node) Attr(key string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[key]
}

// HasAttr reports whether the attribute is present, even if empty.
func (n *Node) HasAttr(key string) bool {
	if n == nil {
		return false
	}
	_, ok := n.Attrs[key]
	return ok
}

// Child returns the first direct child with the given tag.
func (n *Node) Child(tag string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildrenByTag returns every direct child with the given tag, in order.
func (n *Node) ChildrenByTag(tag string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}
