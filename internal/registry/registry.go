package registry

import (
	"github.com/roach88/glgen/internal/decl"
	"github.com/roach88/glgen/internal/ir"
	"github.com/roach88/glgen/internal/logger"
)

// key identifies a command or enum; api is empty for API-neutral elements.
type key struct {
	name string
	api  string
}

// element is one indexed <command> or <enum>.
type element struct {
	name string
	node *ir.Node
}

// block is a <require> or <remove> child of a feature or extension.
type block struct {
	api      string
	profile  string
	enums    []string
	commands []string
}

// matches reports whether the block applies to the given API and profile.
// A block without api/profile attributes applies to every selection.
func (b block) matches(api, profile string) bool {
	if b.api != "" && b.api != api {
		return false
	}
	if b.profile != "" && b.profile != profile {
		return false
	}
	return true
}

// iface is a <feature> or an <extension>.
type iface struct {
	name      string
	api       string
	number    string
	supported string
	extension bool
	requires  []block
	removes   []block
}

// Registry is an indexed API description.
type Registry struct {
	path       string
	digest     string
	commands   map[key]*element
	enums      map[key]*element
	features   []*iface
	extensions []*iface
}

func newRegistry(path string) *Registry {
	return &Registry{
		path:     path,
		commands: make(map[key]*element),
		enums:    make(map[key]*element),
	}
}

// Path returns the path or name the registry was loaded from.
func (r *Registry) Path() string {
	return r.path
}

// Digest identifies the document content the registry was parsed from.
func (r *Registry) Digest() string {
	return r.digest
}

// APIs returns the distinct API names declared by features, in document order.
func (r *Registry) APIs() []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range r.features {
		if !seen[f.api] {
			seen[f.api] = true
			out = append(out, f.api)
		}
	}
	return out
}

func (r *Registry) addCommand(n *ir.Node) {
	name := ""
	if proto := n.Child("proto"); proto != nil {
		if nameNode := proto.Child(decl.NameTag); nameNode != nil {
			name = nameNode.Text
		}
	}
	if name == "" {
		logger.Logger.Warnw("skipping command without a name", "registry", r.path)
		return
	}
	r.add(r.commands, "command", name, n)
}

func (r *Registry) addEnum(n *ir.Node) {
	name := n.Attr("name")
	if name == "" {
		logger.Logger.Warnw("skipping enum without a name", "registry", r.path)
		return
	}
	r.add(r.enums, "enum", name, n)
}

// add indexes n under (name, api). A repeated key keeps the first definition.
func (r *Registry) add(dict map[key]*element, kind, name string, n *ir.Node) {
	k := key{name: name, api: n.Attr("api")}
	if _, ok := dict[k]; ok {
		logger.Logger.Warnw("attempt to redefine element", "kind", kind, "name", name, "api", k.api)
		return
	}
	dict[k] = &element{name: name, node: n}
}

// lookup prefers the API-specific definition of name.
func lookup(dict map[key]*element, name, api string) *element {
	if e, ok := dict[key{name: name, api: api}]; ok {
		return e
	}
	return dict[key{name: name}]
}
