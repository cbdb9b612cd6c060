package registry

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"

	"github.com/roach88/glgen/internal/ir"
	"github.com/roach88/glgen/internal/logger"
)

// ErrEmptyDocument is returned when the document has no root element.
var ErrEmptyDocument = errors.New("registry document has no root element")

// LoadError reports a registry document that could not be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading registry %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads and indexes the registry at path.
func Load(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse reads and indexes a registry document from r. Name is used in errors.
func Parse(r io.Reader, name string) (*Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}
	root := doc.Root()
	if root == nil {
		return nil, &LoadError{Path: name, Err: ErrEmptyDocument}
	}

	reg := newRegistry(name)
	reg.digest = ir.RegistryDigest(data)
	for _, group := range root.SelectElements("commands") {
		for _, el := range group.SelectElements("command") {
			reg.addCommand(toNode(el))
		}
	}
	for _, group := range root.SelectElements("enums") {
		for _, el := range group.SelectElements("enum") {
			reg.addEnum(toNode(el))
		}
	}
	for _, el := range root.SelectElements("feature") {
		reg.features = append(reg.features, parseInterface(el, false))
	}
	for _, group := range root.SelectElements("extensions") {
		for _, el := range group.SelectElements("extension") {
			reg.extensions = append(reg.extensions, parseInterface(el, true))
		}
	}

	logger.Logger.Debugw("registry loaded",
		"path", name,
		"commands", len(reg.commands),
		"enums", len(reg.enums),
		"features", len(reg.features),
		"extensions", len(reg.extensions))
	return reg, nil
}

// toNode copies an element subtree, keeping the text and tail fragments the
// declaration extractor reads.
func toNode(el *etree.Element) *ir.Node {
	n := &ir.Node{
		Tag:  el.Tag,
		Text: el.Text(),
		Tail: el.Tail(),
	}
	if len(el.Attr) > 0 {
		n.Attrs = make(map[string]string, len(el.Attr))
		for _, a := range el.Attr {
			n.Attrs[a.Key] = a.Value
		}
	}
	for _, child := range el.ChildElements() {
		n.Children = append(n.Children, toNode(child))
	}
	return n
}

func parseInterface(el *etree.Element, extension bool) *iface {
	f := &iface{
		name:      el.SelectAttrValue("name", ""),
		api:       el.SelectAttrValue("api", ""),
		number:    el.SelectAttrValue("number", ""),
		supported: el.SelectAttrValue("supported", ""),
		extension: extension,
	}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "require":
			f.requires = append(f.requires, parseBlock(child))
		case "remove":
			f.removes = append(f.removes, parseBlock(child))
		}
	}
	return f
}

func parseBlock(el *etree.Element) block {
	b := block{
		api:     el.SelectAttrValue("api", ""),
		profile: el.SelectAttrValue("profile", ""),
	}
	for _, e := range el.SelectElements("enum") {
		b.enums = append(b.enums, e.SelectAttrValue("name", ""))
	}
	for _, c := range el.SelectElements("command") {
		b.commands = append(b.commands, c.SelectAttrValue("name", ""))
	}
	return b
}
