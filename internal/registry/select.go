package registry

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/roach88/glgen/internal/gen"
	"github.com/roach88/glgen/internal/ir"
	"github.com/roach88/glgen/internal/logger"
)

// ErrUnknownAPI is returned when no <feature> declares the selection's API.
var ErrUnknownAPI = errors.New("no feature declares this API")

// mark is the per-selection state of one element.
type mark struct {
	required bool
	declared bool
}

// resolution holds the tags for one ForEachMatch call.
type resolution struct {
	reg   *Registry
	sel   ir.Selection
	marks map[*element]*mark
}

func (res *resolution) mark(e *element) *mark {
	m, ok := res.marks[e]
	if !ok {
		m = &mark{}
		res.marks[e] = m
	}
	return m
}

// ForEachMatch delivers every command and enum selected by sel to v.
func (r *Registry) ForEachMatch(sel ir.Selection, v gen.Visitor) error {
	selected, err := r.selectInterfaces(sel)
	if err != nil {
		return err
	}

	res := &resolution{reg: r, sel: sel, marks: make(map[*element]*mark)}

	// Pass 1: tag required and removed elements.
	for _, f := range selected {
		for _, b := range f.requires {
			if b.matches(sel.API, sel.Profile) {
				res.tag(b, true)
			}
		}
		for _, b := range f.removes {
			if b.matches(sel.API, sel.Profile) {
				res.tag(b, false)
			}
		}
	}

	// Pass 2: deliver required elements not yet declared.
	emitCore := sel.Mode() == ir.ExtensionsNone
	var commands, enums int
	for _, f := range selected {
		emit := f.extension || emitCore
		for _, b := range f.requires {
			for _, name := range b.enums {
				e := res.take(r.enums, "enum", name)
				if e == nil || !emit {
					continue
				}
				if err := v.VisitEnum(e.node); err != nil {
					return fmt.Errorf("%s: enum %s: %w", f.name, name, err)
				}
				enums++
			}
			for _, name := range b.commands {
				e := res.take(r.commands, "command", name)
				if e == nil || !emit {
					continue
				}
				if err := v.VisitCommand(e.node); err != nil {
					return fmt.Errorf("%s: command %s: %w", f.name, name, err)
				}
				commands++
			}
		}
	}

	logger.Logger.Debugw("selection resolved",
		"selection", sel.String(),
		"interfaces", len(selected),
		"commands", commands,
		"enums", enums)
	return nil
}

// tag marks every element named by b as required (or not).
func (res *resolution) tag(b block, required bool) {
	for _, name := range b.enums {
		if e := lookup(res.reg.enums, name, res.sel.API); e != nil {
			res.mark(e).required = required
		}
	}
	for _, name := range b.commands {
		if e := lookup(res.reg.commands, name, res.sel.API); e != nil {
			res.mark(e).required = required
		}
	}
}

// take returns the element if it is required and not yet declared, marking
// it declared. Declaration happens whether or not the feature is emitted.
func (res *resolution) take(dict map[key]*element, kind, name string) *element {
	e := lookup(dict, name, res.sel.API)
	if e == nil {
		logger.Logger.Debugw("no definition for referenced element", "kind", kind, "name", name)
		return nil
	}
	m := res.mark(e)
	if !m.required || m.declared {
		return nil
	}
	m.declared = true
	return e
}

// selectInterfaces returns the features and extensions sel pulls in:
// features first, then extensions, in registry sort order.
func (r *Registry) selectInterfaces(sel ir.Selection) ([]*iface, error) {
	versions, err := compileVersions(sel.Versions)
	if err != nil {
		return nil, err
	}

	var features []*iface
	known := false
	for _, f := range r.features {
		if f.api != sel.API {
			continue
		}
		known = true
		if versions == nil || versions.MatchString(f.number) {
			features = append(features, f)
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAPI, sel.API)
	}

	var extensions []*iface
	if sel.Mode() != ir.ExtensionsNone {
		include := toSet(sel.Include)
		exclude := toSet(sel.Exclude)
		for _, ext := range r.extensions {
			in := include[ext.name]
			if sel.Mode() == ir.ExtensionsDefault && supports(ext.supported, sel.API) {
				in = true
			}
			if exclude[ext.name] {
				in = false
			}
			if in {
				extensions = append(extensions, ext)
			}
		}
	}

	sort.SliceStable(features, func(i, j int) bool {
		return features[i].name < features[j].name
	})
	sort.SliceStable(extensions, func(i, j int) bool {
		ci, cj := categoryRank(extensions[i].name), categoryRank(extensions[j].name)
		if ci != cj {
			return ci < cj
		}
		return extensions[i].name < extensions[j].name
	})

	return append(features, extensions...), nil
}

// compileVersions anchors the pattern so it must match the whole number.
// An empty pattern selects every version.
func compileVersions(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, fmt.Errorf("invalid versions pattern %q: %w", pattern, err)
	}
	return re, nil
}

// supports reports whether api is one of the |-separated alternatives.
func supports(supported, api string) bool {
	for _, alt := range strings.Split(supported, "|") {
		if alt == api {
			return true
		}
	}
	return false
}

// categoryRank orders ratified extension categories before vendor ones.
func categoryRank(name string) int {
	parts := strings.SplitN(name, "_", 3)
	if len(parts) < 2 {
		return 2
	}
	switch parts[1] {
	case "ARB", "KHR", "OES":
		return 1
	default:
		return 2
	}
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
