package ir

import "fmt"

// ExtensionMode controls which extensions a Selection pulls in.
type ExtensionMode string

const (
	// ExtensionsNone selects core features only; every matched feature is emitted.
	ExtensionsNone ExtensionMode = "none"
	// ExtensionsDefault selects every extension whose supported list names the API.
	ExtensionsDefault ExtensionMode = "default"
	// ExtensionsList selects exactly the extensions named in Include.
	ExtensionsList ExtensionMode = "list"
)

// ValidExtensionModes defines allowed extension modes.
var ValidExtensionModes = map[ExtensionMode]bool{
	ExtensionsNone:    true,
	ExtensionsDefault: true,
	ExtensionsList:    true,
}

// Selection filters the API description for one pass.
//
// With ExtensionsNone the features matched by Versions are emitted. With any
// other mode those features are only required, so that declarations they
// already provide are not emitted again by an extension.
type Selection struct {
	API        string        `json:"api" yaml:"api"`
	Versions   string        `json:"versions,omitempty" yaml:"versions,omitempty"`
	Profile    string        `json:"profile,omitempty" yaml:"profile,omitempty"`
	Extensions ExtensionMode `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	Include    []string      `json:"include,omitempty" yaml:"include,omitempty"`
	Exclude    []string      `json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// Mode returns the extension mode, treating an empty value as ExtensionsNone.
func (s Selection) Mode() ExtensionMode {
	if s.Extensions == "" {
		return ExtensionsNone
	}
	return s.Extensions
}

// String renders the selection for logs, e.g. "gles2 versions=(2|3)\.0 profile=common +ext(default)".
func (s Selection) String() string {
	out := s.API
	if s.Versions != "" {
		out += " versions=" + s.Versions
	}
	if s.Profile != "" {
		out += " profile=" + s.Profile
	}
	if m := s.Mode(); m != ExtensionsNone {
		out += fmt.Sprintf(" +ext(%s)", m)
	}
	return out
}
