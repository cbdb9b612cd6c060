package gen

// Macros names the macros wrapped around generated declarations.
type Macros struct {
	EntryPoint    string `json:"entry_point,omitempty" yaml:"entry_point,omitempty"`
	VoidDispatch  string `json:"void_dispatch,omitempty" yaml:"void_dispatch,omitempty"`
	ValueDispatch string `json:"value_dispatch,omitempty" yaml:"value_dispatch,omitempty"`
	Entry         string `json:"entry,omitempty" yaml:"entry,omitempty"`
	Trace         string `json:"trace,omitempty" yaml:"trace,omitempty"`
	Enum          string `json:"enum,omitempty" yaml:"enum,omitempty"`
}

// DefaultMacros returns the macro names used by the GLES wrapper libraries.
func DefaultMacros() Macros {
	return Macros{
		EntryPoint:    "API_ENTRY",
		VoidDispatch:  "CALL_GL_API",
		ValueDispatch: "CALL_GL_API_RETURN",
		Entry:         "GL_ENTRY",
		Trace:         "TRACE_GL",
		Enum:          "GL_ENUM",
	}
}

// WithDefaults fills every empty name from DefaultMacros.
func (m Macros) WithDefaults() Macros {
	d := DefaultMacros()
	if m.EntryPoint == "" {
		m.EntryPoint = d.EntryPoint
	}
	if m.VoidDispatch == "" {
		m.VoidDispatch = d.VoidDispatch
	}
	if m.ValueDispatch == "" {
		m.ValueDispatch = d.ValueDispatch
	}
	if m.Entry == "" {
		m.Entry = d.Entry
	}
	if m.Trace == "" {
		m.Trace = d.Trace
	}
	if m.Enum == "" {
		m.Enum = d.Enum
	}
	return m
}

// TraceVoid is the trace macro used for void-returning commands.
func (m Macros) TraceVoid() string {
	return m.Trace + "_VOID"
}

// SymbolOverrides maps a command name to the symbol its trampoline defines.
type SymbolOverrides map[string]string

// DefaultOverrides redirects glGetString: the public wrapper intercepts it
// and only falls through to the generated __glGetString.
func DefaultOverrides() SymbolOverrides {
	return SymbolOverrides{"glGetString": "__glGetString"}
}

// Symbol returns the trampoline symbol for a command name.
func (o SymbolOverrides) Symbol(name string) string {
	if sym, ok := o[name]; ok {
		return sym
	}
	return name
}
