package gen

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glgen/internal/decl"
	"github.com/roach88/glgen/internal/ir"
)

func TestTrampolineVoidCommand(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTrampoline(&buf, DefaultMacros(), DefaultOverrides())

	require.NoError(t, tr.VisitCommand(commandNode("void", "glClear", [2]string{"GLbitfield", "mask"})))

	assert.Equal(t,
		"void API_ENTRY(glClear)(GLbitfield mask) {\n"+
			"    CALL_GL_API(glClear, mask);\n"+
			"}\n",
		buf.String())
	assert.Equal(t, 1, tr.Count())
}

func TestTrampolineValueCommandWithoutParams(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTrampoline(&buf, DefaultMacros(), DefaultOverrides())

	require.NoError(t, tr.VisitCommand(commandNode("GLenum", "glGetError")))

	assert.Equal(t,
		"GLenum API_ENTRY(glGetError)(void) {\n"+
			"    CALL_GL_API_RETURN(glGetError);\n"+
			"}\n",
		buf.String())
}

func TestTrampolineSymbolOverride(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTrampoline(&buf, DefaultMacros(), DefaultOverrides())

	require.NoError(t, tr.Emit(ir.Command{
		ReturnType: "const GLubyte *",
		Name:       "glGetString",
		Params:     []ir.TypedName{{Type: "GLenum", Name: "name"}},
	}))

	assert.Equal(t,
		"const GLubyte * API_ENTRY(__glGetString)(GLenum name) {\n"+
			"    CALL_GL_API_RETURN(glGetString, name);\n"+
			"}\n",
		buf.String())
}

func TestTrampolineNoOverrides(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTrampoline(&buf, DefaultMacros(), nil)

	require.NoError(t, tr.Emit(ir.Command{ReturnType: "const GLubyte *", Name: "glGetString"}))
	assert.Contains(t, buf.String(), "API_ENTRY(glGetString)")
}

func TestTrampolineCustomMacros(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTrampoline(&buf, Macros{EntryPoint: "EGL_ENTRY", VoidDispatch: "CALL_VOID"}, nil)

	require.NoError(t, tr.Emit(ir.Command{ReturnType: "void", Name: "glFlush"}))
	require.NoError(t, tr.Emit(ir.Command{ReturnType: "GLboolean", Name: "glIsEnabled",
		Params: []ir.TypedName{{Type: "GLenum", Name: "cap"}}}))

	assert.Equal(t,
		"void EGL_ENTRY(glFlush)(void) {\n"+
			"    CALL_VOID(glFlush);\n"+
			"}\n"+
			"GLboolean EGL_ENTRY(glIsEnabled)(GLenum cap) {\n"+
			"    CALL_GL_API_RETURN(glIsEnabled, cap);\n"+
			"}\n",
		buf.String())
}

func TestTrampolineNoDeduplication(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTrampoline(&buf, DefaultMacros(), nil)
	clearCmd := commandNode("void", "glClear", [2]string{"GLbitfield", "mask"})

	p := &fakeProvider{matches: map[string][]match{
		"gles2/none": {{command: clearCmd}, {command: clearCmd}},
	}}
	require.NoError(t, Drive(p, []ir.Selection{{API: "gles2"}}, tr))

	assert.Equal(t, 2, tr.Count())
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("API_ENTRY(glClear)")))
}

func TestTrampolineIgnoresEnums(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTrampoline(&buf, DefaultMacros(), nil)

	require.NoError(t, tr.VisitEnum(enumNode("GL_ZERO", "0", "")))
	assert.Empty(t, buf.String())
}

func TestTrampolineMalformedCommand(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTrampoline(&buf, DefaultMacros(), nil)

	err := tr.VisitCommand(commandNode("void", "glBroken", [2]string{"GLint", ""}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, decl.ErrNoName))
	assert.Empty(t, buf.String())
}

func TestSymbolOverridesTable(t *testing.T) {
	o := SymbolOverrides{"glGetString": "__glGetString", "glGetStringi": "__glGetStringi"}

	assert.Equal(t, "__glGetString", o.Symbol("glGetString"))
	assert.Equal(t, "__glGetStringi", o.Symbol("glGetStringi"))
	assert.Equal(t, "glClear", o.Symbol("glClear"))
}

func TestMacrosWithDefaults(t *testing.T) {
	m := Macros{Trace: "TRACE_EGL"}.WithDefaults()

	assert.Equal(t, "TRACE_EGL", m.Trace)
	assert.Equal(t, "TRACE_EGL_VOID", m.TraceVoid())
	assert.Equal(t, "GL_ENTRY", m.Entry)
	assert.Equal(t, "API_ENTRY", m.EntryPoint)
}
