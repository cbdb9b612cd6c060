package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glgen/internal/artifact"
)

func TestGenerateWritesArtifacts(t *testing.T) {
	ws := newWorkspace(t)

	res := run(NewGenerateCommand, "text", ws.sourceArgs()...)
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "✓ Generated 7 artifact(s): 7 written, 0 unchanged")

	for _, path := range []string{
		ws.lib("GLES_CM", "gl_api.in"),
		ws.lib("GLES_CM", "glext_api.in"),
		ws.lib("GLES2", "gl2_api.in"),
		ws.lib("GLES2", "gl2ext_api.in"),
		ws.lib("entries.in"),
		ws.lib("trace.in"),
		ws.lib("enums.in"),
	} {
		_, err := os.Stat(path)
		assert.NoError(t, err, path)
	}

	enums, err := os.ReadFile(ws.lib("enums.in"))
	require.NoError(t, err)
	assert.Contains(t, string(enums), "GL_ENUM(0xFFFFFFFFu,GL_INVALID_INDEX)\n")
	assert.NotContains(t, string(enums), "GL_DEPTH_COMPONENT16_OES")
}

func TestGenerateSecondRunLeavesFilesUnchanged(t *testing.T) {
	ws := newWorkspace(t)
	require.NoError(t, run(NewGenerateCommand, "text", ws.sourceArgs()...).err)

	res := run(NewGenerateCommand, "json", ws.sourceArgs()...)
	require.NoError(t, res.err)

	result := &GenerateResult{}
	resp := decodeResponse(t, res.out, result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 0, result.Written)
	assert.Equal(t, 7, result.Unchanged)
	assert.Empty(t, result.RunID)
	for _, s := range result.Artifacts {
		assert.Equal(t, artifact.StateFresh, s.State)
	}
}

func TestGenerateWithPlanFile(t *testing.T) {
	dir := t.TempDir()
	registryPath, err := filepath.Abs(fixturePath)
	require.NoError(t, err)
	planPath := filepath.Join(dir, "plan.yaml")
	require.NoError(t, os.WriteFile(planPath, []byte(`
registry: `+registryPath+`
macros:
  entry_point: GL_APIENTRY
trampolines:
  - output: out/gl2_api.in
    selections:
      - api: gles2
        versions: '3\.0'
`), 0o644))

	res := run(NewGenerateCommand, "text", "--plan", planPath)
	require.NoError(t, res.err)

	data, err := os.ReadFile(filepath.Join(dir, "out", "gl2_api.in"))
	require.NoError(t, err)
	assert.Equal(t, "void GL_APIENTRY(glDrawBuffers)(GLsizei n, const GLenum * bufs) {\n    CALL_GL_API(glDrawBuffers, n, bufs);\n}\n",
		string(data))
}

func TestGenerateInvalidPlan(t *testing.T) {
	dir := t.TempDir()
	planPath := filepath.Join(dir, "plan.yaml")
	require.NoError(t, os.WriteFile(planPath, []byte("registry: gl.xml\ntrampolines: [{output: a, selections: [{api: gles2, extensions: all}]}]\n"), 0o644))

	res := run(NewGenerateCommand, "json", "--plan", planPath)
	require.Error(t, res.err)
	assert.Equal(t, ExitCommandError, GetExitCode(res.err))

	resp := decodeResponse(t, res.out, nil)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodePlanInvalid, resp.Error.Code)
}

func TestGenerateMissingPlan(t *testing.T) {
	res := run(NewGenerateCommand, "text", "--plan", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, res.err)
	assert.Contains(t, res.out, "Error [E005]")
}

func TestGenerateMissingRegistry(t *testing.T) {
	ws := newWorkspace(t)

	res := run(NewGenerateCommand, "text", "--registry", filepath.Join(ws.root, "missing.xml"), "--out-dir", ws.baseDir)
	require.Error(t, res.err)
	assert.Equal(t, ExitCommandError, GetExitCode(res.err))
	assert.Contains(t, res.out, "Error [E005]")

	_, err := os.Stat(ws.lib())
	assert.True(t, os.IsNotExist(err), "nothing is written")
}

func TestGenerateMalformedRegistry(t *testing.T) {
	ws := newWorkspace(t)
	broken := filepath.Join(ws.root, "broken.xml")
	require.NoError(t, os.WriteFile(broken, []byte("<registry><commands name=></registry>"), 0o644))

	res := run(NewGenerateCommand, "text", "--registry", broken, "--out-dir", ws.baseDir)
	require.Error(t, res.err)
	assert.Contains(t, res.out, "Error [E003]")
}

func TestGenerateFailedSelectionWritesNothing(t *testing.T) {
	ws := newWorkspace(t)
	planPath := filepath.Join(ws.root, "plan.yaml")
	require.NoError(t, os.WriteFile(planPath, []byte(`
registry: registry.xml
trampolines:
  - output: libs/gl_api.in
    selections: [{api: gles1}]
  - output: libs/vk_api.in
    selections: [{api: vulkan}]
`), 0o644))
	data, err := os.ReadFile(fixturePath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(ws.root, "registry.xml"), data, 0o644))

	res := run(NewGenerateCommand, "text", "--plan", planPath)
	require.Error(t, res.err)
	assert.Contains(t, res.out, "Error [E004]")
	assert.Contains(t, res.out, "vulkan")

	_, err = os.Stat(ws.lib("gl_api.in"))
	assert.True(t, os.IsNotExist(err))
}
