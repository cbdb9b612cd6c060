package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

var fixturePath = filepath.Join("..", "..", "testdata", "gl.xml")

// workspace lays out a generator directory the way the reference plan
// expects: the plan base at <root>/tools/glgen2, artifacts under <root>/libs.
type workspace struct {
	root    string
	baseDir string
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	root := t.TempDir()
	return &workspace{root: root, baseDir: filepath.Join(root, "tools", "glgen2")}
}

func (w *workspace) lib(parts ...string) string {
	return filepath.Join(append([]string{w.root, "libs"}, parts...)...)
}

func (w *workspace) sourceArgs(extra ...string) []string {
	return append([]string{"--registry", fixturePath, "--out-dir", w.baseDir}, extra...)
}

type commandResult struct {
	out    string
	stderr string
	err    error
}

// run executes a subcommand built by newCmd with its own output buffers.
func run(newCmd func(*RootOptions) *cobra.Command, format string, args ...string) commandResult {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := newCmd(&RootOptions{Format: format})
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return commandResult{out: out.String(), stderr: errOut.String(), err: err}
}

func decodeResponse(t *testing.T, out string, data interface{}) CLIResponse {
	t.Helper()
	var resp CLIResponse
	if data != nil {
		resp.Data = data
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	return resp
}
