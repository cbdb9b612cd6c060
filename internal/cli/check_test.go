package cli

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glgen/internal/artifact"
)

func TestCheckMissingArtifacts(t *testing.T) {
	ws := newWorkspace(t)

	res := run(NewCheckCommand, "text", ws.sourceArgs()...)
	require.Error(t, res.err)
	assert.Equal(t, ExitStale, GetExitCode(res.err))
	assert.Contains(t, res.out, "✗ 7 of 7 artifact(s) out of date")
	assert.Contains(t, res.out, "missing")

	_, err := os.Stat(ws.lib())
	assert.True(t, os.IsNotExist(err), "check never writes")
}

func TestCheckAfterGenerate(t *testing.T) {
	ws := newWorkspace(t)
	require.NoError(t, run(NewGenerateCommand, "text", ws.sourceArgs()...).err)

	res := run(NewCheckCommand, "text", ws.sourceArgs()...)
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "✓ 7 artifact(s) up to date")
}

func TestCheckDetectsStaleArtifact(t *testing.T) {
	ws := newWorkspace(t)
	require.NoError(t, run(NewGenerateCommand, "text", ws.sourceArgs()...).err)
	require.NoError(t, os.WriteFile(ws.lib("trace.in"), []byte("edited by hand\n"), 0o644))

	res := run(NewCheckCommand, "json", ws.sourceArgs()...)
	require.Error(t, res.err)
	assert.Equal(t, ExitStale, GetExitCode(res.err))

	var resp struct {
		Status string `json:"status"`
		Error  struct {
			Code    string      `json:"code"`
			Message string      `json:"message"`
			Details CheckResult `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeStale, resp.Error.Code)
	assert.Equal(t, "1 of 7 artifact(s) out of date", resp.Error.Message)
	assert.Equal(t, 6, resp.Error.Details.Fresh)
	require.Len(t, resp.Error.Details.Pending, 1)
	assert.Equal(t, ws.lib("trace.in"), resp.Error.Details.Pending[0].Path)
	assert.Equal(t, artifact.StateStale, resp.Error.Details.Pending[0].State)
}
