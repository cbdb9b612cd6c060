package artifact

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glgen/internal/ir"
	"github.com/roach88/glgen/internal/pipeline"
)

func artifacts(dir string) []pipeline.Artifact {
	return []pipeline.Artifact{
		{Path: filepath.Join(dir, "GLES_CM", "gl_api.in"), Kind: pipeline.KindTrampoline, Data: []byte("void API_ENTRY(glClear)(GLbitfield mask) {\n    CALL_GL_API(glClear, mask);\n}\n")},
		{Path: filepath.Join(dir, "enums.in"), Kind: pipeline.KindEnums, Data: []byte("GL_ENUM(0x0BE2,GL_BLEND)\n")},
	}
}

func TestCompareMissingStaleFresh(t *testing.T) {
	dir := t.TempDir()
	arts := artifacts(dir)

	statuses, err := Compare(arts)
	require.NoError(t, err)
	assert.Equal(t, StateMissing, statuses[0].State)
	assert.Equal(t, StateMissing, statuses[1].State)
	assert.Equal(t, ir.ArtifactDigest(arts[1].Data), statuses[1].Digest)

	require.NoError(t, os.MkdirAll(filepath.Dir(arts[0].Path), 0o755))
	require.NoError(t, os.WriteFile(arts[0].Path, arts[0].Data, 0o644))
	require.NoError(t, os.WriteFile(arts[1].Path, []byte("GL_ENUM(0x0B21,GL_LINE_WIDTH)\n"), 0o644))

	statuses, err = Compare(arts)
	require.NoError(t, err)
	assert.Equal(t, StateFresh, statuses[0].State)
	assert.Equal(t, StateStale, statuses[1].State)
	assert.Equal(t, []Status{statuses[1]}, Pending(statuses))
}

func TestWriteAllCreatesDirectoriesAndFiles(t *testing.T) {
	dir := t.TempDir()
	arts := artifacts(dir)

	statuses, err := WriteAll(arts)
	require.NoError(t, err)
	assert.Len(t, Pending(statuses), 2)

	for _, a := range arts {
		got, err := os.ReadFile(a.Path)
		require.NoError(t, err)
		assert.Equal(t, a.Data, got)

		info, err := os.Stat(a.Path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
	}

	statuses, err = Compare(arts)
	require.NoError(t, err)
	assert.Empty(t, Pending(statuses))
}

func TestWriteAllLeavesFreshFilesUntouched(t *testing.T) {
	dir := t.TempDir()
	arts := artifacts(dir)
	_, err := WriteAll(arts)
	require.NoError(t, err)

	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(arts[0].Path, old, old))

	arts[1].Data = []byte("GL_ENUM(0x0B21,GL_LINE_WIDTH)\n")
	statuses, err := WriteAll(arts)
	require.NoError(t, err)
	assert.Equal(t, StateFresh, statuses[0].State)
	assert.Equal(t, StateStale, statuses[1].State)

	info, err := os.Stat(arts[0].Path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old))

	got, err := os.ReadFile(arts[1].Path)
	require.NoError(t, err)
	assert.Equal(t, arts[1].Data, got)
}

func TestWriteAllIsAllOrNothing(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "entries.in")
	require.NoError(t, os.WriteFile(good, []byte("old\n"), 0o644))

	// A regular file where a directory is needed makes staging fail.
	blocker := filepath.Join(dir, "GLES2")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	arts := []pipeline.Artifact{
		{Path: good, Kind: pipeline.KindEntries, Data: []byte("new\n")},
		{Path: filepath.Join(blocker, "gl2_api.in"), Kind: pipeline.KindTrampoline, Data: []byte("x\n")},
	}

	_, err := WriteAll(arts)
	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, arts[1].Path, writeErr.Path)

	got, err := os.ReadFile(good)
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "staged temp files are cleaned up")
}
