package artifact

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/google/renameio/v2"

	"github.com/roach88/glgen/internal/ir"
	"github.com/roach88/glgen/internal/logger"
	"github.com/roach88/glgen/internal/pipeline"
)

// State describes an on-disk artifact relative to its rendered content.
type State string

const (
	StateFresh   State = "fresh"
	StateStale   State = "stale"
	StateMissing State = "missing"
)

// Status is the comparison result for one artifact.
type Status struct {
	Path   string `json:"path"`
	State  State  `json:"state"`
	Digest string `json:"digest"`
}

// WriteError reports an artifact that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Compare checks each artifact against the file at its path. Files are
// compared byte for byte; nothing is written.
func Compare(artifacts []pipeline.Artifact) ([]Status, error) {
	out := make([]Status, 0, len(artifacts))
	for _, a := range artifacts {
		st := Status{Path: a.Path, State: StateFresh, Digest: ir.ArtifactDigest(a.Data)}
		existing, err := os.ReadFile(a.Path)
		switch {
		case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
			st.State = StateMissing
		case err != nil:
			return nil, fmt.Errorf("reading %s: %w", a.Path, err)
		case !bytes.Equal(existing, a.Data):
			st.State = StateStale
		}
		out = append(out, st)
	}
	return out, nil
}

// Pending returns the statuses that are not fresh.
func Pending(statuses []Status) []Status {
	var out []Status
	for _, s := range statuses {
		if s.State != StateFresh {
			out = append(out, s)
		}
	}
	return out
}

// WriteAll brings every artifact on disk up to date. Fresh files are left
// untouched. Changed files are all staged first and only then renamed into
// place; if any staging step fails nothing is replaced.
//
// The returned statuses describe the state before the write.
func WriteAll(artifacts []pipeline.Artifact) ([]Status, error) {
	statuses, err := Compare(artifacts)
	if err != nil {
		return nil, err
	}

	type pending struct {
		path string
		file *renameio.PendingFile
	}
	var staged []pending
	defer func() {
		for _, p := range staged {
			_ = p.file.Cleanup()
		}
	}()

	for i, a := range artifacts {
		if statuses[i].State == StateFresh {
			continue
		}
		f, err := stage(a)
		if err != nil {
			return nil, err
		}
		staged = append(staged, pending{path: a.Path, file: f})
	}

	committed := 0
	for _, p := range staged {
		if err := p.file.CloseAtomicallyReplace(); err != nil {
			return nil, &WriteError{Path: p.path, Err: err}
		}
		committed++
	}
	logger.Logger.Infow("artifacts written", "written", committed, "unchanged", len(artifacts)-committed)
	return statuses, nil
}

func stage(a pipeline.Artifact) (*renameio.PendingFile, error) {
	if err := os.MkdirAll(filepath.Dir(a.Path), 0o755); err != nil {
		return nil, &WriteError{Path: a.Path, Err: err}
	}
	f, err := renameio.NewPendingFile(a.Path,
		renameio.WithPermissions(0o644),
		renameio.WithExistingPermissions())
	if err != nil {
		return nil, &WriteError{Path: a.Path, Err: err}
	}
	if _, err := f.Write(a.Data); err != nil {
		_ = f.Cleanup()
		return nil, &WriteError{Path: a.Path, Err: err}
	}
	return f, nil
}
