package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// UniqueID returns a collision-resistant identifier for scratch files and
// directories: two UUIDs around a millisecond timestamp.
func UniqueID() string {
	return fmt.Sprintf("%s_%d_%s", uuid.NewString(), time.Now().UnixMilli(), uuid.NewString())
}

// Workspace is a per-request scratch directory. It is exclusively owned by
// one request from creation until Cleanup and holds every intermediate
// artifact: the rendered PDF, the post-processed PDF and, when a password is
// set, the encrypted PDF.
type Workspace struct {
	dir string
}

// NewWorkspace creates a uniquely named scratch directory under baseDir,
// creating baseDir itself if needed. A creation failure is a process-level
// error; the pipeline does not attempt to recover from it.
func NewWorkspace(baseDir string) (*Workspace, error) {
	// Paths are absolute so they can be handed to the browser as file:// URLs.
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace base: %w", err)
	}
	dir := filepath.Join(base, UniqueID())
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("creating scratch workspace: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory path.
func (w *Workspace) Dir() string { return w.dir }

// Path returns the path of name inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// Cleanup removes the workspace recursively. It must run on every exit path;
// callers defer it immediately after NewWorkspace succeeds.
func (w *Workspace) Cleanup() error {
	return os.RemoveAll(w.dir)
}
