package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestUniqueID - Identifier shape and collision resistance
// ---------------------------------------------------------------------------

func TestUniqueID(t *testing.T) {
	t.Parallel()

	id := UniqueID()
	parts := strings.Split(id, "_")
	if len(parts) != 3 {
		t.Fatalf("UniqueID() = %q, want three underscore-separated parts", id)
	}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		v := UniqueID()
		if seen[v] {
			t.Fatalf("UniqueID() produced duplicate %q", v)
		}
		seen[v] = true
	}
}

// ---------------------------------------------------------------------------
// TestWorkspace - Creation, paths, cleanup
// ---------------------------------------------------------------------------

func TestWorkspace(t *testing.T) {
	t.Parallel()

	base := t.TempDir()

	ws, err := NewWorkspace(base)
	if err != nil {
		t.Fatalf("NewWorkspace() error = %v", err)
	}

	if !filepath.IsAbs(ws.Dir()) {
		t.Errorf("Dir() = %q, want absolute path", ws.Dir())
	}
	if info, err := os.Stat(ws.Dir()); err != nil || !info.IsDir() {
		t.Fatalf("workspace dir not created: %v", err)
	}

	p := ws.Path("rendered.pdf")
	if filepath.Dir(p) != ws.Dir() {
		t.Errorf("Path() = %q, want inside %q", p, ws.Dir())
	}

	if err := os.WriteFile(p, []byte("x"), 0600); err != nil {
		t.Fatalf("writing into workspace: %v", err)
	}

	if err := ws.Cleanup(); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if _, err := os.Stat(ws.Dir()); !os.IsNotExist(err) {
		t.Errorf("workspace still exists after Cleanup")
	}

	// Cleanup is idempotent.
	if err := ws.Cleanup(); err != nil {
		t.Errorf("second Cleanup() error = %v", err)
	}
}

func TestWorkspace_TwoWorkspacesAreDistinct(t *testing.T) {
	t.Parallel()

	base := t.TempDir()

	a, err := NewWorkspace(base)
	if err != nil {
		t.Fatalf("NewWorkspace() error = %v", err)
	}
	b, err := NewWorkspace(base)
	if err != nil {
		t.Fatalf("NewWorkspace() error = %v", err)
	}

	if a.Dir() == b.Dir() {
		t.Errorf("two workspaces share directory %q", a.Dir())
	}
}
