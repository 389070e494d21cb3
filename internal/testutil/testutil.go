// Package testutil provides shared test helpers for setting up workspaces.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/deckbuild/internal/storage"
)

// TestWorkspace creates a temporary workspace holding files (relative path
// to content) and returns its root with a storage.Provider over it.
func TestWorkspace(t *testing.T, files map[string]string) (string, *storage.FS) {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	store, err := storage.NewFS(root)
	if err != nil {
		t.Fatal(err)
	}
	return root, store
}
