// Package testutil provides shared test helpers for setting up vaults.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/gigtags/internal/storage"
)

// TestVault creates a temporary vault directory with a storage.Provider.
func TestVault(t *testing.T) (string, storage.Provider) {
	t.Helper()
	vaultDir := t.TempDir()
	store, err := storage.NewFS(vaultDir)
	if err != nil {
		t.Fatal(err)
	}
	return vaultDir, store
}

// WriteNote writes content to rel (slash-separated) under the vault root,
// creating parent directories.
func WriteNote(t *testing.T, vaultDir, rel, content string) {
	t.Helper()
	p := filepath.Join(vaultDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
