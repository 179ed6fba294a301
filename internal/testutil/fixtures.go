package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile создаёт файл name во временной директории теста и возвращает полный путь.
func WriteFile(t testing.TB, name, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}

// TempPath returns a path inside a fresh temp dir without creating the file.
func TempPath(t testing.TB, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}
