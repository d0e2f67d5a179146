package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFile writes lines joined by newlines to name under dir and returns
// the file's path.
func WriteFile(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

// WriteCSV writes a CSV fixture into a fresh temp dir.
func WriteCSV(t *testing.T, lines ...string) string {
	t.Helper()
	return WriteFile(t, t.TempDir(), "data.csv", lines...)
}
