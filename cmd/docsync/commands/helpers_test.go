package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "docsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
