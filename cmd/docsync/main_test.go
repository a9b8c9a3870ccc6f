package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRun_InitThenSync(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docsync.yaml")
	var stdout, stderr bytes.Buffer

	require.Equal(t, 0, run([]string{"init", "-c", cfgPath}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "initialized successfully")

	writeSource(t, filepath.Join(dir, "src/commands/deploy/docs.md"), "# Deploy\n")
	writeSource(t, filepath.Join(dir, "docs/guides/getting-started.mdx"), "Steps\n")

	stdout.Reset()
	require.Equal(t, 0, run([]string{"-c", cfgPath}, &stdout, &stderr), stderr.String())
	assert.Contains(t, stdout.String(), "processed: 2")
	assert.Contains(t, stdout.String(), "added: 2")
	assert.FileExists(t, filepath.Join(dir, "docs/generated/reference/cli/deploy.md"))
	assert.FileExists(t, filepath.Join(dir, "docs/generated/guides/getting-started.mdx"))
}

func TestRun_InitRefusesToOverwrite(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "docsync.yaml")
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"init", "-c", cfgPath}, &stdout, &stderr))
	assert.Equal(t, 7, run([]string{"init", "-c", cfgPath}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "already exists")
	assert.Equal(t, 0, run([]string{"init", "--force", "-c", cfgPath}, &stdout, &stderr))
}

func TestRun_MissingConfigIsConfigExitCode(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"sync", "-c", filepath.Join(t.TempDir(), "missing.yaml")}, &stdout, &stderr)
	assert.Equal(t, 7, code)
	assert.Contains(t, stderr.String(), "configuration file not found")
}

func TestRun_ValidateReportsIssues(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docsync.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
output_dir: out
source_patterns:
  - pattern: "docs/*.md"
    type: guide
    output_subdir: guides
`), 0o644))
	writeSource(t, filepath.Join(dir, "docs/bad.md"), "---\ntitle: \"\"\ndescription: d\n---\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"validate", "-c", cfgPath}, &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stdout.String(), "bad.md [validate]: title")
	assert.NoFileExists(t, filepath.Join(dir, "out/guides/bad.md"))
}

func TestRun_CleanRemovesOrphans(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docsync.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
output_dir: out
source_patterns:
  - pattern: "docs/*.md"
    type: guide
    output_subdir: guides
`), 0o644))
	orphan := filepath.Join(dir, "out/guides/old.md")
	writeSource(t, orphan, "old\n")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"clean", "-c", cfgPath}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Removed 1 orphaned file(s)")
	assert.NoFileExists(t, orphan)
}

func TestRun_EmptyOutputDirIsConfigError(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docsync.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output_dir: \"\"\n"), 0o644))

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 7, run([]string{"-c", cfgPath}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "output directory is required")
}
