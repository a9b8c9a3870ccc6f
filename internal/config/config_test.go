package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsync/internal/docmodel"
	ferrors "git.home.luguber.info/inful/docsync/internal/foundation/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse_MissingKeysUseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("output_dir: site/docs\n"))
	require.NoError(t, err)

	assert.Equal(t, "site/docs", cfg.OutputDir)
	assert.True(t, cfg.Watch)
	assert.Equal(t, 300*time.Millisecond, cfg.WatchDebounce)
	if diff := cmp.Diff(docmodel.DefaultPatterns(), cfg.SourcePatterns); diff != "" {
		t.Fatalf("patterns mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "docsync.events", cfg.Notify.Subject)
}

func TestParse_ExplicitValues(t *testing.T) {
	cfg, err := Parse([]byte(`
output_dir: out
watch: false
clean: false
source_patterns:
  - pattern: " commands/*/docs.mdx "
    type: Command
    output_subdir: /reference/cli/
watch_debounce: 1s
logging: {level: DEBUG, format: json}
metrics: {enabled: true, listen: "127.0.0.1:9000", path: prom}
schedule: {interval: 15m}
`))
	require.NoError(t, err)

	assert.False(t, cfg.Watch)
	assert.False(t, cfg.Clean)
	require.Len(t, cfg.SourcePatterns, 1)
	assert.Equal(t, docmodel.PathPattern{Pattern: "commands/*/docs.mdx", Type: docmodel.TypeCommand, OutputSubdir: "reference/cli"}, cfg.SourcePatterns[0])
	assert.Equal(t, time.Second, cfg.WatchDebounce)
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, "/prom", cfg.Metrics.Path)
	assert.Equal(t, 15*time.Minute, cfg.Schedule.Interval)
}

func TestParse_ExplicitlyEmptyValuesReachTheEngine(t *testing.T) {
	cfg, err := Parse([]byte("output_dir: \"\"\nsource_patterns: []\n"))
	require.NoError(t, err)
	sc := cfg.SyncConfig()
	assert.Empty(t, sc.OutputDir)
	assert.Empty(t, sc.SourcePatterns)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown type", "source_patterns: [{pattern: a.md, type: blog, output_subdir: blog}]"},
		{"missing subdir", "source_patterns: [{pattern: a.md, type: guide}]"},
		{"bad level", "logging: {level: loud}"},
		{"negative debounce", "watch_debounce: -1s"},
		{"metrics without listen", "metrics: {enabled: true, listen: \"\"}"},
		{"not yaml", "output_dir: [unclosed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig), "got %v", err)
		})
	}
}

func TestLoad_ExpandsEnvFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DOCSYNC_TEST_OUT=from-dotenv\n"), 0o644))
	path := writeConfig(t, dir, "output_dir: ${DOCSYNC_TEST_OUT}/docs\n")
	t.Cleanup(func() { _ = os.Unsetenv("DOCSYNC_TEST_OUT") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv/docs", cfg.OutputDir)
	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, dir, cfg.Root())
}

func TestLoad_MissingFileIsConfigError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	assert.Contains(t, err.Error(), "not found")
}

func TestProjectRoot_UsesGitWorktree(t *testing.T) {
	root := t.TempDir()
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)
	nested := filepath.Join(root, "tools", "docs")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, root, ProjectRoot(nested))

	plain := t.TempDir()
	assert.Equal(t, plain, ProjectRoot(plain))
}

func TestInit_WritesLoadableTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", DefaultPath)
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(docmodel.DefaultPatterns(), cfg.SourcePatterns); diff != "" {
		t.Fatalf("template patterns drifted from defaults (-want +got):\n%s", diff)
	}

	err = Init(path, false)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	require.NoError(t, Init(path, true))
}

func TestLoggingConfig_NewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := LoggingConfig{Level: LogLevelWarn, Format: LogFormatJSON}.NewLogger(&buf, false)
	logger.Info("hidden")
	logger.Warn("shown")
	require.NoError(t, closer.Close())
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	logger, _ = LoggingConfig{Level: LogLevelError}.NewLogger(&buf, true)
	logger.Debug("verbose wins")
	assert.Contains(t, buf.String(), "verbose wins")
}

func TestLoggingConfig_FileSink(t *testing.T) {
	file := filepath.Join(t.TempDir(), "docsync.log")
	var buf bytes.Buffer
	logger, closer := LoggingConfig{Level: LogLevelInfo, File: file}.NewLogger(&buf, false)
	logger.Info("to file")
	require.NoError(t, closer.Close())

	assert.Empty(t, buf.String())
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}
