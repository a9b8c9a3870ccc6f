package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/docsync/internal/foundation/errors"
)

const template = `# docsync configuration
#
# Paths are relative to the git worktree containing this file.
output_dir: docs/generated

# Keep running after the first pass and resync changed sources.
watch: true
# Remove generated files whose source no longer exists.
clean: true
# Log frontmatter rule violations during sync.
validate: true
preserve_extensions: true

# Ordered; the first pattern matching a file decides its type.
source_patterns:
  - pattern: "src/commands/*/docs.{md,mdx}"
    type: command
    output_subdir: reference/cli
  - pattern: "src/services/*/docs.{md,mdx}"
    type: service
    output_subdir: reference/services
  - pattern: "src/assistants/*/docs.{md,mdx}"
    type: assistant
    output_subdir: reference/assistants
  - pattern: "docs/guides/*.{md,mdx}"
    type: guide
    output_subdir: guides
  - pattern: "docs/about/*.{md,mdx}"
    type: about
    output_subdir: about
  - pattern: "CONTRIBUTING.md"
    type: contributing
    output_subdir: contributing
  - pattern: "docs/architecture/*.{md,mdx}"
    type: architecture
    output_subdir: architecture

watch_debounce: 300ms

logging:
  level: info   # debug|info|warn|error
  format: text  # text|json
  file: ""      # rotated log file; empty logs to stderr

metrics:
  enabled: false
  listen: ":9464"
  path: /metrics

notify:
  nats_url: ""  # e.g. ${NATS_URL}
  subject: docsync.events

schedule:
  interval: 0   # e.g. 15m, used by "docsync schedule"
`

// Init writes a commented default configuration to path. An existing file
// is only replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ferrors.FileSystemError("failed to stat configuration file").WithCause(err).WithContext("path", path).Build()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ferrors.FileSystemError("failed to create configuration directory").WithCause(err).WithContext("path", dir).Build()
		}
	}
	if err := os.WriteFile(path, []byte(template), 0o644); err != nil {
		return ferrors.FileSystemError("failed to write configuration file").WithCause(err).WithContext("path", path).Build()
	}
	return nil
}
