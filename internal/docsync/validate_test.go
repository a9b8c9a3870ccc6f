package docsync

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsync/internal/docmodel"
)

func removeFile(path string) error {
	return os.Remove(path)
}

func TestValidate_ReportsParseAndRuleFailuresWithoutWriting(t *testing.T) {
	svc, root := newInitialized(t, Config{})
	long := filepath.Join(root, "docs/guides/long.md")
	broken := filepath.Join(root, "docs/guides/broken.md")
	untitled := filepath.Join(root, "docs/guides/untitled.md")
	writeFile(t, long, "---\ntitle: Long\ndescription: "+strings.Repeat("a", 200)+"\n---\nbody\n")
	writeFile(t, broken, "---\ntitle: [\n---\n")
	writeFile(t, untitled, "---\ntitle: \"  \"\ndescription: fine\n---\n")
	writeFile(t, filepath.Join(root, "commands/init/docs.md"), "generated defaults pass\n")

	issues, err := svc.Validate()
	require.NoError(t, err)

	byFile := map[string][]SyncError{}
	for _, issue := range issues {
		assert.True(t, issue.Recoverable)
		byFile[issue.File] = append(byFile[issue.File], issue)
	}
	require.Len(t, byFile, 3)
	assert.Equal(t, ErrorTypeValidate, byFile[long][0].Type)
	assert.Contains(t, byFile[long][0].Error, "description")
	assert.Equal(t, ErrorTypeParse, byFile[broken][0].Type)
	assert.Equal(t, ErrorTypeValidate, byFile[untitled][0].Type)
	assert.Contains(t, byFile[untitled][0].Error, "title")

	entries, err := os.ReadDir(filepath.Join(root, "out"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestValidate_NonIntegerSidebarPositionIsValidationIssue(t *testing.T) {
	svc, root := newInitialized(t, Config{})
	source := filepath.Join(root, "docs/guides/ordered.md")
	writeFile(t, source, "---\ntitle: Ordered\ndescription: d\nsidebar_position: first\n---\n")

	issues, err := svc.Validate()
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, source, issues[0].File)
	assert.Equal(t, ErrorTypeValidate, issues[0].Type)
	assert.Contains(t, issues[0].Error, "sidebar_position")
}

func TestValidate_ReportsUnclassifiedSourcesLikeSync(t *testing.T) {
	// Expansion supports character classes; classification does not.
	patterns := []docmodel.PathPattern{{Pattern: "docs/[g]uides/*.md", Type: docmodel.TypeGuide, OutputSubdir: "guides"}}
	svc, root := newInitialized(t, Config{SourcePatterns: patterns})
	source := filepath.Join(root, "docs/guides/odd.md")
	writeFile(t, source, "---\ntitle: Odd\ndescription: d\n---\n")

	issues, err := svc.Validate()
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, source, issues[0].File)
	assert.Equal(t, ErrorTypeUnknown, issues[0].Type)

	result, err := svc.Sync(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, issues[0].File, result.Errors[0].File)
	assert.Equal(t, issues[0].Type, result.Errors[0].Type)
}

func TestValidate_CleanTreeHasNoIssues(t *testing.T) {
	svc, root := newInitialized(t, Config{})
	writeFile(t, filepath.Join(root, "docs/guides/ok.md"), "---\ntitle: Ok\ndescription: Fine\n---\n")

	issues, err := svc.Validate()
	require.NoError(t, err)
	assert.Empty(t, issues)
}
