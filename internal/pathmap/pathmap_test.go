package pathmap

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsync/internal/docmodel"
	"git.home.luguber.info/inful/docsync/internal/fileops"
	ferrors "git.home.luguber.info/inful/docsync/internal/foundation/errors"
)

var patterns = []docmodel.PathPattern{
	{Pattern: "commands/*/docs.{md,mdx}", Type: docmodel.TypeCommand, OutputSubdir: "reference/cli"},
	{Pattern: "docs/guides/*.{md,mdx}", Type: docmodel.TypeGuide, OutputSubdir: "guides"},
	{Pattern: "legacy/commands/*/docs.md", Type: docmodel.TypeCommand, OutputSubdir: "legacy"},
}

func newMapper() *Mapper {
	return New(patterns, fileops.NewWithFs(afero.NewMemMapFs()))
}

func TestMapPath_ContainerType(t *testing.T) {
	got, err := newMapper().MapPath("/repo/commands/init/docs.mdx", docmodel.TypeCommand, "/out")
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/out", "reference/cli", "init.mdx"), got)
}

func TestMapPath_FlatType(t *testing.T) {
	got, err := newMapper().MapPath("/repo/docs/guides/getting-started.md", docmodel.TypeGuide, "out")
	require.NoError(t, err)
	require.Equal(t, filepath.Join("out", "guides", "getting-started.md"), got)
}

func TestOutputSubdir_FirstPatternWinsForType(t *testing.T) {
	subdir, err := newMapper().OutputSubdir(docmodel.TypeCommand)
	require.NoError(t, err)
	require.Equal(t, "reference/cli", subdir)
}

func TestOutputSubdir_UnknownTypeIsConfigError(t *testing.T) {
	_, err := newMapper().MapPath("/repo/x/docs.md", docmodel.TypeService, "/out")
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestEnsureDirectory_Idempotent(t *testing.T) {
	mem := afero.NewMemMapFs()
	m := New(patterns, fileops.NewWithFs(mem))

	require.NoError(t, m.EnsureDirectory("/out/reference/cli"))
	require.NoError(t, m.EnsureDirectory("/out/reference/cli"))
	ok, err := afero.DirExists(mem, "/out/reference/cli")
	require.NoError(t, err)
	require.True(t, ok)
}
