package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	oldVersion, oldCommit := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = oldVersion, oldCommit })

	Version, GitCommit = "v1.2.3", "abc123"
	assert.Equal(t, "docsync v1.2.3 (commit abc123, built "+BuildTime+")", String())
}
