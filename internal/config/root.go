package config

import (
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// ProjectRoot returns the root of the git worktree containing dir, or dir
// itself when it is not inside a worktree.
func ProjectRoot(dir string) string {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return dir
	}
	wt, err := repo.Worktree()
	if err != nil {
		return dir
	}
	root, err := filepath.Abs(wt.Filesystem.Root())
	if err != nil {
		return dir
	}
	return root
}
