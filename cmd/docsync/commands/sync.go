package commands

import (
	ferrors "git.home.luguber.info/inful/docsync/internal/foundation/errors"
)

// SyncCmd implements the 'sync' command.
type SyncCmd struct {
	Strict bool `help:"Exit non-zero when any file failed to sync"`
}

func (s *SyncCmd) Run(g *Global, root *CLI) error {
	rt, err := setup(g, root, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := rt.svc.Sync(g.context())
	if err != nil {
		return err
	}
	printSummary(g.stdout(), result)

	if s.Strict && result.HasErrors() {
		return ferrors.ValidationError("sync finished with file errors").
			WithContext("errors", len(result.Errors)).
			Build()
	}
	return nil
}
