package commands

import (
	"fmt"

	ferrors "git.home.luguber.info/inful/docsync/internal/foundation/errors"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct{}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	rt, err := setup(g, root, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	issues, err := rt.svc.Validate()
	if err != nil {
		return err
	}
	out := g.stdout()
	if len(issues) == 0 {
		_, _ = fmt.Fprintln(out, "All documentation sources are valid")
		return nil
	}
	printErrors(out, issues)
	return ferrors.ValidationError("documentation sources failed validation").
		WithContext("issues", len(issues)).
		Build()
}
