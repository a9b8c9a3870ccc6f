package commands

import (
	"fmt"
)

// CleanCmd implements the 'clean' command.
type CleanCmd struct{}

func (c *CleanCmd) Run(g *Global, root *CLI) error {
	rt, err := setup(g, root, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	removed, err := rt.svc.Clean(g.context())
	out := g.stdout()
	_, _ = fmt.Fprintf(out, "Removed %d orphaned file(s)\n", len(removed))
	for _, p := range removed {
		_, _ = fmt.Fprintf(out, "  %s\n", p)
	}
	return err
}
