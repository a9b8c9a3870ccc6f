package commands

import (
	"fmt"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct{}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	rt, err := setup(g, root, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := g.context()
	if err := rt.serveMetrics(ctx); err != nil {
		return err
	}

	result, err := rt.svc.Watch(ctx)
	if err != nil {
		return err
	}
	printSummary(g.stdout(), result)
	_, _ = fmt.Fprintln(g.stdout(), "Watching for changes (Ctrl+C to stop)")

	select {
	case <-ctx.Done():
	case <-rt.svc.WatchDone():
	}
	return rt.svc.StopWatching()
}
