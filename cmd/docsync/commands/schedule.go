package commands

import (
	"fmt"
	"time"

	ferrors "git.home.luguber.info/inful/docsync/internal/foundation/errors"
	"git.home.luguber.info/inful/docsync/internal/scheduler"
)

// ScheduleCmd implements the 'schedule' command.
type ScheduleCmd struct {
	Every time.Duration `help:"Interval between passes; overrides schedule.interval"`
}

func (s *ScheduleCmd) Run(g *Global, root *CLI) error {
	rt, err := setup(g, root, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	interval := rt.cfg.Schedule.Interval
	if s.Every > 0 {
		interval = s.Every
	}
	if interval <= 0 {
		return ferrors.ConfigError("schedule interval is not set (use schedule.interval or --every)").Build()
	}

	ctx := g.context()
	if err := rt.serveMetrics(ctx); err != nil {
		return err
	}
	runner, err := scheduler.New(rt.svc, rt.logger)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.stdout(), "Syncing every %s (Ctrl+C to stop)\n", interval)
	return runner.Run(ctx, interval)
}
