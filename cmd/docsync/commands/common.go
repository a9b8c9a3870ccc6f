package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/docsync/internal/config"
	"git.home.luguber.info/inful/docsync/internal/docsync"
	"git.home.luguber.info/inful/docsync/internal/logfields"
	"git.home.luguber.info/inful/docsync/internal/metrics"
	"git.home.luguber.info/inful/docsync/internal/notify"
)

// Global carries process-wide state into commands.
type Global struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
}

func (g *Global) context() context.Context {
	if g == nil || g.Ctx == nil {
		return context.Background()
	}
	return g.Ctx
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

func (g *Global) stderr() io.Writer {
	if g == nil || g.Stderr == nil {
		return os.Stderr
	}
	return g.Stderr
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docsync.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Sync     SyncCmd     `cmd:"" default:"1" help:"Synchronize generated documentation once (default)"`
	Watch    WatchCmd    `cmd:"" help:"Synchronize, then resync sources as they change"`
	Clean    CleanCmd    `cmd:"" help:"Remove generated files whose source no longer exists"`
	Validate ValidateCmd `cmd:"" help:"Check source frontmatter without writing anything"`
	Schedule ScheduleCmd `cmd:"" help:"Synchronize on a fixed interval"`
	Init     InitCmd     `cmd:"" help:"Write a default configuration file"`
}

// AfterApply runs after flag parsing; sets up logging until the
// configuration file is loaded.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// runtime is a loaded configuration with an initialized engine.
type runtime struct {
	cfg      *config.Config
	svc      *docsync.Service
	logger   *slog.Logger
	registry *prometheus.Registry
	closers  []io.Closer
}

// setup loads the configuration, configures logging and notifications, and
// initializes the engine. withMetrics registers Prometheus collectors when
// metrics are enabled.
func setup(g *Global, root *CLI, withMetrics bool) (*runtime, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}

	logger, logCloser := cfg.Logging.NewLogger(g.stderr(), root.Verbose)
	slog.SetDefault(logger)
	rt := &runtime{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if withMetrics && cfg.Metrics.Enabled {
		rt.registry = prometheus.NewRegistry()
		rt.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		recorder = metrics.NewPrometheusRecorder(rt.registry)
	}

	rt.svc = docsync.New(cfg.Root(),
		docsync.WithLogger(logger),
		docsync.WithRecorder(recorder),
		docsync.WithWatchDebounce(cfg.WatchDebounce),
		docsync.WithListener(notify.NewLogListener(logger)))

	if cfg.Notify.NATSURL != "" {
		nl, err := notify.ConnectNATS(cfg.Notify.NATSURL, cfg.Notify.Subject, logger)
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.svc.AddListener(nl)
		rt.closers = append(rt.closers, nl)
	}

	if err := rt.svc.Initialize(cfg.SyncConfig()); err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
}

// serveMetrics exposes the registry until ctx ends. It is a no-op when
// metrics are disabled.
func (rt *runtime) serveMetrics(ctx context.Context) error {
	if rt.registry == nil {
		return nil
	}
	srv, err := metrics.Listen(rt.cfg.Metrics.Listen, rt.cfg.Metrics.Path, rt.registry)
	if err != nil {
		return err
	}
	go func() {
		if err := srv.Serve(ctx); err != nil {
			rt.logger.Error("Metrics endpoint stopped", logfields.Error(err))
		}
	}()
	return nil
}

// Close releases notification connections and log files in reverse order.
func (rt *runtime) Close() {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		errs = append(errs, rt.closers[i].Close())
	}
	if err := errors.Join(errs...); err != nil {
		slog.Warn("Failed to release resources", logfields.Error(err))
	}
}
