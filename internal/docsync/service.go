package docsync

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsync/internal/discovery"
	"git.home.luguber.info/inful/docsync/internal/docmodel"
	"git.home.luguber.info/inful/docsync/internal/fileops"
	ferrors "git.home.luguber.info/inful/docsync/internal/foundation/errors"
	"git.home.luguber.info/inful/docsync/internal/logfields"
	"git.home.luguber.info/inful/docsync/internal/metrics"
	"git.home.luguber.info/inful/docsync/internal/pathmap"
)

// DefaultWatchDebounce is the stability threshold applied to a path before a
// watch handler runs.
const DefaultWatchDebounce = 300 * time.Millisecond

// Service is the synchronization engine.
type Service struct {
	root     string
	files    *fileops.Operations
	logger   *slog.Logger
	recorder metrics.Recorder
	debounce time.Duration

	mu        sync.Mutex
	state     State
	bound     *binding
	listeners []Listener
	watch     *watchSession

	cache *checksumCache
}

// Option configures a Service.
type Option func(*Service)

// WithFileOperations replaces the OS-backed file operations.
func WithFileOperations(ops *fileops.Operations) Option {
	return func(s *Service) { s.files = ops }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithWatchDebounce sets the per-path stability threshold used in watch mode.
func WithWatchDebounce(d time.Duration) Option {
	return func(s *Service) { s.debounce = d }
}

// WithListener registers a listener at construction.
func WithListener(l Listener) Option {
	return func(s *Service) { s.listeners = append(s.listeners, l) }
}

// New creates an uninitialized Service that resolves relative patterns and
// output paths against root.
func New(root string, opts ...Option) *Service {
	s := &Service{
		root:     root,
		files:    fileops.New(),
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		debounce: DefaultWatchDebounce,
		state:    StateUninitialized,
		cache:    newChecksumCache(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.recorder == nil {
		s.recorder = metrics.NoopRecorder{}
	}
	return s
}

// Initialize validates cfg, binds the path mapper to its patterns and
// creates the output root.
func (s *Service) Initialize(cfg Config) error {
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return ferrors.ConfigError("output directory is required").Build()
	}
	if len(cfg.SourcePatterns) == 0 {
		return ferrors.ConfigError("at least one source pattern is required").Build()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSyncing || s.state == StateWatching {
		return s.stateErrorLocked("initialize")
	}

	outputDir := cfg.OutputDir
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(s.root, outputDir)
	}
	if err := s.files.EnsureDirectory(outputDir); err != nil {
		return err
	}

	s.bound = &binding{
		cfg:       cfg,
		outputDir: outputDir,
		discovery: discovery.New(s.root, discovery.WithFs(s.files.Fs()), discovery.WithLogger(s.logger)),
		matcher:   discovery.NewMatcher(cfg.SourcePatterns),
		mapper:    pathmap.New(cfg.SourcePatterns, s.files),
	}
	s.state = StateInitialized

	s.logger.Debug("Sync engine initialized",
		logfields.Path(s.root),
		logfields.Dest(outputDir),
		logfields.Count(len(cfg.SourcePatterns)))
	return nil
}

// State returns the current lifecycle state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OutputDir returns the resolved output root. Empty before Initialize.
func (s *Service) OutputDir() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bound == nil {
		return ""
	}
	return s.bound.outputDir
}

// AddListener registers l for all subsequent events.
func (s *Service) AddListener(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// begin moves the engine from Initialized to next and returns the
// configuration the operation runs against.
func (s *Service) begin(op string, next State) (*binding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInitialized {
		return nil, s.stateErrorLocked(op)
	}
	s.state = next
	return s.bound, nil
}

// finish returns the engine to Initialized.
func (s *Service) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateInitialized
}

func (s *Service) stateErrorLocked(op string) error {
	return ferrors.StateError("operation not allowed in current state").
		WithContext("operation", op).
		WithContext("state", s.state.String()).
		Build()
}

func (s *Service) emit(ctx context.Context, ev Event) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now().UTC()
	}

	s.mu.Lock()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		if err := l.HandleEvent(ctx, ev); err != nil {
			s.logger.Warn("Listener failed to handle event",
				slog.String("kind", string(ev.Kind)),
				logfields.Error(err))
		}
	}
}

// discover enumerates source files. A missing project root is the only
// condition that stops a pass; pattern failures are logged by discovery.
func (s *Service) discover(b *binding) ([]string, error) {
	ok, err := s.files.Exists(s.root)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ferrors.NewError(ferrors.CategoryDiscovery, "project root does not exist").
			WithContext("path", s.root).
			Build()
	}
	return b.discovery.DiscoverFiles(b.cfg.SourcePatterns), nil
}

// binding is the configuration set by one Initialize call. It is never
// mutated; Initialize replaces it, so an operation or watch handler keeps
// working against the binding it started with.
type binding struct {
	cfg       Config
	outputDir string
	discovery *discovery.Discovery
	matcher   *discovery.Matcher
	mapper    *pathmap.Mapper
}

// classify returns the type of source or a discovery error when no pattern
// accepts it.
func (b *binding) classify(source string) (docmodel.DocumentationType, error) {
	typ, ok := b.matcher.FileType(source)
	if !ok {
		return "", ferrors.NewError(ferrors.CategoryDiscovery, "no source pattern classifies file").
			WithContext("path", source).
			Build()
	}
	return typ, nil
}

// watchSession holds the resources of one Watch call.
type watchSession struct {
	bound   *binding
	watcher *fsnotify.Watcher
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}
