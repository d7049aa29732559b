// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/podium/internal/adapters/repository"
	"github.com/okian/podium/internal/domain/filter"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/pipeline"
	"github.com/okian/podium/internal/domain/types"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

const defaultTitle = "Summer Olympics (1896-2024) Dashboard"

// Service loads the record store and renders dashboard views over it.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	registry *pipeline.Registry

	// Configuration
	datasetPath    string
	objectStore    *repository.ObjectStoreConfig
	filterAllViews bool
	funFacts       []string
	title          string
	videoURL       string

	// State
	started   bool
	startedAt time.Time
	loadTook  time.Duration

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDatasetPath sets the CSV file or s3:// URL loaded on Start.
func WithDatasetPath(path string) Option {
	return func(s *Service) {
		s.datasetPath = path
	}
}

// WithObjectStore sets the S3-compatible endpoint used for s3:// paths.
func WithObjectStore(cfg repository.ObjectStoreConfig) Option {
	return func(s *Service) {
		if cfg.Endpoint != "" {
			s.objectStore = &cfg
		}
	}
}

// WithStore uses an already built store instead of loading one on Start.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithFilterAllViews controls whether the whole-store views honour filters.
func WithFilterAllViews(enabled bool) Option {
	return func(s *Service) {
		s.filterAllViews = enabled
	}
}

// WithFunFacts replaces the fun facts lines.
func WithFunFacts(facts []string) Option {
	return func(s *Service) {
		s.funFacts = facts
	}
}

// WithTitle sets the dashboard title.
func WithTitle(title string) Option {
	return func(s *Service) {
		if title != "" {
			s.title = title
		}
	}
}

// WithVideoURL sets the embedded video link.
func WithVideoURL(url string) Option {
	return func(s *Service) {
		s.videoURL = url
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		filterAllViews: true,
		title:          defaultTitle,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registry = pipeline.NewRegistry(pipeline.WithFunFacts(s.funFacts))
	return s
}

// Start loads the record store unless one was supplied.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		s.logger.Info(ctx, "loading dataset", logger.String("path", s.datasetPath))

		var opts []repository.Option
		if s.objectStore != nil {
			opts = append(opts, repository.WithObjectStore(*s.objectStore))
		}

		began := time.Now()
		store, err := repository.Load(ctx, s.datasetPath, opts...)
		if err != nil {
			metrics.RecordErrorByComponent("repository", "load")
			return fmt.Errorf("%w: %w", ErrLoadDataset, err)
		}
		s.store = store
		s.loadTook = time.Since(began)
	}

	metrics.RecordDatasetLoaded(s.store.Len(), s.loadTook)

	s.started = true
	s.startedAt = time.Now()
	o := s.store.Options()
	s.logger.Info(ctx, "podium service started",
		logger.Int("records", s.store.Len()),
		logger.Int("countries", len(o.Countries)),
		logger.Int("sports", len(o.Sports)),
		logger.Int("yearMin", o.YearMin),
		logger.Int("yearMax", o.YearMax),
		logger.Duration("load", s.loadTook),
		logger.Bool("filterAllViews", s.filterAllViews),
	)

	return nil
}

// Stop marks the service stopped. The store is kept so in-flight requests
// finish against it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "podium service stopped")
}

func (s *Service) snapshot() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// Views lists every view in navigation order.
func (s *Service) Views(_ context.Context) []types.ViewInfo {
	views := s.registry.Views()
	out := make([]types.ViewInfo, 0, len(views))
	for _, v := range views {
		out = append(out, types.ViewInfo{
			ID:       v.ID,
			Title:    v.Title,
			Chart:    v.Chart,
			Filtered: s.honoursFilters(v),
		})
	}
	return out
}

// Filters returns the widget option lists and their defaults.
func (s *Service) Filters(_ context.Context) (types.Filters, error) {
	store, err := s.snapshot()
	if err != nil {
		return types.Filters{}, err
	}
	return types.NewFilters(store.Options()), nil
}

// DefaultContext returns the filter context used when the user has chosen
// nothing.
func (s *Service) DefaultContext(_ context.Context) (filter.Context, error) {
	store, err := s.snapshot()
	if err != nil {
		return filter.Context{}, err
	}
	return store.Options().Defaults(), nil
}

// Resolve overlays a partial selection on the default context.
func (s *Service) Resolve(ctx context.Context, sel filter.Selection) (filter.Context, error) {
	defaults, err := s.DefaultContext(ctx)
	if err != nil {
		return filter.Context{}, err
	}
	return sel.Resolve(defaults), nil
}

// Render filters the store with fc and runs the view's pipeline.
func (s *Service) Render(ctx context.Context, id pipeline.ViewID, fc filter.Context) (pipeline.Result, error) {
	view, ok := s.registry.Lookup(id)
	if !ok {
		metrics.RecordPipelineFailure(string(id), "unknown_view")
		return pipeline.Result{}, fmt.Errorf("%w: %q", pipeline.ErrUnknownView, id)
	}

	store, err := s.snapshot()
	if err != nil {
		metrics.RecordPipelineFailure(string(id), "not_started")
		return pipeline.Result{}, err
	}

	began := time.Now()
	filtered := s.honoursFilters(view)

	var records []model.Record
	switch {
	case view.Scope == pipeline.ScopeNone:
	case filtered:
		records = filter.Apply(store.Records(), fc)
	default:
		records = store.Records()
	}

	res := view.Run(records, filtered)
	took := time.Since(began)
	metrics.RecordPipelineRun(string(id), len(records), len(res.Rows), float64(took.Microseconds())/1000)

	s.logger.Debug(ctx, "view rendered",
		logger.String("view", string(id)),
		logger.Bool("filtered", filtered),
		logger.Int("records", len(records)),
		logger.Int("rows", len(res.Rows)),
		logger.Duration("took", took),
	)
	return res, nil
}

func (s *Service) honoursFilters(v pipeline.View) bool {
	switch v.Scope {
	case pipeline.ScopeFiltered:
		return true
	case pipeline.ScopeStore:
		return s.filterAllViews
	default:
		return false
	}
}

// Meta returns the title, video link and fun facts.
func (s *Service) Meta(_ context.Context) types.Meta {
	return types.Meta{
		Title:    s.title,
		VideoURL: s.videoURL,
		FunFacts: s.registry.FunFacts(),
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"views":          len(s.registry.Views()),
		"filterAllViews": s.filterAllViews,
	}

	if s.started {
		o := s.store.Options()
		stats["records"] = s.store.Len()
		stats["countries"] = len(o.Countries)
		stats["sports"] = len(o.Sports)
		stats["yearMin"] = o.YearMin
		stats["yearMax"] = o.YearMax
		stats["loadDurationMs"] = s.loadTook.Milliseconds()
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
	}

	return stats
}
