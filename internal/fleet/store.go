package fleet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"vessel_trmnl/internal/generator"
	"vessel_trmnl/internal/models"
	"vessel_trmnl/internal/query"
	"vessel_trmnl/internal/scheduler"
)

const (
	// DefaultTickInterval is how often vessel positions advance
	DefaultTickInterval = 30 * time.Second

	// MotionScale converts knots into degrees moved per tick
	MotionScale = 0.0001
)

var (
	// ErrAlreadyStarted is returned by Start on a running store
	ErrAlreadyStarted = errors.New("fleet store already started")
	// ErrStopped is returned by Start once the store has been stopped
	ErrStopped = errors.New("fleet store stopped")
)

// Runner is the scheduler the store registers its tick with
type Runner interface {
	AddTask(task scheduler.Task)
	Start()
	Stop()
}

// Store owns the live fleet. All mutation goes through Tick and Enrich;
// readers only ever receive copies.
type Store struct {
	mu       sync.RWMutex
	gen      *generator.Generator
	vessels  []*models.Vessel
	index    map[string]*models.Vessel
	interval time.Duration
	now      func() time.Time
	reports  chan<- *models.PositionReport

	lifecycle sync.Mutex
	runner    Runner
	stopped   bool
}

// Option configures a Store
type Option func(*Store)

// WithTickInterval overrides DefaultTickInterval
func WithTickInterval(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithClock sets the clock used for last-update timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithReportSink publishes a position report for every vessel a tick moves.
// Reports are dropped when the channel is full.
func WithReportSink(reports chan<- *models.PositionReport) Option {
	return func(s *Store) {
		s.reports = reports
	}
}

// New creates an empty store backed by gen
func New(gen *generator.Generator, opts ...Option) *Store {
	s := &Store{
		gen:      gen,
		index:    make(map[string]*models.Vessel),
		interval: DefaultTickInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize replaces the fleet with count generated vessels
func (s *Store) Initialize(count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	vessels, err := s.gen.GenerateFleet(count)
	if err != nil {
		return fmt.Errorf("failed to generate fleet: %w", err)
	}

	return s.load(vessels)
}

// load installs vessels as the fleet; callers hold mu
func (s *Store) load(vessels []*models.Vessel) error {
	index := make(map[string]*models.Vessel, len(vessels))
	for _, v := range vessels {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("invalid vessel: %w", err)
		}
		if _, dup := index[v.ID]; dup {
			return fmt.Errorf("duplicate vessel id %s", v.ID)
		}
		index[v.ID] = v
	}

	s.vessels = vessels
	s.index = index
	slog.Info("Fleet initialized", "vessel_count", len(vessels))
	return nil
}

// Start registers the tick with runner and starts it
func (s *Store) Start(runner Runner) error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if s.stopped {
		return ErrStopped
	}
	if s.runner != nil {
		return ErrAlreadyStarted
	}

	runner.AddTask(s)
	runner.Start()
	s.runner = runner
	slog.Info("Fleet simulation started", "tick_interval", s.interval)
	return nil
}

// Stop cancels future ticks. A tick in progress completes first. Safe to call more than once.
func (s *Store) Stop() {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true
	if s.runner != nil {
		s.runner.Stop()
	}
	slog.Info("Fleet simulation stopped")
}

// Name implements scheduler.Task
func (s *Store) Name() string {
	return "fleet_tick"
}

// Interval implements scheduler.Task
func (s *Store) Interval() time.Duration {
	return s.interval
}

// Run implements scheduler.Task: one tick, then publish the reports
func (s *Store) Run(ctx context.Context) error {
	reports := s.Tick()
	slog.Debug("Fleet tick", "moved", len(reports))

	if s.reports == nil {
		return nil
	}

	dropped := 0
	for _, r := range reports {
		select {
		case s.reports <- r:
		case <-ctx.Done():
			return ctx.Err()
		default:
			dropped++
		}
	}
	if dropped > 0 {
		slog.Warn("Position report sink full, dropped reports", "dropped", dropped)
	}
	return nil
}

// Tick advances every moving vessel along its heading using a flat-plane
// projection. Other vessels are left untouched. Coordinates are neither
// wrapped nor clamped.
func (s *Store) Tick() []*models.PositionReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var reports []*models.PositionReport
	for _, v := range s.vessels {
		if v.Status != models.StatusMoving || v.Speed <= 0 {
			continue
		}

		heading := float64(v.Heading) * math.Pi / 180
		v.Latitude += float64(v.Speed) * MotionScale * math.Cos(heading)
		v.Longitude += float64(v.Speed) * MotionScale * math.Sin(heading)
		v.LastUpdate = now

		reports = append(reports, models.NewPositionReport(v))
	}
	return reports
}

// Enrich generates the detail group of vessel id on first call.
// Unknown ids and already enriched vessels are ignored.
func (s *Store) Enrich(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.index[id]
	if !ok {
		slog.Debug("Enrich requested for unknown vessel", "vessel_id", id)
		return
	}
	if v.Enriched() {
		return
	}

	details := s.gen.GenerateDetails(v)
	v.Details = &details
	slog.Debug("Vessel enriched", "vessel_id", id, "activity_count", len(details.RecentActivity))
}

// GetByID returns a copy of vessel id; false means not found
func (s *Store) GetByID(id string) (models.Vessel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.index[id]
	if !ok {
		return models.Vessel{}, false
	}
	return v.Clone(), true
}

// Vessels returns a copy of the fleet in its original order
func (s *Store) Vessels() []models.Vessel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Vessel, 0, len(s.vessels))
	for _, v := range s.vessels {
		out = append(out, v.Clone())
	}
	return out
}

// Len returns the fleet size
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vessels)
}

// Search runs a query against the current fleet
func (s *Store) Search(term string, filters query.Filters) []models.Vessel {
	return query.Search(s.Vessels(), term, filters)
}

// FilterOptions returns the distinct attribute values of the current fleet
func (s *Store) FilterOptions() query.Options {
	return query.FilterOptions(s.Vessels())
}
