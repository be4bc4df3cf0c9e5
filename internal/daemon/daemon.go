package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"vessel_trmnl/internal/database"
	"vessel_trmnl/internal/fleet"
	"vessel_trmnl/internal/generator"
	"vessel_trmnl/internal/models"
	"vessel_trmnl/internal/scheduler"
	"vessel_trmnl/internal/selection"
	"vessel_trmnl/internal/tasks"
)

// Daemon represents the main daemon structure
type Daemon struct {
	ctx        context.Context
	cancel     context.CancelFunc
	scheduler  *scheduler.Scheduler
	database   *database.DB
	store      *fleet.Store
	selection  *selection.Selection
	collector  *tasks.ReportCollector
	reportChan chan *models.PositionReport
	mu         sync.Mutex
	started    bool
	stopped    bool
	stopOnce   sync.Once
	done       chan struct{}
}

var (
	// ErrAlreadyStarted is returned by Start on a daemon that is running
	ErrAlreadyStarted = errors.New("daemon already started")
	// ErrStopped is returned by Start once Stop has been called
	ErrStopped = errors.New("daemon stopped")
)

// Config holds daemon configuration
type Config struct {
	DBPath         string        // Path to SQLite database
	FleetSize      int           // Number of simulated vessels
	Seed           int64         // Generator seed, 0 uses the current time
	TickInterval   time.Duration // How often vessel positions advance
	BatchSize      int           // Number of reports to batch before writing
	BatchTimeout   time.Duration // Flush batch after this time even if not full
	ExportPath     string        // GeoJSON snapshot file, empty disables
	ExportInterval time.Duration
}

// New creates a new daemon instance with its fleet generated and registered
func New(cfg Config) (*Daemon, error) {
	if cfg.FleetSize < 0 {
		return nil, fmt.Errorf("FleetSize must not be negative, got %d", cfg.FleetSize)
	}

	ctx, cancel := context.WithCancel(context.Background())

	db, err := database.New(cfg.DBPath)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Buffered so a tick never waits on the database
	reportChan := make(chan *models.PositionReport, 1000)

	store := fleet.New(
		generator.New(seed, nil),
		fleet.WithTickInterval(cfg.TickInterval),
		fleet.WithReportSink(reportChan),
	)
	if err := store.Initialize(cfg.FleetSize); err != nil {
		cancel()
		db.Close()
		return nil, fmt.Errorf("failed to initialize fleet: %w", err)
	}

	registry := db.RegistryRepository()
	if err := registry.InsertBatch(store.Vessels()); err != nil {
		cancel()
		db.Close()
		return nil, fmt.Errorf("failed to register fleet: %w", err)
	}
	if n, err := registry.Count(); err == nil {
		slog.Info("Vessel registry updated", "registered", n, "seed", seed)
	}

	batchSize := 100
	if cfg.BatchSize > 0 {
		batchSize = cfg.BatchSize
	}
	batchTimeout := 5 * time.Second
	if cfg.BatchTimeout > 0 {
		batchTimeout = cfg.BatchTimeout
	}
	collector := tasks.NewReportCollectorWithConfig(db.PositionReportRepository(), reportChan, batchSize, batchTimeout)

	sched := scheduler.New(ctx)

	if cfg.ExportPath != "" {
		interval := cfg.ExportInterval
		if interval <= 0 {
			interval = fleet.DefaultTickInterval
		}
		sched.AddTask(tasks.NewGeoJSONExport(store, cfg.ExportPath, interval))
	}

	return &Daemon{
		ctx:        ctx,
		cancel:     cancel,
		scheduler:  sched,
		database:   db,
		store:      store,
		selection:  selection.New(store),
		collector:  collector,
		reportChan: reportChan,
		done:       make(chan struct{}),
	}, nil
}

// Store is the fleet the presentation layer reads from
func (d *Daemon) Store() *fleet.Store {
	return d.store
}

// Selection is the focused-vessel state shared with the presentation layer
func (d *Daemon) Selection() *selection.Selection {
	return d.selection
}

// Start launches the report collector and the fleet tick. It may be called once.
func (d *Daemon) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return ErrStopped
	}
	if d.started {
		return ErrAlreadyStarted
	}

	slog.Info("Starting daemon", "vessel_count", d.store.Len())

	go func() {
		defer close(d.done)
		if err := d.collector.Start(d.ctx); err != nil && d.ctx.Err() == nil {
			slog.Error("Report collector stopped", "error", err)
		}
	}()

	d.started = true

	if err := d.store.Start(d.scheduler); err != nil {
		return fmt.Errorf("failed to start fleet: %w", err)
	}

	slog.Info("Daemon started successfully")
	return nil
}

// Stop gracefully stops the daemon. Reports already published are written before the database closes.
func (d *Daemon) Stop() error {
	d.stopOnce.Do(func() {
		slog.Info("Stopping daemon")

		d.mu.Lock()
		defer d.mu.Unlock()
		d.stopped = true

		// no tick can publish after this
		d.store.Stop()
		d.scheduler.Stop()

		close(d.reportChan)
		if d.started {
			<-d.done
		}
		d.cancel()

		if err := d.database.Close(); err != nil {
			slog.Error("Error closing database", "error", err)
		}

		slog.Info("Daemon stopped")
	})
	return nil
}
