package tasks

import (
	"context"
	"log/slog"
	"time"

	"vessel_trmnl/internal/database"
	"vessel_trmnl/internal/models"
)

// ReportCollector collects position reports from fleet ticks and commits them to the database in batches
type ReportCollector struct {
	repo          database.PositionReportRepository
	reportChan    <-chan *models.PositionReport
	batchSize     int           // maximum number of reports in a batch before committing to database
	flushInterval time.Duration // time to flush batch even if not full
}

// Default batch size is 100 reports and flush interval is 5 seconds
func NewReportCollector(repo database.PositionReportRepository, reportChan <-chan *models.PositionReport) *ReportCollector {
	return &ReportCollector{
		repo:          repo,
		reportChan:    reportChan,
		batchSize:     100,
		flushInterval: 5 * time.Second,
	}
}

// NewReportCollectorWithConfig creates a collector with custom batch settings
func NewReportCollectorWithConfig(repo database.PositionReportRepository, reportChan <-chan *models.PositionReport, batchSize int, flushInterval time.Duration) *ReportCollector {
	return &ReportCollector{
		repo:          repo,
		reportChan:    reportChan,
		batchSize:     batchSize,
		flushInterval: flushInterval,
	}
}

// Start collects reports until the context is cancelled or the channel is closed.
// A batch is flushed when it reaches batchSize or when flushInterval has elapsed.
func (c *ReportCollector) Start(ctx context.Context) error {
	batch := make([]*models.PositionReport, 0, c.batchSize)

	flushBatch := func() {
		if len(batch) == 0 {
			return
		}
		if err := c.repo.InsertBatch(batch); err != nil {
			slog.Error("Error inserting batch of position reports", "batch_size", len(batch), "error", err)
		} else {
			slog.Info("Inserted batch of position reports", "batch_size", len(batch))
		}
		batch = batch[:0]
	}

	ticker := time.NewTicker(c.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			flushBatch()
			return ctx.Err()

		case <-ticker.C:
			flushBatch()

		case rep, ok := <-c.reportChan:
			if !ok {
				flushBatch()
				return nil
			}
			if rep == nil {
				continue
			}

			batch = append(batch, rep)

			slog.Debug("Added position report to batch",
				"vessel_id", rep.VesselID,
				"report", rep.String(),
				"current_batch_size", len(batch),
				"max_batch_size", c.batchSize,
			)

			if len(batch) >= c.batchSize {
				flushBatch()
			}
		}
	}
}
