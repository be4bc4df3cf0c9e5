package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"vessel_trmnl/internal/geo"
	"vessel_trmnl/internal/models"
)

// FleetSource provides the current fleet snapshot; fleet.Store satisfies it
type FleetSource interface {
	Vessels() []models.Vessel
}

// GeoJSONExport periodically writes the fleet as a GeoJSON FeatureCollection for map clients
type GeoJSONExport struct {
	source   FleetSource
	path     string
	interval time.Duration
}

func NewGeoJSONExport(source FleetSource, path string, interval time.Duration) *GeoJSONExport {
	return &GeoJSONExport{
		source:   source,
		path:     path,
		interval: interval,
	}
}

func (e *GeoJSONExport) Name() string            { return "geojson_export" }
func (e *GeoJSONExport) Interval() time.Duration { return e.interval }
func (e *GeoJSONExport) RunOnStart() bool        { return true }

// Run writes the snapshot to a temporary file and renames it over path,
// so readers never observe a partial file
func (e *GeoJSONExport) Run(ctx context.Context) error {
	vessels := e.source.Vessels()

	data, err := json.Marshal(geo.FeatureCollection(vessels))
	if err != nil {
		return fmt.Errorf("failed to encode fleet: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(e.path), ".fleet-*.geojson")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write fleet snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close fleet snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), e.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", e.path, err)
	}

	slog.Debug("Exported fleet snapshot", "path", e.path, "vessel_count", len(vessels), "bound", geo.Bound(vessels))
	return nil
}
