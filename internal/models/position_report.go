package models

import (
	"fmt"
	"time"
)

// PositionReport is emitted for every vessel a tick moves
type PositionReport struct {
	VesselID  string
	MMSI      string
	Timestamp time.Time
	Latitude  float64
	Longitude float64
	Speed     int // knots
	Heading   int // degrees
}

// NewPositionReport captures the vessel's current kinematics
func NewPositionReport(v *Vessel) *PositionReport {
	return &PositionReport{
		VesselID:  v.ID,
		MMSI:      v.MMSI,
		Timestamp: v.LastUpdate,
		Latitude:  v.Latitude,
		Longitude: v.Longitude,
		Speed:     v.Speed,
		Heading:   v.Heading,
	}
}

// String returns a compact log representation
func (r *PositionReport) String() string {
	return fmt.Sprintf("%s %.5f,%.5f %dkn %d°", r.MMSI, r.Latitude, r.Longitude, r.Speed, r.Heading)
}
