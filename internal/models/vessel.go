package models

import (
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/paulmach/orb"
)

// VesselType is the registry category of a vessel
type VesselType string

const (
	VesselTypeCargo          VesselType = "Cargo"
	VesselTypeTanker         VesselType = "Tanker"
	VesselTypePassenger      VesselType = "Passenger"
	VesselTypeFishing        VesselType = "Fishing"
	VesselTypeSpecialCraft   VesselType = "Special Craft"
	VesselTypeHighSpeedCraft VesselType = "High Speed Craft"
)

// VesselTypes lists every vessel type in display order
var VesselTypes = []VesselType{
	VesselTypeCargo,
	VesselTypeTanker,
	VesselTypePassenger,
	VesselTypeFishing,
	VesselTypeSpecialCraft,
	VesselTypeHighSpeedCraft,
}

// Status is the navigational status of a vessel
type Status string

const (
	StatusMoving   Status = "moving"
	StatusAnchored Status = "anchored"
	StatusMoored   Status = "moored"
	StatusUnderway Status = "underway"
	StatusAground  Status = "aground"
)

// Statuses lists every navigational status
var Statuses = []Status{
	StatusMoving,
	StatusAnchored,
	StatusMoored,
	StatusUnderway,
	StatusAground,
}

// OnVoyage reports whether a vessel with this status carries a destination and ETA
func (s Status) OnVoyage() bool {
	return s == StatusMoving || s == StatusUnderway
}

// Voyage holds destination information for vessels under way
type Voyage struct {
	Destination string `validate:"required"`
	ETA         string `validate:"required"` // dd/mm/yyyy
}

// Activity is one entry of a vessel's recent history
type Activity struct {
	Time     time.Time
	Event    string
	Location string
}

// Details is the extended record generated on first access to a vessel
type Details struct {
	DeadWeight     float64
	Built          int
	RecentActivity []Activity
}

// Vessel represents a tracked vessel.
// Voyage is set only while the vessel is moving or underway and Details is nil
// until the vessel has been enriched.
type Vessel struct {
	ID           string     `validate:"required"`
	Name         string     `validate:"required"`
	IMO          string     `validate:"required"` // "IMO" + 7 digits
	MMSI         string     `validate:"required,numeric,len=9"`
	CallSign     string     `validate:"required"`
	Type         VesselType `validate:"required"`
	Flag         string     `validate:"required"`
	Length       int        // meters
	Beam         int        // meters
	Draught      int        // meters
	GrossTonnage int
	Status       Status  `validate:"required"`
	Speed        int     `validate:"gte=0"`        // knots
	Course       int     `validate:"gte=0,lt=360"` // degrees
	Heading      int     `validate:"gte=0,lt=360"` // degrees
	Latitude     float64 `validate:"gte=-90,lte=90"`
	Longitude    float64 `validate:"gte=-180,lte=180"`
	LastUpdate   time.Time
	Voyage       *Voyage
	Details      *Details
}

var validate = validator.New()

// Validate checks the vessel's field ranges and the status-dependent invariants
func (v *Vessel) Validate() error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("vessel %s: %w", v.ID, err)
	}
	if v.Status == StatusAground && v.Speed != 0 {
		return fmt.Errorf("vessel %s: aground with speed %d", v.ID, v.Speed)
	}
	if v.Status.OnVoyage() != (v.Voyage != nil) {
		return fmt.Errorf("vessel %s: voyage presence does not match status %s", v.ID, v.Status)
	}
	return nil
}

// Enriched reports whether the detail group has been generated
func (v *Vessel) Enriched() bool {
	return v.Details != nil
}

// Point returns the vessel position as lng/lat
func (v *Vessel) Point() orb.Point {
	return orb.Point{v.Longitude, v.Latitude}
}

// Location formats the current position, e.g. "51.92°N 4.48°W"
func (v *Vessel) Location() string {
	ns, ew := "N", "E"
	if v.Latitude < 0 {
		ns = "S"
	}
	if v.Longitude < 0 {
		ew = "W"
	}
	return fmt.Sprintf("%.2f°%s %.2f°%s", math.Abs(v.Latitude), ns, math.Abs(v.Longitude), ew)
}

// Clone returns a deep copy so callers never share the voyage or detail groups
func (v *Vessel) Clone() Vessel {
	c := *v
	if v.Voyage != nil {
		voyage := *v.Voyage
		c.Voyage = &voyage
	}
	if v.Details != nil {
		details := *v.Details
		details.RecentActivity = append([]Activity(nil), v.Details.RecentActivity...)
		c.Details = &details
	}
	return c
}
