package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"vessel_trmnl/internal/models"
)

// ErrNegativeCount is returned when a fleet of negative size is requested
var ErrNegativeCount = errors.New("fleet size must not be negative")

// ETALayout is the date format used for voyage ETAs (en-GB)
const ETALayout = "02/01/2006"

// NorthAtlantic is the area new vessels are placed in
var NorthAtlantic = orb.Bound{
	Min: orb.Point{-70, 25},
	Max: orb.Point{0, 55},
}

var flags = []string{
	"Panama", "Liberia", "Marshall Islands", "Hong Kong", "Singapore",
	"Malta", "China", "Greece", "Japan", "USA",
}

var vesselNames = []string{
	"Ocean Explorer", "Northern Star", "Atlantic Voyager", "Pacific Guardian",
	"Golden Horizon", "Silver Wind", "Blue Marlin", "Crimson Tide",
	"Emerald Duchess", "Diamond Princess", "Sapphire Queen", "Ruby Fortune",
	"Arctic Pioneer", "Southern Cross", "Eastern Glory", "Western Spirit",
	"Coastal Ranger", "Infinity Explorer", "Nautilus Prime", "Poseidon Venture",
}

var ports = []string{
	"Rotterdam", "Singapore", "Shanghai", "Hong Kong", "Busan",
	"Antwerp", "Los Angeles", "New York", "Hamburg", "Dubai",
	"Tokyo", "Felixstowe", "Valencia", "Sydney", "Santos",
}

var activityEvents = []string{
	"Departed from port",
	"Arrived at port",
	"Changed course",
	"Reduced speed",
	"Increased speed",
	"Anchored",
	"Started voyage",
	"Completed voyage",
	"Reported position",
	"Changed destination",
}

const callSignLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Generator produces synthetic vessels in place of a live AIS feed.
// A Generator is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// New creates a generator seeded with seed. A nil clock uses time.Now.
func New(seed int64, clock func() time.Time) *Generator {
	if clock == nil {
		clock = time.Now
	}
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: clock,
	}
}

// GenerateFleet returns count freshly generated vessels
func (g *Generator) GenerateFleet(count int) ([]*models.Vessel, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, count)
	}

	vessels := make([]*models.Vessel, 0, count)
	for i := 0; i < count; i++ {
		v, err := g.generateVessel()
		if err != nil {
			return nil, fmt.Errorf("failed to generate vessel %d: %w", i, err)
		}
		vessels = append(vessels, v)
	}
	return vessels, nil
}

func (g *Generator) generateVessel() (*models.Vessel, error) {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}

	now := g.now()
	status := models.Statuses[g.rng.Intn(len(models.Statuses))]
	pos := g.randomPoint(NorthAtlantic)

	v := &models.Vessel{
		ID:           id.String(),
		Name:         pick(g.rng, vesselNames),
		IMO:          fmt.Sprintf("IMO%d", g.between(1000000, 9999999)),
		MMSI:         fmt.Sprintf("%d", g.between(100000000, 999999999)),
		CallSign:     g.callSign(),
		Type:         models.VesselTypes[g.rng.Intn(len(models.VesselTypes))],
		Flag:         pick(g.rng, flags),
		Length:       g.between(50, 400),
		Beam:         g.between(10, 60),
		Draught:      g.between(5, 20),
		GrossTonnage: g.between(1000, 200000),
		Status:       status,
		Speed:        g.speedFor(status),
		Course:       g.between(0, 359),
		Heading:      g.between(0, 359),
		Latitude:     pos.Lat(),
		Longitude:    pos.Lon(),
		LastUpdate:   now,
	}

	if status.OnVoyage() {
		v.Voyage = &models.Voyage{
			Destination: pick(g.rng, ports),
			ETA:         now.AddDate(0, 0, g.between(1, 14)).Format(ETALayout),
		}
	}

	return v, nil
}

// GenerateDetails derives the extended record for v without modifying it
func (g *Generator) GenerateDetails(v *models.Vessel) models.Details {
	// coarse 1.2-1.8 scaling factor
	deadWeight := float64(v.GrossTonnage*g.between(12, 18)) / 10

	count := g.between(3, 6)
	activity := make([]models.Activity, 0, count)
	location := v.Location()
	at := g.now()
	for i := 0; i < count; i++ {
		if i > 0 {
			at = at.AddDate(0, 0, -g.between(1, 3))
		}
		activity = append(activity, models.Activity{
			Time:     at,
			Event:    pick(g.rng, activityEvents),
			Location: location,
		})
	}

	return models.Details{
		DeadWeight:     deadWeight,
		Built:          g.between(1990, 2022),
		RecentActivity: activity,
	}
}

func (g *Generator) speedFor(status models.Status) int {
	switch status {
	case models.StatusMoving, models.StatusUnderway:
		return g.between(5, 25)
	case models.StatusAground:
		return 0
	default:
		return g.between(0, 2)
	}
}

func (g *Generator) callSign() string {
	b := make([]byte, 3)
	for i := range b {
		b[i] = callSignLetters[g.rng.Intn(len(callSignLetters))]
	}
	return fmt.Sprintf("%s%d", b, g.between(1000, 9999))
}

func (g *Generator) randomPoint(b orb.Bound) orb.Point {
	return orb.Point{
		b.Min.Lon() + g.rng.Float64()*(b.Max.Lon()-b.Min.Lon()),
		b.Min.Lat() + g.rng.Float64()*(b.Max.Lat()-b.Min.Lat()),
	}
}

// between returns a uniform integer in [lo, hi]
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func pick[T any](rng *rand.Rand, values []T) T {
	return values[rng.Intn(len(values))]
}
