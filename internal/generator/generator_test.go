package generator

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vessel_trmnl/internal/models"
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestGenerateFleet(t *testing.T) {
	g := New(42, fixedClock)

	vessels, err := g.GenerateFleet(200)
	require.NoError(t, err)
	require.Len(t, vessels, 200)

	imo := regexp.MustCompile(`^IMO\d{7}$`)
	mmsi := regexp.MustCompile(`^\d{9}$`)
	callSign := regexp.MustCompile(`^[A-Z]{3}\d{4}$`)

	ids := make(map[string]bool)
	for _, v := range vessels {
		require.NoError(t, v.Validate())
		assert.False(t, ids[v.ID], "duplicate id %s", v.ID)
		ids[v.ID] = true

		assert.Regexp(t, imo, v.IMO)
		assert.Regexp(t, mmsi, v.MMSI)
		assert.Regexp(t, callSign, v.CallSign)
		assert.Contains(t, vesselNames, v.Name)
		assert.Contains(t, flags, v.Flag)
		assert.Contains(t, models.VesselTypes, v.Type)
		assert.Contains(t, models.Statuses, v.Status)

		assert.True(t, NorthAtlantic.Contains(v.Point()), "position %v outside generation area", v.Point())
		assert.Equal(t, fixedNow, v.LastUpdate)
		assert.False(t, v.Enriched())

		switch v.Status {
		case models.StatusMoving, models.StatusUnderway:
			assert.GreaterOrEqual(t, v.Speed, 5)
			assert.LessOrEqual(t, v.Speed, 25)
			require.NotNil(t, v.Voyage)
			assert.Contains(t, ports, v.Voyage.Destination)
			eta, err := time.Parse(ETALayout, v.Voyage.ETA)
			require.NoError(t, err)
			days := int(eta.Sub(fixedNow.Truncate(24*time.Hour)).Hours() / 24)
			assert.GreaterOrEqual(t, days, 1)
			assert.LessOrEqual(t, days, 14)
		case models.StatusAground:
			assert.Equal(t, 0, v.Speed)
			assert.Nil(t, v.Voyage)
		default:
			assert.LessOrEqual(t, v.Speed, 2)
			assert.Nil(t, v.Voyage)
		}

		assert.GreaterOrEqual(t, v.Course, 0)
		assert.Less(t, v.Course, 360)
		assert.GreaterOrEqual(t, v.Heading, 0)
		assert.Less(t, v.Heading, 360)
	}
}

func TestGenerateFleet_Empty(t *testing.T) {
	g := New(1, fixedClock)

	vessels, err := g.GenerateFleet(0)
	require.NoError(t, err)
	assert.Empty(t, vessels)
}

func TestGenerateFleet_NegativeCount(t *testing.T) {
	g := New(1, fixedClock)

	vessels, err := g.GenerateFleet(-3)
	assert.ErrorIs(t, err, ErrNegativeCount)
	assert.Nil(t, vessels)
}

func TestGenerateFleet_SameSeed(t *testing.T) {
	a, err := New(7, fixedClock).GenerateFleet(10)
	require.NoError(t, err)
	b, err := New(7, fixedClock).GenerateFleet(10)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerateDetails(t *testing.T) {
	g := New(3, fixedClock)
	vessels, err := g.GenerateFleet(50)
	require.NoError(t, err)

	for _, v := range vessels {
		before := v.Clone()

		d := g.GenerateDetails(v)

		assert.Equal(t, before, v.Clone(), "input vessel must not change")

		gt := float64(v.GrossTonnage)
		assert.GreaterOrEqual(t, d.DeadWeight, gt*1.2-1e-6)
		assert.LessOrEqual(t, d.DeadWeight, gt*1.8+1e-6)
		assert.GreaterOrEqual(t, d.Built, 1990)
		assert.LessOrEqual(t, d.Built, 2022)

		require.GreaterOrEqual(t, len(d.RecentActivity), 3)
		require.LessOrEqual(t, len(d.RecentActivity), 6)
		assert.Equal(t, fixedNow, d.RecentActivity[0].Time)
		for i, a := range d.RecentActivity {
			assert.Contains(t, activityEvents, a.Event)
			assert.Equal(t, v.Location(), a.Location)
			if i > 0 {
				prev := d.RecentActivity[i-1].Time
				assert.True(t, a.Time.Before(prev), "activity %d not older than %d", i, i-1)
				gap := prev.Sub(a.Time)
				assert.GreaterOrEqual(t, gap, 24*time.Hour)
				assert.LessOrEqual(t, gap, 72*time.Hour)
			}
		}
	}
}
