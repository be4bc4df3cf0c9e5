package geo

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vessel_trmnl/internal/models"
)

func testFleet() []models.Vessel {
	return []models.Vessel{
		{
			ID: "a", Name: "Ocean Explorer", Type: models.VesselTypeCargo, Status: models.StatusMoving,
			Speed: 12, Latitude: 40, Longitude: -30,
			Voyage: &models.Voyage{Destination: "Rotterdam", ETA: "12/06/2024"},
		},
		{
			ID: "b", Name: "Northern Star", Type: models.VesselTypeTanker, Status: models.StatusMoored,
			Latitude: 50, Longitude: -10,
		},
	}
}

func TestFeatureCollection(t *testing.T) {
	fc := FeatureCollection(testFleet())

	require.Len(t, fc.Features, 2)

	first := fc.Features[0]
	assert.Equal(t, "a", first.ID)
	assert.Equal(t, orb.Point{-30, 40}, first.Geometry)
	assert.Equal(t, "Ocean Explorer", first.Properties.MustString("name"))
	assert.Equal(t, "moving", first.Properties.MustString("status"))
	assert.Equal(t, "Rotterdam", first.Properties.MustString("destination"))

	second := fc.Features[1]
	_, hasDestination := second.Properties["destination"]
	assert.False(t, hasDestination)
}

func TestFeatureCollection_RoundTripsAsGeoJSON(t *testing.T) {
	data, err := json.Marshal(FeatureCollection(testFleet()))
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, "Tanker", fc.Features[1].Properties.MustString("type"))
	assert.Equal(t, orb.Point{-10, 50}, fc.Features[1].Geometry)
}

func TestBound(t *testing.T) {
	b := Bound(testFleet())

	assert.Equal(t, orb.Point{-30, 40}, b.Min)
	assert.Equal(t, orb.Point{-10, 50}, b.Max)
}

func TestCenter(t *testing.T) {
	assert.Equal(t, orb.Point{-20, 45}, Center(testFleet()))
	assert.Equal(t, orb.Point{}, Center(nil))
}
