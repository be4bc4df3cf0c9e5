package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"vessel_trmnl/internal/models"
)

// FeatureCollection projects the fleet into GeoJSON point features for map markers
func FeatureCollection(vessels []models.Vessel) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i := range vessels {
		fc.Append(Feature(&vessels[i]))
	}
	return fc
}

// Feature returns a point feature carrying the attributes a marker popup shows
func Feature(v *models.Vessel) *geojson.Feature {
	f := geojson.NewFeature(v.Point())
	f.ID = v.ID
	f.Properties = geojson.Properties{
		"name":        v.Name,
		"imo":         v.IMO,
		"mmsi":        v.MMSI,
		"type":        string(v.Type),
		"flag":        v.Flag,
		"status":      string(v.Status),
		"speed":       v.Speed,
		"course":      v.Course,
		"heading":     v.Heading,
		"last_update": v.LastUpdate,
	}
	if v.Voyage != nil {
		f.Properties["destination"] = v.Voyage.Destination
		f.Properties["eta"] = v.Voyage.ETA
	}
	return f
}

// Bound is the smallest box containing every vessel; a map view fits to it
func Bound(vessels []models.Vessel) orb.Bound {
	mp := make(orb.MultiPoint, 0, len(vessels))
	for i := range vessels {
		mp = append(mp, vessels[i].Point())
	}
	return mp.Bound()
}

// Center returns the centroid of the fleet positions
func Center(vessels []models.Vessel) orb.Point {
	if len(vessels) == 0 {
		return orb.Point{}
	}
	mp := make(orb.MultiPoint, 0, len(vessels))
	for i := range vessels {
		mp = append(mp, vessels[i].Point())
	}
	c, _ := planar.CentroidArea(mp)
	return c
}
