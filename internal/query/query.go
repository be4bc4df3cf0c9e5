package query

import (
	"strings"

	"vessel_trmnl/internal/models"
)

// Filters narrows a search by attribute. An empty set leaves that attribute unfiltered.
type Filters struct {
	VesselTypes []models.VesselType
	Status      []models.Status
	Flag        []string
}

// Options holds the distinct attribute values present in a fleet
type Options struct {
	VesselTypes []models.VesselType
	Statuses    []models.Status
	Flags       []string
}

// Search returns the vessels matching term and filters, in fleet order.
// The name is matched case-insensitively, IMO and MMSI as literal substrings.
func Search(fleet []models.Vessel, term string, filters Filters) []models.Vessel {
	results := make([]models.Vessel, 0, len(fleet))
	results = append(results, fleet...)

	if term != "" {
		lower := strings.ToLower(term)
		results = keep(results, func(v *models.Vessel) bool {
			return strings.Contains(strings.ToLower(v.Name), lower) ||
				strings.Contains(v.IMO, term) ||
				strings.Contains(v.MMSI, term)
		})
	}

	if len(filters.VesselTypes) > 0 {
		types := toSet(filters.VesselTypes)
		results = keep(results, func(v *models.Vessel) bool {
			_, ok := types[v.Type]
			return ok
		})
	}

	if len(filters.Status) > 0 {
		statuses := toSet(filters.Status)
		results = keep(results, func(v *models.Vessel) bool {
			_, ok := statuses[v.Status]
			return ok
		})
	}

	if len(filters.Flag) > 0 {
		flags := toSet(filters.Flag)
		results = keep(results, func(v *models.Vessel) bool {
			_, ok := flags[v.Flag]
			return ok
		})
	}

	return results
}

// FilterOptions collects the distinct types, statuses and flags of fleet in order of first appearance
func FilterOptions(fleet []models.Vessel) Options {
	var opts Options
	seenTypes := make(map[models.VesselType]struct{})
	seenStatuses := make(map[models.Status]struct{})
	seenFlags := make(map[string]struct{})

	for _, v := range fleet {
		if _, ok := seenTypes[v.Type]; !ok {
			seenTypes[v.Type] = struct{}{}
			opts.VesselTypes = append(opts.VesselTypes, v.Type)
		}
		if _, ok := seenStatuses[v.Status]; !ok {
			seenStatuses[v.Status] = struct{}{}
			opts.Statuses = append(opts.Statuses, v.Status)
		}
		if _, ok := seenFlags[v.Flag]; !ok {
			seenFlags[v.Flag] = struct{}{}
			opts.Flags = append(opts.Flags, v.Flag)
		}
	}

	return opts
}

// keep filters vessels in place, preserving order
func keep(vessels []models.Vessel, match func(v *models.Vessel) bool) []models.Vessel {
	n := 0
	for i := range vessels {
		if match(&vessels[i]) {
			vessels[n] = vessels[i]
			n++
		}
	}
	return vessels[:n]
}

func toSet[T comparable](values []T) map[T]struct{} {
	set := make(map[T]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
