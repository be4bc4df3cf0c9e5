package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vessel_trmnl/internal/models"
)

type mapLookup map[string]*models.Vessel

func (m mapLookup) GetByID(id string) (models.Vessel, bool) {
	v, ok := m[id]
	if !ok {
		return models.Vessel{}, false
	}
	return v.Clone(), true
}

func TestSelection(t *testing.T) {
	fleet := mapLookup{
		"a": {ID: "a", Name: "Ocean Explorer", Latitude: 40},
		"b": {ID: "b", Name: "Northern Star", Latitude: 50},
	}
	s := New(fleet)

	_, ok := s.Current()
	assert.False(t, ok, "nothing selected initially")

	s.Select(fleet["a"])
	v, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "Ocean Explorer", v.Name)

	s.Select(fleet["b"])
	v, ok = s.Current()
	require.True(t, ok)
	assert.Equal(t, "b", v.ID)

	s.Clear()
	_, ok = s.Current()
	assert.False(t, ok)
}

func TestSelection_ReflectsFleetUpdates(t *testing.T) {
	fleet := mapLookup{"a": {ID: "a", Latitude: 40}}
	s := New(fleet)
	s.Select(fleet["a"])

	fleet["a"].Latitude = 41

	v, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, 41.0, v.Latitude)
}

func TestSelection_SelectNil(t *testing.T) {
	fleet := mapLookup{"a": {ID: "a"}}
	s := New(fleet)
	s.Select(fleet["a"])

	s.Select(nil)

	_, ok := s.Current()
	assert.False(t, ok)
	assert.Len(t, fleet, 1, "clearing must not touch the fleet")
}

func TestSelection_UnknownVessel(t *testing.T) {
	s := New(mapLookup{})

	s.Select(&models.Vessel{ID: "ghost"})

	_, ok := s.Current()
	assert.False(t, ok)
}
