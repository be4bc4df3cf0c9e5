package selection

import (
	"sync"

	"vessel_trmnl/internal/models"
)

// Lookup resolves a vessel by id; fleet.Store satisfies it
type Lookup interface {
	GetByID(id string) (models.Vessel, bool)
}

// Selection tracks the vessel focused for detail display.
// Only the id is kept so Current always reflects the latest tick.
type Selection struct {
	mu     sync.RWMutex
	lookup Lookup
	id     string
}

func New(lookup Lookup) *Selection {
	return &Selection{lookup: lookup}
}

// Select focuses v; nil clears the selection
func (s *Selection) Select(v *models.Vessel) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v == nil {
		s.id = ""
		return
	}
	s.id = v.ID
}

func (s *Selection) Clear() {
	s.Select(nil)
}

// Current returns the selected vessel, or false when nothing is selected
// or the vessel is no longer in the fleet
func (s *Selection) Current() (models.Vessel, bool) {
	s.mu.RLock()
	id := s.id
	s.mu.RUnlock()

	if id == "" {
		return models.Vessel{}, false
	}
	return s.lookup.GetByID(id)
}
