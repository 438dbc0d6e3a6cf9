// internal/store/compare.go
package store

import (
	"github.com/bantconfirm/backend/internal/models"
)

// ToggleCompare adds or removes a product from the comparison list. The
// list holds at most three products and never a duplicate id; a toggle
// beyond the cap is rejected with a warning and leaves the list unchanged.
func (s *Store) ToggleCompare(p models.Product) {
	s.mu.Lock()
	for i, existing := range s.compare {
		if existing.ID == p.ID {
			s.compare = append(s.compare[:i], s.compare[i+1:]...)
			s.mu.Unlock()
			return
		}
	}

	if len(s.compare) >= compareLimit {
		s.mu.Unlock()
		s.AddNotification("Limit 3 products for comparison", models.NotificationWarning)
		return
	}

	s.compare = append(s.compare, p)
	s.mu.Unlock()
}

func (s *Store) ClearCompare() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compare = nil
}

func (s *Store) CompareList() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.compare...)
}
