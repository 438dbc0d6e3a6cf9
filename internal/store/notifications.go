// internal/store/notifications.go
package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/bantconfirm/backend/internal/models"
)

// AddNotification appends a transient notification and schedules its
// auto-removal. The timer is kept so manual dismissal can cancel it; a
// fired or cancelled timer is always dropped from the map.
func (s *Store) AddNotification(message string, kind models.NotificationType) string {
	id := uuid.NewString()

	s.notifyMu.Lock()
	s.notifications = append(s.notifications, models.AppNotification{
		ID:      id,
		Message: message,
		Type:    kind,
	})
	s.notifyTimers[id] = time.AfterFunc(s.notifyTTL, func() {
		s.RemoveNotification(id)
	})
	s.notifyMu.Unlock()

	return id
}

// RemoveNotification dismisses a notification immediately and cancels any
// pending auto-removal. Removing an unknown id is a no-op.
func (s *Store) RemoveNotification(id string) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	if t, ok := s.notifyTimers[id]; ok {
		t.Stop()
		delete(s.notifyTimers, id)
	}
	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

func (s *Store) Notifications() []models.AppNotification {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	return append([]models.AppNotification(nil), s.notifications...)
}
