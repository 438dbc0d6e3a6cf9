// internal/store/notifications_test.go
package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bantconfirm/backend/internal/backend"
	"github.com/bantconfirm/backend/internal/models"
)

func newTestStore(ttl time.Duration) *Store {
	s := New(backend.NewMemory())
	s.notifyTTL = ttl
	return s
}

func TestNotificationAutoExpires(t *testing.T) {
	s := newTestStore(30 * time.Millisecond)

	s.AddNotification("saved", models.NotificationSuccess)
	require.Len(t, s.Notifications(), 1)

	assert.Eventually(t, func() bool {
		return len(s.Notifications()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestNotificationEarlyDismissal(t *testing.T) {
	s := newTestStore(30 * time.Millisecond)

	id := s.AddNotification("saved", models.NotificationSuccess)
	s.RemoveNotification(id)
	assert.Empty(t, s.Notifications())

	// The expiry timer was cancelled; nothing fires later.
	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, s.Notifications())
}

func TestNotificationExpiryIsPerEntry(t *testing.T) {
	s := newTestStore(40 * time.Millisecond)

	s.AddNotification("first", models.NotificationInfo)
	time.Sleep(25 * time.Millisecond)
	s.AddNotification("second", models.NotificationInfo)

	assert.Eventually(t, func() bool {
		n := s.Notifications()
		return len(n) == 1 && n[0].Message == "second"
	}, time.Second, 5*time.Millisecond)

	assert.Eventually(t, func() bool {
		return len(s.Notifications()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestRemoveUnknownNotification(t *testing.T) {
	s := newTestStore(time.Second)
	s.RemoveNotification("missing")
	assert.Empty(t, s.Notifications())
}
