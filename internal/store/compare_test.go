// internal/store/compare_test.go
package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bantconfirm/backend/internal/backend"
	"github.com/bantconfirm/backend/internal/models"
)

func product(title string) models.Product {
	p := models.Product{Title: title}
	p.ID = uuid.New()
	return p
}

func TestToggleCompareAddAndRemove(t *testing.T) {
	s := New(backend.NewMemory())
	a := product("A")

	s.ToggleCompare(a)
	require.Len(t, s.CompareList(), 1)

	s.ToggleCompare(a)
	assert.Empty(t, s.CompareList())
}

func TestToggleCompareNoDuplicates(t *testing.T) {
	s := New(backend.NewMemory())
	a := product("A")

	s.ToggleCompare(a)
	s.ToggleCompare(a)
	s.ToggleCompare(a)

	// Odd number of toggles, so present exactly once.
	assert.Len(t, s.CompareList(), 1)
}

func TestToggleCompareCap(t *testing.T) {
	s := New(backend.NewMemory())
	s.notifyTTL = time.Minute

	a, b, c, d := product("A"), product("B"), product("C"), product("D")
	s.ToggleCompare(a)
	s.ToggleCompare(b)
	s.ToggleCompare(c)

	s.ToggleCompare(d)
	assert.Len(t, s.CompareList(), 3, "fourth product is rejected")

	notifications := s.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationWarning, notifications[0].Type)
	assert.Equal(t, "Limit 3 products for comparison", notifications[0].Message)

	// Removal at the cap still works.
	s.ToggleCompare(b)
	assert.Len(t, s.CompareList(), 2)

	// And frees a slot.
	s.ToggleCompare(d)
	assert.Len(t, s.CompareList(), 3)
}

func TestClearCompare(t *testing.T) {
	s := New(backend.NewMemory())
	s.ToggleCompare(product("A"))
	s.ToggleCompare(product("B"))

	s.ClearCompare()
	assert.Empty(t, s.CompareList())
}
