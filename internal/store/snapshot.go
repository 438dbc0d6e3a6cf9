// internal/store/snapshot.go
package store

import (
	"github.com/google/uuid"

	"github.com/bantconfirm/backend/internal/models"
)

// Read accessors return copies so callers can iterate without holding the
// store lock.

func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.products...)
}

func (s *Store) Leads() []models.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Lead(nil), s.leads...)
}

func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Category(nil), s.categories...)
}

func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.User(nil), s.users...)
}

// Vendors returns the users holding the vendor role, for the admin lead
// assignment dropdown.
func (s *Store) Vendors() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var vendors []models.User
	for _, u := range s.users {
		if u.Role == models.UserRoleVendor {
			vendors = append(vendors, u)
		}
	}
	return vendors
}

func (s *Store) VendorAssets() []models.VendorAsset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.VendorAsset(nil), s.vendorAssets...)
}

func (s *Store) VendorRegistrations() []models.VendorRegistration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.VendorRegistration(nil), s.vendorRegs...)
}

func (s *Store) Blogs() []models.BlogPost {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.BlogPost(nil), s.blogs...)
}

func (s *Store) SiteConfig() models.SiteConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.siteConfig
}

func (s *Store) ProductBySlug(slug string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.Slug == slug {
			return p, true
		}
	}
	return models.Product{}, false
}

func (s *Store) ProductByID(id uuid.UUID) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (s *Store) BlogBySlug(slug string) (models.BlogPost, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.blogs {
		if b.Slug == slug {
			return b, true
		}
	}
	return models.BlogPost{}, false
}
