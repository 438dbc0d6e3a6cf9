// internal/store/store.go
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bantconfirm/backend/internal/backend"
	"github.com/bantconfirm/backend/internal/models"
	"github.com/bantconfirm/backend/internal/utils"
)

// Store is the single source of truth for every server-backed collection
// plus client-only ephemeral state (notifications, compare list). It is an
// explicit container created at the composition root and injected into its
// consumers; all reads and writes to the backend go through it.
//
// Mutations follow a refetch-on-write pattern: one backend call, then a full
// FetchAll resynchronization instead of an optimistic local patch. FetchAll
// has partial-success semantics, so a realtime-triggered refresh racing an
// in-flight one is harmless: whole collections are swapped under the write
// lock and the last refresh wins.
type Store struct {
	backend backend.Client

	mu           sync.RWMutex
	products     []models.Product
	leads        []models.Lead
	categories   []models.Category
	users        []models.User
	vendorAssets []models.VendorAsset
	vendorRegs   []models.VendorRegistration
	blogs        []models.BlogPost
	siteConfig   models.SiteConfig
	compare      []models.Product

	notifyMu      sync.Mutex
	notifications []models.AppNotification
	notifyTimers  map[string]*time.Timer
	notifyTTL     time.Duration
}

const (
	defaultNotificationTTL = 6 * time.Second
	compareLimit           = 3
)

func New(client backend.Client) *Store {
	return &Store{
		backend:      client,
		notifyTimers: make(map[string]*time.Timer),
		notifyTTL:    defaultNotificationTTL,
		siteConfig:   models.SiteConfig{SiteName: "BantConfirm"},
	}
}

// FetchAll refreshes every collection concurrently. Each collection is
// independent: a failed fetch is logged and leaves that collection
// unchanged, the rest still update. Fetch errors are never surfaced as user
// notifications.
func (s *Store) FetchAll(ctx context.Context) {
	var (
		wg sync.WaitGroup

		products     []models.Product
		leads        []models.Lead
		categories   []models.Category
		users        []models.User
		vendorAssets []models.VendorAsset
		vendorRegs   []models.VendorRegistration
		blogs        []models.BlogPost
		siteConfig   *models.SiteConfig

		errProducts, errLeads, errCategories, errUsers error
		errAssets, errRegs, errBlogs, errSiteConfig    error
	)

	wg.Add(8)
	go func() { defer wg.Done(); products, errProducts = s.backend.Products(ctx) }()
	go func() { defer wg.Done(); leads, errLeads = s.backend.Leads(ctx) }()
	go func() { defer wg.Done(); categories, errCategories = s.backend.Categories(ctx) }()
	go func() { defer wg.Done(); users, errUsers = s.backend.Users(ctx) }()
	go func() { defer wg.Done(); vendorAssets, errAssets = s.backend.VendorAssets(ctx) }()
	go func() { defer wg.Done(); vendorRegs, errRegs = s.backend.VendorRegistrations(ctx) }()
	go func() { defer wg.Done(); blogs, errBlogs = s.backend.Blogs(ctx) }()
	go func() { defer wg.Done(); siteConfig, errSiteConfig = s.backend.SiteConfig(ctx) }()
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	if errProducts == nil {
		s.products = products
	} else {
		logrus.WithError(errProducts).Error("Failed to fetch products")
	}
	if errLeads == nil {
		s.leads = leads
	} else {
		logrus.WithError(errLeads).Error("Failed to fetch leads")
	}
	if errCategories == nil {
		s.categories = categories
	} else {
		logrus.WithError(errCategories).Error("Failed to fetch categories")
	}
	if errUsers == nil {
		s.users = users
	} else {
		logrus.WithError(errUsers).Error("Failed to fetch users")
	}
	if errAssets == nil {
		s.vendorAssets = vendorAssets
	} else {
		logrus.WithError(errAssets).Error("Failed to fetch vendor assets")
	}
	if errRegs == nil {
		s.vendorRegs = vendorRegs
	} else {
		logrus.WithError(errRegs).Error("Failed to fetch vendor registrations")
	}
	if errBlogs == nil {
		s.blogs = blogs
	} else {
		logrus.WithError(errBlogs).Error("Failed to fetch blogs")
	}
	switch {
	case errSiteConfig == nil:
		s.siteConfig = *siteConfig
	case errors.Is(errSiteConfig, backend.ErrNotFound):
		// No config row yet: keep the in-memory defaults.
	default:
		logrus.WithError(errSiteConfig).Error("Failed to fetch site config")
	}
}

// StartRealtime registers for remote change events on the collections the
// UI renders live. Each event triggers the same FetchAll refresh path as a
// user-initiated refresh; handlers hand off to a goroutine so the publisher
// never blocks.
func (s *Store) StartRealtime() {
	tables := []string{
		backend.TableLeads,
		backend.TableProducts,
		backend.TableBlogs,
		backend.TableSiteConfig,
	}
	for _, table := range tables {
		table := table
		err := s.backend.Subscribe(table, func() {
			go s.FetchAll(context.Background())
		})
		if err != nil {
			logrus.WithError(err).Warnf("Failed to subscribe to %s changes", table)
		}
	}
}

// Leads

// AddLead persists a new lead. On failure it emits an error notification
// with the raw backend message and leaves local state untouched; on success
// it prepends the lead to the in-memory list and reports success.
func (s *Store) AddLead(ctx context.Context, lead *models.Lead) bool {
	if err := s.backend.InsertLead(ctx, lead); err != nil {
		s.AddNotification(err.Error(), models.NotificationError)
		return false
	}

	s.mu.Lock()
	s.leads = append([]models.Lead{*lead}, s.leads...)
	s.mu.Unlock()

	s.AddNotification("Enquiry submitted successfully", models.NotificationSuccess)
	return true
}

func (s *Store) UpdateLeadStatus(ctx context.Context, id string, status models.LeadStatus) bool {
	if !status.Valid() {
		s.AddNotification("Invalid lead status", models.NotificationWarning)
		return false
	}
	return s.mutateAndRefresh(ctx, s.backend.UpdateLead(ctx, id, map[string]interface{}{"status": status}))
}

func (s *Store) AssignLead(ctx context.Context, id string, userID *uuid.UUID) bool {
	return s.mutateAndRefresh(ctx, s.backend.UpdateLead(ctx, id, map[string]interface{}{"assigned_to": userID}))
}

func (s *Store) UpdateLeadRemarks(ctx context.Context, id string, remarks string) bool {
	return s.mutateAndRefresh(ctx, s.backend.UpdateLead(ctx, id, map[string]interface{}{"remarks": remarks}))
}

func (s *Store) DeleteLead(ctx context.Context, id string) bool {
	return s.mutateAndRefresh(ctx, s.backend.DeleteLead(ctx, id))
}

// Products

func (s *Store) AddProduct(ctx context.Context, p *models.Product) bool {
	if p.Title == "" || p.PriceRange == "" {
		s.AddNotification("Product title and price range are required", models.NotificationWarning)
		return false
	}
	if p.Slug == "" {
		p.Slug = utils.Slugify(p.Title)
	}
	if err := s.backend.InsertProduct(ctx, p); err != nil {
		s.AddNotification(err.Error(), models.NotificationError)
		return false
	}
	s.AddNotification("Product added", models.NotificationSuccess)
	s.FetchAll(ctx)
	return true
}

func (s *Store) UpdateProduct(ctx context.Context, id uuid.UUID, updates map[string]interface{}) bool {
	return s.mutateAndRefresh(ctx, s.backend.UpdateProduct(ctx, id, updates))
}

func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) bool {
	return s.mutateAndRefresh(ctx, s.backend.DeleteProduct(ctx, id))
}

// Blog

func (s *Store) AddBlog(ctx context.Context, b *models.BlogPost) bool {
	if b.Title == "" || b.Content == "" {
		s.AddNotification("Blog title and content are required", models.NotificationWarning)
		return false
	}
	if b.Slug == "" {
		b.Slug = utils.Slugify(b.Title)
	}
	if err := s.backend.InsertBlog(ctx, b); err != nil {
		s.AddNotification(err.Error(), models.NotificationError)
		return false
	}
	s.AddNotification("Blog post published", models.NotificationSuccess)
	s.FetchAll(ctx)
	return true
}

func (s *Store) UpdateBlog(ctx context.Context, id uuid.UUID, updates map[string]interface{}) bool {
	return s.mutateAndRefresh(ctx, s.backend.UpdateBlog(ctx, id, updates))
}

func (s *Store) DeleteBlog(ctx context.Context, id uuid.UUID) bool {
	return s.mutateAndRefresh(ctx, s.backend.DeleteBlog(ctx, id))
}

// Categories and vendor logos

func (s *Store) AddCategory(ctx context.Context, name string) bool {
	if name == "" {
		s.AddNotification("Category name is required", models.NotificationWarning)
		return false
	}
	return s.mutateAndRefresh(ctx, s.backend.InsertCategory(ctx, &models.Category{Name: name}))
}

func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) bool {
	return s.mutateAndRefresh(ctx, s.backend.DeleteCategory(ctx, id))
}

func (s *Store) AddVendorLogo(ctx context.Context, name, logoURL string) bool {
	if name == "" {
		s.AddNotification("Vendor name is required", models.NotificationWarning)
		return false
	}
	return s.mutateAndRefresh(ctx, s.backend.InsertVendorAsset(ctx, &models.VendorAsset{Name: name, LogoURL: logoURL}))
}

func (s *Store) DeleteVendorLogo(ctx context.Context, id uuid.UUID) bool {
	return s.mutateAndRefresh(ctx, s.backend.DeleteVendorAsset(ctx, id))
}

// Vendor registrations

func (s *Store) AddVendorRegistration(ctx context.Context, reg *models.VendorRegistration) bool {
	if reg.Date.IsZero() {
		reg.Date = time.Now()
	}
	return s.mutateAndRefresh(ctx, s.backend.InsertVendorRegistration(ctx, reg))
}

// Site configuration

func (s *Store) UpdateSiteConfig(ctx context.Context, cfg *models.SiteConfig) bool {
	if err := s.backend.UpsertSiteConfig(ctx, cfg); err != nil {
		s.AddNotification(err.Error(), models.NotificationError)
		s.FetchAll(ctx)
		return false
	}
	s.AddNotification("Settings saved", models.NotificationSuccess)
	s.FetchAll(ctx)
	return true
}

// Users: local-only collection mutations, no backend persistence. The auth
// service owns persisted user rows; these mirror ad-hoc additions made from
// the admin surface.

func (s *Store) AddUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, u)
}

func (s *Store) DeleteUser(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return
		}
	}
}

// mutateAndRefresh wraps the issue-one-mutation-then-resync pattern shared
// by most admin operations. The refresh runs even after a failed mutation
// so the snapshot converges on whatever the backend actually holds.
func (s *Store) mutateAndRefresh(ctx context.Context, err error) bool {
	if err != nil {
		s.AddNotification(err.Error(), models.NotificationError)
		s.FetchAll(ctx)
		return false
	}
	s.FetchAll(ctx)
	return true
}
