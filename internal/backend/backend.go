// internal/backend/backend.go
package backend

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bantconfirm/backend/internal/models"
)

// ErrNotFound is returned by lookups that match no row, regardless of the
// underlying implementation.
var ErrNotFound = errors.New("record not found")

// Table names as they appear on the wire. Realtime change events are keyed
// by these names.
const (
	TableProducts            = "products"
	TableSiteConfig          = "site_config"
	TableVendorAssets        = "vendor_assets"
	TableCategories          = "categories"
	TableLeads               = "leads"
	TableVendorRegistrations = "vendor_registrations"
	TableUsers               = "users"
	TableBlogs               = "blogs"
)

// Client is the facade over the hosted persistence service. The store and
// the auth service are its only consumers; column naming (snake_case on the
// wire, camelCase in memory) is resolved entirely behind this boundary.
//
// Every method is fallible and callers treat failures as terminal for that
// single operation. When the service is unconfigured the NoOp implementation
// is used instead: reads return empty data, writes succeed trivially.
type Client interface {
	// Catalog
	Products(ctx context.Context) ([]models.Product, error)
	InsertProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	Categories(ctx context.Context) ([]models.Category, error)
	InsertCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	// Leads, ordered by date descending on read.
	Leads(ctx context.Context) ([]models.Lead, error)
	InsertLead(ctx context.Context, l *models.Lead) error
	UpdateLead(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteLead(ctx context.Context, id string) error

	// Blog, ordered by date descending on read.
	Blogs(ctx context.Context) ([]models.BlogPost, error)
	InsertBlog(ctx context.Context, b *models.BlogPost) error
	UpdateBlog(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteBlog(ctx context.Context, id uuid.UUID) error

	// Vendors
	VendorAssets(ctx context.Context) ([]models.VendorAsset, error)
	InsertVendorAsset(ctx context.Context, v *models.VendorAsset) error
	DeleteVendorAsset(ctx context.Context, id uuid.UUID) error

	VendorRegistrations(ctx context.Context) ([]models.VendorRegistration, error)
	InsertVendorRegistration(ctx context.Context, v *models.VendorRegistration) error

	// Site configuration singleton.
	SiteConfig(ctx context.Context) (*models.SiteConfig, error)
	UpsertSiteConfig(ctx context.Context, c *models.SiteConfig) error

	// Users (auth collaborator surface).
	Users(ctx context.Context) ([]models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByConfirmToken(ctx context.Context, token string) (*models.User, error)
	UserByResetToken(ctx context.Context, token string) (*models.User, error)
	InsertUser(ctx context.Context, u *models.User) error
	SaveUser(ctx context.Context, u *models.User) error

	// Subscribe registers a handler fired whenever the named table changes.
	// Handlers run on the publisher's goroutine and must not block.
	Subscribe(table string, handler func()) error

	Close() error
}
