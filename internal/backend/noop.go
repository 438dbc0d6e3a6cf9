// internal/backend/noop.go
package backend

import (
	"context"

	"github.com/google/uuid"

	"github.com/bantconfirm/backend/internal/models"
)

// noopClient is selected when no backend credentials are configured. Reads
// return empty data, writes succeed without persisting anything, and
// subscriptions register but never fire. Running in this mode is not an
// error condition.
type noopClient struct{}

func NewNoOp() Client {
	return noopClient{}
}

func (noopClient) Products(ctx context.Context) ([]models.Product, error)   { return nil, nil }
func (noopClient) InsertProduct(ctx context.Context, p *models.Product) error { return nil }
func (noopClient) UpdateProduct(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return nil
}
func (noopClient) DeleteProduct(ctx context.Context, id uuid.UUID) error { return nil }

func (noopClient) Categories(ctx context.Context) ([]models.Category, error)  { return nil, nil }
func (noopClient) InsertCategory(ctx context.Context, c *models.Category) error { return nil }
func (noopClient) DeleteCategory(ctx context.Context, id uuid.UUID) error     { return nil }

func (noopClient) Leads(ctx context.Context) ([]models.Lead, error)   { return nil, nil }
func (noopClient) InsertLead(ctx context.Context, l *models.Lead) error { return nil }
func (noopClient) UpdateLead(ctx context.Context, id string, updates map[string]interface{}) error {
	return nil
}
func (noopClient) DeleteLead(ctx context.Context, id string) error { return nil }

func (noopClient) Blogs(ctx context.Context) ([]models.BlogPost, error)  { return nil, nil }
func (noopClient) InsertBlog(ctx context.Context, b *models.BlogPost) error { return nil }
func (noopClient) UpdateBlog(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return nil
}
func (noopClient) DeleteBlog(ctx context.Context, id uuid.UUID) error { return nil }

func (noopClient) VendorAssets(ctx context.Context) ([]models.VendorAsset, error) { return nil, nil }
func (noopClient) InsertVendorAsset(ctx context.Context, v *models.VendorAsset) error { return nil }
func (noopClient) DeleteVendorAsset(ctx context.Context, id uuid.UUID) error      { return nil }

func (noopClient) VendorRegistrations(ctx context.Context) ([]models.VendorRegistration, error) {
	return nil, nil
}
func (noopClient) InsertVendorRegistration(ctx context.Context, v *models.VendorRegistration) error {
	return nil
}

func (noopClient) SiteConfig(ctx context.Context) (*models.SiteConfig, error) {
	return nil, ErrNotFound
}
func (noopClient) UpsertSiteConfig(ctx context.Context, c *models.SiteConfig) error { return nil }

func (noopClient) Users(ctx context.Context) ([]models.User, error) { return nil, nil }
func (noopClient) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return nil, ErrNotFound
}
func (noopClient) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, ErrNotFound
}
func (noopClient) UserByConfirmToken(ctx context.Context, token string) (*models.User, error) {
	return nil, ErrNotFound
}
func (noopClient) UserByResetToken(ctx context.Context, token string) (*models.User, error) {
	return nil, ErrNotFound
}
func (noopClient) InsertUser(ctx context.Context, u *models.User) error { return nil }
func (noopClient) SaveUser(ctx context.Context, u *models.User) error   { return nil }

func (noopClient) Subscribe(table string, handler func()) error { return nil }
func (noopClient) Close() error                                 { return nil }
