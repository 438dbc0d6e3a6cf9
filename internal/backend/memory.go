// internal/backend/memory.go
package backend

import (
	"context"
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"

	"github.com/bantconfirm/backend/internal/models"
)

// Memory is an in-memory Client used by the tests and when developing
// without the hosted service. It honors the same contract as the Postgres
// implementation, including change publication, and supports per-table
// fault injection through SetError.
type Memory struct {
	mu  sync.Mutex
	bus EventBus.Bus

	products   []models.Product
	categories []models.Category
	leads      []models.Lead
	blogs      []models.BlogPost
	assets     []models.VendorAsset
	regs       []models.VendorRegistration
	users      []models.User
	siteConfig *models.SiteConfig

	errs map[string]error
}

func NewMemory() *Memory {
	return &Memory{
		bus:  EventBus.New(),
		errs: make(map[string]error),
	}
}

// SetError makes every subsequent operation on the named table fail with
// err. A nil err clears the fault.
func (m *Memory) SetError(table string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.errs, table)
		return
	}
	m.errs[table] = err
}

func (m *Memory) errFor(table string) error {
	return m.errs[table]
}

func (m *Memory) publish(table string) {
	m.bus.Publish(table)
}

func (m *Memory) Subscribe(table string, handler func()) error {
	return m.bus.Subscribe(table, handler)
}

func (m *Memory) Close() error {
	return nil
}

// Catalog

func (m *Memory) Products(ctx context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errFor(TableProducts); err != nil {
		return nil, err
	}
	return append([]models.Product(nil), m.products...), nil
}

func (m *Memory) InsertProduct(ctx context.Context, p *models.Product) error {
	m.mu.Lock()
	if err := m.errFor(TableProducts); err != nil {
		m.mu.Unlock()
		return err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.products = append(m.products, *p)
	m.mu.Unlock()
	m.publish(TableProducts)
	return nil
}

func (m *Memory) UpdateProduct(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	m.mu.Lock()
	if err := m.errFor(TableProducts); err != nil {
		m.mu.Unlock()
		return err
	}
	for i := range m.products {
		if m.products[i].ID == id {
			applyProductUpdates(&m.products[i], updates)
		}
	}
	m.mu.Unlock()
	m.publish(TableProducts)
	return nil
}

func (m *Memory) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	if err := m.errFor(TableProducts); err != nil {
		m.mu.Unlock()
		return err
	}
	kept := m.products[:0]
	for _, p := range m.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	m.products = kept
	m.mu.Unlock()
	m.publish(TableProducts)
	return nil
}

func (m *Memory) Categories(ctx context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errFor(TableCategories); err != nil {
		return nil, err
	}
	return append([]models.Category(nil), m.categories...), nil
}

func (m *Memory) InsertCategory(ctx context.Context, c *models.Category) error {
	m.mu.Lock()
	if err := m.errFor(TableCategories); err != nil {
		m.mu.Unlock()
		return err
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.categories = append(m.categories, *c)
	m.mu.Unlock()
	m.publish(TableCategories)
	return nil
}

func (m *Memory) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	if err := m.errFor(TableCategories); err != nil {
		m.mu.Unlock()
		return err
	}
	kept := m.categories[:0]
	for _, c := range m.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	m.categories = kept
	m.mu.Unlock()
	m.publish(TableCategories)
	return nil
}

// Leads

func (m *Memory) Leads(ctx context.Context) ([]models.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errFor(TableLeads); err != nil {
		return nil, err
	}
	return append([]models.Lead(nil), m.leads...), nil
}

func (m *Memory) InsertLead(ctx context.Context, l *models.Lead) error {
	m.mu.Lock()
	if err := m.errFor(TableLeads); err != nil {
		m.mu.Unlock()
		return err
	}
	m.leads = append([]models.Lead{*l}, m.leads...)
	m.mu.Unlock()
	m.publish(TableLeads)
	return nil
}

func (m *Memory) UpdateLead(ctx context.Context, id string, updates map[string]interface{}) error {
	m.mu.Lock()
	if err := m.errFor(TableLeads); err != nil {
		m.mu.Unlock()
		return err
	}
	for i := range m.leads {
		if m.leads[i].ID == id {
			applyLeadUpdates(&m.leads[i], updates)
		}
	}
	m.mu.Unlock()
	m.publish(TableLeads)
	return nil
}

func (m *Memory) DeleteLead(ctx context.Context, id string) error {
	m.mu.Lock()
	if err := m.errFor(TableLeads); err != nil {
		m.mu.Unlock()
		return err
	}
	kept := m.leads[:0]
	for _, l := range m.leads {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	m.leads = kept
	m.mu.Unlock()
	m.publish(TableLeads)
	return nil
}

// Blog

func (m *Memory) Blogs(ctx context.Context) ([]models.BlogPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errFor(TableBlogs); err != nil {
		return nil, err
	}
	return append([]models.BlogPost(nil), m.blogs...), nil
}

func (m *Memory) InsertBlog(ctx context.Context, b *models.BlogPost) error {
	m.mu.Lock()
	if err := m.errFor(TableBlogs); err != nil {
		m.mu.Unlock()
		return err
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	m.blogs = append([]models.BlogPost{*b}, m.blogs...)
	m.mu.Unlock()
	m.publish(TableBlogs)
	return nil
}

func (m *Memory) UpdateBlog(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	m.mu.Lock()
	if err := m.errFor(TableBlogs); err != nil {
		m.mu.Unlock()
		return err
	}
	for i := range m.blogs {
		if m.blogs[i].ID == id {
			if v, ok := updates["title"].(string); ok {
				m.blogs[i].Title = v
			}
			if v, ok := updates["content"].(string); ok {
				m.blogs[i].Content = v
			}
			if v, ok := updates["category"].(string); ok {
				m.blogs[i].Category = v
			}
		}
	}
	m.mu.Unlock()
	m.publish(TableBlogs)
	return nil
}

func (m *Memory) DeleteBlog(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	if err := m.errFor(TableBlogs); err != nil {
		m.mu.Unlock()
		return err
	}
	kept := m.blogs[:0]
	for _, b := range m.blogs {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	m.blogs = kept
	m.mu.Unlock()
	m.publish(TableBlogs)
	return nil
}

// Vendors

func (m *Memory) VendorAssets(ctx context.Context) ([]models.VendorAsset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errFor(TableVendorAssets); err != nil {
		return nil, err
	}
	return append([]models.VendorAsset(nil), m.assets...), nil
}

func (m *Memory) InsertVendorAsset(ctx context.Context, v *models.VendorAsset) error {
	m.mu.Lock()
	if err := m.errFor(TableVendorAssets); err != nil {
		m.mu.Unlock()
		return err
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	m.assets = append(m.assets, *v)
	m.mu.Unlock()
	m.publish(TableVendorAssets)
	return nil
}

func (m *Memory) DeleteVendorAsset(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	if err := m.errFor(TableVendorAssets); err != nil {
		m.mu.Unlock()
		return err
	}
	kept := m.assets[:0]
	for _, a := range m.assets {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	m.assets = kept
	m.mu.Unlock()
	m.publish(TableVendorAssets)
	return nil
}

func (m *Memory) VendorRegistrations(ctx context.Context) ([]models.VendorRegistration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errFor(TableVendorRegistrations); err != nil {
		return nil, err
	}
	return append([]models.VendorRegistration(nil), m.regs...), nil
}

func (m *Memory) InsertVendorRegistration(ctx context.Context, v *models.VendorRegistration) error {
	m.mu.Lock()
	if err := m.errFor(TableVendorRegistrations); err != nil {
		m.mu.Unlock()
		return err
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	m.regs = append(m.regs, *v)
	m.mu.Unlock()
	m.publish(TableVendorRegistrations)
	return nil
}

// Site configuration

func (m *Memory) SiteConfig(ctx context.Context) (*models.SiteConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errFor(TableSiteConfig); err != nil {
		return nil, err
	}
	if m.siteConfig == nil {
		return nil, ErrNotFound
	}
	cfg := *m.siteConfig
	return &cfg, nil
}

func (m *Memory) UpsertSiteConfig(ctx context.Context, cfg *models.SiteConfig) error {
	m.mu.Lock()
	if err := m.errFor(TableSiteConfig); err != nil {
		m.mu.Unlock()
		return err
	}
	cfg.ID = models.SiteConfigID
	clone := *cfg
	m.siteConfig = &clone
	m.mu.Unlock()
	m.publish(TableSiteConfig)
	return nil
}

// Users

func (m *Memory) Users(ctx context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errFor(TableUsers); err != nil {
		return nil, err
	}
	return append([]models.User(nil), m.users...), nil
}

func (m *Memory) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return m.findUser(func(u models.User) bool { return u.ID == id })
}

func (m *Memory) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.findUser(func(u models.User) bool { return u.Email == email })
}

func (m *Memory) UserByConfirmToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	return m.findUser(func(u models.User) bool { return u.ConfirmToken == token })
}

func (m *Memory) UserByResetToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	return m.findUser(func(u models.User) bool { return u.ResetToken == token })
}

func (m *Memory) findUser(match func(models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errFor(TableUsers); err != nil {
		return nil, err
	}
	for _, u := range m.users {
		if match(u) {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) InsertUser(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	if err := m.errFor(TableUsers); err != nil {
		m.mu.Unlock()
		return err
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.users = append(m.users, *u)
	m.mu.Unlock()
	m.publish(TableUsers)
	return nil
}

func (m *Memory) SaveUser(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	if err := m.errFor(TableUsers); err != nil {
		m.mu.Unlock()
		return err
	}
	found := false
	for i := range m.users {
		if m.users[i].ID == u.ID {
			m.users[i] = *u
			found = true
		}
	}
	if !found {
		m.users = append(m.users, *u)
	}
	m.mu.Unlock()
	m.publish(TableUsers)
	return nil
}

func applyProductUpdates(p *models.Product, updates map[string]interface{}) {
	if v, ok := updates["title"].(string); ok {
		p.Title = v
	}
	if v, ok := updates["description"].(string); ok {
		p.Description = v
	}
	if v, ok := updates["category"].(string); ok {
		p.Category = v
	}
	if v, ok := updates["price_range"].(string); ok {
		p.PriceRange = v
	}
	if v, ok := updates["slug"].(string); ok {
		p.Slug = v
	}
}

func applyLeadUpdates(l *models.Lead, updates map[string]interface{}) {
	if v, ok := updates["status"].(models.LeadStatus); ok {
		l.Status = v
	}
	if v, ok := updates["status"].(string); ok {
		l.Status = models.LeadStatus(v)
	}
	if v, ok := updates["remarks"].(string); ok {
		l.Remarks = v
	}
	if v, ok := updates["assigned_to"]; ok {
		if id, ok := v.(*uuid.UUID); ok {
			l.AssignedTo = id
		} else if v == nil {
			l.AssignedTo = nil
		}
	}
}
