// internal/backend/postgres.go
package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bantconfirm/backend/internal/config"
	"github.com/bantconfirm/backend/internal/models"
)

// postgresClient implements Client on GORM. Every successful mutation
// publishes the table name on the event bus, standing in for the hosted
// service's change channel.
type postgresClient struct {
	db  *gorm.DB
	bus EventBus.Bus
}

func NewPostgres(cfg config.DatabaseConfig) (Client, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, err
	}

	logrus.Info("Database connection established")
	return &postgresClient{db: db, bus: EventBus.New()}, nil
}

func runMigrations(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Category{},
		&models.Lead{},
		&models.BlogPost{},
		&models.VendorAsset{},
		&models.VendorRegistration{},
		&models.SiteConfig{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Slug indexes are intentionally non-unique: slug uniqueness is not
	// enforced, matching the catalog contract.
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_slug ON products(slug)",
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_blog_posts_slug ON blog_posts(slug)",
		"CREATE INDEX IF NOT EXISTS idx_leads_date ON leads(date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status)",
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
	}
	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			logrus.WithError(err).Warnf("Failed to create index: %s", index)
		}
	}

	return nil
}

func (c *postgresClient) publish(table string) {
	c.bus.Publish(table)
}

func (c *postgresClient) Subscribe(table string, handler func()) error {
	return c.bus.Subscribe(table, handler)
}

func (c *postgresClient) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translate maps GORM's not-found onto the facade sentinel.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Catalog

func (c *postgresClient) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.db.WithContext(ctx).Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

func (c *postgresClient) InsertProduct(ctx context.Context, p *models.Product) error {
	if err := c.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	c.publish(TableProducts)
	return nil
}

func (c *postgresClient) UpdateProduct(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if err := c.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	c.publish(TableProducts)
	return nil
}

func (c *postgresClient) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := c.db.WithContext(ctx).Delete(&models.Product{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	c.publish(TableProducts)
	return nil
}

func (c *postgresClient) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (c *postgresClient) InsertCategory(ctx context.Context, cat *models.Category) error {
	if err := c.db.WithContext(ctx).Create(cat).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	c.publish(TableCategories)
	return nil
}

func (c *postgresClient) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := c.db.WithContext(ctx).Delete(&models.Category{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	c.publish(TableCategories)
	return nil
}

// Leads

func (c *postgresClient) Leads(ctx context.Context) ([]models.Lead, error) {
	var leads []models.Lead
	if err := c.db.WithContext(ctx).Order("date DESC, created_at DESC").Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch leads: %w", err)
	}
	return leads, nil
}

func (c *postgresClient) InsertLead(ctx context.Context, l *models.Lead) error {
	if err := c.db.WithContext(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	c.publish(TableLeads)
	return nil
}

func (c *postgresClient) UpdateLead(ctx context.Context, id string, updates map[string]interface{}) error {
	if err := c.db.WithContext(ctx).Model(&models.Lead{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}
	c.publish(TableLeads)
	return nil
}

func (c *postgresClient) DeleteLead(ctx context.Context, id string) error {
	if err := c.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Lead{}).Error; err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	c.publish(TableLeads)
	return nil
}

// Blog

func (c *postgresClient) Blogs(ctx context.Context) ([]models.BlogPost, error) {
	var blogs []models.BlogPost
	if err := c.db.WithContext(ctx).Order("date DESC, created_at DESC").Find(&blogs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch blogs: %w", err)
	}
	return blogs, nil
}

func (c *postgresClient) InsertBlog(ctx context.Context, b *models.BlogPost) error {
	if err := c.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("failed to create blog post: %w", err)
	}
	c.publish(TableBlogs)
	return nil
}

func (c *postgresClient) UpdateBlog(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if err := c.db.WithContext(ctx).Model(&models.BlogPost{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update blog post: %w", err)
	}
	c.publish(TableBlogs)
	return nil
}

func (c *postgresClient) DeleteBlog(ctx context.Context, id uuid.UUID) error {
	if err := c.db.WithContext(ctx).Delete(&models.BlogPost{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete blog post: %w", err)
	}
	c.publish(TableBlogs)
	return nil
}

// Vendors

func (c *postgresClient) VendorAssets(ctx context.Context) ([]models.VendorAsset, error) {
	var assets []models.VendorAsset
	if err := c.db.WithContext(ctx).Order("created_at ASC").Find(&assets).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch vendor assets: %w", err)
	}
	return assets, nil
}

func (c *postgresClient) InsertVendorAsset(ctx context.Context, v *models.VendorAsset) error {
	if err := c.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("failed to create vendor asset: %w", err)
	}
	c.publish(TableVendorAssets)
	return nil
}

func (c *postgresClient) DeleteVendorAsset(ctx context.Context, id uuid.UUID) error {
	if err := c.db.WithContext(ctx).Delete(&models.VendorAsset{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete vendor asset: %w", err)
	}
	c.publish(TableVendorAssets)
	return nil
}

func (c *postgresClient) VendorRegistrations(ctx context.Context) ([]models.VendorRegistration, error) {
	var regs []models.VendorRegistration
	if err := c.db.WithContext(ctx).Order("created_at DESC").Find(&regs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch vendor registrations: %w", err)
	}
	return regs, nil
}

func (c *postgresClient) InsertVendorRegistration(ctx context.Context, v *models.VendorRegistration) error {
	if err := c.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("failed to create vendor registration: %w", err)
	}
	c.publish(TableVendorRegistrations)
	return nil
}

// Site configuration

func (c *postgresClient) SiteConfig(ctx context.Context) (*models.SiteConfig, error) {
	var cfg models.SiteConfig
	if err := c.db.WithContext(ctx).First(&cfg, models.SiteConfigID).Error; err != nil {
		return nil, translate(fmt.Errorf("failed to fetch site config: %w", err))
	}
	return &cfg, nil
}

func (c *postgresClient) UpsertSiteConfig(ctx context.Context, cfg *models.SiteConfig) error {
	cfg.ID = models.SiteConfigID
	if err := c.db.WithContext(ctx).Save(cfg).Error; err != nil {
		return fmt.Errorf("failed to save site config: %w", err)
	}
	c.publish(TableSiteConfig)
	return nil
}

// Users

func (c *postgresClient) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.db.WithContext(ctx).Order("joined_date DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}

func (c *postgresClient) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := c.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (c *postgresClient) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := c.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (c *postgresClient) UserByConfirmToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.db.WithContext(ctx).Where("confirm_token = ?", token).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (c *postgresClient) UserByResetToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.db.WithContext(ctx).Where("reset_token = ?", token).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (c *postgresClient) InsertUser(ctx context.Context, u *models.User) error {
	if err := c.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	c.publish(TableUsers)
	return nil
}

func (c *postgresClient) SaveUser(ctx context.Context, u *models.User) error {
	if err := c.db.WithContext(ctx).Save(u).Error; err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	c.publish(TableUsers)
	return nil
}
