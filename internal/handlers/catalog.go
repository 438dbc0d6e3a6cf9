// internal/handlers/catalog.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bantconfirm/backend/internal/models"
	"github.com/bantconfirm/backend/internal/store"
	"github.com/bantconfirm/backend/internal/utils"
)

// CatalogHandler serves the public read surface: products, blogs,
// categories, vendor logos and site settings, all answered from the store
// snapshot without touching the backend.
type CatalogHandler struct {
	store *store.Store
}

func NewCatalogHandler(s *store.Store) *CatalogHandler {
	return &CatalogHandler{store: s}
}

// GET /products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products := h.store.Products()
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if params.Category != "" && p.Category != params.Category {
			continue
		}
		if params.Search != "" && !matchesSearch(p, params.Search) {
			continue
		}
		filtered = append(filtered, p)
	}

	_, result := utils.PaginateSlice(filtered, params)
	utils.PaginatedResponse(c, result)
}

// GET /products/:slug
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	slug := c.Param("slug")

	product, ok := h.store.ProductBySlug(slug)
	if !ok {
		utils.NotFoundResponse(c, "Product")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}

// GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"categories": h.store.Categories(),
	})
}

// GET /blogs
func (h *CatalogHandler) ListBlogs(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	blogs := h.store.Blogs()
	filtered := make([]models.BlogPost, 0, len(blogs))
	for _, b := range blogs {
		if params.Category != "" && b.Category != params.Category {
			continue
		}
		if params.Search != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(params.Search)) {
			continue
		}
		filtered = append(filtered, b)
	}

	_, result := utils.PaginateSlice(filtered, params)
	utils.PaginatedResponse(c, result)
}

// GET /blogs/:slug
func (h *CatalogHandler) GetBlog(c *gin.Context) {
	slug := c.Param("slug")

	blog, ok := h.store.BlogBySlug(slug)
	if !ok {
		utils.NotFoundResponse(c, "Blog post")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"blog": blog,
	})
}

// GET /vendors/logos
func (h *CatalogHandler) ListVendorLogos(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"logos": h.store.VendorAssets(),
	})
}

// GET /site-config
func (h *CatalogHandler) GetSiteConfig(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"config": h.store.SiteConfig(),
	})
}

// GET /notifications
func (h *CatalogHandler) ListNotifications(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"notifications": h.store.Notifications(),
	})
}

// DELETE /notifications/:id
//
// Dismisses a notification before its auto-expiry fires.
func (h *CatalogHandler) DismissNotification(c *gin.Context) {
	h.store.RemoveNotification(c.Param("id"))
	utils.SuccessResponse(c, gin.H{
		"message": "Notification dismissed",
	})
}

// GET /compare
func (h *CatalogHandler) ListCompare(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"products": h.store.CompareList(),
	})
}

// POST /compare/:productId
//
// Toggles the product in and out of the comparison list. The store enforces
// the three product cap and raises a warning notification at the limit.
func (h *CatalogHandler) ToggleCompare(c *gin.Context) {
	id, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	product, ok := h.store.ProductByID(id)
	if !ok {
		utils.NotFoundResponse(c, "Product")
		return
	}

	h.store.ToggleCompare(product)
	utils.SuccessResponse(c, gin.H{
		"products": h.store.CompareList(),
	})
}

// DELETE /compare
func (h *CatalogHandler) ClearCompare(c *gin.Context) {
	h.store.ClearCompare()
	utils.SuccessResponse(c, gin.H{
		"products": h.store.CompareList(),
	})
}

func matchesSearch(p models.Product, search string) bool {
	q := strings.ToLower(search)
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.VendorName), q)
}
