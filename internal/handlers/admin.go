// internal/handlers/admin.go
package handlers

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bantconfirm/backend/internal/models"
	"github.com/bantconfirm/backend/internal/services"
	"github.com/bantconfirm/backend/internal/store"
	"github.com/bantconfirm/backend/internal/utils"
)

// AdminHandler is the dashboard write surface. Every mutation goes through
// the store so the refreshed snapshot and the outcome notification are
// visible to all clients, not just the caller.
type AdminHandler struct {
	store          *store.Store
	storageService *services.StorageService
}

func NewAdminHandler(s *store.Store, storageService *services.StorageService) *AdminHandler {
	return &AdminHandler{
		store:          s,
		storageService: storageService,
	}
}

// Leads

// GET /admin/leads
func (h *AdminHandler) ListLeads(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	status := c.Query("status")

	leads := h.store.Leads()
	filtered := make([]models.Lead, 0, len(leads))
	for _, l := range leads {
		if status != "" && string(l.Status) != status {
			continue
		}
		filtered = append(filtered, l)
	}

	_, result := utils.PaginateSlice(filtered, params)
	utils.PaginatedResponse(c, result)
}

// PATCH /admin/leads/:id/status
func (h *AdminHandler) UpdateLeadStatus(c *gin.Context) {
	var req struct {
		Status models.LeadStatus `json:"status" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if !h.store.UpdateLeadStatus(c.Request.Context(), c.Param("id"), req.Status) {
		utils.BadRequestResponse(c, "Failed to update lead status", nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Lead status updated",
	})
}

// PATCH /admin/leads/:id/assign
func (h *AdminHandler) AssignLead(c *gin.Context) {
	var req struct {
		UserID *string `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	var userID *uuid.UUID
	if req.UserID != nil && *req.UserID != "" {
		parsed, err := uuid.Parse(*req.UserID)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid user ID", nil)
			return
		}
		userID = &parsed
	}

	if !h.store.AssignLead(c.Request.Context(), c.Param("id"), userID) {
		utils.BadRequestResponse(c, "Failed to assign lead", nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Lead assigned",
	})
}

// PATCH /admin/leads/:id/remarks
func (h *AdminHandler) UpdateLeadRemarks(c *gin.Context) {
	var req struct {
		Remarks string `json:"remarks"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if !h.store.UpdateLeadRemarks(c.Request.Context(), c.Param("id"), req.Remarks) {
		utils.BadRequestResponse(c, "Failed to update remarks", nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Remarks updated",
	})
}

// DELETE /admin/leads/:id
func (h *AdminHandler) DeleteLead(c *gin.Context) {
	if !h.store.DeleteLead(c.Request.Context(), c.Param("id")) {
		utils.BadRequestResponse(c, "Failed to delete lead", nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Lead deleted",
	})
}

// Products

// POST /admin/products
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if !h.store.AddProduct(c.Request.Context(), &product) {
		utils.BadRequestResponse(c, "Failed to add product", nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"product": product,
	})
}

// PUT /admin/products/:id
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if !h.store.UpdateProduct(c.Request.Context(), id, updates) {
		utils.BadRequestResponse(c, "Failed to update product", nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Product updated",
	})
}

// DELETE /admin/products/:id
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	if !h.store.DeleteProduct(c.Request.Context(), id) {
		utils.BadRequestResponse(c, "Failed to delete product", nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Product deleted",
	})
}

// Blog

// POST /admin/blogs
func (h *AdminHandler) CreateBlog(c *gin.Context) {
	var blog models.BlogPost
	if err := c.ShouldBindJSON(&blog); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if !h.store.AddBlog(c.Request.Context(), &blog) {
		utils.BadRequestResponse(c, "Failed to publish blog post", nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"blog": blog,
	})
}

// PUT /admin/blogs/:id
func (h *AdminHandler) UpdateBlog(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid blog ID", nil)
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if !h.store.UpdateBlog(c.Request.Context(), id, updates) {
		utils.BadRequestResponse(c, "Failed to update blog post", nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Blog post updated",
	})
}

// DELETE /admin/blogs/:id
func (h *AdminHandler) DeleteBlog(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid blog ID", nil)
		return
	}

	if !h.store.DeleteBlog(c.Request.Context(), id) {
		utils.BadRequestResponse(c, "Failed to delete blog post", nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Blog post deleted",
	})
}

// Categories

// POST /admin/categories
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" validate:"required,min=2,max=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if !h.store.AddCategory(c.Request.Context(), req.Name) {
		utils.BadRequestResponse(c, "Failed to add category", nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Category added",
	})
}

// DELETE /admin/categories/:id
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid category ID", nil)
		return
	}

	if !h.store.DeleteCategory(c.Request.Context(), id) {
		utils.BadRequestResponse(c, "Failed to delete category", nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Category deleted",
	})
}

// Vendors

// GET /admin/vendor-registrations
func (h *AdminHandler) ListVendorRegistrations(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	_, result := utils.PaginateSlice(h.store.VendorRegistrations(), params)
	utils.PaginatedResponse(c, result)
}

// POST /admin/vendor-logos
func (h *AdminHandler) CreateVendorLogo(c *gin.Context) {
	var req struct {
		Name    string `json:"name" validate:"required,min=2,max=100"`
		LogoURL string `json:"logo_url" validate:"required,url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if !h.store.AddVendorLogo(c.Request.Context(), req.Name, req.LogoURL) {
		utils.BadRequestResponse(c, "Failed to add vendor logo", nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Vendor logo added",
	})
}

// DELETE /admin/vendor-logos/:id
func (h *AdminHandler) DeleteVendorLogo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid logo ID", nil)
		return
	}

	if !h.store.DeleteVendorLogo(c.Request.Context(), id) {
		utils.BadRequestResponse(c, "Failed to delete vendor logo", nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Vendor logo deleted",
	})
}

// Users

// GET /admin/users
//
// role=vendor feeds the lead assignment dropdown.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var users []models.User
	switch c.Query("role") {
	case "":
		users = h.store.Users()
	case string(models.UserRoleVendor):
		users = h.store.Vendors()
	default:
		for _, u := range h.store.Users() {
			if string(u.Role) == c.Query("role") {
				users = append(users, u)
			}
		}
	}

	_, result := utils.PaginateSlice(users, params)
	utils.PaginatedResponse(c, result)
}

// POST /admin/users
//
// Adds a user to the local snapshot only. Persisted accounts are created
// by signup; this covers ad-hoc dashboard entries such as offline vendor
// contacts.
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req struct {
		Name     string `json:"name" validate:"required,min=2,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Role     string `json:"role" validate:"omitempty,oneof=user vendor admin"`
		Mobile   string `json:"mobile"`
		Company  string `json:"company"`
		Location string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user := models.User{
		Name:       req.Name,
		Email:      req.Email,
		Role:       models.UserRole(req.Role),
		Mobile:     req.Mobile,
		Company:    req.Company,
		Location:   req.Location,
		JoinedDate: time.Now(),
	}
	user.ID = uuid.New()

	h.store.AddUser(user)
	utils.CreatedResponse(c, gin.H{
		"user": user,
	})
}

// DELETE /admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	h.store.DeleteUser(id)
	utils.SuccessResponse(c, gin.H{
		"message": "User removed",
	})
}

// Settings

// GET /admin/settings
func (h *AdminHandler) GetSettings(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"config": h.store.SiteConfig(),
	})
}

// PUT /admin/settings
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var cfg models.SiteConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if !h.store.UpdateSiteConfig(c.Request.Context(), &cfg) {
		utils.BadRequestResponse(c, "Failed to save settings", nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"config": h.store.SiteConfig(),
	})
}

// Uploads

// POST /admin/uploads
//
// Multipart upload for logos, product images and branding assets. The
// category form field selects the upload policy.
func (h *AdminHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "File is required", err.Error())
		return
	}
	defer file.Close()

	// SVG and ICO carry no sniffable raster magic bytes; the extension
	// allowlist is the only check for them.
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".svg" && ext != ".ico" {
		if err := h.storageService.ValidateImage(file); err != nil {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
	}

	category := c.PostForm("category")
	options := h.storageService.GetDefaultUploadOptions(category)

	result, err := h.storageService.UploadFile(file, header, options)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"upload": result,
	})
}

// DELETE /admin/uploads/*key
//
// Removes a previously uploaded asset by its storage key.
func (h *AdminHandler) DeleteUpload(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		utils.BadRequestResponse(c, "File key is required", nil)
		return
	}

	if err := h.storageService.DeleteFile(key); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "File deleted",
	})
}
