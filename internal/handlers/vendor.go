// internal/handlers/vendor.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bantconfirm/backend/internal/models"
	"github.com/bantconfirm/backend/internal/services"
	"github.com/bantconfirm/backend/internal/store"
	"github.com/bantconfirm/backend/internal/utils"
)

type VendorHandler struct {
	store  *store.Store
	mailer *services.Mailer
}

func NewVendorHandler(s *store.Store, mailer *services.Mailer) *VendorHandler {
	return &VendorHandler{store: s, mailer: mailer}
}

type vendorRegistrationRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	CompanyName string `json:"company_name" validate:"required,min=2,max=150"`
	Mobile      string `json:"mobile" validate:"required,mobile"`
	Email       string `json:"email" validate:"required,email"`
	Location    string `json:"location" validate:"omitempty,max=150"`
	ProductName string `json:"product_name" validate:"required,max=150"`
	Message     string `json:"message" validate:"omitempty,max=2000"`
}

// POST /vendors/register
//
// Public vendor onboarding form. One submission produces exactly one
// registration row; failures surface through the notification channel and
// the row is not retried.
func (h *VendorHandler) Register(c *gin.Context) {
	var req vendorRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	reg := &models.VendorRegistration{
		Name:        req.Name,
		CompanyName: req.CompanyName,
		Mobile:      req.Mobile,
		Email:       req.Email,
		Location:    req.Location,
		ProductName: req.ProductName,
		Message:     req.Message,
		Date:        time.Now(),
	}

	if !h.store.AddVendorRegistration(c.Request.Context(), reg) {
		utils.InternalErrorResponse(c, "Failed to submit registration")
		return
	}

	go h.mailer.SendVendorRegistrationAlert(h.store.SiteConfig().AdminNotificationEmail, reg)

	utils.CreatedResponse(c, gin.H{
		"message":      "Registration submitted",
		"registration": reg,
	})
}
