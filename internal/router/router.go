// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bantconfirm/backend/internal/backend"
	"github.com/bantconfirm/backend/internal/config"
	"github.com/bantconfirm/backend/internal/handlers"
	"github.com/bantconfirm/backend/internal/middleware"
	"github.com/bantconfirm/backend/internal/services"
	"github.com/bantconfirm/backend/internal/store"
	"github.com/bantconfirm/backend/internal/utils"
)

// Initialize wires services and handlers around the shared store and
// returns the configured engine. The store is passed in, never reached
// through a package global, so tests can assemble the same graph around a
// fake backend.
func Initialize(client backend.Client, appStore *store.Store, cfg *config.Config) *gin.Engine {
	// Services
	mailer := services.NewMailer(cfg)
	storageService, _ := services.NewStorageService(cfg)
	authService := services.NewAuthService(client, cfg, mailer)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(appStore)
	enquiryHandler := handlers.NewEnquiryHandler(appStore, authService, mailer)
	vendorHandler := handlers.NewVendorHandler(appStore, mailer)
	adminHandler := handlers.NewAdminHandler(appStore, storageService)

	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.POST("/resend-confirmation", authHandler.ResendConfirmation)
			auth.GET("/confirm-email/:token", authHandler.ConfirmEmail)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Public catalog. Identity is optional here; when a token is
		// present the request log carries the user id.
		products := v1.Group("/products", middleware.OptionalAuth())
		{
			products.GET("", catalogHandler.ListProducts)
			products.GET("/:slug", catalogHandler.GetProduct)
		}

		blogs := v1.Group("/blogs")
		{
			blogs.GET("", catalogHandler.ListBlogs)
			blogs.GET("/:slug", catalogHandler.GetBlog)
		}

		v1.GET("/categories", catalogHandler.ListCategories)
		v1.GET("/site-config", catalogHandler.GetSiteConfig)

		// Notifications (shared outcome feed)
		notifications := v1.Group("/notifications")
		{
			notifications.GET("", catalogHandler.ListNotifications)
			notifications.DELETE("/:id", catalogHandler.DismissNotification)
		}

		// Product comparison
		compare := v1.Group("/compare")
		{
			compare.GET("", catalogHandler.ListCompare)
			compare.POST("/:productId", catalogHandler.ToggleCompare)
			compare.DELETE("", catalogHandler.ClearCompare)
		}

		// Vendors
		vendors := v1.Group("/vendors", middleware.OptionalAuth())
		{
			vendors.GET("/logos", catalogHandler.ListVendorLogos)
			vendors.POST("/register", vendorHandler.Register)
		}

		// Enquiry wizard, sign-in required. The 401 carries the original
		// destination so the client can return after login.
		enquiry := v1.Group("/enquiry")
		enquiry.Use(middleware.AuthRequired())
		{
			sessions := enquiry.Group("/sessions")
			{
				sessions.POST("", enquiryHandler.StartSession)
				sessions.GET("/:id", enquiryHandler.GetSession)
				sessions.PUT("/:id/form", enquiryHandler.UpdateForm)
				sessions.POST("/:id/next", enquiryHandler.Next)
				sessions.POST("/:id/back", enquiryHandler.Back)
				sessions.POST("/:id/submit", middleware.EnquiryRateLimit(), enquiryHandler.Submit)
				sessions.GET("/:id/progress", enquiryHandler.Progress)
				sessions.DELETE("/:id", enquiryHandler.CancelSession)
			}
		}

		// Admin dashboard
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			leads := admin.Group("/leads")
			{
				leads.GET("", adminHandler.ListLeads)
				leads.PATCH("/:id/status", adminHandler.UpdateLeadStatus)
				leads.PATCH("/:id/assign", adminHandler.AssignLead)
				leads.PATCH("/:id/remarks", adminHandler.UpdateLeadRemarks)
				leads.DELETE("/:id", adminHandler.DeleteLead)
			}

			adminProducts := admin.Group("/products")
			{
				adminProducts.POST("", adminHandler.CreateProduct)
				adminProducts.PUT("/:id", adminHandler.UpdateProduct)
				adminProducts.DELETE("/:id", adminHandler.DeleteProduct)
			}

			adminBlogs := admin.Group("/blogs")
			{
				adminBlogs.POST("", adminHandler.CreateBlog)
				adminBlogs.PUT("/:id", adminHandler.UpdateBlog)
				adminBlogs.DELETE("/:id", adminHandler.DeleteBlog)
			}

			adminCategories := admin.Group("/categories")
			{
				adminCategories.POST("", adminHandler.CreateCategory)
				adminCategories.DELETE("/:id", adminHandler.DeleteCategory)
			}

			adminVendors := admin.Group("/vendor-logos")
			{
				adminVendors.POST("", adminHandler.CreateVendorLogo)
				adminVendors.DELETE("/:id", adminHandler.DeleteVendorLogo)
			}
			admin.GET("/vendor-registrations", adminHandler.ListVendorRegistrations)

			adminUsers := admin.Group("/users")
			{
				adminUsers.GET("", adminHandler.ListUsers)
				adminUsers.POST("", adminHandler.CreateUser)
				adminUsers.DELETE("/:id", adminHandler.DeleteUser)
			}

			adminSettings := admin.Group("/settings")
			{
				adminSettings.GET("", adminHandler.GetSettings)
				adminSettings.PUT("", adminHandler.UpdateSettings)
			}

			admin.POST("/uploads", middleware.UploadRateLimit(), adminHandler.Upload)
			admin.DELETE("/uploads/*key", adminHandler.DeleteUpload)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
