// internal/handlers/admin_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/bantconfirm/backend/internal/backend"
	"github.com/bantconfirm/backend/internal/middleware"
	"github.com/bantconfirm/backend/internal/models"
	"github.com/bantconfirm/backend/internal/store"
	"github.com/bantconfirm/backend/internal/utils"
)

type AdminHandlerTestSuite struct {
	suite.Suite
	client     *backend.Memory
	store      *store.Store
	router     *gin.Engine
	adminToken string
	userToken  string
}

func (s *AdminHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret")

	s.client = backend.NewMemory()
	ctx := context.Background()
	s.Require().NoError(s.client.InsertLead(ctx, &models.Lead{
		ID:     "7216893440912003",
		Name:   "Ravi Kumar",
		Email:  "ravi@example.com",
		Mobile: "+919812345678",
		Status: models.LeadStatusPending,
		Date:   time.Now(),
	}))

	s.store = store.New(s.client)
	s.store.FetchAll(ctx)

	handler := NewAdminHandler(s.store, nil)
	s.router = gin.New()
	admin := s.router.Group("/v1/admin", middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/leads", handler.ListLeads)
		admin.PATCH("/leads/:id/status", handler.UpdateLeadStatus)
		admin.PATCH("/leads/:id/assign", handler.AssignLead)
		admin.PATCH("/leads/:id/remarks", handler.UpdateLeadRemarks)
		admin.DELETE("/leads/:id", handler.DeleteLead)
		admin.POST("/categories", handler.CreateCategory)
		admin.GET("/users", handler.ListUsers)
		admin.POST("/users", handler.CreateUser)
		admin.DELETE("/users/:id", handler.DeleteUser)
		admin.PUT("/settings", handler.UpdateSettings)
	}

	var err error
	s.adminToken, err = utils.GenerateJWT(uuid.New(), "Admin", string(models.UserRoleAdmin), 1)
	s.Require().NoError(err)
	s.userToken, err = utils.GenerateJWT(uuid.New(), "Visitor", string(models.UserRoleUser), 1)
	s.Require().NoError(err)
}

func (s *AdminHandlerTestSuite) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AdminHandlerTestSuite) TestLeadStatusUpdateVisibleInListing() {
	w := s.do("PATCH", "/v1/admin/leads/7216893440912003/status", s.adminToken, gin.H{
		"status": "Verified",
	})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.do("GET", "/v1/admin/leads?status=Verified", s.adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp struct {
		Data []models.Lead `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp.Data, 1)
	s.Equal("7216893440912003", resp.Data[0].ID)
	s.Equal(models.LeadStatusVerified, resp.Data[0].Status)
}

func (s *AdminHandlerTestSuite) TestLeadStatusRejectsUnknownValue() {
	w := s.do("PATCH", "/v1/admin/leads/7216893440912003/status", s.adminToken, gin.H{
		"status": "Closed-Won",
	})
	s.Equal(http.StatusBadRequest, w.Code)

	leads, err := s.client.Leads(context.Background())
	s.Require().NoError(err)
	s.Equal(models.LeadStatusPending, leads[0].Status)
}

func (s *AdminHandlerTestSuite) TestAssignAndRemarks() {
	assignee := uuid.New().String()
	w := s.do("PATCH", "/v1/admin/leads/7216893440912003/assign", s.adminToken, gin.H{
		"user_id": assignee,
	})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.do("PATCH", "/v1/admin/leads/7216893440912003/remarks", s.adminToken, gin.H{
		"remarks": "Spoke on phone, wants a demo next week",
	})
	s.Require().Equal(http.StatusOK, w.Code)

	leads, err := s.client.Leads(context.Background())
	s.Require().NoError(err)
	s.Require().NotNil(leads[0].AssignedTo)
	s.Equal(assignee, leads[0].AssignedTo.String())
	s.Equal("Spoke on phone, wants a demo next week", leads[0].Remarks)

	// Unassign with an explicit null.
	w = s.do("PATCH", "/v1/admin/leads/7216893440912003/assign", s.adminToken, gin.H{
		"user_id": nil,
	})
	s.Require().Equal(http.StatusOK, w.Code)

	leads, err = s.client.Leads(context.Background())
	s.Require().NoError(err)
	s.Nil(leads[0].AssignedTo)
}

func (s *AdminHandlerTestSuite) TestDeleteLead() {
	w := s.do("DELETE", "/v1/admin/leads/7216893440912003", s.adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	leads, err := s.client.Leads(context.Background())
	s.Require().NoError(err)
	s.Empty(leads)
}

func (s *AdminHandlerTestSuite) TestNonAdminForbidden() {
	w := s.do("GET", "/v1/admin/leads", s.userToken, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do("GET", "/v1/admin/leads", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AdminHandlerTestSuite) TestCreateCategoryValidation() {
	w := s.do("POST", "/v1/admin/categories", s.adminToken, gin.H{"name": "X"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do("POST", "/v1/admin/categories", s.adminToken, gin.H{"name": "Analytics"})
	s.Require().Equal(http.StatusCreated, w.Code)

	var found bool
	for _, cat := range s.store.Categories() {
		if cat.Name == "Analytics" {
			found = true
		}
	}
	s.True(found)
}

func (s *AdminHandlerTestSuite) TestUserAddAndDeleteAreLocalOnly() {
	w := s.do("POST", "/v1/admin/users", s.adminToken, gin.H{
		"name":  "Offline Vendor",
		"email": "vendor@example.com",
		"role":  "vendor",
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	users := s.store.Users()
	s.Require().Len(users, 1)
	s.Equal("Offline Vendor", users[0].Name)

	// The backend never sees the row.
	persisted, err := s.client.Users(context.Background())
	s.Require().NoError(err)
	s.Empty(persisted)

	w = s.do("DELETE", "/v1/admin/users/"+users[0].ID.String(), s.adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Empty(s.store.Users())
}

func (s *AdminHandlerTestSuite) TestListUsersVendorFilter() {
	for _, u := range []gin.H{
		{"name": "Buyer One", "email": "buyer@example.com", "role": "user"},
		{"name": "Vendor One", "email": "v1@example.com", "role": "vendor"},
		{"name": "Vendor Two", "email": "v2@example.com", "role": "vendor"},
	} {
		w := s.do("POST", "/v1/admin/users", s.adminToken, u)
		s.Require().Equal(http.StatusCreated, w.Code)
	}

	w := s.do("GET", "/v1/admin/users?role=vendor", s.adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp struct {
		Data []models.User `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp.Data, 2)
	for _, u := range resp.Data {
		s.Equal(models.UserRoleVendor, u.Role)
	}
}

func (s *AdminHandlerTestSuite) TestUpdateSettings() {
	w := s.do("PUT", "/v1/admin/settings", s.adminToken, gin.H{
		"site_name":                "BantConfirm",
		"contact_email":            "hello@bantconfirm.com",
		"admin_notification_email": "leads@bantconfirm.com",
	})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("leads@bantconfirm.com", s.store.SiteConfig().AdminNotificationEmail)
}

func TestAdminHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}
