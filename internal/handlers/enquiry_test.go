// internal/handlers/enquiry_test.go
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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/bantconfirm/backend/internal/backend"
	"github.com/bantconfirm/backend/internal/config"
	"github.com/bantconfirm/backend/internal/middleware"
	"github.com/bantconfirm/backend/internal/services"
	"github.com/bantconfirm/backend/internal/store"
	"github.com/bantconfirm/backend/internal/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 1,
		},
		Site: config.SiteConfig{
			BaseURL:               "https://example.com",
			EmailConfirmRedirect:  "https://example.com/login",
			PasswordResetRedirect: "https://example.com/reset-password",
		},
	}
}

type EnquiryTestSuite struct {
	suite.Suite
	client *backend.Memory
	store  *store.Store
	router *gin.Engine
	token  string
}

func (suite *EnquiryTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	suite.client = backend.NewMemory()
	suite.store = store.New(suite.client)

	mailer := services.NewMailer(cfg)
	authService := services.NewAuthService(suite.client, cfg, mailer)
	enquiryHandler := NewEnquiryHandler(suite.store, authService, mailer)

	suite.router = gin.New()
	enquiry := suite.router.Group("/v1/enquiry")
	enquiry.Use(middleware.AuthRequired())
	{
		sessions := enquiry.Group("/sessions")
		sessions.POST("", enquiryHandler.StartSession)
		sessions.GET("/:id", enquiryHandler.GetSession)
		sessions.PUT("/:id/form", enquiryHandler.UpdateForm)
		sessions.POST("/:id/next", enquiryHandler.Next)
		sessions.POST("/:id/back", enquiryHandler.Back)
		sessions.POST("/:id/submit", enquiryHandler.Submit)
		sessions.GET("/:id/progress", enquiryHandler.Progress)
		sessions.DELETE("/:id", enquiryHandler.CancelSession)
	}

	resp, err := authService.Register(context.Background(), &services.RegisterRequest{
		Name:     "Asha Patil",
		Email:    "asha@example.com",
		Password: "Str0ngPass",
		Mobile:   "+919876543210",
		Location: "Pune",
	})
	require.NoError(suite.T(), err)
	suite.token = resp.AccessToken
}

func (suite *EnquiryTestSuite) do(method, path string, body interface{}, authed bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+suite.token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *EnquiryTestSuite) startSession() string {
	w := suite.do("POST", "/v1/enquiry/sessions", gin.H{"product_id": "42"}, true)
	require.Equal(suite.T(), http.StatusCreated, w.Code)

	var resp struct {
		Data struct {
			SessionID string         `json:"session_id"`
			Step      int            `json:"step"`
			Form      map[string]any `json:"form"`
			Budget    []string       `json:"budget_options"`
		} `json:"data"`
	}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(suite.T(), resp.Data.SessionID)
	return resp.Data.SessionID
}

func (suite *EnquiryTestSuite) TestUnauthenticatedGetsRedirectTarget() {
	var buf bytes.Buffer
	req := httptest.NewRequest("POST", "/v1/enquiry/sessions?product=42", &buf)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	var body struct {
		Meta struct {
			RedirectTo string `json:"redirect_to"`
		} `json:"meta"`
	}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(suite.T(), "/v1/enquiry/sessions?product=42", body.Meta.RedirectTo)
}

func (suite *EnquiryTestSuite) TestSessionPrefillsFromProfile() {
	id := suite.startSession()

	w := suite.do("GET", "/v1/enquiry/sessions/"+id, nil, true)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Form struct {
				Name     string `json:"name"`
				Email    string `json:"email"`
				Mobile   string `json:"mobile"`
				Location string `json:"location"`
			} `json:"form"`
			Service string `json:"service"`
		} `json:"data"`
	}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), "Asha Patil", resp.Data.Form.Name)
	assert.Equal(suite.T(), "asha@example.com", resp.Data.Form.Email)
	assert.Equal(suite.T(), "+919876543210", resp.Data.Form.Mobile)
	assert.Equal(suite.T(), "Product ID: 42", resp.Data.Service)
}

func (suite *EnquiryTestSuite) TestGuardBlocksIncompleteStep() {
	id := suite.startSession()

	// Profile prefill covers contact, so step one advances.
	w := suite.do("POST", "/v1/enquiry/sessions/"+id+"/next", nil, true)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	// Step two fields are empty, so the guard rejects.
	w = suite.do("POST", "/v1/enquiry/sessions/"+id+"/next", nil, true)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *EnquiryTestSuite) TestFullWizardFlow() {
	id := suite.startSession()
	base := "/v1/enquiry/sessions/" + id

	require.Equal(suite.T(), http.StatusOK, suite.do("POST", base+"/next", nil, true).Code)

	form := gin.H{
		"name":        "Asha Patil",
		"email":       "asha@example.com",
		"mobile":      "+919876543210",
		"location":    "Pune",
		"requirement": "CRM for a 40 seat sales team",
		"budget":      "10k-50k",
		"timing":      "1 Week",
		"authority":   "Decision Maker",
		"consent":     true,
	}
	require.Equal(suite.T(), http.StatusOK, suite.do("PUT", base+"/form", form, true).Code)
	require.Equal(suite.T(), http.StatusOK, suite.do("POST", base+"/next", nil, true).Code)

	// Back and forward again: nothing is lost.
	require.Equal(suite.T(), http.StatusOK, suite.do("POST", base+"/back", nil, true).Code)
	require.Equal(suite.T(), http.StatusOK, suite.do("POST", base+"/next", nil, true).Code)

	w := suite.do("POST", base+"/submit", nil, true)
	require.Equal(suite.T(), http.StatusCreated, w.Code)

	var resp struct {
		Data struct {
			Lead struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"lead"`
			Step int `json:"step"`
		} `json:"data"`
	}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(suite.T(), resp.Data.Lead.ID)
	assert.Equal(suite.T(), "Pending", resp.Data.Lead.Status)
	assert.Equal(suite.T(), 4, resp.Data.Step)

	// Exactly one lead persisted.
	leads, err := suite.client.Leads(context.Background())
	require.NoError(suite.T(), err)
	require.Len(suite.T(), leads, 1)
	assert.Equal(suite.T(), "Product ID: 42", leads[0].Service)

	// The progress endpoint tracks the sequence.
	w = suite.do("GET", base+"/progress", nil, true)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	// A second submit is rejected.
	w = suite.do("POST", base+"/submit", nil, true)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	// Cancel stops the sequence timer.
	require.Equal(suite.T(), http.StatusOK, suite.do("DELETE", base, nil, true).Code)
}

func (suite *EnquiryTestSuite) TestCancelUnknownSession() {
	w := suite.do("DELETE", "/v1/enquiry/sessions/nope", nil, true)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *EnquiryTestSuite) TestSessionExpiryStopsTimers() {
	id := suite.startSession()

	w := suite.do("DELETE", "/v1/enquiry/sessions/"+id, nil, true)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	// The session is gone afterwards.
	assert.Eventually(suite.T(), func() bool {
		return suite.do("GET", "/v1/enquiry/sessions/"+id, nil, true).Code == http.StatusNotFound
	}, time.Second, 10*time.Millisecond)
}

func TestEnquiryTestSuite(t *testing.T) {
	suite.Run(t, new(EnquiryTestSuite))
}
