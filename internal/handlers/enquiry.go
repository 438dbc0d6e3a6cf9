// internal/handlers/enquiry.go
package handlers

import (
	"errors"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bantconfirm/backend/internal/services"
	"github.com/bantconfirm/backend/internal/store"
	"github.com/bantconfirm/backend/internal/utils"
	"github.com/bantconfirm/backend/internal/wizard"
)

const sessionIdleTimeout = time.Hour

type sessionEntry struct {
	session  *wizard.Session
	lastSeen time.Time
}

// EnquiryHandler drives the qualification wizard over HTTP. Each client
// owns one server-side session keyed by an opaque id; idle sessions are
// reaped so a stopped progress timer never leaks.
type EnquiryHandler struct {
	store       *store.Store
	authService *services.AuthService
	mailer      *services.Mailer

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

func NewEnquiryHandler(s *store.Store, authService *services.AuthService, mailer *services.Mailer) *EnquiryHandler {
	h := &EnquiryHandler{
		store:       s,
		authService: authService,
		mailer:      mailer,
		sessions:    make(map[string]*sessionEntry),
	}
	go h.reapIdleSessions()
	return h
}

func (h *EnquiryHandler) reapIdleSessions() {
	for {
		time.Sleep(10 * time.Minute)
		h.mu.Lock()
		for id, entry := range h.sessions {
			if time.Since(entry.lastSeen) > sessionIdleTimeout {
				entry.session.Stop()
				delete(h.sessions, id)
			}
		}
		h.mu.Unlock()
	}
}

func (h *EnquiryHandler) getSession(id string) (*wizard.Session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	entry, ok := h.sessions[id]
	if !ok {
		return nil, false
	}
	entry.lastSeen = time.Now()
	return entry.session, true
}

// POST /enquiry/sessions
//
// Opens a wizard session. The signed-in user's profile fields are merged
// into the form so returning users start with everything known prefilled.
func (h *EnquiryHandler) StartSession(c *gin.Context) {
	var req struct {
		ProductID   string `json:"product_id"`
		EnquiryType string `json:"enquiry_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	session := wizard.NewSession(req.ProductID, req.EnquiryType)

	if userIDStr, ok := utils.GetUserIDFromContext(c); ok {
		if userID, err := uuid.Parse(userIDStr); err == nil {
			if user, err := h.authService.GetUserByID(c.Request.Context(), userID); err == nil {
				session.ApplyUser(*user)
			}
		}
	}

	id := uuid.New().String()
	h.mu.Lock()
	h.sessions[id] = &sessionEntry{session: session, lastSeen: time.Now()}
	h.mu.Unlock()

	utils.CreatedResponse(c, gin.H{
		"session_id":     id,
		"step":           session.Step(),
		"form":           session.Form(),
		"service":        session.ServiceLabel(),
		"budget_options": wizard.BudgetOptions,
		"timing_options": wizard.TimingOptions,
	})
}

// GET /enquiry/sessions/:id
func (h *EnquiryHandler) GetSession(c *gin.Context) {
	session, ok := h.getSession(c.Param("id"))
	if !ok {
		utils.NotFoundResponse(c, "Session")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"step":           session.Step(),
		"form":           session.Form(),
		"service":        session.ServiceLabel(),
		"budget_options": wizard.BudgetOptions,
		"timing_options": wizard.TimingOptions,
	})
}

// PUT /enquiry/sessions/:id/form
//
// Replaces the shared form with the client's current values. No step
// change, no validation; guards run on Next.
func (h *EnquiryHandler) UpdateForm(c *gin.Context) {
	session, ok := h.getSession(c.Param("id"))
	if !ok {
		utils.NotFoundResponse(c, "Session")
		return
	}

	var form wizard.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	session.Update(form)
	utils.SuccessResponse(c, gin.H{
		"step": session.Step(),
		"form": session.Form(),
	})
}

// POST /enquiry/sessions/:id/next
func (h *EnquiryHandler) Next(c *gin.Context) {
	session, ok := h.getSession(c.Param("id"))
	if !ok {
		utils.NotFoundResponse(c, "Session")
		return
	}

	if err := session.Next(); err != nil {
		utils.BadRequestResponse(c, err.Error(), gin.H{"step": session.Step()})
		return
	}

	utils.SuccessResponse(c, gin.H{
		"step": session.Step(),
		"form": session.Form(),
	})
}

// POST /enquiry/sessions/:id/back
func (h *EnquiryHandler) Back(c *gin.Context) {
	session, ok := h.getSession(c.Param("id"))
	if !ok {
		utils.NotFoundResponse(c, "Session")
		return
	}

	session.Back()
	utils.SuccessResponse(c, gin.H{
		"step": session.Step(),
		"form": session.Form(),
	})
}

// POST /enquiry/sessions/:id/submit
func (h *EnquiryHandler) Submit(c *gin.Context) {
	session, ok := h.getSession(c.Param("id"))
	if !ok {
		utils.NotFoundResponse(c, "Session")
		return
	}

	lead, err := session.Submit(c.Request.Context(), h.store, nil)
	if err != nil {
		if errors.Is(err, wizard.ErrAlreadyDone) {
			utils.ConflictResponse(c, err.Error())
			return
		}
		utils.BadRequestResponse(c, err.Error(), gin.H{"step": session.Step()})
		return
	}

	go h.mailer.SendLeadAlert(h.store.SiteConfig().AdminNotificationEmail, lead)

	utils.CreatedResponse(c, gin.H{
		"lead": lead,
		"step": session.Step(),
	})
}

// GET /enquiry/sessions/:id/progress
func (h *EnquiryHandler) Progress(c *gin.Context) {
	session, ok := h.getSession(c.Param("id"))
	if !ok {
		utils.NotFoundResponse(c, "Session")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"step":    session.Step(),
		"percent": session.ProgressPercent(),
	})
}

// DELETE /enquiry/sessions/:id
//
// Abandons the session. A running progress sequence is stopped so its
// completion never fires.
func (h *EnquiryHandler) CancelSession(c *gin.Context) {
	id := c.Param("id")

	h.mu.Lock()
	entry, ok := h.sessions[id]
	if ok {
		delete(h.sessions, id)
	}
	h.mu.Unlock()

	if !ok {
		utils.NotFoundResponse(c, "Session")
		return
	}

	entry.session.Stop()
	utils.SuccessResponse(c, gin.H{
		"message": "Session closed",
	})
}
