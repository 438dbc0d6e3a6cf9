// internal/wizard/wizard.go
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/bantconfirm/backend/internal/models"
	"github.com/bantconfirm/backend/internal/utils"
)

// Step identifies a wizard screen. Forward transitions are guarded;
// backward transitions are always allowed and lose no data.
type Step int

const (
	StepContact    Step = 1 // name, mobile, location, company
	StepNeeds      Step = 2 // requirement, budget, timing
	StepConsent    Step = 3 // authority, consent, email confirmation
	StepSubmitting Step = 4
	StepDone       Step = 5
)

// Enumerated BANT option sets. A Step2 advance with a value outside these
// is rejected.
var (
	BudgetOptions = []string{"<10k", "10k-50k", "50k-1L", "1L+"}
	TimingOptions = []string{"Immediate", "1 Week", "1 Month"}
)

var (
	ErrContactRequired = errors.New("name, mobile and location are required")
	ErrNeedsRequired   = errors.New("requirement, budget and timing are required")
	ErrInvalidBudget   = errors.New("budget must be one of the listed ranges")
	ErrInvalidTiming   = errors.New("timing must be one of the listed options")
	ErrEmailRequired   = errors.New("a valid email is required")
	ErrNotAtConsent    = errors.New("submission is only allowed from the final step")
	ErrAlreadyDone     = errors.New("enquiry already submitted")
)

var node *snowflake.Node

func init() {
	var err error
	node, err = snowflake.NewNode(1)
	if err != nil {
		panic(fmt.Sprintf("snowflake node: %v", err))
	}
}

// NewLeadID issues a time-based lead identifier.
func NewLeadID() string {
	return node.Generate().String()
}

// Form is the shared field set persisted across step changes.
type Form struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Requirement string `json:"requirement"`
	Budget      string `json:"budget"`
	Authority   string `json:"authority"`
	Timing      string `json:"timing"`
	Consent     bool   `json:"consent"`
}

// LeadSubmitter is the slice of the store the wizard needs.
type LeadSubmitter interface {
	AddLead(ctx context.Context, lead *models.Lead) bool
}

// Session is one user's pass through the qualification wizard. The product
// id and enquiry type are read once at creation and never change the step
// flow; they only shape the service label on the submitted lead.
type Session struct {
	mu          sync.Mutex
	step        Step
	form        Form
	productID   string
	enquiryType string
	progress    *Progress

	// Overrides for the progress timings, zero meaning package defaults.
	progressTick  time.Duration
	progressPause time.Duration
}

func NewSession(productID, enquiryType string) *Session {
	return &Session{
		step:        StepContact,
		productID:   productID,
		enquiryType: enquiryType,
	}
}

func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

func (s *Session) Form() Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Update replaces the shared form with the caller's current field values.
func (s *Session) Update(form Form) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = form
}

// ApplyUser merges the signed-in user's profile into the form. A user field
// only overwrites when it is non-empty; already-typed values are never
// cleared.
func (s *Session) ApplyUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.Name != "" {
		s.form.Name = u.Name
	}
	if u.Email != "" {
		s.form.Email = u.Email
	}
	if u.Mobile != "" {
		s.form.Mobile = u.Mobile
	}
	if u.Company != "" {
		s.form.Company = u.Company
	}
	if u.Location != "" {
		s.form.Location = u.Location
	}
}

// Next advances one step if the current step's guard passes. A failed guard
// leaves the step counter unchanged.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.step {
	case StepContact:
		if s.form.Name == "" || s.form.Mobile == "" || s.form.Location == "" {
			return ErrContactRequired
		}
		s.step = StepNeeds
		return nil
	case StepNeeds:
		if s.form.Requirement == "" || s.form.Budget == "" || s.form.Timing == "" {
			return ErrNeedsRequired
		}
		if !contains(BudgetOptions, s.form.Budget) {
			return ErrInvalidBudget
		}
		if !contains(TimingOptions, s.form.Timing) {
			return ErrInvalidTiming
		}
		s.step = StepConsent
		return nil
	default:
		return ErrNotAtConsent
	}
}

// Back moves to the previous step unconditionally. Form fields persist.
func (s *Session) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step > StepContact && s.step < StepSubmitting {
		s.step--
	}
}

// ServiceLabel derives the lead's service field from the creation context.
func (s *Session) ServiceLabel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serviceLabel()
}

func (s *Session) serviceLabel() string {
	switch {
	case s.productID != "":
		return "Product ID: " + s.productID
	case s.enquiryType == "consult":
		return "General Consulting"
	default:
		return "Custom Requirement"
	}
}

// Submit is the only transition with a side effect. It validates the email,
// constructs a Pending lead dated today, persists it through the store, and
// on success enters the Submitting state running the progress sequence.
// onComplete fires when the sequence finishes, unless Stop is called first.
func (s *Session) Submit(ctx context.Context, submitter LeadSubmitter, onComplete func()) (*models.Lead, error) {
	s.mu.Lock()
	if s.step == StepSubmitting || s.step == StepDone {
		s.mu.Unlock()
		return nil, ErrAlreadyDone
	}
	if s.step != StepConsent {
		s.mu.Unlock()
		return nil, ErrNotAtConsent
	}

	email := struct {
		Email string `validate:"required,email"`
	}{s.form.Email}
	if err := utils.ValidateStruct(&email); err != nil {
		s.mu.Unlock()
		return nil, ErrEmailRequired
	}

	lead := &models.Lead{
		ID:          NewLeadID(),
		Name:        s.form.Name,
		Email:       s.form.Email,
		Mobile:      s.form.Mobile,
		Location:    s.form.Location,
		Company:     s.form.Company,
		Service:     s.serviceLabel(),
		Requirement: s.form.Requirement,
		Budget:      s.form.Budget,
		Authority:   s.form.Authority,
		Timing:      s.form.Timing,
		Status:      models.LeadStatusPending,
		Date:        time.Now(),
	}
	s.mu.Unlock()

	if !submitter.AddLead(ctx, lead) {
		// The store has already surfaced the failure; the form stays open
		// for another attempt.
		return nil, errors.New("failed to submit enquiry")
	}

	s.mu.Lock()
	s.step = StepSubmitting
	s.progress = NewProgress(func() {
		s.mu.Lock()
		s.step = StepDone
		s.mu.Unlock()
		if onComplete != nil {
			onComplete()
		}
	})
	if s.progressTick > 0 {
		s.progress.tick = s.progressTick
	}
	if s.progressPause > 0 {
		s.progress.pause = s.progressPause
	}
	s.progress.Start()
	s.mu.Unlock()

	return lead, nil
}

// ProgressPercent reports the matching animation's position, 0-100.
func (s *Session) ProgressPercent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.progress == nil {
		return 0
	}
	return s.progress.Percent()
}

// Stop halts any running progress sequence and pending completion. It must
// be called when the session's owner goes away, so no timer outlives it.
func (s *Session) Stop() {
	s.mu.Lock()
	p := s.progress
	s.mu.Unlock()
	if p != nil {
		p.Stop()
	}
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
