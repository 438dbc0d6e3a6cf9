// internal/wizard/wizard_test.go
package wizard

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bantconfirm/backend/internal/models"
)

type fakeSubmitter struct {
	leads []*models.Lead
	fail  bool
}

func (f *fakeSubmitter) AddLead(ctx context.Context, lead *models.Lead) bool {
	if f.fail {
		return false
	}
	f.leads = append(f.leads, lead)
	return true
}

func contactForm() Form {
	return Form{
		Name:     "Asha",
		Mobile:   "+919876543210",
		Location: "Pune",
	}
}

func consentForm() Form {
	f := contactForm()
	f.Requirement = "CRM for a 40 seat sales team"
	f.Budget = "10k-50k"
	f.Timing = "1 Week"
	f.Email = "asha@example.com"
	f.Authority = "Decision Maker"
	f.Consent = true
	return f
}

// fastForward drives a fresh session to the consent step.
func fastForward(t *testing.T, s *Session) {
	t.Helper()
	s.Update(consentForm())
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())
	require.Equal(t, StepConsent, s.Step())
}

func TestNextGuardsContactStep(t *testing.T) {
	s := NewSession("", "")

	err := s.Next()
	assert.ErrorIs(t, err, ErrContactRequired)
	assert.Equal(t, StepContact, s.Step(), "failed guard leaves the step unchanged")

	s.Update(contactForm())
	require.NoError(t, s.Next())
	assert.Equal(t, StepNeeds, s.Step())
}

func TestNextGuardsNeedsStep(t *testing.T) {
	s := NewSession("", "")
	s.Update(contactForm())
	require.NoError(t, s.Next())

	err := s.Next()
	assert.ErrorIs(t, err, ErrNeedsRequired)
	assert.Equal(t, StepNeeds, s.Step())

	form := s.Form()
	form.Requirement = "CRM rollout"
	form.Budget = "everything"
	form.Timing = "1 Week"
	s.Update(form)
	assert.ErrorIs(t, s.Next(), ErrInvalidBudget)

	form.Budget = "10k-50k"
	form.Timing = "someday"
	s.Update(form)
	assert.ErrorIs(t, s.Next(), ErrInvalidTiming)
	assert.Equal(t, StepNeeds, s.Step())

	form.Timing = "1 Week"
	s.Update(form)
	require.NoError(t, s.Next())
	assert.Equal(t, StepConsent, s.Step())
}

func TestBackPreservesForm(t *testing.T) {
	s := NewSession("", "")
	s.Update(consentForm())
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())

	s.Back()
	assert.Equal(t, StepNeeds, s.Step())
	assert.Equal(t, "CRM for a 40 seat sales team", s.Form().Requirement)

	s.Back()
	assert.Equal(t, StepContact, s.Step())

	// Back at the first step stays put.
	s.Back()
	assert.Equal(t, StepContact, s.Step())
	assert.Equal(t, "Asha", s.Form().Name)
}

func TestApplyUserMergesWithoutClobbering(t *testing.T) {
	s := NewSession("", "")
	s.Update(Form{Mobile: "+911111111111", Requirement: "typed already"})

	user := models.User{
		Name:    "Asha Patil",
		Email:   "asha@example.com",
		Company: "Patil Traders",
	}
	s.ApplyUser(user)

	form := s.Form()
	assert.Equal(t, "Asha Patil", form.Name)
	assert.Equal(t, "asha@example.com", form.Email)
	assert.Equal(t, "Patil Traders", form.Company)
	assert.Equal(t, "+911111111111", form.Mobile, "empty user field never clears a typed value")
	assert.Equal(t, "typed already", form.Requirement)
}

func TestServiceLabel(t *testing.T) {
	assert.Equal(t, "Product ID: 42", NewSession("42", "").ServiceLabel())
	assert.Equal(t, "General Consulting", NewSession("", "consult").ServiceLabel())
	assert.Equal(t, "Custom Requirement", NewSession("", "").ServiceLabel())
}

func TestSubmitOnlyFromConsent(t *testing.T) {
	s := NewSession("", "")
	sub := &fakeSubmitter{}

	_, err := s.Submit(context.Background(), sub, nil)
	assert.ErrorIs(t, err, ErrNotAtConsent)
	assert.Empty(t, sub.leads)
}

func TestSubmitRequiresValidEmail(t *testing.T) {
	s := NewSession("", "")
	form := consentForm()
	form.Email = "not-an-email"
	s.Update(form)
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())

	_, err := s.Submit(context.Background(), &fakeSubmitter{}, nil)
	assert.ErrorIs(t, err, ErrEmailRequired)
	assert.Equal(t, StepConsent, s.Step())
}

func TestSubmitBuildsPendingLead(t *testing.T) {
	s := NewSession("42", "")
	s.progressTick = time.Millisecond
	s.progressPause = time.Millisecond
	fastForward(t, s)

	var completed atomic.Bool
	sub := &fakeSubmitter{}
	lead, err := s.Submit(context.Background(), sub, func() { completed.Store(true) })
	require.NoError(t, err)

	require.Len(t, sub.leads, 1)
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, models.LeadStatusPending, lead.Status)
	assert.Equal(t, "Product ID: 42", lead.Service)
	assert.Equal(t, "Asha", lead.Name)
	assert.Equal(t, "10k-50k", lead.Budget)
	assert.WithinDuration(t, time.Now(), lead.Date, time.Minute)

	assert.Equal(t, StepSubmitting, s.Step())
	assert.Eventually(t, func() bool {
		return s.Step() == StepDone && completed.Load()
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 100, s.ProgressPercent())
}

func TestSubmitFailureKeepsFormOpen(t *testing.T) {
	s := NewSession("", "")
	fastForward(t, s)

	_, err := s.Submit(context.Background(), &fakeSubmitter{fail: true}, nil)
	assert.Error(t, err)
	assert.Equal(t, StepConsent, s.Step(), "a failed submission returns to the form")
}

func TestSubmitTwiceRejected(t *testing.T) {
	s := NewSession("", "")
	s.progressTick = time.Millisecond
	s.progressPause = time.Millisecond
	fastForward(t, s)

	sub := &fakeSubmitter{}
	_, err := s.Submit(context.Background(), sub, nil)
	require.NoError(t, err)

	_, err = s.Submit(context.Background(), sub, nil)
	assert.ErrorIs(t, err, ErrAlreadyDone)
	assert.Len(t, sub.leads, 1)
}

func TestStopCancelsCompletion(t *testing.T) {
	s := NewSession("", "")
	s.progressTick = 5 * time.Millisecond
	s.progressPause = time.Hour // completion would be far away
	fastForward(t, s)

	var completed atomic.Bool
	_, err := s.Submit(context.Background(), &fakeSubmitter{}, func() { completed.Store(true) })
	require.NoError(t, err)

	// Let the ticker run up, then abandon the session.
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.False(t, completed.Load(), "stopped sequence never completes")
	assert.Equal(t, StepSubmitting, s.Step())
}

func TestLeadIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewLeadID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}
