// internal/services/mailer.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/bantconfirm/backend/internal/config"
	"github.com/bantconfirm/backend/internal/models"
)

// Mailer sends transactional email over plain SMTP. Every send is best
// effort: failures are logged, never surfaced to the caller, because email is
// a side channel and must not fail the triggering operation.
type Mailer struct {
	cfg *config.Config
}

type emailTemplate struct {
	Subject string
	Body    string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) SendConfirmationEmail(user *models.User, token string) {
	data := map[string]interface{}{
		"Name":       user.Name,
		"ConfirmURL": fmt.Sprintf("%s/confirm-email?token=%s", m.cfg.Site.BaseURL, token),
		"SiteName":   m.cfg.Email.FromName,
	}
	m.send(user.Email, m.getTemplate("confirm_email"), data)
}

func (m *Mailer) SendPasswordResetEmail(user *models.User, token string) {
	data := map[string]interface{}{
		"Name":      user.Name,
		"ResetURL":  fmt.Sprintf("%s?token=%s", m.cfg.Site.PasswordResetRedirect, token),
		"ExpiresIn": "1 hour",
	}
	m.send(user.Email, m.getTemplate("password_reset"), data)
}

// SendLeadAlert notifies the admin inbox about a new enquiry.
func (m *Mailer) SendLeadAlert(to string, lead *models.Lead) {
	if to == "" {
		return
	}
	data := map[string]interface{}{
		"Name":    lead.Name,
		"Email":   lead.Email,
		"Mobile":  lead.Mobile,
		"Service": lead.Service,
		"Budget":  lead.Budget,
		"Timing":  lead.Timing,
		"LeadURL": fmt.Sprintf("%s/admin/leads", m.cfg.Site.BaseURL),
	}
	m.send(to, m.getTemplate("lead_alert"), data)
}

// SendVendorRegistrationAlert notifies the admin inbox about a new vendor
// registration.
func (m *Mailer) SendVendorRegistrationAlert(to string, reg *models.VendorRegistration) {
	if to == "" {
		return
	}
	data := map[string]interface{}{
		"Name":        reg.Name,
		"CompanyName": reg.CompanyName,
		"Email":       reg.Email,
		"Mobile":      reg.Mobile,
		"ProductName": reg.ProductName,
	}
	m.send(to, m.getTemplate("vendor_registration"), data)
}

func (m *Mailer) send(to string, tmpl emailTemplate, data map[string]interface{}) {
	body, err := m.render(tmpl.Body, data)
	if err != nil {
		logrus.WithError(err).WithField("to", to).Error("Failed to render email template")
		return
	}

	if m.cfg.Email.SMTPUsername == "" {
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": tmpl.Subject,
		}).Info("SMTP not configured, skipping email")
		return
	}

	auth := smtp.PlainAuth("", m.cfg.Email.SMTPUsername, m.cfg.Email.SMTPPassword, m.cfg.Email.SMTPHost)
	msg := []byte(fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.cfg.Email.FromName, m.cfg.Email.FromEmail, to, tmpl.Subject, body))

	addr := fmt.Sprintf("%s:%s", m.cfg.Email.SMTPHost, m.cfg.Email.SMTPPort)
	if err := smtp.SendMail(addr, auth, m.cfg.Email.FromEmail, []string{to}, msg); err != nil {
		logrus.WithError(err).WithField("to", to).Error("Failed to send email")
	}
}

func (m *Mailer) render(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (m *Mailer) getTemplate(templateType string) emailTemplate {
	templates := map[string]emailTemplate{
		"confirm_email": {
			Subject: "Confirm your email address",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Welcome {{.Name}}!</h2>
	<p>Thank you for joining {{.SiteName}}. Please confirm your email address by clicking the link below:</p>
	<a href="{{.ConfirmURL}}">Confirm Email</a>
	<p>Best regards,<br>{{.SiteName}} Team</p>
</body>
</html>`,
		},
		"password_reset": {
			Subject: "Password Reset Request",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.Name}},</h2>
	<p>We received a request to reset your password. The link below expires in {{.ExpiresIn}}:</p>
	<a href="{{.ResetURL}}">Reset Password</a>
	<p>If you did not request this, you can ignore this email.</p>
</body>
</html>`,
		},
		"lead_alert": {
			Subject: "New enquiry received",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>New enquiry</h2>
	<p><strong>{{.Name}}</strong> ({{.Email}}, {{.Mobile}})</p>
	<p>Service: {{.Service}}<br>Budget: {{.Budget}}<br>Timeline: {{.Timing}}</p>
	<a href="{{.LeadURL}}">Open lead dashboard</a>
</body>
</html>`,
		},
		"vendor_registration": {
			Subject: "New vendor registration",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>New vendor registration</h2>
	<p><strong>{{.Name}}</strong> from {{.CompanyName}}</p>
	<p>Email: {{.Email}}<br>Mobile: {{.Mobile}}<br>Product: {{.ProductName}}</p>
</body>
</html>`,
		},
	}

	if tmpl, exists := templates[templateType]; exists {
		return tmpl
	}

	return emailTemplate{
		Subject: "Notification",
		Body:    "<p>{{.Message}}</p>",
	}
}
