package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/nextelligentia/leadops/internal/domain"
)

var (
	loginCodeTmpl = template.Must(template.New("login_code").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Your login verification code</h2>
  <p style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">{{.Code}}</p>
  <p>The code expires in {{.Minutes}} minutes. If you did not try to sign in, ignore this email.</p>
</div>`))

	leadNotificationTmpl = template.Must(template.New("lead_notification").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333; border-bottom: 2px solid #007bff; padding-bottom: 10px;">New Lead Received</h2>
  <div style="background: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3 style="color: #007bff; margin-top: 0;">Contact Information</h3>
    <p><strong>Name:</strong> {{.Lead.FirstName}} {{.Lead.LastName}}</p>
    <p><strong>Email:</strong> <a href="mailto:{{.Lead.Email}}">{{.Lead.Email}}</a></p>
    <p><strong>Phone:</strong> {{.Lead.CountryCode}} {{.Lead.Phone}}</p>
    <p><strong>Company:</strong> {{.Company}}</p>
    <p><strong>Region:</strong> {{.Lead.Region}}</p>
  </div>
  <div style="background: #fff; padding: 20px; border: 1px solid #dee2e6; border-radius: 8px; margin: 20px 0;">
    <h3 style="color: #28a745; margin-top: 0;">Project Details</h3>
    <p><strong>Budget:</strong> {{.Lead.Budget}}</p>
    <p><strong>Services:</strong> {{.Services}}</p>
    <p><strong>Project Details:</strong></p>
    <div style="background: #f8f9fa; padding: 15px; border-radius: 5px; margin-top: 10px;">{{.Lead.ProjectDetails}}</div>
  </div>
  <p style="color: #666; font-size: 12px; text-align: center; margin-top: 30px;">
    This email was sent automatically from the {{.Brand}} lead management system.
  </p>
</div>`))

	welcomeTmpl = template.Must(template.New("welcome").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #007bff; text-align: center;">Thank You for Your Interest!</h2>
  <p>Dear {{.Lead.FirstName}} {{.Lead.LastName}},</p>
  <p>Thank you for reaching out to {{.Brand}}! We have received your project inquiry and our team will review it shortly.</p>
  <div style="background: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3 style="color: #28a745; margin-top: 0;">What happens next?</h3>
    <ul>
      <li>Our team will review your project requirements</li>
      <li>We'll reach out to you within 24 hours</li>
      <li>We'll schedule a consultation to discuss your project in detail</li>
    </ul>
  </div>
  <p>Best regards,<br><strong>{{.Brand}} Team</strong></p>
</div>`))
)

// Templates renders the messages the service sends. Brand is the company
// name shown to recipients.
type Templates struct {
	Brand string
}

func (t Templates) LoginCode(to, code string, ttl time.Duration) (Message, error) {
	minutes := int(ttl.Minutes())
	html, err := render(loginCodeTmpl, map[string]any{"Code": code, "Minutes": minutes})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      to,
		Subject: "Your Login Verification Code",
		Text:    fmt.Sprintf("Your verification code is: %s\n\nIt expires in %d minutes.", code, minutes),
		HTML:    html,
	}, nil
}

func (t Templates) LeadNotification(to string, lead *domain.Lead) (Message, error) {
	company := "Not specified"
	if lead.Company != nil && *lead.Company != "" {
		company = *lead.Company
	}
	services := strings.Join(lead.Services, ", ")

	html, err := render(leadNotificationTmpl, map[string]any{
		"Lead":     lead,
		"Company":  company,
		"Services": services,
		"Brand":    t.Brand,
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      to,
		Subject: "New Lead Received - " + lead.FullName(),
		Text: fmt.Sprintf(
			"New lead: %s <%s>, %s %s\nCompany: %s\nRegion: %s\nBudget: %s\nServices: %s\n\n%s",
			lead.FullName(), lead.Email, lead.CountryCode, lead.Phone,
			company, lead.Region, lead.Budget, services, lead.ProjectDetails,
		),
		HTML: html,
	}, nil
}

func (t Templates) Welcome(lead *domain.Lead) (Message, error) {
	html, err := render(welcomeTmpl, map[string]any{"Lead": lead, "Brand": t.Brand})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      lead.Email,
		Subject: "Thank you for your interest - " + t.Brand,
		Text: fmt.Sprintf(
			"Dear %s,\n\nThank you for reaching out to %s! We have received your project inquiry and will reach out within 24 hours.\n\nBest regards,\n%s Team",
			lead.FullName(), t.Brand, t.Brand,
		),
		HTML: html,
	}, nil
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
