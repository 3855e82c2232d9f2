package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	PortalURL    string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// QuoteEmailData carries the fields rendered into the quote notification mail.
type QuoteEmailData struct {
	CustomerName string
	QuoteNumber  string
	Title        string
	TotalAmount  string
	ExpiresAt    string
	CompanyName  string
	PortalURL    string
}

// SendQuoteEmail notifies a customer that a quote is ready for review.
func (s *EmailService) SendQuoteEmail(toEmail string, data QuoteEmailData) error {
	if data.PortalURL == "" {
		data.PortalURL = s.config.PortalURL
	}
	htmlContent, err := renderTemplate("quote", quoteTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Quote %s from %s", data.QuoteNumber, data.CompanyName)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// InvoiceEmailData carries the fields rendered into the invoice notification mail.
type InvoiceEmailData struct {
	CustomerName  string
	InvoiceNumber string
	TotalAmount   string
	DueDate       string
	CompanyName   string
	PortalURL     string
}

// SendInvoiceEmail notifies a customer that an invoice has been issued.
func (s *EmailService) SendInvoiceEmail(toEmail string, data InvoiceEmailData) error {
	if data.PortalURL == "" {
		data.PortalURL = s.config.PortalURL
	}
	htmlContent, err := renderTemplate("invoice", invoiceTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Invoice %s from %s", data.InvoiceNumber, data.CompanyName)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

func renderTemplate(name, body string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(body)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

const quoteTemplate = `
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Quote {{.QuoteNumber}}</title></head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="max-width: 600px; margin: 40px auto; background-color: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1); border-collapse: collapse; width: 100%;">
        <tr>
            <td style="background: #1a6b54; padding: 32px 30px; text-align: center;">
                <h1 style="color: #ffffff; margin: 0; font-size: 26px; font-weight: 600;">{{.CompanyName}}</h1>
            </td>
        </tr>
        <tr>
            <td style="padding: 36px 30px;">
                <h2 style="color: #1a1a2e; margin: 0 0 20px 0; font-size: 22px;">Your quote is ready</h2>
                <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">Hello {{.CustomerName}},</p>
                <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
                    Quote <strong>{{.QuoteNumber}}</strong>{{if .Title}} for <strong>{{.Title}}</strong>{{end}}
                    comes to a total of <strong>{{.TotalAmount}}</strong>.
                    {{if .ExpiresAt}}It is valid until <strong>{{.ExpiresAt}}</strong>.{{end}}
                </p>
                <table role="presentation" style="margin: 24px auto;">
                    <tr>
                        <td style="background: #1a6b54; border-radius: 8px;">
                            <a href="{{.PortalURL}}" style="display: inline-block; padding: 14px 28px; color: #ffffff; text-decoration: none; font-size: 16px; font-weight: 600;">Review &amp; Approve</a>
                        </td>
                    </tr>
                </table>
                <p style="color: #718096; font-size: 14px; line-height: 1.6;">
                    If you have any questions, simply reply to this email.
                </p>
            </td>
        </tr>
        <tr>
            <td style="background-color: #f8fafc; padding: 24px; text-align: center; border-top: 1px solid #e2e8f0;">
                <p style="color: #a0aec0; font-size: 13px; margin: 0;">This email was sent by {{.CompanyName}}</p>
            </td>
        </tr>
    </table>
</body>
</html>
`

const invoiceTemplate = `
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Invoice {{.InvoiceNumber}}</title></head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="max-width: 600px; margin: 40px auto; background-color: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1); border-collapse: collapse; width: 100%;">
        <tr>
            <td style="background: #1a6b54; padding: 32px 30px; text-align: center;">
                <h1 style="color: #ffffff; margin: 0; font-size: 26px; font-weight: 600;">{{.CompanyName}}</h1>
            </td>
        </tr>
        <tr>
            <td style="padding: 36px 30px;">
                <h2 style="color: #1a1a2e; margin: 0 0 20px 0; font-size: 22px;">Invoice {{.InvoiceNumber}}</h2>
                <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">Hello {{.CustomerName}},</p>
                <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
                    Invoice <strong>{{.InvoiceNumber}}</strong> for <strong>{{.TotalAmount}}</strong>
                    is due on <strong>{{.DueDate}}</strong>.
                </p>
                <table role="presentation" style="margin: 24px auto;">
                    <tr>
                        <td style="background: #1a6b54; border-radius: 8px;">
                            <a href="{{.PortalURL}}" style="display: inline-block; padding: 14px 28px; color: #ffffff; text-decoration: none; font-size: 16px; font-weight: 600;">View Invoice</a>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
        <tr>
            <td style="background-color: #f8fafc; padding: 24px; text-align: center; border-top: 1px solid #e2e8f0;">
                <p style="color: #a0aec0; font-size: 13px; margin: 0;">This email was sent by {{.CompanyName}}</p>
            </td>
        </tr>
    </table>
</body>
</html>
`
