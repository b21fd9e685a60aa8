package notifications

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"strconv"
	"time"
)

// EmailService delivers notifications over email.
type EmailService interface {
	SendNotification(ctx context.Context, notification *EmailNotification) error
	SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error
	SendTemplate(ctx context.Context, to, subject, templateName string, data interface{}) error
}

// SMTPConfig holds SMTP connection settings.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
	Timeout   time.Duration
}

// SMTPEmailService sends email through a real SMTP server.
type SMTPEmailService struct {
	config    *SMTPConfig
	templates map[string]*template.Template
}

func NewSMTPEmailService(config *SMTPConfig) (*SMTPEmailService, error) {
	if err := validateSMTPConfig(config); err != nil {
		return nil, err
	}

	return &SMTPEmailService{
		config:    config,
		templates: make(map[string]*template.Template),
	}, nil
}

func validateSMTPConfig(config *SMTPConfig) error {
	if config == nil {
		return fmt.Errorf("SMTP config is nil")
	}

	if config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}

	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("SMTP port must be between 1 and 65535")
	}

	if config.Username == "" {
		return fmt.Errorf("SMTP username is required")
	}

	if config.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}

	return nil
}

func (s *SMTPEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	htmlBody, textBody, err := s.generateContent(notification)
	if err != nil {
		return fmt.Errorf("failed to generate email content: %w", err)
	}

	return s.SendHTML(ctx, notification.RecipientEmail, notification.Subject, htmlBody, textBody)
}

func (s *SMTPEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	message := s.buildMessage(to, subject, htmlBody, textBody)

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var err error
	if s.config.UseTLS {
		err = s.sendWithSTARTTLS(addr, auth, to, message)
	} else {
		err = smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	}

	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *SMTPEmailService) SendTemplate(ctx context.Context, to, subject, templateName string, data interface{}) error {
	tmpl, exists := s.templates[templateName]
	if !exists {
		return fmt.Errorf("template %s not found", templateName)
	}

	var htmlBuf, textBuf bytes.Buffer

	if err := tmpl.ExecuteTemplate(&htmlBuf, "html", data); err != nil {
		return fmt.Errorf("failed to execute HTML template: %w", err)
	}

	if err := tmpl.ExecuteTemplate(&textBuf, "text", data); err != nil {
		textBuf.WriteString("Please view this email in HTML format.")
	}

	return s.SendHTML(ctx, to, subject, htmlBuf.String(), textBuf.String())
}

// sendWithSTARTTLS upgrades a plain connection, which is what most
// providers expect on port 587.
func (s *SMTPEmailService) sendWithSTARTTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Quit()

	tlsconfig := &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         s.config.Host,
	}

	if err = client.StartTLS(tlsconfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return w.Close()
}

func (s *SMTPEmailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Date"] = time.Now().Format(time.RFC1123Z)

	boundary := "boundary_" + strconv.FormatInt(time.Now().UnixNano(), 10)
	headers["Content-Type"] = fmt.Sprintf("multipart/alternative; boundary=%s", boundary)

	message := ""
	for k, v := range headers {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	message += "\r\n"

	if textBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/plain; charset=UTF-8\r\n"
		message += "\r\n"
		message += textBody + "\r\n"
	}

	if htmlBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/html; charset=UTF-8\r\n"
		message += "\r\n"
		message += htmlBody + "\r\n"
	}

	message += fmt.Sprintf("--%s--\r\n", boundary)

	return []byte(message)
}

func (s *SMTPEmailService) generateContent(notification *EmailNotification) (string, string, error) {
	data := notification.TemplateData

	switch notification.Type {
	case NotificationTypeBookingConfirmed:
		htmlBody := fmt.Sprintf(`
			<h2>Booking Confirmed</h2>
			<p>Hi %s,</p>
			<p>Your booking for <strong>%s</strong> has been confirmed!</p>
			<p>Booking Reference: <strong>%s</strong></p>
			<p>Travellers: %v</p>
			<p>Total Amount: %v %v</p>
			<p>Your guide will reach out with trip details closer to the departure date.</p>
			<p>Safe travels,<br>Trip Coach Team</p>
		`,
			notification.RecipientName,
			data["package_title"],
			data["booking_ref"],
			data["pax"],
			data["total_amount"],
			data["currency"],
		)

		textBody := fmt.Sprintf(
			"Hi %s,\n\nYour booking for %s has been confirmed!\nBooking Reference: %s\nTravellers: %v\nTotal Amount: %v %v\n\nSafe travels,\nTrip Coach Team",
			notification.RecipientName,
			data["package_title"],
			data["booking_ref"],
			data["pax"],
			data["total_amount"],
			data["currency"],
		)

		return htmlBody, textBody, nil

	case NotificationTypeBookingCancelled:
		htmlBody := fmt.Sprintf(`
			<h2>Booking Cancelled</h2>
			<p>Hi %s,</p>
			<p>Your booking for <strong>%s</strong> has been cancelled.</p>
			<p>Booking Reference: <strong>%s</strong></p>
			<p>If this wasn't you, please contact support right away.</p>
			<p>Best regards,<br>Trip Coach Team</p>
		`,
			notification.RecipientName,
			data["package_title"],
			data["booking_ref"],
		)

		textBody := fmt.Sprintf(
			"Hi %s,\n\nYour booking for %s has been cancelled.\nBooking Reference: %s\n\nIf this wasn't you, please contact support right away.\n\nBest regards,\nTrip Coach Team",
			notification.RecipientName,
			data["package_title"],
			data["booking_ref"],
		)

		return htmlBody, textBody, nil

	case NotificationTypeGuideApproved:
		htmlBody := fmt.Sprintf(`
			<h2>Welcome Aboard, Guide</h2>
			<p>Hi %s,</p>
			<p>Your guide application has been approved. You can now create and publish travel packages from your guide dashboard.</p>
			<p>Best regards,<br>Trip Coach Team</p>
		`,
			notification.RecipientName,
		)

		textBody := fmt.Sprintf(
			"Hi %s,\n\nYour guide application has been approved. You can now create and publish travel packages from your guide dashboard.\n\nBest regards,\nTrip Coach Team",
			notification.RecipientName,
		)

		return htmlBody, textBody, nil

	default:
		htmlBody := fmt.Sprintf(`
			<h2>%s</h2>
			<p>Hi %s,</p>
			<p>This is a notification from Trip Coach.</p>
			<p>Best regards,<br>Trip Coach Team</p>
		`,
			notification.Subject,
			notification.RecipientName,
		)

		textBody := fmt.Sprintf(
			"Hi %s,\n\nThis is a notification from Trip Coach.\n\nBest regards,\nTrip Coach Team",
			notification.RecipientName,
		)

		return htmlBody, textBody, nil
	}
}

// MockEmailService logs instead of sending, for local development.
type MockEmailService struct{}

func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

func (s *MockEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	log.Printf("[MOCK EMAIL] %s notification to %s (%s)",
		notification.Type,
		notification.RecipientEmail,
		notification.RecipientName,
	)
	return nil
}

func (s *MockEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	log.Printf("[MOCK EMAIL] To: %s, Subject: %s", to, subject)
	return nil
}

func (s *MockEmailService) SendTemplate(ctx context.Context, to, subject, templateName string, data interface{}) error {
	log.Printf("[MOCK EMAIL] Template: %s, To: %s, Subject: %s", templateName, to, subject)
	return nil
}
