// Package notify emails the site owner when a new inquiry arrives
package notify

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Zachkp/folio/internal/config"
)

// ErrNotConfigured is returned when SMTP credentials are missing
var ErrNotConfigured = errors.New("SMTP credentials not configured")

// Inquiry is what the notification reports
type Inquiry struct {
	Name           string
	Email          string
	Company        string
	Message        string
	AttachmentName string
}

// SendFunc matches smtp.SendMail
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends inquiry notifications over SMTP
type Mailer struct {
	cfg  config.SMTP
	send SendFunc
}

// NewMailer returns a Mailer using smtp.SendMail
func NewMailer(cfg config.SMTP) *Mailer {
	return &Mailer{cfg: cfg, send: smtp.SendMail}
}

// Enabled reports whether notifications can be sent
func (m *Mailer) Enabled() bool {
	return m != nil && m.cfg.Enabled()
}

// header values must not carry line breaks
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

// Compose builds the RFC 822 message for inq
func (m *Mailer) Compose(inq Inquiry) []byte {
	subject := fmt.Sprintf("Portfolio inquiry: %s", headerSafe(inq.Name))

	var body strings.Builder
	body.WriteString("New inquiry from your portfolio contact form:\n\n")
	fmt.Fprintf(&body, "Name: %s\n", inq.Name)
	fmt.Fprintf(&body, "Email: %s\n", inq.Email)
	if inq.Company != "" {
		fmt.Fprintf(&body, "Company: %s\n", inq.Company)
	}
	if inq.AttachmentName != "" {
		fmt.Fprintf(&body, "Attachment: %s (stored with the inquiry)\n", inq.AttachmentName)
	}
	fmt.Fprintf(&body, "Message:\n%s\n\n---\nSent from your portfolio contact form\n", inq.Message)

	return []byte("To: " + m.cfg.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + m.cfg.User + "\r\n" +
		"Reply-To: " + headerSafe(inq.Email) + "\r\n" +
		"\r\n" +
		body.String() + "\r\n")
}

// Send emails the notification
func (m *Mailer) Send(inq Inquiry) error {
	if !m.Enabled() {
		return ErrNotConfigured
	}

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	addr := m.cfg.Host + ":" + m.cfg.Port
	if err := m.send(addr, auth, m.cfg.User, []string{m.cfg.To}, m.Compose(inq)); err != nil {
		return fmt.Errorf("send inquiry notification: %w", err)
	}
	return nil
}
