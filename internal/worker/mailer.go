package worker

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/fitcore/gym-api/internal/config"
	"github.com/fitcore/gym-api/internal/model"
)

// Mailer delivers a rendered notification. Implementations must be safe for
// concurrent use.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPMailer(cfg config.SMTPConfig) Mailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &smtpMailer{addr: cfg.Addr(), auth: auth, from: cfg.From}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// render produces the plain-text subject and body for a notification.
func render(msg model.NotificationMessage) (subject, body string) {
	switch msg.Kind {
	case model.NotificationOrderConfirmation:
		subject = fmt.Sprintf("Order confirmation %s", msg.OrderID)
		body = fmt.Sprintf(
			"Hi %s,\n\nThanks for your order. Order %s has been received and is %s (payment: %s).\n",
			msg.RecipientName, msg.OrderID, msg.OrderStatus, msg.PaymentStatus,
		)
	case model.NotificationOrderStatusUpdate:
		subject = fmt.Sprintf("Order %s update", msg.OrderID)
		body = fmt.Sprintf(
			"Hi %s,\n\nYour order %s is now %s (payment: %s).\n",
			msg.RecipientName, msg.OrderID, msg.OrderStatus, msg.PaymentStatus,
		)
	case model.NotificationContactReceived:
		subject = "New contact message"
		if msg.Subject != "" {
			subject = "New contact message: " + msg.Subject
		}
		body = msg.Body + "\n"
	default:
		subject = msg.Subject
		body = msg.Body
	}
	return subject, body
}
