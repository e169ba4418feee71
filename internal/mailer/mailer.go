package mailer

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"subtrackr/internal/currency"
	"subtrackr/internal/models"
)

// Mailer sends reminder notifications. Implemented by SMTPMailer, mocked in
// worker tests.
type Mailer interface {
	SendPaymentReminder(user models.User, sub models.Subscription, daysUntil int) error
}

// SMTPMailer sends plain-text reminder emails over SMTP.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewSMTPMailer reads the SMTP settings from the environment.
func NewSMTPMailer() *SMTPMailer {
	m := &SMTPMailer{
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
	}
	if m.host == "" {
		m.host = "smtp.gmail.com"
	}
	if m.port == "" {
		m.port = "587"
	}
	if m.from == "" {
		m.from = "noreply@subtrackr.app"
	}
	return m
}

func (m *SMTPMailer) SendPaymentReminder(user models.User, sub models.Subscription, daysUntil int) error {
	subject := fmt.Sprintf("Reminder: %s payment due in %d days", sub.Name, daysUntil)
	amount := currency.FormatAmount(sub.Amount, sub.Currency)

	body := fmt.Sprintf(
		"Hi %s,\n\nYour %s subscription payment of %s is due in %d days.\n\nManage your subscriptions to adjust or silence these reminders.\n",
		user.Username, sub.Name, amount, daysUntil,
	)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", user.Email)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	return smtp.SendMail(addr, auth, m.from, []string{user.Email}, []byte(msg.String()))
}
