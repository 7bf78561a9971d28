// Package notify delivers match notifications to reporters.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Config holds SMTP settings for the email notifier.
type Config struct {
	Host     string
	Port     int
	From     string
	Password string
	Sender   string // display name, e.g. "FoundIt"
}

// EmailNotifier sends notifications over authenticated SMTP.
type EmailNotifier struct {
	config Config
	send   func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailNotifier creates an SMTP-backed notifier.
func NewEmailNotifier(cfg Config) (*EmailNotifier, error) {
	if cfg.Host == "" || cfg.From == "" {
		return nil, fmt.Errorf("smtp host and from address are required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Sender == "" {
		cfg.Sender = "FoundIt"
	}

	return &EmailNotifier{
		config: cfg,
		send:   smtp.SendMail,
	}, nil
}

// Notify sends a plain-text email to the contact. Phone-shaped contacts
// cannot be delivered to and are skipped with a log line; the caller
// treats every outcome as best-effort anyway.
func (n *EmailNotifier) Notify(_ context.Context, contact, message string) error {
	if !strings.Contains(contact, "@") {
		slog.Info("skipping notification for non-email contact", "contact", contact)
		return nil
	}

	msg := fmt.Sprintf("From: %q <%s>\r\nTo: %s\r\nSubject: FoundIt: possible match for your item\r\n\r\n%s\r\n",
		n.config.Sender, n.config.From, contact, message)

	addr := fmt.Sprintf("%s:%d", n.config.Host, n.config.Port)
	auth := smtp.PlainAuth("", n.config.From, n.config.Password, n.config.Host)

	if err := n.send(addr, auth, n.config.From, []string{contact}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}

	slog.Info("notification sent", "contact", contact)
	return nil
}

// LogNotifier logs notifications instead of delivering them. Used when
// SMTP is not configured.
type LogNotifier struct{}

// Notify logs the would-be notification.
func (LogNotifier) Notify(_ context.Context, contact, message string) error {
	slog.Info("notification", "contact", contact, "message", message)
	return nil
}
