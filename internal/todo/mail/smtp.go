package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// SMTPConfig carries the connection settings for outbound mail.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Configured reports whether enough settings are present to attempt delivery.
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.From != ""
}

// SMTPSender delivers messages over plain SMTP.
type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(_ context.Context, msg Message) error {
	subject, body := render(msg)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	return smtp.SendMail(addr, auth, s.cfg.From, []string{msg.To}, []byte(b.String()))
}

// LogSender stands in when SMTP is unconfigured (dev environments); every
// message simply lands in the log.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	subject, _ := render(msg)
	s.Logger.Info("mail (log only)", "to", msg.To, "kind", msg.Kind, "subject", subject)
	return nil
}

func render(msg Message) (subject, body string) {
	title := msg.Data["title"]

	switch msg.Kind {
	case KindTaskAdded:
		return "Task added: " + title,
			fmt.Sprintf("Your task %q was created.\n", title)
	case KindTaskUpdated:
		return "Task updated: " + title,
			fmt.Sprintf("Your task %q was updated.\n", title)
	case KindTaskDeleted:
		return "Task deleted: " + title,
			fmt.Sprintf("Your task %q was deleted.\n", title)
	case KindTaskCompleted:
		status := "active"
		if msg.Data["completed"] == "true" {
			status = "completed"
		}
		return fmt.Sprintf("Task marked %s: %s", status, title),
			fmt.Sprintf("Your task %q is now %s.\n", title, status)
	case KindPasswordReset:
		return "Password reset requested",
			fmt.Sprintf("Use this token to reset your password within %s:\n\n%s\n\nIf you did not request a reset, ignore this message.\n",
				msg.Data["expires_in"], msg.Data["token"])
	default:
		return "Notification", "You have a new notification.\n"
	}
}
