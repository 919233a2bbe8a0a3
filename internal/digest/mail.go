package digest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// ErrNoPassword is returned when mail is configured without a password.
var ErrNoPassword = errors.New("no SMTP password set")

// Message is a plain-text mail.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
	Date    time.Time
}

// Bytes returns the message in RFC 5322 form with CRLF line endings.
func (m Message) Bytes() []byte {
	var sb strings.Builder
	header := func(k, v string) {
		sb.WriteString(k + ": " + v + "\r\n")
	}
	header("From", m.From)
	header("To", m.To)
	header("Subject", m.Subject)
	if !m.Date.IsZero() {
		header("Date", m.Date.Format(time.RFC1123Z))
	}
	header("MIME-Version", "1.0")
	header("Content-Type", `text/plain; charset="utf-8"`)
	header("Content-Transfer-Encoding", "8bit")
	sb.WriteString("\r\n")

	body := strings.ReplaceAll(m.Body, "\r\n", "\n")
	sb.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(sb.String())
}

// Sender delivers a message.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// SMTPSender sends mail through an SMTP server with PLAIN authentication.
// The connection is upgraded with STARTTLS when the server offers it.
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Send implements Sender.
func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	if s.Password == "" {
		return ErrNoPassword
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	if err := smtp.SendMail(addr, auth, m.From, []string{m.To}, m.Bytes()); err != nil {
		return fmt.Errorf("sending digest to %s via %s: %w", m.To, addr, err)
	}
	return nil
}
