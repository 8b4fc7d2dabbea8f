package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"os"
	"strconv"
	"strings"

	"github.com/runoshun/task-reminder/internal/domain"
)

// OutboxTransport writes each message as an .eml file into a directory.
// It is the default transport and needs no mail server.
type OutboxTransport struct {
	clock domain.Clock
	dir   string
}

// NewOutboxTransport creates an OutboxTransport writing into dir.
func NewOutboxTransport(dir string, clock domain.Clock) *OutboxTransport {
	return &OutboxTransport{dir: dir, clock: clock}
}

// Dir returns the outbox directory.
func (t *OutboxTransport) Dir() string {
	return t.dir
}

// Send writes msg to <dir>/<timestamp>-<recipient>-<random>.eml.
func (t *OutboxTransport) Send(ctx context.Context, _ string, to []string, msg []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(t.dir, 0o750); err != nil {
		return fmt.Errorf("create outbox: %w", err)
	}

	prefix := t.clock.Now().UTC().Format("20060102T150405") + "-" + fileSafe(strings.Join(to, "_")) + "-"
	f, err := os.CreateTemp(t.dir, prefix+"*.eml")
	if err != nil {
		return fmt.Errorf("create message file: %w", err)
	}
	if _, err := f.Write(msg); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return fmt.Errorf("write message file: %w", err)
	}
	return f.Close()
}

// fileSafe keeps letters, digits, '.', '-', '_' and '@'.
func fileSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_', r == '@':
			return r
		default:
			return '_'
		}
	}, s)
}

// SMTPTransport relays messages through an SMTP server.
// Fields are ordered to minimize memory padding.
type SMTPTransport struct {
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	host     string
	username string
	password string
	port     int
}

// NewSMTPTransport creates an SMTPTransport. PLAIN auth is used when username is set.
func NewSMTPTransport(host string, port int, username, password string) *SMTPTransport {
	return &SMTPTransport{
		sendMail: smtp.SendMail,
		host:     host,
		port:     port,
		username: username,
		password: password,
	}
}

// Send relays msg. net/smtp has no context support, so ctx is only checked up front.
func (t *SMTPTransport) Send(ctx context.Context, from string, to []string, msg []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.host == "" {
		return fmt.Errorf("smtp host not configured")
	}

	var auth smtp.Auth
	if t.username != "" {
		auth = smtp.PlainAuth("", t.username, t.password, t.host)
	}
	addr := net.JoinHostPort(t.host, strconv.Itoa(t.port))
	if err := t.sendMail(addr, auth, from, to, msg); err != nil {
		return fmt.Errorf("smtp %s: %w", addr, err)
	}
	return nil
}

// NewTransport builds the transport selected by cfg.
// Relative outbox directories are resolved against dataDir.
func NewTransport(cfg domain.MailConfig, dataDir string, clock domain.Clock) (Transport, error) {
	switch cfg.Transport {
	case "", domain.MailTransportOutbox:
		dir := cfg.OutboxDir
		if dir == "" {
			dir = domain.DefaultOutboxDir
		}
		return NewOutboxTransport(domain.ResolvePath(dataDir, dir), clock), nil
	case domain.MailTransportSMTP:
		port := cfg.SMTPPort
		if port == 0 {
			port = domain.DefaultSMTPPort
		}
		return NewSMTPTransport(cfg.SMTPHost, port, cfg.SMTPUsername, cfg.SMTPPassword), nil
	default:
		return nil, fmt.Errorf("unknown mail transport %q", cfg.Transport)
	}
}
