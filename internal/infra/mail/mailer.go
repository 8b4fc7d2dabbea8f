// Package mail composes verification and reminder messages and hands them
// to a transport.
package mail

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"io"
	texttemplate "text/template"

	gomail "github.com/emersion/go-message/mail"

	"github.com/runoshun/task-reminder/internal/domain"
)

// Ensure Mailer implements domain.Mailer.
var _ domain.Mailer = (*Mailer)(nil)

// Subjects.
const (
	VerificationSubject = "Verify your subscription to task reminders"
	ReminderSubject     = "Task reminder: pending tasks"
)

// Transport delivers a fully composed RFC 5322 message.
type Transport interface {
	Send(ctx context.Context, from string, to []string, msg []byte) error
}

// Mailer implements domain.Mailer on top of a Transport.
// Fields are ordered to minimize memory padding.
type Mailer struct {
	transport Transport
	clock     domain.Clock
	logger    domain.Logger
	from      string
	baseURL   string
}

// New creates a Mailer. baseURL prefixes the verify and unsubscribe links.
func New(transport Transport, from, baseURL string, clock domain.Clock, logger domain.Logger) *Mailer {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Mailer{
		transport: transport,
		clock:     clock,
		logger:    logger,
		from:      from,
		baseURL:   baseURL,
	}
}

type verificationData struct {
	Email     string
	VerifyURL string
}

type reminderData struct {
	Email          string
	UnsubscribeURL string
	Tasks          []domain.Task
}

var verificationText = texttemplate.Must(texttemplate.New("verify.txt").Parse(
	`Hello,

Please confirm that {{.Email}} should receive task reminders by opening:

{{.VerifyURL}}

If you did not request this, ignore this message.
`))

var verificationHTML = htmltemplate.Must(htmltemplate.New("verify.html").Parse(
	`<p>Please confirm that <strong>{{.Email}}</strong> should receive task reminders.</p>
<p><a id="verification-link" href="{{.VerifyURL}}">Verify subscription</a></p>
<p>If you did not request this, ignore this message.</p>
`))

var reminderText = texttemplate.Must(texttemplate.New("remind.txt").Parse(
	`Here are your pending tasks:
{{range .Tasks}}
- {{.Name}}{{end}}

Unsubscribe: {{.UnsubscribeURL}}
`))

var reminderHTML = htmltemplate.Must(htmltemplate.New("remind.html").Parse(
	`<h2>Pending Tasks Reminder</h2>
<p>Here are your pending tasks:</p>
<ul>{{range .Tasks}}
<li>{{.Name}}</li>{{end}}
</ul>
<p><a id="unsubscribe-link" href="{{.UnsubscribeURL}}">Unsubscribe from notifications</a></p>
`))

// SendVerification sends the verification link for email.
func (m *Mailer) SendVerification(ctx context.Context, email, code string) error {
	data := verificationData{
		Email:     email,
		VerifyURL: domain.VerifyURL(m.baseURL, email, code),
	}
	msg, err := m.compose(email, VerificationSubject, nil, verificationText, verificationHTML, data)
	if err != nil {
		return fmt.Errorf("compose verification: %w", err)
	}
	if err := m.transport.Send(ctx, m.from, []string{email}, msg); err != nil {
		return fmt.Errorf("send verification: %w", err)
	}
	m.logger.Info("mail", fmt.Sprintf("verification sent to %s", email))
	return nil
}

// SendReminder sends the pending task list to email.
func (m *Mailer) SendReminder(ctx context.Context, email string, tasks []domain.Task) error {
	unsubscribe := domain.UnsubscribeURL(m.baseURL, email)
	data := reminderData{
		Email:          email,
		UnsubscribeURL: unsubscribe,
		Tasks:          tasks,
	}
	extra := map[string]string{"List-Unsubscribe": "<" + unsubscribe + ">"}
	msg, err := m.compose(email, ReminderSubject, extra, reminderText, reminderHTML, data)
	if err != nil {
		return fmt.Errorf("compose reminder: %w", err)
	}
	if err := m.transport.Send(ctx, m.from, []string{email}, msg); err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}
	m.logger.Info("mail", fmt.Sprintf("reminder with %d tasks sent to %s", len(tasks), email))
	return nil
}

type executor interface {
	Execute(w io.Writer, data any) error
}

// compose renders a multipart/alternative message with text and HTML parts.
func (m *Mailer) compose(to, subject string, extra map[string]string, text, html executor, data any) ([]byte, error) {
	var h gomail.Header
	h.SetDate(m.clock.Now())
	h.SetAddressList("From", []*gomail.Address{{Address: m.from}})
	h.SetAddressList("To", []*gomail.Address{{Address: to}})
	h.SetSubject(subject)
	if err := h.GenerateMessageID(); err != nil {
		return nil, fmt.Errorf("generate message id: %w", err)
	}
	for k, v := range extra {
		h.Set(k, v)
	}

	var buf bytes.Buffer
	mw, err := gomail.CreateWriter(&buf, h)
	if err != nil {
		return nil, err
	}
	iw, err := mw.CreateInline()
	if err != nil {
		return nil, err
	}

	if err := writePart(iw, "text/plain", text, data); err != nil {
		return nil, err
	}
	if err := writePart(iw, "text/html", html, data); err != nil {
		return nil, err
	}

	if err := iw.Close(); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePart(iw *gomail.InlineWriter, contentType string, tmpl executor, data any) error {
	var ph gomail.InlineHeader
	ph.SetContentType(contentType, map[string]string{"charset": "utf-8"})
	pw, err := iw.CreatePart(ph)
	if err != nil {
		return err
	}
	if err := tmpl.Execute(pw, data); err != nil {
		_ = pw.Close()
		return fmt.Errorf("render %s: %w", contentType, err)
	}
	return pw.Close()
}
