// Package notification provides outbound Email/SMS delivery with template
// rendering, in-memory delivery records, and retry of failed sends. The
// in-app notification feed lives in the notifications domain; this package
// only talks to the outside world.
package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

// Channel represents the transport used to deliver a message.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Message represents a single outbound notification.
type Message struct {
	ID           string            `json:"id"`
	Channel      Channel           `json:"channel"`
	Recipient    string            `json:"recipient"`
	Subject      string            `json:"subject,omitempty"`
	Body         string            `json:"body"`
	TemplateID   string            `json:"template_id,omitempty"`
	TemplateData map[string]string `json:"template_data,omitempty"`
	Status       string            `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	SentAt       *time.Time        `json:"sent_at,omitempty"`
	Error        string            `json:"error,omitempty"`
}

// ---------------------------------------------------------------------------
// Sender interfaces
// ---------------------------------------------------------------------------

// EmailSender is the interface for sending email messages.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// SMSSender is the interface for sending SMS messages.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// LogEmailSender writes emails to the log instead of sending them. Used in
// development where no mail provider is configured.
type LogEmailSender struct {
	Logger zerolog.Logger
}

func (s *LogEmailSender) SendEmail(_ context.Context, to, subject, body string) error {
	s.Logger.Info().Str("to", to).Str("subject", subject).Str("body", body).Msg("email (log sender)")
	return nil
}

// LogSMSSender writes SMS messages to the log instead of sending them.
type LogSMSSender struct {
	Logger zerolog.Logger
}

func (s *LogSMSSender) SendSMS(_ context.Context, to, body string) error {
	s.Logger.Info().Str("to", to).Str("body", body).Msg("sms (log sender)")
	return nil
}

// ---------------------------------------------------------------------------
// Template engine
// ---------------------------------------------------------------------------

// Template defines a reusable notification template.
type Template struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Subject string  `json:"subject"`
	Body    string  `json:"body"`
	Channel Channel `json:"channel"`
}

// TemplateEngine manages notification templates and renders them with data.
type TemplateEngine struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewTemplateEngine creates a TemplateEngine with the built-in templates
// pre-registered.
func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{
		templates: make(map[string]*Template),
	}
	e.registerBuiltIn()
	return e
}

func (e *TemplateEngine) registerBuiltIn() {
	builtIn := []Template{
		{
			ID:      "otp-code",
			Name:    "Phone Verification Code",
			Body:    "Your VidaPoint verification code is {{code}}. It expires in {{minutes}} minutes.",
			Channel: ChannelSMS,
		},
		{
			ID:      "appointment-requested",
			Name:    "Appointment Requested",
			Body:    "Hi {{name}}, your {{type}} request for {{date}} at {{time}} was received. The clinic will contact you to confirm.",
			Channel: ChannelSMS,
		},
		{
			ID:      "appointment-reminder",
			Name:    "Appointment Reminder",
			Subject: "Appointment Reminder",
			Body:    "Hi {{name}}, this is a reminder of your {{type}} on {{date}} at {{time}} with {{provider}}.",
			Channel: ChannelEmail,
		},
		{
			ID:      "sharing-request-received",
			Name:    "Record Sharing Request",
			Subject: "{{facility}} is requesting access to your health records",
			Body:    "Hi {{name}}, {{facility}} has requested access to your health records for {{purpose}}. Open VidaPoint to review and respond.",
			Channel: ChannelEmail,
		},
		{
			ID:      "sharing-approved",
			Name:    "Record Sharing Approved",
			Body:    "You approved record access for {{facility}}. Access expires {{expires}}.",
			Channel: ChannelSMS,
		},
	}
	for i := range builtIn {
		t := builtIn[i]
		e.templates[t.ID] = &t
	}
}

// RegisterTemplate adds or replaces a template in the engine.
func (e *TemplateEngine) RegisterTemplate(t Template) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.templates[t.ID] = &t
}

// Render looks up a template by ID and performs {{key}} replacement using the
// supplied data map. Keys present in the template but absent from data are
// left as-is.
func (e *TemplateEngine) Render(templateID string, data map[string]string) (subject, body string, err error) {
	e.mu.RLock()
	t, ok := e.templates[templateID]
	e.mu.RUnlock()
	if !ok {
		return "", "", fmt.Errorf("template %q not found", templateID)
	}

	subject = t.Subject
	body = t.Body
	for k, v := range data {
		placeholder := "{{" + k + "}}"
		subject = strings.ReplaceAll(subject, placeholder, v)
		body = strings.ReplaceAll(body, placeholder, v)
	}
	return subject, body, nil
}

// Channel returns the channel the template delivers on.
func (e *TemplateEngine) Channel(templateID string) (Channel, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	t, ok := e.templates[templateID]
	if !ok {
		return "", false
	}
	return t.Channel, true
}

// ---------------------------------------------------------------------------
// Mock senders (test doubles)
// ---------------------------------------------------------------------------

// EmailCall records a single call to SendEmail.
type EmailCall struct {
	To      string
	Subject string
	Body    string
}

// MockEmailSender is a test double for EmailSender.
type MockEmailSender struct {
	mu         sync.Mutex
	calls      []EmailCall
	ShouldFail bool
	FailError  string
}

// SendEmail records the call and optionally returns an error.
func (m *MockEmailSender) SendEmail(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, EmailCall{To: to, Subject: subject, Body: body})
	if m.ShouldFail {
		return errors.New(m.FailError)
	}
	return nil
}

// Calls returns a copy of recorded email calls.
func (m *MockEmailSender) Calls() []EmailCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]EmailCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// SMSCall records a single call to SendSMS.
type SMSCall struct {
	To   string
	Body string
}

// MockSMSSender is a test double for SMSSender.
type MockSMSSender struct {
	mu         sync.Mutex
	calls      []SMSCall
	ShouldFail bool
	FailError  string
}

// SendSMS records the call and optionally returns an error.
func (m *MockSMSSender) SendSMS(_ context.Context, to, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, SMSCall{To: to, Body: body})
	if m.ShouldFail {
		return errors.New(m.FailError)
	}
	return nil
}

// Calls returns a copy of recorded SMS calls.
func (m *MockSMSSender) Calls() []SMSCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SMSCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// ---------------------------------------------------------------------------
// Dispatcher
// ---------------------------------------------------------------------------

// Dispatcher orchestrates sending, storage, and retry of outbound messages.
type Dispatcher struct {
	emailSender EmailSender
	smsSender   SMSSender
	templates   *TemplateEngine
	mu          sync.RWMutex
	messages    map[string]*Message
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(email EmailSender, sms SMSSender, tpl *TemplateEngine) *Dispatcher {
	return &Dispatcher{
		emailSender: email,
		smsSender:   sms,
		templates:   tpl,
		messages:    make(map[string]*Message),
	}
}

// Send dispatches a message through the appropriate channel, assigns an ID
// and timestamps, and records the result in memory.
func (d *Dispatcher) Send(ctx context.Context, m *Message) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.CreatedAt = time.Now().UTC()
	m.Status = "pending"

	sendErr := d.deliver(ctx, m)
	if sendErr != nil {
		m.Status = "failed"
		m.Error = sendErr.Error()
	} else {
		m.Status = "sent"
		sentAt := time.Now().UTC()
		m.SentAt = &sentAt
	}

	d.mu.Lock()
	d.messages[m.ID] = m
	d.mu.Unlock()

	return sendErr
}

func (d *Dispatcher) deliver(ctx context.Context, m *Message) error {
	switch m.Channel {
	case ChannelEmail:
		return d.emailSender.SendEmail(ctx, m.Recipient, m.Subject, m.Body)
	case ChannelSMS:
		return d.smsSender.SendSMS(ctx, m.Recipient, m.Body)
	default:
		return fmt.Errorf("unsupported channel: %s", m.Channel)
	}
}

// SendFromTemplate renders a template and sends the resulting message.
func (d *Dispatcher) SendFromTemplate(ctx context.Context, templateID string, data map[string]string, recipient string) (*Message, error) {
	subject, body, err := d.templates.Render(templateID, data)
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	channel, _ := d.templates.Channel(templateID)
	m := &Message{
		Channel:      channel,
		Recipient:    recipient,
		Subject:      subject,
		Body:         body,
		TemplateID:   templateID,
		TemplateData: data,
	}

	if err := d.Send(ctx, m); err != nil {
		return m, err
	}
	return m, nil
}

// Get retrieves a delivery record by ID.
func (d *Dispatcher) Get(id string) (*Message, error) {
	d.mu.RLock()
	m, ok := d.messages[id]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("message %q not found", id)
	}
	return m, nil
}

// Retry re-sends a failed message. Returns an error if the message is not in
// "failed" status.
func (d *Dispatcher) Retry(ctx context.Context, id string) error {
	d.mu.RLock()
	m, ok := d.messages[id]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("message %q not found", id)
	}
	if m.Status != "failed" {
		return fmt.Errorf("message %q is not in failed status (current: %s)", id, m.Status)
	}

	sendErr := d.deliver(ctx, m)

	d.mu.Lock()
	if sendErr != nil {
		m.Status = "failed"
		m.Error = sendErr.Error()
	} else {
		m.Status = "sent"
		sentAt := time.Now().UTC()
		m.SentAt = &sentAt
		m.Error = ""
	}
	d.mu.Unlock()

	return sendErr
}

// Stats returns counts of delivery records grouped by status.
func (d *Dispatcher) Stats() map[string]int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	stats := make(map[string]int)
	for _, m := range d.messages {
		stats[m.Status]++
	}
	return stats
}
