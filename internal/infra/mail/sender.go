package mail

import (
	"bytes"
	"context"
	"fmt"
	"net/mail"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ligue-csr/internal/entity"
	"github.com/xavierca1/ligue-csr/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-csr/internal/infra/queue"
	"github.com/xavierca1/ligue-csr/internal/logger"
)

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

var reminderTemplate = template.Must(template.New("reminder").Parse(`Hi {{.CSR}},

{{.Kind}} due for {{.LeadName}} ({{.CompanyName}}) on {{.DueDate}}{{if .Overdue}} - OVERDUE{{end}}.
{{- if .CadenceDay}}
This is the day {{.CadenceDay}} follow-up after the email was sent.
{{- end}}

Mark it complete on the CSR dashboard once done.
`))

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		dialer:   gomail.NewDialer(host, port, user, password),
	}
}

// WithDialer swaps the SMTP transport, mainly for tests.
func (s *EmailSender) WithDialer(d Dialer) *EmailSender {
	s.dialer = d
	return s
}

func (s *EmailSender) BuildReminder(payload queue.ReminderPayload) (*gomail.Message, error) {
	data := ReminderEmailData{
		CSR:         payload.AssignedCSR,
		LeadName:    payload.LeadName,
		CompanyName: payload.CompanyName,
		Kind:        "Follow-up",
		DueDate:     payload.DueDate.Format("Jan 2, 2006"),
		Overdue:     payload.Overdue,
	}
	if payload.IsCallback {
		data.Kind = "Callback"
		data.DueDate = payload.DueDate.Format("Jan 2, 2006, 03:04 PM")
	}
	if payload.FollowUpIndex != nil && *payload.FollowUpIndex >= 0 && *payload.FollowUpIndex < len(entity.FollowUpCadence) {
		data.CadenceDay = entity.FollowUpCadence[*payload.FollowUpIndex]
	}

	var body bytes.Buffer
	if err := reminderTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to render reminder template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", payload.AssignedCSR)
	m.SetHeader("Subject", fmt.Sprintf("%s reminder: %s - %s", data.Kind, payload.LeadName, payload.CompanyName))
	m.SetBody("text/plain", body.String())
	return m, nil
}

// ReminderNotifier adapts EmailSender to the queue worker. Leads assigned to
// something that is not an email address are skipped.
type ReminderNotifier struct {
	Sender *EmailSender
	Logger logger.Logger
}

func NewReminderNotifier(sender *EmailSender, log logger.Logger) *ReminderNotifier {
	return &ReminderNotifier{Sender: sender, Logger: log}
}

func (n *ReminderNotifier) SendReminder(ctx context.Context, payload queue.ReminderPayload) error {
	if _, err := mail.ParseAddress(payload.AssignedCSR); err != nil {
		n.Logger.Warn("skipping reminder, assigned CSR has no email", map[string]interface{}{
			"lead_id": payload.LeadID,
			"csr":     payload.AssignedCSR,
		})
		middleware.RecordReminderSent("skipped")
		return nil
	}

	m, err := n.Sender.BuildReminder(payload)
	if err != nil {
		middleware.RecordReminderSent("failed")
		return err
	}
	if err := n.Sender.dialer.DialAndSend(m); err != nil {
		middleware.RecordReminderSent("failed")
		return fmt.Errorf("failed to send SMTP reminder: %w", err)
	}
	middleware.RecordReminderSent("sent")
	return nil
}
