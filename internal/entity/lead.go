package entity

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrLeadNotFound            = errors.New("lead not found")
	ErrFollowUpIndexOutOfRange = errors.New("follow-up index out of range")
)

type Status string

const (
	StatusInterested    Status = "Interested"
	StatusNotInterested Status = "Not Interested"
	StatusFollowUp      Status = "Follow-up"
	StatusEmailSent     Status = "Email Sent"
	StatusLeadClosed    Status = "Lead Closed"
	StatusMeetingSet    Status = "Meeting Set"
)

// AllStatuses keeps the order used by menus and reports.
var AllStatuses = []Status{
	StatusInterested,
	StatusNotInterested,
	StatusFollowUp,
	StatusEmailSent,
	StatusLeadClosed,
	StatusMeetingSet,
}

func (s Status) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type FollowUpEntry struct {
	DueDate   time.Time `json:"due_date"`
	Completed bool      `json:"completed"`
}

type Lead struct {
	ID                string     `json:"id"`
	LeadName          string     `json:"lead_name"`
	ContactNumber     string     `json:"contact_number"`
	CompanyName       string     `json:"company_name"`
	ServiceInterested string     `json:"service_interested"`
	Status            Status     `json:"status"`
	DateOfContact     time.Time  `json:"date_of_contact"`
	AssignedCSR       string     `json:"assigned_csr"`
	CallbackTime      *time.Time `json:"callback_time,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	EmailSentDate     *time.Time `json:"email_sent_date,omitempty"`
	EmailConfirmed    string     `json:"email_confirmed,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	CreatedBy         string     `json:"created_by"`

	FollowUpSchedule []FollowUpEntry `json:"follow_up_schedule"`
}

// NewLead builds a lead ready to be persisted. The follow-up schedule is only
// computed here, when the lead starts as Email Sent with an anchor date.
func NewLead(name, contact, company, service string, status Status, dateOfContact time.Time, assignedCSR, createdBy string) (*Lead, error) {
	lead := &Lead{
		LeadName:          strings.TrimSpace(name),
		ContactNumber:     strings.TrimSpace(contact),
		CompanyName:       strings.TrimSpace(company),
		ServiceInterested: strings.TrimSpace(service),
		Status:            status,
		DateOfContact:     dateOfContact,
		AssignedCSR:       assignedCSR,
		CreatedBy:         createdBy,
		CreatedAt:         time.Now(),
		FollowUpSchedule:  []FollowUpEntry{},
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}
	return lead, nil
}

func (l *Lead) Validate() error {
	if l.LeadName == "" {
		return errors.New("lead_name is required")
	}
	if l.ContactNumber == "" {
		return errors.New("contact_number is required")
	}
	if l.CompanyName == "" {
		return errors.New("company_name is required")
	}
	if l.ServiceInterested == "" {
		return errors.New("service_interested is required")
	}
	if !l.Status.IsValid() {
		return errors.New("status is invalid")
	}
	return nil
}

// RecordEmailSent stores the email milestone and, for Email Sent leads, the
// follow-up schedule anchored on it.
func (l *Lead) RecordEmailSent(sentAt time.Time, confirmed string) {
	if l.Status != StatusEmailSent {
		return
	}
	sent := sentAt
	l.EmailSentDate = &sent
	l.EmailConfirmed = confirmed
	l.FollowUpSchedule = NewFollowUpSchedule(sentAt)
}

// MarkFollowUpComplete flips a single entry to completed. Entries never go back.
func (l *Lead) MarkFollowUpComplete(index int) error {
	if index < 0 || index >= len(l.FollowUpSchedule) {
		return ErrFollowUpIndexOutOfRange
	}
	l.FollowUpSchedule[index].Completed = true
	return nil
}

func (l *Lead) CompletedFollowUps() int {
	n := 0
	for _, e := range l.FollowUpSchedule {
		if e.Completed {
			n++
		}
	}
	return n
}

// Clone returns a copy that shares no slices or pointers with l.
func (l Lead) Clone() Lead {
	out := l
	if l.FollowUpSchedule != nil {
		out.FollowUpSchedule = make([]FollowUpEntry, len(l.FollowUpSchedule))
		copy(out.FollowUpSchedule, l.FollowUpSchedule)
	}
	if l.CallbackTime != nil {
		t := *l.CallbackTime
		out.CallbackTime = &t
	}
	if l.EmailSentDate != nil {
		t := *l.EmailSentDate
		out.EmailSentDate = &t
	}
	return out
}

// LeadPatch carries a targeted update. Nil fields are left untouched.
type LeadPatch struct {
	Status           *Status
	Notes            *string
	FollowUpSchedule []FollowUpEntry
}

func (p LeadPatch) IsEmpty() bool {
	return p.Status == nil && p.Notes == nil && p.FollowUpSchedule == nil
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) (string, error)
	Update(ctx context.Context, id string, patch LeadPatch) error
	Delete(ctx context.Context, id string) error
	// List returns every lead, newest first.
	List(ctx context.Context) ([]Lead, error)
}
