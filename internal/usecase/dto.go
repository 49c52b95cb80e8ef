package usecase

import (
	"time"

	"github.com/xavierca1/ligue-csr/internal/entity"
)

// Actor is the signed-in CSR as reported by the auth layer.
type Actor struct {
	UserID string
	Email  string
}

type CreateLeadInput struct {
	LeadName          string `json:"lead_name"`
	ContactNumber     string `json:"contact_number"`
	CompanyName       string `json:"company_name"`
	ServiceInterested string `json:"service_interested"`
	Status            string `json:"status"`
	DateOfContact     string `json:"date_of_contact"` // YYYY-MM-DD, defaults to today
	AssignedCSR       string `json:"assigned_csr"`
	CallbackTime      string `json:"callback_time"` // YYYY-MM-DDTHH:MM
	Notes             string `json:"notes"`

	// Only read when Status is Email Sent.
	EmailSentDate  string `json:"email_sent_date"`
	EmailConfirmed string `json:"email_confirmed"`

	Actor Actor `json:"-"`
}

type CreateLeadOutput struct {
	ID               string                 `json:"id"`
	Status           entity.Status          `json:"status"`
	FollowUpSchedule []entity.FollowUpEntry `json:"follow_up_schedule"`
	Msg              string                 `json:"msg"`
}

type UpdateStatusInput struct {
	LeadID string `json:"-"`
	Status string `json:"status"`
}

type UpdateNotesInput struct {
	LeadID string `json:"-"`
	Notes  string `json:"notes"`
}

type MarkFollowUpCompleteInput struct {
	LeadID string
	Index  int
}

type ListLeadsInput struct {
	SearchTerm string
	Status     string
	Window     string
}

type FollowUpView struct {
	CadenceDay int       `json:"cadence_day"`
	DueDate    time.Time `json:"due_date"`
	Completed  bool      `json:"completed"`
}

type LeadDetailOutput struct {
	entity.Lead
	Schedule []FollowUpView `json:"schedule"`
}

type DashboardOutput struct {
	Month   string        `json:"month"`
	Stats   Summary       `json:"stats"`
	Pending []PendingView `json:"pending"`
}

type PendingView struct {
	PendingItem
	Overdue bool `json:"overdue"`
}

type MonthlyReportOutput struct {
	Period      string        `json:"period"`
	GeneratedAt time.Time     `json:"generated_at"`
	Summary     Summary       `json:"summary"`
	Leads       []entity.Lead `json:"-"`
}
