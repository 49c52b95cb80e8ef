package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/ligue-csr/internal/entity"
)

const leadColumns = `id, lead_name, contact_number, company_name, service_interested, status,
	date_of_contact, assigned_csr, callback_time, notes, email_sent_date, email_confirmed,
	created_at, created_by, follow_up_schedule`

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) (string, error) {
	schedule, err := encodeSchedule(lead.FollowUpSchedule)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	query := `INSERT INTO csr_leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err = r.DB.ExecContext(ctx, query,
		id,
		lead.LeadName,
		lead.ContactNumber,
		lead.CompanyName,
		lead.ServiceInterested,
		string(lead.Status),
		nullDate(&lead.DateOfContact),
		lead.AssignedCSR,
		nullTime(lead.CallbackTime),
		lead.Notes,
		nullDate(lead.EmailSentDate),
		lead.EmailConfirmed,
		lead.CreatedAt,
		lead.CreatedBy,
		schedule,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert lead: %w", err)
	}
	return id, nil
}

func (r *LeadRepository) Update(ctx context.Context, id string, patch entity.LeadPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	var sets []string
	var args []interface{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Status != nil {
		add("status", string(*patch.Status))
	}
	if patch.Notes != nil {
		add("notes", *patch.Notes)
	}
	if patch.FollowUpSchedule != nil {
		schedule, err := encodeSchedule(patch.FollowUpSchedule)
		if err != nil {
			return err
		}
		add("follow_up_schedule", schedule)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE csr_leads SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}
	return expectOneRow(res)
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM csr_leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	return expectOneRow(res)
}

func (r *LeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+leadColumns+` FROM csr_leads ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]entity.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leads: %w", err)
	}
	return leads, nil
}

func scanLead(rows *sql.Rows) (entity.Lead, error) {
	var (
		lead          entity.Lead
		status        string
		dateOfContact sql.NullTime
		callback      sql.NullTime
		emailSent     sql.NullTime
		schedule      []byte
	)

	err := rows.Scan(
		&lead.ID,
		&lead.LeadName,
		&lead.ContactNumber,
		&lead.CompanyName,
		&lead.ServiceInterested,
		&status,
		&dateOfContact,
		&lead.AssignedCSR,
		&callback,
		&lead.Notes,
		&emailSent,
		&lead.EmailConfirmed,
		&lead.CreatedAt,
		&lead.CreatedBy,
		&schedule,
	)
	if err != nil {
		return entity.Lead{}, fmt.Errorf("failed to scan lead: %w", err)
	}

	lead.Status = entity.Status(status)
	if dateOfContact.Valid {
		lead.DateOfContact = localDate(dateOfContact.Time)
	}
	if callback.Valid {
		t := callback.Time.Local()
		lead.CallbackTime = &t
	}
	if emailSent.Valid {
		t := localDate(emailSent.Time)
		lead.EmailSentDate = &t
	}

	lead.FollowUpSchedule = []entity.FollowUpEntry{}
	if len(schedule) > 0 {
		if err := json.Unmarshal(schedule, &lead.FollowUpSchedule); err != nil {
			return entity.Lead{}, fmt.Errorf("failed to decode follow-up schedule of lead %s: %w", lead.ID, err)
		}
	}
	return lead, nil
}

func encodeSchedule(schedule []entity.FollowUpEntry) ([]byte, error) {
	if schedule == nil {
		schedule = []entity.FollowUpEntry{}
	}
	raw, err := json.Marshal(schedule)
	if err != nil {
		return nil, fmt.Errorf("failed to encode follow-up schedule: %w", err)
	}
	return raw, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

// DATE columns carry no zone; read them back as local calendar days.
func localDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

func nullDate(t *time.Time) interface{} {
	if t == nil || t.IsZero() {
		return nil
	}
	return t.Format("2006-01-02")
}

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
