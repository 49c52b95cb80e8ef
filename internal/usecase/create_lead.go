package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/xavierca1/ligue-csr/internal/entity"
	"github.com/xavierca1/ligue-csr/internal/infra/queue"
	"github.com/xavierca1/ligue-csr/internal/logger"
)

type CreateLeadUseCase struct {
	Repo      entity.LeadRepositoryInterface
	Snapshot  *SnapshotLoader
	Publisher LeadEventPublisher
	Logger    logger.Logger
	Now       Clock
	Location  *time.Location
}

func NewCreateLeadUseCase(
	repo entity.LeadRepositoryInterface,
	snapshot *SnapshotLoader,
	publisher LeadEventPublisher,
	log logger.Logger,
) *CreateLeadUseCase {
	return &CreateLeadUseCase{
		Repo:      repo,
		Snapshot:  snapshot,
		Publisher: publisher,
		Logger:    log,
		Now:       time.Now,
		Location:  time.Local,
	}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*CreateLeadOutput, error) {
	if errs := ValidateCreateLeadInput(input); len(errs) > 0 {
		return nil, validationFailure(errs)
	}

	now := uc.Now().In(uc.Location)

	dateOfContact := entity.DateOnly(now)
	if input.DateOfContact != "" {
		dateOfContact, _ = parseDate(input.DateOfContact, uc.Location)
	}

	assigned := strings.TrimSpace(input.AssignedCSR)
	if assigned == "" {
		assigned = input.Actor.Email
	}
	if assigned == "" {
		assigned = "Unknown"
	}
	createdBy := input.Actor.UserID
	if createdBy == "" {
		createdBy = "unknown"
	}

	lead, err := entity.NewLead(
		input.LeadName, input.ContactNumber, input.CompanyName, input.ServiceInterested,
		entity.Status(input.Status), dateOfContact, assigned, createdBy,
	)
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}
	lead.CreatedAt = now
	lead.Notes = strings.TrimSpace(input.Notes)

	if input.CallbackTime != "" {
		cb, _ := parseDateTime(input.CallbackTime, uc.Location)
		lead.CallbackTime = &cb
	}

	if lead.Status == entity.StatusEmailSent && input.EmailSentDate != "" {
		sent, _ := parseDate(input.EmailSentDate, uc.Location)
		lead.RecordEmailSent(sent, input.EmailConfirmed)
	}

	id, err := uc.Repo.Create(ctx, lead)
	if err != nil {
		uc.Logger.Error("error adding lead", map[string]interface{}{"error": err.Error(), "company": lead.CompanyName})
		return nil, &TechnicalError{Code: CodePersistence, Message: "failed to create lead", Err: err}
	}
	lead.ID = id

	uc.Snapshot.Invalidate(ctx)
	uc.publish(ctx, queue.LeadEventPayload{
		Event:       queue.EventLeadCreated,
		LeadID:      lead.ID,
		LeadName:    lead.LeadName,
		CompanyName: lead.CompanyName,
		Status:      string(lead.Status),
		AssignedCSR: lead.AssignedCSR,
		OccurredAt:  now,
	})

	uc.Logger.Info("lead created", map[string]interface{}{
		"lead_id":    lead.ID,
		"status":     lead.Status,
		"follow_ups": len(lead.FollowUpSchedule),
	})

	return &CreateLeadOutput{
		ID:               lead.ID,
		Status:           lead.Status,
		FollowUpSchedule: lead.FollowUpSchedule,
		Msg:              "Lead added successfully!",
	}, nil
}

func (uc *CreateLeadUseCase) publish(ctx context.Context, payload queue.LeadEventPayload) {
	if uc.Publisher == nil {
		return
	}
	if err := uc.Publisher.PublishLeadEvent(ctx, payload); err != nil {
		uc.Logger.Warn("lead stored but event was not published", map[string]interface{}{
			"lead_id": payload.LeadID,
			"event":   payload.Event,
			"error":   err.Error(),
		})
	}
}
