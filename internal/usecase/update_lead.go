package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xavierca1/ligue-csr/internal/entity"
	"github.com/xavierca1/ligue-csr/internal/infra/queue"
	"github.com/xavierca1/ligue-csr/internal/logger"
)

// UpdateLeadStatusUseCase changes the status only. Moving a lead into Email
// Sent here does not create a follow-up schedule.
type UpdateLeadStatusUseCase struct {
	Repo     entity.LeadRepositoryInterface
	Snapshot *SnapshotLoader
	Logger   logger.Logger
}

func NewUpdateLeadStatusUseCase(repo entity.LeadRepositoryInterface, snapshot *SnapshotLoader, log logger.Logger) *UpdateLeadStatusUseCase {
	return &UpdateLeadStatusUseCase{Repo: repo, Snapshot: snapshot, Logger: log}
}

func (uc *UpdateLeadStatusUseCase) Execute(ctx context.Context, input UpdateStatusInput) (entity.Status, error) {
	status, err := ParseStatusChoice(input.Status)
	if err != nil {
		return "", err
	}

	if err := uc.Repo.Update(ctx, input.LeadID, entity.LeadPatch{Status: &status}); err != nil {
		uc.Logger.Error("error updating lead", map[string]interface{}{"lead_id": input.LeadID, "error": err.Error()})
		return "", persistenceError("update", err)
	}

	uc.Snapshot.Invalidate(ctx)
	return status, nil
}

type UpdateLeadNotesUseCase struct {
	Repo     entity.LeadRepositoryInterface
	Snapshot *SnapshotLoader
	Logger   logger.Logger
}

func NewUpdateLeadNotesUseCase(repo entity.LeadRepositoryInterface, snapshot *SnapshotLoader, log logger.Logger) *UpdateLeadNotesUseCase {
	return &UpdateLeadNotesUseCase{Repo: repo, Snapshot: snapshot, Logger: log}
}

func (uc *UpdateLeadNotesUseCase) Execute(ctx context.Context, input UpdateNotesInput) error {
	notes := input.Notes
	if err := uc.Repo.Update(ctx, input.LeadID, entity.LeadPatch{Notes: &notes}); err != nil {
		uc.Logger.Error("error updating lead notes", map[string]interface{}{"lead_id": input.LeadID, "error": err.Error()})
		return persistenceError("update", err)
	}

	uc.Snapshot.Invalidate(ctx)
	return nil
}

// MarkFollowUpCompleteUseCase writes the completed flag into the cached
// snapshot before the repository confirms it. If the write fails the
// snapshot is dropped so the next read comes from the repository.
type MarkFollowUpCompleteUseCase struct {
	Repo      entity.LeadRepositoryInterface
	Snapshot  *SnapshotLoader
	Publisher LeadEventPublisher
	Logger    logger.Logger
	Now       Clock
}

func NewMarkFollowUpCompleteUseCase(
	repo entity.LeadRepositoryInterface,
	snapshot *SnapshotLoader,
	publisher LeadEventPublisher,
	log logger.Logger,
) *MarkFollowUpCompleteUseCase {
	return &MarkFollowUpCompleteUseCase{
		Repo:      repo,
		Snapshot:  snapshot,
		Publisher: publisher,
		Logger:    log,
		Now:       time.Now,
	}
}

func (uc *MarkFollowUpCompleteUseCase) Execute(ctx context.Context, input MarkFollowUpCompleteInput) error {
	leads, err := uc.Snapshot.Load(ctx)
	if err != nil {
		return err
	}

	pos, ok := findLead(leads, input.LeadID)
	if !ok {
		return leadNotFound(input.LeadID)
	}

	updated := leads[pos].Clone()
	if err := updated.MarkFollowUpComplete(input.Index); err != nil {
		if errors.Is(err, entity.ErrFollowUpIndexOutOfRange) {
			return &DomainError{
				Code:    CodeInvalidFollowUpIndex,
				Message: fmt.Sprintf("follow-up index %d out of range for lead %s (%d entries)", input.Index, input.LeadID, len(updated.FollowUpSchedule)),
			}
		}
		return err
	}

	next := make([]entity.Lead, len(leads))
	copy(next, leads)
	next[pos] = updated

	tx := NewTransaction(uc.Logger)
	tx.AddStep("snapshot",
		func(ctx context.Context) error {
			uc.Snapshot.Store(ctx, next)
			return nil
		},
		func(ctx context.Context) error {
			uc.Snapshot.Invalidate(ctx)
			return nil
		},
	)
	tx.AddStep("persist",
		func(ctx context.Context) error {
			return uc.Repo.Update(ctx, input.LeadID, entity.LeadPatch{FollowUpSchedule: updated.FollowUpSchedule})
		},
		nil,
	)

	if err := tx.Execute(ctx); err != nil {
		uc.Logger.Error("error marking follow-up complete", map[string]interface{}{
			"lead_id": input.LeadID,
			"index":   input.Index,
			"error":   err.Error(),
		})
		return persistenceError("update", err)
	}

	if uc.Publisher != nil {
		payload := queue.LeadEventPayload{
			Event:         queue.EventFollowUpCompleted,
			LeadID:        updated.ID,
			LeadName:      updated.LeadName,
			CompanyName:   updated.CompanyName,
			Status:        string(updated.Status),
			AssignedCSR:   updated.AssignedCSR,
			FollowUpIndex: &input.Index,
			OccurredAt:    uc.Now(),
		}
		if err := uc.Publisher.PublishLeadEvent(ctx, payload); err != nil {
			uc.Logger.Warn("follow-up stored but event was not published", map[string]interface{}{"lead_id": updated.ID, "error": err.Error()})
		}
	}
	return nil
}

type DeleteLeadUseCase struct {
	Repo     entity.LeadRepositoryInterface
	Snapshot *SnapshotLoader
	Logger   logger.Logger
}

func NewDeleteLeadUseCase(repo entity.LeadRepositoryInterface, snapshot *SnapshotLoader, log logger.Logger) *DeleteLeadUseCase {
	return &DeleteLeadUseCase{Repo: repo, Snapshot: snapshot, Logger: log}
}

func (uc *DeleteLeadUseCase) Execute(ctx context.Context, leadID string) error {
	if err := uc.Repo.Delete(ctx, leadID); err != nil {
		uc.Logger.Error("error deleting lead", map[string]interface{}{"lead_id": leadID, "error": err.Error()})
		return persistenceError("delete", err)
	}

	uc.Snapshot.Invalidate(ctx)
	return nil
}
