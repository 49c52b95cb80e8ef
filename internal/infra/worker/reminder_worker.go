package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/xavierca1/ligue-csr/internal/entity"
	"github.com/xavierca1/ligue-csr/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-csr/internal/infra/queue"
	"github.com/xavierca1/ligue-csr/internal/logger"
	"github.com/xavierca1/ligue-csr/internal/usecase"
)

type PendingSource interface {
	Pending(ctx context.Context) ([]usecase.PendingItem, time.Time, error)
}

type ReminderPublisher interface {
	PublishReminder(ctx context.Context, payload queue.ReminderPayload) error
}

type Deduper interface {
	FirstSeen(ctx context.Context, key string) (bool, error)
}

// FollowUpReminderWorker queues one reminder per pending item that is due
// today or overdue. Items further out are left for a later tick.
type FollowUpReminderWorker struct {
	source       PendingSource
	publisher    ReminderPublisher
	deduper      Deduper
	logger       logger.Logger
	tickInterval time.Duration
}

func NewFollowUpReminderWorker(
	source PendingSource,
	publisher ReminderPublisher,
	deduper Deduper,
	log logger.Logger,
	tickInterval time.Duration,
) *FollowUpReminderWorker {
	return &FollowUpReminderWorker{
		source:       source,
		publisher:    publisher,
		deduper:      deduper,
		logger:       log,
		tickInterval: tickInterval,
	}
}

func (w *FollowUpReminderWorker) Start(ctx context.Context) {
	w.logger.Info("follow-up reminder worker started", map[string]interface{}{"interval": w.tickInterval.String()})

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("follow-up reminder worker stopped", nil)
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *FollowUpReminderWorker) tick(ctx context.Context) {
	published, err := w.RunOnce(ctx)
	if err != nil {
		w.logger.Error("reminder run failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if published > 0 {
		w.logger.Info("reminders queued", map[string]interface{}{"count": published})
	}
}

// RunOnce publishes reminders for the current pending list and returns how
// many were queued.
func (w *FollowUpReminderWorker) RunOnce(ctx context.Context) (int, error) {
	items, asOf, err := w.source.Pending(ctx)
	if err != nil {
		return 0, err
	}
	today := entity.DateOnly(asOf)

	published := 0
	for _, item := range items {
		if entity.DateOnly(item.DueDate).After(today) {
			continue
		}

		key := reminderKey(item)
		first, err := w.deduper.FirstSeen(ctx, key)
		if err != nil {
			w.logger.Warn("reminder dedupe unavailable, publishing anyway", map[string]interface{}{"key": key, "error": err.Error()})
			first = true
		}
		if !first {
			continue
		}

		payload := queue.ReminderPayload{
			LeadID:        item.LeadID,
			LeadName:      item.LeadName,
			CompanyName:   item.CompanyName,
			AssignedCSR:   item.AssignedCSR,
			DueDate:       item.DueDate,
			IsCallback:    item.IsCallback,
			FollowUpIndex: item.FollowUpIndex,
			Overdue:       item.IsOverdue(asOf),
		}
		if err := w.publisher.PublishReminder(ctx, payload); err != nil {
			w.logger.Error("failed to publish reminder", map[string]interface{}{"lead_id": item.LeadID, "error": err.Error()})
			continue
		}

		middleware.RecordReminderPublished()
		published++
	}
	return published, nil
}

func reminderKey(item usecase.PendingItem) string {
	slot := "cb"
	if item.FollowUpIndex != nil {
		slot = fmt.Sprintf("%d", *item.FollowUpIndex)
	}
	return fmt.Sprintf("%s:%s:%s", item.LeadID, slot, item.DueDate.Format("2006-01-02"))
}
