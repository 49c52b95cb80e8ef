package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-csr/internal/entity"
	"github.com/xavierca1/ligue-csr/internal/infra/queue"
)

// SnapshotCache holds the last lead list read from the repository.
type SnapshotCache interface {
	Get(ctx context.Context) ([]entity.Lead, bool, error)
	Set(ctx context.Context, leads []entity.Lead) error
	Invalidate(ctx context.Context) error
}

type LeadEventPublisher interface {
	PublishLeadEvent(ctx context.Context, payload queue.LeadEventPayload) error
}

type Clock func() time.Time
