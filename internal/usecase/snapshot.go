package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/ligue-csr/internal/entity"
	"github.com/xavierca1/ligue-csr/internal/logger"
)

// SnapshotLoader serves the lead list to read-side use cases. The slice it
// returns is shared with the cache and must not be mutated; clone a lead
// before changing it.
type SnapshotLoader struct {
	Repo   entity.LeadRepositoryInterface
	Cache  SnapshotCache
	Logger logger.Logger
}

func NewSnapshotLoader(repo entity.LeadRepositoryInterface, cache SnapshotCache, log logger.Logger) *SnapshotLoader {
	return &SnapshotLoader{Repo: repo, Cache: cache, Logger: log}
}

func (s *SnapshotLoader) Load(ctx context.Context) ([]entity.Lead, error) {
	if s.Cache != nil {
		leads, ok, err := s.Cache.Get(ctx)
		if err != nil {
			s.Logger.Warn("snapshot cache read failed, falling back to repository", map[string]interface{}{"error": err.Error()})
		} else if ok {
			return leads, nil
		}
	}

	leads, err := s.Repo.List(ctx)
	if err != nil {
		s.Logger.Error("failed to list leads", map[string]interface{}{"error": err.Error()})
		return nil, &TechnicalError{Code: CodePersistence, Message: "failed to list leads", Err: err}
	}

	s.Store(ctx, leads)
	return leads, nil
}

func (s *SnapshotLoader) Store(ctx context.Context, leads []entity.Lead) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, leads); err != nil {
		s.Logger.Warn("snapshot cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *SnapshotLoader) Invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		s.Logger.Warn("snapshot cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}

func findLead(leads []entity.Lead, id string) (int, bool) {
	for i := range leads {
		if leads[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func persistenceError(op string, err error) error {
	if errors.Is(err, entity.ErrLeadNotFound) {
		return &DomainError{Code: CodeLeadNotFound, Message: entity.ErrLeadNotFound.Error()}
	}
	return &TechnicalError{Code: CodePersistence, Message: "failed to " + op + " lead", Err: err}
}

func leadNotFound(id string) error {
	return &DomainError{Code: CodeLeadNotFound, Message: "lead not found: " + id}
}
