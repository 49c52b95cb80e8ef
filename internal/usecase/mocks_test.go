package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-csr/internal/entity"
	"github.com/xavierca1/ligue-csr/internal/infra/queue"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) (string, error) {
	args := m.Called(ctx, lead)
	return args.String(0), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, id string, patch entity.LeadPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	args := m.Called(ctx)
	leads, _ := args.Get(0).([]entity.Lead)
	return leads, args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishLeadEvent(ctx context.Context, payload queue.LeadEventPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// memoryCache is an in-process SnapshotCache that records what happened to it.
type memoryCache struct {
	leads       []entity.Lead
	present     bool
	getErr      error
	sets        int
	invalidated int
}

func (c *memoryCache) Get(context.Context) ([]entity.Lead, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	return c.leads, c.present, nil
}

func (c *memoryCache) Set(_ context.Context, leads []entity.Lead) error {
	c.leads = leads
	c.present = true
	c.sets++
	return nil
}

func (c *memoryCache) Invalidate(context.Context) error {
	c.leads = nil
	c.present = false
	c.invalidated++
	return nil
}

var errBoom = errors.New("boom")

var testNow = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(i int) *int { return &i }
