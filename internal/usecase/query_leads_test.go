package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-csr/internal/entity"
	"github.com/xavierca1/ligue-csr/internal/logger"
)

func TestSnapshotLoader_CacheHit(t *testing.T) {
	repo := new(MockLeadRepository)
	cache := &memoryCache{leads: storedLeads(), present: true}

	leads, err := NewSnapshotLoader(repo, cache, logger.NewTestLogger(t)).Load(context.Background())

	require.NoError(t, err)
	assert.Len(t, leads, 2)
	repo.AssertNotCalled(t, "List", mock.Anything)
}

func TestSnapshotLoader_MissAndCacheErrorFallBack(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything).Return(storedLeads(), nil)

	miss := &memoryCache{}
	leads, err := NewSnapshotLoader(repo, miss, logger.NewTestLogger(t)).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, leads, 2)
	assert.Equal(t, 1, miss.sets)

	broken := &memoryCache{getErr: errBoom}
	leads, err = NewSnapshotLoader(repo, broken, logger.NewTestLogger(t)).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, leads, 2)
}

func TestSnapshotLoader_RepositoryFailure(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything).Return(nil, errBoom)

	_, err := NewSnapshotLoader(repo, nil, logger.NewTestLogger(t)).Load(context.Background())

	assert.Equal(t, CodePersistence, ErrorCode(err))
}

func newSnapshot(t *testing.T, leads []entity.Lead) *SnapshotLoader {
	t.Helper()
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything).Return(leads, nil)
	return NewSnapshotLoader(repo, nil, logger.NewTestLogger(t))
}

func TestGetLead(t *testing.T) {
	uc := NewGetLeadUseCase(newSnapshot(t, storedLeads()))

	out, err := uc.Execute(context.Background(), "lead-1")
	require.NoError(t, err)
	require.Len(t, out.Schedule, 5)
	for i, v := range out.Schedule {
		assert.Equal(t, entity.FollowUpCadence[i], v.CadenceDay)
	}

	_, err = uc.Execute(context.Background(), "ghost")
	assert.Equal(t, CodeLeadNotFound, ErrorCode(err))
}

func TestListLeads(t *testing.T) {
	uc := NewListLeadsUseCase(newSnapshot(t, storedLeads()))
	uc.Now = fixedClock

	leads, err := uc.Execute(context.Background(), ListLeadsInput{Status: "Email Sent"})
	require.NoError(t, err)
	assert.Equal(t, []string{"lead-1"}, ids(leads))

	leads, err = uc.Execute(context.Background(), ListLeadsInput{Window: "month"})
	require.NoError(t, err)
	assert.Equal(t, []string{"lead-1"}, ids(leads))

	_, err = uc.Execute(context.Background(), ListLeadsInput{Status: "Hot"})
	assert.Equal(t, CodeInvalidStatus, ErrorCode(err))
}

func TestDashboard_MonthStatsButAllTimeCompletion(t *testing.T) {
	leads := []entity.Lead{
		{ID: "now", Status: entity.StatusEmailSent, DateOfContact: day(2026, 10, 14), FollowUpSchedule: scheduleWith(5, 0)},
		{ID: "old", Status: entity.StatusLeadClosed, DateOfContact: day(2026, 8, 3), FollowUpSchedule: scheduleWith(5, 5)},
	}
	uc := NewDashboardUseCase(newSnapshot(t, leads))
	uc.Now = fixedClock

	out, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "2026-10", out.Month)
	assert.Equal(t, 1, out.Stats.Total)
	assert.Equal(t, 0, out.Stats.PerStatus[entity.StatusLeadClosed])
	assert.Equal(t, 50, out.Stats.FollowUpCompletionRate)
}

func TestDashboard_PendingViewsFlagOverdue(t *testing.T) {
	leads := []entity.Lead{{
		ID: "a", Status: entity.StatusEmailSent,
		FollowUpSchedule: []entity.FollowUpEntry{{DueDate: day(2026, 10, 15)}, {DueDate: day(2026, 10, 16)}},
	}}
	uc := NewDashboardUseCase(newSnapshot(t, leads))
	uc.Now = fixedClock

	out, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Pending, 2)
	assert.True(t, out.Pending[0].Overdue)
	assert.False(t, out.Pending[1].Overdue)

	items, asOf, err := uc.Pending(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, testNow, asOf)
}

func TestDashboard_PendingForRemindersIsUncapped(t *testing.T) {
	leads := make([]entity.Lead, 0, 12)
	for i := 0; i < 12; i++ {
		leads = append(leads, entity.Lead{
			ID:               fmt.Sprintf("lead-%02d", i),
			Status:           entity.StatusEmailSent,
			FollowUpSchedule: []entity.FollowUpEntry{{DueDate: day(2026, 10, 1+i)}},
		})
	}
	uc := NewDashboardUseCase(newSnapshot(t, leads))
	uc.Now = fixedClock

	out, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, out.Pending, MaxPendingItems)

	items, _, err := uc.Pending(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 12)
}

func TestMonthlyReportUseCase(t *testing.T) {
	leads := []entity.Lead{
		{ID: "sep", Status: entity.StatusInterested, DateOfContact: day(2026, 9, 30)},
		{ID: "oct", Status: entity.StatusMeetingSet, DateOfContact: day(2026, 10, 1)},
	}
	uc := NewMonthlyReportUseCase(newSnapshot(t, leads))
	uc.Now = fixedClock
	uc.Location = time.UTC

	out, err := uc.Execute(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "2026-10", out.Period)
	assert.Equal(t, []string{"oct"}, ids(out.Leads))
	assert.Equal(t, testNow, out.GeneratedAt)

	out, err = uc.Execute(context.Background(), "2026-09")
	require.NoError(t, err)
	assert.Equal(t, 1, out.Summary.PerStatus[entity.StatusInterested])

	_, err = uc.Execute(context.Background(), "Sept")
	assert.True(t, IsDomainError(err))
}
