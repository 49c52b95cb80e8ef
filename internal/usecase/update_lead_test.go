package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-csr/internal/entity"
	"github.com/xavierca1/ligue-csr/internal/infra/queue"
	"github.com/xavierca1/ligue-csr/internal/logger"
)

func storedLeads() []entity.Lead {
	anchor := day(2026, 10, 14)
	return []entity.Lead{
		{ID: "lead-1", LeadName: "Ana", Status: entity.StatusEmailSent, DateOfContact: anchor, FollowUpSchedule: entity.NewFollowUpSchedule(anchor)},
		{ID: "lead-2", LeadName: "Bo", Status: entity.StatusInterested, FollowUpSchedule: []entity.FollowUpEntry{}},
	}
}

func newCompleteUC(t *testing.T, repo *MockLeadRepository, cache *memoryCache, pub *MockPublisher) *MarkFollowUpCompleteUseCase {
	t.Helper()
	log := logger.NewTestLogger(t)
	var publisher LeadEventPublisher
	if pub != nil {
		publisher = pub
	}
	uc := NewMarkFollowUpCompleteUseCase(repo, NewSnapshotLoader(repo, cache, log), publisher, log)
	uc.Now = fixedClock
	return uc
}

func TestMarkFollowUpComplete_UpdatesSnapshotAndStore(t *testing.T) {
	repo := new(MockLeadRepository)
	cache := &memoryCache{leads: storedLeads(), present: true}
	repo.On("Update", mock.Anything, "lead-1", mock.MatchedBy(func(p entity.LeadPatch) bool {
		return p.Status == nil && p.Notes == nil && len(p.FollowUpSchedule) == 5 &&
			p.FollowUpSchedule[1].Completed && !p.FollowUpSchedule[0].Completed
	})).Return(nil)
	pub := new(MockPublisher)
	pub.On("PublishLeadEvent", mock.Anything, mock.MatchedBy(func(p queue.LeadEventPayload) bool {
		return p.Event == queue.EventFollowUpCompleted && *p.FollowUpIndex == 1
	})).Return(nil)

	original := cache.leads
	err := newCompleteUC(t, repo, cache, pub).Execute(context.Background(), MarkFollowUpCompleteInput{LeadID: "lead-1", Index: 1})

	require.NoError(t, err)
	assert.True(t, cache.present)
	assert.True(t, cache.leads[0].FollowUpSchedule[1].Completed)
	assert.False(t, original[0].FollowUpSchedule[1].Completed)
	assert.Equal(t, 0, cache.invalidated)
	repo.AssertNotCalled(t, "List", mock.Anything)
	pub.AssertExpectations(t)
}

func TestMarkFollowUpComplete_StoreFailureDropsSnapshot(t *testing.T) {
	repo := new(MockLeadRepository)
	cache := &memoryCache{leads: storedLeads(), present: true}
	repo.On("Update", mock.Anything, "lead-1", mock.Anything).Return(errBoom)
	pub := new(MockPublisher)

	err := newCompleteUC(t, repo, cache, pub).Execute(context.Background(), MarkFollowUpCompleteInput{LeadID: "lead-1", Index: 0})

	require.Error(t, err)
	assert.Equal(t, CodePersistence, ErrorCode(err))
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 1, cache.invalidated)
	assert.False(t, cache.present)
	pub.AssertNotCalled(t, "PublishLeadEvent", mock.Anything, mock.Anything)
}

func TestMarkFollowUpComplete_AlreadyCompletedIsNoOp(t *testing.T) {
	leads := storedLeads()
	leads[0].FollowUpSchedule[2].Completed = true
	repo := new(MockLeadRepository)
	cache := &memoryCache{leads: leads, present: true}
	repo.On("Update", mock.Anything, "lead-1", mock.Anything).Return(nil)

	err := newCompleteUC(t, repo, cache, nil).Execute(context.Background(), MarkFollowUpCompleteInput{LeadID: "lead-1", Index: 2})

	require.NoError(t, err)
	assert.Equal(t, 1, cache.leads[0].CompletedFollowUps())
}

func TestMarkFollowUpComplete_InvalidTargets(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything).Return(storedLeads(), nil)
	uc := newCompleteUC(t, repo, &memoryCache{}, nil)

	err := uc.Execute(context.Background(), MarkFollowUpCompleteInput{LeadID: "lead-1", Index: 5})
	assert.Equal(t, CodeInvalidFollowUpIndex, ErrorCode(err))

	err = uc.Execute(context.Background(), MarkFollowUpCompleteInput{LeadID: "lead-1", Index: -1})
	assert.Equal(t, CodeInvalidFollowUpIndex, ErrorCode(err))

	err = uc.Execute(context.Background(), MarkFollowUpCompleteInput{LeadID: "lead-2", Index: 0})
	assert.Equal(t, CodeInvalidFollowUpIndex, ErrorCode(err))

	err = uc.Execute(context.Background(), MarkFollowUpCompleteInput{LeadID: "ghost", Index: 0})
	assert.Equal(t, CodeLeadNotFound, ErrorCode(err))

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateLeadStatus(t *testing.T) {
	repo := new(MockLeadRepository)
	cache := &memoryCache{leads: storedLeads(), present: true}
	meeting := entity.StatusMeetingSet
	repo.On("Update", mock.Anything, "lead-2", entity.LeadPatch{Status: &meeting}).Return(nil)
	log := logger.NewTestLogger(t)
	uc := NewUpdateLeadStatusUseCase(repo, NewSnapshotLoader(repo, cache, log), log)

	status, err := uc.Execute(context.Background(), UpdateStatusInput{LeadID: "lead-2", Status: "6"})

	require.NoError(t, err)
	assert.Equal(t, entity.StatusMeetingSet, status)
	assert.Equal(t, 1, cache.invalidated)
}

func TestUpdateLeadStatus_EmailSentDoesNotBuildSchedule(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Update", mock.Anything, "lead-2", mock.MatchedBy(func(p entity.LeadPatch) bool {
		return p.Status != nil && *p.Status == entity.StatusEmailSent && p.FollowUpSchedule == nil
	})).Return(nil)
	log := logger.NewTestLogger(t)
	uc := NewUpdateLeadStatusUseCase(repo, NewSnapshotLoader(repo, nil, log), log)

	_, err := uc.Execute(context.Background(), UpdateStatusInput{LeadID: "lead-2", Status: "Email Sent"})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateLeadStatus_Errors(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Update", mock.Anything, "ghost", mock.Anything).Return(entity.ErrLeadNotFound)
	repo.On("Update", mock.Anything, "lead-1", mock.Anything).Return(errBoom)
	log := logger.NewTestLogger(t)
	uc := NewUpdateLeadStatusUseCase(repo, NewSnapshotLoader(repo, nil, log), log)

	_, err := uc.Execute(context.Background(), UpdateStatusInput{LeadID: "lead-1", Status: "nope"})
	assert.Equal(t, CodeInvalidStatus, ErrorCode(err))

	_, err = uc.Execute(context.Background(), UpdateStatusInput{LeadID: "ghost", Status: "1"})
	assert.Equal(t, CodeLeadNotFound, ErrorCode(err))

	_, err = uc.Execute(context.Background(), UpdateStatusInput{LeadID: "lead-1", Status: "1"})
	assert.Equal(t, CodePersistence, ErrorCode(err))
}

func TestUpdateLeadNotesAndDelete(t *testing.T) {
	repo := new(MockLeadRepository)
	cache := &memoryCache{leads: storedLeads(), present: true}
	notes := ""
	repo.On("Update", mock.Anything, "lead-1", entity.LeadPatch{Notes: &notes}).Return(nil)
	repo.On("Delete", mock.Anything, "lead-1").Return(nil)
	repo.On("Delete", mock.Anything, "ghost").Return(entity.ErrLeadNotFound)
	log := logger.NewTestLogger(t)
	snapshot := NewSnapshotLoader(repo, cache, log)

	require.NoError(t, NewUpdateLeadNotesUseCase(repo, snapshot, log).Execute(context.Background(), UpdateNotesInput{LeadID: "lead-1"}))

	del := NewDeleteLeadUseCase(repo, snapshot, log)
	require.NoError(t, del.Execute(context.Background(), "lead-1"))
	assert.Equal(t, CodeLeadNotFound, ErrorCode(del.Execute(context.Background(), "ghost")))
	assert.Equal(t, 2, cache.invalidated)
}
