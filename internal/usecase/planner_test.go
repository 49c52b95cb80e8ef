package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-csr/internal/entity"
)

func at(y int, m time.Month, d, h, min int) *time.Time {
	t := time.Date(y, m, d, h, min, 0, 0, time.UTC)
	return &t
}

func TestPlanPendingFollowUps(t *testing.T) {
	leads := []entity.Lead{
		{
			ID: "a", LeadName: "Ana",
			FollowUpSchedule: []entity.FollowUpEntry{
				{DueDate: day(2026, 10, 12), Completed: true},
				{DueDate: day(2026, 10, 14)},
				{DueDate: day(2026, 10, 19)},
				{DueDate: day(2026, 10, 20)},
			},
		},
		{ID: "b", LeadName: "Bo", CallbackTime: at(2026, 10, 16, 15, 0)},
		{ID: "c", LeadName: "Cy", CallbackTime: at(2026, 10, 17, 0, 0)},
		{ID: "d", LeadName: "Di", CallbackTime: at(2026, 10, 17, 0, 1)},
		{ID: "e", LeadName: "Ed", CallbackTime: at(2026, 10, 15, 18, 0)},
	}

	items := PlanPendingFollowUps(leads, testNow)

	require.Len(t, items, 4)
	assert.Equal(t, "a", items[0].LeadID)
	assert.Equal(t, 1, *items[0].FollowUpIndex)
	assert.True(t, items[0].IsOverdue(testNow))

	assert.Equal(t, "b", items[1].LeadID)
	assert.True(t, items[1].IsCallback)
	assert.Nil(t, items[1].FollowUpIndex)
	assert.False(t, items[1].IsOverdue(testNow))

	assert.Equal(t, "c", items[2].LeadID)
	assert.Equal(t, "a", items[3].LeadID)
	assert.Equal(t, 2, *items[3].FollowUpIndex)
}

func TestPlanPendingFollowUps_CapAndOrder(t *testing.T) {
	schedule := make([]entity.FollowUpEntry, 0, 12)
	for i := 12; i >= 1; i-- {
		schedule = append(schedule, entity.FollowUpEntry{DueDate: day(2026, 9, i)})
	}
	items := PlanPendingFollowUps([]entity.Lead{{ID: "x", FollowUpSchedule: schedule}}, testNow)

	require.Len(t, items, MaxPendingItems)
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].DueDate.Before(items[i-1].DueDate))
	}
	assert.Equal(t, 1, items[0].DueDate.Day())
}

func TestCollectPendingFollowUps_Uncapped(t *testing.T) {
	schedule := make([]entity.FollowUpEntry, 0, 12)
	for i := 12; i >= 1; i-- {
		schedule = append(schedule, entity.FollowUpEntry{DueDate: day(2026, 9, i)})
	}
	leads := []entity.Lead{{ID: "x", FollowUpSchedule: schedule}}

	items := CollectPendingFollowUps(leads, testNow)

	require.Len(t, items, 12)
	assert.Equal(t, 1, items[0].DueDate.Day())
	assert.Equal(t, 12, items[11].DueDate.Day())
	assert.Equal(t, items[:MaxPendingItems], PlanPendingFollowUps(leads, testNow))
}

func TestPlanPendingFollowUps_StableForEqualDates(t *testing.T) {
	leads := []entity.Lead{
		{ID: "first", FollowUpSchedule: []entity.FollowUpEntry{{DueDate: day(2026, 10, 16)}}},
		{ID: "second", FollowUpSchedule: []entity.FollowUpEntry{{DueDate: day(2026, 10, 16)}}},
	}

	items := PlanPendingFollowUps(leads, testNow)

	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].LeadID)
	assert.Equal(t, "second", items[1].LeadID)
}

func TestPlanPendingFollowUps_NothingDue(t *testing.T) {
	leads := []entity.Lead{
		{ID: "a", FollowUpSchedule: entity.NewFollowUpSchedule(day(2026, 10, 16))},
		{ID: "b", Status: entity.StatusInterested},
	}

	items := PlanPendingFollowUps(leads, day(2026, 10, 1))
	assert.Empty(t, items)
	assert.NotNil(t, items)
}
