package usecase

import (
	"sort"
	"time"

	"github.com/xavierca1/ligue-csr/internal/entity"
)

const (
	MaxPendingItems = 10

	followUpHorizon = 3 * 24 * time.Hour
	callbackHorizon = 24 * time.Hour
)

type PendingItem struct {
	LeadID        string    `json:"lead_id"`
	LeadName      string    `json:"lead_name"`
	CompanyName   string    `json:"company_name"`
	AssignedCSR   string    `json:"assigned_csr,omitempty"`
	DueDate       time.Time `json:"due_date"`
	IsCallback    bool      `json:"is_callback"`
	FollowUpIndex *int      `json:"follow_up_index,omitempty"`
}

func (p PendingItem) IsOverdue(asOf time.Time) bool {
	return p.DueDate.Before(entity.DateOnly(asOf))
}

// PlanPendingFollowUps is the dashboard list: CollectPendingFollowUps capped
// at MaxPendingItems.
func PlanPendingFollowUps(leads []entity.Lead, asOf time.Time) []PendingItem {
	items := CollectPendingFollowUps(leads, asOf)
	if len(items) > MaxPendingItems {
		items = items[:MaxPendingItems]
	}
	return items
}

// CollectPendingFollowUps merges open follow-ups and near callbacks into a
// single list ordered by due date.
func CollectPendingFollowUps(leads []entity.Lead, asOf time.Time) []PendingItem {
	today := entity.DateOnly(asOf)

	items := make([]PendingItem, 0)
	for _, lead := range leads {
		for i, entry := range lead.FollowUpSchedule {
			if entry.Completed {
				continue
			}
			if !entry.DueDate.After(today) || entry.DueDate.Sub(today) <= followUpHorizon {
				idx := i
				items = append(items, newPendingItem(lead, entry.DueDate, &idx))
			}
		}

		if lead.CallbackTime != nil {
			cb := *lead.CallbackTime
			if !cb.Before(today) && cb.Sub(today) <= callbackHorizon {
				items = append(items, newPendingItem(lead, cb, nil))
			}
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DueDate.Before(items[j].DueDate)
	})
	return items
}

func newPendingItem(lead entity.Lead, due time.Time, index *int) PendingItem {
	return PendingItem{
		LeadID:        lead.ID,
		LeadName:      lead.LeadName,
		CompanyName:   lead.CompanyName,
		AssignedCSR:   lead.AssignedCSR,
		DueDate:       due,
		IsCallback:    index == nil,
		FollowUpIndex: index,
	}
}
