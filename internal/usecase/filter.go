package usecase

import (
	"strings"
	"time"

	"github.com/xavierca1/ligue-csr/internal/entity"
)

type DateWindow string

const (
	WindowAll   DateWindow = "all"
	WindowToday DateWindow = "today"
	WindowWeek  DateWindow = "week"
	WindowMonth DateWindow = "month"
)

// ParseDateWindow falls back to WindowAll for anything it does not know.
func ParseDateWindow(s string) DateWindow {
	switch DateWindow(strings.ToLower(strings.TrimSpace(s))) {
	case WindowToday:
		return WindowToday
	case WindowWeek:
		return WindowWeek
	case WindowMonth:
		return WindowMonth
	default:
		return WindowAll
	}
}

type FilterCriteria struct {
	SearchTerm string
	Status     *entity.Status
	DateWindow DateWindow
}

// FilterLeads keeps the leads matching every criterion, in their original order.
func FilterLeads(leads []entity.Lead, criteria FilterCriteria, now time.Time) []entity.Lead {
	term := strings.ToLower(criteria.SearchTerm)

	out := make([]entity.Lead, 0, len(leads))
	for _, lead := range leads {
		if !matchesSearch(lead, term) {
			continue
		}
		if criteria.Status != nil && lead.Status != *criteria.Status {
			continue
		}
		if !matchesWindow(lead.DateOfContact, criteria.DateWindow, now) {
			continue
		}
		out = append(out, lead)
	}
	return out
}

func matchesSearch(lead entity.Lead, term string) bool {
	if term == "" {
		return true
	}
	for _, field := range []string{lead.LeadName, lead.CompanyName, lead.ContactNumber, lead.ServiceInterested} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func matchesWindow(contact time.Time, window DateWindow, now time.Time) bool {
	if window == "" || window == WindowAll {
		return true
	}
	if contact.IsZero() {
		return false
	}

	switch window {
	case WindowToday:
		start := entity.DateOnly(now)
		return !contact.Before(start) && contact.Before(start.AddDate(0, 0, 1))
	case WindowWeek:
		return !contact.Before(now.AddDate(0, 0, -7))
	case WindowMonth:
		return !contact.Before(monthStart(now))
	}
	return true
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
