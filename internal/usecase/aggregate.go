package usecase

import (
	"math"

	"github.com/xavierca1/ligue-csr/internal/entity"
)

type Summary struct {
	Total                  int                   `json:"total"`
	PerStatus              map[entity.Status]int `json:"per_status"`
	FollowUpCompletionRate int                   `json:"follow_up_completion_rate"`
}

// Summarize counts leads per status and the share of completed follow-ups
// across every lead it receives. Callers scope the input themselves.
func Summarize(leads []entity.Lead) Summary {
	perStatus := make(map[entity.Status]int, len(entity.AllStatuses))
	for _, s := range entity.AllStatuses {
		perStatus[s] = 0
	}

	for _, lead := range leads {
		if _, ok := perStatus[lead.Status]; ok {
			perStatus[lead.Status]++
		}
	}

	return Summary{
		Total:                  len(leads),
		PerStatus:              perStatus,
		FollowUpCompletionRate: FollowUpCompletionRate(leads),
	}
}

func FollowUpCompletionRate(leads []entity.Lead) int {
	total, completed := 0, 0
	for _, lead := range leads {
		total += len(lead.FollowUpSchedule)
		completed += lead.CompletedFollowUps()
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}
