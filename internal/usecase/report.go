package usecase

import (
	"fmt"
	"time"

	"github.com/xavierca1/ligue-csr/internal/entity"
)

type YearMonth struct {
	Year  int
	Month time.Month
}

func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, &DomainError{Code: "INVALID_MONTH", Message: fmt.Sprintf("month must be YYYY-MM, got %q", s)}
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

func CurrentYearMonth(now time.Time) YearMonth {
	return YearMonth{Year: now.Year(), Month: now.Month()}
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Bounds returns the first instant and the last second of the month, both inclusive.
func (ym YearMonth) Bounds(loc *time.Location) (time.Time, time.Time) {
	start := time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, loc)
	lastDay := start.AddDate(0, 1, -1)
	end := time.Date(lastDay.Year(), lastDay.Month(), lastDay.Day(), 23, 59, 59, 0, loc)
	return start, end
}

func LeadsInMonth(leads []entity.Lead, ym YearMonth, loc *time.Location) []entity.Lead {
	start, end := ym.Bounds(loc)

	out := make([]entity.Lead, 0)
	for _, lead := range leads {
		d := lead.DateOfContact
		if d.IsZero() {
			continue
		}
		if !d.Before(start) && !d.After(end) {
			out = append(out, lead)
		}
	}
	return out
}

func MonthlyReport(leads []entity.Lead, ym YearMonth, loc *time.Location) Summary {
	return Summarize(LeadsInMonth(leads, ym, loc))
}
