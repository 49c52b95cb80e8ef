package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-csr/internal/entity"
)

type GetLeadUseCase struct {
	Snapshot *SnapshotLoader
}

func NewGetLeadUseCase(snapshot *SnapshotLoader) *GetLeadUseCase {
	return &GetLeadUseCase{Snapshot: snapshot}
}

func (uc *GetLeadUseCase) Execute(ctx context.Context, id string) (*LeadDetailOutput, error) {
	leads, err := uc.Snapshot.Load(ctx)
	if err != nil {
		return nil, err
	}
	pos, ok := findLead(leads, id)
	if !ok {
		return nil, leadNotFound(id)
	}

	lead := leads[pos].Clone()
	schedule := make([]FollowUpView, 0, len(lead.FollowUpSchedule))
	for i, e := range lead.FollowUpSchedule {
		view := FollowUpView{DueDate: e.DueDate, Completed: e.Completed}
		if i < len(entity.FollowUpCadence) {
			view.CadenceDay = entity.FollowUpCadence[i]
		}
		schedule = append(schedule, view)
	}

	return &LeadDetailOutput{Lead: lead, Schedule: schedule}, nil
}

type ListLeadsUseCase struct {
	Snapshot *SnapshotLoader
	Now      Clock
}

func NewListLeadsUseCase(snapshot *SnapshotLoader) *ListLeadsUseCase {
	return &ListLeadsUseCase{Snapshot: snapshot, Now: time.Now}
}

func (uc *ListLeadsUseCase) Execute(ctx context.Context, input ListLeadsInput) ([]entity.Lead, error) {
	criteria := FilterCriteria{
		SearchTerm: input.SearchTerm,
		DateWindow: ParseDateWindow(input.Window),
	}
	if input.Status != "" {
		status := entity.Status(input.Status)
		if !status.IsValid() {
			return nil, &DomainError{Code: CodeInvalidStatus, Message: "unknown status filter: " + input.Status}
		}
		criteria.Status = &status
	}

	leads, err := uc.Snapshot.Load(ctx)
	if err != nil {
		return nil, err
	}
	return FilterLeads(leads, criteria, uc.Now()), nil
}

// DashboardUseCase builds the month-to-date view. Status counts follow the
// month window; the completion rate is taken over every lead.
type DashboardUseCase struct {
	Snapshot *SnapshotLoader
	Now      Clock
}

func NewDashboardUseCase(snapshot *SnapshotLoader) *DashboardUseCase {
	return &DashboardUseCase{Snapshot: snapshot, Now: time.Now}
}

func (uc *DashboardUseCase) Execute(ctx context.Context) (*DashboardOutput, error) {
	leads, err := uc.Snapshot.Load(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.Now()

	monthLeads := FilterLeads(leads, FilterCriteria{DateWindow: WindowMonth}, now)
	stats := Summarize(monthLeads)
	stats.FollowUpCompletionRate = FollowUpCompletionRate(leads)

	return &DashboardOutput{
		Month:   CurrentYearMonth(now).String(),
		Stats:   stats,
		Pending: pendingViews(PlanPendingFollowUps(leads, now), now),
	}, nil
}

// Pending returns every open item, uncapped, for the reminder worker.
func (uc *DashboardUseCase) Pending(ctx context.Context) ([]PendingItem, time.Time, error) {
	leads, err := uc.Snapshot.Load(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	now := uc.Now()
	return CollectPendingFollowUps(leads, now), now, nil
}

func pendingViews(items []PendingItem, now time.Time) []PendingView {
	views := make([]PendingView, 0, len(items))
	for _, it := range items {
		views = append(views, PendingView{PendingItem: it, Overdue: it.IsOverdue(now)})
	}
	return views
}

type MonthlyReportUseCase struct {
	Snapshot *SnapshotLoader
	Now      Clock
	Location *time.Location
}

func NewMonthlyReportUseCase(snapshot *SnapshotLoader) *MonthlyReportUseCase {
	return &MonthlyReportUseCase{Snapshot: snapshot, Now: time.Now, Location: time.Local}
}

// Execute reports on month ("YYYY-MM"); an empty month means the current one.
func (uc *MonthlyReportUseCase) Execute(ctx context.Context, month string) (*MonthlyReportOutput, error) {
	now := uc.Now()

	ym := CurrentYearMonth(now.In(uc.Location))
	if month != "" {
		parsed, err := ParseYearMonth(month)
		if err != nil {
			return nil, err
		}
		ym = parsed
	}

	leads, err := uc.Snapshot.Load(ctx)
	if err != nil {
		return nil, err
	}

	scoped := LeadsInMonth(leads, ym, uc.Location)
	return &MonthlyReportOutput{
		Period:      ym.String(),
		GeneratedAt: now,
		Summary:     Summarize(scoped),
		Leads:       scoped,
	}, nil
}
