package export

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/xavierca1/ligue-csr/internal/entity"
	"github.com/xavierca1/ligue-csr/internal/usecase"
)

const GeneratedLayout = "Jan 2, 2006, 3:04:05 PM"

var reportTemplate = template.Must(template.New("monthly").Parse(`CSR MONTHLY REPORT
==================

Report Period: {{.Period}}
Generated: {{.Generated}}

SUMMARY
-------
Total Leads Added: {{.Total}}

LEAD STATUS BREAKDOWN
---------------------
Interested: {{.Interested}}
Not Interested: {{.NotInterested}}
Follow-up Required: {{.FollowUp}}
Email Sent: {{.EmailSent}}
Lead Closed: {{.Closed}}
Meeting Set: {{.MeetingSet}}

PERFORMANCE METRICS
-------------------
Follow-up Completion Rate: {{.CompletionRate}}%
`))

type reportData struct {
	Period         string
	Generated      string
	Total          int
	Interested     int
	NotInterested  int
	FollowUp       int
	EmailSent      int
	Closed         int
	MeetingSet     int
	CompletionRate int
}

func MonthlyReportText(report *usecase.MonthlyReportOutput) (string, error) {
	per := report.Summary.PerStatus
	data := reportData{
		Period:         report.Period,
		Generated:      report.GeneratedAt.Format(GeneratedLayout),
		Total:          report.Summary.Total,
		Interested:     per[entity.StatusInterested],
		NotInterested:  per[entity.StatusNotInterested],
		FollowUp:       per[entity.StatusFollowUp],
		EmailSent:      per[entity.StatusEmailSent],
		Closed:         per[entity.StatusLeadClosed],
		MeetingSet:     per[entity.StatusMeetingSet],
		CompletionRate: report.Summary.FollowUpCompletionRate,
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render monthly report: %w", err)
	}
	return buf.String(), nil
}

func ReportFilename(period, ext string) string {
	return fmt.Sprintf("csr_report_%s.%s", period, ext)
}
