package export

import (
	"io"
	"strings"

	"github.com/xavierca1/ligue-csr/internal/entity"
)

const (
	DateLayout     = "Jan 2, 2006"
	DateTimeLayout = "Jan 2, 2006, 03:04 PM"
)

var CSVHeaders = []string{
	"Lead Name", "Contact Number", "Company", "Service Interested", "Status",
	"Date Added", "Callback Time", "Assigned CSR", "Notes",
}

// LeadsCSV renders every field quoted, even when csv.Writer would leave it bare.
func LeadsCSV(leads []entity.Lead) string {
	lines := make([]string, 0, len(leads)+1)
	lines = append(lines, csvLine(CSVHeaders))
	for _, lead := range leads {
		lines = append(lines, csvLine(leadRow(lead)))
	}
	return strings.Join(lines, "\n")
}

func WriteLeadsCSV(w io.Writer, leads []entity.Lead) error {
	_, err := io.WriteString(w, LeadsCSV(leads))
	return err
}

func leadRow(lead entity.Lead) []string {
	dateAdded := ""
	if !lead.DateOfContact.IsZero() {
		dateAdded = lead.DateOfContact.Format(DateLayout)
	}
	callback := ""
	if lead.CallbackTime != nil {
		callback = lead.CallbackTime.Format(DateTimeLayout)
	}

	return []string{
		lead.LeadName,
		lead.ContactNumber,
		lead.CompanyName,
		lead.ServiceInterested,
		string(lead.Status),
		dateAdded,
		callback,
		lead.AssignedCSR,
		lead.Notes,
	}
}

func csvLine(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
