package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xavierca1/ligue-csr/internal/entity"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errors []ValidationError

	required := []struct {
		field string
		value string
	}{
		{"lead_name", input.LeadName},
		{"contact_number", input.ContactNumber},
		{"company_name", input.CompanyName},
		{"service_interested", input.ServiceInterested},
		{"status", input.Status},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errors = append(errors, ValidationError{r.field, "is required"})
		}
	}

	if input.Status != "" && !entity.Status(input.Status).IsValid() {
		errors = append(errors, ValidationError{"status", "must be one of the six lead statuses"})
	}

	if input.DateOfContact != "" && !isValidDate(input.DateOfContact) {
		errors = append(errors, ValidationError{"date_of_contact", "must be a valid date (YYYY-MM-DD)"})
	}
	if input.CallbackTime != "" && !isValidDateTime(input.CallbackTime) {
		errors = append(errors, ValidationError{"callback_time", "must be a valid date-time (YYYY-MM-DDTHH:MM)"})
	}
	if input.EmailSentDate != "" && !isValidDate(input.EmailSentDate) {
		errors = append(errors, ValidationError{"email_sent_date", "must be a valid date (YYYY-MM-DD)"})
	}

	return errors
}

func validationFailure(errs []ValidationError) *DomainError {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+" ("+e.Message+")")
	}
	return &DomainError{
		Code:    CodeValidation,
		Message: "validation failed: " + strings.Join(parts, ", "),
		Fields:  errs,
	}
}

func isValidDate(s string) bool {
	_, err := parseDate(s, time.Local)
	return err == nil
}

func isValidDateTime(s string) bool {
	_, err := parseDateTime(s, time.Local)
	return err == nil
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
}

// parseDateTime accepts the datetime-local form and full RFC3339.
func parseDateTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(DateTimeLayout, s, loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// ParseStatusChoice maps a menu number (1-6) or a status name to a Status.
func ParseStatusChoice(choice string) (entity.Status, error) {
	choice = strings.TrimSpace(choice)

	if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(entity.AllStatuses) {
		return entity.AllStatuses[n-1], nil
	}

	s := entity.Status(choice)
	if !s.IsValid() {
		return "", &DomainError{
			Code:    CodeInvalidStatus,
			Message: "invalid status: enter a number 1-6 or a valid status name",
		}
	}
	return s, nil
}
