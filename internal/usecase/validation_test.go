package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-csr/internal/entity"
)

func TestParseStatusChoice(t *testing.T) {
	tests := []struct {
		in   string
		want entity.Status
	}{
		{"1", entity.StatusInterested},
		{"2", entity.StatusNotInterested},
		{"3", entity.StatusFollowUp},
		{"4", entity.StatusEmailSent},
		{" 5 ", entity.StatusLeadClosed},
		{"6", entity.StatusMeetingSet},
		{"Meeting Set", entity.StatusMeetingSet},
		{"Follow-up", entity.StatusFollowUp},
	}
	for _, tt := range tests {
		got, err := ParseStatusChoice(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"", "0", "7", "interested", "Closed"} {
		_, err := ParseStatusChoice(bad)
		require.Error(t, err, bad)
		assert.Equal(t, CodeInvalidStatus, ErrorCode(err))
	}
}

func TestValidateCreateLeadInput(t *testing.T) {
	valid := CreateLeadInput{
		LeadName: "Ana", ContactNumber: "555", CompanyName: "Acme", ServiceInterested: "SEO",
		Status: "Email Sent", DateOfContact: "2026-10-14", CallbackTime: "2026-10-17T15:30", EmailSentDate: "2026-10-14",
	}
	assert.Empty(t, ValidateCreateLeadInput(valid))

	rfc := valid
	rfc.CallbackTime = "2026-10-17T15:30:00Z"
	assert.Empty(t, ValidateCreateLeadInput(rfc))

	errs := ValidateCreateLeadInput(CreateLeadInput{LeadName: "  ", Status: "Unknown", DateOfContact: "14/10/2026", CallbackTime: "tomorrow"})
	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, f := range []string{"lead_name", "contact_number", "company_name", "service_interested", "status", "date_of_contact", "callback_time"} {
		assert.True(t, fields[f], f)
	}
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, CodeLeadNotFound, ErrorCode(leadNotFound("x")))
	assert.Equal(t, CodePersistence, ErrorCode(persistenceError("update", errBoom)))
	assert.Equal(t, CodeLeadNotFound, ErrorCode(persistenceError("update", entity.ErrLeadNotFound)))
	assert.Equal(t, "", ErrorCode(errBoom))

	te := persistenceError("delete", errBoom)
	assert.True(t, IsTechnicalError(te))
	assert.ErrorIs(t, te, errBoom)
}
