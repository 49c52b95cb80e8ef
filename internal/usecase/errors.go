package usecase

import "errors"

const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeInvalidStatus        = "INVALID_STATUS"
	CodeInvalidFollowUpIndex = "INVALID_FOLLOW_UP_INDEX"
	CodeLeadNotFound         = "LEAD_NOT_FOUND"
	CodePersistence          = "PERSISTENCE_ERROR"
)

// DomainError is a failure the caller can fix by changing the request.
type DomainError struct {
	Code    string
	Message string
	Fields  []ValidationError
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError wraps a collaborator failure (database, cache, broker).
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// ErrorCode returns the code carried by err, or "" for plain errors.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}
