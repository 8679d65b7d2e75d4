package usecase

// Error codes callers can switch on instead of matching message strings.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeDatabase   = "DATABASE_ERROR"
	CodeRemoteSync = "REMOTE_SYNC_ERROR"
)

// DomainError is an expected failure caused by the caller's input. Fields
// carries the per-field messages for validation failures.
type DomainError struct {
	Code    string
	Message string
	Fields  map[string]string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is an infrastructure failure (storage, remote provider).
// Message is safe for logs only; handlers translate it to a generic
// user-facing message.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

func newValidationError(errs []ValidationError) *DomainError {
	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		if _, taken := fields[e.Field]; !taken {
			fields[e.Field] = e.Message
		}
	}
	return &DomainError{
		Code:    CodeValidation,
		Message: "validation failed",
		Fields:  fields,
	}
}
