package usecase

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeDatabase     = "DATABASE_ERROR"
	CodeNotification = "NOTIFICATION_ERROR"
	CodeConfig       = "CONFIG_ERROR"
)

// DomainError is a user-correctable failure; Message is shown as is.
type DomainError struct {
	Code    string
	Message string
	Details string
}

func (e *DomainError) Error() string {
	return e.Message
}

// TechnicalError is an operational failure. Message is generic and safe to
// expose, Err carries the detail for the logs.
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
