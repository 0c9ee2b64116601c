package apperror

import (
	"errors"
	"fmt"
)

type Reason string

const (
	ReasonValidation            Reason = "VALIDATION"
	ReasonNotFound              Reason = "NOT_FOUND"
	ReasonDuplicateRegistration Reason = "DUPLICATE_REGISTRATION"
	ReasonUIDConflict           Reason = "UID_CONFLICT"
	ReasonGatewayAuth           Reason = "GATEWAY_AUTH"
	ReasonGatewayRequest        Reason = "GATEWAY_REQUEST"
	ReasonPersistence           Reason = "PERSISTENCE"
)

// Error is the single error type crossing package boundaries.
// Handlers switch on Reason, never on message text.
type Error struct {
	Reason  Reason
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(reason Reason, message string, cause error) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

func NewValidationError(message string, cause error) *Error {
	return newError(ReasonValidation, message, cause)
}

func NewNotFoundError(message string) *Error {
	return newError(ReasonNotFound, message, nil)
}

func NewDuplicateRegistrationError(message string, cause error) *Error {
	return newError(ReasonDuplicateRegistration, message, cause)
}

// NewUIDConflictError reports a generated registration uid that is already taken.
// Callers draw a new uid and retry.
func NewUIDConflictError(message string, cause error) *Error {
	return newError(ReasonUIDConflict, message, cause)
}

func NewGatewayAuthError(message string, cause error) *Error {
	return newError(ReasonGatewayAuth, message, cause)
}

func NewGatewayRequestError(message string, cause error) *Error {
	return newError(ReasonGatewayRequest, message, cause)
}

func NewPersistenceError(message string, cause error) *Error {
	return newError(ReasonPersistence, message, cause)
}

// ReasonOf returns the reason of the first *Error in err's chain.
func ReasonOf(err error) (Reason, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Reason, true
	}
	return "", false
}

func Is(err error, reason Reason) bool {
	r, ok := ReasonOf(err)
	return ok && r == reason
}
