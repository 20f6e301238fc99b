package services

import "fmt"

// Error handling types and constants
type DomainErrorCode string

const (
	ErrInvalidInput           DomainErrorCode = "INVALID_INPUT"
	ErrPermissionDenied       DomainErrorCode = "PERMISSION_DENIED"
	ErrEventNotFound          DomainErrorCode = "EVENT_NOT_FOUND"
	ErrUserNotFound           DomainErrorCode = "USER_NOT_FOUND"
	ErrAlreadyRegistered      DomainErrorCode = "ALREADY_REGISTERED"
	ErrRegistrationClosed     DomainErrorCode = "REGISTRATION_CLOSED"
	ErrCapacityExceeded       DomainErrorCode = "CAPACITY_EXCEEDED"
	ErrSelfOrganizerConflict  DomainErrorCode = "SELF_ORGANIZER_CONFLICT"
	ErrNotRegistered          DomainErrorCode = "NOT_REGISTERED"
	ErrInvalidStatusValue     DomainErrorCode = "INVALID_STATUS_VALUE"
	ErrInvalidEventState      DomainErrorCode = "INVALID_EVENT_STATE"
	ErrParticipantNotEligible DomainErrorCode = "PARTICIPANT_NOT_ELIGIBLE"
	ErrTransientStorage       DomainErrorCode = "TRANSIENT_STORAGE_FAILURE"
	ErrDatabaseError          DomainErrorCode = "DATABASE_ERROR"
)

// DomainError is the typed failure every service operation returns.
// Code identifies the failure kind for callers and for the HTTP error
// mapping; Details keeps the underlying cause for logs.
type DomainError struct {
	Message string          `json:"message"`
	Code    DomainErrorCode `json:"code"`
	Details error           `json:"details,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s [%s]: %v", e.Message, e.Code, e.Details)
	}
	return fmt.Sprintf("%s [%s]", e.Message, e.Code)
}

func (e *DomainError) Unwrap() error {
	return e.Details
}

func NewDomainError(message string, code DomainErrorCode, details error) *DomainError {
	return &DomainError{
		Message: message,
		Code:    code,
		Details: details,
	}
}

// Helper functions for error checking
func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

func GetDomainErrorCode(err error) DomainErrorCode {
	if derr, ok := err.(*DomainError); ok {
		return derr.Code
	}
	return ""
}
