package domain

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MaxNoteLength bounds the free-text note on calls and requests,
	// counted in characters, not bytes
	MaxNoteLength = 255

	// ConfirmationTokenBytes is the number of random bytes behind a confirmation token;
	// the token itself is the hex encoding (40 characters)
	ConfirmationTokenBytes = 20

	// ConfirmationTokenLength is the encoded token length in characters
	ConfirmationTokenLength = ConfirmationTokenBytes * 2

	// DefaultTokenTTL is how long a confirmation token stays valid
	DefaultTokenTTL = 24 * time.Hour
)

// CallStatus is the lifecycle state of an ownership call
type CallStatus string

const (
	// CallStatusOpen means the call accepts new ownership requests
	CallStatusOpen CallStatus = "open"
	// CallStatusClosed is the call's single terminal state
	CallStatusClosed CallStatus = "closed"
)

// RequestStatus is the lifecycle state of an ownership request
type RequestStatus string

const (
	// RequestStatusOpen means the request awaits resolution
	RequestStatusOpen RequestStatus = "open"
	// RequestStatusApproved is terminal and produces a confirmed ownership grant
	RequestStatusApproved RequestStatus = "approved"
	// RequestStatusClosed is terminal and produces no grant
	RequestStatusClosed RequestStatus = "closed"
)

// ValidateNote checks the required free-text note on calls and requests
func ValidateNote(note string) error {
	trimmed := strings.TrimSpace(note)
	if trimmed == "" {
		return &ValidationError{Field: "note", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(note) > MaxNoteLength {
		return &ValidationError{Field: "note", Reason: "exceeds maximum length"}
	}
	return nil
}

// ValidateEmail checks the contact address attached to an ownership call
func ValidateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(email) > MaxNoteLength {
		return &ValidationError{Field: "email", Reason: "exceeds maximum length"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return &ValidationError{Field: "email", Reason: "is not a valid address"}
	}
	return nil
}

// ValidationError carries field-level detail for caller display
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}
