package services

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FieldError describes a single per-field validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates per-field failures for one request. It is
// returned instead of a single opaque error so callers can surface
// field-level detail.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

const (
	userNameMinLen = 3
	userNameMaxLen = 32
	passwordMinLen = 8
	passwordMaxLen = 64
)

func validEmail(s string) bool {
	if s == "" {
		return false
	}
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s
}

// Password policy: length bounds plus at least one digit. Uppercase and
// symbols are not required. Lengths count characters, not bytes.
func validatePassword(ve *ValidationError, password string) {
	if n := utf8.RuneCountInString(password); n < passwordMinLen || n > passwordMaxLen {
		ve.add("password", fmt.Sprintf("must be between %d and %d characters", passwordMinLen, passwordMaxLen))
		return
	}
	hasDigit := false
	for _, r := range password {
		if unicode.IsDigit(r) {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		ve.add("password", "must contain at least one digit")
	}
}

func validateRegistration(email, username, password string) error {
	ve := &ValidationError{}
	if !validEmail(email) {
		ve.add("email", "must be a valid email address")
	}
	if n := utf8.RuneCountInString(username); n < userNameMinLen || n > userNameMaxLen {
		ve.add("username", fmt.Sprintf("must be between %d and %d characters", userNameMinLen, userNameMaxLen))
	}
	validatePassword(ve, password)
	return ve.orNil()
}
