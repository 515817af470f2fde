package contact

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Field limits.
const (
	MaxNameLen    = 200
	MaxMessageLen = 5000
)

// Form is one submission of the contact form.
type Form struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

// Normalize trims surrounding whitespace from every field.
func (f Form) Normalize() Form {
	return Form{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Message: strings.TrimSpace(f.Message),
	}
}

// Validate checks that every field is present, the email parses as a bare
// address and the text fields fit their limits.
func (f Form) Validate() error {
	f = f.Normalize()

	if f.Name == "" {
		return &FieldError{Field: "name", Reason: "is required"}
	}
	if utf8.RuneCountInString(f.Name) > MaxNameLen {
		return &FieldError{Field: "name", Reason: "is too long"}
	}
	if strings.ContainsAny(f.Name, "\r\n") {
		return &FieldError{Field: "name", Reason: "must be a single line"}
	}
	if f.Email == "" {
		return &FieldError{Field: "email", Reason: "is required"}
	}
	addr, err := mail.ParseAddress(f.Email)
	if err != nil || addr.Address != f.Email {
		return &FieldError{Field: "email", Reason: "is not a valid address"}
	}
	if f.Message == "" {
		return &FieldError{Field: "message", Reason: "is required"}
	}
	if utf8.RuneCountInString(f.Message) > MaxMessageLen {
		return &FieldError{Field: "message", Reason: "is too long"}
	}
	return nil
}
