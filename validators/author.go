package validators

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// RegistrationInput validates the fields of a new author profile.
func RegistrationInput(username, email, password string) error {
	return validation.Errors{
		"username": validation.Validate(username, validation.Required, validation.Length(3, 64)),
		"email":    validation.Validate(email, validation.Required, is.Email),
		"password": validation.Validate(password, validation.Required, validation.Length(8, 72)),
	}.Filter()
}

// Email validates a single email address on profile edits.
func Email(email string) error {
	return validation.Errors{
		"email": validation.Validate(email, validation.Required, is.Email),
	}.Filter()
}

// EmailTakenError is the field-keyed rejection for a duplicate email.
// Uniqueness is checked case-insensitively against all authors except the
// one being edited.
func EmailTakenError() error {
	return validation.Errors{
		"email": validation.NewError("validation_email_taken", "this email is already in use"),
	}
}
