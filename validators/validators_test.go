package validators

import (
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()
	require.Error(t, err)
	errs, ok := err.(validation.Errors)
	require.True(t, ok, "expected field-keyed validation errors, got %T", err)
	return errs
}

func TestPostInputValid(t *testing.T) {
	title := "A perfectly fine title"
	content := strings.Repeat("x", 100)
	assert.NoError(t, PostInput(title, content))
}

func TestPostInputTitleTooShort(t *testing.T) {
	errs := fieldErrors(t, PostInput("short", strings.Repeat("x", 100)))
	assert.Contains(t, errs, "title")
	assert.NotContains(t, errs, "content")
}

func TestPostInputContentTooShort(t *testing.T) {
	errs := fieldErrors(t, PostInput("A perfectly fine title", strings.Repeat("x", 99)))
	assert.Contains(t, errs, "content")
	assert.NotContains(t, errs, "title")
}

func TestPostInputBothInvalid(t *testing.T) {
	errs := fieldErrors(t, PostInput("", ""))
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "content")
}

func TestPostInputTrimsBeforeCounting(t *testing.T) {
	// Ten characters of padding around nine real ones must still fail.
	padded := "   short123   "
	errs := fieldErrors(t, PostInput(padded, strings.Repeat("x", 100)))
	assert.Contains(t, errs, "title")

	// Exactly at the boundary after trimming passes.
	assert.NoError(t, PostInput("  1234567890  ", "  "+strings.Repeat("x", 100)+"  "))
}

func TestPostInputCountsRunesNotBytes(t *testing.T) {
	// Ten multi-byte runes satisfy the ten character title minimum.
	title := strings.Repeat("日", 10)
	assert.NoError(t, PostInput(title, strings.Repeat("本", 100)))
}

func TestRegistrationInput(t *testing.T) {
	assert.NoError(t, RegistrationInput("ada", "ada@example.com", "s3cret-pass"))

	errs := fieldErrors(t, RegistrationInput("", "not-an-email", "short"))
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestEmail(t *testing.T) {
	assert.NoError(t, Email("ada@example.com"))

	errs := fieldErrors(t, Email("nope"))
	assert.Contains(t, errs, "email")

	errs = fieldErrors(t, Email(""))
	assert.Contains(t, errs, "email")
}

func TestEmailTakenError(t *testing.T) {
	errs := fieldErrors(t, EmailTakenError())
	assert.Contains(t, errs, "email")
}
