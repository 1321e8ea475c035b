package validators

import (
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	titleMinLength   = 10
	contentMinLength = 100
)

// PostInput validates a post's title and content ahead of any persistence
// attempt. Lengths are counted in characters after trimming whitespace;
// violations come back field-keyed.
func PostInput(title, content string) error {
	return validation.Errors{
		"title":   trimmedMin(title, titleMinLength, "title must contain at least 10 characters"),
		"content": trimmedMin(content, contentMinLength, "content must contain at least 100 characters"),
	}.Filter()
}

func trimmedMin(value string, min int, message string) error {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < min {
		return validation.NewError("validation_length_too_short", message)
	}
	return nil
}
