package model

import (
	"fmt"
	"net/url"
)

// ValidationError reports a malformed draft. It is raised before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Validate checks that the draft has a title and an absolute URL.
func (d Draft) Validate() error {
	d = d.Normalize()

	if d.Title == "" || d.URL == "" {
		field := "title"
		if d.Title != "" {
			field = "url"
		}
		return &ValidationError{Field: field, Message: "Title and URL are required."}
	}

	parsed, err := url.Parse(d.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return &ValidationError{Field: "url", Message: "Enter a valid URL (include https://)."}
	}

	if !d.Visibility.Valid() {
		return &ValidationError{Field: "visibility", Message: "Visibility must be PUBLIC or PRIVATE."}
	}

	return nil
}
