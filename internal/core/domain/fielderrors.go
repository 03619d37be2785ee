package domain

import (
	"fmt"
	"sort"
	"strings"
)

// NonFieldKey collects validation failures that span multiple fields, such
// as a password confirmation mismatch.
const NonFieldKey = "non_field_errors"

// FieldErrors is a validation failure keyed by field name. It serializes
// directly as the 400 response body, so callers can attribute every message
// to the field that caused it.
type FieldErrors map[string][]string

// NewFieldError builds a FieldErrors carrying a single message.
func NewFieldError(field, msg string) FieldErrors {
	return FieldErrors{field: {msg}}
}

// Add appends a message under field.
func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Error renders the map deterministically for logs; the HTTP layer sends the
// map itself, not this string.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e[f], "; ")))
	}
	return strings.Join(parts, " | ")
}
