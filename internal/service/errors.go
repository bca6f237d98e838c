package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ad-tracker/videoshelf-go/internal/models"
)

// ValidationError is a rejected submission. It carries the input as submitted so the
// form can be shown again with the user's values and a message per failing field.
type ValidationError struct {
	Input  models.VideoInput
	Fields models.FieldErrors
}

func (e *ValidationError) Error() string {
	names := fieldNames(e.Fields)
	msgs := make([]string, 0, len(names))
	for _, name := range names {
		msgs = append(msgs, e.Fields[name])
	}
	return "invalid video: " + strings.Join(msgs, ", ")
}

// ProcessingError represents an infrastructure failure while handling a request.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ProcessingError struct {
	Message string
	Cause   error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *ProcessingError) Unwrap() error {
	return e.Cause
}

func fieldNames(fields models.FieldErrors) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
