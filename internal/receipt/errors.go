package receipt

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no receipt exists for an ID
	ErrNotFound = errors.New("no receipt found for that ID")

	// ErrIDCollision is returned when a freshly generated ID is already taken
	ErrIDCollision = errors.New("receipt id collision")
)

// Violation describes a single invalid field of a submission
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every violation found in a submission
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "invalid receipt: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, format string, args ...any) {
	e.Violations = append(e.Violations, Violation{Field: field, Message: fmt.Sprintf(format, args...)})
}

// IsValidationError reports whether err is, or wraps, a *ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
