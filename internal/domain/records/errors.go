package records

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no record (or no records for a patient)
	// matches the request.
	ErrNotFound = errors.New("medical record not found")

	// ErrInvalidArgument is returned when a record identifier is not a
	// well-formed UUID.
	ErrInvalidArgument = errors.New("invalid record id")
)

// ValidationError carries the set of fields that failed payload validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}
