package county

import (
	"errors"
	"fmt"
)

var (
	// ErrCountyNotFound is returned when a slug has no matching county
	ErrCountyNotFound = errors.New("county not found")

	// ErrEmptyDataset is returned when a source holds no records
	ErrEmptyDataset = errors.New("dataset contains no counties")

	// ErrInvalidRecord is matched by every ValidationError
	ErrInvalidRecord = errors.New("invalid county record")
)

// NotFoundError carries the slug that was looked up
type NotFoundError struct {
	Slug string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("county %q not found", e.Slug)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrCountyNotFound
}

// ValidationError describes a problem with one record of a dataset.
// Index is the zero-based position of the record in its source.
type ValidationError struct {
	Index   int
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("record %d: %s", e.Index, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRecord
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCountyNotFound)
}
