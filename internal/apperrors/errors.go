package apperrors

import "fmt"

// ErrNotFound represents an error when a requested resource is not found.
// It is the terminal state for every lookup failure in the scraper:
// transport errors, empty result sets, and unmatched identifiers are all
// collapsed to ErrNotFound at their call sites.
type ErrNotFound struct {
	Resource string
	ID       interface{}
}

// Error implements the error interface.
func (e *ErrNotFound) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("%s with ID %v not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is allows for error checking with errors.Is().
func (e *ErrNotFound) Is(target error) bool {
	_, ok := target.(*ErrNotFound)
	return ok
}

// NewNotFoundError creates a new ErrNotFound.
func NewNotFoundError(resource string, id interface{}) *ErrNotFound {
	return &ErrNotFound{
		Resource: resource,
		ID:       id,
	}
}

// NewShowNotFoundError creates a specific error for when a show is not found.
func NewShowNotFoundError(showID string) *ErrNotFound {
	return &ErrNotFound{
		Resource: "show",
		ID:       showID,
	}
}

// ErrUnavailable is returned by the info loader when the remote endpoint
// cannot be reached or its response cannot be parsed. Callers treat it the
// same way as a missing resource and degrade to omitting the metadata.
type ErrUnavailable struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("remote resource unavailable: %s: %v", e.URL, e.Err)
}

// Is allows for error checking with errors.Is().
func (e *ErrUnavailable) Is(target error) bool {
	_, ok := target.(*ErrUnavailable)
	return ok
}

// Unwrap exposes the underlying transport or parse error.
func (e *ErrUnavailable) Unwrap() error {
	return e.Err
}

// NewUnavailableError creates a new ErrUnavailable.
func NewUnavailableError(url string, err error) *ErrUnavailable {
	return &ErrUnavailable{URL: url, Err: err}
}
