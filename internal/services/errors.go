package services

import "errors"

var (
	// ErrNotFound matches every NotFoundError via errors.Is.
	ErrNotFound = errors.New("not found")

	// ErrUnreadableDocument marks a document that is missing or cannot be
	// parsed. Extraction recovers from it by returning empty text.
	ErrUnreadableDocument = errors.New("unreadable document")

	ErrNoJobDescription error = &NotFoundError{Message: "No job description found"}
	ErrNoCVs            error = &NotFoundError{Message: "No CVs uploaded yet"}
)

// NotFoundError is a request-level failure that maps to HTTP 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
