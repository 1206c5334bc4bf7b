package books

import (
	"errors"
	"fmt"
)

var (
	// ErrFetchBook is returned by Get for any failure; the cause is logged only.
	ErrFetchBook = errors.New("failed to fetch book details")

	// ErrUpdateBook is returned by Update for any failure; the cause is logged only.
	ErrUpdateBook = errors.New("failed to update book details")

	// ErrMalformedList is returned by List when the books member is not an array.
	ErrMalformedList = errors.New("books payload is not an array")
)

// StatusError reports a non-2xx response from the books API.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.Code)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code == 404
}
