package weather

import (
	"errors"
	"net/http"
)

var (
	// ErrLocationNotFound means the provider matched no known place for the
	// query. User-recoverable: re-prompt.
	ErrLocationNotFound = errors.New("location not found")

	// ErrMalformedResponse means the provider answered but the body could not
	// be parsed into a complete snapshot. Shown to the user the same way as
	// ErrLocationNotFound, logged distinctly.
	ErrMalformedResponse = errors.New("malformed provider response")
)

// HTTPClient abstracts the outbound transport so tests can stub it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
