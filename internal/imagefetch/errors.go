package imagefetch

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnsupportedReference is returned for schemes the fetcher cannot read
	ErrUnsupportedReference = errors.New("unsupported image reference")

	// ErrTooLarge is returned when the image body exceeds the size limit
	ErrTooLarge = errors.New("image exceeds size limit")

	// ErrDecode is returned when the bytes are not a decodable image
	ErrDecode = errors.New("cannot decode image")
)

// HTTPStatusError reports a non-200 response
type HTTPStatusError struct {
	StatusCode int
	Status     string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

// Temporary reports whether retrying may help
func (e *HTTPStatusError) Temporary() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}
