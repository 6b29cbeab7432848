package avatar

import "fmt"

// FetchError is returned when an image cannot be retrieved.
type FetchError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// HashError is returned when retrieved bytes cannot be decoded or hashed.
type HashError struct {
	URL string
	Err error
}

func (e *HashError) Error() string {
	return fmt.Sprintf("failed to hash %s: %v", e.URL, e.Err)
}

func (e *HashError) Unwrap() error {
	return e.Err
}
