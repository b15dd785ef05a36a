package adapters

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential is returned before any network activity when no API key was given
	ErrMissingCredential = errors.New("missing API key")

	// ErrStalledCursor means the provider reported more pages without a usable cursor
	ErrStalledCursor = errors.New("history pagination stalled")
)

// TransportError describes a non-success response from the provider
type TransportError struct {
	Context string
	Status  int
	Body    string
}

func (e *TransportError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Context, e.Status)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Context, e.Status, e.Body)
}
