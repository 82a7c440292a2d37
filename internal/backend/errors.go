package backend

import (
	"errors"
	"fmt"
)

// ErrRemote marks a failure reported by the backend inside an otherwise
// successful HTTP exchange (the `{"error": "..."}` envelope).
var ErrRemote = errors.New("backend reported an error")

// ErrNoFiles is returned by Upload when called without files.
var ErrNoFiles = errors.New("no files to upload")

// TransportError wraps every failure of a collaborator call: network
// errors, non-2xx statuses, undecodable bodies and remote error envelopes.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsRemote reports whether err originates from a backend error envelope.
func IsRemote(err error) bool {
	return errors.Is(err, ErrRemote)
}

// StatusCode extracts the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Status
	}
	return 0
}

func remoteError(op, msg string) error {
	return &TransportError{Op: op, Err: fmt.Errorf("%w: %s", ErrRemote, msg)}
}
