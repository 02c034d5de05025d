package search

import (
	"errors"
	"fmt"
)

// ErrTranscriptNotFound is returned when the server has no transcript at the
// requested path.
var ErrTranscriptNotFound = errors.New("transcript not found")

// TransportError reports that the HTTP exchange did not complete with a
// successful status. StatusCode is zero when no response was received.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error: %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("transport error: %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponse reports a body that is not valid JSON or does not have
// the expected shape.
type MalformedResponse struct {
	URL    string
	Reason string
	Err    error
}

func (e *MalformedResponse) Error() string {
	msg := "malformed response"
	if e.URL != "" {
		msg += ": " + e.URL
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedResponse) Unwrap() error { return e.Err }
