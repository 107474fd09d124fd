package docchat

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrDuplicateID indicates an append with a message ID already in the transcript.
	ErrDuplicateID = errors.New("duplicate message id")

	// ErrNotFound indicates a content update for a message ID not in the transcript.
	ErrNotFound = errors.New("message not found")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")
)

// TransportError is a non-2xx HTTP response received before any stream
// data was read. No assistant message exists when this is returned.
type TransportError struct {
	StatusCode int
	Status     string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s", e.Status)
}

// StreamError is a terminal error payload received mid-stream, or a
// transport failure while reading. Assistant content received before the
// failure stays in the transcript.
type StreamError struct {
	Reason string
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream error: %s", e.Reason)
}
