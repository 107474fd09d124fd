package docchat

import "context"

// Request carries one user question and the bounded conversation history
// preceding it. History is a suffix of the transcript, oldest first, and
// ends with the question itself (the backend receives the question both
// there and in Message; it may ignore either copy).
type Request struct {
	Message string
	History []HistoryEntry
}

// Stream uses a pull-based iterator pattern. Next returns the next
// semantic event, io.EOF when the exchange completes (an explicit done
// signal or end of transport data), or a non-EOF error on failure.
// Cancellation flows through the context passed to Provider.Stream().
type Stream interface {
	Next() (Event, error)
	Close() error
}

// Provider is a strategy pattern interface for chat backends.
type Provider interface {
	Stream(ctx context.Context, req Request) (Stream, error)
}
