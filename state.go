package docchat

// SessionState is the per-conversation exchange state. Exactly one
// exchange may be in flight at a time; Submit is a no-op unless the state
// permits a new exchange.
type SessionState int

const (
	StateIdle             SessionState = iota // No exchange in flight.
	StateAwaitingResponse                     // Request issued, headers not yet received.
	StateStreaming                            // Assistant reply streaming in.
	StateError                                // Last exchange failed; next Submit resets.
)

// String returns a human-readable state name.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingResponse:
		return "awaiting_response"
	case StateStreaming:
		return "streaming"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
