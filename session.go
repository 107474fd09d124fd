package docchat

import (
	"context"
	"errors"
	"io"
	"strings"
)

// defaultHistoryLimit bounds the conversation history sent with each request.
const defaultHistoryLimit = 6

// Session drives one request/stream-consume/finalize cycle at a time
// against a Provider, mutating the TranscriptStore as reply fragments
// arrive. Single-flight discipline is enforced through the state guard in
// Submit, not a mutex: a Session belongs to one logical owner and must not
// have Submit called from multiple goroutines concurrently.
type Session struct {
	provider     Provider
	store        *TranscriptStore
	historyLimit int

	state     SessionState
	lastErr   error
	currentID string // in-progress assistant message, empty when none
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithHistoryLimit sets how many trailing transcript messages are sent as
// conversation history with each request. Default is 6.
func WithHistoryLimit(n int) SessionOption {
	return func(s *Session) { s.historyLimit = n }
}

// NewSession creates a Session over the given provider and store.
func NewSession(provider Provider, store *TranscriptStore, opts ...SessionOption) *Session {
	s := &Session{
		provider:     provider,
		store:        store,
		historyLimit: defaultHistoryLimit,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// State returns the current session state.
func (s *Session) State() SessionState { return s.state }

// Err returns the error recorded by the last failed exchange, or nil.
func (s *Session) Err() error { return s.lastErr }

// Submit sends one user turn and streams the assistant reply into the
// transcript. A whitespace-only text, or a call while an exchange is in
// flight, is a guarded no-op: no transcript mutation, no network call,
// nil return. A previous error state is cleared and does not block the
// new exchange.
//
// On failure the returned error is also retained for State()/Err()
// rendering: *TransportError when the request was rejected before
// streaming began (no assistant message created), *StreamError or the
// transport read error when the stream failed mid-reply (partial content
// preserved). Context cancellation mid-stream keeps the partial reply and
// ends idle, like a natural end of stream; a deadline expiring mid-stream
// is a transport failure, not a stop, and lands in the error state.
func (s *Session) Submit(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if s.state == StateError {
		// Implicit reset: a terminal error permits the next exchange.
		s.state = StateIdle
		s.lastErr = nil
	}
	if s.state != StateIdle {
		return nil
	}

	if err := s.store.Append(NewUserMessage(text)); err != nil {
		return s.fail(err)
	}

	// Captured after the user turn is appended, so the history ends with
	// the new question. The backend also receives it in Message; both
	// copies are sent on purpose.
	history := s.store.RecentHistory(s.historyLimit)

	s.state = StateAwaitingResponse
	stream, err := s.provider.Stream(ctx, Request{Message: text, History: history})
	if err != nil {
		return s.fail(err)
	}
	defer stream.Close()

	// The placeholder goes in before any byte is parsed so the UI can
	// render the reply-in-progress affordance immediately.
	assistant := NewAssistantMessage()
	if err := s.store.Append(assistant); err != nil {
		return s.fail(err)
	}
	s.currentID = assistant.ID
	s.state = StateStreaming

	var buf strings.Builder
	for {
		evt, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if errors.Is(err, context.Canceled) {
				// Caller-initiated stop: keep the partial reply, end idle.
				break
			}
			return s.fail(err)
		}
		chunk, ok := evt.(EventChunk)
		if !ok || chunk.Delta == "" {
			continue
		}
		buf.WriteString(chunk.Delta)
		if err := s.store.UpdateContent(s.currentID, buf.String()); err != nil {
			return s.fail(err)
		}
	}

	s.currentID = ""
	s.state = StateIdle
	return nil
}

// fail records err as the exchange outcome. The in-progress assistant
// message, if any, is left as it stood; partial answers are preserved.
func (s *Session) fail(err error) error {
	s.currentID = ""
	s.state = StateError
	s.lastErr = err
	return err
}
