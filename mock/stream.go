package mock

import (
	"io"

	"github.com/amartinez/docchat"
)

// ScriptedStream replays a fixed sequence of steps, then io.EOF.
type ScriptedStream struct {
	steps  []Step
	pos    int
	Closed bool
}

// Step is one scripted Next result. When Err is set the event is ignored.
type Step struct {
	Event docchat.Event
	Err   error
}

// NewScriptedStream creates a stream that yields the given steps in order
// and io.EOF once they are exhausted.
func NewScriptedStream(steps ...Step) *ScriptedStream {
	return &ScriptedStream{steps: steps}
}

// Chunks creates a stream that yields one EventChunk per delta, then io.EOF.
func Chunks(deltas ...string) *ScriptedStream {
	steps := make([]Step, len(deltas))
	for i, d := range deltas {
		steps[i] = Step{Event: docchat.EventChunk{Delta: d}}
	}
	return NewScriptedStream(steps...)
}

// Next returns the next scripted step.
func (s *ScriptedStream) Next() (docchat.Event, error) {
	if s.pos >= len(s.steps) {
		return nil, io.EOF
	}
	step := s.steps[s.pos]
	s.pos++
	if step.Err != nil {
		return nil, step.Err
	}
	return step.Event, nil
}

// Close records that the stream was closed.
func (s *ScriptedStream) Close() error {
	s.Closed = true
	return nil
}

// Interface compliance check.
var _ docchat.Stream = (*ScriptedStream)(nil)
