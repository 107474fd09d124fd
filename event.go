package docchat

// Event is a sealed interface representing a streaming event.
// Events are purely semantic. Terminal signals come from Next()'s error
// return - io.EOF for completion, *StreamError for an error payload - not
// from events. The unexported marker method prevents external
// implementations.
type Event interface {
	event()
}

// EventChunk carries one incremental fragment of assistant text.
type EventChunk struct {
	Delta string
}

func (EventChunk) event() {}

// Interface compliance check.
var _ Event = EventChunk{}
