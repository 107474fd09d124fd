package tui

// MessageBlock is a renderable element in the conversation. View takes a
// width parameter so the root model controls layout and blocks are
// testable in isolation.
type MessageBlock interface {
	View(width int) string
}
