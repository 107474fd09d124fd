package docchat

// HistoryEntry is the role/content projection of a Message sent to the
// chat backend. It is derived on demand, never stored.
type HistoryEntry struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
