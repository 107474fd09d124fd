package docchat

import "sync"

// TranscriptStore is an ordered, append-only log of conversation messages.
// Messages are never deleted; an assistant message's content is replaced in
// place while its reply streams. All reads return copies, so an in-progress
// traversal is never invalidated by a concurrent mutation.
type TranscriptStore struct {
	mu       sync.RWMutex
	messages []Message
	index    map[string]int // message ID -> position in messages
	subs     map[int]func([]Message)
	nextSub  int
}

// NewTranscriptStore creates an empty TranscriptStore.
func NewTranscriptStore() *TranscriptStore {
	return &TranscriptStore{
		index: make(map[string]int),
		subs:  make(map[int]func([]Message)),
	}
}

// Append inserts a message at the end of the transcript. It returns
// ErrDuplicateID if the message's ID is already present. Subscribers are
// notified with the new ordered snapshot before Append returns.
func (t *TranscriptStore) Append(msg Message) error {
	t.mu.Lock()
	if _, ok := t.index[msg.ID]; ok {
		t.mu.Unlock()
		return ErrDuplicateID
	}
	t.index[msg.ID] = len(t.messages)
	t.messages = append(t.messages, msg)
	snapshot, subs := t.snapshotLocked()
	t.mu.Unlock()

	notify(snapshot, subs)
	return nil
}

// UpdateContent replaces the content of the message with the given ID.
// It returns ErrNotFound if no such message exists. Used for assistant
// messages mid-stream; each call carries the full accumulated text.
func (t *TranscriptStore) UpdateContent(id, content string) error {
	t.mu.Lock()
	pos, ok := t.index[id]
	if !ok {
		t.mu.Unlock()
		return ErrNotFound
	}
	t.messages[pos].Content = content
	snapshot, subs := t.snapshotLocked()
	t.mu.Unlock()

	notify(snapshot, subs)
	return nil
}

// RecentHistory returns the last limit messages projected to role/content
// pairs, oldest first. A limit <= 0 yields an empty slice. The transcript
// is not mutated.
func (t *TranscriptStore) RecentHistory(limit int) []HistoryEntry {
	if limit <= 0 {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	start := len(t.messages) - limit
	if start < 0 {
		start = 0
	}
	entries := make([]HistoryEntry, 0, len(t.messages)-start)
	for _, msg := range t.messages[start:] {
		entries = append(entries, HistoryEntry{Role: msg.Role, Content: msg.Content})
	}
	return entries
}

// All returns the full ordered message sequence as a copy.
func (t *TranscriptStore) All() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	snapshot := make([]Message, len(t.messages))
	copy(snapshot, t.messages)
	return snapshot
}

// Len returns the number of messages in the transcript.
func (t *TranscriptStore) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// Subscribe registers fn to receive the post-mutation snapshot after every
// Append and UpdateContent. It returns an unsubscribe function. Snapshots
// are delivered synchronously in mutation order.
func (t *TranscriptStore) Subscribe(fn func([]Message)) func() {
	t.mu.Lock()
	id := t.nextSub
	t.nextSub++
	t.subs[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.subs, id)
		t.mu.Unlock()
	}
}

// snapshotLocked copies the messages and the subscriber list so both can be
// used after the lock is released. Caller must hold mu.
func (t *TranscriptStore) snapshotLocked() ([]Message, []func([]Message)) {
	snapshot := make([]Message, len(t.messages))
	copy(snapshot, t.messages)
	subs := make([]func([]Message), 0, len(t.subs))
	for _, fn := range t.subs {
		subs = append(subs, fn)
	}
	return snapshot, subs
}

func notify(snapshot []Message, subs []func([]Message)) {
	for _, fn := range subs {
		fn(snapshot)
	}
}
