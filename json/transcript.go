// Package json persists a conversation transcript to disk in a versioned
// JSON envelope.
package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/amartinez/docchat"
)

// envelope is the v1 wire format for a persisted transcript.
type envelope struct {
	Version  int          `json:"version"`
	Messages []messageDTO `json:"messages"`
}

// messageDTO is the JSON representation of a Message.
type messageDTO struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// MarshalTranscript serializes a transcript snapshot to JSON in v1
// envelope format.
func MarshalTranscript(msgs []docchat.Message) ([]byte, error) {
	env := envelope{
		Version:  1,
		Messages: make([]messageDTO, len(msgs)),
	}
	for i, msg := range msgs {
		env.Messages[i] = messageDTO{
			ID:        msg.ID,
			Role:      string(msg.Role),
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
		}
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalTranscript deserializes a transcript from JSON in v1 envelope
// format.
func UnmarshalTranscript(data []byte) ([]docchat.Message, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return nil, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	msgs := make([]docchat.Message, len(env.Messages))
	for i, dto := range env.Messages {
		role := docchat.Role(dto.Role)
		switch role {
		case docchat.RoleUser, docchat.RoleAssistant:
		default:
			return nil, fmt.Errorf("message %d: unknown role %q", i, dto.Role)
		}
		msgs[i] = docchat.Message{
			ID:        dto.ID,
			Role:      role,
			Content:   dto.Content,
			Timestamp: dto.Timestamp,
		}
	}
	return msgs, nil
}

// Save writes a transcript snapshot to a JSON file, creating parent
// directories as needed.
func Save(path string, msgs []docchat.Message) error {
	data, err := MarshalTranscript(msgs)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads a transcript from a JSON file and replays it into a new
// TranscriptStore.
func Load(path string) (*docchat.TranscriptStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	msgs, err := UnmarshalTranscript(data)
	if err != nil {
		return nil, err
	}
	store := docchat.NewTranscriptStore()
	for i, msg := range msgs {
		if err := store.Append(msg); err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
	}
	return store, nil
}
