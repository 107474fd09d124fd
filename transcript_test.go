package docchat_test

import (
	"fmt"
	"testing"

	"github.com/amartinez/docchat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptStore_AppendPreservesOrder(t *testing.T) {
	t.Parallel()
	store := docchat.NewTranscriptStore()

	first := docchat.NewUserMessage("first")
	second := docchat.NewAssistantMessage()
	require.NoError(t, store.Append(first))
	require.NoError(t, store.Append(second))

	all := store.All()
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
}

func TestTranscriptStore_AppendDuplicateID(t *testing.T) {
	t.Parallel()
	store := docchat.NewTranscriptStore()

	msg := docchat.NewUserMessage("hello")
	require.NoError(t, store.Append(msg))

	err := store.Append(msg)
	assert.ErrorIs(t, err, docchat.ErrDuplicateID)
	assert.Equal(t, 1, store.Len())
}

func TestTranscriptStore_UpdateContent(t *testing.T) {
	t.Parallel()
	store := docchat.NewTranscriptStore()

	msg := docchat.NewAssistantMessage()
	require.NoError(t, store.Append(msg))

	require.NoError(t, store.UpdateContent(msg.ID, "partial"))
	require.NoError(t, store.UpdateContent(msg.ID, "partial answer"))

	all := store.All()
	require.Len(t, all, 1)
	assert.Equal(t, "partial answer", all[0].Content)
}

func TestTranscriptStore_UpdateContentNotFound(t *testing.T) {
	t.Parallel()
	store := docchat.NewTranscriptStore()

	err := store.UpdateContent("missing", "text")
	assert.ErrorIs(t, err, docchat.ErrNotFound)
}

func TestTranscriptStore_RecentHistory(t *testing.T) {
	t.Parallel()
	store := docchat.NewTranscriptStore()

	for i := 0; i < 10; i++ {
		role := docchat.RoleUser
		if i%2 == 1 {
			role = docchat.RoleAssistant
		}
		msg := docchat.NewUserMessage(fmt.Sprintf("msg-%d", i))
		msg.Role = role
		require.NoError(t, store.Append(msg))
	}

	history := store.RecentHistory(6)
	require.Len(t, history, 6)
	for i, entry := range history {
		assert.Equal(t, fmt.Sprintf("msg-%d", i+4), entry.Content)
	}
	// Oldest first, order preserved.
	assert.Equal(t, docchat.RoleUser, history[0].Role)
	assert.Equal(t, docchat.RoleAssistant, history[1].Role)
}

func TestTranscriptStore_RecentHistoryShortTranscript(t *testing.T) {
	t.Parallel()
	store := docchat.NewTranscriptStore()
	require.NoError(t, store.Append(docchat.NewUserMessage("only")))

	history := store.RecentHistory(6)
	require.Len(t, history, 1)
	assert.Equal(t, "only", history[0].Content)
}

func TestTranscriptStore_RecentHistoryNonPositiveLimit(t *testing.T) {
	t.Parallel()
	store := docchat.NewTranscriptStore()
	require.NoError(t, store.Append(docchat.NewUserMessage("hello")))

	assert.Empty(t, store.RecentHistory(0))
	assert.Empty(t, store.RecentHistory(-1))
}

func TestTranscriptStore_AllReturnsSnapshot(t *testing.T) {
	t.Parallel()
	store := docchat.NewTranscriptStore()

	msg := docchat.NewAssistantMessage()
	require.NoError(t, store.Append(msg))

	snapshot := store.All()
	require.NoError(t, store.UpdateContent(msg.ID, "mutated"))

	// The earlier snapshot is unaffected by the mutation.
	assert.Equal(t, "", snapshot[0].Content)
	assert.Equal(t, "mutated", store.All()[0].Content)
}

func TestTranscriptStore_SubscribeNotifiesOnMutation(t *testing.T) {
	t.Parallel()
	store := docchat.NewTranscriptStore()

	var notifications [][]docchat.Message
	unsubscribe := store.Subscribe(func(snapshot []docchat.Message) {
		notifications = append(notifications, snapshot)
	})

	msg := docchat.NewAssistantMessage()
	require.NoError(t, store.Append(msg))
	require.NoError(t, store.UpdateContent(msg.ID, "hi"))

	require.Len(t, notifications, 2)
	assert.Equal(t, "", notifications[0][0].Content)
	assert.Equal(t, "hi", notifications[1][0].Content)

	unsubscribe()
	require.NoError(t, store.UpdateContent(msg.ID, "bye"))
	assert.Len(t, notifications, 2)
}

func TestTranscriptStore_SubscriberSeesLatestState(t *testing.T) {
	t.Parallel()
	store := docchat.NewTranscriptStore()

	// The store must reflect the mutation before the notification runs.
	var seen string
	store.Subscribe(func(snapshot []docchat.Message) {
		seen = snapshot[len(snapshot)-1].Content
	})

	require.NoError(t, store.Append(docchat.NewUserMessage("question")))
	assert.Equal(t, "question", seen)
}
