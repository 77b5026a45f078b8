package store_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sarojaillam/assistant/internal/profile"
	"github.com/sarojaillam/assistant/store"
	"github.com/sarojaillam/assistant/store/db/sqlite"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	p := &profile.Profile{
		Mode:   "demo",
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "assistant_test.db"),
	}
	driver, err := sqlite.NewDB(p)
	require.NoError(t, err)

	st := store.New(driver, p)
	require.NoError(t, st.Migrate(context.Background()))
	t.Cleanup(func() {
		require.NoError(t, st.Close())
	})
	return st
}

func TestConversationSessionUpsert(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	created, err := st.UpsertConversationSession(ctx, &store.ConversationSession{
		UID:            "sess-1",
		FamilyMemberID: "lakshmi",
		Messages: []store.Message{
			{Role: store.MessageRoleUser, Content: "hello", Timestamp: time.Now(), Mode: store.MessageModeFamilyChat},
		},
		StartTime:      time.Now(),
		LastUpdated:    time.Now(),
		EmotionalState: "neutral",
		KeyTopics:      []string{"health"},
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	// Same UID: last writer wins, no second row.
	created.Messages = append(created.Messages, store.Message{
		Role: store.MessageRoleAssistant, Content: "vanakkam", Timestamp: time.Now(), Mode: store.MessageModeFamilyChat,
	})
	created.EmotionalState = "happy"
	_, err = st.UpsertConversationSession(ctx, created)
	require.NoError(t, err)

	list, err := st.ListConversationSessions(ctx, &store.FindConversationSession{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Messages, 2)
	require.Equal(t, "happy", list[0].EmotionalState)
	require.Equal(t, []string{"health"}, list[0].KeyTopics)
}

func TestGetLastConversationSession(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	none, err := st.GetLastConversationSession(ctx, "meena")
	require.NoError(t, err)
	require.Nil(t, none)

	base := time.Now()
	for i := 0; i < 3; i++ {
		_, err := st.UpsertConversationSession(ctx, &store.ConversationSession{
			UID:            fmt.Sprintf("sess-%d", i),
			FamilyMemberID: "meena",
			StartTime:      base,
			LastUpdated:    base.Add(time.Duration(i) * time.Minute),
			EmotionalState: "neutral",
		})
		require.NoError(t, err)
	}

	last, err := st.GetLastConversationSession(ctx, "meena")
	require.NoError(t, err)
	require.NotNil(t, last)
	require.Equal(t, "sess-2", last.UID)
}

func TestEmotionalMemoryOldestNEviction(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	for i := 0; i < 8; i++ {
		_, err := st.CreateEmotionalMemory(ctx, &store.EmotionalMemory{
			FamilyMemberID: "arjun",
			Timestamp:      time.Now(),
			Topic:          fmt.Sprintf("topic-%d", i),
			EmotionalState: "neutral",
			KeyPoints:      []string{"point"},
			CreatedTs:      time.Now().Unix(),
		})
		require.NoError(t, err)
	}

	count, err := st.CountEmotionalMemories(ctx)
	require.NoError(t, err)
	require.Equal(t, 8, count)

	require.NoError(t, st.DeleteEmotionalMemories(ctx, &store.DeleteEmotionalMemory{OldestN: 3}))

	list, err := st.ListEmotionalMemories(ctx, &store.FindEmotionalMemory{})
	require.NoError(t, err)
	require.Len(t, list, 5)
	// Newest first; topic-3 through topic-7 survive.
	require.Equal(t, "topic-7", list[0].Topic)
	require.Equal(t, "topic-3", list[4].Topic)
}
