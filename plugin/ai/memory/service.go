// Package memory persists conversation sessions and emotional memories.
// Persistence is best-effort from the chat service's point of view: a
// failing store degrades personalization, it never fails a turn.
package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sarojaillam/assistant/store"
)

// MaxEmotionalMemories is the global retention cap. Eviction is FIFO by
// insertion order across all family members, not per member.
const MaxEmotionalMemories = 100

// Service is the memory persistence interface consumed by the chat
// service.
type Service interface {
	// GetLastConversation returns the most recently updated session for
	// the member, or nil without error when none exists.
	GetLastConversation(ctx context.Context, familyMemberID string) (*store.ConversationSession, error)

	// SaveConversation upserts the session by its UID. Last writer wins;
	// there is no versioning or merge.
	SaveConversation(ctx context.Context, session *store.ConversationSession) error

	// SaveEmotionalMemory appends a record and enforces the global cap.
	SaveEmotionalMemory(ctx context.Context, record *store.EmotionalMemory) error

	// RecentEmotionalMemories returns up to limit records for the member,
	// newest first.
	RecentEmotionalMemories(ctx context.Context, familyMemberID string, limit int) ([]*store.EmotionalMemory, error)

	// ExportHistory renders a human-readable transcript of all of the
	// member's sessions. No compression or redaction.
	ExportHistory(ctx context.Context, familyMemberID string) (string, error)
}

// ConversationStore is the slice of the store the service depends on.
// *store.Store satisfies it; tests use an in-memory mock.
type ConversationStore interface {
	GetLastConversationSession(ctx context.Context, familyMemberID string) (*store.ConversationSession, error)
	UpsertConversationSession(ctx context.Context, upsert *store.ConversationSession) (*store.ConversationSession, error)
	ListConversationSessions(ctx context.Context, find *store.FindConversationSession) ([]*store.ConversationSession, error)
	CreateEmotionalMemory(ctx context.Context, create *store.EmotionalMemory) (*store.EmotionalMemory, error)
	ListEmotionalMemories(ctx context.Context, find *store.FindEmotionalMemory) ([]*store.EmotionalMemory, error)
	CountEmotionalMemories(ctx context.Context) (int, error)
	DeleteEmotionalMemories(ctx context.Context, delete *store.DeleteEmotionalMemory) error
}

type service struct {
	store ConversationStore

	// speakerLabel maps a member id to the display name used in
	// transcripts. Defaults to the id itself.
	speakerLabel func(familyMemberID string) string
}

// NewService creates a memory service over the given store.
func NewService(s ConversationStore, speakerLabel func(string) string) Service {
	if speakerLabel == nil {
		speakerLabel = func(id string) string { return id }
	}
	return &service{store: s, speakerLabel: speakerLabel}
}

func (s *service) GetLastConversation(ctx context.Context, familyMemberID string) (*store.ConversationSession, error) {
	session, err := s.store.GetLastConversationSession(ctx, familyMemberID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load last conversation")
	}
	return session, nil
}

func (s *service) SaveConversation(ctx context.Context, session *store.ConversationSession) error {
	if session.UID == "" {
		return errors.New("session uid required")
	}
	session.LastUpdated = time.Now()
	if _, err := s.store.UpsertConversationSession(ctx, session); err != nil {
		return errors.Wrap(err, "failed to save conversation")
	}
	return nil
}

func (s *service) SaveEmotionalMemory(ctx context.Context, record *store.EmotionalMemory) error {
	if _, err := s.store.CreateEmotionalMemory(ctx, record); err != nil {
		return errors.Wrap(err, "failed to save emotional memory")
	}

	count, err := s.store.CountEmotionalMemories(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to count emotional memories")
	}
	if count > MaxEmotionalMemories {
		if err := s.store.DeleteEmotionalMemories(ctx, &store.DeleteEmotionalMemory{
			OldestN: count - MaxEmotionalMemories,
		}); err != nil {
			return errors.Wrap(err, "failed to evict emotional memories")
		}
	}
	return nil
}

func (s *service) RecentEmotionalMemories(ctx context.Context, familyMemberID string, limit int) ([]*store.EmotionalMemory, error) {
	if limit <= 0 {
		limit = 5
	}
	list, err := s.store.ListEmotionalMemories(ctx, &store.FindEmotionalMemory{
		FamilyMemberID: &familyMemberID,
		Limit:          limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list emotional memories")
	}
	return list, nil
}

func (s *service) ExportHistory(ctx context.Context, familyMemberID string) (string, error) {
	sessions, err := s.store.ListConversationSessions(ctx, &store.FindConversationSession{
		FamilyMemberID: &familyMemberID,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to list conversations")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Conversation history for %s\n", s.speakerLabel(familyMemberID))
	for i := len(sessions) - 1; i >= 0; i-- {
		session := sessions[i]
		fmt.Fprintf(&b, "\n=== Session %s (started %s) ===\n",
			session.UID, session.StartTime.Format("2006-01-02 15:04"))
		for _, msg := range session.Messages {
			label := s.speakerLabel(familyMemberID)
			if msg.Role == store.MessageRoleAssistant {
				label = "Saroja"
			}
			fmt.Fprintf(&b, "[%s] %s: %s\n",
				msg.Timestamp.Format("15:04"), label, msg.Content)
		}
	}
	return b.String(), nil
}
