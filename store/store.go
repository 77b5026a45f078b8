package store

import (
	"context"
	"time"

	"github.com/sarojaillam/assistant/internal/profile"
	"github.com/sarojaillam/assistant/store/cache"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// Cache for the most recent session per family member.
	lastSessionCache *cache.Cache
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
		lastSessionCache: cache.New(cache.Config{
			DefaultTTL:      10 * time.Minute,
			CleanupInterval: 5 * time.Minute,
			MaxItems:        100,
		}),
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Migrate(ctx context.Context) error {
	return s.driver.Migrate(ctx)
}

func (s *Store) Close() error {
	s.lastSessionCache.Close()
	return s.driver.Close()
}

func (s *Store) UpsertConversationSession(ctx context.Context, upsert *ConversationSession) (*ConversationSession, error) {
	session, err := s.driver.UpsertConversationSession(ctx, upsert)
	if err != nil {
		return nil, err
	}
	s.lastSessionCache.Delete(ctx, session.FamilyMemberID)
	return session, nil
}

func (s *Store) ListConversationSessions(ctx context.Context, find *FindConversationSession) ([]*ConversationSession, error) {
	return s.driver.ListConversationSessions(ctx, find)
}

// GetLastConversationSession returns the most recently updated session for
// the family member, or nil if none exists.
func (s *Store) GetLastConversationSession(ctx context.Context, familyMemberID string) (*ConversationSession, error) {
	if v, ok := s.lastSessionCache.Get(ctx, familyMemberID); ok {
		if session, ok := v.(*ConversationSession); ok {
			return session, nil
		}
	}

	list, err := s.driver.ListConversationSessions(ctx, &FindConversationSession{
		FamilyMemberID: &familyMemberID,
		Limit:          1,
	})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	s.lastSessionCache.Set(ctx, familyMemberID, list[0])
	return list[0], nil
}

func (s *Store) DeleteConversationSession(ctx context.Context, delete *DeleteConversationSession) error {
	return s.driver.DeleteConversationSession(ctx, delete)
}

func (s *Store) CreateEmotionalMemory(ctx context.Context, create *EmotionalMemory) (*EmotionalMemory, error) {
	return s.driver.CreateEmotionalMemory(ctx, create)
}

func (s *Store) ListEmotionalMemories(ctx context.Context, find *FindEmotionalMemory) ([]*EmotionalMemory, error) {
	return s.driver.ListEmotionalMemories(ctx, find)
}

func (s *Store) CountEmotionalMemories(ctx context.Context) (int, error) {
	return s.driver.CountEmotionalMemories(ctx)
}

func (s *Store) DeleteEmotionalMemories(ctx context.Context, delete *DeleteEmotionalMemory) error {
	return s.driver.DeleteEmotionalMemories(ctx, delete)
}
