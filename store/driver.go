package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	// Migrate creates the schema if it does not exist.
	Migrate(ctx context.Context) error

	// ConversationSession model related methods.
	UpsertConversationSession(ctx context.Context, upsert *ConversationSession) (*ConversationSession, error)
	ListConversationSessions(ctx context.Context, find *FindConversationSession) ([]*ConversationSession, error)
	DeleteConversationSession(ctx context.Context, delete *DeleteConversationSession) error

	// EmotionalMemory model related methods.
	CreateEmotionalMemory(ctx context.Context, create *EmotionalMemory) (*EmotionalMemory, error)
	ListEmotionalMemories(ctx context.Context, find *FindEmotionalMemory) ([]*EmotionalMemory, error)
	CountEmotionalMemories(ctx context.Context) (int, error)
	DeleteEmotionalMemories(ctx context.Context, delete *DeleteEmotionalMemory) error
}
