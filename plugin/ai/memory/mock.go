package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/sarojaillam/assistant/store"
)

// MockStore is an in-memory ConversationStore for tests.
type MockStore struct {
	mu       sync.Mutex
	sessions map[string]*store.ConversationSession // by UID
	memories []*store.EmotionalMemory
	nextID   int64

	// FailWrites makes every mutation return an error, for degraded-path
	// tests.
	FailWrites bool
}

// NewMockStore creates an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{sessions: make(map[string]*store.ConversationSession)}
}

var errMockWrite = &mockError{"mock store write failure"}

type mockError struct{ msg string }

func (e *mockError) Error() string { return e.msg }

func (m *MockStore) GetLastConversationSession(ctx context.Context, familyMemberID string) (*store.ConversationSession, error) {
	list, err := m.ListConversationSessions(ctx, &store.FindConversationSession{
		FamilyMemberID: &familyMemberID,
		Limit:          1,
	})
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (m *MockStore) UpsertConversationSession(_ context.Context, upsert *store.ConversationSession) (*store.ConversationSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return nil, errMockWrite
	}
	if existing, ok := m.sessions[upsert.UID]; ok {
		upsert.ID = existing.ID
	} else {
		m.nextID++
		upsert.ID = m.nextID
	}
	copied := *upsert
	m.sessions[upsert.UID] = &copied
	return upsert, nil
}

func (m *MockStore) ListConversationSessions(_ context.Context, find *store.FindConversationSession) ([]*store.ConversationSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*store.ConversationSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		if find.UID != nil && s.UID != *find.UID {
			continue
		}
		if find.FamilyMemberID != nil && s.FamilyMemberID != *find.FamilyMemberID {
			continue
		}
		copied := *s
		list = append(list, &copied)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].LastUpdated.Equal(list[j].LastUpdated) {
			return list[i].ID > list[j].ID
		}
		return list[i].LastUpdated.After(list[j].LastUpdated)
	})
	if find.Limit > 0 && len(list) > find.Limit {
		list = list[:find.Limit]
	}
	return list, nil
}

func (m *MockStore) CreateEmotionalMemory(_ context.Context, create *store.EmotionalMemory) (*store.EmotionalMemory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return nil, errMockWrite
	}
	m.nextID++
	create.ID = m.nextID
	copied := *create
	m.memories = append(m.memories, &copied)
	return create, nil
}

func (m *MockStore) ListEmotionalMemories(_ context.Context, find *store.FindEmotionalMemory) ([]*store.EmotionalMemory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*store.EmotionalMemory, 0, len(m.memories))
	for i := len(m.memories) - 1; i >= 0; i-- {
		record := m.memories[i]
		if find.FamilyMemberID != nil && record.FamilyMemberID != *find.FamilyMemberID {
			continue
		}
		copied := *record
		list = append(list, &copied)
		if find.Limit > 0 && len(list) >= find.Limit {
			break
		}
	}
	return list, nil
}

func (m *MockStore) CountEmotionalMemories(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.memories), nil
}

func (m *MockStore) DeleteEmotionalMemories(_ context.Context, delete *store.DeleteEmotionalMemory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if delete.OldestN > 0 {
		n := delete.OldestN
		if n > len(m.memories) {
			n = len(m.memories)
		}
		m.memories = m.memories[n:]
	}
	return nil
}

var _ ConversationStore = (*MockStore)(nil)
