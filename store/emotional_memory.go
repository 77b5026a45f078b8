package store

import "time"

// EmotionalMemory is one short event record summarizing the detected
// emotional tone and topic of a conversational exchange.
type EmotionalMemory struct {
	ID             int64
	FamilyMemberID string
	Timestamp      time.Time
	Topic          string
	EmotionalState string
	KeyPoints      []string
	CreatedTs      int64
}

// FindEmotionalMemory specifies the conditions for finding emotional
// memories. Results are ordered by insertion (id) descending.
type FindEmotionalMemory struct {
	ID             *int64
	FamilyMemberID *string
	Limit          int
	Offset         int
}

// DeleteEmotionalMemory specifies the conditions for deleting emotional
// memories. OldestN drops the N oldest records by insertion order; it is
// how the global retention cap is enforced.
type DeleteEmotionalMemory struct {
	ID             *int64
	FamilyMemberID *string
	OldestN        int
}
