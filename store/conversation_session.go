package store

import "time"

// MessageRole identifies the author of a conversation message.
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// MessageMode tags which subsystem produced or consumed a message.
type MessageMode string

const (
	MessageModeSmartHome  MessageMode = "smart-home"
	MessageModeFamilyChat MessageMode = "family-chat"
)

// Message is one conversational turn. The JSON shape mirrors the records
// the original web client persisted, so exported data stays compatible.
type Message struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
	Mode      MessageMode `json:"mode,omitempty"`
}

// ConversationSession is one identified family member's ongoing dialogue.
// Messages are append-only during the session and stored as a JSON payload.
type ConversationSession struct {
	ID             int64
	UID            string
	FamilyMemberID string
	Messages       []Message
	StartTime      time.Time
	LastUpdated    time.Time
	EmotionalState string
	KeyTopics      []string
}

// FindConversationSession specifies the conditions for finding sessions.
// Results are ordered by last_updated descending.
type FindConversationSession struct {
	ID             *int64
	UID            *string
	FamilyMemberID *string
	Limit          int
}

// DeleteConversationSession specifies the conditions for deleting sessions.
type DeleteConversationSession struct {
	ID  *int64
	UID *string
}
