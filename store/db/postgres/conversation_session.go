package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sarojaillam/assistant/store"
)

func (d *DB) UpsertConversationSession(ctx context.Context, upsert *store.ConversationSession) (*store.ConversationSession, error) {
	if upsert.StartTime.IsZero() {
		upsert.StartTime = time.Now()
	}
	if upsert.LastUpdated.IsZero() {
		upsert.LastUpdated = time.Now()
	}
	if upsert.EmotionalState == "" {
		upsert.EmotionalState = "neutral"
	}

	stmt := `INSERT INTO conversation_session (
			uid, family_member_id, messages, start_ts, updated_ts, emotional_state, key_topics
		)
		VALUES (` + placeholders(7) + `)
		ON CONFLICT (uid) DO UPDATE SET
			family_member_id = EXCLUDED.family_member_id,
			messages = EXCLUDED.messages,
			updated_ts = EXCLUDED.updated_ts,
			emotional_state = EXCLUDED.emotional_state,
			key_topics = EXCLUDED.key_topics
		RETURNING id`

	args := []any{
		upsert.UID,
		upsert.FamilyMemberID,
		marshalJSON(upsert.Messages, "[]"),
		upsert.StartTime.Unix(),
		upsert.LastUpdated.Unix(),
		upsert.EmotionalState,
		marshalJSON(upsert.KeyTopics, "[]"),
	}

	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&upsert.ID); err != nil {
		return nil, fmt.Errorf("failed to upsert conversation_session: %w", err)
	}
	return upsert, nil
}

func (d *DB) ListConversationSessions(ctx context.Context, find *store.FindConversationSession) ([]*store.ConversationSession, error) {
	if find == nil {
		return nil, fmt.Errorf("find parameter cannot be nil")
	}

	where, args := []string{"1 = 1"}, []any{}
	if find.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.UID != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *find.UID)
	}
	if find.FamilyMemberID != nil {
		where, args = append(where, "family_member_id = "+placeholder(len(args)+1)), append(args, *find.FamilyMemberID)
	}

	query := `SELECT id, uid, family_member_id, messages, start_ts, updated_ts, emotional_state, key_topics
		FROM conversation_session WHERE ` + strings.Join(where, " AND ") + ` ORDER BY updated_ts DESC, id DESC`
	if find.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation_sessions: %w", err)
	}
	defer rows.Close()

	list := make([]*store.ConversationSession, 0)
	for rows.Next() {
		session := &store.ConversationSession{}
		var messagesJSON, topicsJSON string
		var startTs, updatedTs int64
		if err := rows.Scan(
			&session.ID,
			&session.UID,
			&session.FamilyMemberID,
			&messagesJSON,
			&startTs,
			&updatedTs,
			&session.EmotionalState,
			&topicsJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan conversation_session: %w", err)
		}
		session.StartTime = time.Unix(startTs, 0)
		session.LastUpdated = time.Unix(updatedTs, 0)
		if err := json.Unmarshal([]byte(messagesJSON), &session.Messages); err != nil {
			return nil, fmt.Errorf("failed to decode messages payload: %w", err)
		}
		if err := json.Unmarshal([]byte(topicsJSON), &session.KeyTopics); err != nil {
			return nil, fmt.Errorf("failed to decode key_topics payload: %w", err)
		}
		list = append(list, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate conversation_sessions: %w", err)
	}
	return list, nil
}

func (d *DB) DeleteConversationSession(ctx context.Context, delete *store.DeleteConversationSession) error {
	where, args := []string{"1 = 1"}, []any{}
	if delete.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *delete.ID)
	}
	if delete.UID != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *delete.UID)
	}

	stmt := `DELETE FROM conversation_session WHERE ` + strings.Join(where, " AND ")
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to delete conversation_session: %w", err)
	}
	return nil
}
