package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sarojaillam/assistant/store"
)

func (d *DB) CreateEmotionalMemory(ctx context.Context, create *store.EmotionalMemory) (*store.EmotionalMemory, error) {
	if create.Timestamp.IsZero() {
		create.Timestamp = time.Now()
	}
	if create.CreatedTs == 0 {
		create.CreatedTs = time.Now().Unix()
	}
	if create.EmotionalState == "" {
		create.EmotionalState = "neutral"
	}

	args := []any{
		create.FamilyMemberID,
		create.Timestamp.Unix(),
		create.Topic,
		create.EmotionalState,
		marshalJSON(create.KeyPoints, "[]"),
		create.CreatedTs,
	}

	stmt := `INSERT INTO emotional_memory (family_member_id, timestamp, topic, emotional_state, key_points, created_ts)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`

	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create emotional_memory: %w", err)
	}
	return create, nil
}

func (d *DB) ListEmotionalMemories(ctx context.Context, find *store.FindEmotionalMemory) ([]*store.EmotionalMemory, error) {
	if find == nil {
		return nil, fmt.Errorf("find parameter cannot be nil")
	}

	where, args := []string{"1 = 1"}, []any{}
	if find.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.FamilyMemberID != nil {
		where, args = append(where, "family_member_id = "+placeholder(len(args)+1)), append(args, *find.FamilyMemberID)
	}

	// Insertion order is the contract for the retention cap, so order by id.
	query := `SELECT id, family_member_id, timestamp, topic, emotional_state, key_points, created_ts
		FROM emotional_memory WHERE ` + strings.Join(where, " AND ") + ` ORDER BY id DESC`
	if find.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", find.Limit)
	}
	if find.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", find.Offset)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list emotional_memories: %w", err)
	}
	defer rows.Close()

	list := make([]*store.EmotionalMemory, 0)
	for rows.Next() {
		record := &store.EmotionalMemory{}
		var ts int64
		var keyPointsJSON string
		if err := rows.Scan(
			&record.ID,
			&record.FamilyMemberID,
			&ts,
			&record.Topic,
			&record.EmotionalState,
			&keyPointsJSON,
			&record.CreatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan emotional_memory: %w", err)
		}
		record.Timestamp = time.Unix(ts, 0)
		if err := json.Unmarshal([]byte(keyPointsJSON), &record.KeyPoints); err != nil {
			return nil, fmt.Errorf("failed to decode key_points payload: %w", err)
		}
		list = append(list, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate emotional_memories: %w", err)
	}
	return list, nil
}

func (d *DB) CountEmotionalMemories(ctx context.Context) (int, error) {
	var count int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM emotional_memory`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count emotional_memories: %w", err)
	}
	return count, nil
}

func (d *DB) DeleteEmotionalMemories(ctx context.Context, delete *store.DeleteEmotionalMemory) error {
	if delete.OldestN > 0 {
		stmt := `DELETE FROM emotional_memory WHERE id IN (
			SELECT id FROM emotional_memory ORDER BY id ASC LIMIT ` + placeholder(1) + `)`
		if _, err := d.db.ExecContext(ctx, stmt, delete.OldestN); err != nil {
			return fmt.Errorf("failed to evict oldest emotional_memories: %w", err)
		}
		return nil
	}

	where, args := []string{"1 = 1"}, []any{}
	if delete.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *delete.ID)
	}
	if delete.FamilyMemberID != nil {
		where, args = append(where, "family_member_id = "+placeholder(len(args)+1)), append(args, *delete.FamilyMemberID)
	}

	stmt := `DELETE FROM emotional_memory WHERE ` + strings.Join(where, " AND ")
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to delete emotional_memories: %w", err)
	}
	return nil
}
