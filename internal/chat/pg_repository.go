package chat

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Insert(ctx context.Context, entry *Entry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO chat_history (user_id, session_id, user_message, image, bot_response, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		entry.UserID,
		entry.SessionID,
		entry.UserMessage,
		entry.Image,
		entry.BotResponse,
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert chat entry: %w", err)
	}

	return nil
}

func (r *PgRepository) ListSession(ctx context.Context, userID, sessionID string, limit int) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, session_id, user_message, image, bot_response, created_at
		FROM chat_history
		WHERE user_id = $1 AND session_id = $2
		ORDER BY created_at ASC
		LIMIT $3
	`, userID, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list chat session: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

func (r *PgRepository) ListRecent(ctx context.Context, userID string, limit int) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, session_id, user_message, image, bot_response, created_at
		FROM chat_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent chat entries: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]Entry, error) {
	var result []Entry
	for rows.Next() {
		var e Entry
		err := rows.Scan(
			&e.UserID,
			&e.SessionID,
			&e.UserMessage,
			&e.Image,
			&e.BotResponse,
			&e.Timestamp,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
