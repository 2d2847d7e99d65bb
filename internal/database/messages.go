package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lumistudy/tutor-api/internal/models"
)

// ChatMessageRepository handles chat message database operations
type ChatMessageRepository struct {
	db *DB
}

// NewChatMessageRepository creates a new chat message repository
func NewChatMessageRepository(db *DB) *ChatMessageRepository {
	return &ChatMessageRepository{db: db}
}

// Create inserts a chat message row
func (r *ChatMessageRepository) Create(ctx context.Context, msg *models.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (id, user_id, subject_id, sender, text, sentiment_score, sentiment_magnitude, saved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	var score, magnitude sql.NullFloat64
	if msg.Sentiment != nil {
		score = sql.NullFloat64{Float64: msg.Sentiment.Score, Valid: true}
		magnitude = sql.NullFloat64{Float64: msg.Sentiment.Magnitude, Valid: true}
	}

	createdAt := msg.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	err := r.db.QueryRowContext(ctx, query,
		msg.ID,
		msg.UserID,
		msg.SubjectID,
		msg.Sender,
		msg.Text,
		score,
		magnitude,
		msg.Saved,
		createdAt,
	).Scan(&msg.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}

	return nil
}

// History returns messages for a (user, subject) pair in chronological order.
// A positive limit keeps only the most recent entries while preserving
// oldest-first output order.
func (r *ChatMessageRepository) History(ctx context.Context, userID, subjectID uuid.UUID, limit int) ([]*models.ChatMessage, error) {
	query := `
		SELECT id, user_id, subject_id, sender, text, sentiment_score, sentiment_magnitude, saved, created_at
		FROM chat_messages
		WHERE user_id = $1 AND subject_id = $2
		ORDER BY created_at ASC, id ASC
	`
	args := []any{userID, subjectID}

	if limit > 0 {
		query = `
			SELECT id, user_id, subject_id, sender, text, sentiment_score, sentiment_magnitude, saved, created_at
			FROM (
				SELECT id, user_id, subject_id, sender, text, sentiment_score, sentiment_magnitude, saved, created_at
				FROM chat_messages
				WHERE user_id = $1 AND subject_id = $2
				ORDER BY created_at DESC, id DESC
				LIMIT $3
			) recent
			ORDER BY created_at ASC, id ASC
		`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	var messages []*models.ChatMessage
	for rows.Next() {
		msg, err := scanChatMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}

	return messages, nil
}

// SetSaved updates the saved flag of a message owned by the given user.
// Returns ErrNotFound when the message does not exist or belongs to someone else.
func (r *ChatMessageRepository) SetSaved(ctx context.Context, userID, messageID uuid.UUID, saved bool) error {
	query := `UPDATE chat_messages SET saved = $3 WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, messageID, userID, saved)
	if err != nil {
		return fmt.Errorf("failed to update saved flag: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteBySubject removes all messages for a (user, subject) pair.
// Idempotent: deleting nothing is not an error.
func (r *ChatMessageRepository) DeleteBySubject(ctx context.Context, userID, subjectID uuid.UUID) error {
	query := `DELETE FROM chat_messages WHERE user_id = $1 AND subject_id = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, subjectID); err != nil {
		return fmt.Errorf("failed to delete chat messages: %w", err)
	}

	return nil
}

func scanChatMessage(rows *sql.Rows) (*models.ChatMessage, error) {
	msg := &models.ChatMessage{}
	var score, magnitude sql.NullFloat64

	if err := rows.Scan(
		&msg.ID,
		&msg.UserID,
		&msg.SubjectID,
		&msg.Sender,
		&msg.Text,
		&score,
		&magnitude,
		&msg.Saved,
		&msg.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to scan chat message: %w", err)
	}

	if score.Valid && magnitude.Valid {
		msg.Sentiment = &models.Sentiment{Score: score.Float64, Magnitude: magnitude.Float64}
	}

	return msg, nil
}
