package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lumistudy/tutor-api/internal/models"
)

// MoodLogRepository handles mood log database operations
type MoodLogRepository struct {
	db *DB
}

// NewMoodLogRepository creates a new mood log repository
func NewMoodLogRepository(db *DB) *MoodLogRepository {
	return &MoodLogRepository{db: db}
}

// Create inserts a mood log entry
func (r *MoodLogRepository) Create(ctx context.Context, entry *models.MoodLogEntry) error {
	query := `
		INSERT INTO mood_logs (id, user_id, subject_id, score, magnitude, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	err := r.db.QueryRowContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.SubjectID,
		entry.Score,
		entry.Magnitude,
		entry.Message,
		createdAt,
	).Scan(&entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create mood log: %w", err)
	}

	return nil
}

// ListByUser returns a user's mood logs across all subjects, newest first.
// A positive days value restricts results to the trailing window.
func (r *MoodLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, days int) ([]*models.MoodLogEntry, error) {
	query := `
		SELECT id, user_id, subject_id, score, magnitude, message, created_at
		FROM mood_logs
		WHERE user_id = $1
	`
	args := []any{userID}

	if days > 0 {
		query += ` AND created_at >= $2`
		args = append(args, time.Now().UTC().AddDate(0, 0, -days))
	}

	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query mood logs: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	var entries []*models.MoodLogEntry
	for rows.Next() {
		e := &models.MoodLogEntry{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.SubjectID, &e.Score, &e.Magnitude, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mood log: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate mood logs: %w", err)
	}

	return entries, nil
}

// AggregateWindow computes per-subject averages of a user's mood logs over the
// trailing window. Used by the rollup worker.
func (r *MoodLogRepository) AggregateWindow(ctx context.Context, userID uuid.UUID, days int) ([]*models.MoodSummary, error) {
	query := `
		SELECT subject_id, AVG(score), AVG(magnitude), COUNT(*)
		FROM mood_logs
		WHERE user_id = $1 AND created_at >= $2
		GROUP BY subject_id
	`

	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate mood logs: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	var summaries []*models.MoodSummary
	for rows.Next() {
		s := &models.MoodSummary{UserID: userID, WindowDays: days}
		if err := rows.Scan(&s.SubjectID, &s.AvgScore, &s.AvgMagnitude, &s.EntryCount); err != nil {
			return nil, fmt.Errorf("failed to scan mood aggregate: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate mood aggregates: %w", err)
	}

	return summaries, nil
}

// DeleteBySubject removes all mood logs for a (user, subject) pair. Idempotent.
func (r *MoodLogRepository) DeleteBySubject(ctx context.Context, userID, subjectID uuid.UUID) error {
	query := `DELETE FROM mood_logs WHERE user_id = $1 AND subject_id = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, subjectID); err != nil {
		return fmt.Errorf("failed to delete mood logs: %w", err)
	}

	return nil
}
