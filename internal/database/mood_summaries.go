package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lumistudy/tutor-api/internal/models"
)

// MoodSummaryRepository handles mood summary database operations
type MoodSummaryRepository struct {
	db *DB
}

// NewMoodSummaryRepository creates a new mood summary repository
func NewMoodSummaryRepository(db *DB) *MoodSummaryRepository {
	return &MoodSummaryRepository{db: db}
}

// Upsert writes a rollup row, replacing any previous summary for the pair
func (r *MoodSummaryRepository) Upsert(ctx context.Context, summary *models.MoodSummary) error {
	query := `
		INSERT INTO mood_summaries (user_id, subject_id, avg_score, avg_magnitude, entry_count, window_days, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, subject_id) DO UPDATE SET
			avg_score = EXCLUDED.avg_score,
			avg_magnitude = EXCLUDED.avg_magnitude,
			entry_count = EXCLUDED.entry_count,
			window_days = EXCLUDED.window_days,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		summary.UserID,
		summary.SubjectID,
		summary.AvgScore,
		summary.AvgMagnitude,
		summary.EntryCount,
		summary.WindowDays,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert mood summary: %w", err)
	}

	return nil
}

// ListByUser returns all rollup rows for a user
func (r *MoodSummaryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.MoodSummary, error) {
	query := `
		SELECT user_id, subject_id, avg_score, avg_magnitude, entry_count, window_days, updated_at
		FROM mood_summaries
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query mood summaries: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	var summaries []*models.MoodSummary
	for rows.Next() {
		s := &models.MoodSummary{}
		if err := rows.Scan(&s.UserID, &s.SubjectID, &s.AvgScore, &s.AvgMagnitude, &s.EntryCount, &s.WindowDays, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mood summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate mood summaries: %w", err)
	}

	return summaries, nil
}
