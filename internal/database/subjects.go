package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lumistudy/tutor-api/internal/models"
)

// SubjectRepository handles subject database operations
type SubjectRepository struct {
	db *DB
}

// NewSubjectRepository creates a new subject repository
func NewSubjectRepository(db *DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns all subjects ordered by name
func (r *SubjectRepository) List(ctx context.Context) ([]*models.Subject, error) {
	query := `SELECT id, name, color, icon FROM subjects ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	var subjects []*models.Subject
	for rows.Next() {
		s := &models.Subject{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Color, &s.Icon); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subjects: %w", err)
	}

	return subjects, nil
}

// GetByName retrieves a subject by its exact name
func (r *SubjectRepository) GetByName(ctx context.Context, name string) (*models.Subject, error) {
	s := &models.Subject{}
	query := `SELECT id, name, color, icon FROM subjects WHERE name = $1`

	err := r.db.QueryRowContext(ctx, query, name).Scan(&s.ID, &s.Name, &s.Color, &s.Icon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	return s, nil
}

// Upsert inserts a subject or updates its display attributes by name.
// Used by the configure CLI to seed reference data.
func (r *SubjectRepository) Upsert(ctx context.Context, subject *models.Subject) error {
	query := `
		INSERT INTO subjects (id, name, color, icon)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET color = EXCLUDED.color, icon = EXCLUDED.icon
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		subject.ID,
		subject.Name,
		subject.Color,
		subject.Icon,
	).Scan(&subject.ID)

	if err != nil {
		return fmt.Errorf("failed to upsert subject: %w", err)
	}

	return nil
}
