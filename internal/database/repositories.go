package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lumistudy/tutor-api/internal/models"
)

// UserRepositoryInterface defines the interface for user repository operations.
// Interfaces here exist so handlers and services can be tested with fakes.
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) (time.Time, error)
}

// SubjectRepositoryInterface defines the interface for subject repository operations
type SubjectRepositoryInterface interface {
	List(ctx context.Context) ([]*models.Subject, error)
	GetByName(ctx context.Context, name string) (*models.Subject, error)
}

// ChatMessageRepositoryInterface defines the interface for chat message repository operations
type ChatMessageRepositoryInterface interface {
	Create(ctx context.Context, msg *models.ChatMessage) error
	History(ctx context.Context, userID, subjectID uuid.UUID, limit int) ([]*models.ChatMessage, error)
	SetSaved(ctx context.Context, userID, messageID uuid.UUID, saved bool) error
	DeleteBySubject(ctx context.Context, userID, subjectID uuid.UUID) error
}

// MoodLogRepositoryInterface defines the interface for mood log repository operations
type MoodLogRepositoryInterface interface {
	Create(ctx context.Context, entry *models.MoodLogEntry) error
	ListByUser(ctx context.Context, userID uuid.UUID, days int) ([]*models.MoodLogEntry, error)
	AggregateWindow(ctx context.Context, userID uuid.UUID, days int) ([]*models.MoodSummary, error)
	DeleteBySubject(ctx context.Context, userID, subjectID uuid.UUID) error
}

// MoodSummaryRepositoryInterface defines the interface for mood summary repository operations
type MoodSummaryRepositoryInterface interface {
	Upsert(ctx context.Context, summary *models.MoodSummary) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.MoodSummary, error)
}

// Ensure concrete types implement the interfaces
var (
	_ UserRepositoryInterface        = (*UserRepository)(nil)
	_ SubjectRepositoryInterface     = (*SubjectRepository)(nil)
	_ ChatMessageRepositoryInterface = (*ChatMessageRepository)(nil)
	_ MoodLogRepositoryInterface     = (*MoodLogRepository)(nil)
	_ MoodSummaryRepositoryInterface = (*MoodSummaryRepository)(nil)
)
