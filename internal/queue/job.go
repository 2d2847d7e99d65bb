package queue

import (
	"time"

	"github.com/google/uuid"
)

// JobType represents the type of job
type JobType string

const (
	// JobTypeMoodRollup refreshes the mood summary for one (user, subject) pair
	JobTypeMoodRollup JobType = "mood_rollup"
)

// Job represents a job in the queue
type Job struct {
	ID         uuid.UUID `json:"id"`
	Type       JobType   `json:"type"`
	UserID     uuid.UUID `json:"user_id"`
	SubjectID  uuid.UUID `json:"subject_id"`
	CreatedAt  time.Time `json:"created_at"`
	RetryCount int       `json:"retry_count"`
	MaxRetries int       `json:"max_retries"`
}

// NewJob creates a new job
func NewJob(jobType JobType, userID, subjectID uuid.UUID) *Job {
	return &Job{
		ID:         uuid.New(),
		Type:       jobType,
		UserID:     userID,
		SubjectID:  subjectID,
		CreatedAt:  time.Now(),
		RetryCount: 0,
		MaxRetries: 3,
	}
}

// CanRetry checks if the job can be retried
func (j *Job) CanRetry() bool {
	return j.RetryCount < j.MaxRetries
}

// IncrementRetry increments the retry count
func (j *Job) IncrementRetry() {
	j.RetryCount++
}
