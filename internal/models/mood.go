package models

import (
	"time"

	"github.com/google/uuid"
)

// Sentiment is a heuristic polarity estimate for a message.
// Score is bounded to [-1, 1], Magnitude to [0, 1].
type Sentiment struct {
	Score     float64 `json:"score"`
	Magnitude float64 `json:"magnitude"`
}

// MoodLogEntry records the sentiment of a single user message.
// Entries are written alongside each user chat turn and are read-only after.
type MoodLogEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	SubjectID uuid.UUID `json:"subjectId"`
	Score     float64   `json:"score"`
	Magnitude float64   `json:"magnitude"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// MoodSummary is a rolling aggregate of a user's recent mood for one subject,
// maintained asynchronously by the rollup worker.
type MoodSummary struct {
	UserID       uuid.UUID `json:"userId"`
	SubjectID    uuid.UUID `json:"subjectId"`
	AvgScore     float64   `json:"avgScore"`
	AvgMagnitude float64   `json:"avgMagnitude"`
	EntryCount   int       `json:"entryCount"`
	WindowDays   int       `json:"windowDays"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
