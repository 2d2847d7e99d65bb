package models

import (
	"time"

	"github.com/google/uuid"
)

// SenderRole identifies who produced a chat message
type SenderRole string

const (
	SenderUser   SenderRole = "user"
	SenderAI     SenderRole = "ai"
	SenderSystem SenderRole = "system"
)

// ChatMessage is one turn of a tutoring conversation. Rows are append-only
// except for the Saved flag.
type ChatMessage struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	SubjectID uuid.UUID  `json:"subjectId"`
	Sender    SenderRole `json:"sender"`
	Text      string     `json:"text"`
	Sentiment *Sentiment `json:"sentiment,omitempty"`
	Saved     bool       `json:"saved"`
	CreatedAt time.Time  `json:"createdAt"`
}
