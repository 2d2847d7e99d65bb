package models

import "github.com/google/uuid"

// Subject is a fixed tutoring topic. Subjects are reference data: they are
// seeded by the configure CLI and referenced by id from messages and mood logs.
type Subject struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
	Icon  string    `json:"icon"`
}
