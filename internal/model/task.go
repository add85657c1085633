package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`

	// Status must be one of the owning board's labels at the time of write.
	Status string `gorm:"not null" json:"status"`

	SubTasks []SubTask `gorm:"column:sub_tasks;type:jsonb;serializer:json;not null" json:"sub_tasks"`

	// Assignee is a point-in-time snapshot, not refreshed when the user's
	// display fields change.
	Assignee *UserSummary `gorm:"type:jsonb;serializer:json" json:"assignee,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SubTask struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}
