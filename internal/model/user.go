package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SubjectID      string    `gorm:"uniqueIndex;not null" json:"-"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	HashedPassword string    `gorm:"not null" json:"-"`
	Name           string    `gorm:"not null" json:"name"`

	// Denormalized board snapshots; BoardsJoined holds boards the user was
	// invited to, BoardsCreated the ones they own. Titles are frozen at the
	// time the reference was written.
	BoardsJoined  []BoardSummary `gorm:"column:boards_joined;type:jsonb;serializer:json;not null" json:"boards_joined"`
	BoardsCreated []BoardSummary `gorm:"column:boards_created;type:jsonb;serializer:json;not null" json:"boards_created"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// UserSummary is the snapshot of a user embedded in a task's assignee field.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

func NewUserSummary(u *User) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
