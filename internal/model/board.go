package model

import (
	"time"

	"github.com/google/uuid"
)

type Board struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title   string    `gorm:"not null" json:"title"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null" json:"owner_id"`

	// MemberIDs never contains the owner; the owner's access is implicit.
	MemberIDs []uuid.UUID `gorm:"column:member_ids;type:jsonb;serializer:json;not null" json:"member_ids"`

	// Statuses is the board's ordered workflow; labels are unique per board.
	Statuses []string `gorm:"type:jsonb;serializer:json;not null" json:"statuses"`

	// TaskIDs is authoritative for task membership; tasks do not store a
	// back-reference to their board.
	TaskIDs []uuid.UUID `gorm:"column:task_ids;type:jsonb;serializer:json;not null" json:"task_ids"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BoardSummary is the snapshot of a board embedded in a user's board lists.
type BoardSummary struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

func NewBoardSummary(b *Board) BoardSummary {
	return BoardSummary{ID: b.ID, Title: b.Title}
}

// HasStatus reports whether label is one of the board's workflow labels.
// Matching is exact and case-sensitive.
func (b *Board) HasStatus(label string) bool {
	for _, s := range b.Statuses {
		if s == label {
			return true
		}
	}
	return false
}

// HasMember reports whether userID is in the member set (owner excluded).
func (b *Board) HasMember(userID uuid.UUID) bool {
	for _, id := range b.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
