package service

import (
	"github.com/google/uuid"

	"taskboard/internal/model"
)

// Access is a board authorization level.
type Access int

const (
	// AccessNone: the user is neither the owner nor a member.
	AccessNone Access = iota
	// AccessMember: the user is in the member set, or is the owner. Grants
	// viewing the board and mutating its status list and tasks.
	AccessMember
	// AccessOwner: the user created the board. Additionally grants inviting
	// and removing members and deleting the board.
	AccessOwner
)

// AccessLevel computes the caller's authorization level on a board. The
// owner is never listed in the member set; ownership implies member access.
func AccessLevel(board *model.Board, userID uuid.UUID) Access {
	if board.OwnerID == userID {
		return AccessOwner
	}
	if board.HasMember(userID) {
		return AccessMember
	}
	return AccessNone
}
