package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// BoardRegistry owns the boards collection and is the coordination hub for
// every operation that spans collections: board creation touches the owner's
// user record, membership changes touch the invitee's, deletion cascades
// into tasks and every member's board list. All multi-collection writes run
// inside one store transaction.
type BoardRegistry struct {
	db     *gorm.DB
	boards *repository.BoardRepository
	users  *repository.UserRepository
	tasks  *repository.TaskRepository
}

type BoardRegistryInterface interface {
	CreateBoard(ctx context.Context, ownerID uuid.UUID, title string) (*model.Board, error)
	Board(ctx context.Context, boardID, userID uuid.UUID) (*model.Board, error)
	Boards(ctx context.Context) ([]model.Board, error)
	BoardDetail(ctx context.Context, boardID, userID uuid.UUID) (*BoardDetail, error)
	AddStatus(ctx context.Context, boardID, userID uuid.UUID, label string) error
	RemoveStatus(ctx context.Context, boardID, userID uuid.UUID, label string) error
	AddMember(ctx context.Context, boardID, actorID uuid.UUID, email string) error
	RemoveMembers(ctx context.Context, boardID, actorID uuid.UUID, userIDs []uuid.UUID) error
	DeleteBoard(ctx context.Context, boardID, actorID uuid.UUID) error
}

var _ BoardRegistryInterface = (*BoardRegistry)(nil)

func NewBoardRegistry(db *gorm.DB, boards *repository.BoardRepository, users *repository.UserRepository, tasks *repository.TaskRepository) *BoardRegistry {
	return &BoardRegistry{db: db, boards: boards, users: users, tasks: tasks}
}

// BoardDetail is the fully-resolved view of a board: tasks and participant
// summaries instead of bare id lists.
type BoardDetail struct {
	ID       uuid.UUID           `json:"id"`
	Title    string              `json:"title"`
	Owner    model.UserSummary   `json:"owner"`
	Members  []model.UserSummary `json:"members"`
	Statuses []string            `json:"statuses"`
	Tasks    []model.Task        `json:"tasks"`
}

// CreateBoard inserts an empty board and appends its summary to the owner's
// created list in the same transaction. Neither write is observable unless
// both commit.
func (r *BoardRegistry) CreateBoard(ctx context.Context, ownerID uuid.UUID, title string) (*model.Board, error) {
	board := &model.Board{
		Title:     title,
		OwnerID:   ownerID,
		MemberIDs: []uuid.UUID{},
		Statuses:  []string{},
		TaskIDs:   []uuid.UUID{},
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner, err := r.users.WithTx(tx).ByID(ctx, ownerID)
		if err != nil {
			return err
		}
		if owner == nil {
			return fmt.Errorf("board owner %s: %w", ownerID, ErrNotFound)
		}

		if err := r.boards.WithTx(tx).Create(ctx, board); err != nil {
			return err
		}
		return r.users.WithTx(tx).AppendCreatedBoard(ctx, ownerID, model.NewBoardSummary(board))
	})
	if err != nil {
		return nil, err
	}
	return board, nil
}

// Board returns a board after checking the caller has member access.
func (r *BoardRegistry) Board(ctx context.Context, boardID, userID uuid.UUID) (*model.Board, error) {
	board, err := r.boards.ByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, fmt.Errorf("board %s: %w", boardID, ErrNotFound)
	}
	if AccessLevel(board, userID) < AccessMember {
		return nil, fmt.Errorf("board %s: %w", boardID, ErrForbidden)
	}
	return board, nil
}

func (r *BoardRegistry) Boards(ctx context.Context) ([]model.Board, error) {
	return r.boards.All(ctx)
}

// BoardDetail resolves a board's task ids and participant ids into full
// tasks and user summaries. Member access required.
func (r *BoardRegistry) BoardDetail(ctx context.Context, boardID, userID uuid.UUID) (*BoardDetail, error) {
	board, err := r.Board(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}

	tasks, err := r.tasks.ByIDs(ctx, board.TaskIDs)
	if err != nil {
		return nil, err
	}
	members, err := r.users.ByIDs(ctx, board.MemberIDs)
	if err != nil {
		return nil, err
	}
	owner, err := r.users.ByID(ctx, board.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, fmt.Errorf("board owner %s: %w", board.OwnerID, ErrNotFound)
	}

	detail := &BoardDetail{
		ID:       board.ID,
		Title:    board.Title,
		Owner:    model.NewUserSummary(owner),
		Members:  make([]model.UserSummary, 0, len(members)),
		Statuses: board.Statuses,
		Tasks:    tasks,
	}
	for i := range members {
		detail.Members = append(detail.Members, model.NewUserSummary(&members[i]))
	}
	return detail, nil
}

// AddStatus appends a workflow label. Member access required; a label the
// board already carries is an ErrConflict (matching is case-sensitive).
func (r *BoardRegistry) AddStatus(ctx context.Context, boardID, userID uuid.UUID, label string) error {
	if _, err := r.Board(ctx, boardID, userID); err != nil {
		return err
	}

	added, err := r.boards.AddStatus(ctx, boardID, label)
	if err != nil {
		return err
	}
	if !added {
		return fmt.Errorf("status %q already on board: %w", label, ErrConflict)
	}
	return nil
}

// RemoveStatus strips a workflow label. Removal is blocked, not cascaded:
// if any task on the board still holds the label the call fails with
// ErrConflict, so no task is left referencing a dead status. A label the
// board does not carry is also an ErrConflict.
func (r *BoardRegistry) RemoveStatus(ctx context.Context, boardID, userID uuid.UUID, label string) error {
	board, err := r.Board(ctx, boardID, userID)
	if err != nil {
		return err
	}

	tasks, err := r.tasks.ByIDs(ctx, board.TaskIDs)
	if err != nil {
		return err
	}
	for i := range tasks {
		if tasks[i].Status == label {
			return fmt.Errorf("status %q still held by task %s: %w", label, tasks[i].ID, ErrConflict)
		}
	}

	removed, err := r.boards.RemoveStatus(ctx, boardID, label)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("status %q not on board: %w", label, ErrConflict)
	}
	return nil
}

// AddMember invites a user by email. Owner access required. The board-side
// member append and the user-side summary append commit together; inviting
// an existing participant fails with ErrConflict.
func (r *BoardRegistry) AddMember(ctx context.Context, boardID, actorID uuid.UUID, email string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		board, err := r.boards.WithTx(tx).ByID(ctx, boardID)
		if err != nil {
			return err
		}
		if board == nil {
			return fmt.Errorf("board %s: %w", boardID, ErrNotFound)
		}

		invitee, err := r.users.WithTx(tx).ByEmail(ctx, email)
		if err != nil {
			return err
		}
		if invitee == nil {
			return fmt.Errorf("user with email %q: %w", email, ErrNotFound)
		}

		if AccessLevel(board, actorID) < AccessOwner {
			return fmt.Errorf("board %s: %w", boardID, ErrForbidden)
		}
		if invitee.ID == board.OwnerID {
			return fmt.Errorf("owner is always a participant: %w", ErrConflict)
		}

		added, err := r.boards.WithTx(tx).AddMember(ctx, boardID, invitee.ID)
		if err != nil {
			return err
		}
		if !added {
			return fmt.Errorf("user %s already a member: %w", invitee.ID, ErrConflict)
		}
		return r.users.WithTx(tx).AppendJoinedBoard(ctx, invitee.ID, model.NewBoardSummary(board))
	})
}

// RemoveMembers strips users from the board. Owner access required. Each id
// is its own atomic pair write (board member set + user joined list);
// removing a non-member is a no-op for that id, not an error.
func (r *BoardRegistry) RemoveMembers(ctx context.Context, boardID, actorID uuid.UUID, userIDs []uuid.UUID) error {
	board, err := r.boards.ByID(ctx, boardID)
	if err != nil {
		return err
	}
	if board == nil {
		return fmt.Errorf("board %s: %w", boardID, ErrNotFound)
	}
	if AccessLevel(board, actorID) < AccessOwner {
		return fmt.Errorf("board %s: %w", boardID, ErrForbidden)
	}

	for _, userID := range userIDs {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := r.boards.WithTx(tx).RemoveMember(ctx, boardID, userID); err != nil {
				return err
			}
			return r.users.WithTx(tx).RemoveJoinedBoard(ctx, []uuid.UUID{userID}, boardID)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// DeleteBoard cascades: the owner's created list, every task on the board,
// every member's joined list, and finally the board record, all in one
// transaction. No collection retains a reference to the board afterwards.
func (r *BoardRegistry) DeleteBoard(ctx context.Context, boardID, actorID uuid.UUID) error {
	board, err := r.boards.ByID(ctx, boardID)
	if err != nil {
		return err
	}
	if board == nil {
		return fmt.Errorf("board %s: %w", boardID, ErrNotFound)
	}
	if AccessLevel(board, actorID) < AccessOwner {
		return fmt.Errorf("board %s: %w", boardID, ErrForbidden)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.users.WithTx(tx).RemoveCreatedBoard(ctx, board.OwnerID, boardID); err != nil {
			return err
		}
		if err := r.tasks.WithTx(tx).DeleteByIDs(ctx, board.TaskIDs); err != nil {
			return err
		}
		if err := r.users.WithTx(tx).RemoveJoinedBoard(ctx, board.MemberIDs, boardID); err != nil {
			return err
		}
		return r.boards.WithTx(tx).Delete(ctx, boardID)
	})
}
