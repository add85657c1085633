package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/internal/model"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) WithTx(tx *gorm.DB) *BoardRepository {
	return &BoardRepository{db: tx}
}

func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

func (r *BoardRepository) ByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepository) All(ctx context.Context) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Board{}, "id = ?", id).Error
}

// AddStatus appends a workflow label. The append is guarded so a concurrent
// duplicate cannot slip in between a read and a replace; it reports false
// when the label was already present.
func (r *BoardRepository) AddStatus(ctx context.Context, boardID uuid.UUID, label string) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE boards SET statuses = statuses || to_jsonb(?::text)
		WHERE id = ? AND NOT statuses @> to_jsonb(?::text)`,
		label, boardID, label,
	)
	return result.RowsAffected > 0, result.Error
}

// RemoveStatus strips a workflow label; reports false when it was absent.
func (r *BoardRepository) RemoveStatus(ctx context.Context, boardID uuid.UUID, label string) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE boards SET statuses = statuses - ?
		WHERE id = ? AND statuses @> to_jsonb(?::text)`,
		label, boardID, label,
	)
	return result.RowsAffected > 0, result.Error
}

// AddMember appends a user id to the member set; reports false when the user
// was already a member.
func (r *BoardRepository) AddMember(ctx context.Context, boardID, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE boards SET member_ids = member_ids || to_jsonb(?::text)
		WHERE id = ? AND NOT member_ids @> to_jsonb(?::text)`,
		userID.String(), boardID, userID.String(),
	)
	return result.RowsAffected > 0, result.Error
}

// RemoveMember strips a user id from the member set; removing a non-member
// is a no-op.
func (r *BoardRepository) RemoveMember(ctx context.Context, boardID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"UPDATE boards SET member_ids = member_ids - ? WHERE id = ?",
		userID.String(), boardID,
	).Error
}

// AppendTaskID appends a task id to the board's ordered task list.
func (r *BoardRepository) AppendTaskID(ctx context.Context, boardID, taskID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"UPDATE boards SET task_ids = task_ids || to_jsonb(?::text) WHERE id = ?",
		taskID.String(), boardID,
	).Error
}

// RemoveTaskID strips a task id from the board's task list.
func (r *BoardRepository) RemoveTaskID(ctx context.Context, boardID, taskID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"UPDATE boards SET task_ids = task_ids - ? WHERE id = ?",
		taskID.String(), boardID,
	).Error
}
