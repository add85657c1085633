package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a copy of the repository bound to tx, so multi-collection
// writes can run inside a single transaction.
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) BySubject(ctx context.Context, subjectID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("subject_id = ?", subjectID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *UserRepository) ByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

// ByEmail looks a user up by the email used for invitations. Matching is
// exact and case-sensitive; emails are stored as given at registration.
func (r *UserRepository) ByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *UserRepository) ByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	var users []model.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

// AppendJoinedBoard appends a board snapshot to the user's joined list.
// The write is additive, not a record replace.
func (r *UserRepository) AppendJoinedBoard(ctx context.Context, userID uuid.UUID, summary model.BoardSummary) error {
	return r.appendSummary(ctx, "boards_joined", userID, summary)
}

// AppendCreatedBoard appends a board snapshot to the user's created list.
func (r *UserRepository) AppendCreatedBoard(ctx context.Context, userID uuid.UUID, summary model.BoardSummary) error {
	return r.appendSummary(ctx, "boards_created", userID, summary)
}

func (r *UserRepository) appendSummary(ctx context.Context, column string, userID uuid.UUID, summary model.BoardSummary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Exec(
		"UPDATE users SET "+column+" = "+column+" || ?::jsonb WHERE id = ?",
		string(raw), userID,
	).Error
}

// RemoveJoinedBoard strips every snapshot of the given board from the joined
// lists of the listed users. Removal is by board id, not position, and is a
// no-op for users who do not reference the board.
func (r *UserRepository) RemoveJoinedBoard(ctx context.Context, userIDs []uuid.UUID, boardID uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Exec(
		`UPDATE users SET boards_joined = COALESCE(
			(SELECT jsonb_agg(b) FROM jsonb_array_elements(boards_joined) b WHERE b->>'id' <> ?),
			'[]'::jsonb)
		WHERE id IN ?`,
		boardID.String(), userIDs,
	).Error
}

// RemoveCreatedBoard strips a board snapshot from the owner's created list.
func (r *UserRepository) RemoveCreatedBoard(ctx context.Context, userID uuid.UUID, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE users SET boards_created = COALESCE(
			(SELECT jsonb_agg(b) FROM jsonb_array_elements(boards_created) b WHERE b->>'id' <> ?),
			'[]'::jsonb)
		WHERE id = ?`,
		boardID.String(), userID,
	).Error
}
