package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// UserDirectory owns the users collection. It resolves identity subjects to
// user records and holds the user-side denormalized board references that
// BoardRegistry mutates during cross-collection writes.
type UserDirectory struct {
	users *repository.UserRepository
}

type UserDirectoryInterface interface {
	Register(ctx context.Context, subjectID, name, email, hashedPassword string) (*model.User, error)
	BySubject(ctx context.Context, subjectID string) (*model.User, error)
	ByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
	Members(ctx context.Context, ids []uuid.UUID) ([]model.User, error)
}

var _ UserDirectoryInterface = (*UserDirectory)(nil)

func NewUserDirectory(users *repository.UserRepository) *UserDirectory {
	return &UserDirectory{users: users}
}

// Register creates a user with empty board lists. It fails with ErrConflict
// when the identity subject or the email is already registered.
func (d *UserDirectory) Register(ctx context.Context, subjectID, name, email, hashedPassword string) (*model.User, error) {
	existing, err := d.users.BySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("subject already registered: %w", ErrConflict)
	}

	existing, err = d.users.ByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered: %w", ErrConflict)
	}

	user := &model.User{
		SubjectID:      subjectID,
		Name:           name,
		Email:          email,
		HashedPassword: hashedPassword,
		BoardsJoined:   []model.BoardSummary{},
		BoardsCreated:  []model.BoardSummary{},
	}
	if err := d.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// BySubject maps an identity subject to its user record.
func (d *UserDirectory) BySubject(ctx context.Context, subjectID string) (*model.User, error) {
	user, err := d.users.BySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user for subject %q: %w", subjectID, ErrNotFound)
	}
	return user, nil
}

func (d *UserDirectory) ByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := d.users.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return user, nil
}

// ByEmail resolves an invitation email to a user. Matching is exact and
// case-sensitive.
func (d *UserDirectory) ByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := d.users.ByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user with email %q: %w", email, ErrNotFound)
	}
	return user, nil
}

// Members fetches the users behind a board's member id list. Ids that no
// longer resolve are skipped rather than failing the whole read.
func (d *UserDirectory) Members(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	return d.users.ByIDs(ctx, ids)
}
