package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// TaskStore owns the tasks collection and keeps a board's task id list
// consistent with actual task existence. It trusts its caller for board
// access checks: every mutating method takes a board the caller already
// resolved through BoardRegistry.Board, which enforces member access.
type TaskStore struct {
	db     *gorm.DB
	tasks  *repository.TaskRepository
	boards *repository.BoardRepository
	users  *repository.UserRepository
}

type TaskStoreInterface interface {
	CreateTask(ctx context.Context, board *model.Board, in CreateTaskInput) (*model.Task, error)
	Task(ctx context.Context, id uuid.UUID) (*model.Task, error)
	Tasks(ctx context.Context, ids []uuid.UUID) ([]model.Task, error)
	UpdateTask(ctx context.Context, board *model.Board, task *model.Task) error
	RemoveTask(ctx context.Context, board *model.Board, taskID uuid.UUID) error
}

var _ TaskStoreInterface = (*TaskStore)(nil)

func NewTaskStore(db *gorm.DB, tasks *repository.TaskRepository, boards *repository.BoardRepository, users *repository.UserRepository) *TaskStore {
	return &TaskStore{db: db, tasks: tasks, boards: boards, users: users}
}

type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	SubTasks    []string
	AssigneeID  *uuid.UUID
}

// CreateTask inserts a task and appends its id to the board's task list in
// one transaction. The status must be one of the board's current labels
// (ErrConflict otherwise); an assignee must resolve (ErrNotFound) and be a
// board participant (ErrBadRequest otherwise). The stored assignee is a
// snapshot taken now, never refreshed.
func (s *TaskStore) CreateTask(ctx context.Context, board *model.Board, in CreateTaskInput) (*model.Task, error) {
	if !board.HasStatus(in.Status) {
		return nil, fmt.Errorf("board has no status %q: %w", in.Status, ErrConflict)
	}

	task := &model.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		SubTasks:    make([]model.SubTask, 0, len(in.SubTasks)),
	}
	for _, desc := range in.SubTasks {
		task.SubTasks = append(task.SubTasks, model.SubTask{Description: desc})
	}

	if in.AssigneeID != nil {
		assignee, err := s.users.ByID(ctx, *in.AssigneeID)
		if err != nil {
			return nil, err
		}
		if assignee == nil {
			return nil, fmt.Errorf("assignee %s: %w", *in.AssigneeID, ErrNotFound)
		}
		if AccessLevel(board, assignee.ID) < AccessMember {
			return nil, fmt.Errorf("assignee %s not a board participant: %w", assignee.ID, ErrBadRequest)
		}
		summary := model.NewUserSummary(assignee)
		task.Assignee = &summary
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.tasks.WithTx(tx).Create(ctx, task); err != nil {
			return err
		}
		return s.boards.WithTx(tx).AppendTaskID(ctx, board.ID, task.ID)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskStore) Task(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return task, nil
}

func (s *TaskStore) Tasks(ctx context.Context, ids []uuid.UUID) ([]model.Task, error) {
	return s.tasks.ByIDs(ctx, ids)
}

// UpdateTask replaces the full task record. Staleness is re-checked on every
// write: the assignee (if any) must still be a board participant and the
// status must still be one of the board's labels. The assignee snapshot
// itself is kept as submitted.
func (s *TaskStore) UpdateTask(ctx context.Context, board *model.Board, task *model.Task) error {
	existing, err := s.tasks.ByID(ctx, task.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("task %s: %w", task.ID, ErrNotFound)
	}

	if !board.HasStatus(task.Status) {
		return fmt.Errorf("board has no status %q: %w", task.Status, ErrConflict)
	}
	if task.Assignee != nil && AccessLevel(board, task.Assignee.ID) < AccessMember {
		return fmt.Errorf("assignee %s not a board participant: %w", task.Assignee.ID, ErrBadRequest)
	}

	task.CreatedAt = existing.CreatedAt
	return s.tasks.Update(ctx, task)
}

// RemoveTask deletes the task record and strips its id from the board's
// task list in one transaction.
func (s *TaskStore) RemoveTask(ctx context.Context, board *model.Board, taskID uuid.UUID) error {
	existing, err := s.tasks.ByID(ctx, taskID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("task %s: %w", taskID, ErrNotFound)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.tasks.WithTx(tx).Delete(ctx, taskID); err != nil {
			return err
		}
		return s.boards.WithTx(tx).RemoveTaskID(ctx, board.ID, taskID)
	})
}
