package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/service"
)

type TaskHandler struct {
	directory service.UserDirectoryInterface
	registry  service.BoardRegistryInterface
	tasks     service.TaskStoreInterface
}

func NewTaskHandler(directory service.UserDirectoryInterface, registry service.BoardRegistryInterface, tasks service.TaskStoreInterface) *TaskHandler {
	return &TaskHandler{directory: directory, registry: registry, tasks: tasks}
}

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status" binding:"required"`
	SubTasks    []string   `json:"sub_tasks"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
}

type UpdateTaskRequest struct {
	BoardID     uuid.UUID          `json:"board_id" binding:"required"`
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Status      string             `json:"status" binding:"required"`
	SubTasks    []model.SubTask    `json:"sub_tasks"`
	Assignee    *model.UserSummary `json:"assignee"`
}

// board resolves the acting user and the target board, with BoardRegistry
// enforcing member access on the way.
func (h *TaskHandler) board(c *gin.Context, boardID uuid.UUID) (*model.Board, bool) {
	user, err := h.directory.BySubject(c.Request.Context(), middleware.Subject(c))
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	board, err := h.registry.Board(c.Request.Context(), boardID, user.ID)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return board, true
}

func (h *TaskHandler) Create(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, ok := h.board(c, boardID)
	if !ok {
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), board, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		SubTasks:    req.SubTasks,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) GetByID(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	task, err := h.tasks.Task(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, ok := h.board(c, req.BoardID)
	if !ok {
		return
	}

	task := &model.Task{
		ID:          taskID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		SubTasks:    req.SubTasks,
		Assignee:    req.Assignee,
	}
	if task.SubTasks == nil {
		task.SubTasks = []model.SubTask{}
	}

	if err := h.tasks.UpdateTask(c.Request.Context(), board, task); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}

	taskID, err := uuid.Parse(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	board, ok := h.board(c, boardID)
	if !ok {
		return
	}

	if err := h.tasks.RemoveTask(c.Request.Context(), board, taskID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
