package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/service"
)

type BoardHandler struct {
	directory service.UserDirectoryInterface
	registry  service.BoardRegistryInterface
}

func NewBoardHandler(directory service.UserDirectoryInterface, registry service.BoardRegistryInterface) *BoardHandler {
	return &BoardHandler{directory: directory, registry: registry}
}

type CreateBoardRequest struct {
	Title string `json:"title" binding:"required"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type RemoveMembersRequest struct {
	UserIDs []uuid.UUID `json:"user_ids" binding:"required"`
}

// actor resolves the authenticated subject to its user record.
func (h *BoardHandler) actor(c *gin.Context) (*model.User, bool) {
	user, err := h.directory.BySubject(c.Request.Context(), middleware.Subject(c))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return user, true
}

func (h *BoardHandler) Create(c *gin.Context) {
	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, ok := h.actor(c)
	if !ok {
		return
	}

	board, err := h.registry.CreateBoard(c.Request.Context(), user.ID, req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, board)
}

func (h *BoardHandler) GetAll(c *gin.Context) {
	boards, err := h.registry.Boards(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, boards)
}

func (h *BoardHandler) GetByID(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}

	user, ok := h.actor(c)
	if !ok {
		return
	}

	detail, err := h.registry.BoardDetail(c.Request.Context(), boardID, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *BoardHandler) AddStatus(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, ok := h.actor(c)
	if !ok {
		return
	}

	if err := h.registry.AddStatus(c.Request.Context(), boardID, user.ID, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BoardHandler) RemoveStatus(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, ok := h.actor(c)
	if !ok {
		return
	}

	if err := h.registry.RemoveStatus(c.Request.Context(), boardID, user.ID, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BoardHandler) AddMember(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, ok := h.actor(c)
	if !ok {
		return
	}

	if err := h.registry.AddMember(c.Request.Context(), boardID, user.ID, req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BoardHandler) RemoveMembers(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}

	var req RemoveMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, ok := h.actor(c)
	if !ok {
		return
	}

	if err := h.registry.RemoveMembers(c.Request.Context(), boardID, user.ID, req.UserIDs); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BoardHandler) Delete(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}

	user, ok := h.actor(c)
	if !ok {
		return
	}

	if err := h.registry.DeleteBoard(c.Request.Context(), boardID, user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
