package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBoardRegistry struct {
	mock.Mock
}

func (m *MockBoardRegistry) CreateBoard(ctx context.Context, ownerID uuid.UUID, title string) (*model.Board, error) {
	args := m.Called(ctx, ownerID, title)
	board := args.Get(0)
	if board == nil {
		return nil, args.Error(1)
	}
	return board.(*model.Board), args.Error(1)
}

func (m *MockBoardRegistry) Board(ctx context.Context, boardID, userID uuid.UUID) (*model.Board, error) {
	args := m.Called(ctx, boardID, userID)
	board := args.Get(0)
	if board == nil {
		return nil, args.Error(1)
	}
	return board.(*model.Board), args.Error(1)
}

func (m *MockBoardRegistry) Boards(ctx context.Context) ([]model.Board, error) {
	args := m.Called(ctx)
	boards := args.Get(0)
	if boards == nil {
		return nil, args.Error(1)
	}
	return boards.([]model.Board), args.Error(1)
}

func (m *MockBoardRegistry) BoardDetail(ctx context.Context, boardID, userID uuid.UUID) (*service.BoardDetail, error) {
	args := m.Called(ctx, boardID, userID)
	detail := args.Get(0)
	if detail == nil {
		return nil, args.Error(1)
	}
	return detail.(*service.BoardDetail), args.Error(1)
}

func (m *MockBoardRegistry) AddStatus(ctx context.Context, boardID, userID uuid.UUID, label string) error {
	args := m.Called(ctx, boardID, userID, label)
	return args.Error(0)
}

func (m *MockBoardRegistry) RemoveStatus(ctx context.Context, boardID, userID uuid.UUID, label string) error {
	args := m.Called(ctx, boardID, userID, label)
	return args.Error(0)
}

func (m *MockBoardRegistry) AddMember(ctx context.Context, boardID, actorID uuid.UUID, email string) error {
	args := m.Called(ctx, boardID, actorID, email)
	return args.Error(0)
}

func (m *MockBoardRegistry) RemoveMembers(ctx context.Context, boardID, actorID uuid.UUID, userIDs []uuid.UUID) error {
	args := m.Called(ctx, boardID, actorID, userIDs)
	return args.Error(0)
}

func (m *MockBoardRegistry) DeleteBoard(ctx context.Context, boardID, actorID uuid.UUID) error {
	args := m.Called(ctx, boardID, actorID)
	return args.Error(0)
}

// setupBoardTest wires the board routes behind a stub auth middleware that
// injects the given subject.
func setupBoardTest(subject string) (*gin.Engine, *MockUserDirectory, *MockBoardRegistry) {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	mockDir := new(MockUserDirectory)
	mockReg := new(MockBoardRegistry)
	boardHandler := handler.NewBoardHandler(mockDir, mockReg)

	r.Use(func(c *gin.Context) {
		c.Set(middleware.SubjectKey, subject)
	})
	r.POST("/boards", boardHandler.Create)
	r.GET("/boards/:id", boardHandler.GetByID)
	r.DELETE("/boards/:id", boardHandler.Delete)
	r.POST("/boards/:id/statuses", boardHandler.AddStatus)
	r.DELETE("/boards/:id/statuses", boardHandler.RemoveStatus)
	r.POST("/boards/:id/members", boardHandler.AddMember)
	r.DELETE("/boards/:id/members", boardHandler.RemoveMembers)

	return r, mockDir, mockReg
}

func testActor(subject string) *model.User {
	return &model.User{
		ID:        uuid.New(),
		SubjectID: subject,
		Email:     "actor@example.com",
		Name:      "Actor",
	}
}

func TestBoardCreate_Success(t *testing.T) {
	// Arrange
	router, mockDir, mockReg := setupBoardTest("subject-1")
	actor := testActor("subject-1")

	board := &model.Board{
		ID:        uuid.New(),
		Title:     "Sprint",
		OwnerID:   actor.ID,
		MemberIDs: []uuid.UUID{},
		Statuses:  []string{},
		TaskIDs:   []uuid.UUID{},
	}
	mockDir.On("BySubject", mock.Anything, "subject-1").Return(actor, nil)
	mockReg.On("CreateBoard", mock.Anything, actor.ID, "Sprint").Return(board, nil)

	jsonBody, _ := json.Marshal(handler.CreateBoardRequest{Title: "Sprint"})
	req, _ := http.NewRequest("POST", "/boards", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)

	var got model.Board
	err := json.Unmarshal(resp.Body.Bytes(), &got)
	assert.NoError(t, err)
	assert.Equal(t, board.ID, got.ID)
	assert.Equal(t, actor.ID, got.OwnerID)

	mockDir.AssertExpectations(t)
	mockReg.AssertExpectations(t)
}

func TestBoardGetByID_Forbidden(t *testing.T) {
	// Arrange
	router, mockDir, mockReg := setupBoardTest("subject-1")
	actor := testActor("subject-1")
	boardID := uuid.New()

	mockDir.On("BySubject", mock.Anything, "subject-1").Return(actor, nil)
	mockReg.On("BoardDetail", mock.Anything, boardID, actor.ID).
		Return(nil, fmt.Errorf("board %s: %w", boardID, service.ErrForbidden))

	req, _ := http.NewRequest("GET", "/boards/"+boardID.String(), nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, resp.Code)
	mockDir.AssertExpectations(t)
	mockReg.AssertExpectations(t)
}

func TestBoardAddStatus_Conflict(t *testing.T) {
	// Arrange
	router, mockDir, mockReg := setupBoardTest("subject-1")
	actor := testActor("subject-1")
	boardID := uuid.New()

	mockDir.On("BySubject", mock.Anything, "subject-1").Return(actor, nil)
	mockReg.On("AddStatus", mock.Anything, boardID, actor.ID, "Todo").
		Return(fmt.Errorf("status %q already on board: %w", "Todo", service.ErrConflict))

	jsonBody, _ := json.Marshal(handler.StatusRequest{Status: "Todo"})
	req, _ := http.NewRequest("POST", "/boards/"+boardID.String()+"/statuses", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusConflict, resp.Code)
	mockDir.AssertExpectations(t)
	mockReg.AssertExpectations(t)
}

func TestBoardAddMember_Success(t *testing.T) {
	// Arrange
	router, mockDir, mockReg := setupBoardTest("subject-1")
	actor := testActor("subject-1")
	boardID := uuid.New()

	mockDir.On("BySubject", mock.Anything, "subject-1").Return(actor, nil)
	mockReg.On("AddMember", mock.Anything, boardID, actor.ID, "invitee@example.com").Return(nil)

	jsonBody, _ := json.Marshal(handler.AddMemberRequest{Email: "invitee@example.com"})
	req, _ := http.NewRequest("POST", "/boards/"+boardID.String()+"/members", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusNoContent, resp.Code)
	mockDir.AssertExpectations(t)
	mockReg.AssertExpectations(t)
}

func TestBoardDelete_Forbidden(t *testing.T) {
	// Arrange
	router, mockDir, mockReg := setupBoardTest("subject-1")
	actor := testActor("subject-1")
	boardID := uuid.New()

	mockDir.On("BySubject", mock.Anything, "subject-1").Return(actor, nil)
	mockReg.On("DeleteBoard", mock.Anything, boardID, actor.ID).
		Return(fmt.Errorf("board %s: %w", boardID, service.ErrForbidden))

	req, _ := http.NewRequest("DELETE", "/boards/"+boardID.String(), nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, resp.Code)
	mockDir.AssertExpectations(t)
	mockReg.AssertExpectations(t)
}

func TestBoardGetByID_InvalidID(t *testing.T) {
	// Arrange
	router, _, _ := setupBoardTest("subject-1")

	req, _ := http.NewRequest("GET", "/boards/not-a-uuid", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
