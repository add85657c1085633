package repository_test

import (
	"context"
	"testing"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock
}

func userRows(u *model.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "subject_id", "email", "hashed_password", "name", "boards_joined", "boards_created", "created_at"}).
		AddRow(u.ID.String(), u.SubjectID, u.Email, u.HashedPassword, u.Name, "[]", "[]", time.Now())
}

func TestUserRepository_Create(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	userID := uuid.New()
	user := &model.User{
		SubjectID:      "subject-1",
		Email:          "test@example.com",
		HashedPassword: "hashed_password",
		Name:           "Test User",
		BoardsJoined:   []model.BoardSummary{},
		BoardsCreated:  []model.BoardSummary{},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(userID.String()))
	mock.ExpectCommit()

	// Act
	err := userRepo.Create(context.Background(), user)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ByEmail_Found(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	want := &model.User{
		ID:             uuid.New(),
		SubjectID:      "subject-1",
		Email:          "test@example.com",
		HashedPassword: "hashed_password",
		Name:           "Test User",
	}

	mock.ExpectQuery(`SELECT .* FROM "users" WHERE email = .*`).
		WillReturnRows(userRows(want))

	// Act
	user, err := userRepo.ByEmail(context.Background(), want.Email)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, want.ID, user.ID)
	assert.Equal(t, want.Email, user.Email)
	assert.Equal(t, "Test User", user.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ByEmail_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	email := "nonexistent@example.com"

	mock.ExpectQuery(`SELECT .* FROM "users" WHERE email = .*`).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act
	user, err := userRepo.ByEmail(context.Background(), email)

	// Assert
	assert.NoError(t, err) // absent record is not an error at this layer
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_BySubject_Error(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "users" WHERE subject_id = .*`).
		WillReturnError(assert.AnError)

	// Act
	user, err := userRepo.BySubject(context.Background(), "subject-1")

	// Assert
	assert.Error(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_AppendJoinedBoard(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	userID := uuid.New()
	summary := model.BoardSummary{ID: uuid.New(), Title: "Sprint"}

	mock.ExpectExec(`UPDATE users SET boards_joined = boards_joined \|\|`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Act
	err := userRepo.AppendJoinedBoard(context.Background(), userID, summary)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_RemoveJoinedBoard(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	boardID := uuid.New()
	userIDs := []uuid.UUID{uuid.New(), uuid.New()}

	mock.ExpectExec(`UPDATE users SET boards_joined = COALESCE`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	// Act
	err := userRepo.RemoveJoinedBoard(context.Background(), userIDs, boardID)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_RemoveJoinedBoard_NoUsers(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	// Act: empty id list issues no SQL at all
	err := userRepo.RemoveJoinedBoard(context.Background(), nil, uuid.New())

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
