package service_test

import (
	"testing"
	"time"

	"taskboard/internal/model"

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

func boardRows(b *model.Board) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "owner_id", "member_ids", "statuses", "task_ids", "created_at", "updated_at"}).
		AddRow(b.ID.String(), b.Title, b.OwnerID.String(), jsonList(b.MemberIDs), jsonStrings(b.Statuses), jsonList(b.TaskIDs), time.Now(), time.Now())
}

func taskRows(tasks ...*model.Task) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "title", "description", "status", "sub_tasks", "assignee", "created_at", "updated_at"})
	for _, task := range tasks {
		rows.AddRow(task.ID.String(), task.Title, task.Description, task.Status, "[]", nil, time.Now(), time.Now())
	}
	return rows
}

func jsonList(ids []uuid.UUID) string {
	out := "["
	for i, id := range ids {
		if i > 0 {
			out += ","
		}
		out += `"` + id.String() + `"`
	}
	return out + "]"
}

func jsonStrings(items []string) string {
	out := "["
	for i, item := range items {
		if i > 0 {
			out += ","
		}
		out += `"` + item + `"`
	}
	return out + "]"
}
