package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"darasa-schools/app/models"
)

func TestCreateUserAssignsRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("school-1", "bursar@darasa.test", "hashed", "Amina", "Okello").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("user-1", now, now))
	mock.ExpectExec(`INSERT INTO user_roles \(user_id, role_id\) SELECT \$1, r.id FROM roles r WHERE r.name = \$2`).
		WithArgs("user-1", "bursar").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	user := &models.User{
		SchoolID:  "school-1",
		Email:     "bursar@darasa.test",
		Password:  "hashed",
		FirstName: "Amina",
		LastName:  "Okello",
	}
	err = CreateUser(db, user, "bursar")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.True(t, user.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserUnknownRoleFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("school-1", "x@darasa.test", "hashed", "A", "B").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("user-1", now, now))
	mock.ExpectExec(`INSERT INTO user_roles`).
		WithArgs("user-1", "janitor").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	user := &models.User{
		SchoolID:  "school-1",
		Email:     "x@darasa.test",
		Password:  "hashed",
		FirstName: "A",
		LastName:  "B",
	}
	err = CreateUser(db, user, "janitor")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")
	assert.NoError(t, mock.ExpectationsWereMet())
}
