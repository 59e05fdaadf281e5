package database

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"darasa-schools/app/models"
)

func TestGradeSubmissionScopedToActivity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	feedback := "Good work"
	mock.ExpectExec(`UPDATE student_submissions SET .+ WHERE id = \$5 AND activity_id = \$6 AND status <> 'pending'`).
		WithArgs(8, &feedback, string(models.SubmissionGraded), "grader-1", "sub-1", "act-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = GradeSubmission(db, "act-1", "sub-1", "grader-1", 8, &feedback)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeSubmissionOtherActivityNoMatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE student_submissions`).
		WithArgs(8, nil, string(models.SubmissionGraded), "grader-1", "sub-1", "act-other").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = GradeSubmission(db, "act-other", "sub-1", "grader-1", 8, nil)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
