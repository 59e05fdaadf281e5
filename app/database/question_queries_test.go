package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuestionConditionsAlwaysScopesSchool(t *testing.T) {
	conditions, args := buildQuestionConditions("school-1", QuestionFilters{})

	assert.Equal(t, []string{"q.school_id = $1"}, conditions)
	assert.Equal(t, []interface{}{"school-1"}, args)
}

func TestBuildQuestionConditionsAllFilters(t *testing.T) {
	filters := QuestionFilters{
		Search:     "algebra",
		SubjectID:  "sub-1",
		ClassID:    "cls-1",
		Type:       "mcq",
		Difficulty: "easy",
		Status:     "approved",
	}

	conditions, args := buildQuestionConditions("school-1", filters)

	assert.Len(t, conditions, 7)
	assert.Equal(t, "q.school_id = $1", conditions[0])
	assert.Contains(t, conditions[1], "LOWER(q.question_text) LIKE $2")
	assert.Contains(t, conditions, "q.subject_id = $3")
	assert.Contains(t, conditions, "q.class_id = $4")
	assert.Contains(t, conditions, "q.question_type = $5")
	assert.Contains(t, conditions, "q.difficulty_level = $6")
	assert.Contains(t, conditions, "q.status = $7")
	assert.Equal(t, []interface{}{"school-1", "%algebra%", "sub-1", "cls-1", "mcq", "easy", "approved"}, args)
}

func TestBuildQuestionConditionsShortSearchIgnored(t *testing.T) {
	conditions, args := buildQuestionConditions("school-1", QuestionFilters{Search: "ab"})

	assert.Len(t, conditions, 1)
	assert.Len(t, args, 1)
}

func TestBuildQuestionConditionsSearchLowercased(t *testing.T) {
	_, args := buildQuestionConditions("school-1", QuestionFilters{Search: "AlGeBra"})

	assert.Equal(t, "%algebra%", args[1])
}

func TestDeleteQuestionReferencedByPaper(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM question_options`).
		WithArgs("q-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM question_tags`).
		WithArgs("q-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM questions_bank`).
		WithArgs("q-1", "school-1").
		WillReturnError(&pq.Error{Code: "23503"})
	mock.ExpectRollback()

	err = DeleteQuestion(db, "school-1", "q-1")
	assert.ErrorIs(t, err, ErrQuestionInUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}
