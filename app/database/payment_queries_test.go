package database

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkInstallmentPaidScopedToSchool(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE payment_installments SET status = 'paid', paid_at = NOW\(\) WHERE id = \$1 AND status = 'pending' AND payment_id IN \(SELECT id FROM student_payments WHERE id = \$2 AND school_id = \$3\)`).
		WithArgs("inst-1", "pay-1", "school-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE student_payments p SET amount_paid = sub.paid`).
		WithArgs("pay-1", "school-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = MarkInstallmentPaid(db, "school-1", "pay-1", "inst-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkInstallmentPaidOtherSchoolNoMatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE payment_installments`).
		WithArgs("inst-1", "pay-1", "school-other").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = MarkInstallmentPaid(db, "school-other", "pay-1", "inst-1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkInstallmentPaidRecomputeMustHitParent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE payment_installments`).
		WithArgs("inst-1", "pay-1", "school-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE student_payments p`).
		WithArgs("pay-1", "school-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = MarkInstallmentPaid(db, "school-1", "pay-1", "inst-1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
