package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"darasa-schools/app/models"
)

// PaymentFilters represents filtering options for the payment review list.
type PaymentFilters struct {
	Status    string
	StudentID string
	DateFrom  string
	DateTo    string
}

func GetStudentPayments(db *sql.DB, schoolID string, filters PaymentFilters) ([]*models.StudentPayment, error) {
	conditions := []string{"p.school_id = $1"}
	args := []interface{}{schoolID}
	argIndex := 2

	if filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argIndex))
		args = append(args, filters.Status)
		argIndex++
	}
	if filters.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("p.student_id = $%d", argIndex))
		args = append(args, filters.StudentID)
		argIndex++
	}
	if filters.DateFrom != "" {
		conditions = append(conditions, fmt.Sprintf("p.created_at >= $%d", argIndex))
		args = append(args, filters.DateFrom)
		argIndex++
	}
	if filters.DateTo != "" {
		conditions = append(conditions, fmt.Sprintf("p.created_at <= $%d", argIndex))
		args = append(args, filters.DateTo)
		argIndex++
	}

	query := `SELECT p.id, p.school_id, p.student_id, p.total_amount, p.amount_paid, p.balance,
			  p.payment_method, p.reference, p.status, p.verified_by, p.verified_at, p.notes,
			  p.created_at, p.updated_at,
			  st.student_no, st.first_name, st.last_name
			  FROM student_payments p
			  INNER JOIN students st ON p.student_id = st.id
			  WHERE ` + strings.Join(conditions, " AND ") + `
			  ORDER BY p.created_at DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return []*models.StudentPayment{}, err
	}
	defer rows.Close()

	var payments []*models.StudentPayment
	for rows.Next() {
		p := &models.StudentPayment{}
		var studentNo, firstName, lastName string
		err := rows.Scan(
			&p.ID, &p.SchoolID, &p.StudentID, &p.TotalAmount, &p.AmountPaid, &p.Balance,
			&p.PaymentMethod, &p.Reference, &p.Status, &p.VerifiedBy, &p.VerifiedAt, &p.Notes,
			&p.CreatedAt, &p.UpdatedAt, &studentNo, &firstName, &lastName,
		)
		if err != nil {
			continue
		}

		p.Student = &models.Student{
			ID:        p.StudentID,
			StudentNo: studentNo,
			FirstName: firstName,
			LastName:  lastName,
		}

		payments = append(payments, p)
	}

	if payments == nil {
		payments = []*models.StudentPayment{}
	}

	return payments, nil
}

// GetStudentPaymentByID loads one payment with installments and attachments.
func GetStudentPaymentByID(db *sql.DB, schoolID, paymentID string) (*models.StudentPayment, error) {
	p := &models.StudentPayment{}
	query := `SELECT p.id, p.school_id, p.student_id, p.total_amount, p.amount_paid, p.balance,
			  p.payment_method, p.reference, p.status, p.verified_by, p.verified_at, p.notes,
			  p.created_at, p.updated_at,
			  st.student_no, st.first_name, st.last_name
			  FROM student_payments p
			  INNER JOIN students st ON p.student_id = st.id
			  WHERE p.id = $1 AND p.school_id = $2`

	var studentNo, firstName, lastName string
	err := db.QueryRow(query, paymentID, schoolID).Scan(
		&p.ID, &p.SchoolID, &p.StudentID, &p.TotalAmount, &p.AmountPaid, &p.Balance,
		&p.PaymentMethod, &p.Reference, &p.Status, &p.VerifiedBy, &p.VerifiedAt, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt, &studentNo, &firstName, &lastName,
	)
	if err != nil {
		return nil, err
	}

	p.Student = &models.Student{
		ID:        p.StudentID,
		StudentNo: studentNo,
		FirstName: firstName,
		LastName:  lastName,
	}

	installments, err := getPaymentInstallments(db, p.ID)
	if err != nil {
		return nil, err
	}
	p.Installments = installments

	attachments, err := getPaymentAttachments(db, p.ID)
	if err != nil {
		return nil, err
	}
	p.Attachments = attachments

	return p, nil
}

func getPaymentInstallments(db *sql.DB, paymentID string) ([]*models.PaymentInstallment, error) {
	query := `SELECT id, payment_id, due_date, amount, status, paid_at
			  FROM payment_installments WHERE payment_id = $1 ORDER BY due_date`

	rows, err := db.Query(query, paymentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var installments []*models.PaymentInstallment
	for rows.Next() {
		inst := &models.PaymentInstallment{}
		if err := rows.Scan(&inst.ID, &inst.PaymentID, &inst.DueDate, &inst.Amount, &inst.Status, &inst.PaidAt); err != nil {
			return nil, err
		}
		installments = append(installments, inst)
	}
	return installments, nil
}

func getPaymentAttachments(db *sql.DB, paymentID string) ([]*models.PaymentAttachment, error) {
	query := `SELECT id, payment_id, file_name, file_path, uploaded_by, uploaded_at
			  FROM payment_attachments WHERE payment_id = $1 ORDER BY uploaded_at`

	rows, err := db.Query(query, paymentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []*models.PaymentAttachment
	for rows.Next() {
		att := &models.PaymentAttachment{}
		if err := rows.Scan(&att.ID, &att.PaymentID, &att.FileName, &att.FilePath, &att.UploadedBy, &att.UploadedAt); err != nil {
			return nil, err
		}
		attachments = append(attachments, att)
	}
	return attachments, nil
}

// CreateStudentPayment records a payment with optional installments in one
// transaction. Balance is derived, never supplied.
func CreateStudentPayment(db *sql.DB, schoolID string, p *models.StudentPayment) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	p.SchoolID = schoolID
	p.Balance = p.TotalAmount - p.AmountPaid
	if p.Status == "" {
		p.Status = models.PaymentPending
	}

	query := `INSERT INTO student_payments (school_id, student_id, total_amount, amount_paid, balance,
			  payment_method, reference, status, notes, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	err = tx.QueryRow(query,
		p.SchoolID, p.StudentID, p.TotalAmount, p.AmountPaid, p.Balance,
		p.PaymentMethod, p.Reference, string(p.Status), p.Notes,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %v", err)
	}

	for _, inst := range p.Installments {
		err := tx.QueryRow(
			`INSERT INTO payment_installments (payment_id, due_date, amount, status)
			 VALUES ($1, $2, $3, 'pending') RETURNING id`,
			p.ID, inst.DueDate, inst.Amount,
		).Scan(&inst.ID)
		if err != nil {
			return fmt.Errorf("failed to insert installment: %v", err)
		}
		inst.PaymentID = p.ID
		inst.Status = models.InstallmentPending
	}

	return tx.Commit()
}

// VerifyPayment moves a pending payment to completed, stamps the verifier,
// and appends a note line and the audit row in the same transaction.
// The status guard in the WHERE clause rejects double verification.
func VerifyPayment(db *sql.DB, schoolID, paymentID, verifierID, verifierName string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	noteLine := fmt.Sprintf("[%s] Verified by %s", time.Now().Format("2006-01-02 15:04"), verifierName)

	query := `UPDATE student_payments
			  SET status = $1, verified_by = $2, verified_at = NOW(),
			  notes = COALESCE(notes || E'\n', '') || $3,
			  updated_at = NOW()
			  WHERE id = $4 AND school_id = $5 AND status = $6`

	result, err := tx.Exec(query,
		string(models.PaymentCompleted), verifierID, noteLine,
		paymentID, schoolID, string(models.PaymentPending),
	)
	if err != nil {
		return fmt.Errorf("failed to verify payment: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	if err := insertAudit(tx, schoolID, "student_payment", paymentID, verifierID, "verify", nil); err != nil {
		return err
	}

	return tx.Commit()
}

// RejectPayment moves a pending payment to cancelled with a mandatory
// reason, recorded both as a note line and in the audit log.
func RejectPayment(db *sql.DB, schoolID, paymentID, actorID, actorName, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("rejection reason is required")
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	noteLine := fmt.Sprintf("[%s] Rejected by %s: %s", time.Now().Format("2006-01-02 15:04"), actorName, reason)

	query := `UPDATE student_payments
			  SET status = $1,
			  notes = COALESCE(notes || E'\n', '') || $2,
			  updated_at = NOW()
			  WHERE id = $3 AND school_id = $4 AND status = $5`

	result, err := tx.Exec(query,
		string(models.PaymentCancelled), noteLine,
		paymentID, schoolID, string(models.PaymentPending),
	)
	if err != nil {
		return fmt.Errorf("failed to reject payment: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	if err := insertAudit(tx, schoolID, "student_payment", paymentID, actorID, "reject", &reason); err != nil {
		return err
	}

	return tx.Commit()
}

// MarkInstallmentPaid settles one installment and recomputes the parent
// payment's amount_paid and balance in the same transaction. The
// installment update only matches when the parent payment belongs to the
// caller's school.
func MarkInstallmentPaid(db *sql.DB, schoolID, paymentID, installmentID string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE payment_installments SET status = 'paid', paid_at = NOW()
		 WHERE id = $1 AND status = 'pending'
		 AND payment_id IN (SELECT id FROM student_payments WHERE id = $2 AND school_id = $3)`,
		installmentID, paymentID, schoolID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark installment paid: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	query := `UPDATE student_payments p
			  SET amount_paid = sub.paid, balance = p.total_amount - sub.paid, updated_at = NOW()
			  FROM (
				  SELECT COALESCE(SUM(amount), 0) as paid
				  FROM payment_installments
				  WHERE payment_id = $1 AND status = 'paid'
			  ) sub
			  WHERE p.id = $1 AND p.school_id = $2`

	recompute, err := tx.Exec(query, paymentID, schoolID)
	if err != nil {
		return fmt.Errorf("failed to recompute payment totals: %v", err)
	}
	recomputed, err := recompute.RowsAffected()
	if err != nil {
		return err
	}
	if recomputed == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}

func AddPaymentAttachment(db *sql.DB, att *models.PaymentAttachment) error {
	query := `INSERT INTO payment_attachments (payment_id, file_name, file_path, uploaded_by, uploaded_at)
			  VALUES ($1, $2, $3, $4, NOW())
			  RETURNING id, uploaded_at`
	return db.QueryRow(query, att.PaymentID, att.FileName, att.FilePath, att.UploadedBy).Scan(&att.ID, &att.UploadedAt)
}

func insertAudit(tx *sql.Tx, schoolID, entityType, entityID, actorID, action string, reason *string) error {
	_, err := tx.Exec(
		`INSERT INTO audit_log (school_id, entity_type, entity_id, actor_id, action, reason, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
		schoolID, entityType, entityID, actorID, action, reason,
	)
	if err != nil {
		return fmt.Errorf("failed to write audit entry: %v", err)
	}
	return nil
}

// GetAuditTrail returns the audit entries for one entity, newest first.
func GetAuditTrail(db *sql.DB, schoolID, entityType, entityID string) ([]*models.AuditEntry, error) {
	query := `SELECT id, school_id, entity_type, entity_id, actor_id, action, reason, created_at
			  FROM audit_log
			  WHERE school_id = $1 AND entity_type = $2 AND entity_id = $3
			  ORDER BY created_at DESC`

	rows, err := db.Query(query, schoolID, entityType, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.AuditEntry
	for rows.Next() {
		e := &models.AuditEntry{}
		if err := rows.Scan(&e.ID, &e.SchoolID, &e.EntityType, &e.EntityID, &e.ActorID, &e.Action, &e.Reason, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
