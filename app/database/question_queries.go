package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"darasa-schools/app/models"
)

// ErrQuestionInUse is returned when a delete hits a question that a paper
// still references.
var ErrQuestionInUse = errors.New("question is referenced by a paper")

// QuestionFilters represents filtering options for the question bank listing.
type QuestionFilters struct {
	Search     string
	SubjectID  string
	ClassID    string
	Type       string
	Difficulty string
	Status     string
	Limit      int
	Offset     int
}

// buildQuestionConditions turns the filters into WHERE fragments and args.
// The school filter is always the first condition; argIndex continues from
// the caller's placeholder count.
func buildQuestionConditions(schoolID string, filters QuestionFilters) ([]string, []interface{}) {
	conditions := []string{"q.school_id = $1"}
	args := []interface{}{schoolID}
	argIndex := 2

	if filters.Search != "" && len(filters.Search) >= 3 {
		searchPattern := "%" + strings.ToLower(filters.Search) + "%"
		conditions = append(conditions, fmt.Sprintf(
			"(LOWER(q.question_text) LIKE $%d OR LOWER(q.code) LIKE $%d)", argIndex, argIndex))
		args = append(args, searchPattern)
		argIndex++
	}

	if filters.SubjectID != "" {
		conditions = append(conditions, fmt.Sprintf("q.subject_id = $%d", argIndex))
		args = append(args, filters.SubjectID)
		argIndex++
	}

	if filters.ClassID != "" {
		conditions = append(conditions, fmt.Sprintf("q.class_id = $%d", argIndex))
		args = append(args, filters.ClassID)
		argIndex++
	}

	if filters.Type != "" {
		conditions = append(conditions, fmt.Sprintf("q.question_type = $%d", argIndex))
		args = append(args, filters.Type)
		argIndex++
	}

	if filters.Difficulty != "" {
		conditions = append(conditions, fmt.Sprintf("q.difficulty_level = $%d", argIndex))
		args = append(args, filters.Difficulty)
		argIndex++
	}

	if filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("q.status = $%d", argIndex))
		args = append(args, filters.Status)
		argIndex++
	}

	return conditions, args
}

// GetQuestionsWithFilters returns a page of the school's question bank plus
// the total row count for the filter set.
func GetQuestionsWithFilters(db *sql.DB, schoolID string, filters QuestionFilters) ([]*models.Question, int, error) {
	conditions, args := buildQuestionConditions(schoolID, filters)
	where := strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(q.id) FROM questions_bank q WHERE ` + where
	var total int
	if err := db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataQuery := `SELECT q.id, q.school_id, q.teacher_id, q.code, q.question_text, q.question_type,
				  q.subject_id, q.class_id, q.difficulty_level, q.marks, q.status, q.created_at, q.updated_at,
				  s.name as subject_name, c.name as class_name
				  FROM questions_bank q
				  LEFT JOIN subjects s ON q.subject_id = s.id
				  LEFT JOIN classes c ON q.class_id = c.id
				  WHERE ` + where + `
				  ORDER BY q.created_at DESC`

	limit := filters.Limit
	if limit <= 0 {
		limit = 20
	}
	dataQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, filters.Offset)

	rows, err := db.Query(dataQuery, args...)
	if err != nil {
		return nil, total, err
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		q := &models.Question{}
		var subjectName, className *string
		err := rows.Scan(
			&q.ID, &q.SchoolID, &q.TeacherID, &q.Code, &q.QuestionText, &q.QuestionType,
			&q.SubjectID, &q.ClassID, &q.DifficultyLevel, &q.Marks, &q.Status,
			&q.CreatedAt, &q.UpdatedAt, &subjectName, &className,
		)
		if err != nil {
			continue
		}

		if subjectName != nil {
			q.Subject = &models.Subject{ID: q.SubjectID, Name: *subjectName}
		}
		if className != nil {
			q.Class = &models.Class{ID: q.ClassID, Name: *className}
		}

		questions = append(questions, q)
	}

	if questions == nil {
		questions = []*models.Question{}
	}

	return questions, total, nil
}

// GetQuestionByID loads one question with its options and tags.
func GetQuestionByID(db *sql.DB, schoolID, questionID string) (*models.Question, error) {
	q := &models.Question{}
	query := `SELECT q.id, q.school_id, q.teacher_id, q.code, q.question_text, q.question_type,
			  q.subject_id, q.class_id, q.difficulty_level, q.marks, q.status, q.created_at, q.updated_at,
			  s.name as subject_name, c.name as class_name
			  FROM questions_bank q
			  LEFT JOIN subjects s ON q.subject_id = s.id
			  LEFT JOIN classes c ON q.class_id = c.id
			  WHERE q.id = $1 AND q.school_id = $2`

	var subjectName, className *string
	err := db.QueryRow(query, questionID, schoolID).Scan(
		&q.ID, &q.SchoolID, &q.TeacherID, &q.Code, &q.QuestionText, &q.QuestionType,
		&q.SubjectID, &q.ClassID, &q.DifficultyLevel, &q.Marks, &q.Status,
		&q.CreatedAt, &q.UpdatedAt, &subjectName, &className,
	)
	if err != nil {
		return nil, err
	}

	if subjectName != nil {
		q.Subject = &models.Subject{ID: q.SubjectID, Name: *subjectName}
	}
	if className != nil {
		q.Class = &models.Class{ID: q.ClassID, Name: *className}
	}

	options, err := getQuestionOptions(db, q.ID)
	if err != nil {
		return nil, err
	}
	q.Options = options

	tags, err := getQuestionTags(db, q.ID)
	if err != nil {
		return nil, err
	}
	q.Tags = tags

	return q, nil
}

func getQuestionOptions(db *sql.DB, questionID string) ([]*models.QuestionOption, error) {
	query := `SELECT id, question_id, option_letter, option_text, is_correct
			  FROM question_options WHERE question_id = $1 ORDER BY option_letter`

	rows, err := db.Query(query, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []*models.QuestionOption
	for rows.Next() {
		opt := &models.QuestionOption{}
		if err := rows.Scan(&opt.ID, &opt.QuestionID, &opt.OptionLetter, &opt.OptionText, &opt.IsCorrect); err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	return options, nil
}

func getQuestionTags(db *sql.DB, questionID string) ([]string, error) {
	rows, err := db.Query(`SELECT tag FROM question_tags WHERE question_id = $1 ORDER BY tag`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// CreateQuestion inserts the question, its options and tags in one
// transaction. The question code is claimed from code_sequences inside the
// same transaction.
func CreateQuestion(db *sql.DB, schoolID string, q *models.Question) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	code, err := NextCode(tx, schoolID, ScopeQuestion, time.Now())
	if err != nil {
		return err
	}
	q.Code = code
	q.SchoolID = schoolID
	if q.Status == "" {
		q.Status = models.QuestionDraft
	}

	query := `INSERT INTO questions_bank (school_id, teacher_id, code, question_text, question_type,
			  subject_id, class_id, difficulty_level, marks, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	err = tx.QueryRow(query,
		q.SchoolID, q.TeacherID, q.Code, q.QuestionText, string(q.QuestionType),
		q.SubjectID, q.ClassID, string(q.DifficultyLevel), q.Marks, string(q.Status),
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert question: %v", err)
	}

	if err := insertOptions(tx, q.ID, q.Options); err != nil {
		return err
	}
	if err := insertTags(tx, q.ID, q.Tags); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateQuestion rewrites the question row and replaces its options and
// tags, scoped to the owning teacher within the school.
func UpdateQuestion(db *sql.DB, schoolID, teacherID string, q *models.Question) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE questions_bank
			  SET question_text = $1, question_type = $2, subject_id = $3, class_id = $4,
			  difficulty_level = $5, marks = $6, updated_at = NOW()
			  WHERE id = $7 AND school_id = $8 AND teacher_id = $9`

	result, err := tx.Exec(query,
		q.QuestionText, string(q.QuestionType), q.SubjectID, q.ClassID,
		string(q.DifficultyLevel), q.Marks, q.ID, schoolID, teacherID,
	)
	if err != nil {
		return fmt.Errorf("failed to update question: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	if _, err := tx.Exec(`DELETE FROM question_options WHERE question_id = $1`, q.ID); err != nil {
		return fmt.Errorf("failed to clear options: %v", err)
	}
	if _, err := tx.Exec(`DELETE FROM question_tags WHERE question_id = $1`, q.ID); err != nil {
		return fmt.Errorf("failed to clear tags: %v", err)
	}

	if err := insertOptions(tx, q.ID, q.Options); err != nil {
		return err
	}
	if err := insertTags(tx, q.ID, q.Tags); err != nil {
		return err
	}

	return tx.Commit()
}

func insertOptions(tx *sql.Tx, questionID string, options []*models.QuestionOption) error {
	for _, opt := range options {
		_, err := tx.Exec(
			`INSERT INTO question_options (question_id, option_letter, option_text, is_correct)
			 VALUES ($1, $2, $3, $4)`,
			questionID, opt.OptionLetter, opt.OptionText, opt.IsCorrect,
		)
		if err != nil {
			return fmt.Errorf("failed to insert option %s: %v", opt.OptionLetter, err)
		}
	}
	return nil
}

func insertTags(tx *sql.Tx, questionID string, tags []string) error {
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		_, err := tx.Exec(
			`INSERT INTO question_tags (question_id, tag) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			questionID, tag,
		)
		if err != nil {
			return fmt.Errorf("failed to insert tag %q: %v", tag, err)
		}
	}
	return nil
}

// DeleteQuestion removes the question and its child rows in one
// transaction so no orphans remain.
func DeleteQuestion(db *sql.DB, schoolID, questionID string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM question_options WHERE question_id = $1`, questionID); err != nil {
		return fmt.Errorf("failed to delete options: %v", err)
	}
	if _, err := tx.Exec(`DELETE FROM question_tags WHERE question_id = $1`, questionID); err != nil {
		return fmt.Errorf("failed to delete tags: %v", err)
	}

	result, err := tx.Exec(`DELETE FROM questions_bank WHERE id = $1 AND school_id = $2`, questionID, schoolID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrQuestionInUse
		}
		return fmt.Errorf("failed to delete question: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}

// UpdateQuestionStatus moves a question through the review workflow.
// Callers validate the status against the allow-list first.
func UpdateQuestionStatus(db *sql.DB, schoolID, questionID string, status models.QuestionStatus) error {
	query := `UPDATE questions_bank SET status = $1, updated_at = NOW() WHERE id = $2 AND school_id = $3`
	result, err := db.Exec(query, string(status), questionID, schoolID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetQuestionStats returns the bank summary counts used on the questions
// screen: totals by subject, by type and by status.
func GetQuestionStats(db *sql.DB, schoolID string) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM questions_bank WHERE school_id = $1`, schoolID).Scan(&total); err != nil {
		return nil, err
	}
	stats["total_questions"] = total

	bySubject, err := countGrouped(db,
		`SELECT s.name, COUNT(q.id)
		 FROM questions_bank q
		 JOIN subjects s ON q.subject_id = s.id
		 WHERE q.school_id = $1
		 GROUP BY s.name ORDER BY s.name`, schoolID)
	if err != nil {
		return nil, err
	}
	stats["by_subject"] = bySubject

	byType, err := countGrouped(db,
		`SELECT question_type, COUNT(*) FROM questions_bank WHERE school_id = $1
		 GROUP BY question_type ORDER BY question_type`, schoolID)
	if err != nil {
		return nil, err
	}
	stats["by_type"] = byType

	byStatus, err := countGrouped(db,
		`SELECT status, COUNT(*) FROM questions_bank WHERE school_id = $1
		 GROUP BY status ORDER BY status`, schoolID)
	if err != nil {
		return nil, err
	}
	stats["by_status"] = byStatus

	return stats, nil
}

func countGrouped(db *sql.DB, query string, args ...interface{}) (map[string]int, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err == nil {
			counts[key] = count
		}
	}
	return counts, nil
}
