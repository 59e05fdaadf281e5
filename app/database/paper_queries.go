package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"darasa-schools/app/models"
)

// CreateExamPaper persists the paper and its ordered question references in
// one transaction. questionIDs carries the client-supplied order; the rows
// get question_order 1..N in that order. Total marks are summed from the
// referenced questions inside the same transaction.
func CreateExamPaper(db *sql.DB, schoolID string, paper *models.ExamPaper, questionIDs []string) error {
	if len(questionIDs) == 0 {
		return fmt.Errorf("no questions selected")
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	code, err := NextCode(tx, schoolID, ScopePaper, time.Now())
	if err != nil {
		return err
	}
	paper.Code = code
	paper.SchoolID = schoolID

	// Sum marks over the selected questions, refusing ids outside the school.
	placeholders := make([]string, len(questionIDs))
	args := make([]interface{}, 0, len(questionIDs)+1)
	args = append(args, schoolID)
	for i, id := range questionIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, id)
	}

	var totalMarks, found int
	sumQuery := fmt.Sprintf(
		`SELECT COALESCE(SUM(marks), 0), COUNT(*) FROM questions_bank
		 WHERE school_id = $1 AND id IN (%s)`, strings.Join(placeholders, ","))
	if err := tx.QueryRow(sumQuery, args...).Scan(&totalMarks, &found); err != nil {
		return fmt.Errorf("failed to sum question marks: %v", err)
	}
	if found != len(questionIDs) {
		return fmt.Errorf("selection includes unknown questions")
	}
	paper.TotalMarks = totalMarks

	query := `INSERT INTO exam_papers (school_id, teacher_id, code, title, subject_id, class_id,
			  total_marks, duration_minutes, instructions, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
			  RETURNING id, created_at`

	err = tx.QueryRow(query,
		paper.SchoolID, paper.TeacherID, paper.Code, paper.Title, paper.SubjectID,
		paper.ClassID, paper.TotalMarks, paper.DurationMinutes, paper.Instructions,
	).Scan(&paper.ID, &paper.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert paper: %v", err)
	}

	for i, questionID := range questionIDs {
		_, err := tx.Exec(
			`INSERT INTO paper_questions (paper_id, question_id, question_order) VALUES ($1, $2, $3)`,
			paper.ID, questionID, i+1,
		)
		if err != nil {
			return fmt.Errorf("failed to insert paper question %d: %v", i+1, err)
		}
	}

	return tx.Commit()
}

func GetExamPapers(db *sql.DB, schoolID string) ([]*models.ExamPaper, error) {
	query := `SELECT p.id, p.school_id, p.teacher_id, p.code, p.title, p.subject_id, p.class_id,
			  p.total_marks, p.duration_minutes, p.instructions, p.created_at,
			  s.name as subject_name, c.name as class_name
			  FROM exam_papers p
			  LEFT JOIN subjects s ON p.subject_id = s.id
			  LEFT JOIN classes c ON p.class_id = c.id
			  WHERE p.school_id = $1
			  ORDER BY p.created_at DESC`

	rows, err := db.Query(query, schoolID)
	if err != nil {
		return []*models.ExamPaper{}, err
	}
	defer rows.Close()

	var papers []*models.ExamPaper
	for rows.Next() {
		paper := &models.ExamPaper{}
		var subjectName, className *string
		err := rows.Scan(
			&paper.ID, &paper.SchoolID, &paper.TeacherID, &paper.Code, &paper.Title,
			&paper.SubjectID, &paper.ClassID, &paper.TotalMarks, &paper.DurationMinutes,
			&paper.Instructions, &paper.CreatedAt, &subjectName, &className,
		)
		if err != nil {
			continue
		}

		if subjectName != nil {
			paper.Subject = &models.Subject{ID: paper.SubjectID, Name: *subjectName}
		}
		if className != nil {
			paper.Class = &models.Class{ID: paper.ClassID, Name: *className}
		}

		papers = append(papers, paper)
	}

	if papers == nil {
		papers = []*models.ExamPaper{}
	}

	return papers, nil
}

// GetExamPaperByID loads a paper with its questions in paper order,
// including each question's options for rendering.
func GetExamPaperByID(db *sql.DB, schoolID, paperID string) (*models.ExamPaper, error) {
	paper := &models.ExamPaper{}
	query := `SELECT p.id, p.school_id, p.teacher_id, p.code, p.title, p.subject_id, p.class_id,
			  p.total_marks, p.duration_minutes, p.instructions, p.created_at,
			  s.name as subject_name, c.name as class_name
			  FROM exam_papers p
			  LEFT JOIN subjects s ON p.subject_id = s.id
			  LEFT JOIN classes c ON p.class_id = c.id
			  WHERE p.id = $1 AND p.school_id = $2`

	var subjectName, className *string
	err := db.QueryRow(query, paperID, schoolID).Scan(
		&paper.ID, &paper.SchoolID, &paper.TeacherID, &paper.Code, &paper.Title,
		&paper.SubjectID, &paper.ClassID, &paper.TotalMarks, &paper.DurationMinutes,
		&paper.Instructions, &paper.CreatedAt, &subjectName, &className,
	)
	if err != nil {
		return nil, err
	}

	if subjectName != nil {
		paper.Subject = &models.Subject{ID: paper.SubjectID, Name: *subjectName}
	}
	if className != nil {
		paper.Class = &models.Class{ID: paper.ClassID, Name: *className}
	}

	questions, err := getPaperQuestions(db, paper.ID)
	if err != nil {
		return nil, err
	}
	paper.Questions = questions

	generated, err := GetGeneratedPapers(db, paper.ID)
	if err != nil {
		return nil, err
	}
	paper.Generated = generated

	return paper, nil
}

func getPaperQuestions(db *sql.DB, paperID string) ([]*models.Question, error) {
	query := `SELECT q.id, q.school_id, q.teacher_id, q.code, q.question_text, q.question_type,
			  q.subject_id, q.class_id, q.difficulty_level, q.marks, q.status, q.created_at, q.updated_at
			  FROM questions_bank q
			  INNER JOIN paper_questions pq ON q.id = pq.question_id
			  WHERE pq.paper_id = $1
			  ORDER BY pq.question_order`

	rows, err := db.Query(query, paperID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		q := &models.Question{}
		err := rows.Scan(
			&q.ID, &q.SchoolID, &q.TeacherID, &q.Code, &q.QuestionText, &q.QuestionType,
			&q.SubjectID, &q.ClassID, &q.DifficultyLevel, &q.Marks, &q.Status,
			&q.CreatedAt, &q.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	// Options are needed for mcq/true_false rendering.
	for _, q := range questions {
		options, err := getQuestionOptions(db, q.ID)
		if err != nil {
			return nil, err
		}
		q.Options = options
	}

	return questions, nil
}

// RecordGeneratedPaper links a rendered document file to its paper.
func RecordGeneratedPaper(db *sql.DB, gp *models.GeneratedPaper) error {
	query := `INSERT INTO generated_papers (paper_id, kind, file_path, generated_at)
			  VALUES ($1, $2, $3, NOW())
			  RETURNING id, generated_at`
	return db.QueryRow(query, gp.PaperID, string(gp.Kind), gp.FilePath).Scan(&gp.ID, &gp.GeneratedAt)
}

func GetGeneratedPapers(db *sql.DB, paperID string) ([]*models.GeneratedPaper, error) {
	query := `SELECT id, paper_id, kind, file_path, generated_at
			  FROM generated_papers WHERE paper_id = $1 ORDER BY generated_at DESC`

	rows, err := db.Query(query, paperID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.GeneratedPaper
	for rows.Next() {
		gp := &models.GeneratedPaper{}
		if err := rows.Scan(&gp.ID, &gp.PaperID, &gp.Kind, &gp.FilePath, &gp.GeneratedAt); err != nil {
			return nil, err
		}
		docs = append(docs, gp)
	}
	return docs, nil
}

// DeleteExamPaper removes the paper and its child rows in one transaction.
// It returns the file paths of rendered documents so the caller can remove
// them from disk after the commit.
func DeleteExamPaper(db *sql.DB, schoolID, paperID string) ([]string, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rows, err := tx.Query(`SELECT file_path FROM generated_papers WHERE paper_id = $1`, paperID)
	if err != nil {
		return nil, err
	}
	var filePaths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err == nil {
			filePaths = append(filePaths, path)
		}
	}
	rows.Close()

	if _, err := tx.Exec(`DELETE FROM generated_papers WHERE paper_id = $1`, paperID); err != nil {
		return nil, fmt.Errorf("failed to delete generated papers: %v", err)
	}
	if _, err := tx.Exec(`DELETE FROM paper_questions WHERE paper_id = $1`, paperID); err != nil {
		return nil, fmt.Errorf("failed to delete paper questions: %v", err)
	}

	result, err := tx.Exec(`DELETE FROM exam_papers WHERE id = $1 AND school_id = $2`, paperID, schoolID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete paper: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, sql.ErrNoRows
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return filePaths, nil
}
