package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"darasa-schools/app/models"
)

// ActivityFilters represents filtering options for class activity listings.
type ActivityFilters struct {
	TeacherID string
	ClassID   string
	SubjectID string
	Type      string
	Status    string
}

func GetClassActivities(db *sql.DB, schoolID string, filters ActivityFilters) ([]*models.ClassActivity, error) {
	conditions := []string{"a.school_id = $1"}
	args := []interface{}{schoolID}
	argIndex := 2

	if filters.TeacherID != "" {
		conditions = append(conditions, fmt.Sprintf("a.teacher_id = $%d", argIndex))
		args = append(args, filters.TeacherID)
		argIndex++
	}
	if filters.ClassID != "" {
		conditions = append(conditions, fmt.Sprintf("a.class_id = $%d", argIndex))
		args = append(args, filters.ClassID)
		argIndex++
	}
	if filters.SubjectID != "" {
		conditions = append(conditions, fmt.Sprintf("a.subject_id = $%d", argIndex))
		args = append(args, filters.SubjectID)
		argIndex++
	}
	if filters.Type != "" {
		conditions = append(conditions, fmt.Sprintf("a.activity_type = $%d", argIndex))
		args = append(args, filters.Type)
		argIndex++
	}
	if filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argIndex))
		args = append(args, filters.Status)
		argIndex++
	}

	query := `SELECT a.id, a.school_id, a.teacher_id, a.class_id, a.subject_id, a.title, a.description,
			  a.activity_type, a.due_date, a.total_marks, a.status, a.created_at, a.updated_at,
			  c.name as class_name, s.name as subject_name,
			  COALESCE(sub.submission_count, 0) as submission_count
			  FROM class_activities a
			  LEFT JOIN classes c ON a.class_id = c.id
			  LEFT JOIN subjects s ON a.subject_id = s.id
			  LEFT JOIN (
				  SELECT activity_id, COUNT(*) as submission_count
				  FROM student_submissions
				  WHERE status <> 'pending'
				  GROUP BY activity_id
			  ) sub ON a.id = sub.activity_id
			  WHERE ` + strings.Join(conditions, " AND ") + `
			  ORDER BY a.due_date DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return []*models.ClassActivity{}, err
	}
	defer rows.Close()

	var activities []*models.ClassActivity
	for rows.Next() {
		a := &models.ClassActivity{}
		var className, subjectName *string
		err := rows.Scan(
			&a.ID, &a.SchoolID, &a.TeacherID, &a.ClassID, &a.SubjectID, &a.Title, &a.Description,
			&a.ActivityType, &a.DueDate, &a.TotalMarks, &a.Status, &a.CreatedAt, &a.UpdatedAt,
			&className, &subjectName, &a.SubmissionCount,
		)
		if err != nil {
			continue
		}

		if className != nil {
			a.Class = &models.Class{ID: a.ClassID, Name: *className}
		}
		if subjectName != nil {
			a.Subject = &models.Subject{ID: a.SubjectID, Name: *subjectName}
		}

		activities = append(activities, a)
	}

	if activities == nil {
		activities = []*models.ClassActivity{}
	}

	return activities, nil
}

func GetClassActivityByID(db *sql.DB, schoolID, activityID string) (*models.ClassActivity, error) {
	a := &models.ClassActivity{}
	query := `SELECT a.id, a.school_id, a.teacher_id, a.class_id, a.subject_id, a.title, a.description,
			  a.activity_type, a.due_date, a.total_marks, a.status, a.created_at, a.updated_at,
			  c.name as class_name, s.name as subject_name
			  FROM class_activities a
			  LEFT JOIN classes c ON a.class_id = c.id
			  LEFT JOIN subjects s ON a.subject_id = s.id
			  WHERE a.id = $1 AND a.school_id = $2`

	var className, subjectName *string
	err := db.QueryRow(query, activityID, schoolID).Scan(
		&a.ID, &a.SchoolID, &a.TeacherID, &a.ClassID, &a.SubjectID, &a.Title, &a.Description,
		&a.ActivityType, &a.DueDate, &a.TotalMarks, &a.Status, &a.CreatedAt, &a.UpdatedAt,
		&className, &subjectName,
	)
	if err != nil {
		return nil, err
	}

	if className != nil {
		a.Class = &models.Class{ID: a.ClassID, Name: *className}
	}
	if subjectName != nil {
		a.Subject = &models.Subject{ID: a.SubjectID, Name: *subjectName}
	}

	return a, nil
}

func CreateClassActivity(db *sql.DB, schoolID string, a *models.ClassActivity) error {
	a.SchoolID = schoolID
	if a.Status == "" {
		a.Status = models.ActivityDraft
	}

	query := `INSERT INTO class_activities (school_id, teacher_id, class_id, subject_id, title,
			  description, activity_type, due_date, total_marks, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	return db.QueryRow(query,
		a.SchoolID, a.TeacherID, a.ClassID, a.SubjectID, a.Title,
		a.Description, a.ActivityType, a.DueDate, a.TotalMarks, string(a.Status),
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func UpdateClassActivity(db *sql.DB, schoolID, teacherID string, a *models.ClassActivity) error {
	query := `UPDATE class_activities
			  SET title = $1, description = $2, activity_type = $3, due_date = $4, total_marks = $5, updated_at = NOW()
			  WHERE id = $6 AND school_id = $7 AND teacher_id = $8`

	result, err := db.Exec(query,
		a.Title, a.Description, a.ActivityType, a.DueDate, a.TotalMarks,
		a.ID, schoolID, teacherID,
	)
	if err != nil {
		return fmt.Errorf("failed to update activity: %v", err)
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

// UpdateActivityStatus applies a lifecycle transition that the handler has
// already validated with ActivityStatus.CanTransition. The current status
// is part of the WHERE clause so a concurrent transition loses cleanly.
func UpdateActivityStatus(db *sql.DB, schoolID, teacherID, activityID string, from, to models.ActivityStatus) error {
	query := `UPDATE class_activities SET status = $1, updated_at = NOW()
			  WHERE id = $2 AND school_id = $3 AND teacher_id = $4 AND status = $5`

	result, err := db.Exec(query, string(to), activityID, schoolID, teacherID, string(from))
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

func DeleteClassActivity(db *sql.DB, schoolID, teacherID, activityID string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM student_submissions WHERE activity_id = $1`, activityID); err != nil {
		return fmt.Errorf("failed to delete submissions: %v", err)
	}

	result, err := tx.Exec(
		`DELETE FROM class_activities WHERE id = $1 AND school_id = $2 AND teacher_id = $3`,
		activityID, schoolID, teacherID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %v", err)
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

func GetSubmissionsByActivity(db *sql.DB, activityID string) ([]*models.StudentSubmission, error) {
	query := `SELECT ss.id, ss.activity_id, ss.student_id, ss.submission_text, ss.attachment_path,
			  ss.submitted_at, ss.marks_obtained, ss.feedback, ss.status, ss.graded_by, ss.graded_at,
			  st.student_no, st.first_name, st.last_name
			  FROM student_submissions ss
			  INNER JOIN students st ON ss.student_id = st.id
			  WHERE ss.activity_id = $1
			  ORDER BY st.first_name, st.last_name`

	rows, err := db.Query(query, activityID)
	if err != nil {
		return []*models.StudentSubmission{}, err
	}
	defer rows.Close()

	var submissions []*models.StudentSubmission
	for rows.Next() {
		s := &models.StudentSubmission{}
		var studentNo, firstName, lastName string
		err := rows.Scan(
			&s.ID, &s.ActivityID, &s.StudentID, &s.SubmissionText, &s.AttachmentPath,
			&s.SubmittedAt, &s.MarksObtained, &s.Feedback, &s.Status, &s.GradedBy, &s.GradedAt,
			&studentNo, &firstName, &lastName,
		)
		if err != nil {
			continue
		}

		s.Student = &models.Student{
			ID:        s.StudentID,
			StudentNo: studentNo,
			FirstName: firstName,
			LastName:  lastName,
		}

		submissions = append(submissions, s)
	}

	if submissions == nil {
		submissions = []*models.StudentSubmission{}
	}

	return submissions, nil
}

// RecordSubmission upserts a student's submission for an activity. The
// status is decided by the caller (submitted or late relative to the due
// date).
func RecordSubmission(db *sql.DB, s *models.StudentSubmission) error {
	now := time.Now()
	s.SubmittedAt = &now

	query := `INSERT INTO student_submissions (activity_id, student_id, submission_text, attachment_path, submitted_at, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (activity_id, student_id)
			  DO UPDATE SET submission_text = EXCLUDED.submission_text,
			  attachment_path = EXCLUDED.attachment_path,
			  submitted_at = EXCLUDED.submitted_at,
			  status = EXCLUDED.status
			  RETURNING id`

	return db.QueryRow(query,
		s.ActivityID, s.StudentID, s.SubmissionText, s.AttachmentPath, s.SubmittedAt, string(s.Status),
	).Scan(&s.ID)
}

// GradeSubmission stores marks and feedback and stamps the grader. Mark
// bounds are validated by the handler against the activity's total marks.
// The activity id keeps the update inside the school-scoped activity the
// handler already checked; a submission id from another activity matches
// nothing.
func GradeSubmission(db *sql.DB, activityID, submissionID, graderID string, marks int, feedback *string) error {
	query := `UPDATE student_submissions
			  SET marks_obtained = $1, feedback = $2, status = $3, graded_by = $4, graded_at = NOW()
			  WHERE id = $5 AND activity_id = $6 AND status <> 'pending'`

	result, err := db.Exec(query, marks, feedback, string(models.SubmissionGraded), graderID, submissionID, activityID)
	if err != nil {
		return fmt.Errorf("failed to grade submission: %v", err)
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

// GetActivityReports aggregates submission counts and averages per
// published or closed activity for the report screen.
func GetActivityReports(db *sql.DB, schoolID string) ([]*models.ActivityReport, error) {
	query := `SELECT a.id, a.title, a.status, c.name as class_name,
			  COALESCE(roster.student_count, 0) as student_count,
			  COUNT(ss.id) FILTER (WHERE ss.status IN ('submitted', 'late', 'graded')) as submitted_count,
			  COUNT(ss.id) FILTER (WHERE ss.status = 'graded') as graded_count,
			  COUNT(ss.id) FILTER (WHERE ss.status = 'late') as late_count,
			  AVG(ss.marks_obtained) FILTER (WHERE ss.status = 'graded') as average_marks
			  FROM class_activities a
			  INNER JOIN classes c ON a.class_id = c.id
			  LEFT JOIN (
				  SELECT class_id, COUNT(*) as student_count
				  FROM students WHERE is_active = true GROUP BY class_id
			  ) roster ON a.class_id = roster.class_id
			  LEFT JOIN student_submissions ss ON a.id = ss.activity_id
			  WHERE a.school_id = $1 AND a.status <> 'draft'
			  GROUP BY a.id, a.title, a.status, c.name, roster.student_count
			  ORDER BY a.due_date DESC`

	rows, err := db.Query(query, schoolID)
	if err != nil {
		return []*models.ActivityReport{}, err
	}
	defer rows.Close()

	var reports []*models.ActivityReport
	for rows.Next() {
		r := &models.ActivityReport{}
		err := rows.Scan(
			&r.ActivityID, &r.Title, &r.Status, &r.ClassName,
			&r.StudentCount, &r.SubmittedCount, &r.GradedCount, &r.LateCount, &r.AverageMarks,
		)
		if err != nil {
			continue
		}

		if r.StudentCount > 0 {
			r.SubmissionRate = float64(r.SubmittedCount) / float64(r.StudentCount) * 100
		}

		reports = append(reports, r)
	}

	if reports == nil {
		reports = []*models.ActivityReport{}
	}

	return reports, nil
}
