package database

import (
	"database/sql"
	"fmt"
	"strings"

	"darasa-schools/app/models"
)

// DiaryFilters represents filtering options for the school diary listing.
type DiaryFilters struct {
	Type     string
	Status   string
	DateFrom string
	DateTo   string
}

func GetDiaryActivities(db *sql.DB, schoolID string, filters DiaryFilters) ([]*models.DiaryActivity, error) {
	conditions := []string{"school_id = $1"}
	args := []interface{}{schoolID}
	argIndex := 2

	if filters.Type != "" {
		conditions = append(conditions, fmt.Sprintf("activity_type = $%d", argIndex))
		args = append(args, filters.Type)
		argIndex++
	}
	if filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, filters.Status)
		argIndex++
	}
	if filters.DateFrom != "" {
		conditions = append(conditions, fmt.Sprintf("activity_date >= $%d", argIndex))
		args = append(args, filters.DateFrom)
		argIndex++
	}
	if filters.DateTo != "" {
		conditions = append(conditions, fmt.Sprintf("activity_date <= $%d", argIndex))
		args = append(args, filters.DateTo)
		argIndex++
	}

	query := `SELECT id, school_id, title, activity_type, activity_date, start_time, end_time,
			  venue, coordinator, description, status, participants, winners, achievements,
			  views, created_by, created_at, updated_at
			  FROM school_diary
			  WHERE ` + strings.Join(conditions, " AND ") + `
			  ORDER BY activity_date DESC, created_at DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return []*models.DiaryActivity{}, err
	}
	defer rows.Close()

	var activities []*models.DiaryActivity
	for rows.Next() {
		a := &models.DiaryActivity{}
		err := rows.Scan(
			&a.ID, &a.SchoolID, &a.Title, &a.ActivityType, &a.ActivityDate,
			&a.StartTime, &a.EndTime, &a.Venue, &a.Coordinator, &a.Description,
			&a.Status, &a.Participants, &a.Winners, &a.Achievements,
			&a.Views, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			continue
		}
		activities = append(activities, a)
	}

	if activities == nil {
		activities = []*models.DiaryActivity{}
	}

	return activities, nil
}

// GetDiaryActivityByID loads one activity with its attachments and bumps
// the view counter, matching the detail screen behaviour.
func GetDiaryActivityByID(db *sql.DB, schoolID, diaryID string, countView bool) (*models.DiaryActivity, error) {
	if countView {
		if _, err := db.Exec(
			`UPDATE school_diary SET views = views + 1 WHERE id = $1 AND school_id = $2`,
			diaryID, schoolID,
		); err != nil {
			return nil, err
		}
	}

	a := &models.DiaryActivity{}
	query := `SELECT id, school_id, title, activity_type, activity_date, start_time, end_time,
			  venue, coordinator, description, status, participants, winners, achievements,
			  views, created_by, created_at, updated_at
			  FROM school_diary WHERE id = $1 AND school_id = $2`

	err := db.QueryRow(query, diaryID, schoolID).Scan(
		&a.ID, &a.SchoolID, &a.Title, &a.ActivityType, &a.ActivityDate,
		&a.StartTime, &a.EndTime, &a.Venue, &a.Coordinator, &a.Description,
		&a.Status, &a.Participants, &a.Winners, &a.Achievements,
		&a.Views, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	attachments, err := GetDiaryAttachments(db, a.ID)
	if err != nil {
		return nil, err
	}
	a.Attachments = attachments

	return a, nil
}

func CreateDiaryActivity(db *sql.DB, schoolID string, a *models.DiaryActivity) error {
	a.SchoolID = schoolID
	if a.Status == "" {
		a.Status = models.DiaryUpcoming
	}

	query := `INSERT INTO school_diary (school_id, title, activity_type, activity_date, start_time,
			  end_time, venue, coordinator, description, status, created_by, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	return db.QueryRow(query,
		a.SchoolID, a.Title, a.ActivityType, a.ActivityDate, a.StartTime,
		a.EndTime, a.Venue, a.Coordinator, a.Description, string(a.Status), a.CreatedBy,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func UpdateDiaryActivity(db *sql.DB, schoolID string, a *models.DiaryActivity) error {
	query := `UPDATE school_diary
			  SET title = $1, activity_type = $2, activity_date = $3, start_time = $4, end_time = $5,
			  venue = $6, coordinator = $7, description = $8, updated_at = NOW()
			  WHERE id = $9 AND school_id = $10`

	result, err := db.Exec(query,
		a.Title, a.ActivityType, a.ActivityDate, a.StartTime, a.EndTime,
		a.Venue, a.Coordinator, a.Description, a.ID, schoolID,
	)
	if err != nil {
		return fmt.Errorf("failed to update diary activity: %v", err)
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

// UpdateDiaryStatus transitions an activity and stores the completion
// fields when moving to Completed. Transition legality is checked by the
// caller against the current status.
func UpdateDiaryStatus(db *sql.DB, schoolID, diaryID string, status models.DiaryStatus, participants *int, winners, achievements *string) error {
	query := `UPDATE school_diary
			  SET status = $1,
			  participants = COALESCE($2, participants),
			  winners = COALESCE($3, winners),
			  achievements = COALESCE($4, achievements),
			  updated_at = NOW()
			  WHERE id = $5 AND school_id = $6`

	result, err := db.Exec(query, string(status), participants, winners, achievements, diaryID, schoolID)
	if err != nil {
		return fmt.Errorf("failed to update diary status: %v", err)
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

func DeleteDiaryActivity(db *sql.DB, schoolID, diaryID string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM diary_attachments WHERE diary_id = $1`, diaryID); err != nil {
		return fmt.Errorf("failed to delete attachments: %v", err)
	}

	result, err := tx.Exec(`DELETE FROM school_diary WHERE id = $1 AND school_id = $2`, diaryID, schoolID)
	if err != nil {
		return fmt.Errorf("failed to delete diary activity: %v", err)
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

func AddDiaryAttachment(db *sql.DB, att *models.DiaryAttachment) error {
	query := `INSERT INTO diary_attachments (diary_id, file_name, file_path, uploaded_at)
			  VALUES ($1, $2, $3, NOW())
			  RETURNING id, uploaded_at`
	return db.QueryRow(query, att.DiaryID, att.FileName, att.FilePath).Scan(&att.ID, &att.UploadedAt)
}

func GetDiaryAttachments(db *sql.DB, diaryID string) ([]*models.DiaryAttachment, error) {
	query := `SELECT id, diary_id, file_name, file_path, uploaded_at
			  FROM diary_attachments WHERE diary_id = $1 ORDER BY uploaded_at`

	rows, err := db.Query(query, diaryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []*models.DiaryAttachment
	for rows.Next() {
		att := &models.DiaryAttachment{}
		if err := rows.Scan(&att.ID, &att.DiaryID, &att.FileName, &att.FilePath, &att.UploadedAt); err != nil {
			return nil, err
		}
		attachments = append(attachments, att)
	}
	return attachments, nil
}

// AdvanceDiaryStatuses moves Upcoming activities whose date has arrived to
// Ongoing, and Ongoing activities whose date has passed to Completed.
// Outcome fields stay empty until someone records them.
func AdvanceDiaryStatuses(db *sql.DB) (int64, error) {
	result, err := db.Exec(
		`UPDATE school_diary SET status = $1, updated_at = NOW()
		 WHERE status = $2 AND activity_date <= CURRENT_DATE`,
		string(models.DiaryOngoing), string(models.DiaryUpcoming),
	)
	if err != nil {
		return 0, err
	}
	started, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	result, err = db.Exec(
		`UPDATE school_diary SET status = $1, updated_at = NOW()
		 WHERE status = $2 AND activity_date < CURRENT_DATE`,
		string(models.DiaryCompleted), string(models.DiaryOngoing),
	)
	if err != nil {
		return started, err
	}
	completed, err := result.RowsAffected()
	if err != nil {
		return started, err
	}

	return started + completed, nil
}
