package database

import (
	"database/sql"

	"darasa-schools/app/models"
)

// GetDashboardStats gathers the landing-screen summary for one school.
func GetDashboardStats(db *sql.DB, schoolID string) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	query := `
		SELECT
			(SELECT COUNT(*) FROM questions_bank WHERE school_id = $1) as total_questions,
			(SELECT COUNT(*) FROM questions_bank WHERE school_id = $1 AND status = 'approved') as approved_questions,
			(SELECT COUNT(*) FROM exam_papers WHERE school_id = $1) as total_papers,
			(SELECT COUNT(*) FROM school_diary WHERE school_id = $1 AND status = 'Upcoming') as upcoming_activities,
			(SELECT COUNT(*) FROM class_activities WHERE school_id = $1 AND status = 'published') as open_activities,
			(SELECT COUNT(*) FROM student_payments WHERE school_id = $1 AND status = 'pending') as pending_payments,
			(SELECT COALESCE(SUM(balance), 0) FROM student_payments WHERE school_id = $1 AND status = 'pending') as pending_balance
	`

	var totalQuestions, approvedQuestions, totalPapers, upcomingActivities, openActivities, pendingPayments int
	var pendingBalance float64
	err := db.QueryRow(query, schoolID).Scan(
		&totalQuestions, &approvedQuestions, &totalPapers,
		&upcomingActivities, &openActivities, &pendingPayments, &pendingBalance,
	)
	if err != nil {
		return nil, err
	}

	stats["total_questions"] = totalQuestions
	stats["approved_questions"] = approvedQuestions
	stats["total_papers"] = totalPapers
	stats["upcoming_activities"] = upcomingActivities
	stats["open_activities"] = openActivities
	stats["pending_payments"] = pendingPayments
	stats["pending_balance"] = pendingBalance

	upcoming, err := GetDiaryActivities(db, schoolID, DiaryFilters{Status: string(models.DiaryUpcoming)})
	if err != nil {
		return nil, err
	}
	if len(upcoming) > 5 {
		upcoming = upcoming[:5]
	}
	stats["upcoming_diary"] = upcoming

	return stats, nil
}
