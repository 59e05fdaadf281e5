package activities

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"darasa-schools/app/config"
	"darasa-schools/app/database"
	"darasa-schools/app/models"
	"darasa-schools/app/routes/auth"
)

// SubmissionUploadDir is where submission attachments land. Overridable
// for tests.
var SubmissionUploadDir = "uploads/submissions"

type ActivityRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ActivityType string `json:"activity_type"`
	ClassID      string `json:"class_id"`
	SubjectID    string `json:"subject_id"`
	DueDate      string `json:"due_date"`
	TotalMarks   int    `json:"total_marks"`
}

func (r ActivityRequest) toModel() (*models.ClassActivity, error) {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if r.ActivityType == "" {
		return nil, fmt.Errorf("activity type is required")
	}
	if r.ClassID == "" || r.SubjectID == "" {
		return nil, fmt.Errorf("class and subject are required")
	}
	if r.TotalMarks <= 0 {
		return nil, fmt.Errorf("total marks must be positive")
	}

	dueDate, err := time.Parse("2006-01-02", r.DueDate)
	if err != nil {
		return nil, fmt.Errorf("invalid due date, expected YYYY-MM-DD")
	}

	a := &models.ClassActivity{
		Title:        r.Title,
		ActivityType: r.ActivityType,
		ClassID:      r.ClassID,
		SubjectID:    r.SubjectID,
		DueDate:      dueDate,
		TotalMarks:   r.TotalMarks,
	}
	if r.Description != "" {
		a.Description = &r.Description
	}
	return a, nil
}

func GetActivitiesAPI(c *fiber.Ctx) error {
	filters := database.ActivityFilters{
		TeacherID: c.Query("teacher_id"),
		ClassID:   c.Query("class_id"),
		SubjectID: c.Query("subject_id"),
		Type:      c.Query("type"),
		Status:    c.Query("status"),
	}

	activities, err := database.GetClassActivities(config.GetDB(), auth.SchoolID(c), filters)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch activities"})
	}

	return c.JSON(fiber.Map{"activities": activities})
}

func GetActivityAPI(c *fiber.Ctx) error {
	db := config.GetDB()

	activity, err := database.GetClassActivityByID(db, auth.SchoolID(c), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Activity not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch activity"})
	}

	submissions, err := database.GetSubmissionsByActivity(db, activity.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch submissions"})
	}
	activity.Submissions = submissions

	return c.JSON(activity)
}

func CreateActivityAPI(c *fiber.Ctx) error {
	var req ActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	activity, err := req.toModel()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	activity.TeacherID = auth.UserID(c)

	if err := database.CreateClassActivity(config.GetDB(), auth.SchoolID(c), activity); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   "Failed to create activity",
			"details": err.Error(),
		})
	}

	return c.Status(201).JSON(fiber.Map{
		"message":  "Activity created successfully",
		"activity": activity,
	})
}

func UpdateActivityAPI(c *fiber.Ctx) error {
	var req ActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	activity, err := req.toModel()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	activity.ID = c.Params("id")

	err = database.UpdateClassActivity(config.GetDB(), auth.SchoolID(c), auth.UserID(c), activity)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Activity not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update activity"})
	}

	return c.JSON(fiber.Map{"message": "Activity updated successfully"})
}

// UpdateActivityStatusAPI moves an activity along its lifecycle. Only
// draft to published and published to closed are allowed.
func UpdateActivityStatusAPI(c *fiber.Ctx) error {
	type StatusRequest struct {
		Status string `json:"status"`
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	newStatus := models.ActivityStatus(req.Status)
	if !newStatus.Valid() {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid status value"})
	}

	db := config.GetDB()
	schoolID := auth.SchoolID(c)
	activityID := c.Params("id")

	activity, err := database.GetClassActivityByID(db, schoolID, activityID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Activity not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch activity"})
	}

	if !activity.Status.CanTransition(newStatus) {
		return c.Status(400).JSON(fiber.Map{
			"error": fmt.Sprintf("Cannot move activity from %s to %s", activity.Status, newStatus),
		})
	}

	err = database.UpdateActivityStatus(db, schoolID, auth.UserID(c), activityID, activity.Status, newStatus)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(409).JSON(fiber.Map{"error": "Activity changed, refresh and retry"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update status"})
	}

	return c.JSON(fiber.Map{"message": "Status updated successfully"})
}

func DeleteActivityAPI(c *fiber.Ctx) error {
	err := database.DeleteClassActivity(config.GetDB(), auth.SchoolID(c), auth.UserID(c), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Activity not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete activity"})
	}

	return c.JSON(fiber.Map{"message": "Activity deleted successfully"})
}

// RecordSubmissionAPI stores a student's work for a published activity.
// Work arriving after the due date is marked late rather than refused.
func RecordSubmissionAPI(c *fiber.Ctx) error {
	db := config.GetDB()
	schoolID := auth.SchoolID(c)
	activityID := c.Params("id")

	activity, err := database.GetClassActivityByID(db, schoolID, activityID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Activity not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch activity"})
	}

	if activity.Status != models.ActivityPublished {
		return c.Status(400).JSON(fiber.Map{"error": "Activity is not accepting submissions"})
	}

	studentID := c.FormValue("student_id")
	if studentID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Student is required"})
	}
	if _, err := database.GetStudentByID(db, schoolID, studentID); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	submission := &models.StudentSubmission{
		ActivityID: activityID,
		StudentID:  studentID,
	}
	if text := c.FormValue("submission_text"); text != "" {
		submission.SubmissionText = &text
	}

	if file, err := c.FormFile("file"); err == nil {
		if err := os.MkdirAll(SubmissionUploadDir, 0o755); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to prepare upload directory"})
		}
		fileName := filepath.Base(file.Filename)
		savedPath := filepath.Join(SubmissionUploadDir, uuid.New().String()+"_"+fileName)
		if err := c.SaveFile(file, savedPath); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to save file"})
		}
		submission.AttachmentPath = &savedPath
	}

	if submission.SubmissionText == nil && submission.AttachmentPath == nil {
		return c.Status(400).JSON(fiber.Map{"error": "Submission needs text or a file"})
	}

	// End-of-day cutoff on the due date.
	cutoff := activity.DueDate.Add(24 * time.Hour)
	submission.Status = models.SubmissionSubmitted
	if time.Now().After(cutoff) {
		submission.Status = models.SubmissionLate
	}

	if err := database.RecordSubmission(db, submission); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record submission"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message":    "Submission recorded successfully",
		"submission": submission,
	})
}

func GradeSubmissionAPI(c *fiber.Ctx) error {
	type GradeRequest struct {
		Marks    int     `json:"marks"`
		Feedback *string `json:"feedback"`
	}

	var req GradeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	db := config.GetDB()
	schoolID := auth.SchoolID(c)

	activity, err := database.GetClassActivityByID(db, schoolID, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Activity not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch activity"})
	}

	if req.Marks < 0 || req.Marks > activity.TotalMarks {
		return c.Status(400).JSON(fiber.Map{
			"error": fmt.Sprintf("Marks must be between 0 and %d", activity.TotalMarks),
		})
	}

	err = database.GradeSubmission(db, activity.ID, c.Params("submissionId"), auth.UserID(c), req.Marks, req.Feedback)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Submission not found or not yet submitted"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to grade submission"})
	}

	return c.JSON(fiber.Map{"message": "Submission graded successfully"})
}

func GetActivityReportsAPI(c *fiber.Ctx) error {
	reports, err := database.GetActivityReports(config.GetDB(), auth.SchoolID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch reports"})
	}

	return c.JSON(fiber.Map{"reports": reports})
}
