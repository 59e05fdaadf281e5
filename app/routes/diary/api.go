package diary

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

// UploadDir is where diary attachments land. Overridable for tests.
var UploadDir = "uploads/diary"

type DiaryRequest struct {
	Title        string `json:"title"`
	ActivityType string `json:"activity_type"`
	ActivityDate string `json:"activity_date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Venue        string `json:"venue"`
	Coordinator  string `json:"coordinator"`
	Description  string `json:"description"`
}

func (r DiaryRequest) toModel() (*models.DiaryActivity, error) {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if r.ActivityType == "" {
		return nil, fmt.Errorf("activity type is required")
	}

	activityDate, err := time.Parse("2006-01-02", r.ActivityDate)
	if err != nil {
		return nil, fmt.Errorf("invalid activity date, expected YYYY-MM-DD")
	}

	a := &models.DiaryActivity{
		Title:        r.Title,
		ActivityType: r.ActivityType,
		ActivityDate: activityDate,
	}
	if r.StartTime != "" {
		a.StartTime = &r.StartTime
	}
	if r.EndTime != "" {
		a.EndTime = &r.EndTime
	}
	if r.Venue != "" {
		a.Venue = &r.Venue
	}
	if r.Coordinator != "" {
		a.Coordinator = &r.Coordinator
	}
	if r.Description != "" {
		a.Description = &r.Description
	}
	return a, nil
}

func GetDiaryAPI(c *fiber.Ctx) error {
	filters := database.DiaryFilters{
		Type:     c.Query("type"),
		Status:   c.Query("status"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}

	activities, err := database.GetDiaryActivities(config.GetDB(), auth.SchoolID(c), filters)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch diary"})
	}

	return c.JSON(fiber.Map{"activities": activities})
}

func GetDiaryActivityAPI(c *fiber.Ctx) error {
	activity, err := database.GetDiaryActivityByID(config.GetDB(), auth.SchoolID(c), c.Params("id"), true)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Activity not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch activity"})
	}

	return c.JSON(activity)
}

func CreateDiaryAPI(c *fiber.Ctx) error {
	var req DiaryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	activity, err := req.toModel()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	activity.CreatedBy = auth.UserID(c)

	if err := database.CreateDiaryActivity(config.GetDB(), auth.SchoolID(c), activity); err != nil {
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

func UpdateDiaryAPI(c *fiber.Ctx) error {
	var req DiaryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	activity, err := req.toModel()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	activity.ID = c.Params("id")

	err = database.UpdateDiaryActivity(config.GetDB(), auth.SchoolID(c), activity)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Activity not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update activity"})
	}

	return c.JSON(fiber.Map{"message": "Activity updated successfully"})
}

func UpdateDiaryStatusAPI(c *fiber.Ctx) error {
	type StatusRequest struct {
		Status       string  `json:"status"`
		Participants *int    `json:"participants"`
		Winners      *string `json:"winners"`
		Achievements *string `json:"achievements"`
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	newStatus := models.DiaryStatus(req.Status)
	if !newStatus.Valid() {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid status value"})
	}

	db := config.GetDB()
	schoolID := auth.SchoolID(c)
	diaryID := c.Params("id")

	activity, err := database.GetDiaryActivityByID(db, schoolID, diaryID, false)
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

	// Completing by hand records the outcome.
	if newStatus == models.DiaryCompleted && req.Participants == nil {
		return c.Status(400).JSON(fiber.Map{"error": "Participants count is required to complete an activity"})
	}

	err = database.UpdateDiaryStatus(db, schoolID, diaryID, newStatus, req.Participants, req.Winners, req.Achievements)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Activity not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update status"})
	}

	return c.JSON(fiber.Map{"message": "Status updated successfully"})
}

func DeleteDiaryAPI(c *fiber.Ctx) error {
	err := database.DeleteDiaryActivity(config.GetDB(), auth.SchoolID(c), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Activity not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete activity"})
	}

	return c.JSON(fiber.Map{"message": "Activity deleted successfully"})
}

func UploadDiaryAttachmentAPI(c *fiber.Ctx) error {
	db := config.GetDB()
	schoolID := auth.SchoolID(c)
	diaryID := c.Params("id")

	if _, err := database.GetDiaryActivityByID(db, schoolID, diaryID, false); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Activity not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch activity"})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "No file uploaded"})
	}

	if err := os.MkdirAll(UploadDir, 0o755); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to prepare upload directory"})
	}
	fileName := filepath.Base(file.Filename)
	savedPath := filepath.Join(UploadDir, uuid.New().String()+"_"+fileName)
	if err := c.SaveFile(file, savedPath); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save file"})
	}

	att := &models.DiaryAttachment{
		DiaryID:  diaryID,
		FileName: fileName,
		FilePath: savedPath,
	}
	if err := database.AddDiaryAttachment(db, att); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record attachment"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message":    "Attachment uploaded successfully",
		"attachment": att,
	})
}
