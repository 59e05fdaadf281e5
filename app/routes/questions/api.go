package questions

import (
	"database/sql"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"darasa-schools/app/config"
	"darasa-schools/app/database"
	"darasa-schools/app/models"
	"darasa-schools/app/routes/auth"
)

func GetQuestionsAPI(c *fiber.Ctx) error {
	schoolID := auth.SchoolID(c)

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filters := database.QuestionFilters{
		Search:     c.Query("search"),
		SubjectID:  c.Query("subject_id"),
		ClassID:    c.Query("class_id"),
		Type:       c.Query("type"),
		Difficulty: c.Query("difficulty"),
		Status:     c.Query("status"),
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	questions, total, err := database.GetQuestionsWithFilters(config.GetDB(), schoolID, filters)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch questions"})
	}

	return c.JSON(fiber.Map{
		"questions": questions,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

func GetQuestionAPI(c *fiber.Ctx) error {
	question, err := database.GetQuestionByID(config.GetDB(), auth.SchoolID(c), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Question not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch question"})
	}

	return c.JSON(question)
}

func GetQuestionStatsAPI(c *fiber.Ctx) error {
	stats, err := database.GetQuestionStats(config.GetDB(), auth.SchoolID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stats"})
	}

	return c.JSON(stats)
}

func CreateQuestionAPI(c *fiber.Ctx) error {
	var req QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	question, err := validateQuestionRequest(req)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	question.TeacherID = auth.UserID(c)

	if err := database.CreateQuestion(config.GetDB(), auth.SchoolID(c), question); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   "Failed to create question",
			"details": err.Error(),
		})
	}

	return c.Status(201).JSON(fiber.Map{
		"message":  "Question created successfully",
		"question": question,
	})
}

func UpdateQuestionAPI(c *fiber.Ctx) error {
	var req QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	question, err := validateQuestionRequest(req)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	question.ID = c.Params("id")

	err = database.UpdateQuestion(config.GetDB(), auth.SchoolID(c), auth.UserID(c), question)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Question not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update question"})
	}

	return c.JSON(fiber.Map{
		"message":  "Question updated successfully",
		"question": question,
	})
}

func UpdateQuestionStatusAPI(c *fiber.Ctx) error {
	type StatusRequest struct {
		Status string `json:"status"`
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	status := models.QuestionStatus(req.Status)
	if !status.Valid() {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid status value"})
	}

	err := database.UpdateQuestionStatus(config.GetDB(), auth.SchoolID(c), c.Params("id"), status)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Question not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update status"})
	}

	return c.JSON(fiber.Map{"message": "Status updated successfully"})
}

func DeleteQuestionAPI(c *fiber.Ctx) error {
	err := database.DeleteQuestion(config.GetDB(), auth.SchoolID(c), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Question not found"})
		}
		if err == database.ErrQuestionInUse {
			return c.Status(409).JSON(fiber.Map{"error": "Question is used by a paper"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete question"})
	}

	return c.JSON(fiber.Map{"message": "Question deleted successfully"})
}
