package papers

import (
	"database/sql"
	"encoding/base64"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"

	"darasa-schools/app/config"
	"darasa-schools/app/database"
	"darasa-schools/app/models"
	"darasa-schools/app/routes/auth"
)

// PaperDir is where rendered documents land. Overridable for tests.
var PaperDir = "generated_papers"

type PaperRequest struct {
	Title           string   `json:"title"`
	SubjectID       string   `json:"subject_id"`
	ClassID         string   `json:"class_id"`
	DurationMinutes int      `json:"duration_minutes"`
	Instructions    string   `json:"instructions"`
	QuestionIDs     []string `json:"question_ids"`
}

func GetPapersAPI(c *fiber.Ctx) error {
	papers, err := database.GetExamPapers(config.GetDB(), auth.SchoolID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch papers"})
	}
	return c.JSON(fiber.Map{"papers": papers})
}

func GetPaperAPI(c *fiber.Ctx) error {
	paper, err := database.GetExamPaperByID(config.GetDB(), auth.SchoolID(c), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Paper not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch paper"})
	}
	return c.JSON(paper)
}

func CreatePaperAPI(c *fiber.Ctx) error {
	var req PaperRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Title is required"})
	}
	if req.SubjectID == "" || req.ClassID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Subject and class are required"})
	}
	if req.DurationMinutes <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Duration must be positive"})
	}
	if len(req.QuestionIDs) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Select at least one question"})
	}

	seen := make(map[string]bool)
	for _, id := range req.QuestionIDs {
		if seen[id] {
			return c.Status(400).JSON(fiber.Map{"error": "Duplicate question in selection"})
		}
		seen[id] = true
	}

	paper := &models.ExamPaper{
		TeacherID:       auth.UserID(c),
		Title:           req.Title,
		SubjectID:       req.SubjectID,
		ClassID:         req.ClassID,
		DurationMinutes: req.DurationMinutes,
	}
	if req.Instructions != "" {
		paper.Instructions = &req.Instructions
	}

	err := database.CreateExamPaper(config.GetDB(), auth.SchoolID(c), paper, req.QuestionIDs)
	if err != nil {
		if strings.Contains(err.Error(), "unknown questions") {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{
			"error":   "Failed to create paper",
			"details": err.Error(),
		})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Paper created successfully",
		"paper":   paper,
	})
}

// GeneratePaperAPI renders the printable document for a paper and records
// the file. ?kind=answer_key produces the marking copy instead.
func GeneratePaperAPI(c *fiber.Ctx) error {
	db := config.GetDB()
	schoolID := auth.SchoolID(c)

	kind := models.DocPaper
	if c.Query("kind") == string(models.DocAnswerKey) {
		kind = models.DocAnswerKey
	}

	paper, err := database.GetExamPaperByID(db, schoolID, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Paper not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch paper"})
	}

	school, err := database.GetSchoolByID(db, schoolID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load school details"})
	}

	content, err := BuildPaperDocument(school, paper, kind == models.DocAnswerKey)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to render paper"})
	}

	filePath, err := WriteDocumentFile(PaperDir, paper.Code, kind, content)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save document"})
	}

	gp := &models.GeneratedPaper{PaperID: paper.ID, Kind: kind, FilePath: filePath}
	if err := database.RecordGeneratedPaper(db, gp); err != nil {
		os.Remove(filePath)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record document"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message":  "Document generated successfully",
		"document": gp,
	})
}

// PreviewPaperAPI returns the paper as a base64-encoded PDF without
// touching disk.
func PreviewPaperAPI(c *fiber.Ctx) error {
	db := config.GetDB()
	schoolID := auth.SchoolID(c)

	paper, err := database.GetExamPaperByID(db, schoolID, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Paper not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch paper"})
	}

	school, err := database.GetSchoolByID(db, schoolID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load school details"})
	}

	showAnswers := c.Query("kind") == string(models.DocAnswerKey)
	pdfBytes, err := BuildPaperPDF(school, paper, showAnswers)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build PDF"})
	}

	return c.JSON(fiber.Map{
		"pdf":      base64.StdEncoding.EncodeToString(pdfBytes),
		"filename": "paper_" + paper.Code + ".pdf",
	})
}

func DeletePaperAPI(c *fiber.Ctx) error {
	filePaths, err := database.DeleteExamPaper(config.GetDB(), auth.SchoolID(c), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Paper not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete paper"})
	}

	// Disk cleanup after the commit; a leftover file is harmless.
	for _, path := range filePaths {
		os.Remove(path)
	}

	return c.JSON(fiber.Map{"message": "Paper deleted successfully"})
}
