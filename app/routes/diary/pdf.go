package diary

import (
	"bytes"
	"database/sql"
	"encoding/base64"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jung-kurt/gofpdf"

	"darasa-schools/app/config"
	"darasa-schools/app/database"
	"darasa-schools/app/models"
	"darasa-schools/app/routes/auth"
)

// ExportDiaryPDFAPI returns the filtered diary listing as a base64-encoded
// PDF report.
func ExportDiaryPDFAPI(c *fiber.Ctx) error {
	db := config.GetDB()
	schoolID := auth.SchoolID(c)

	filters := database.DiaryFilters{
		Type:     c.Query("type"),
		Status:   c.Query("status"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}

	activities, err := database.GetDiaryActivities(db, schoolID, filters)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch diary"})
	}

	school, err := database.GetSchoolByID(db, schoolID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load school details"})
	}

	pdfBytes, err := buildDiaryPDF(school, activities)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build PDF"})
	}

	return c.JSON(fiber.Map{
		"pdf":      base64.StdEncoding.EncodeToString(pdfBytes),
		"filename": "school_diary.pdf",
	})
}

// ExportDiaryActivityPDFAPI returns one activity as a base64-encoded PDF,
// including its recorded outcome.
func ExportDiaryActivityPDFAPI(c *fiber.Ctx) error {
	db := config.GetDB()
	schoolID := auth.SchoolID(c)

	activity, err := database.GetDiaryActivityByID(db, schoolID, c.Params("id"), false)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Activity not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch activity"})
	}

	school, err := database.GetSchoolByID(db, schoolID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load school details"})
	}

	pdfBytes, err := buildActivityPDF(school, activity)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build PDF"})
	}

	return c.JSON(fiber.Map{
		"pdf":      base64.StdEncoding.EncodeToString(pdfBytes),
		"filename": "diary_activity.pdf",
	})
}

func buildActivityPDF(school *models.School, a *models.DiaryActivity) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, tr(school.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 7, tr(a.Title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	row := func(label, value string) {
		if value == "" {
			return
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(40, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 6, tr(value), "", "L", false)
	}

	row("Type", a.ActivityType)
	row("Date", a.ActivityDate.Format("2006-01-02"))
	if a.StartTime != nil {
		timeRange := *a.StartTime
		if a.EndTime != nil {
			timeRange += " - " + *a.EndTime
		}
		row("Time", timeRange)
	}
	if a.Venue != nil {
		row("Venue", *a.Venue)
	}
	if a.Coordinator != nil {
		row("Coordinator", *a.Coordinator)
	}
	row("Status", string(a.Status))
	if a.Description != nil {
		row("Description", *a.Description)
	}
	if a.Participants != nil {
		row("Participants", fmt.Sprintf("%d", *a.Participants))
	}
	if a.Winners != nil {
		row("Winners", *a.Winners)
	}
	if a.Achievements != nil {
		row("Achievements", *a.Achievements)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to build activity pdf: %v", err)
	}
	return buf.Bytes(), nil
}

func buildDiaryPDF(school *models.School, activities []*models.DiaryActivity) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, tr(school.Name+" - School Diary"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	headers := []string{"Date", "Title", "Type", "Venue", "Coordinator", "Status", "Participants"}
	widths := []float64{25, 70, 35, 45, 45, 25, 25}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, a := range activities {
		venue, coordinator := "", ""
		if a.Venue != nil {
			venue = *a.Venue
		}
		if a.Coordinator != nil {
			coordinator = *a.Coordinator
		}
		participants := ""
		if a.Participants != nil {
			participants = fmt.Sprintf("%d", *a.Participants)
		}

		cells := []string{
			a.ActivityDate.Format("2006-01-02"),
			a.Title,
			a.ActivityType,
			venue,
			coordinator,
			string(a.Status),
			participants,
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(activities) == 0 {
		pdf.CellFormat(0, 8, "No activities for the selected filters", "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to build diary pdf: %v", err)
	}
	return buf.Bytes(), nil
}
