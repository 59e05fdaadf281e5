package papers

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"darasa-schools/app/models"
)

// BuildPaperPDF renders a paper (or its answer key) as a PDF for preview
// and download.
func BuildPaperPDF(school *models.School, paper *models.ExamPaper, showAnswers bool) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Times", "B", 16)
	pdf.CellFormat(0, 8, tr(school.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Times", "I", 10)
	if school.Motto != nil && *school.Motto != "" {
		pdf.CellFormat(0, 5, tr(*school.Motto), "", 1, "C", false, 0, "")
	}
	if school.Address != nil && *school.Address != "" {
		pdf.SetFont("Times", "", 9)
		pdf.CellFormat(0, 5, tr(*school.Address), "", 1, "C", false, 0, "")
	}
	pdf.Line(15, pdf.GetY()+2, 195, pdf.GetY()+2)
	pdf.Ln(6)

	title := paper.Title
	if showAnswers {
		title += " (ANSWER KEY)"
	}
	pdf.SetFont("Times", "B", 13)
	pdf.CellFormat(0, 7, tr(title), "", 1, "C", false, 0, "")

	pdf.SetFont("Times", "", 10)
	meta := fmt.Sprintf("Paper: %s    Total Marks: %d    Duration: %d minutes",
		paper.Code, paper.TotalMarks, paper.DurationMinutes)
	pdf.CellFormat(0, 6, tr(meta), "", 1, "C", false, 0, "")

	if paper.Instructions != nil && *paper.Instructions != "" {
		pdf.SetFont("Times", "I", 10)
		pdf.MultiCell(0, 5, tr("Instructions: "+*paper.Instructions), "", "L", false)
	}
	pdf.Ln(4)

	for i, q := range paper.Questions {
		pdf.SetFont("Times", "B", 11)
		header := fmt.Sprintf("%d. [%d marks]", i+1, q.Marks)
		pdf.CellFormat(0, 6, tr(header), "", 1, "L", false, 0, "")

		pdf.SetFont("Times", "", 11)
		pdf.MultiCell(0, 5, tr(q.QuestionText), "", "L", false)

		switch q.QuestionType {
		case models.QuestionMCQ, models.QuestionTrueFalse:
			for _, opt := range q.Options {
				line := fmt.Sprintf("    %s. %s", opt.OptionLetter, opt.OptionText)
				if showAnswers && opt.IsCorrect {
					line += "  [correct]"
				}
				pdf.MultiCell(0, 5, tr(line), "", "L", false)
			}
		case models.QuestionEssay:
			if !showAnswers {
				pdf.Ln(40)
			}
		default:
			if !showAnswers {
				pdf.Ln(12)
			}
		}
		pdf.Ln(3)
	}

	pdf.SetFont("Times", "B", 10)
	pdf.CellFormat(0, 8, "*** END ***", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to build pdf for paper %s: %v", paper.Code, err)
	}
	return buf.Bytes(), nil
}
