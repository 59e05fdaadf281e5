package papers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"darasa-schools/app/models"
)

func testSchool() *models.School {
	motto := "Knowledge is Light"
	return &models.School{
		ID:    "school-1",
		Name:  "Darasa High School",
		Motto: &motto,
	}
}

func testPaper() *models.ExamPaper {
	instructions := "Answer all questions."
	return &models.ExamPaper{
		ID:              "paper-1",
		Code:            "PAP2603001",
		Title:           "Mathematics End of Term",
		TotalMarks:      15,
		DurationMinutes: 90,
		Instructions:    &instructions,
		Questions: []*models.Question{
			{
				ID:           "q1",
				QuestionText: "What is 2 + 2?",
				QuestionType: models.QuestionMCQ,
				Marks:        2,
				Options: []*models.QuestionOption{
					{OptionLetter: "A", OptionText: "3"},
					{OptionLetter: "B", OptionText: "4", IsCorrect: true},
				},
			},
			{
				ID:           "q2",
				QuestionText: "The earth is flat.",
				QuestionType: models.QuestionTrueFalse,
				Marks:        1,
				Options: []*models.QuestionOption{
					{OptionLetter: "A", OptionText: "True"},
					{OptionLetter: "B", OptionText: "False", IsCorrect: true},
				},
			},
			{
				ID:           "q3",
				QuestionText: "Discuss the causes of soil erosion.",
				QuestionType: models.QuestionEssay,
				Marks:        12,
			},
		},
	}
}

func TestBuildPaperDocumentOrderAndContent(t *testing.T) {
	doc, err := BuildPaperDocument(testSchool(), testPaper(), false)
	require.NoError(t, err)

	assert.Contains(t, doc, "Darasa High School")
	assert.Contains(t, doc, "Knowledge is Light")
	assert.Contains(t, doc, "PAP2603001")
	assert.Contains(t, doc, "Answer all questions.")

	// Questions must appear in paper order. html/template escapes the
	// plus sign, so match the escaped text.
	first := strings.Index(doc, "What is 2 &#43; 2?")
	second := strings.Index(doc, "The earth is flat.")
	third := strings.Index(doc, "Discuss the causes of soil erosion.")
	require.True(t, first >= 0 && second >= 0 && third >= 0)
	assert.Less(t, first, second)
	assert.Less(t, second, third)

	// MCQ options are lettered, essay gets writing space.
	assert.Contains(t, doc, "A. 3")
	assert.Contains(t, doc, "B. 4")
	assert.Contains(t, doc, "essay-space")
}

func TestBuildPaperDocumentHidesAnswersByDefault(t *testing.T) {
	doc, err := BuildPaperDocument(testSchool(), testPaper(), false)
	require.NoError(t, err)

	assert.NotContains(t, doc, "ANSWER KEY")
	assert.NotContains(t, doc, "&#10003;")
}

func TestBuildPaperDocumentAnswerKey(t *testing.T) {
	doc, err := BuildPaperDocument(testSchool(), testPaper(), true)
	require.NoError(t, err)

	assert.Contains(t, doc, "ANSWER KEY")
	assert.Contains(t, doc, "&#10003;")
	// Essay answers defer to the rubric rather than printing blank space.
	// The stylesheet still defines essay-space, so only the body counts.
	assert.Contains(t, doc, "award up to 12 marks")
	body := doc[strings.Index(doc, "<body>"):]
	assert.NotContains(t, body, "essay-space")
}

func TestWriteDocumentFile(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteDocumentFile(dir, "PAP2603001", models.DocPaper, "<html>paper</html>")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(path), "paper_PAP2603001_"))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html>paper</html>", string(content))

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteDocumentFileAnswerKeyName(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteDocumentFile(dir, "PAP2603001", models.DocAnswerKey, "key")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(path), "answer_key_PAP2603001_"))
}

func TestBuildPaperPDF(t *testing.T) {
	pdfBytes, err := BuildPaperPDF(testSchool(), testPaper(), false)
	require.NoError(t, err)

	assert.True(t, len(pdfBytes) > 0)
	assert.True(t, strings.HasPrefix(string(pdfBytes[:5]), "%PDF-"))
}
