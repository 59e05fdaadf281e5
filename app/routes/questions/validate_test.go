package questions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"darasa-schools/app/models"
)

func validMCQRequest() QuestionRequest {
	return QuestionRequest{
		QuestionText:    "What is 2 + 2?",
		QuestionType:    "mcq",
		SubjectID:       "9f1b6a0e-5c3d-4e8f-9a2b-1c4d5e6f7a8b",
		ClassID:         "8e2c7b1f-6d4e-4f9a-8b3c-2d5e6f7a8b9c",
		DifficultyLevel: "easy",
		Marks:           2,
		Options: []OptionRequest{
			{OptionLetter: "a", OptionText: "3", IsCorrect: false},
			{OptionLetter: "b", OptionText: "4", IsCorrect: true},
		},
	}
}

func TestValidateQuestionRequestMCQ(t *testing.T) {
	q, err := validateQuestionRequest(validMCQRequest())
	require.NoError(t, err)

	assert.Equal(t, models.QuestionMCQ, q.QuestionType)
	assert.Equal(t, models.DifficultyEasy, q.DifficultyLevel)
	require.Len(t, q.Options, 2)
	assert.Equal(t, "A", q.Options[0].OptionLetter)
	assert.Equal(t, "B", q.Options[1].OptionLetter)
	assert.True(t, q.Options[1].IsCorrect)
}

func TestValidateQuestionRequestRejectsBadType(t *testing.T) {
	req := validMCQRequest()
	req.QuestionType = "multiple_choice"

	_, err := validateQuestionRequest(req)
	assert.Error(t, err)
}

func TestValidateQuestionRequestRejectsBadDifficulty(t *testing.T) {
	req := validMCQRequest()
	req.DifficultyLevel = "impossible"

	_, err := validateQuestionRequest(req)
	assert.Error(t, err)
}

func TestValidateQuestionRequestRejectsZeroMarks(t *testing.T) {
	req := validMCQRequest()
	req.Marks = 0

	_, err := validateQuestionRequest(req)
	assert.Error(t, err)
}

func TestCheckOptions(t *testing.T) {
	two := []OptionRequest{
		{OptionLetter: "A", OptionText: "True", IsCorrect: true},
		{OptionLetter: "B", OptionText: "False"},
	}
	twoCorrect := []OptionRequest{
		{OptionLetter: "A", OptionText: "3", IsCorrect: true},
		{OptionLetter: "B", OptionText: "4", IsCorrect: true},
	}
	three := append(two, OptionRequest{OptionLetter: "C", OptionText: "Maybe"})

	tests := []struct {
		name    string
		qType   models.QuestionType
		options []OptionRequest
		wantErr bool
	}{
		{"mcq with one correct", models.QuestionMCQ, two, false},
		{"mcq single option", models.QuestionMCQ, two[:1], true},
		{"mcq no correct", models.QuestionMCQ, []OptionRequest{{OptionLetter: "A", OptionText: "3"}, {OptionLetter: "B", OptionText: "4"}}, true},
		{"mcq two correct", models.QuestionMCQ, twoCorrect, true},
		{"true_false exactly two", models.QuestionTrueFalse, two, false},
		{"true_false three options", models.QuestionTrueFalse, three, true},
		{"essay with options", models.QuestionEssay, two, true},
		{"essay without options", models.QuestionEssay, nil, false},
		{"short_answer without options", models.QuestionShortAnswer, nil, false},
		{"fill_blank without options", models.QuestionFillBlank, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkOptions(tt.qType, tt.options)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
