package questions

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"darasa-schools/app/models"
)

var validate = validator.New()

// QuestionRequest is the create/update payload for a bank question.
type QuestionRequest struct {
	QuestionText    string          `json:"question_text" validate:"required"`
	QuestionType    string          `json:"question_type" validate:"required"`
	SubjectID       string          `json:"subject_id" validate:"required,uuid4"`
	ClassID         string          `json:"class_id" validate:"required,uuid4"`
	DifficultyLevel string          `json:"difficulty_level" validate:"required"`
	Marks           int             `json:"marks" validate:"required,gt=0"`
	Options         []OptionRequest `json:"options" validate:"dive"`
	Tags            []string        `json:"tags"`
}

type OptionRequest struct {
	OptionLetter string `json:"option_letter" validate:"required,len=1"`
	OptionText   string `json:"option_text" validate:"required"`
	IsCorrect    bool   `json:"is_correct"`
}

// validateQuestionRequest applies the struct rules plus the type-specific
// option rules, and converts the payload into a model.
func validateQuestionRequest(req QuestionRequest) (*models.Question, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid question: %v", err)
	}

	qType := models.QuestionType(req.QuestionType)
	if !qType.Valid() {
		return nil, fmt.Errorf("invalid question type %q", req.QuestionType)
	}

	difficulty := models.DifficultyLevel(req.DifficultyLevel)
	if !difficulty.Valid() {
		return nil, fmt.Errorf("invalid difficulty level %q", req.DifficultyLevel)
	}

	if err := checkOptions(qType, req.Options); err != nil {
		return nil, err
	}

	q := &models.Question{
		QuestionText:    strings.TrimSpace(req.QuestionText),
		QuestionType:    qType,
		SubjectID:       req.SubjectID,
		ClassID:         req.ClassID,
		DifficultyLevel: difficulty,
		Marks:           req.Marks,
		Tags:            req.Tags,
	}

	for _, opt := range req.Options {
		q.Options = append(q.Options, &models.QuestionOption{
			OptionLetter: strings.ToUpper(opt.OptionLetter),
			OptionText:   strings.TrimSpace(opt.OptionText),
			IsCorrect:    opt.IsCorrect,
		})
	}

	return q, nil
}

// checkOptions enforces the per-type option rules: an MCQ needs at least
// two options with exactly one correct; true/false needs exactly two with
// one correct; the free-text types carry no options at all.
func checkOptions(qType models.QuestionType, options []OptionRequest) error {
	correct := 0
	for _, opt := range options {
		if opt.IsCorrect {
			correct++
		}
	}

	switch qType {
	case models.QuestionMCQ:
		if len(options) < 2 {
			return fmt.Errorf("mcq questions need at least 2 options")
		}
		if correct != 1 {
			return fmt.Errorf("mcq questions need exactly one correct option, got %d", correct)
		}
	case models.QuestionTrueFalse:
		if len(options) != 2 {
			return fmt.Errorf("true/false questions need exactly 2 options")
		}
		if correct != 1 {
			return fmt.Errorf("true/false questions need exactly one correct option, got %d", correct)
		}
	default:
		if len(options) != 0 {
			return fmt.Errorf("%s questions do not take options", qType)
		}
	}

	return nil
}
