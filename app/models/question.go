package models

import "time"

// Question is one reusable entry in the school's question bank.
type Question struct {
	ID              string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SchoolID        string          `json:"school_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	TeacherID       string          `json:"teacher_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Code            string          `json:"code" gorm:"not null"`
	QuestionText    string          `json:"question_text" gorm:"not null" validate:"required"`
	QuestionType    QuestionType    `json:"question_type" gorm:"not null;type:varchar(20)" validate:"required"`
	SubjectID       string          `json:"subject_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	ClassID         string          `json:"class_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	DifficultyLevel DifficultyLevel `json:"difficulty_level" gorm:"not null;type:varchar(10)" validate:"required"`
	Marks           int             `json:"marks" gorm:"not null" validate:"required,gt=0"`
	Status          QuestionStatus  `json:"status" gorm:"not null;default:'draft';type:varchar(10)"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	Subject *Subject          `json:"subject,omitempty"`
	Class   *Class            `json:"class,omitempty"`
	Options []*QuestionOption `json:"options,omitempty"`
	Tags    []string          `json:"tags,omitempty"`
}

type QuestionOption struct {
	ID           string `json:"id"`
	QuestionID   string `json:"question_id"`
	OptionLetter string `json:"option_letter"`
	OptionText   string `json:"option_text"`
	IsCorrect    bool   `json:"is_correct"`
}
