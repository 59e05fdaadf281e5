package models

import "time"

// ExamPaper is a generated, printable exam composed from selected bank
// questions in a fixed order.
type ExamPaper struct {
	ID              string    `json:"id"`
	SchoolID        string    `json:"school_id"`
	TeacherID       string    `json:"teacher_id"`
	Code            string    `json:"code"`
	Title           string    `json:"title"`
	SubjectID       string    `json:"subject_id"`
	ClassID         string    `json:"class_id"`
	TotalMarks      int       `json:"total_marks"`
	DurationMinutes int       `json:"duration_minutes"`
	Instructions    *string   `json:"instructions,omitempty"`
	CreatedAt       time.Time `json:"created_at"`

	Subject   *Subject          `json:"subject,omitempty"`
	Class     *Class            `json:"class,omitempty"`
	Questions []*Question       `json:"questions,omitempty"`
	Generated []*GeneratedPaper `json:"generated,omitempty"`
}

type PaperQuestion struct {
	PaperID       string `json:"paper_id"`
	QuestionID    string `json:"question_id"`
	QuestionOrder int    `json:"question_order"`
}

// GeneratedPaper records one rendered document on disk for a paper.
type GeneratedPaper struct {
	ID          string           `json:"id"`
	PaperID     string           `json:"paper_id"`
	Kind        GeneratedDocKind `json:"kind"`
	FilePath    string           `json:"file_path"`
	GeneratedAt time.Time        `json:"generated_at"`
}
