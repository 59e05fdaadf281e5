package models

import "time"

// ClassActivity is a teacher-owned gradable task (assignment, quiz,
// project, homework) with student submissions.
type ClassActivity struct {
	ID           string         `json:"id"`
	SchoolID     string         `json:"school_id"`
	TeacherID    string         `json:"teacher_id"`
	ClassID      string         `json:"class_id"`
	SubjectID    string         `json:"subject_id"`
	Title        string         `json:"title"`
	Description  *string        `json:"description,omitempty"`
	ActivityType string         `json:"activity_type"`
	DueDate      time.Time      `json:"due_date"`
	TotalMarks   int            `json:"total_marks"`
	Status       ActivityStatus `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	Class           *Class               `json:"class,omitempty"`
	Subject         *Subject             `json:"subject,omitempty"`
	Submissions     []*StudentSubmission `json:"submissions,omitempty"`
	SubmissionCount int                  `json:"submission_count"`
}

type StudentSubmission struct {
	ID             string           `json:"id"`
	ActivityID     string           `json:"activity_id"`
	StudentID      string           `json:"student_id"`
	SubmissionText *string          `json:"submission_text,omitempty"`
	AttachmentPath *string          `json:"attachment_path,omitempty"`
	SubmittedAt    *time.Time       `json:"submitted_at,omitempty"`
	MarksObtained  *int             `json:"marks_obtained,omitempty"`
	Feedback       *string          `json:"feedback,omitempty"`
	Status         SubmissionStatus `json:"status"`
	GradedBy       *string          `json:"graded_by,omitempty"`
	GradedAt       *time.Time       `json:"graded_at,omitempty"`

	Student *Student `json:"student,omitempty"`
}

// ActivityReport is the aggregated submission picture for one activity.
type ActivityReport struct {
	ActivityID     string   `json:"activity_id"`
	Title          string   `json:"title"`
	Status         string   `json:"status"`
	ClassName      string   `json:"class_name"`
	StudentCount   int      `json:"student_count"`
	SubmittedCount int      `json:"submitted_count"`
	GradedCount    int      `json:"graded_count"`
	LateCount      int      `json:"late_count"`
	AverageMarks   *float64 `json:"average_marks,omitempty"`
	SubmissionRate float64  `json:"submission_rate"`
}
