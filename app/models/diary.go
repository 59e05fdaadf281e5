package models

import "time"

// DiaryActivity is one entry in the school diary (sports day, assembly,
// parents' meeting and the like).
type DiaryActivity struct {
	ID           string      `json:"id"`
	SchoolID     string      `json:"school_id"`
	Title        string      `json:"title"`
	ActivityType string      `json:"activity_type"`
	ActivityDate time.Time   `json:"activity_date"`
	StartTime    *string     `json:"start_time,omitempty"`
	EndTime      *string     `json:"end_time,omitempty"`
	Venue        *string     `json:"venue,omitempty"`
	Coordinator  *string     `json:"coordinator,omitempty"`
	Description  *string     `json:"description,omitempty"`
	Status       DiaryStatus `json:"status"`
	Participants *int        `json:"participants,omitempty"`
	Winners      *string     `json:"winners,omitempty"`
	Achievements *string     `json:"achievements,omitempty"`
	Views        int         `json:"views"`
	CreatedBy    string      `json:"created_by"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`

	Attachments []*DiaryAttachment `json:"attachments,omitempty"`
}

type DiaryAttachment struct {
	ID         string    `json:"id"`
	DiaryID    string    `json:"diary_id"`
	FileName   string    `json:"file_name"`
	FilePath   string    `json:"file_path"`
	UploadedAt time.Time `json:"uploaded_at"`
}
