package activities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validActivityRequest() ActivityRequest {
	return ActivityRequest{
		Title:        "Chapter 3 Homework",
		ActivityType: "homework",
		ClassID:      "cls-1",
		SubjectID:    "sub-1",
		DueDate:      "2026-09-20",
		TotalMarks:   20,
	}
}

func TestActivityRequestToModel(t *testing.T) {
	a, err := validActivityRequest().toModel()
	require.NoError(t, err)

	assert.Equal(t, "Chapter 3 Homework", a.Title)
	assert.Equal(t, 20, a.TotalMarks)
	assert.Equal(t, "2026-09-20", a.DueDate.Format("2006-01-02"))
	assert.Nil(t, a.Description)
}

func TestActivityRequestToModelValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ActivityRequest)
	}{
		{"blank title", func(r *ActivityRequest) { r.Title = "  " }},
		{"missing type", func(r *ActivityRequest) { r.ActivityType = "" }},
		{"missing class", func(r *ActivityRequest) { r.ClassID = "" }},
		{"missing subject", func(r *ActivityRequest) { r.SubjectID = "" }},
		{"zero marks", func(r *ActivityRequest) { r.TotalMarks = 0 }},
		{"negative marks", func(r *ActivityRequest) { r.TotalMarks = -5 }},
		{"bad due date", func(r *ActivityRequest) { r.DueDate = "soon" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validActivityRequest()
			tt.mutate(&req)
			_, err := req.toModel()
			assert.Error(t, err)
		})
	}
}
