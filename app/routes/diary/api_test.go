package diary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiaryRequestToModel(t *testing.T) {
	req := DiaryRequest{
		Title:        "  Sports Day  ",
		ActivityType: "sports",
		ActivityDate: "2026-09-15",
		StartTime:    "09:00",
		Venue:        "Main Field",
	}

	a, err := req.toModel()
	require.NoError(t, err)

	assert.Equal(t, "Sports Day", a.Title)
	assert.Equal(t, "sports", a.ActivityType)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), a.ActivityDate)
	require.NotNil(t, a.StartTime)
	assert.Equal(t, "09:00", *a.StartTime)
	require.NotNil(t, a.Venue)
	assert.Equal(t, "Main Field", *a.Venue)
	assert.Nil(t, a.EndTime)
	assert.Nil(t, a.Description)
}

func TestDiaryRequestToModelValidation(t *testing.T) {
	tests := []struct {
		name string
		req  DiaryRequest
	}{
		{"blank title", DiaryRequest{Title: "   ", ActivityType: "sports", ActivityDate: "2026-09-15"}},
		{"missing type", DiaryRequest{Title: "Sports Day", ActivityDate: "2026-09-15"}},
		{"bad date", DiaryRequest{Title: "Sports Day", ActivityType: "sports", ActivityDate: "15/09/2026"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.toModel()
			assert.Error(t, err)
		})
	}
}
