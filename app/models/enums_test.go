package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiaryStatusTransitions(t *testing.T) {
	tests := []struct {
		from    DiaryStatus
		to      DiaryStatus
		allowed bool
	}{
		{DiaryUpcoming, DiaryOngoing, true},
		{DiaryUpcoming, DiaryCompleted, true},
		{DiaryUpcoming, DiaryCancelled, true},
		{DiaryOngoing, DiaryCompleted, true},
		{DiaryOngoing, DiaryCancelled, true},
		{DiaryOngoing, DiaryUpcoming, false},
		{DiaryCompleted, DiaryOngoing, false},
		{DiaryCompleted, DiaryCancelled, false},
		{DiaryCancelled, DiaryUpcoming, false},
		{DiaryCancelled, DiaryCompleted, false},
	}

	for _, tt := range tests {
		got := tt.from.CanTransition(tt.to)
		assert.Equal(t, tt.allowed, got, "%s -> %s", tt.from, tt.to)
	}
}

func TestActivityStatusTransitions(t *testing.T) {
	tests := []struct {
		from    ActivityStatus
		to      ActivityStatus
		allowed bool
	}{
		{ActivityDraft, ActivityPublished, true},
		{ActivityPublished, ActivityClosed, true},
		{ActivityDraft, ActivityClosed, false},
		{ActivityPublished, ActivityDraft, false},
		{ActivityClosed, ActivityPublished, false},
		{ActivityClosed, ActivityDraft, false},
	}

	for _, tt := range tests {
		got := tt.from.CanTransition(tt.to)
		assert.Equal(t, tt.allowed, got, "%s -> %s", tt.from, tt.to)
	}
}

func TestQuestionTypeValid(t *testing.T) {
	for _, valid := range []QuestionType{QuestionMCQ, QuestionTrueFalse, QuestionShortAnswer, QuestionEssay, QuestionFillBlank} {
		assert.True(t, valid.Valid(), string(valid))
	}
	assert.False(t, QuestionType("multiple_choice").Valid())
	assert.False(t, QuestionType("").Valid())
}

func TestPaymentStatusValid(t *testing.T) {
	for _, valid := range []PaymentStatus{PaymentPending, PaymentCompleted, PaymentCancelled} {
		assert.True(t, valid.Valid(), string(valid))
	}
	assert.False(t, PaymentStatus("verified").Valid())
}

func TestDifficultyLevelValid(t *testing.T) {
	for _, valid := range []DifficultyLevel{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		assert.True(t, valid.Valid(), string(valid))
	}
	assert.False(t, DifficultyLevel("extreme").Valid())
}
