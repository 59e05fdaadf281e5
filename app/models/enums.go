package models

// QuestionType defines the possible types for a bank question.
type QuestionType string

const (
	QuestionMCQ         QuestionType = "mcq"
	QuestionTrueFalse   QuestionType = "true_false"
	QuestionShortAnswer QuestionType = "short_answer"
	QuestionEssay       QuestionType = "essay"
	QuestionFillBlank   QuestionType = "fill_blank"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionMCQ, QuestionTrueFalse, QuestionShortAnswer, QuestionEssay, QuestionFillBlank:
		return true
	}
	return false
}

// DifficultyLevel defines the difficulty grading of a question.
type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

func (d DifficultyLevel) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// QuestionStatus defines the review workflow of a bank question.
type QuestionStatus string

const (
	QuestionDraft    QuestionStatus = "draft"
	QuestionReviewed QuestionStatus = "reviewed"
	QuestionApproved QuestionStatus = "approved"
	QuestionRejected QuestionStatus = "rejected"
)

func (s QuestionStatus) Valid() bool {
	switch s {
	case QuestionDraft, QuestionReviewed, QuestionApproved, QuestionRejected:
		return true
	}
	return false
}

// DiaryStatus defines the lifecycle of a school diary activity.
type DiaryStatus string

const (
	DiaryUpcoming  DiaryStatus = "Upcoming"
	DiaryOngoing   DiaryStatus = "Ongoing"
	DiaryCompleted DiaryStatus = "Completed"
	DiaryCancelled DiaryStatus = "Cancelled"
)

func (s DiaryStatus) Valid() bool {
	switch s {
	case DiaryUpcoming, DiaryOngoing, DiaryCompleted, DiaryCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a diary activity may move to the given
// status. Completed and Cancelled are terminal.
func (s DiaryStatus) CanTransition(to DiaryStatus) bool {
	if !to.Valid() || s == to {
		return false
	}
	switch s {
	case DiaryUpcoming:
		return to == DiaryOngoing || to == DiaryCompleted || to == DiaryCancelled
	case DiaryOngoing:
		return to == DiaryCompleted || to == DiaryCancelled
	}
	return false
}

// ActivityStatus defines the lifecycle of a class activity.
type ActivityStatus string

const (
	ActivityDraft     ActivityStatus = "draft"
	ActivityPublished ActivityStatus = "published"
	ActivityClosed    ActivityStatus = "closed"
)

func (s ActivityStatus) Valid() bool {
	switch s {
	case ActivityDraft, ActivityPublished, ActivityClosed:
		return true
	}
	return false
}

// CanTransition reports whether a class activity may move to the given
// status. The only legal moves are draft->published and published->closed.
func (s ActivityStatus) CanTransition(to ActivityStatus) bool {
	switch {
	case s == ActivityDraft && to == ActivityPublished:
		return true
	case s == ActivityPublished && to == ActivityClosed:
		return true
	}
	return false
}

// SubmissionStatus defines the state of a student submission.
type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "pending"
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionLate      SubmissionStatus = "late"
	SubmissionGraded    SubmissionStatus = "graded"
)

// PaymentStatus defines the status of a student payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentCancelled PaymentStatus = "cancelled"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentCancelled:
		return true
	}
	return false
}

// InstallmentStatus defines the state of one scheduled partial payment.
type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "pending"
	InstallmentPaid    InstallmentStatus = "paid"
)

// GeneratedDocKind distinguishes the rendered paper from its answer key.
type GeneratedDocKind string

const (
	DocPaper     GeneratedDocKind = "paper"
	DocAnswerKey GeneratedDocKind = "answer_key"
)
