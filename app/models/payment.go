package models

import "time"

// StudentPayment represents a fee payment recorded for a student, reviewed
// and verified by an administrator.
type StudentPayment struct {
	ID            string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SchoolID      string        `json:"school_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	StudentID     string        `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	TotalAmount   float64       `json:"total_amount" gorm:"not null;type:decimal(12,2)" validate:"required,gt=0"`
	AmountPaid    float64       `json:"amount_paid" gorm:"not null;type:decimal(12,2)" validate:"gte=0"`
	Balance       float64       `json:"balance" gorm:"not null;type:decimal(12,2)"`
	PaymentMethod string        `json:"payment_method" gorm:"type:varchar(50)"`
	Reference     *string       `json:"reference,omitempty"`
	Status        PaymentStatus `json:"status" gorm:"not null;default:'pending';type:varchar(20)"`
	VerifiedBy    *string       `json:"verified_by,omitempty"`
	VerifiedAt    *time.Time    `json:"verified_at,omitempty"`
	Notes         *string       `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	Student      *Student              `json:"student,omitempty"`
	Installments []*PaymentInstallment `json:"installments,omitempty"`
	Attachments  []*PaymentAttachment  `json:"attachments,omitempty"`
}

// PaymentInstallment is one scheduled partial payment within a fee plan.
type PaymentInstallment struct {
	ID        string            `json:"id"`
	PaymentID string            `json:"payment_id"`
	DueDate   time.Time         `json:"due_date"`
	Amount    float64           `json:"amount"`
	Status    InstallmentStatus `json:"status"`
	PaidAt    *time.Time        `json:"paid_at,omitempty"`
}

type PaymentAttachment struct {
	ID         string    `json:"id"`
	PaymentID  string    `json:"payment_id"`
	FileName   string    `json:"file_name"`
	FilePath   string    `json:"file_path"`
	UploadedBy string    `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}
