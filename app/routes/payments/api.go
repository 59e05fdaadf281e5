package payments

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"darasa-schools/app/config"
	"darasa-schools/app/database"
	"darasa-schools/app/models"
	"darasa-schools/app/routes/auth"
)

// UploadDir is where payment proof attachments land. Overridable for
// tests.
var UploadDir = "uploads/payments/admin"

type PaymentRequest struct {
	StudentID     string               `json:"student_id"`
	TotalAmount   float64              `json:"total_amount"`
	AmountPaid    float64              `json:"amount_paid"`
	PaymentMethod string               `json:"payment_method"`
	Reference     string               `json:"reference"`
	Notes         string               `json:"notes"`
	Installments  []InstallmentRequest `json:"installments"`
}

type InstallmentRequest struct {
	DueDate string  `json:"due_date"`
	Amount  float64 `json:"amount"`
}

func GetPaymentsAPI(c *fiber.Ctx) error {
	filters := database.PaymentFilters{
		Status:    c.Query("status"),
		StudentID: c.Query("student_id"),
		DateFrom:  c.Query("date_from"),
		DateTo:    c.Query("date_to"),
	}

	payments, err := database.GetStudentPayments(config.GetDB(), auth.SchoolID(c), filters)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payments"})
	}

	return c.JSON(fiber.Map{"payments": payments})
}

func GetPaymentAPI(c *fiber.Ctx) error {
	payment, err := database.GetStudentPaymentByID(config.GetDB(), auth.SchoolID(c), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Payment not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payment"})
	}

	return c.JSON(payment)
}

func CreatePaymentAPI(c *fiber.Ctx) error {
	var req PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.StudentID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Student is required"})
	}
	if req.TotalAmount <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Total amount must be positive"})
	}
	if req.AmountPaid < 0 || req.AmountPaid > req.TotalAmount {
		return c.Status(400).JSON(fiber.Map{"error": "Amount paid must be between 0 and the total amount"})
	}

	db := config.GetDB()
	schoolID := auth.SchoolID(c)

	if _, err := database.GetStudentByID(db, schoolID, req.StudentID); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	payment := &models.StudentPayment{
		StudentID:     req.StudentID,
		TotalAmount:   req.TotalAmount,
		AmountPaid:    req.AmountPaid,
		PaymentMethod: req.PaymentMethod,
	}
	if req.Reference != "" {
		payment.Reference = &req.Reference
	}
	if req.Notes != "" {
		payment.Notes = &req.Notes
	}

	var installmentSum float64
	for _, inst := range req.Installments {
		dueDate, err := time.Parse("2006-01-02", inst.DueDate)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid installment due date, expected YYYY-MM-DD"})
		}
		if inst.Amount <= 0 {
			return c.Status(400).JSON(fiber.Map{"error": "Installment amounts must be positive"})
		}
		installmentSum += inst.Amount
		payment.Installments = append(payment.Installments, &models.PaymentInstallment{
			DueDate: dueDate,
			Amount:  inst.Amount,
		})
	}
	if len(req.Installments) > 0 && installmentSum > req.TotalAmount {
		return c.Status(400).JSON(fiber.Map{"error": "Installments exceed the total amount"})
	}

	if err := database.CreateStudentPayment(db, schoolID, payment); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   "Failed to create payment",
			"details": err.Error(),
		})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Payment recorded successfully",
		"payment": payment,
	})
}

// VerifyPaymentAPI completes a pending payment. A payment already
// verified or cancelled comes back as a conflict.
func VerifyPaymentAPI(c *fiber.Ctx) error {
	err := database.VerifyPayment(config.GetDB(), auth.SchoolID(c), c.Params("id"), auth.UserID(c), auth.FullName(c))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(409).JSON(fiber.Map{"error": "Payment is not pending"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to verify payment"})
	}

	return c.JSON(fiber.Map{"message": "Payment verified successfully"})
}

func RejectPaymentAPI(c *fiber.Ctx) error {
	type RejectRequest struct {
		Reason string `json:"reason"`
	}

	var req RejectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Reason == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Rejection reason is required"})
	}

	err := database.RejectPayment(config.GetDB(), auth.SchoolID(c), c.Params("id"), auth.UserID(c), auth.FullName(c), req.Reason)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(409).JSON(fiber.Map{"error": "Payment is not pending"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to reject payment"})
	}

	return c.JSON(fiber.Map{"message": "Payment rejected"})
}

func MarkInstallmentPaidAPI(c *fiber.Ctx) error {
	err := database.MarkInstallmentPaid(config.GetDB(), auth.SchoolID(c), c.Params("id"), c.Params("installmentId"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(409).JSON(fiber.Map{"error": "Installment is not pending"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to mark installment paid"})
	}

	return c.JSON(fiber.Map{"message": "Installment marked paid"})
}

func UploadPaymentAttachmentAPI(c *fiber.Ctx) error {
	db := config.GetDB()
	schoolID := auth.SchoolID(c)
	paymentID := c.Params("id")

	if _, err := database.GetStudentPaymentByID(db, schoolID, paymentID); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Payment not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payment"})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "No file uploaded"})
	}

	if err := os.MkdirAll(UploadDir, 0o755); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to prepare upload directory"})
	}
	fileName := filepath.Base(file.Filename)
	savedPath := filepath.Join(UploadDir, uuid.New().String()+"_"+fileName)
	if err := c.SaveFile(file, savedPath); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save file"})
	}

	att := &models.PaymentAttachment{
		PaymentID:  paymentID,
		FileName:   fileName,
		FilePath:   savedPath,
		UploadedBy: auth.UserID(c),
	}
	if err := database.AddPaymentAttachment(db, att); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record attachment"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message":    "Attachment uploaded successfully",
		"attachment": att,
	})
}

// GetPaymentAuditAPI lists who verified or rejected a payment and when.
func GetPaymentAuditAPI(c *fiber.Ctx) error {
	entries, err := database.GetAuditTrail(config.GetDB(), auth.SchoolID(c), "student_payment", c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch audit trail"})
	}
	if entries == nil {
		entries = []*models.AuditEntry{}
	}

	return c.JSON(fiber.Map{"entries": entries})
}
