package payments

import (
	"github.com/gofiber/fiber/v2"

	"darasa-schools/app/routes/auth"
)

func SetupPaymentsRoutes(app *fiber.App) {
	pages := app.Group("/payments", auth.AuthMiddleware, auth.RoleMiddleware("admin", "bursar"))
	pages.Get("/", ShowPaymentsPage)

	api := app.Group("/api/payments", auth.AuthMiddleware, auth.RoleMiddleware("admin", "bursar"))
	api.Get("/", GetPaymentsAPI)
	api.Get("/:id", GetPaymentAPI)
	api.Get("/:id/audit", GetPaymentAuditAPI)
	api.Post("/", CreatePaymentAPI)
	api.Post("/:id/verify", VerifyPaymentAPI)
	api.Post("/:id/reject", RejectPaymentAPI)
	api.Post("/:id/installments/:installmentId/pay", MarkInstallmentPaidAPI)
	api.Post("/:id/attachments", UploadPaymentAttachmentAPI)
}

func ShowPaymentsPage(c *fiber.Ctx) error {
	return c.Render("payments/index", fiber.Map{
		"Title":       "Payment Review - Darasa Schools",
		"CurrentPage": "payments",
		"user":        c.Locals("user"),
	})
}
