package diary

import (
	"github.com/gofiber/fiber/v2"

	"darasa-schools/app/routes/auth"
)

func SetupDiaryRoutes(app *fiber.App) {
	pages := app.Group("/diary", auth.AuthMiddleware)
	pages.Get("/", ShowDiaryPage)

	api := app.Group("/api/diary", auth.AuthMiddleware)
	api.Get("/", GetDiaryAPI)
	api.Get("/export", ExportDiaryPDFAPI)
	api.Get("/:id", GetDiaryActivityAPI)
	api.Get("/:id/export", ExportDiaryActivityPDFAPI)

	// Writes stay with staff.
	staff := app.Group("/api/diary", auth.AuthMiddleware, auth.RoleMiddleware("admin", "teacher"))
	staff.Post("/", CreateDiaryAPI)
	staff.Put("/:id", UpdateDiaryAPI)
	staff.Post("/:id/status", UpdateDiaryStatusAPI)
	staff.Post("/:id/attachments", UploadDiaryAttachmentAPI)
	staff.Delete("/:id", DeleteDiaryAPI)
}

func ShowDiaryPage(c *fiber.Ctx) error {
	return c.Render("diary/index", fiber.Map{
		"Title":       "School Diary - Darasa Schools",
		"CurrentPage": "diary",
		"user":        c.Locals("user"),
	})
}
