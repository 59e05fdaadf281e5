package papers

import (
	"github.com/gofiber/fiber/v2"

	"darasa-schools/app/config"
	"darasa-schools/app/database"
	"darasa-schools/app/routes/auth"
)

func SetupPapersRoutes(app *fiber.App) {
	pages := app.Group("/papers", auth.AuthMiddleware)
	pages.Get("/", ShowPapersPage)

	api := app.Group("/api/papers", auth.AuthMiddleware, auth.RoleMiddleware("admin", "teacher"))
	api.Get("/", GetPapersAPI)
	api.Get("/:id", GetPaperAPI)
	api.Post("/", CreatePaperAPI)
	api.Post("/:id/preview", PreviewPaperAPI)
	api.Post("/:id/generate", GeneratePaperAPI)
	api.Delete("/:id", DeletePaperAPI)
}

func ShowPapersPage(c *fiber.Ctx) error {
	db := config.GetDB()
	schoolID := auth.SchoolID(c)

	subjects, err := database.GetAllSubjects(db, schoolID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load subjects")
	}
	classes, err := database.GetAllClasses(db, schoolID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load classes")
	}

	return c.Render("papers/index", fiber.Map{
		"Title":       "Exam Papers - Darasa Schools",
		"CurrentPage": "papers",
		"user":        c.Locals("user"),
		"Subjects":    subjects,
		"Classes":     classes,
	})
}
