package questions

import (
	"github.com/gofiber/fiber/v2"

	"darasa-schools/app/config"
	"darasa-schools/app/database"
	"darasa-schools/app/routes/auth"
)

func SetupQuestionsRoutes(app *fiber.App) {
	pages := app.Group("/questions", auth.AuthMiddleware)
	pages.Get("/", ShowQuestionsPage)

	api := app.Group("/api/questions", auth.AuthMiddleware, auth.RoleMiddleware("admin", "teacher"))
	api.Get("/", GetQuestionsAPI)
	api.Get("/stats", GetQuestionStatsAPI)
	api.Get("/:id", GetQuestionAPI)
	api.Post("/", CreateQuestionAPI)
	api.Put("/:id", UpdateQuestionAPI)
	api.Post("/:id/status", UpdateQuestionStatusAPI)
	api.Delete("/:id", DeleteQuestionAPI)
}

func ShowQuestionsPage(c *fiber.Ctx) error {
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

	return c.Render("questions/index", fiber.Map{
		"Title":       "Question Bank - Darasa Schools",
		"CurrentPage": "questions",
		"user":        c.Locals("user"),
		"Subjects":    subjects,
		"Classes":     classes,
	})
}
