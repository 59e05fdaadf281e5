package activities

import (
	"github.com/gofiber/fiber/v2"

	"darasa-schools/app/config"
	"darasa-schools/app/database"
	"darasa-schools/app/routes/auth"
)

func SetupActivitiesRoutes(app *fiber.App) {
	pages := app.Group("/activities", auth.AuthMiddleware)
	pages.Get("/", ShowActivitiesPage)

	api := app.Group("/api/activities", auth.AuthMiddleware, auth.RoleMiddleware("admin", "teacher"))
	api.Get("/", GetActivitiesAPI)
	api.Get("/reports", GetActivityReportsAPI)
	api.Get("/:id", GetActivityAPI)
	api.Post("/", CreateActivityAPI)
	api.Put("/:id", UpdateActivityAPI)
	api.Post("/:id/status", UpdateActivityStatusAPI)
	api.Post("/:id/submissions", RecordSubmissionAPI)
	api.Post("/:id/submissions/:submissionId/grade", GradeSubmissionAPI)
	api.Delete("/:id", DeleteActivityAPI)
}

func ShowActivitiesPage(c *fiber.Ctx) error {
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

	return c.Render("activities/index", fiber.Map{
		"Title":       "Class Activities - Darasa Schools",
		"CurrentPage": "activities",
		"user":        c.Locals("user"),
		"Subjects":    subjects,
		"Classes":     classes,
	})
}
