package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"darasa-schools/app/routes/auth"
)

func SetupDashboardRoutes(app *fiber.App) {
	app.Get("/", auth.AuthMiddleware, ShowDashboardPage)
	app.Get("/dashboard", auth.AuthMiddleware, ShowDashboardPage)

	api := app.Group("/api", auth.AuthMiddleware)
	api.Get("/dashboard/stats", GetDashboardStatsAPI)
	api.Get("/subjects", GetSubjectsAPI)
	api.Get("/classes", GetClassesAPI)
	api.Get("/classes/:id/students", GetClassStudentsAPI)
}

func ShowDashboardPage(c *fiber.Ctx) error {
	return c.Render("dashboard/index", fiber.Map{
		"Title":       "Dashboard - Darasa Schools",
		"CurrentPage": "dashboard",
		"user":        c.Locals("user"),
	})
}
