package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"darasa-schools/app/config"
	"darasa-schools/app/database"
	"darasa-schools/app/routes/auth"
)

func GetDashboardStatsAPI(c *fiber.Ctx) error {
	stats, err := database.GetDashboardStats(config.GetDB(), auth.SchoolID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}

	return c.JSON(stats)
}

func GetSubjectsAPI(c *fiber.Ctx) error {
	subjects, err := database.GetAllSubjects(config.GetDB(), auth.SchoolID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch subjects"})
	}

	return c.JSON(fiber.Map{"subjects": subjects})
}

func GetClassesAPI(c *fiber.Ctx) error {
	classes, err := database.GetAllClasses(config.GetDB(), auth.SchoolID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch classes"})
	}

	return c.JSON(fiber.Map{"classes": classes})
}

func GetClassStudentsAPI(c *fiber.Ctx) error {
	students, err := database.GetStudentsByClass(config.GetDB(), auth.SchoolID(c), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	return c.JSON(fiber.Map{"students": students})
}
