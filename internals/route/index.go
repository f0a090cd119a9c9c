// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bimbelku_backend/internals/constants"
	quizroute "bimbelku_backend/internals/features/lms/quizzes/route"
	authmw "bimbelku_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== STUDENT (/api/u) =====================
	log.Println("[INFO] Setting up STUDENT group (Auth)...")
	student := app.Group("/api/u",
		authmw.AuthMiddleware(),
	)
	quizroute.QuizStudentRoutes(student, db)

	// ===================== TEACHER+ (/api/a) =====================
	log.Println("[INFO] Setting up TEACHER group (Auth + RoleCheck)...")
	teacher := app.Group("/api/a",
		authmw.AuthMiddleware(),
		authmw.OnlyRoles(constants.RoleErrorTeacher("manajemen quiz"), constants.TeacherAndAbove...),
	)
	quizroute.QuizTeacherRoutes(teacher, db)
}
