package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	quizcontroller "bimbelku_backend/internals/features/lms/quizzes/controller"
	middlewares "bimbelku_backend/internals/middlewares"
)

/*
Catatan:
- Parent router teacher sudah di-mount dengan prefix /api/a + middleware
  auth + role check (teacher & above).
- Parent router student di-mount dengan prefix /api/u + middleware auth.
- Center context selalu dari token, bukan dari path.
*/

// QuizTeacherRoutes: manajemen quiz + grading (teacher & above)
func QuizTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := quizcontroller.NewQuizController(db)
	attemptCtrl := quizcontroller.NewQuizAttemptController(db)

	g := r.Group("/quizzes")
	g.Get("/", ctrl.ListQuizzes)      // GET    /api/a/quizzes
	g.Get("/list", ctrl.ListQuizzes)  // alias
	g.Post("/", ctrl.CreateQuiz)      // POST   /api/a/quizzes
	g.Get("/:id", ctrl.GetQuizByID)   // GET    /api/a/quizzes/:id
	g.Patch("/:id", ctrl.UpdateQuiz)  // PATCH  /api/a/quizzes/:id
	g.Delete("/:id", ctrl.DeleteQuiz) // DELETE /api/a/quizzes/:id

	a := r.Group("/quiz-attempts")
	a.Patch("/:id/grade", attemptCtrl.GradeAttempt) // PATCH /api/a/quiz-attempts/:id/grade
}

// QuizStudentRoutes: attempt lifecycle + overview (student)
func QuizStudentRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := quizcontroller.NewQuizController(db)
	attemptCtrl := quizcontroller.NewQuizAttemptController(db)
	overviewCtrl := quizcontroller.NewQuizOverviewController(db)

	g := r.Group("/quizzes")
	g.Get("/overview", overviewCtrl.StudentOverview)         // GET /api/u/quizzes/overview?class_id=
	g.Get("/:quiz_id/my-attempts", attemptCtrl.ListMyAttempts) // GET /api/u/quizzes/:quiz_id/my-attempts
	g.Get("/:id", ctrl.GetQuizByID)                          // GET /api/u/quizzes/:id

	a := r.Group("/quiz-attempts", middlewares.AttemptRateLimiter())
	a.Post("/", attemptCtrl.StartAttempt)            // POST /api/u/quiz-attempts
	a.Post("/:id/submit", attemptCtrl.SubmitAttempt) // POST /api/u/quiz-attempts/:id/submit
}
