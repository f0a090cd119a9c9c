// file: internals/features/lms/quizzes/controller/quiz_overview_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	service "bimbelku_backend/internals/features/lms/quizzes/service"
	helper "bimbelku_backend/internals/helpers"
)

type QuizOverviewController struct {
	Service *service.QuizStatusService
}

func NewQuizOverviewController(db *gorm.DB) *QuizOverviewController {
	return &QuizOverviewController{
		Service: service.NewQuizStatusService(db),
	}
}

/* =======================
   OVERVIEW (GET /quizzes/overview): student
   Satu row per quiz: availability + status kanonik + display +
   attemptability + sisa attempt + best attempt.
   Jam dibaca SEKALI di sini dan dioper ke bawah.
======================= */

func (ctl *QuizOverviewController) StudentOverview(c *fiber.Ctx) error {
	centerID, err := helper.GetCenterIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var classID *uuid.UUID
	if raw := c.Query("class_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "class_id tidak valid")
		}
		classID = &id
	}

	rows, err := ctl.Service.StudentOverview(c.UserContext(), centerID, studentID, classID, time.Now())
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung overview quiz")
	}

	return helper.Success(c, "OK", rows)
}
