// file: internals/features/lms/quizzes/controller/quiz_attempt_controller.go
package controller

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	dto "bimbelku_backend/internals/features/lms/quizzes/dto"
	model "bimbelku_backend/internals/features/lms/quizzes/model"
	service "bimbelku_backend/internals/features/lms/quizzes/service"
	helper "bimbelku_backend/internals/helpers"
)

type QuizAttemptController struct {
	DB        *gorm.DB
	Service   *service.QuizAttemptService
	Validator *validator.Validate
}

func NewQuizAttemptController(db *gorm.DB) *QuizAttemptController {
	return &QuizAttemptController{
		DB:        db,
		Service:   service.NewQuizAttemptService(db),
		Validator: validator.New(),
	}
}

// mapAttemptErr: sentinel service → HTTP status
func mapAttemptErr(c *fiber.Ctx, err error) error {
	var cannot *service.ErrCannotAttempt
	switch {
	case errors.As(err, &cannot):
		return helper.Error(c, fiber.StatusConflict, cannot.Reason)
	case errors.Is(err, service.ErrQuizNotFound),
		errors.Is(err, service.ErrAttemptNotFound):
		return helper.Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotAttemptOwner):
		return helper.Error(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrAttemptNotInProgress),
		errors.Is(err, service.ErrAttemptNotFinished),
		errors.Is(err, service.ErrScoreExceedsMax):
		return helper.Error(c, fiber.StatusUnprocessableEntity, err.Error())
	default:
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan internal")
	}
}

/* =======================
   START (POST /quiz-attempts): student
======================= */

func (ctl *QuizAttemptController) StartAttempt(c *fiber.Ctx) error {
	centerID, err := helper.GetCenterIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.StartAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	attempt, resumed, err := ctl.Service.StartAttempt(c.UserContext(), centerID, studentID, req.QuizID, time.Now())
	if err != nil {
		return mapAttemptErr(c, err)
	}

	msg := "Attempt dimulai"
	code := fiber.StatusCreated
	if resumed {
		msg = "Melanjutkan attempt yang sedang berjalan"
		code = fiber.StatusOK
	}
	return helper.SuccessWithCode(c, code, msg, dto.FromQuizAttemptModel(attempt, attemptMaxScore(c.UserContext(), ctl.DB, attempt)))
}

/* =======================
   SUBMIT (POST /quiz-attempts/:id/submit): student
======================= */

func (ctl *QuizAttemptController) SubmitAttempt(c *fiber.Ctx) error {
	centerID, err := helper.GetCenterIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	attemptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID attempt tidak valid")
	}

	var req dto.SubmitAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	raw, err := sonic.Marshal(req.Answers)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Jawaban tidak bisa diserialisasi")
	}

	attempt, err := ctl.Service.SubmitAttempt(c.UserContext(), centerID, studentID, attemptID, datatypes.JSON(raw), time.Now())
	if err != nil {
		return mapAttemptErr(c, err)
	}

	return helper.Success(c, "Attempt berhasil disubmit", dto.FromQuizAttemptModel(attempt, attemptMaxScore(c.UserContext(), ctl.DB, attempt)))
}

/* =======================
   GRADE (PATCH /quiz-attempts/:id/grade): teacher & above
======================= */

func (ctl *QuizAttemptController) GradeAttempt(c *fiber.Ctx) error {
	centerID, err := helper.GetCenterIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	attemptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID attempt tidak valid")
	}

	var req dto.GradeAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	attempt, err := ctl.Service.GradeAttempt(c.UserContext(), centerID, attemptID, req.Score)
	if err != nil {
		return mapAttemptErr(c, err)
	}

	return helper.Success(c, "Attempt berhasil dinilai", dto.FromQuizAttemptModel(attempt, attemptMaxScore(c.UserContext(), ctl.DB, attempt)))
}

/* =======================
   LIST (GET /quizzes/:quiz_id/my-attempts): student
======================= */

func (ctl *QuizAttemptController) ListMyAttempts(c *fiber.Ctx) error {
	centerID, err := helper.GetCenterIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	quizID, err := uuid.Parse(c.Params("quiz_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID quiz tidak valid")
	}

	var quiz model.QuizModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("quiz_id = ? AND quiz_center_id = ?", quizID, centerID).
		First(&quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Quiz tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil quiz")
	}

	attempts, err := ctl.Service.ListStudentAttempts(c.UserContext(), centerID, studentID, quizID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar attempt")
	}

	return helper.Success(c, "OK", dto.FromQuizAttemptModels(attempts, quiz.QuizMaxScore))
}

/* =======================
   INTERNAL
======================= */

// attemptMaxScore: ambil max score quiz utk hitung persentase response.
// Best effort: kalau quiz hilang (race delete), pakai 0 (persen jadi 0).
func attemptMaxScore(ctx context.Context, db *gorm.DB, a *model.QuizAttemptModel) float64 {
	var quiz model.QuizModel
	if err := db.WithContext(ctx).
		Select("quiz_max_score").
		Where("quiz_id = ?", a.QuizAttemptQuizID).
		First(&quiz).Error; err != nil {
		return 0
	}
	return quiz.QuizMaxScore
}
