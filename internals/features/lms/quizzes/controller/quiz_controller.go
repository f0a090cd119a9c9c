// file: internals/features/lms/quizzes/controller/quiz_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	dto "bimbelku_backend/internals/features/lms/quizzes/dto"
	model "bimbelku_backend/internals/features/lms/quizzes/model"
	helper "bimbelku_backend/internals/helpers"
)

type QuizController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewQuizController(db *gorm.DB) *QuizController {
	return &QuizController{
		DB:        db,
		Validator: validator.New(),
	}
}

/* =======================
   Filter & Sort
======================= */

func applySort(db *gorm.DB, sort string) *gorm.DB {
	switch strings.TrimSpace(strings.ToLower(sort)) {
	case "created_at":
		return db.Order("quiz_created_at ASC")
	case "desc_created_at", "":
		return db.Order("quiz_created_at DESC")
	case "title":
		return db.Order("quiz_title ASC NULLS LAST")
	case "desc_title":
		return db.Order("quiz_title DESC NULLS LAST")
	case "available_from":
		return db.Order("quiz_available_from ASC")
	case "desc_available_from":
		return db.Order("quiz_available_from DESC")
	default:
		return db.Order("quiz_created_at DESC")
	}
}

func applyFiltersQuizzes(db *gorm.DB, centerID uuid.UUID, q *dto.ListQuizzesQuery) *gorm.DB {
	db = db.Where("quiz_center_id = ?", centerID)
	if q == nil {
		return db
	}

	if q.ID != nil && *q.ID != uuid.Nil {
		db = db.Where("quiz_id = ?", *q.ID)
	}
	if q.ClassID != nil && *q.ClassID != uuid.Nil {
		db = db.Where("quiz_class_id = ?", *q.ClassID)
	}
	if q.Slug != nil && strings.TrimSpace(*q.Slug) != "" {
		db = db.Where("LOWER(quiz_slug) = LOWER(?)", strings.TrimSpace(*q.Slug))
	}
	if q.IsPublished != nil {
		db = db.Where("quiz_is_published = ?", *q.IsPublished)
	}
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + s + "%"
		db = db.Where("(quiz_title ILIKE ? OR COALESCE(quiz_description,'') ILIKE ?)", like, like)
	}
	return db
}

/* =======================
   CREATE (POST /quizzes)
======================= */

func (ctl *QuizController) CreateQuiz(c *fiber.Ctx) error {
	centerID, err := helper.GetCenterIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel(centerID)

	// Slug unik per center (soft-delete aware)
	base := ""
	if req.QuizSlug != nil {
		base = *req.QuizSlug
	}
	if base == "" {
		base = m.QuizTitle
	}
	slug, err := helper.GenerateUniqueSlug(ctl.DB, helper.SlugOptions{
		Table:            "quizzes",
		SlugColumn:       "quiz_slug",
		SoftDeleteColumn: "quiz_deleted_at",
		Filters:          map[string]any{"quiz_center_id": centerID},
		DefaultBase:      "quiz",
	}, base)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal generate slug")
	}
	m.QuizSlug = slug

	if err := ctl.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return helper.Error(c, fiber.StatusConflict, "Slug quiz sudah dipakai")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat quiz")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Quiz berhasil dibuat", dto.FromQuizModel(m))
}

/* =======================
   GET by ID (GET /quizzes/:id)
======================= */

func (ctl *QuizController) GetQuizByID(c *fiber.Ctx) error {
	centerID, err := helper.GetCenterIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID quiz tidak valid")
	}

	var m model.QuizModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("quiz_id = ? AND quiz_center_id = ?", id, centerID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Quiz tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil quiz")
	}

	return helper.Success(c, "OK", dto.FromQuizModel(&m))
}

/* =======================
   LIST (GET /quizzes)
======================= */

func (ctl *QuizController) ListQuizzes(c *fiber.Ctx) error {
	centerID, err := helper.GetCenterIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var q dto.ListQuizzesQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Query tidak valid")
	}

	paging := helper.ResolvePaging(c, 20, 100)

	base := applyFiltersQuizzes(
		ctl.DB.WithContext(c.UserContext()).Model(&model.QuizModel{}),
		centerID, &q,
	)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung quiz")
	}

	var quizzes []model.QuizModel
	if err := applySort(base, q.Sort).
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&quizzes).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar quiz")
	}

	resp := dto.FromQuizModels(quizzes)
	return helper.SuccessWithPagination(c, "OK", resp, helper.BuildPagination(total, paging, len(resp)))
}

/* =======================
   UPDATE (PATCH /quizzes/:id)
======================= */

func (ctl *QuizController) UpdateQuiz(c *fiber.Ctx) error {
	centerID, err := helper.GetCenterIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID quiz tidak valid")
	}

	var m model.QuizModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("quiz_id = ? AND quiz_center_id = ?", id, centerID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Quiz tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil quiz")
	}

	var req dto.UpdateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	updates := req.Apply(&m)
	if len(updates) == 0 {
		return helper.Success(c, "Tidak ada perubahan", dto.FromQuizModel(&m))
	}

	// Jaga invariant konfigurasi setelah patch parsial
	if err := dto.ValidateQuizInvariants(&m); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&model.QuizModel{}).
		Where("quiz_id = ?", m.QuizID).
		Updates(updates).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal update quiz")
	}

	return helper.Success(c, "Quiz berhasil diupdate", dto.FromQuizModel(&m))
}

/* =======================
   DELETE (DELETE /quizzes/:id): soft delete
======================= */

func (ctl *QuizController) DeleteQuiz(c *fiber.Ctx) error {
	centerID, err := helper.GetCenterIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID quiz tidak valid")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Where("quiz_id = ? AND quiz_center_id = ?", id, centerID).
		Delete(&model.QuizModel{})
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghapus quiz")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Quiz tidak ditemukan")
	}

	return helper.Success(c, "Quiz berhasil dihapus", nil)
}
