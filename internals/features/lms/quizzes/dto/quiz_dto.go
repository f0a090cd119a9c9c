// file: internals/features/lms/quizzes/dto/quiz_dto.go
package dto

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	model "bimbelku_backend/internals/features/lms/quizzes/model"
)

/* ==============================
   Helpers
============================== */

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

/*
==============================

	Helper: Tri-state updater
	- Absent  : tidak diupdate
	- null    : set kolom ke NULL
	- value   : set kolom ke value

==============================
*/
type UpdateField[T any] struct {
	set   bool
	null  bool
	value T
}

func (f *UpdateField[T]) UnmarshalJSON(b []byte) error {
	f.set = true
	if string(b) == "null" {
		f.null = true
		var zero T
		f.value = zero
		return nil
	}
	return json.Unmarshal(b, &f.value)
}

func (f UpdateField[T]) ShouldUpdate() bool { return f.set }
func (f UpdateField[T]) IsNull() bool       { return f.set && f.null }
func (f UpdateField[T]) Val() T             { return f.value }

/* ==============================
   CREATE (POST /quizzes)
============================== */

type CreateQuizRequest struct {
	// Scope kelas opsional; tenant (center) diambil dari token, bukan payload
	QuizClassID *uuid.UUID `json:"quiz_class_id" validate:"omitempty,uuid4"`

	QuizSlug        *string `json:"quiz_slug" validate:"omitempty,max=160"`
	QuizTitle       string  `json:"quiz_title" validate:"required,max=180"`
	QuizDescription *string `json:"quiz_description" validate:"omitempty"`
	QuizIsPublished *bool   `json:"quiz_is_published" validate:"omitempty"`

	// Jendela attempt: available_to harus ≥ available_from
	QuizAvailableFrom time.Time `json:"quiz_available_from" validate:"required"`
	QuizAvailableTo   time.Time `json:"quiz_available_to" validate:"required,gtefield=QuizAvailableFrom"`

	QuizMaxAttempts  *int     `json:"quiz_max_attempts" validate:"omitempty,gte=1"`
	QuizTimeLimitMin *int     `json:"quiz_time_limit_min" validate:"omitempty,gte=1"`
	QuizPassingScore *float64 `json:"quiz_passing_score" validate:"omitempty,gte=0"`
	QuizMaxScore     *float64 `json:"quiz_max_score" validate:"omitempty,gt=0"`
}

// ToModel: builder model dari payload Create (timestamps oleh GORM).
// Slug final diisi controller (perlu cek unik di DB).
func (r *CreateQuizRequest) ToModel(centerID uuid.UUID) *model.QuizModel {
	isPub := false
	if r.QuizIsPublished != nil {
		isPub = *r.QuizIsPublished
	}
	maxAttempts := 1
	if r.QuizMaxAttempts != nil {
		maxAttempts = *r.QuizMaxAttempts
	}
	maxScore := 100.0
	if r.QuizMaxScore != nil {
		maxScore = *r.QuizMaxScore
	}

	return &model.QuizModel{
		QuizCenterID:      centerID,
		QuizClassID:       r.QuizClassID,
		QuizTitle:         strings.TrimSpace(r.QuizTitle),
		QuizDescription:   trimPtr(r.QuizDescription),
		QuizIsPublished:   isPub,
		QuizAvailableFrom: r.QuizAvailableFrom.UTC(),
		QuizAvailableTo:   r.QuizAvailableTo.UTC(),
		QuizMaxAttempts:   maxAttempts,
		QuizTimeLimitMin:  r.QuizTimeLimitMin,
		QuizPassingScore:  r.QuizPassingScore,
		QuizMaxScore:      maxScore,
	}
}

/* ==============================
   UPDATE (PATCH /quizzes/:id)
============================== */

type UpdateQuizRequest struct {
	QuizClassID UpdateField[uuid.UUID] `json:"quiz_class_id"`

	QuizTitle       UpdateField[string] `json:"quiz_title"`
	QuizDescription UpdateField[string] `json:"quiz_description"`
	QuizIsPublished UpdateField[bool]   `json:"quiz_is_published"`

	QuizAvailableFrom UpdateField[time.Time] `json:"quiz_available_from"`
	QuizAvailableTo   UpdateField[time.Time] `json:"quiz_available_to"`

	QuizMaxAttempts  UpdateField[int]     `json:"quiz_max_attempts"`
	QuizTimeLimitMin UpdateField[int]     `json:"quiz_time_limit_min"`
	QuizPassingScore UpdateField[float64] `json:"quiz_passing_score"`
	QuizMaxScore     UpdateField[float64] `json:"quiz_max_score"`
}

// Apply menerapkan field yang dikirim ke model; mengembalikan map kolom→nilai
// untuk gorm Updates (biar kolom yang tidak dikirim tidak tersentuh).
func (r *UpdateQuizRequest) Apply(m *model.QuizModel) map[string]interface{} {
	updates := map[string]interface{}{}

	if r.QuizClassID.ShouldUpdate() {
		if r.QuizClassID.IsNull() {
			m.QuizClassID = nil
			updates["quiz_class_id"] = nil
		} else {
			v := r.QuizClassID.Val()
			m.QuizClassID = &v
			updates["quiz_class_id"] = v
		}
	}
	if r.QuizTitle.ShouldUpdate() && !r.QuizTitle.IsNull() {
		m.QuizTitle = strings.TrimSpace(r.QuizTitle.Val())
		updates["quiz_title"] = m.QuizTitle
	}
	if r.QuizDescription.ShouldUpdate() {
		if r.QuizDescription.IsNull() {
			m.QuizDescription = nil
			updates["quiz_description"] = nil
		} else {
			v := strings.TrimSpace(r.QuizDescription.Val())
			m.QuizDescription = &v
			updates["quiz_description"] = v
		}
	}
	if r.QuizIsPublished.ShouldUpdate() && !r.QuizIsPublished.IsNull() {
		m.QuizIsPublished = r.QuizIsPublished.Val()
		updates["quiz_is_published"] = m.QuizIsPublished
	}
	if r.QuizAvailableFrom.ShouldUpdate() && !r.QuizAvailableFrom.IsNull() {
		m.QuizAvailableFrom = r.QuizAvailableFrom.Val().UTC()
		updates["quiz_available_from"] = m.QuizAvailableFrom
	}
	if r.QuizAvailableTo.ShouldUpdate() && !r.QuizAvailableTo.IsNull() {
		m.QuizAvailableTo = r.QuizAvailableTo.Val().UTC()
		updates["quiz_available_to"] = m.QuizAvailableTo
	}
	if r.QuizMaxAttempts.ShouldUpdate() && !r.QuizMaxAttempts.IsNull() {
		m.QuizMaxAttempts = r.QuizMaxAttempts.Val()
		updates["quiz_max_attempts"] = m.QuizMaxAttempts
	}
	if r.QuizTimeLimitMin.ShouldUpdate() {
		if r.QuizTimeLimitMin.IsNull() {
			m.QuizTimeLimitMin = nil
			updates["quiz_time_limit_min"] = nil
		} else {
			v := r.QuizTimeLimitMin.Val()
			m.QuizTimeLimitMin = &v
			updates["quiz_time_limit_min"] = v
		}
	}
	if r.QuizPassingScore.ShouldUpdate() {
		if r.QuizPassingScore.IsNull() {
			m.QuizPassingScore = nil
			updates["quiz_passing_score"] = nil
		} else {
			v := r.QuizPassingScore.Val()
			m.QuizPassingScore = &v
			updates["quiz_passing_score"] = v
		}
	}
	if r.QuizMaxScore.ShouldUpdate() && !r.QuizMaxScore.IsNull() {
		m.QuizMaxScore = r.QuizMaxScore.Val()
		updates["quiz_max_score"] = m.QuizMaxScore
	}

	return updates
}

// ValidateQuizInvariants memeriksa konsistensi konfigurasi quiz setelah
// patch parsial diterapkan ke model. Create sudah dijaga tag validator;
// PATCH tri-state bisa menyelundupkan nilai di luar rentang, jadi model
// hasil Apply wajib lewat sini sebelum disimpan.
func ValidateQuizInvariants(m *model.QuizModel) error {
	switch {
	case m.QuizAvailableFrom.After(m.QuizAvailableTo):
		return errors.New("quiz_available_to harus ≥ quiz_available_from")
	case m.QuizMaxAttempts < 1:
		return errors.New("quiz_max_attempts harus ≥ 1")
	case m.QuizMaxScore <= 0:
		return errors.New("quiz_max_score harus > 0")
	case m.QuizTimeLimitMin != nil && *m.QuizTimeLimitMin < 1:
		return errors.New("quiz_time_limit_min harus ≥ 1")
	case m.QuizPassingScore != nil && *m.QuizPassingScore < 0:
		return errors.New("quiz_passing_score tidak boleh negatif")
	}
	return nil
}

/* ==============================
   LIST (GET /quizzes)
============================== */

type ListQuizzesQuery struct {
	ID          *uuid.UUID `query:"id"`
	ClassID     *uuid.UUID `query:"class_id"`
	Slug        *string    `query:"slug"`
	IsPublished *bool      `query:"is_published"`
	Q           string     `query:"q"`
	Sort        string     `query:"sort"`
}

/* ==============================
   RESPONSE
============================== */

type QuizResponse struct {
	QuizID          uuid.UUID  `json:"quiz_id"`
	QuizCenterID    uuid.UUID  `json:"quiz_center_id"`
	QuizClassID     *uuid.UUID `json:"quiz_class_id,omitempty"`
	QuizSlug        string     `json:"quiz_slug"`
	QuizTitle       string     `json:"quiz_title"`
	QuizDescription *string    `json:"quiz_description,omitempty"`
	QuizIsPublished bool       `json:"quiz_is_published"`

	QuizAvailableFrom time.Time `json:"quiz_available_from"`
	QuizAvailableTo   time.Time `json:"quiz_available_to"`

	QuizMaxAttempts  int      `json:"quiz_max_attempts"`
	QuizTimeLimitMin *int     `json:"quiz_time_limit_min,omitempty"`
	QuizPassingScore *float64 `json:"quiz_passing_score,omitempty"`
	QuizMaxScore     float64  `json:"quiz_max_score"`

	QuizCreatedAt time.Time `json:"quiz_created_at"`
	QuizUpdatedAt time.Time `json:"quiz_updated_at"`
}

func FromQuizModel(m *model.QuizModel) *QuizResponse {
	if m == nil {
		return nil
	}
	return &QuizResponse{
		QuizID:            m.QuizID,
		QuizCenterID:      m.QuizCenterID,
		QuizClassID:       m.QuizClassID,
		QuizSlug:          m.QuizSlug,
		QuizTitle:         m.QuizTitle,
		QuizDescription:   m.QuizDescription,
		QuizIsPublished:   m.QuizIsPublished,
		QuizAvailableFrom: m.QuizAvailableFrom,
		QuizAvailableTo:   m.QuizAvailableTo,
		QuizMaxAttempts:   m.QuizMaxAttempts,
		QuizTimeLimitMin:  m.QuizTimeLimitMin,
		QuizPassingScore:  m.QuizPassingScore,
		QuizMaxScore:      m.QuizMaxScore,
		QuizCreatedAt:     m.QuizCreatedAt,
		QuizUpdatedAt:     m.QuizUpdatedAt,
	}
}

func FromQuizModels(ms []model.QuizModel) []QuizResponse {
	out := make([]QuizResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *FromQuizModel(&ms[i]))
	}
	return out
}
