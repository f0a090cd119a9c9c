// file: internals/features/lms/quizzes/dto/quiz_attempt_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "bimbelku_backend/internals/features/lms/quizzes/model"
	"bimbelku_backend/internals/features/lms/quizzes/quizstatus"
)

/* ==============================
   START (POST /quiz-attempts)
============================== */

type StartAttemptRequest struct {
	QuizID uuid.UUID `json:"quiz_id" validate:"required,uuid4"`
}

/* ==============================
   SUBMIT (POST /quiz-attempts/:id/submit)
============================== */

type SubmitAttemptRequest struct {
	// key = question id, value = jawaban mentah (key opsi / teks essay)
	Answers map[string]string `json:"answers" validate:"required"`
}

/* ==============================
   GRADE (PATCH /quiz-attempts/:id/grade): teacher only
============================== */

type GradeAttemptRequest struct {
	Score float64 `json:"score" validate:"gte=0"`
}

/* ==============================
   RESPONSE
============================== */

type QuizAttemptResponse struct {
	QuizAttemptID        uuid.UUID               `json:"quiz_attempt_id"`
	QuizAttemptQuizID    uuid.UUID               `json:"quiz_attempt_quiz_id"`
	QuizAttemptStudentID uuid.UUID               `json:"quiz_attempt_student_id"`
	QuizAttemptStatus    model.QuizAttemptStatus `json:"quiz_attempt_status"`

	QuizAttemptStartedAt  time.Time  `json:"quiz_attempt_started_at"`
	QuizAttemptFinishedAt *time.Time `json:"quiz_attempt_finished_at,omitempty"`
	QuizAttemptScore      *float64   `json:"quiz_attempt_score,omitempty"`

	// Persentase dari score terhadap quiz_max_score (0 kalau belum dinilai)
	QuizAttemptPercentage float64 `json:"quiz_attempt_percentage"`
}

func FromQuizAttemptModel(m *model.QuizAttemptModel, maxScore float64) *QuizAttemptResponse {
	if m == nil {
		return nil
	}
	pct := 0.0
	if m.QuizAttemptScore != nil {
		pct = quizstatus.Percentage(*m.QuizAttemptScore, maxScore)
	}
	return &QuizAttemptResponse{
		QuizAttemptID:         m.QuizAttemptID,
		QuizAttemptQuizID:     m.QuizAttemptQuizID,
		QuizAttemptStudentID:  m.QuizAttemptStudentID,
		QuizAttemptStatus:     m.QuizAttemptStatus,
		QuizAttemptStartedAt:  m.QuizAttemptStartedAt,
		QuizAttemptFinishedAt: m.QuizAttemptFinishedAt,
		QuizAttemptScore:      m.QuizAttemptScore,
		QuizAttemptPercentage: pct,
	}
}

func FromQuizAttemptModels(ms []model.QuizAttemptModel, maxScore float64) []QuizAttemptResponse {
	out := make([]QuizAttemptResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *FromQuizAttemptModel(&ms[i], maxScore))
	}
	return out
}
