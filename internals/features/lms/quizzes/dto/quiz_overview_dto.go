// file: internals/features/lms/quizzes/dto/quiz_overview_dto.go
package dto

import (
	"github.com/google/uuid"

	"bimbelku_backend/internals/features/lms/quizzes/quizstatus"
)

/* ==============================
   STUDENT OVERVIEW (GET /quizzes/overview)
   Satu row per quiz: semua nilai turunan yang dibutuhkan card di FE,
   dihitung sekali di server dengan satu "now".
============================== */

type AttemptabilityResponse struct {
	CanAttempt bool   `json:"can_attempt"`
	Reason     string `json:"reason,omitempty"`
	// Referensi resume (kalau ada attempt in_progress)
	InProgressAttemptID *uuid.UUID `json:"in_progress_attempt_id,omitempty"`
}

type StudentQuizOverviewResponse struct {
	Quiz QuizResponse `json:"quiz"`

	Availability quizstatus.AvailabilityResult  `json:"availability"`
	Status       quizstatus.StudentQuizStatus   `json:"status"`
	Display      quizstatus.DisplayConfig       `json:"display"`

	Attemptability    AttemptabilityResponse `json:"attemptability"`
	RemainingAttempts int                    `json:"remaining_attempts"`

	BestAttempt *QuizAttemptResponse `json:"best_attempt,omitempty"`
}
