// file: internals/features/lms/quizzes/model/quiz_attempt_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/*
=========================================================

	QUIZ ATTEMPTS
	1 row = 1 pengerjaan quiz oleh 1 student
	- status       : in_progress → completed / timeout
	- score        : null sampai dinilai (essay manual)
	- answers      : jawaban murid dalam JSONB

=========================================================
*/

// Enum status attempt (nilai mentah di DB)
type QuizAttemptStatus string

const (
	QuizAttemptInProgress QuizAttemptStatus = "in_progress"
	QuizAttemptCompleted  QuizAttemptStatus = "completed"
	QuizAttemptTimeout    QuizAttemptStatus = "timeout"
)

// Finished: attempt sudah tidak bisa dilanjutkan lagi
// (completed maupun timeout sama-sama menghabiskan jatah attempt).
func (s QuizAttemptStatus) Finished() bool {
	return s == QuizAttemptCompleted || s == QuizAttemptTimeout
}

type QuizAttemptModel struct {
	QuizAttemptID        uuid.UUID `gorm:"column:quiz_attempt_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"quiz_attempt_id"`
	QuizAttemptCenterID  uuid.UUID `gorm:"column:quiz_attempt_center_id;type:uuid;not null;index"  json:"quiz_attempt_center_id"`
	QuizAttemptQuizID    uuid.UUID `gorm:"column:quiz_attempt_quiz_id;type:uuid;not null;index"    json:"quiz_attempt_quiz_id"`
	QuizAttemptStudentID uuid.UUID `gorm:"column:quiz_attempt_student_id;type:uuid;not null;index" json:"quiz_attempt_student_id"`

	QuizAttemptStatus QuizAttemptStatus `gorm:"column:quiz_attempt_status;type:quiz_attempt_status_enum;not null;default:'in_progress'" json:"quiz_attempt_status"`

	QuizAttemptStartedAt  time.Time  `gorm:"column:quiz_attempt_started_at;type:timestamptz;not null" json:"quiz_attempt_started_at"`
	QuizAttemptFinishedAt *time.Time `gorm:"column:quiz_attempt_finished_at;type:timestamptz"         json:"quiz_attempt_finished_at,omitempty"`

	// null = belum dinilai (mis. ada essay yang menunggu grading guru)
	QuizAttemptScore *float64 `gorm:"column:quiz_attempt_score;type:numeric(7,3)" json:"quiz_attempt_score,omitempty"`

	// Jawaban murid per soal (key = question id, value = jawaban mentah)
	QuizAttemptAnswers datatypes.JSON `gorm:"column:quiz_attempt_answers;type:jsonb;not null;default:'{}'::jsonb" json:"quiz_attempt_answers"`

	QuizAttemptCreatedAt time.Time `gorm:"column:quiz_attempt_created_at;type:timestamptz;not null;default:now();autoCreateTime" json:"quiz_attempt_created_at"`
	QuizAttemptUpdatedAt time.Time `gorm:"column:quiz_attempt_updated_at;type:timestamptz;not null;default:now();autoUpdateTime" json:"quiz_attempt_updated_at"`
}

// TableName override default GORM → pakai nama tabel nyata di DB
func (QuizAttemptModel) TableName() string {
	return "quiz_attempts"
}
