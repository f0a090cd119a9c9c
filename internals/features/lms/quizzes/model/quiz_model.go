package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizModel struct {
	QuizID       uuid.UUID  `gorm:"column:quiz_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"quiz_id"`
	QuizCenterID uuid.UUID  `gorm:"column:quiz_center_id;type:uuid;not null;index"               json:"quiz_center_id"`
	QuizClassID  *uuid.UUID `gorm:"column:quiz_class_id;type:uuid;index"                         json:"quiz_class_id,omitempty"`

	QuizSlug        string  `gorm:"column:quiz_slug;type:varchar(160);not null"      json:"quiz_slug"`
	QuizTitle       string  `gorm:"column:quiz_title;type:varchar(180);not null"     json:"quiz_title"`
	QuizDescription *string `gorm:"column:quiz_description"                          json:"quiz_description,omitempty"`
	QuizIsPublished bool    `gorm:"column:quiz_is_published;not null;default:false"  json:"quiz_is_published"`

	// Jendela attempt: [available_from, available_to] inklusif dua sisi
	QuizAvailableFrom time.Time `gorm:"column:quiz_available_from;type:timestamptz;not null" json:"quiz_available_from"`
	QuizAvailableTo   time.Time `gorm:"column:quiz_available_to;type:timestamptz;not null"   json:"quiz_available_to"`

	// Aturan attempt & penilaian
	QuizMaxAttempts  int      `gorm:"column:quiz_max_attempts;not null;default:1"   json:"quiz_max_attempts"`
	QuizTimeLimitMin *int     `gorm:"column:quiz_time_limit_min"                    json:"quiz_time_limit_min,omitempty"` // null = tanpa batas waktu
	QuizPassingScore *float64 `gorm:"column:quiz_passing_score;type:numeric(7,3)"   json:"quiz_passing_score,omitempty"`  // null = tanpa ambang lulus
	QuizMaxScore     float64  `gorm:"column:quiz_max_score;type:numeric(7,3);not null;default:100" json:"quiz_max_score"`

	QuizCreatedAt time.Time      `gorm:"column:quiz_created_at;not null;autoCreateTime" json:"quiz_created_at"`
	QuizUpdatedAt time.Time      `gorm:"column:quiz_updated_at;not null;autoUpdateTime" json:"quiz_updated_at"`
	QuizDeletedAt gorm.DeletedAt `gorm:"column:quiz_deleted_at;index"                   json:"quiz_deleted_at,omitempty"`
}

// TableName overrides the table name used by GORM.
func (QuizModel) TableName() string {
	return "quizzes"
}
