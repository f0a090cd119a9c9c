// file: internals/features/lms/quizzes/service/quiz_attempt_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	qmodel "bimbelku_backend/internals/features/lms/quizzes/model"
	"bimbelku_backend/internals/features/lms/quizzes/quizstatus"
)

/* =========================================================
   ERRORS (controller yang memetakan ke HTTP status)
========================================================= */

var (
	ErrQuizNotFound         = errors.New("quiz tidak ditemukan")
	ErrAttemptNotFound      = errors.New("attempt tidak ditemukan")
	ErrNotAttemptOwner      = errors.New("attempt bukan milik student ini")
	ErrAttemptNotInProgress = errors.New("attempt sudah selesai")
	ErrAttemptNotFinished   = errors.New("attempt belum selesai, belum bisa dinilai")
	ErrScoreExceedsMax      = errors.New("score melebihi quiz_max_score")
)

// ErrCannotAttempt membungkus alasan dari quizstatus.CanAttempt.
type ErrCannotAttempt struct {
	Reason string
}

func (e *ErrCannotAttempt) Error() string {
	return fmt.Sprintf("tidak bisa mulai attempt: %s", e.Reason)
}

/* =========================================================
   SERVICE
========================================================= */

type QuizAttemptService struct {
	DB *gorm.DB
}

func NewQuizAttemptService(db *gorm.DB) *QuizAttemptService {
	return &QuizAttemptService{DB: db}
}

/* =========================================================
   START
========================================================= */

// StartAttempt memulai attempt baru (atau mengembalikan attempt in_progress
// yang sudah ada untuk di-resume: resumed=true).
//
// Gate sepenuhnya lewat quizstatus.CanAttempt dengan "now" yang dioper
// dari boundary terluar; service tidak baca jam lain.
func (s *QuizAttemptService) StartAttempt(
	ctx context.Context,
	centerID, studentID, quizID uuid.UUID,
	now time.Time,
) (attempt *qmodel.QuizAttemptModel, resumed bool, err error) {

	// 1) Load quiz (tenant-safe, published saja)
	var quiz qmodel.QuizModel
	if err := s.DB.WithContext(ctx).
		Where("quiz_id = ? AND quiz_center_id = ? AND quiz_is_published = TRUE", quizID, centerID).
		First(&quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrQuizNotFound
		}
		return nil, false, err
	}

	// 2) Load semua attempt student ini di quiz ini
	var attempts []qmodel.QuizAttemptModel
	if err := s.DB.WithContext(ctx).
		Where("quiz_attempt_quiz_id = ? AND quiz_attempt_student_id = ?", quizID, studentID).
		Find(&attempts).Error; err != nil {
		return nil, false, err
	}

	// 3) Gate lewat core murni
	ca := quizstatus.CanAttempt(quiz, attempts, now)
	if !ca.CanAttempt {
		if ca.InProgress != nil {
			// Resume, bukan mulai baru
			log.Printf("[QuizAttemptService] resume attempt. attempt_id=%s student_id=%s", ca.InProgress.QuizAttemptID, studentID)
			return ca.InProgress, true, nil
		}
		return nil, false, &ErrCannotAttempt{Reason: ca.Reason}
	}

	// 4) Buat attempt baru
	a := &qmodel.QuizAttemptModel{
		QuizAttemptCenterID:  centerID,
		QuizAttemptQuizID:    quizID,
		QuizAttemptStudentID: studentID,
		QuizAttemptStatus:    qmodel.QuizAttemptInProgress,
		QuizAttemptStartedAt: now.UTC(),
	}
	if err := s.DB.WithContext(ctx).Create(a).Error; err != nil {
		// Partial unique index (1 in_progress per student×quiz): race double-click →
		// ambil attempt yang sudah ada dan perlakukan sebagai resume.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			var existing qmodel.QuizAttemptModel
			if ferr := s.DB.WithContext(ctx).
				Where("quiz_attempt_quiz_id = ? AND quiz_attempt_student_id = ? AND quiz_attempt_status = ?",
					quizID, studentID, qmodel.QuizAttemptInProgress).
				First(&existing).Error; ferr == nil {
				return &existing, true, nil
			}
		}
		return nil, false, err
	}

	log.Printf("[QuizAttemptService] attempt started. attempt_id=%s quiz_id=%s student_id=%s", a.QuizAttemptID, quizID, studentID)
	return a, false, nil
}

/* =========================================================
   SUBMIT
========================================================= */

// SubmitAttempt menutup attempt in_progress:
// - simpan jawaban (JSONB)
// - kalau lewat batas waktu quiz → status timeout
// - selain itu → completed
// Score TIDAK diisi di sini; penilaian adalah langkah terpisah (grading).
func (s *QuizAttemptService) SubmitAttempt(
	ctx context.Context,
	centerID, studentID, attemptID uuid.UUID,
	answers datatypes.JSON,
	now time.Time,
) (*qmodel.QuizAttemptModel, error) {

	attempt, quiz, err := s.loadAttemptWithQuiz(ctx, centerID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.QuizAttemptStudentID != studentID {
		return nil, ErrNotAttemptOwner
	}
	if attempt.QuizAttemptStatus != qmodel.QuizAttemptInProgress {
		return nil, ErrAttemptNotInProgress
	}

	finishedAt := now.UTC()
	attempt.QuizAttemptAnswers = answers
	attempt.QuizAttemptFinishedAt = &finishedAt

	if deadline, ok := attemptDeadline(attempt, quiz); ok && now.After(deadline) {
		attempt.QuizAttemptStatus = qmodel.QuizAttemptTimeout
		log.Printf("[QuizAttemptService] submit lewat deadline → timeout. attempt_id=%s deadline=%s", attemptID, deadline)
	} else {
		attempt.QuizAttemptStatus = qmodel.QuizAttemptCompleted
	}

	if err := s.DB.WithContext(ctx).Save(attempt).Error; err != nil {
		return nil, err
	}

	log.Printf("[QuizAttemptService] attempt submitted. attempt_id=%s status=%s", attemptID, attempt.QuizAttemptStatus)
	return attempt, nil
}

/* =========================================================
   GRADE (teacher)
========================================================= */

// GradeAttempt mengisi score attempt yang sudah selesai.
// Sampai ini dipanggil, attempt completed dianggap "belum dinilai" (score null).
func (s *QuizAttemptService) GradeAttempt(
	ctx context.Context,
	centerID, attemptID uuid.UUID,
	score float64,
) (*qmodel.QuizAttemptModel, error) {

	attempt, quiz, err := s.loadAttemptWithQuiz(ctx, centerID, attemptID)
	if err != nil {
		return nil, err
	}
	if !attempt.QuizAttemptStatus.Finished() {
		return nil, ErrAttemptNotFinished
	}
	if score > quiz.QuizMaxScore {
		return nil, ErrScoreExceedsMax
	}

	attempt.QuizAttemptScore = &score
	if err := s.DB.WithContext(ctx).Save(attempt).Error; err != nil {
		return nil, err
	}

	log.Printf("[QuizAttemptService] attempt graded. attempt_id=%s score=%.3f", attemptID, score)
	return attempt, nil
}

/* =========================================================
   LIST (student melihat attempt-nya sendiri)
========================================================= */

func (s *QuizAttemptService) ListStudentAttempts(
	ctx context.Context,
	centerID, studentID, quizID uuid.UUID,
) ([]qmodel.QuizAttemptModel, error) {

	var attempts []qmodel.QuizAttemptModel
	err := s.DB.WithContext(ctx).
		Where("quiz_attempt_center_id = ? AND quiz_attempt_student_id = ? AND quiz_attempt_quiz_id = ?",
			centerID, studentID, quizID).
		Order("quiz_attempt_started_at DESC").
		Find(&attempts).Error
	return attempts, err
}

/* =========================================================
   TIMEOUT SWEEP (dipanggil scheduler)
========================================================= */

// TimeoutOverdue menandai timeout semua attempt in_progress yang sudah
// melewati started_at + quiz_time_limit_min. Quiz tanpa batas waktu dilewati.
// Return jumlah attempt yang di-timeout.
func (s *QuizAttemptService) TimeoutOverdue(ctx context.Context, now time.Time) (int, error) {
	res := s.DB.WithContext(ctx).
		Model(&qmodel.QuizAttemptModel{}).
		Where("quiz_attempt_status = ?", qmodel.QuizAttemptInProgress).
		Where(`quiz_attempt_quiz_id IN (
			SELECT quiz_id FROM quizzes
			WHERE quiz_time_limit_min IS NOT NULL AND quiz_deleted_at IS NULL
		)`).
		Where(`quiz_attempt_started_at + make_interval(mins => (
			SELECT q.quiz_time_limit_min FROM quizzes q WHERE q.quiz_id = quiz_attempt_quiz_id
		)) < ?`, now.UTC()).
		Updates(map[string]interface{}{
			"quiz_attempt_status":      qmodel.QuizAttemptTimeout,
			"quiz_attempt_finished_at": now.UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

/* =========================================================
   INTERNAL
========================================================= */

func (s *QuizAttemptService) loadAttemptWithQuiz(
	ctx context.Context,
	centerID, attemptID uuid.UUID,
) (*qmodel.QuizAttemptModel, *qmodel.QuizModel, error) {

	var attempt qmodel.QuizAttemptModel
	if err := s.DB.WithContext(ctx).
		Where("quiz_attempt_id = ? AND quiz_attempt_center_id = ?", attemptID, centerID).
		First(&attempt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrAttemptNotFound
		}
		return nil, nil, err
	}

	var quiz qmodel.QuizModel
	if err := s.DB.WithContext(ctx).
		Where("quiz_id = ?", attempt.QuizAttemptQuizID).
		First(&quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrQuizNotFound
		}
		return nil, nil, err
	}

	return &attempt, &quiz, nil
}

// attemptDeadline: batas waktu absolut attempt (kalau quiz punya time limit).
func attemptDeadline(a *qmodel.QuizAttemptModel, q *qmodel.QuizModel) (time.Time, bool) {
	if q.QuizTimeLimitMin == nil {
		return time.Time{}, false
	}
	return a.QuizAttemptStartedAt.Add(time.Duration(*q.QuizTimeLimitMin) * time.Minute), true
}
