// file: internals/features/lms/quizzes/service/quiz_status_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "bimbelku_backend/internals/features/lms/quizzes/dto"
	qmodel "bimbelku_backend/internals/features/lms/quizzes/model"
	"bimbelku_backend/internals/features/lms/quizzes/quizstatus"
)

/* =========================================================
   SERVICE
   Boundary orkestrasi: fetch → core murni → response.
   Ini satu-satunya layer yang boleh membawa wall-clock "now"
   masuk ke perhitungan status (dan "now" itu pun dari caller).
========================================================= */

type QuizStatusService struct {
	DB *gorm.DB
}

func NewQuizStatusService(db *gorm.DB) *QuizStatusService {
	return &QuizStatusService{DB: db}
}

// StudentOverview menghitung baris overview untuk semua quiz published
// yang scope-nya cocok (center + optional class), untuk satu student.
//
// Pola fetch: 1 query quiz + 1 query attempt batched (IN quiz_ids),
// lalu grouping di memori: jangan N+1 per quiz.
// Seluruh derivasi memakai "now" yang sama supaya konsisten antar row.
func (s *QuizStatusService) StudentOverview(
	ctx context.Context,
	centerID, studentID uuid.UUID,
	classID *uuid.UUID,
	now time.Time,
) ([]dto.StudentQuizOverviewResponse, error) {

	// 1) Quizzes dalam scope
	q := s.DB.WithContext(ctx).
		Where("quiz_center_id = ? AND quiz_is_published = TRUE", centerID)
	if classID != nil && *classID != uuid.Nil {
		q = q.Where("quiz_class_id = ?", *classID)
	}

	var quizzes []qmodel.QuizModel
	if err := q.Order("quiz_available_from ASC").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	if len(quizzes) == 0 {
		return []dto.StudentQuizOverviewResponse{}, nil
	}

	// 2) Semua attempt student utk quiz-quiz itu, satu query
	quizIDs := make([]uuid.UUID, 0, len(quizzes))
	for i := range quizzes {
		quizIDs = append(quizIDs, quizzes[i].QuizID)
	}

	var attempts []qmodel.QuizAttemptModel
	if err := s.DB.WithContext(ctx).
		Where("quiz_attempt_student_id = ? AND quiz_attempt_quiz_id IN ?", studentID, quizIDs).
		Find(&attempts).Error; err != nil {
		return nil, err
	}

	byQuiz := make(map[uuid.UUID][]qmodel.QuizAttemptModel, len(quizzes))
	for i := range attempts {
		id := attempts[i].QuizAttemptQuizID
		byQuiz[id] = append(byQuiz[id], attempts[i])
	}

	// 3) Derivasi per quiz lewat core murni
	out := make([]dto.StudentQuizOverviewResponse, 0, len(quizzes))
	for i := range quizzes {
		out = append(out, buildOverviewRow(&quizzes[i], byQuiz[quizzes[i].QuizID], now))
	}
	return out, nil
}

func buildOverviewRow(
	quiz *qmodel.QuizModel,
	attempts []qmodel.QuizAttemptModel,
	now time.Time,
) dto.StudentQuizOverviewResponse {

	avail := quizstatus.EvaluateWindow(quiz.QuizAvailableFrom, quiz.QuizAvailableTo, now)
	status := quizstatus.ResolveStatus(quizstatus.LatestAttempt(attempts), *quiz)
	ca := quizstatus.CanAttempt(*quiz, attempts, now)

	att := dto.AttemptabilityResponse{
		CanAttempt: ca.CanAttempt,
		Reason:     ca.Reason,
	}
	if ca.InProgress != nil {
		id := ca.InProgress.QuizAttemptID
		att.InProgressAttemptID = &id
	}

	return dto.StudentQuizOverviewResponse{
		Quiz:              *dto.FromQuizModel(quiz),
		Availability:      avail,
		Status:            status,
		Display:           quizstatus.Display(status, avail.Status),
		Attemptability:    att,
		RemainingAttempts: quizstatus.RemainingAttempts(*quiz, attempts),
		BestAttempt:       dto.FromQuizAttemptModel(quizstatus.BestAttempt(attempts), quiz.QuizMaxScore),
	}
}
