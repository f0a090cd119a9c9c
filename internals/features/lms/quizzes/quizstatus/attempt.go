package quizstatus

import (
	"time"

	model "bimbelku_backend/internals/features/lms/quizzes/model"
)

// Alasan kenapa attempt baru tidak boleh dimulai (stabil untuk FE & test).
const (
	ReasonNotOpenYet         = "quiz belum dibuka"
	ReasonWindowEnded        = "quiz sudah berakhir"
	ReasonMaxAttemptsReached = "batas maksimum attempt sudah tercapai"
	ReasonAttemptInProgress  = "masih ada attempt yang berjalan"
)

type Attemptability struct {
	CanAttempt bool   `json:"can_attempt"`
	Reason     string `json:"reason,omitempty"`
	// Attempt in_progress milik student (kalau ada), sebagai sinyal tersendiri:
	// resume adalah aksi yang berbeda dengan mulai attempt baru.
	InProgress *model.QuizAttemptModel `json:"in_progress_attempt,omitempty"`
}

// CanAttempt menentukan apakah student boleh MULAI attempt baru sekarang.
// Kondisi dievaluasi berurutan, yang gagal duluan menentukan reason:
//  1. jendela harus active (bukan upcoming/ended)
//  2. jumlah attempt selesai (completed+timeout) < max_attempts
//  3. tidak ada attempt in_progress: kalau ada, dikembalikan sebagai
//     referensi resume, bukan izin mulai baru.
func CanAttempt(quiz model.QuizModel, attempts []model.QuizAttemptModel, now time.Time) Attemptability {
	switch EvaluateWindow(quiz.QuizAvailableFrom, quiz.QuizAvailableTo, now).Status {
	case WindowUpcoming:
		return Attemptability{CanAttempt: false, Reason: ReasonNotOpenYet}
	case WindowEnded:
		return Attemptability{CanAttempt: false, Reason: ReasonWindowEnded}
	}

	if countFinished(attempts) >= quiz.QuizMaxAttempts {
		return Attemptability{CanAttempt: false, Reason: ReasonMaxAttemptsReached}
	}

	for i := range attempts {
		if attempts[i].QuizAttemptStatus == model.QuizAttemptInProgress {
			return Attemptability{
				CanAttempt: false,
				Reason:     ReasonAttemptInProgress,
				InProgress: &attempts[i],
			}
		}
	}

	return Attemptability{CanAttempt: true}
}

// RemainingAttempts: sisa jatah attempt. Attempt in_progress belum
// menghabiskan jatah sampai dia selesai.
func RemainingAttempts(quiz model.QuizModel, attempts []model.QuizAttemptModel) int {
	remaining := quiz.QuizMaxAttempts - countFinished(attempts)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func countFinished(attempts []model.QuizAttemptModel) int {
	n := 0
	for i := range attempts {
		if attempts[i].QuizAttemptStatus.Finished() {
			n++
		}
	}
	return n
}

// BestAttempt: attempt selesai (completed/timeout) dengan score tertinggi.
// Score null dihitung 0 hanya untuk perbandingan: attempt yang terpilih
// tetap membawa score aslinya (bisa null kalau semua belum dinilai).
// Tie-break: yang duluan ketemu menang (reduce stabil, strict >).
func BestAttempt(attempts []model.QuizAttemptModel) *model.QuizAttemptModel {
	var best *model.QuizAttemptModel
	for i := range attempts {
		if !attempts[i].QuizAttemptStatus.Finished() {
			continue
		}
		if best == nil || scoreOrZero(attempts[i].QuizAttemptScore) > scoreOrZero(best.QuizAttemptScore) {
			best = &attempts[i]
		}
	}
	return best
}

// Percentage: skor → persen, guard max_score ≤ 0 (jangan pernah NaN/panic).
func Percentage(score, maxScore float64) float64 {
	if maxScore <= 0 {
		return 0
	}
	return (score / maxScore) * 100
}

func scoreOrZero(s *float64) float64 {
	if s == nil {
		return 0
	}
	return *s
}
