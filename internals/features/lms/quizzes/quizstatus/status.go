package quizstatus

import (
	model "bimbelku_backend/internals/features/lms/quizzes/model"
)

// StudentQuizStatus: satu status kanonik hubungan student ↔ quiz,
// diturunkan dari attempt TERAKHIR saja. Label tampilan (lihat display.go)
// adalah urusan terpisah: filter & logika lain key off status ini.
type StudentQuizStatus string

const (
	StatusNotStarted StudentQuizStatus = "not_started"
	StatusInProgress StudentQuizStatus = "in_progress"
	StatusCompleted  StudentQuizStatus = "completed"
	StatusPassed     StudentQuizStatus = "passed"
	StatusFailed     StudentQuizStatus = "failed"
	StatusTimedOut   StudentQuizStatus = "timed_out"
)

// LatestAttempt: attempt dengan started_at paling baru.
// Satu-satunya tempat urutan "terakhir" dihitung: semua pemanggil wajib
// lewat sini, jangan sort ulang sendiri-sendiri.
// Tie-break pada started_at sama: yang duluan ketemu di iterasi menang.
func LatestAttempt(attempts []model.QuizAttemptModel) *model.QuizAttemptModel {
	var latest *model.QuizAttemptModel
	for i := range attempts {
		if latest == nil || attempts[i].QuizAttemptStartedAt.After(latest.QuizAttemptStartedAt) {
			latest = &attempts[i]
		}
	}
	return latest
}

// ResolveStatus menurunkan status kanonik dari attempt terakhir.
// Urutan precedence (first match wins):
//  1. belum ada attempt            → not_started
//  2. attempt terakhir in_progress → in_progress
//  3. attempt terakhir timeout     → timed_out
//  4. attempt terakhir completed   → passed/failed terhadap passing_score
//     (inklusif ≥), atau completed bila quiz tanpa ambang lulus.
//
// Hanya attempt terakhir yang dilihat: student yang pernah lulus lalu
// attempt terbarunya gagal tetap failed.
func ResolveStatus(latest *model.QuizAttemptModel, quiz model.QuizModel) StudentQuizStatus {
	if latest == nil {
		return StatusNotStarted
	}

	switch latest.QuizAttemptStatus {
	case model.QuizAttemptInProgress:
		return StatusInProgress
	case model.QuizAttemptTimeout:
		return StatusTimedOut
	case model.QuizAttemptCompleted:
		if quiz.QuizPassingScore == nil {
			return StatusCompleted
		}
		// score null = belum dinilai → belum bisa dianggap lulus
		if latest.QuizAttemptScore != nil && *latest.QuizAttemptScore >= *quiz.QuizPassingScore {
			return StatusPassed
		}
		return StatusFailed
	}

	// Nilai mentah lain dari upstream tidak diinterpretasi
	return StatusNotStarted
}
