package quizstatus

import (
	"testing"
	"time"

	"github.com/google/uuid"

	model "bimbelku_backend/internals/features/lms/quizzes/model"
)

func f64(v float64) *float64 { return &v }

func makeQuiz(passing *float64, maxScore float64) model.QuizModel {
	return model.QuizModel{
		QuizID:            uuid.New(),
		QuizCenterID:      uuid.New(),
		QuizTitle:         "Tryout Matematika",
		QuizAvailableFrom: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		QuizAvailableTo:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		QuizMaxAttempts:   3,
		QuizPassingScore:  passing,
		QuizMaxScore:      maxScore,
	}
}

func makeAttempt(status model.QuizAttemptStatus, score *float64, startedAt time.Time) model.QuizAttemptModel {
	return model.QuizAttemptModel{
		QuizAttemptID:        uuid.New(),
		QuizAttemptStatus:    status,
		QuizAttemptScore:     score,
		QuizAttemptStartedAt: startedAt,
	}
}

func TestResolveStatus(t *testing.T) {
	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		latest  *model.QuizAttemptModel
		passing *float64
		want    StudentQuizStatus
	}{
		{name: "no attempt", latest: nil, passing: f64(60), want: StatusNotStarted},
		{name: "no attempt no threshold", latest: nil, passing: nil, want: StatusNotStarted},
		{
			name:    "in progress",
			latest:  ptr(makeAttempt(model.QuizAttemptInProgress, nil, base)),
			passing: f64(60),
			want:    StatusInProgress,
		},
		{
			name:    "timeout",
			latest:  ptr(makeAttempt(model.QuizAttemptTimeout, f64(90), base)),
			passing: f64(60),
			want:    StatusTimedOut,
		},
		{
			name:    "completed at threshold is passed",
			latest:  ptr(makeAttempt(model.QuizAttemptCompleted, f64(60), base)),
			passing: f64(60),
			want:    StatusPassed,
		},
		{
			name:    "completed just under threshold",
			latest:  ptr(makeAttempt(model.QuizAttemptCompleted, f64(59), base)),
			passing: f64(60),
			want:    StatusFailed,
		},
		{
			name:    "completed above threshold",
			latest:  ptr(makeAttempt(model.QuizAttemptCompleted, f64(87.5), base)),
			passing: f64(60),
			want:    StatusPassed,
		},
		{
			name:    "completed ungraded with threshold",
			latest:  ptr(makeAttempt(model.QuizAttemptCompleted, nil, base)),
			passing: f64(60),
			want:    StatusFailed,
		},
		{
			name:    "completed without threshold",
			latest:  ptr(makeAttempt(model.QuizAttemptCompleted, f64(10), base)),
			passing: nil,
			want:    StatusCompleted,
		},
		{
			name:    "completed without threshold ungraded",
			latest:  ptr(makeAttempt(model.QuizAttemptCompleted, nil, base)),
			passing: nil,
			want:    StatusCompleted,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			quiz := makeQuiz(tc.passing, 100)
			if got := ResolveStatus(tc.latest, quiz); got != tc.want {
				t.Fatalf("ResolveStatus() = %s, want %s", got, tc.want)
			}
		})
	}
}

// Attempt terakhir selalu menang, walau ada attempt lulus sebelumnya.
func TestResolveStatusLatestWins(t *testing.T) {
	quiz := makeQuiz(f64(60), 100)
	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	attempts := []model.QuizAttemptModel{
		makeAttempt(model.QuizAttemptCompleted, f64(95), base),                // lulus, tapi lama
		makeAttempt(model.QuizAttemptCompleted, f64(40), base.Add(time.Hour)), // terbaru: gagal
	}
	if got := ResolveStatus(LatestAttempt(attempts), quiz); got != StatusFailed {
		t.Fatalf("status = %s, want failed (latest attempt wins)", got)
	}

	// in_progress terbaru menang atas semua attempt selesai sebelumnya
	attempts = append(attempts, makeAttempt(model.QuizAttemptInProgress, nil, base.Add(2*time.Hour)))
	if got := ResolveStatus(LatestAttempt(attempts), quiz); got != StatusInProgress {
		t.Fatalf("status = %s, want in_progress", got)
	}
}

func TestLatestAttempt(t *testing.T) {
	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	if got := LatestAttempt(nil); got != nil {
		t.Fatalf("LatestAttempt(nil) = %+v, want nil", got)
	}

	oldest := makeAttempt(model.QuizAttemptCompleted, f64(10), base)
	middle := makeAttempt(model.QuizAttemptCompleted, f64(99), base.Add(time.Hour))
	newest := makeAttempt(model.QuizAttemptTimeout, nil, base.Add(2*time.Hour))

	got := LatestAttempt([]model.QuizAttemptModel{middle, newest, oldest})
	if got == nil || got.QuizAttemptID != newest.QuizAttemptID {
		t.Fatal("expected the newest attempt by started_at")
	}

	// started_at sama persis: yang duluan di slice menang (stabil)
	twinA := makeAttempt(model.QuizAttemptCompleted, f64(1), base)
	twinB := makeAttempt(model.QuizAttemptCompleted, f64(2), base)
	got = LatestAttempt([]model.QuizAttemptModel{twinA, twinB})
	if got == nil || got.QuizAttemptID != twinA.QuizAttemptID {
		t.Fatal("tie on started_at must keep the first attempt encountered")
	}
}

func TestDisplayOverrides(t *testing.T) {
	tests := []struct {
		name      string
		status    StudentQuizStatus
		window    WindowStatus
		wantLabel string
	}{
		{name: "not started active", status: StatusNotStarted, window: WindowActive, wantLabel: "Available"},
		{name: "not started upcoming", status: StatusNotStarted, window: WindowUpcoming, wantLabel: "Upcoming"},
		{name: "not started ended", status: StatusNotStarted, window: WindowEnded, wantLabel: "Missed"},
		{name: "passed ignores window", status: StatusPassed, window: WindowEnded, wantLabel: "Passed"},
		{name: "in progress ignores window", status: StatusInProgress, window: WindowUpcoming, wantLabel: "In Progress"},
		{name: "timed out", status: StatusTimedOut, window: WindowActive, wantLabel: "Timed Out"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Display(tc.status, tc.window); got.Label != tc.wantLabel {
				t.Fatalf("label = %q, want %q", got.Label, tc.wantLabel)
			}
		})
	}
}

func ptr(a model.QuizAttemptModel) *model.QuizAttemptModel { return &a }
