package quizstatus

import (
	"testing"
	"time"

	model "bimbelku_backend/internals/features/lms/quizzes/model"
)

func TestCanAttemptWindow(t *testing.T) {
	quiz := makeQuiz(f64(60), 100)

	tests := []struct {
		name       string
		now        time.Time
		wantReason string
	}{
		{name: "before window", now: quiz.QuizAvailableFrom.Add(-time.Hour), wantReason: ReasonNotOpenYet},
		{name: "after window", now: quiz.QuizAvailableTo.Add(time.Hour), wantReason: ReasonWindowEnded},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CanAttempt(quiz, nil, tc.now)
			if got.CanAttempt {
				t.Fatal("attempt must not be allowed outside the window")
			}
			if got.Reason != tc.wantReason {
				t.Fatalf("reason = %q, want %q", got.Reason, tc.wantReason)
			}
		})
	}

	// di dalam jendela, tanpa attempt: boleh
	got := CanAttempt(quiz, nil, quiz.QuizAvailableFrom.Add(time.Hour))
	if !got.CanAttempt || got.Reason != "" {
		t.Fatalf("fresh quiz in window: got %+v, want allowed", got)
	}
}

func TestCanAttemptExhaustion(t *testing.T) {
	quiz := makeQuiz(f64(60), 100)
	quiz.QuizMaxAttempts = 2
	now := quiz.QuizAvailableFrom.Add(time.Hour)

	finished := []model.QuizAttemptModel{
		makeAttempt(model.QuizAttemptCompleted, f64(50), now.Add(-2*time.Hour)),
		makeAttempt(model.QuizAttemptTimeout, nil, now.Add(-time.Hour)),
	}

	got := CanAttempt(quiz, finished, now)
	if got.CanAttempt {
		t.Fatal("two finished attempts with max_attempts=2 must block a new attempt")
	}
	if got.Reason != ReasonMaxAttemptsReached {
		t.Fatalf("reason = %q, want %q", got.Reason, ReasonMaxAttemptsReached)
	}
	if rem := RemainingAttempts(quiz, finished); rem != 0 {
		t.Fatalf("remaining = %d, want 0", rem)
	}
}

func TestCanAttemptInProgressSurfacesResume(t *testing.T) {
	quiz := makeQuiz(f64(60), 100)
	quiz.QuizMaxAttempts = 2
	now := quiz.QuizAvailableFrom.Add(time.Hour)

	inProgress := makeAttempt(model.QuizAttemptInProgress, nil, now.Add(-10*time.Minute))
	attempts := []model.QuizAttemptModel{
		makeAttempt(model.QuizAttemptCompleted, f64(40), now.Add(-2*time.Hour)),
		inProgress,
	}

	got := CanAttempt(quiz, attempts, now)
	if got.CanAttempt {
		t.Fatal("an in-progress attempt must block a fresh start")
	}
	if got.Reason != ReasonAttemptInProgress {
		t.Fatalf("reason = %q, want %q", got.Reason, ReasonAttemptInProgress)
	}
	if got.InProgress == nil || got.InProgress.QuizAttemptID != inProgress.QuizAttemptID {
		t.Fatal("the in-progress attempt must be surfaced for resume")
	}

	// in_progress belum menghabiskan jatah
	if rem := RemainingAttempts(quiz, attempts); rem != 1 {
		t.Fatalf("remaining = %d, want 1 (in-progress not counted)", rem)
	}
}

func TestBestAttempt(t *testing.T) {
	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	if got := BestAttempt(nil); got != nil {
		t.Fatalf("BestAttempt(nil) = %+v, want nil", got)
	}

	// hanya in_progress → tidak ada best
	onlyRunning := []model.QuizAttemptModel{makeAttempt(model.QuizAttemptInProgress, nil, base)}
	if got := BestAttempt(onlyRunning); got != nil {
		t.Fatal("in-progress attempts must never be the best attempt")
	}

	completed40 := makeAttempt(model.QuizAttemptCompleted, f64(40), base)
	timeout75 := makeAttempt(model.QuizAttemptTimeout, f64(75), base.Add(time.Hour))
	running := makeAttempt(model.QuizAttemptInProgress, nil, base.Add(2*time.Hour))

	got := BestAttempt([]model.QuizAttemptModel{completed40, timeout75, running})
	if got == nil || got.QuizAttemptID != timeout75.QuizAttemptID {
		t.Fatal("timeout attempt with score 75 must win")
	}
	if pct := Percentage(*got.QuizAttemptScore, 100); pct != 75 {
		t.Fatalf("percentage = %v, want 75", pct)
	}

	// semua selesai tapi belum dinilai: best tetap ada, score-nya tetap null
	ungradedA := makeAttempt(model.QuizAttemptCompleted, nil, base)
	ungradedB := makeAttempt(model.QuizAttemptCompleted, nil, base.Add(time.Hour))
	got = BestAttempt([]model.QuizAttemptModel{ungradedA, ungradedB})
	if got == nil {
		t.Fatal("finished ungraded attempts must still yield a best attempt")
	}
	if got.QuizAttemptScore != nil {
		t.Fatal("best attempt must keep its true (null) score")
	}
	if got.QuizAttemptID != ungradedA.QuizAttemptID {
		t.Fatal("tie on score must keep the first attempt encountered")
	}

	// tie-break eksplisit pada score sama: strict >, first wins
	tieA := makeAttempt(model.QuizAttemptCompleted, f64(80), base)
	tieB := makeAttempt(model.QuizAttemptCompleted, f64(80), base.Add(time.Hour))
	got = BestAttempt([]model.QuizAttemptModel{tieA, tieB})
	if got == nil || got.QuizAttemptID != tieA.QuizAttemptID {
		t.Fatal("equal scores: first attempt in iteration order wins")
	}
}

func TestPercentageGuards(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		maxScore float64
		want     float64
	}{
		{name: "normal", score: 75, maxScore: 100, want: 75},
		{name: "fractional max", score: 30, maxScore: 40, want: 75},
		{name: "zero max score", score: 50, maxScore: 0, want: 0},
		{name: "negative max score", score: 50, maxScore: -10, want: 0},
		{name: "zero score", score: 0, maxScore: 100, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Percentage(tc.score, tc.maxScore)
			if got != tc.want {
				t.Fatalf("Percentage(%v, %v) = %v, want %v", tc.score, tc.maxScore, got, tc.want)
			}
			if got != got { // NaN guard
				t.Fatal("percentage must never be NaN")
			}
		})
	}
}

// Jalankan pipeline lengkap dua kali pada snapshot input beku:
// hasil harus identik (idempoten, tanpa state tersembunyi).
func TestPipelineIdempotent(t *testing.T) {
	quiz := makeQuiz(f64(60), 100)
	quiz.QuizMaxAttempts = 3
	now := quiz.QuizAvailableFrom.Add(24 * time.Hour)

	attempts := []model.QuizAttemptModel{
		makeAttempt(model.QuizAttemptCompleted, f64(55), now.Add(-3*time.Hour)),
		makeAttempt(model.QuizAttemptTimeout, f64(70), now.Add(-2*time.Hour)),
	}

	type snapshot struct {
		avail     AvailabilityResult
		status    StudentQuizStatus
		can       bool
		reason    string
		remaining int
		bestScore float64
	}

	run := func() snapshot {
		avail := EvaluateWindow(quiz.QuizAvailableFrom, quiz.QuizAvailableTo, now)
		status := ResolveStatus(LatestAttempt(attempts), quiz)
		ca := CanAttempt(quiz, attempts, now)
		best := BestAttempt(attempts)
		return snapshot{
			avail:     avail,
			status:    status,
			can:       ca.CanAttempt,
			reason:    ca.Reason,
			remaining: RemainingAttempts(quiz, attempts),
			bestScore: scoreOrZero(best.QuizAttemptScore),
		}
	}

	first := run()
	second := run()
	if first != second {
		t.Fatalf("pipeline not idempotent: %+v vs %+v", first, second)
	}

	if first.status != StatusTimedOut {
		t.Fatalf("latest attempt is timeout, status = %s", first.status)
	}
	if !first.can {
		t.Fatalf("one finished slot left in active window, got reason %q", first.reason)
	}
	if first.remaining != 1 {
		t.Fatalf("remaining = %d, want 1", first.remaining)
	}
	if first.bestScore != 70 {
		t.Fatalf("best score = %v, want 70", first.bestScore)
	}
}
