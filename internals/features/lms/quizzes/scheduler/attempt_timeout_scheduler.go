package scheduler

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	service "bimbelku_backend/internals/features/lms/quizzes/service"
)

// StartAttemptTimeoutScheduler menjalankan sweep periodik:
// attempt in_progress yang lewat batas waktu quiz → timeout.
// Menangkap attempt milik student yang menutup tab tanpa submit.
func StartAttemptTimeoutScheduler(db *gorm.DB) {
	go func() {
		// Interval dari env (default: 1 menit)
		intervalMin := 1
		if val := os.Getenv("ATTEMPT_TIMEOUT_SWEEP_MINUTES"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				intervalMin = parsed
			}
		}

		svc := service.NewQuizAttemptService(db)

		for {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			n, err := svc.TimeoutOverdue(ctx, time.Now())
			cancel()

			if err != nil {
				log.Printf("[SWEEP ERROR] Gagal timeout attempt overdue: %v", err)
			} else if n > 0 {
				log.Printf("[SWEEP] %d attempt di-timeout (lewat batas waktu)", n)
			}

			time.Sleep(time.Duration(intervalMin) * time.Minute)
		}
	}()
}
