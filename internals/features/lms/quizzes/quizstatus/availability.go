// Package quizstatus berisi logika turunan murni untuk status quiz & attempt:
// jendela ketersediaan, status kanonik student, attemptability, dan best attempt.
// Semua fungsi di package ini bebas side-effect dan tidak baca jam sendiri;
// "now" selalu dioper eksplisit oleh pemanggil supaya deterministik & testable.
package quizstatus

import (
	"fmt"
	"time"
)

// WindowStatus posisi "now" relatif terhadap jendela [available_from, available_to].
type WindowStatus string

const (
	WindowUpcoming WindowStatus = "upcoming"
	WindowActive   WindowStatus = "active"
	WindowEnded    WindowStatus = "ended"
)

type AvailabilityResult struct {
	Status WindowStatus `json:"status"`
	// Durasi kasar sampai jendela buka (upcoming) atau tutup (active),
	// format "2h 15m" / "3d". Kosong saat ended.
	TimeRemaining string `json:"time_remaining,omitempty"`
}

// EvaluateWindow mengklasifikasikan quiz terhadap jendela attempt-nya.
// Batas inklusif dua sisi: tepat di available_from dan tepat di available_to
// quiz masih dihitung active.
//
// Jendela terbalik (available_from > available_to) dianggap ended:
// tidak ada instant yang bisa berada di dalamnya. Lapisan konfigurasi
// (DTO create/update) menolak jendela seperti ini sejak awal.
func EvaluateWindow(availableFrom, availableTo, now time.Time) AvailabilityResult {
	if availableFrom.After(availableTo) {
		return AvailabilityResult{Status: WindowEnded}
	}

	if now.Before(availableFrom) {
		return AvailabilityResult{
			Status:        WindowUpcoming,
			TimeRemaining: FormatRemaining(availableFrom.Sub(now)),
		}
	}
	if now.After(availableTo) {
		return AvailabilityResult{Status: WindowEnded}
	}
	return AvailabilityResult{
		Status:        WindowActive,
		TimeRemaining: FormatRemaining(availableTo.Sub(now)),
	}
}

// FormatRemaining memformat durasi jadi string kasar yang enak dibaca:
// ≥ 1 hari → "3d", ≥ 1 jam → "2h 15m", sisanya → "45m". Durasi negatif → "".
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return ""
	}
	if d >= 24*time.Hour {
		return fmt.Sprintf("%dd", int(d.Hours())/24)
	}
	if d >= time.Hour {
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		return fmt.Sprintf("%dh %dm", h, m)
	}
	m := int(d.Minutes())
	if m < 1 {
		m = 1 // jangan tampilkan "0m" selama jendela masih hidup
	}
	return fmt.Sprintf("%dm", m)
}
