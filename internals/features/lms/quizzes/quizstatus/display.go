package quizstatus

// DisplayConfig: label/icon/warna untuk satu status kanonik.
// Murni presentasi: jangan pernah dipakai untuk filter atau logika;
// sumber kebenaran tetap StudentQuizStatus.
type DisplayConfig struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Satu-satunya tabel lookup status → tampilan.
var displayConfigs = map[StudentQuizStatus]DisplayConfig{
	StatusNotStarted: {Label: "Available", Icon: "play-circle", Color: "#2563eb"},
	StatusInProgress: {Label: "In Progress", Icon: "clock", Color: "#d97706"},
	StatusCompleted:  {Label: "Completed", Icon: "check-circle", Color: "#16a34a"},
	StatusPassed:     {Label: "Passed", Icon: "award", Color: "#16a34a"},
	StatusFailed:     {Label: "Failed", Icon: "x-circle", Color: "#dc2626"},
	StatusTimedOut:   {Label: "Timed Out", Icon: "timer-off", Color: "#dc2626"},
}

// Display mengembalikan config tampilan untuk satu status, dengan override
// khusus not_started berdasarkan jendela:
//   - not_started + upcoming → "Upcoming" (belum bisa dikerjakan)
//   - not_started + ended    → "Missed"   (jendela lewat tanpa attempt)
//
// Status kanonik TIDAK berubah: hanya labelnya.
func Display(status StudentQuizStatus, window WindowStatus) DisplayConfig {
	cfg, ok := displayConfigs[status]
	if !ok {
		cfg = displayConfigs[StatusNotStarted]
	}

	if status == StatusNotStarted {
		switch window {
		case WindowUpcoming:
			cfg.Label = "Upcoming"
			cfg.Icon = "calendar"
			cfg.Color = "#6b7280"
		case WindowEnded:
			cfg.Label = "Missed"
			cfg.Icon = "calendar-x"
			cfg.Color = "#9ca3af"
		}
	}
	return cfg
}
