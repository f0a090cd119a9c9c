package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "bimbelku_backend/internals/features/lms/quizzes/model"
)

func TestUpdateFieldTriState(t *testing.T) {
	var req UpdateQuizRequest

	// absent / null / value dalam satu payload
	payload := []byte(`{
		"quiz_title": "Tryout Fisika",
		"quiz_passing_score": null,
		"quiz_time_limit_min": 90
	}`)
	require.NoError(t, json.Unmarshal(payload, &req))

	assert.True(t, req.QuizTitle.ShouldUpdate())
	assert.False(t, req.QuizTitle.IsNull())
	assert.Equal(t, "Tryout Fisika", req.QuizTitle.Val())

	assert.True(t, req.QuizPassingScore.ShouldUpdate())
	assert.True(t, req.QuizPassingScore.IsNull())

	assert.True(t, req.QuizTimeLimitMin.ShouldUpdate())
	assert.Equal(t, 90, req.QuizTimeLimitMin.Val())

	// field yang tidak dikirim tidak boleh dianggap update
	assert.False(t, req.QuizMaxScore.ShouldUpdate())
	assert.False(t, req.QuizIsPublished.ShouldUpdate())
}

func TestUpdateQuizRequestApply(t *testing.T) {
	passing := 60.0
	m := model.QuizModel{
		QuizID:            uuid.New(),
		QuizTitle:         "Lama",
		QuizMaxAttempts:   1,
		QuizPassingScore:  &passing,
		QuizMaxScore:      100,
		QuizAvailableFrom: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		QuizAvailableTo:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	var req UpdateQuizRequest
	payload := []byte(`{
		"quiz_title": "  Baru  ",
		"quiz_passing_score": null,
		"quiz_max_attempts": 3
	}`)
	require.NoError(t, json.Unmarshal(payload, &req))

	updates := req.Apply(&m)

	assert.Equal(t, "Baru", m.QuizTitle) // trimmed
	assert.Nil(t, m.QuizPassingScore)    // null → clear threshold
	assert.Equal(t, 3, m.QuizMaxAttempts)

	assert.Equal(t, "Baru", updates["quiz_title"])
	assert.Nil(t, updates["quiz_passing_score"])
	assert.Equal(t, 3, updates["quiz_max_attempts"])
	assert.NotContains(t, updates, "quiz_max_score")
}

func TestValidateQuizInvariantsAfterApply(t *testing.T) {
	passing := 60.0
	limit := 30
	base := model.QuizModel{
		QuizTitle:         "Tryout",
		QuizMaxAttempts:   2,
		QuizMaxScore:      100,
		QuizTimeLimitMin:  &limit,
		QuizPassingScore:  &passing,
		QuizAvailableFrom: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		QuizAvailableTo:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	// PATCH yang valid tetap lolos
	m := base
	var ok UpdateQuizRequest
	require.NoError(t, json.Unmarshal([]byte(`{"quiz_max_attempts": 5, "quiz_passing_score": null}`), &ok))
	ok.Apply(&m)
	assert.NoError(t, ValidateQuizInvariants(&m))

	// Nilai di luar rentang via PATCH tri-state harus ditolak sebelum disimpan
	cases := []struct {
		name    string
		payload string
	}{
		{"max_attempts nol", `{"quiz_max_attempts": 0}`},
		{"passing_score negatif", `{"quiz_passing_score": -5}`},
		{"time_limit negatif", `{"quiz_time_limit_min": -1}`},
		{"max_score nol", `{"quiz_max_score": 0}`},
		{"jendela terbalik", `{"quiz_available_to": "2026-02-01T00:00:00Z"}`},
		{"kombinasi", `{"quiz_max_attempts": 0, "quiz_passing_score": -5, "quiz_time_limit_min": -1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := base
			var req UpdateQuizRequest
			require.NoError(t, json.Unmarshal([]byte(tc.payload), &req))
			req.Apply(&m)
			assert.Error(t, ValidateQuizInvariants(&m))
		})
	}
}

func TestCreateQuizRequestToModelDefaults(t *testing.T) {
	centerID := uuid.New()
	from := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	to := from.Add(7 * 24 * time.Hour)

	req := CreateQuizRequest{
		QuizTitle:         "  Tryout Kimia ",
		QuizAvailableFrom: from,
		QuizAvailableTo:   to,
	}
	m := req.ToModel(centerID)

	assert.Equal(t, centerID, m.QuizCenterID)
	assert.Equal(t, "Tryout Kimia", m.QuizTitle)
	assert.False(t, m.QuizIsPublished)
	assert.Equal(t, 1, m.QuizMaxAttempts)       // default
	assert.Equal(t, 100.0, m.QuizMaxScore)      // default
	assert.Nil(t, m.QuizTimeLimitMin)           // untimed
	assert.Nil(t, m.QuizPassingScore)           // no threshold
	assert.Equal(t, from, m.QuizAvailableFrom)
	assert.Equal(t, to, m.QuizAvailableTo)
}

func TestFromQuizAttemptModelPercentage(t *testing.T) {
	score := 75.0
	m := model.QuizAttemptModel{
		QuizAttemptID:     uuid.New(),
		QuizAttemptStatus: model.QuizAttemptCompleted,
		QuizAttemptScore:  &score,
	}

	resp := FromQuizAttemptModel(&m, 100)
	require.NotNil(t, resp)
	assert.Equal(t, 75.0, resp.QuizAttemptPercentage)

	// max_score 0 → persen 0, jangan NaN
	resp = FromQuizAttemptModel(&m, 0)
	require.NotNil(t, resp)
	assert.Equal(t, 0.0, resp.QuizAttemptPercentage)

	// belum dinilai → persen 0, score tetap null di response
	m.QuizAttemptScore = nil
	resp = FromQuizAttemptModel(&m, 100)
	require.NotNil(t, resp)
	assert.Nil(t, resp.QuizAttemptScore)
	assert.Equal(t, 0.0, resp.QuizAttemptPercentage)

	// nil model → nil response (bukan panic)
	assert.Nil(t, FromQuizAttemptModel(nil, 100))
}
