package srs

import (
	"testing"
	"time"

	"github.com/savichev/memodeck/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// ── Review ──────────────────────────────────────────────────────────────────

func TestSM2Scheduler_Review_FreshCardGetsDefaultEaseFactor(t *testing.T) {
	s := NewSM2Scheduler()

	got := s.Review(models.Card{}, models.GradeGood, testNow)

	// 2.5 + (0.1 - (5-4)*(0.08+(5-4)*0.02)) = 2.5
	assert.InDelta(t, DefaultEaseFactor, got.EaseFactor, 1e-9)
	assert.Equal(t, 1, got.IntervalDays)
	assert.Equal(t, 1, got.Repetitions)
}

func TestSM2Scheduler_Review_FailedRecallResetsProgress(t *testing.T) {
	s := NewSM2Scheduler()
	card := models.Card{
		EaseFactor:   2.2,
		IntervalDays: 15,
		Repetitions:  4,
	}

	got := s.Review(card, models.GradeAgain, testNow)

	assert.Equal(t, 0, got.Repetitions)
	assert.Equal(t, 1, got.IntervalDays)
	// failed recall must not change the ease factor
	assert.InDelta(t, 2.2, got.EaseFactor, 1e-9)
	require.NotNil(t, got.DueAt)
	assert.Equal(t, testNow.AddDate(0, 0, 1), *got.DueAt)
}

func TestSM2Scheduler_Review_IntervalProgression(t *testing.T) {
	s := NewSM2Scheduler()

	tests := []struct {
		name         string
		repetitions  int
		intervalDays int
		wantInterval int
	}{
		{name: "first success", repetitions: 0, intervalDays: 0, wantInterval: 1},
		{name: "second success", repetitions: 1, intervalDays: 1, wantInterval: 6},
		{name: "third success multiplies by ease factor", repetitions: 2, intervalDays: 6, wantInterval: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := models.Card{
				EaseFactor:   2.5,
				IntervalDays: tt.intervalDays,
				Repetitions:  tt.repetitions,
			}

			got := s.Review(card, models.GradeGood, testNow)

			assert.Equal(t, tt.wantInterval, got.IntervalDays)
			assert.Equal(t, tt.repetitions+1, got.Repetitions)
			require.NotNil(t, got.DueAt)
			assert.Equal(t, testNow.AddDate(0, 0, tt.wantInterval), *got.DueAt)
		})
	}
}

func TestSM2Scheduler_Review_EaseFactorAdjustment(t *testing.T) {
	s := NewSM2Scheduler()

	tests := []struct {
		name    string
		grade   models.ReviewGrade
		startEF float64
		wantEF  float64
	}{
		{name: "easy raises", grade: models.GradeEasy, startEF: 2.5, wantEF: 2.6},
		{name: "good keeps", grade: models.GradeGood, startEF: 2.5, wantEF: 2.5},
		{name: "hard lowers", grade: models.GradeHard, startEF: 2.5, wantEF: 2.36},
		{name: "hard never drops below floor", grade: models.GradeHard, startEF: 1.3, wantEF: MinEaseFactor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := models.Card{EaseFactor: tt.startEF, Repetitions: 2, IntervalDays: 6}

			got := s.Review(card, tt.grade, testNow)

			assert.InDelta(t, tt.wantEF, got.EaseFactor, 1e-9)
		})
	}
}
