// Package srs computes review schedules for cards. The default
// implementation follows the SM-2 algorithm: each graded review adjusts the
// card's ease factor and stretches or resets the inter-review interval.
package srs

import (
	"time"

	"github.com/savichev/memodeck/models"
)

const (
	// MinEaseFactor is the SM-2 floor below which the ease factor never drops.
	MinEaseFactor = 1.3

	// DefaultEaseFactor seeds newly created cards.
	DefaultEaseFactor = 2.5
)

// Scheduler decides when a card should next be shown based on the grade the
// user gave it.
type Scheduler interface {
	// Review returns an updated copy of card with its ease factor, interval,
	// repetition count and due date recomputed for the given grade.
	Review(card models.Card, grade models.ReviewGrade, now time.Time) models.Card
}

type sm2Scheduler struct{}

// NewSM2Scheduler returns the SM-2 implementation of [Scheduler].
func NewSM2Scheduler() Scheduler {
	return sm2Scheduler{}
}

func (sm2Scheduler) Review(card models.Card, grade models.ReviewGrade, now time.Time) models.Card {
	if card.EaseFactor == 0 {
		card.EaseFactor = DefaultEaseFactor
	}

	if grade < models.GradeHard {
		// failed recall restarts the learning sequence without touching
		// the ease factor
		card.Repetitions = 0
		card.IntervalDays = 1
	} else {
		switch card.Repetitions {
		case 0:
			card.IntervalDays = 1
		case 1:
			card.IntervalDays = 6
		default:
			card.IntervalDays = int(float64(card.IntervalDays)*card.EaseFactor + 0.5)
		}
		card.Repetitions++

		q := float64(grade)
		card.EaseFactor += 0.1 - (5-q)*(0.08+(5-q)*0.02)
		if card.EaseFactor < MinEaseFactor {
			card.EaseFactor = MinEaseFactor
		}
	}

	due := now.AddDate(0, 0, card.IntervalDays)
	card.DueAt = &due

	return card
}
