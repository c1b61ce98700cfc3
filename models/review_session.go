package models

import (
	"encoding/json"
	"time"
)

// ReviewGrade is the user's self-assessment of a review, on the SM-2 scale.
type ReviewGrade int

const (
	GradeAgain ReviewGrade = 0
	GradeHard  ReviewGrade = 3
	GradeGood  ReviewGrade = 4
	GradeEasy  ReviewGrade = 5
)

// Valid reports whether g is within the SM-2 grade range.
func (g ReviewGrade) Valid() bool {
	return g >= 0 && g <= 5
}

// ReviewSession is the payload of a session entity: a single graded review
// of one card. Sessions are append-only on the client; whether they
// participate in sync at all is a configuration switch.
type ReviewSession struct {
	// CardID references the reviewed card by its local entity ID.
	CardID string `json:"card_id"`

	// DeckID references the deck the card belonged to at review time.
	DeckID string `json:"deck_id"`

	// Grade is the user's answer quality.
	Grade ReviewGrade `json:"grade"`

	// ReviewedAt is when the review happened.
	ReviewedAt time.Time `json:"reviewed_at"`

	// DurationMs is how long the user spent on the card.
	DurationMs int64 `json:"duration_ms,omitempty"`

	// NextDueAt is the due date the scheduler computed from this review.
	NextDueAt time.Time `json:"next_due_at"`
}

// Payload encodes the session into the opaque entity payload form.
func (s ReviewSession) Payload() (json.RawMessage, error) {
	return json.Marshal(s)
}
