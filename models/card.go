package models

import (
	"encoding/json"
	"time"
)

// Card is the payload of a card entity: one prompt/answer pair together with
// its spaced-repetition state. The scheduling fields are written by the
// review scheduler and synced like any other payload field.
type Card struct {
	// DeckID references the owning deck by its local entity ID.
	DeckID string `json:"deck_id"`

	// Front is the prompt side of the card.
	Front string `json:"front"`

	// Back is the answer side of the card.
	Back string `json:"back"`

	// Tags are optional user labels.
	Tags []string `json:"tags,omitempty"`

	// EaseFactor is the SM-2 ease multiplier, 2.5 for a fresh card.
	EaseFactor float64 `json:"ease_factor"`

	// IntervalDays is the current review interval in whole days.
	IntervalDays int `json:"interval_days"`

	// Repetitions counts consecutive successful reviews.
	Repetitions int `json:"repetitions"`

	// DueAt is when the card next comes up for review. Nil for a card that
	// has never been reviewed.
	DueAt *time.Time `json:"due_at,omitempty"`
}

// Payload encodes the card into the opaque entity payload form.
func (c Card) Payload() (json.RawMessage, error) {
	return json.Marshal(c)
}
