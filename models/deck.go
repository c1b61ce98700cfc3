package models

import "encoding/json"

// Deck is the payload of a deck entity: a named collection of cards.
type Deck struct {
	// Name is the human-readable display name of the deck.
	Name string `json:"name"`

	// Description is an optional free-form summary shown in deck lists.
	Description string `json:"description,omitempty"`

	// NewCardsPerDay caps how many unseen cards the scheduler introduces
	// per day for this deck. Zero means no cap.
	NewCardsPerDay int `json:"new_cards_per_day,omitempty"`
}

// Payload encodes the deck into the opaque entity payload form.
func (d Deck) Payload() (json.RawMessage, error) {
	return json.Marshal(d)
}
