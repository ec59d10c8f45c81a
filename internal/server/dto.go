package server

import "github.com/eclipsecodm7-debug/exploding-kittens/internal/game"

// StartGameRequest names the human seat for a fresh deal
type StartGameRequest struct {
	Name string `json:"name"`
}

// PlayCardRequest selects a hand index to play. Target is required for
// Favor and ignored otherwise.
type PlayCardRequest struct {
	CardIndex int    `json:"card_index"`
	Target    string `json:"target,omitempty"`
}

// ResolveFavorRequest names the card surrendered to the favor requester
type ResolveFavorRequest struct {
	Card string `json:"card"`
}

// ErrorResponse carries the rejection and, for plays that mutate state
// before failing (a Favor with no valid target discards the card), the
// events recorded up to the failure.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Events []game.Event `json:"events,omitempty"`
}
