package game

import (
	"github.com/eclipsecodm7-debug/exploding-kittens/internal/deck"
)

// Player is one seat in the session. Hand order is the order cards were
// added, so display indices stay stable within a request. Alive is monotonic:
// once false it stays false until the session resets.
type Player struct {
	Name  string
	Hand  []deck.Card
	Alive bool
	Human bool
}

// NewPlayer creates a living player with an empty hand
func NewPlayer(name string, human bool) *Player {
	return &Player{Name: name, Alive: true, Human: human}
}

// AddCard appends card to the hand
func (p *Player) AddCard(card deck.Card) {
	p.Hand = append(p.Hand, card)
}

// RemoveAt removes and returns the card at hand index i
func (p *Player) RemoveAt(i int) (deck.Card, bool) {
	if i < 0 || i >= len(p.Hand) {
		return deck.Card{}, false
	}
	card := p.Hand[i]
	p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
	return card, true
}

// RemoveKind removes and returns the first card of the given kind
func (p *Player) RemoveKind(kind deck.Kind) (deck.Card, bool) {
	for i, c := range p.Hand {
		if c.Kind == kind {
			return p.RemoveAt(i)
		}
	}
	return deck.Card{}, false
}

// RemoveNamed removes and returns the first card whose display name matches
func (p *Player) RemoveNamed(name string) (deck.Card, bool) {
	for i, c := range p.Hand {
		if c.Kind.String() == name {
			return p.RemoveAt(i)
		}
	}
	return deck.Card{}, false
}

// HasKind reports whether the hand holds at least one card of the kind
func (p *Player) HasKind(kind deck.Kind) bool {
	for _, c := range p.Hand {
		if c.Kind == kind {
			return true
		}
	}
	return false
}

// CountKind returns how many cards of the kind the hand holds
func (p *Player) CountKind(kind deck.Kind) int {
	n := 0
	for _, c := range p.Hand {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// PlayableIndices returns the hand indices a player may legally play
// (everything except Defuse and Exploding Kitten).
func (p *Player) PlayableIndices() []int {
	var out []int
	for i, c := range p.Hand {
		if c.Kind.Playable() {
			out = append(out, i)
		}
	}
	return out
}
