package deck

import rand "math/rand/v2"

// Deck is an ordered draw pile, front = next card to be drawn. All
// randomness comes from the injected RNG so seeded games replay exactly.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a deck over the given cards. The slice is owned by the deck
// afterwards.
func New(cards []Card, rng *rand.Rand) *Deck {
	return &Deck{cards: cards, rng: rng}
}

// Draw removes and returns the top card. The second return is false when the
// deck is empty; an empty draw is a non-fatal condition for the caller.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// InsertRandom places card at a uniformly random index in [0, Len()].
// Used to return a defused Exploding Kitten to the pile.
func (d *Deck) InsertRandom(card Card) {
	i := d.rng.IntN(len(d.cards) + 1)
	d.cards = append(d.cards, Card{})
	copy(d.cards[i+1:], d.cards[i:])
	d.cards[i] = card
}

// RemoveFirst scans from the top and removes the first card of the wanted
// kind. The second return is false when no such card is in the deck.
func (d *Deck) RemoveFirst(kind Kind) (Card, bool) {
	for i, c := range d.cards {
		if c.Kind == kind {
			d.cards = append(d.cards[:i], d.cards[i+1:]...)
			return c, true
		}
	}
	return Card{}, false
}

// Shuffle randomizes the order of the remaining cards (Fisher–Yates)
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Peek returns the first n cards in draw order without removing them.
// Fewer are returned when the deck is shorter than n.
func (d *Deck) Peek(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	out := make([]Card, n)
	copy(out, d.cards[:n])
	return out
}

// Len returns the number of cards remaining
func (d *Deck) Len() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}
