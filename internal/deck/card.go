package deck

import (
	"fmt"
	rand "math/rand/v2"
)

// Kind identifies a card's game behaviour. Two cards of the same kind are
// interchangeable for effect logic; only the image differs.
type Kind int

const (
	Attack Kind = iota
	Skip
	Favor
	Shuffle
	SeeTheFuture
	Defuse
	ExplodingKitten
)

// String returns the display name of the kind
func (k Kind) String() string {
	switch k {
	case Attack:
		return "Attack"
	case Skip:
		return "Skip"
	case Favor:
		return "Favor"
	case Shuffle:
		return "Shuffle"
	case SeeTheFuture:
		return "See the Future"
	case Defuse:
		return "Defuse"
	case ExplodingKitten:
		return "Exploding Kitten"
	default:
		return "?"
	}
}

// Playable reports whether a human may play the kind directly from hand.
// Defuse and Exploding Kitten only ever act through the draw path.
func (k Kind) Playable() bool {
	return k != Defuse && k != ExplodingKitten
}

// Card is an immutable card instance. Image is cosmetic only and must never
// influence effect logic.
type Card struct {
	Kind  Kind
	Image string
}

// String returns the string representation of a card (e.g., "Skip")
func (c Card) String() string {
	return c.Kind.String()
}

// imagePoolSize matches the card1.jpg..card45.jpg asset set of the web client
const imagePoolSize = 45

// ImagePool hands out card image identifiers without replacement, refilling
// itself when exhausted so a large deck never runs dry.
type ImagePool struct {
	available []string
	rng       *rand.Rand
}

// NewImagePool creates a full pool drawing from the given RNG
func NewImagePool(rng *rand.Rand) *ImagePool {
	p := &ImagePool{rng: rng}
	p.refill()
	return p
}

// Next returns a fresh image identifier, recycling the pool when empty
func (p *ImagePool) Next() string {
	if len(p.available) == 0 {
		p.refill()
	}
	i := p.rng.IntN(len(p.available))
	img := p.available[i]
	p.available = append(p.available[:i], p.available[i+1:]...)
	return img
}

func (p *ImagePool) refill() {
	p.available = make([]string, 0, imagePoolSize)
	for i := 1; i <= imagePoolSize; i++ {
		p.available = append(p.available, fmt.Sprintf("images/card%d.jpg", i))
	}
}
