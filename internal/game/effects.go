package game

import (
	"github.com/eclipsecodm7-debug/exploding-kittens/internal/deck"
)

// effect applies a played card's semantics to the shared session state. The
// result reports whether the play ended the actor's turn-slice. Favor is not
// in the table: its two resolution paths (human handshake, synchronous
// automated steal) live on the session.
type effect func(s *Session, actor *Player) bool

var effects = map[deck.Kind]effect{
	deck.Skip: func(s *Session, _ *Player) bool {
		// One owed draw is consumed without drawing; the turn passes when
		// the debt hits zero.
		s.turns.Advance()
		return true
	},
	deck.Attack: func(s *Session, _ *Player) bool {
		s.turns.PassAttack()
		return true
	},
	deck.Shuffle: func(s *Session, actor *Player) bool {
		s.deck.Shuffle()
		s.log.add(shuffleEvent(actor))
		return false
	},
	deck.SeeTheFuture: func(s *Session, actor *Player) bool {
		s.log.add(seeFutureEvent(actor, s.deck.Peek(s.cfg.SeeFutureCards)))
		return false
	},
}

// performDraw executes one mandatory draw for the active player, including
// the Exploding Kitten path, and advances the turn controller. An empty deck
// is logged as a non-fatal event; the turn still advances.
func (s *Session) performDraw(p *Player, rosterIndex int) {
	card, ok := s.deck.Draw()
	if !ok {
		s.log.add(deckEmptyEvent())
		s.turns.Advance()
		return
	}

	if card.Kind != deck.ExplodingKitten {
		p.AddCard(card)
		s.log.add(drawEvent(p, card))
		s.turns.Advance()
		return
	}

	if _, hadDefuse := p.RemoveKind(deck.Defuse); hadDefuse {
		// Defuse is spent and the kitten goes back at a random position; the
		// deck length is unchanged and the turn proceeds as a safe draw.
		s.discarded++
		s.deck.InsertRandom(card)
		s.log.add(defuseUsedEvent(p))
		s.turns.Advance()
		return
	}

	p.Alive = false
	s.discarded++
	s.log.add(explosionDeathEvent(p, rosterIndex))
	s.turns.ForcePass()
}
