package game

import (
	rand "math/rand/v2"

	"github.com/eclipsecodm7-debug/exploding-kittens/internal/deck"
	"github.com/eclipsecodm7-debug/exploding-kittens/internal/randutil"
)

// PolicyConfig tunes the automated opponent's priority ladder
type PolicyConfig struct {
	// LowDeckThreshold: play See the Future when this few cards remain
	LowDeckThreshold int
	// AttackHandThreshold: attack when a living human holds fewer cards than this
	AttackHandThreshold int
	// FavorHandThreshold: ask a favor when the opponent's own hand is larger than this
	FavorHandThreshold int
	// ShuffleChance: probability of a speculative shuffle per iteration
	ShuffleChance float64
}

// DefaultPolicyConfig returns the standard opponent tuning
func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		LowDeckThreshold:    3,
		AttackHandThreshold: 3,
		FavorHandThreshold:  4,
		ShuffleChance:       0.2,
	}
}

// Policy decides which card an automated player plays next. It only makes
// choices; the session applies them. Deterministic given the session RNG.
type Policy struct {
	cfg PolicyConfig
	rng *rand.Rand
}

// NewPolicy creates a policy over the shared session RNG
func NewPolicy(cfg PolicyConfig, rng *rand.Rand) *Policy {
	return &Policy{cfg: cfg, rng: rng}
}

// ChooseCard returns the hand index the player should play next, or -1 to
// stop playing and take the mandatory draw. Priorities, in order: See the
// Future when the deck is low or a Defuse is held, Attack when a qualifying
// human target is short on cards, a speculative Shuffle, Favor when the own
// hand is large, otherwise any playable card uniformly at random.
func (pol *Policy) ChooseCard(actor *Player, roster []*Player, deckLen int) int {
	if i := indexOfKind(actor, deck.SeeTheFuture); i >= 0 {
		if deckLen <= pol.cfg.LowDeckThreshold || actor.HasKind(deck.Defuse) {
			return i
		}
	}

	if i := indexOfKind(actor, deck.Attack); i >= 0 && pol.hasShortHandedHuman(roster) {
		return i
	}

	if i := indexOfKind(actor, deck.Shuffle); i >= 0 && randutil.Chance(pol.rng, pol.cfg.ShuffleChance) {
		return i
	}

	if i := indexOfKind(actor, deck.Favor); i >= 0 && len(actor.Hand) > pol.cfg.FavorHandThreshold {
		if len(pol.FavorTargets(actor, roster)) > 0 {
			return i
		}
	}

	if playable := actor.PlayableIndices(); len(playable) > 0 {
		return randutil.Pick(pol.rng, playable)
	}
	return -1
}

// FavorTargets returns the living players other than actor with a non-empty
// hand, in seating order.
func (pol *Policy) FavorTargets(actor *Player, roster []*Player) []*Player {
	var targets []*Player
	for _, p := range roster {
		if p != actor && p.Alive && len(p.Hand) > 0 {
			targets = append(targets, p)
		}
	}
	return targets
}

// PickFavorTarget chooses a favor victim uniformly at random, nil when no
// valid target exists.
func (pol *Policy) PickFavorTarget(actor *Player, roster []*Player) *Player {
	targets := pol.FavorTargets(actor, roster)
	if len(targets) == 0 {
		return nil
	}
	return randutil.Pick(pol.rng, targets)
}

// PickStolenCard chooses which of the target's cards changes hands
func (pol *Policy) PickStolenCard(target *Player) int {
	return pol.rng.IntN(len(target.Hand))
}

func (pol *Policy) hasShortHandedHuman(roster []*Player) bool {
	for _, p := range roster {
		if p.Human && p.Alive && len(p.Hand) < pol.cfg.AttackHandThreshold {
			return true
		}
	}
	return false
}

func indexOfKind(p *Player, kind deck.Kind) int {
	for i, c := range p.Hand {
		if c.Kind == kind {
			return i
		}
	}
	return -1
}
