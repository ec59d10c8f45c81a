package game

import (
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/eclipsecodm7-debug/exploding-kittens/internal/deck"
	"github.com/eclipsecodm7-debug/exploding-kittens/internal/gameid"
)

// PendingFavor is the single cross-call suspension point: a human Favor play
// waiting for the requester to name the card. While set, every mutating
// operation other than ResolveFavor is rejected.
type PendingFavor struct {
	Requester *Player
	Target    *Player
	// Snapshot of the target's hand at request time, for display
	Snapshot []deck.Card
}

// Session is the aggregate root: it owns the deck, the roster, the turn
// controller and the pending-action slot, and drives the automated opponents
// between human actions. Single-writer; callers serialise access.
type Session struct {
	cfg    Config
	rng    *rand.Rand
	clock  quartz.Clock
	logger *log.Logger

	id        string
	deck      *deck.Deck
	players   []*Player
	turns     *TurnController
	pending   *PendingFavor
	policy    *Policy
	log       eventLog
	discarded int
	started   bool
	ended     bool
}

// NewSession creates an empty session; Start begins (or restarts) a game.
// All randomness flows from rng so a seeded session replays exactly.
func NewSession(cfg Config, rng *rand.Rand, clock quartz.Clock, logger *log.Logger) *Session {
	return &Session{
		cfg:    cfg,
		rng:    rng,
		clock:  clock,
		logger: logger.WithPrefix("session"),
		policy: NewPolicy(cfg.Policy, rng),
		log:    eventLog{clock: clock},
	}
}

// ID returns the current game's identifier, empty before the first Start
func (s *Session) ID() string {
	return s.id
}

// StartResult is the response of a successful Start
type StartResult struct {
	SessionID     string             `json:"session_id"`
	Players       []PublicPlayerView `json:"players"`
	CurrentPlayer int                `json:"current_player"`
	Events        []Event            `json:"events"`
}

// Start resets the session and deals a new game: one human seat plus the
// configured automated opponents, each guaranteed a Defuse before receiving
// DealSize random non-Kitten cards. The remainder plus the Exploding Kittens
// form the shuffled draw pile. If the first active player is automated, the
// opponent loop runs before returning.
func (s *Session) Start(humanName string) (*StartResult, error) {
	humanName = strings.TrimSpace(humanName)
	if humanName == "" {
		return nil, ErrInvalidInput
	}

	s.id = gameid.NewGenerator(s.rng).Generate()
	s.players = []*Player{NewPlayer(humanName, true)}
	for _, name := range s.cfg.Opponents {
		s.players = append(s.players, NewPlayer(name, false))
	}
	s.pending = nil
	s.started = true
	s.ended = false
	s.discarded = 0
	s.log.reset()

	s.deal()
	s.turns = NewTurnController(s.players)

	s.logger.Info("game started",
		"session", s.id,
		"human", humanName,
		"players", len(s.players),
		"deck", s.deck.Len())

	s.runAutomatedLoop()

	return &StartResult{
		SessionID:     s.id,
		Players:       s.publicPlayers(),
		CurrentPlayer: s.turns.ActiveIndex(),
		Events:        s.log.drain(),
	}, nil
}

// deal builds the catalog, hands out starting cards and shuffles the rest
// together with the Exploding Kittens into the draw pile.
func (s *Session) deal() {
	cards := deck.Build(len(s.players), s.cfg.Catalog, s.rng)

	var kittens, rest []deck.Card
	for _, c := range cards {
		if c.Kind == deck.ExplodingKitten {
			kittens = append(kittens, c)
		} else {
			rest = append(rest, c)
		}
	}

	pile := deck.New(rest, s.rng)
	pile.Shuffle()

	for _, p := range s.players {
		p.AddCard(s.drawKind(pile, deck.Defuse))
		for i := 0; i < s.cfg.DealSize; i++ {
			if card, ok := pile.Draw(); ok {
				p.AddCard(card)
			}
		}
	}

	remaining := pile.Peek(pile.Len())
	s.deck = deck.New(append(remaining, kittens...), s.rng)
	s.deck.Shuffle()
}

// drawKind removes the first card of the wanted kind from the pile, falling
// back to the top card if none is left. The catalog guarantees enough Defuse
// cards, so the fallback is unreachable in a configured game.
func (s *Session) drawKind(pile *deck.Deck, kind deck.Kind) deck.Card {
	if card, ok := pile.RemoveFirst(kind); ok {
		return card
	}
	card, _ := pile.Draw()
	return card
}

// ActionResult is the response of Draw, Play and ResolveFavor
type ActionResult struct {
	Events        []Event            `json:"events"`
	CurrentPlayer int                `json:"current_player"`
	OwedDraws     int                `json:"owed_draws"`
	HumanHand     []CardView         `json:"human_hand"`
	Pending       *PendingActionView `json:"pending_action,omitempty"`
}

// Draw performs the human's mandatory draw, resolves an Exploding Kitten per
// the defuse rules, advances the turn and runs the automated opponents.
func (s *Session) Draw() (*ActionResult, error) {
	if err := s.checkHumanTurn(); err != nil {
		return nil, err
	}
	s.log.reset()

	idx := s.turns.ActiveIndex()
	s.performDraw(s.players[idx], idx)
	s.checkWin()
	s.runAutomatedLoop()

	return s.actionResult(), nil
}

// Play plays the human's card at cardIndex. Favor requires targetName and
// suspends the session until ResolveFavor; Skip and Attack end the turn and
// hand control to the automated opponents; Shuffle and See the Future leave
// the turn open.
func (s *Session) Play(cardIndex int, targetName string) (*ActionResult, error) {
	if err := s.checkHumanTurn(); err != nil {
		return nil, err
	}
	human := s.turns.ActivePlayer()
	if cardIndex < 0 || cardIndex >= len(human.Hand) {
		return nil, ErrInvalidCardIndex
	}
	if !human.Hand[cardIndex].Kind.Playable() {
		return nil, ErrIllegalCard
	}
	s.log.reset()

	card, _ := human.RemoveAt(cardIndex)
	s.discarded++
	s.log.add(playEvent(human, card))
	s.logger.Debug("human played card", "session", s.id, "player", human.Name, "card", card.Kind.String())

	if card.Kind == deck.Favor {
		if err := s.installFavor(human, targetName); err != nil {
			// Observed quirk preserved: the card is already discarded and is
			// not refunded when no valid target exists. The play event still
			// reaches the caller alongside the rejection.
			return s.actionResult(), err
		}
		return s.actionResult(), nil
	}

	turnEnded := effects[card.Kind](s, human)
	s.checkWin()
	if turnEnded {
		s.runAutomatedLoop()
	}

	return s.actionResult(), nil
}

// installFavor validates the target and parks the handshake in the pending
// slot. The target must be another living player with a non-empty hand.
func (s *Session) installFavor(requester *Player, targetName string) error {
	target := s.playerByName(targetName)
	if target == nil || target == requester || !target.Alive || len(target.Hand) == 0 {
		return ErrInvalidTarget
	}

	snapshot := make([]deck.Card, len(target.Hand))
	copy(snapshot, target.Hand)
	s.pending = &PendingFavor{Requester: requester, Target: target, Snapshot: snapshot}
	s.log.add(favorPendingEvent(requester, target))
	return nil
}

// ResolveFavor completes the outstanding Favor handshake by moving the named
// card from the target's hand to the requester's. The turn does not advance;
// the requester still owes their draw.
func (s *Session) ResolveFavor(cardName string) (*ActionResult, error) {
	if s.pending == nil {
		return nil, ErrNoPendingAction
	}
	s.log.reset()

	pending := s.pending
	card, ok := pending.Target.RemoveNamed(cardName)
	if !ok {
		return nil, ErrInvalidInput
	}

	pending.Requester.AddCard(card)
	s.pending = nil
	s.log.add(favorResolvedEvent(pending.Requester, pending.Target, card))

	return s.actionResult(), nil
}

// checkHumanTurn gates the mutating human operations: the game must be
// running, nothing may be pending, and the active player must be the living
// human.
func (s *Session) checkHumanTurn() error {
	if !s.started || s.ended {
		return ErrNotYourTurn
	}
	if s.pending != nil {
		return ErrPendingAction
	}
	active := s.turns.ActivePlayer()
	if active == nil || !active.Human || !active.Alive {
		return ErrNotYourTurn
	}
	return nil
}

// runAutomatedLoop drives complete automated turn-slices until a living
// human is active, the game ends, or the stall safety limit trips.
func (s *Session) runAutomatedLoop() {
	limit := s.cfg.StallMultiplier * len(s.players)

	for i := 0; ; i++ {
		if s.ended {
			return
		}
		active := s.turns.ActivePlayer()
		if active == nil || active.Human || !active.Alive {
			return
		}
		if i >= limit {
			s.logger.Warn("automated loop hit stall limit", "session", s.id, "iterations", i)
			s.log.add(stalledEvent(i))
			return
		}
		s.runAutomatedSlice(active)
	}
}

// runAutomatedSlice is one turn-slice of one automated player: play cards
// while the policy keeps choosing and the turn stays open, then take the
// mandatory draw, then check the win condition.
func (s *Session) runAutomatedSlice(ai *Player) {
	idx := s.turns.ActiveIndex()
	turnEnded := false

	for !turnEnded {
		cardIdx := s.policy.ChooseCard(ai, s.players, s.deck.Len())
		if cardIdx < 0 {
			break
		}

		card, _ := ai.RemoveAt(cardIdx)
		s.discarded++
		s.log.add(playEvent(ai, card))
		s.logger.Debug("automated play", "session", s.id, "player", ai.Name, "card", card.Kind.String())

		if card.Kind == deck.Favor {
			s.resolveAutomatedFavor(ai)
			continue
		}
		turnEnded = effects[card.Kind](s, ai)
	}

	if !turnEnded {
		s.performDraw(ai, idx)
	}
	s.checkWin()
}

// resolveAutomatedFavor steals a uniformly random card from a uniformly
// random valid target, synchronously. With no valid target the play is
// wasted, mirroring the human-path quirk.
func (s *Session) resolveAutomatedFavor(ai *Player) {
	target := s.policy.PickFavorTarget(ai, s.players)
	if target == nil {
		return
	}
	card, _ := target.RemoveAt(s.policy.PickStolenCard(target))
	ai.AddCard(card)
	s.log.add(favorResolvedEvent(ai, target, card))
}

// checkWin ends the game once at most one player is alive: exactly one
// living player wins; zero is the broken failsafe state.
func (s *Session) checkWin() {
	if s.ended {
		return
	}

	var alive []*Player
	for _, p := range s.players {
		if p.Alive {
			alive = append(alive, p)
		}
	}

	switch len(alive) {
	case 1:
		s.ended = true
		s.log.add(winEvent(alive[0]))
		s.logger.Info("game over", "session", s.id, "winner", alive[0].Name)
	case 0:
		s.ended = true
		s.log.add(gameBrokenEvent())
		s.logger.Error("game broken: no living players", "session", s.id)
	}
}

func (s *Session) playerByName(name string) *Player {
	for _, p := range s.players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func (s *Session) actionResult() *ActionResult {
	return &ActionResult{
		Events:        s.log.drain(),
		CurrentPlayer: s.turns.ActiveIndex(),
		OwedDraws:     s.turns.OwedDraws(),
		HumanHand:     s.humanHand(),
		Pending:       s.pendingView(),
	}
}
