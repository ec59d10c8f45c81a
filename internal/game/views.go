package game

// PublicPlayerView is what any observer may learn about a player. The full
// hand is included only for the human seat; opponents expose just a count.
type PublicPlayerView struct {
	Name      string     `json:"name"`
	IsHuman   bool       `json:"is_human"`
	IsAlive   bool       `json:"is_alive"`
	Hand      []CardView `json:"hand,omitempty"`
	HandCount int        `json:"hand_count"`
}

// PendingActionView describes the outstanding Favor handshake. Cards are the
// names in the target's hand at request time, so the requester can name one.
type PendingActionView struct {
	Type      string   `json:"type"`
	Requester string   `json:"requester"`
	Target    string   `json:"target"`
	Cards     []string `json:"cards"`
}

// StateView is the full public snapshot returned by GetState
type StateView struct {
	SessionID     string             `json:"session_id,omitempty"`
	Started       bool               `json:"started"`
	Ended         bool               `json:"ended"`
	Players       []PublicPlayerView `json:"players"`
	CurrentPlayer int                `json:"current_player"`
	OwedDraws     int                `json:"owed_draws"`
	DeckSize      int                `json:"deck_size"`
	Discarded     int                `json:"discarded"`
	Pending       *PendingActionView `json:"pending_action,omitempty"`
}

// State returns the public snapshot of the session, valid in any state
func (s *Session) State() StateView {
	if !s.started {
		return StateView{CurrentPlayer: NoActivePlayer}
	}
	return StateView{
		SessionID:     s.id,
		Started:       true,
		Ended:         s.ended,
		Players:       s.publicPlayers(),
		CurrentPlayer: s.turns.ActiveIndex(),
		OwedDraws:     s.turns.OwedDraws(),
		DeckSize:      s.deck.Len(),
		Discarded:     s.discarded,
		Pending:       s.pendingView(),
	}
}

func (s *Session) publicPlayers() []PublicPlayerView {
	views := make([]PublicPlayerView, len(s.players))
	for i, p := range s.players {
		v := PublicPlayerView{
			Name:      p.Name,
			IsHuman:   p.Human,
			IsAlive:   p.Alive,
			HandCount: len(p.Hand),
		}
		if p.Human {
			v.Hand = handViews(p)
		}
		views[i] = v
	}
	return views
}

func (s *Session) humanHand() []CardView {
	for _, p := range s.players {
		if p.Human {
			return handViews(p)
		}
	}
	return nil
}

func (s *Session) pendingView() *PendingActionView {
	if s.pending == nil {
		return nil
	}
	names := make([]string, len(s.pending.Snapshot))
	for i, c := range s.pending.Snapshot {
		names[i] = c.Kind.String()
	}
	return &PendingActionView{
		Type:      "favor",
		Requester: s.pending.Requester.Name,
		Target:    s.pending.Target.Name,
		Cards:     names,
	}
}

func handViews(p *Player) []CardView {
	views := make([]CardView, len(p.Hand))
	for i, c := range p.Hand {
		views[i] = viewOf(c)
	}
	return views
}
