package game

// NoActivePlayer is the sentinel active index once nobody is left alive.
// It is sticky: the controller never leaves it until the session resets.
const NoActivePlayer = -1

// TurnController tracks whose turn it is and how many mandatory draws the
// active player still owes. A fresh turn always starts at one owed draw;
// Attack stacks extra draws onto whichever player becomes active next.
type TurnController struct {
	players []*Player
	active  int
	owed    int
}

// NewTurnController starts with the first seat active, owing one draw
func NewTurnController(players []*Player) *TurnController {
	return &TurnController{players: players, active: 0, owed: 1}
}

// ActiveIndex returns the roster index of the active player, or NoActivePlayer
func (t *TurnController) ActiveIndex() int {
	return t.active
}

// ActivePlayer returns the active player, or nil on the sentinel
func (t *TurnController) ActivePlayer() *Player {
	if t.active == NoActivePlayer {
		return nil
	}
	return t.players[t.active]
}

// OwedDraws returns the number of mandatory draws the active player still owes
func (t *TurnController) OwedDraws() int {
	return t.owed
}

// AddOwedDraws stacks n extra mandatory draws onto the active player
func (t *TurnController) AddOwedDraws(n int) {
	t.owed += n
}

// Advance records one completed draw action. When the debt reaches zero the
// turn moves to the next living player in seating order and resets to one
// owed draw. Once the sentinel is reached, Advance is a no-op.
func (t *TurnController) Advance() {
	if t.active == NoActivePlayer {
		return
	}
	t.owed--
	if t.owed > 0 {
		return
	}
	t.pass()
}

// PassAttack resolves an Attack: the attacker forfeits their remaining draws
// and the next living player inherits them plus two more. A plain attack
// leaves the target owing exactly 2; a target who answers an attack with
// their own Attack pushes the whole accumulated debt, again plus two, on.
func (t *TurnController) PassAttack() {
	if t.active == NoActivePlayer {
		return
	}
	carried := 0
	if t.owed > 1 {
		carried = t.owed
	}
	t.pass()
	if t.active != NoActivePlayer {
		t.owed = carried + 2
	}
}

// ForcePass abandons the active player's remaining draws entirely, moving to
// the next living player. Used when the active player explodes mid-turn.
func (t *TurnController) ForcePass() {
	if t.active == NoActivePlayer {
		return
	}
	t.pass()
}

func (t *TurnController) pass() {
	next := t.nextLiving()
	t.active = next
	if next == NoActivePlayer {
		t.owed = 0
		return
	}
	t.owed = 1
}

// nextLiving scans forward in seating order, wrapping, for a living player.
// With a single survivor the index parks on the survivor; with none it
// collapses to the sentinel.
func (t *TurnController) nextLiving() int {
	var alive []int
	for i, p := range t.players {
		if p.Alive {
			alive = append(alive, i)
		}
	}
	if len(alive) == 0 {
		return NoActivePlayer
	}
	if len(alive) == 1 {
		return alive[0]
	}

	idx := t.active
	for range t.players {
		idx = (idx + 1) % len(t.players)
		if t.players[idx].Alive {
			return idx
		}
	}
	return NoActivePlayer
}
