package game

import (
	"fmt"
	"time"

	"github.com/coder/quartz"

	"github.com/eclipsecodm7-debug/exploding-kittens/internal/deck"
)

// EventKind discriminates the event records that make up a call's log
type EventKind string

// The ordered event list returned by one boundary operation is the
// authoritative animation/log script for that call.
const (
	EventPlay           EventKind = "play"
	EventDraw           EventKind = "draw"
	EventDefuseUsed     EventKind = "defuse_used"
	EventExplosionDeath EventKind = "explosion_death"
	EventShuffleEffect  EventKind = "shuffle_effect"
	EventSeeFuture      EventKind = "see_future_effect"
	EventFavorPending   EventKind = "favor_pending"
	EventFavorResolved  EventKind = "favor_resolved"
	EventWin            EventKind = "win"
	EventGameBroken     EventKind = "game_broken"
	EventDeckEmpty      EventKind = "deck_empty"
	EventStalled        EventKind = "stalled"
)

// String returns the string representation of the event kind
func (k EventKind) String() string {
	return string(k)
}

// CardView is the transferable description of a single card
type CardView struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

func viewOf(c deck.Card) CardView {
	return CardView{Name: c.Kind.String(), Image: c.Image}
}

// Event is one discrete occurrence during an operation. Fields beyond Kind,
// Message and At are populated per kind: Card for plays and revealed draws,
// Cards for the recipient-only See-the-Future reveal, DeadPlayerIndex for
// explosion deaths.
type Event struct {
	Kind            EventKind `json:"type"`
	Player          string    `json:"player,omitempty"`
	Target          string    `json:"target,omitempty"`
	Card            *CardView `json:"card,omitempty"`
	Cards           []string  `json:"cards,omitempty"`
	DeadPlayerIndex *int      `json:"dead_player_index,omitempty"`
	Message         string    `json:"message,omitempty"`
	At              time.Time `json:"at"`
}

// eventLog is the append-only per-call log. It is cleared at the start of
// every boundary operation; timestamps come from the session clock.
type eventLog struct {
	clock  quartz.Clock
	events []Event
}

func (l *eventLog) reset() {
	l.events = nil
}

func (l *eventLog) add(e Event) {
	e.At = l.clock.Now()
	l.events = append(l.events, e)
}

func (l *eventLog) drain() []Event {
	out := l.events
	l.events = nil
	return out
}

func playEvent(p *Player, card deck.Card) Event {
	cv := viewOf(card)
	return Event{
		Kind:    EventPlay,
		Player:  p.Name,
		Card:    &cv,
		Message: fmt.Sprintf("%s played %s", p.Name, card.Kind),
	}
}

// drawEvent reveals the drawn card only to a human drawer; automated draws
// stay face down.
func drawEvent(p *Player, card deck.Card) Event {
	e := Event{Kind: EventDraw, Player: p.Name}
	if p.Human {
		cv := viewOf(card)
		e.Card = &cv
		e.Message = fmt.Sprintf("%s drew %s", p.Name, card.Kind)
	} else {
		e.Message = fmt.Sprintf("%s drew a card", p.Name)
	}
	return e
}

func defuseUsedEvent(p *Player) Event {
	return Event{
		Kind:    EventDefuseUsed,
		Player:  p.Name,
		Message: fmt.Sprintf("%s drew Exploding Kitten but used Defuse!", p.Name),
	}
}

func explosionDeathEvent(p *Player, rosterIndex int) Event {
	idx := rosterIndex
	return Event{
		Kind:            EventExplosionDeath,
		Player:          p.Name,
		DeadPlayerIndex: &idx,
		Message:         fmt.Sprintf("%s drew Exploding Kitten and exploded! 💀", p.Name),
	}
}

func shuffleEvent(p *Player) Event {
	return Event{
		Kind:    EventShuffleEffect,
		Player:  p.Name,
		Message: fmt.Sprintf("%s shuffled the deck", p.Name),
	}
}

// seeFutureEvent carries the revealed card names only when the acting player
// is human; spectators and opponents just learn that the peek happened.
func seeFutureEvent(p *Player, top []deck.Card) Event {
	e := Event{
		Kind:    EventSeeFuture,
		Player:  p.Name,
		Message: fmt.Sprintf("%s peeked at the top of the deck", p.Name),
	}
	if p.Human {
		for _, c := range top {
			e.Cards = append(e.Cards, c.Kind.String())
		}
	}
	return e
}

func favorPendingEvent(requester, target *Player) Event {
	return Event{
		Kind:    EventFavorPending,
		Player:  requester.Name,
		Target:  target.Name,
		Message: fmt.Sprintf("%s asks %s for a favor", requester.Name, target.Name),
	}
}

// favorResolvedEvent hides which card changed hands unless the requester is
// human (the owner of the returned hand view already sees it).
func favorResolvedEvent(requester, target *Player, card deck.Card) Event {
	e := Event{
		Kind:    EventFavorResolved,
		Player:  requester.Name,
		Target:  target.Name,
		Message: fmt.Sprintf("%s gave a card to %s", target.Name, requester.Name),
	}
	if requester.Human {
		cv := viewOf(card)
		e.Card = &cv
		e.Message = fmt.Sprintf("%s gave %s to %s", target.Name, card.Kind, requester.Name)
	}
	return e
}

func winEvent(p *Player) Event {
	return Event{
		Kind:    EventWin,
		Player:  p.Name,
		Message: fmt.Sprintf("🏆 %s wins the game! 🏆", p.Name),
	}
}

func gameBrokenEvent() Event {
	return Event{
		Kind:    EventGameBroken,
		Message: "Game over! No remaining players. Restarting is recommended.",
	}
}

func deckEmptyEvent() Event {
	return Event{
		Kind:    EventDeckEmpty,
		Message: "Deck is empty! Game should have ended already.",
	}
}

func stalledEvent(iterations int) Event {
	return Event{
		Kind:    EventStalled,
		Message: fmt.Sprintf("automated turn sequence stalled after %d iterations", iterations),
	}
}
