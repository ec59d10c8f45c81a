// Package tui renders session snapshots and event logs for the terminal
// client.
package tui

import (
	"fmt"
	"strings"

	"github.com/eclipsecodm7-debug/exploding-kittens/internal/game"
)

// RenderEvents formats one call's event log, one line per event, styled by
// severity.
func RenderEvents(events []game.Event) string {
	var b strings.Builder
	for _, ev := range events {
		line := ev.Message
		if line == "" {
			line = string(ev.Kind)
		}
		switch ev.Kind {
		case game.EventExplosionDeath, game.EventGameBroken, game.EventStalled:
			line = DangerStyle.Render(line)
		case game.EventWin:
			line = WinnerStyle.Render(line)
		case game.EventDefuseUsed, game.EventDeckEmpty:
			line = WarningStyle.Render(line)
		default:
			line = EventStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
		if ev.Kind == game.EventSeeFuture && len(ev.Cards) > 0 {
			b.WriteString(InfoStyle.Render("  top of deck: " + strings.Join(ev.Cards, ", ")))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// RenderHand lists the hand with the indices Play expects
func RenderHand(hand []game.CardView) string {
	if len(hand) == 0 {
		return InfoStyle.Render("(empty hand)") + "\n"
	}
	var b strings.Builder
	b.WriteString(HandStyle.Render("Your hand:"))
	b.WriteByte('\n')
	for i, card := range hand {
		b.WriteString(fmt.Sprintf("  [%d] %s\n", i, card.Name))
	}
	return b.String()
}

// RenderState summarises the public snapshot
func RenderState(state game.StateView) string {
	if !state.Started {
		return InfoStyle.Render("No game in progress") + "\n"
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Exploding Kittens"))
	b.WriteString(fmt.Sprintf("  session %s\n", state.SessionID))

	for i, p := range state.Players {
		marker := "  "
		if i == state.CurrentPlayer {
			marker = "▶ "
		}
		status := fmt.Sprintf("%s%s — %d cards", marker, p.Name, p.HandCount)
		if !p.IsAlive {
			status = InfoStyle.Render(fmt.Sprintf("%s%s — exploded", marker, p.Name))
		}
		b.WriteString(status)
		b.WriteByte('\n')
	}

	b.WriteString(fmt.Sprintf("deck: %d  discarded: %d", state.DeckSize, state.Discarded))
	if state.OwedDraws > 1 {
		b.WriteString(DangerStyle.Render(fmt.Sprintf("  owed draws: %d", state.OwedDraws)))
	}
	b.WriteByte('\n')

	if state.Pending != nil {
		b.WriteString(WarningStyle.Render(fmt.Sprintf(
			"%s owes %s a favor — resolve with: favor <card name>",
			state.Pending.Target, state.Pending.Requester)))
		b.WriteByte('\n')
	}
	if state.Ended {
		b.WriteString(WinnerStyle.Render("Game over"))
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderPending shows the choices available to resolve a favor
func RenderPending(p *game.PendingActionView) string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(WarningStyle.Render(fmt.Sprintf("%s demands a card from %s", p.Requester, p.Target)))
	b.WriteByte('\n')
	b.WriteString(InfoStyle.Render("  choices: " + strings.Join(p.Cards, ", ")))
	b.WriteByte('\n')
	return b.String()
}
