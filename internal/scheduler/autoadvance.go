package scheduler

import (
	"math/rand"
	"time"

	"euchre-server/internal/bot"
	"euchre-server/internal/domain"
)

// autoadvance.go drives the per-room auto-advance pass described in
// spec §4.4. It never mutates a room itself: Decide inspects state and
// returns a Decision describing how long to wait and what single action
// to apply next; the caller waits out Delay and then calls Apply. The
// room actor in internal/ws waits on its own goroutine, so commands for
// that room queue until the pass ends; other rooms are not affected.
// Grounded on LarryBui-ThirteenV4's processBots (auto-act loop paced by
// a delay, re-entered on a tick).

// MaxIterations bounds a single auto-advance invocation, guarding
// against an infinite loop on malformed state.
const MaxIterations = 64

// Config carries the config-sourced pacing values the scheduler does not
// own outright, per DESIGN.md's decision to source them from
// internal/config rather than bury literals here.
type Config struct {
	PostTrickPauseMs int
	HandOverPauseMs  int
}

// Decision is the result of one Decide call: either Stop, or a Delay to
// wait before invoking Apply exactly once.
type Decision struct {
	Stop  bool
	Delay time.Duration
	Apply func(room *domain.Room) error
}

// Decide inspects room and returns the next auto-advance step, or
// Stop=true if the scheduler should halt (turnSeat is a connected human,
// or the match has ended). rng drives the bot engine's sampling and
// random-move fallback; pass a per-call *rand.Rand for deterministic
// tests.
func Decide(room *domain.Room, cfg Config, rng *rand.Rand) Decision {
	g := room.Game
	if g == nil || g.Phase == domain.PhaseGameOver {
		return Decision{Stop: true}
	}

	if g.Phase == domain.PhaseHandOver {
		if !anyBotSeated(room) {
			return Decision{Stop: true}
		}
		return Decision{
			Delay: handOverPause(cfg.HandOverPauseMs),
			Apply: func(room *domain.Room) error { return domain.StartNextHand(room) },
		}
	}

	turnPlayer := room.PlayerBySeat(g.TurnSeat)
	if turnPlayer == nil {
		return Decision{Stop: true}
	}
	if turnPlayer.Connected && !turnPlayer.IsBot {
		return Decision{Stop: true}
	}

	delay := thinkDelay(string(room.BotDifficulty), turnPlayer.IsBot)
	if justResolvedTrick(g) {
		delay = postTrickPause(delay, cfg.PostTrickPauseMs)
	}

	seat := g.TurnSeat
	playerID := turnPlayer.ID
	return Decision{
		Delay: delay,
		Apply: func(room *domain.Room) error {
			if turnPlayer.IsBot {
				return applyBotAction(room, seat, playerID, rng)
			}
			return applyDisconnectedHumanFallback(room, playerID)
		},
	}
}

func anyBotSeated(room *domain.Room) bool {
	for _, p := range room.Players {
		if p.IsBot {
			return true
		}
	}
	return false
}

// justResolvedTrick reports whether the current trick was just resolved:
// no trick in progress, at least one completed trick, still playing.
func justResolvedTrick(g *domain.GameState) bool {
	return g.Phase == domain.PhasePlaying && len(g.CurrentTrick) == 0 && len(g.CompletedTricks) > 0
}

// applyBotAction runs the bot engine for seat and translates the result
// into the matching domain state-machine call.
func applyBotAction(room *domain.Room, seat int, playerID string, rng *rand.Rand) error {
	settings := bot.SettingsFor(room.BotDifficulty)
	action := bot.Act(room, seat, settings, rng)

	switch action.Kind {
	case bot.ActionPass:
		return domain.Pass(room, playerID)
	case bot.ActionOrderUp:
		return domain.OrderUp(room, playerID, action.Alone)
	case bot.ActionChooseTrump:
		return domain.ChooseTrump(room, playerID, action.Suit, action.Alone)
	case bot.ActionDiscard:
		return domain.Discard(room, playerID, action.CardID)
	case bot.ActionPlayCard:
		return domain.PlayCard(room, playerID, action.CardID)
	default:
		return domain.Validation("bot engine returned an unrecognized action")
	}
}

// applyDisconnectedHumanFallback implements the deterministic policy for
// an absent human: pass in either bidding round, discard the first card
// in hand, play the first legal card.
func applyDisconnectedHumanFallback(room *domain.Room, playerID string) error {
	g := room.Game
	switch g.Phase {
	case domain.PhaseBiddingRound1, domain.PhaseBiddingRound2:
		return domain.Pass(room, playerID)
	case domain.PhaseDealerDiscard:
		player := room.PlayerByID(playerID)
		if player == nil || len(player.Hand) == 0 {
			return domain.ErrInvalidCard
		}
		return domain.Discard(room, playerID, player.Hand[0].ID)
	case domain.PhasePlaying:
		legal := domain.LegalPlaysFor(room, playerID)
		if len(legal) == 0 {
			return domain.ErrInvalidCard
		}
		return domain.PlayCard(room, playerID, legal[0].ID)
	default:
		return domain.ErrWrongPhase
	}
}
