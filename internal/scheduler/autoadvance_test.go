package scheduler

import (
	"math/rand"
	"testing"

	"euchre-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSchedulerTestRoom() *domain.Room {
	room := domain.NewRoom("sched-room", "tok", domain.DifficultyMedium)
	for seat := 0; seat < 4; seat++ {
		room.Players = append(room.Players, &domain.Player{
			ID:        seatID(seat),
			Name:      seatID(seat),
			SeatIndex: seat,
			Connected: true,
		})
	}
	return room
}

func seatID(seat int) string {
	return []string{"p0", "p1", "p2", "p3"}[seat]
}

func TestDecideStopsOnGameOver(t *testing.T) {
	room := newSchedulerTestRoom()
	room.Game = &domain.GameState{Phase: domain.PhaseGameOver}

	d := Decide(room, Config{}, rand.New(rand.NewSource(1)))
	assert.True(t, d.Stop)
}

func TestDecideStopsWhenTurnIsAConnectedHuman(t *testing.T) {
	room := newSchedulerTestRoom()
	room.Game = &domain.GameState{Phase: domain.PhaseBiddingRound1, TurnSeat: 0, SittingOutSeat: -1}

	d := Decide(room, Config{}, rand.New(rand.NewSource(1)))
	assert.True(t, d.Stop)
}

func TestDecideAppliesBotActionWhenTurnIsABot(t *testing.T) {
	room := newSchedulerTestRoom()
	room.PlayerBySeat(1).IsBot = true
	room.PlayerBySeat(1).Connected = true
	upcard := domain.Card{ID: "up", Suit: domain.Hearts, Rank: domain.Nine}
	room.Game = &domain.GameState{
		Phase:          domain.PhaseBiddingRound1,
		DealerSeat:     0,
		TurnSeat:       1,
		Upcard:         &upcard,
		SittingOutSeat: -1,
	}
	room.PlayerBySeat(1).Hand = []domain.Card{
		{ID: "c0", Suit: domain.Clubs, Rank: domain.Nine},
		{ID: "c1", Suit: domain.Diamonds, Rank: domain.Ten},
	}

	d := Decide(room, Config{}, rand.New(rand.NewSource(1)))
	require.False(t, d.Stop)
	require.NotNil(t, d.Apply)

	err := d.Apply(room)
	assert.NoError(t, err)
	// either passed (turn moved off seat 1) or ordered up (phase left round 1);
	// either way the bot actually acted instead of leaving state untouched.
	acted := room.Game.TurnSeat != 1 || room.Game.Phase != domain.PhaseBiddingRound1
	assert.True(t, acted)
}

func TestDecideFallsBackForADisconnectedHuman(t *testing.T) {
	room := newSchedulerTestRoom()
	room.PlayerBySeat(2).Connected = false
	room.Game = &domain.GameState{
		Phase:          domain.PhaseBiddingRound1,
		DealerSeat:     1,
		TurnSeat:       2,
		Upcard:         &domain.Card{ID: "up", Suit: domain.Hearts, Rank: domain.Nine},
		SittingOutSeat: -1,
	}

	d := Decide(room, Config{}, rand.New(rand.NewSource(1)))
	require.False(t, d.Stop)

	require.NoError(t, d.Apply(room))
	assert.Equal(t, domain.PhaseBiddingRound1, room.Game.Phase)
	assert.NotEqual(t, 2, room.Game.TurnSeat) // pass rotated the turn on
}

func TestDecideDealsNextHandAfterHandOverWithABotSeated(t *testing.T) {
	room := newSchedulerTestRoom()
	room.PlayerBySeat(3).IsBot = true
	room.Score = domain.Score{Team0: 2, Team1: 1}
	room.Game = &domain.GameState{Phase: domain.PhaseHandOver, DealerSeat: 0, HandNumber: 1}

	d := Decide(room, Config{HandOverPauseMs: 10}, rand.New(rand.NewSource(1)))
	require.False(t, d.Stop)
	require.NoError(t, d.Apply(room))
	assert.Equal(t, 1, room.Game.DealerSeat) // rotated to the next dealer
}

func TestDecideStopsAtHandOverWithNoBotsSeated(t *testing.T) {
	room := newSchedulerTestRoom()
	room.Game = &domain.GameState{Phase: domain.PhaseHandOver}

	d := Decide(room, Config{}, rand.New(rand.NewSource(1)))
	assert.True(t, d.Stop)
}
