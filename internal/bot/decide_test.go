package bot

import (
	"math/rand"
	"testing"

	"euchre-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBotTestRoom() *domain.Room {
	room := domain.NewRoom("bot-room", "tok", domain.DifficultyMedium)
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

func TestActPlayCardChoosesFromLegalPlays(t *testing.T) {
	room := newBotTestRoom()
	room.Game = &domain.GameState{
		Phase:          domain.PhasePlaying,
		DealerSeat:     3,
		TurnSeat:       1,
		Trump:          domain.Spades,
		SittingOutSeat: -1,
		CurrentTrick:   []domain.TrickPlay{{SeatIndex: 0, Card: domain.Card{ID: "lead", Suit: domain.Hearts, Rank: domain.Nine}}},
	}
	bot := room.PlayerBySeat(1)
	bot.Hand = []domain.Card{
		{ID: "hearts-ace", Suit: domain.Hearts, Rank: domain.Ace},
		{ID: "clubs-king", Suit: domain.Clubs, Rank: domain.King},
	}

	rng := rand.New(rand.NewSource(1))
	action := Act(room, 1, SettingsFor(domain.DifficultyEasy), rng)

	assert.Equal(t, ActionPlayCard, action.Kind)
	assert.Equal(t, "hearts-ace", action.CardID) // the only legal follow
}

func TestActPlayCardWithNoHandStopsRatherThanPanicking(t *testing.T) {
	room := newBotTestRoom()
	room.Game = &domain.GameState{
		Phase:          domain.PhasePlaying,
		DealerSeat:     3,
		TurnSeat:       1,
		Trump:          domain.Spades,
		SittingOutSeat: -1,
	}
	room.PlayerBySeat(1).Hand = nil

	rng := rand.New(rand.NewSource(1))
	action := Act(room, 1, SettingsFor(domain.DifficultyMedium), rng)

	assert.Equal(t, ActionPass, action.Kind)
}

func TestActDiscardReturnsACardFromTheDealersHand(t *testing.T) {
	room := newBotTestRoom()
	room.Game = &domain.GameState{
		Phase:          domain.PhaseDealerDiscard,
		DealerSeat:     3,
		TurnSeat:       3,
		Trump:          domain.Spades,
		SittingOutSeat: -1,
	}
	dealer := room.PlayerBySeat(3)
	dealer.Hand = []domain.Card{
		{ID: "c0", Suit: domain.Hearts, Rank: domain.Nine},
		{ID: "c1", Suit: domain.Clubs, Rank: domain.King},
		{ID: "c2", Suit: domain.Spades, Rank: domain.Jack},
	}

	rng := rand.New(rand.NewSource(7))
	action := Act(room, 3, SettingsFor(domain.DifficultyEasy), rng)

	require.Equal(t, ActionDiscard, action.Kind)
	found := false
	for _, c := range dealer.Hand {
		if c.ID == action.CardID {
			found = true
		}
	}
	assert.True(t, found, "discarded card must come from the dealer's own hand")
}

func TestActBiddingRound1ReturnsPassOrOrderUp(t *testing.T) {
	room := newBotTestRoom()
	upcard := domain.Card{ID: "up", Suit: domain.Spades, Rank: domain.Nine}
	room.Game = &domain.GameState{
		Phase:          domain.PhaseBiddingRound1,
		DealerSeat:     3,
		TurnSeat:       0,
		Upcard:         &upcard,
		SittingOutSeat: -1,
	}
	room.PlayerBySeat(0).Hand = []domain.Card{
		{ID: "right-bower", Suit: domain.Spades, Rank: domain.Jack},
		{ID: "left-bower", Suit: domain.Clubs, Rank: domain.Jack},
		{ID: "spades-ace", Suit: domain.Spades, Rank: domain.Ace},
		{ID: "spades-king", Suit: domain.Spades, Rank: domain.King},
		{ID: "spades-queen", Suit: domain.Spades, Rank: domain.Queen},
	}

	rng := rand.New(rand.NewSource(3))
	action := Act(room, 0, SettingsFor(domain.DifficultyHard), rng)

	assert.Contains(t, []ActionKind{ActionPass, ActionOrderUp}, action.Kind)
	if action.Kind == ActionOrderUp {
		assert.False(t, action.Suit != "" && action.Suit != domain.Spades)
	}
}

func TestActBiddingRound2NeverCallsTheBlockedSuit(t *testing.T) {
	room := newBotTestRoom()
	room.Game = &domain.GameState{
		Phase:          domain.PhaseBiddingRound2,
		DealerSeat:     3,
		TurnSeat:       2,
		BlockedSuit:    domain.Diamonds,
		SittingOutSeat: -1,
	}
	room.PlayerBySeat(2).Hand = []domain.Card{
		{ID: "c0", Suit: domain.Clubs, Rank: domain.Jack},
		{ID: "c1", Suit: domain.Clubs, Rank: domain.Ace},
		{ID: "c2", Suit: domain.Hearts, Rank: domain.King},
	}

	rng := rand.New(rand.NewSource(11))
	action := Act(room, 2, SettingsFor(domain.DifficultyMedium), rng)

	if action.Kind == ActionChooseTrump {
		assert.NotEqual(t, domain.Diamonds, action.Suit)
	} else {
		assert.Equal(t, ActionPass, action.Kind)
	}
}
