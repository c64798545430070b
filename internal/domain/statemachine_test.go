package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoom() *Room {
	room := NewRoom("r1", "tok", DifficultyMedium)
	for seat := 0; seat < 4; seat++ {
		room.Players = append(room.Players, &Player{
			ID:        seatPlayerID(seat),
			Name:      seatPlayerID(seat),
			SeatIndex: seat,
			Connected: true,
		})
	}
	return room
}

func seatPlayerID(seat int) string {
	return []string{"p0", "p1", "p2", "p3"}[seat]
}

func biddingRound1State(dealer int) *GameState {
	upcard := Card{ID: "up", Suit: Hearts, Rank: Nine}
	return &GameState{
		Phase:          PhaseBiddingRound1,
		DealerSeat:     dealer,
		TurnSeat:       NextSeat(dealer),
		Upcard:         &upcard,
		SittingOutSeat: -1,
	}
}

func TestOrderUpMovesUpcardSetsTrumpAndAdvancesToDealerDiscard(t *testing.T) {
	room := newTestRoom()
	room.Game = biddingRound1State(3)
	dealerHandSizeBefore := len(room.PlayerBySeat(3).Hand)

	err := OrderUp(room, "p0", false)
	require.NoError(t, err)

	assert.Equal(t, PhaseDealerDiscard, room.Game.Phase)
	assert.Equal(t, Hearts, room.Game.Trump)
	assert.Equal(t, 0, room.Game.MakerTeam)
	assert.Equal(t, 3, room.Game.TurnSeat)
	assert.Nil(t, room.Game.Upcard)
	assert.Len(t, room.PlayerBySeat(3).Hand, dealerHandSizeBefore+1)
}

func TestOrderUpAloneSitsOutPartner(t *testing.T) {
	room := newTestRoom()
	room.Game = biddingRound1State(3)

	require.NoError(t, OrderUp(room, "p0", true))

	assert.Equal(t, PartnerSeat(0), room.Game.SittingOutSeat)
	assert.Equal(t, "p0", room.Game.GoingAlonePlayerID)
	assert.Equal(t, 3, room.Game.ActiveSeatCount())
}

func TestNotYourTurnRejected(t *testing.T) {
	room := newTestRoom()
	room.Game = biddingRound1State(3)

	err := OrderUp(room, "p1", false)
	assert.ErrorIs(t, err, ErrNotYourTurn)
}

func TestScrewTheDealerOffRedealsOnAllPass(t *testing.T) {
	room := newTestRoom()
	room.Game = &GameState{
		Phase:          PhaseBiddingRound2,
		DealerSeat:     3,
		TurnSeat:       3,
		BlockedSuit:    Diamonds,
		SittingOutSeat: -1,
		HandNumber:     1,
	}

	err := Pass(room, "p3")
	require.NoError(t, err)

	assert.Equal(t, PhaseBiddingRound1, room.Game.Phase)
	assert.Equal(t, 0, room.Game.DealerSeat) // rotated clockwise from 3
	assert.NotNil(t, room.Game.Upcard)
}

func TestChooseTrumpRejectsBlockedSuit(t *testing.T) {
	room := newTestRoom()
	room.Game = &GameState{
		Phase:          PhaseBiddingRound2,
		DealerSeat:     3,
		TurnSeat:       2,
		BlockedSuit:    Diamonds,
		SittingOutSeat: -1,
	}

	err := ChooseTrump(room, "p2", Diamonds, false)
	assert.ErrorIs(t, err, ErrBlockedSuit)
	assert.Equal(t, PhaseBiddingRound2, room.Game.Phase)
	assert.Equal(t, 2, room.Game.TurnSeat)
}

func TestChooseTrumpAloneSetsThreeActiveSeats(t *testing.T) {
	room := newTestRoom()
	room.Game = &GameState{
		Phase:          PhaseBiddingRound2,
		DealerSeat:     3,
		TurnSeat:       2,
		BlockedSuit:    Diamonds,
		SittingOutSeat: -1,
	}

	require.NoError(t, ChooseTrump(room, "p2", Spades, true))

	assert.Equal(t, PhasePlaying, room.Game.Phase)
	assert.Equal(t, Spades, room.Game.Trump)
	assert.Equal(t, 0, room.Game.SittingOutSeat) // partner of seat 2
	assert.Equal(t, 3, room.Game.ActiveSeatCount())
	assert.NotEqual(t, room.Game.SittingOutSeat, room.Game.TurnSeat)
}

func TestPlayCardMustFollowSuit(t *testing.T) {
	room := newTestRoom()
	room.Game = &GameState{
		Phase:          PhasePlaying,
		DealerSeat:     3,
		TurnSeat:       1,
		Trump:          Spades,
		SittingOutSeat: -1,
		CurrentTrick:   []TrickPlay{{SeatIndex: 0, Card: Card{ID: "lead", Suit: Hearts, Rank: Nine}}},
	}
	p1 := room.PlayerBySeat(1)
	p1.Hand = []Card{
		{ID: "hearts-ace", Suit: Hearts, Rank: Ace},
		{ID: "clubs-king", Suit: Clubs, Rank: King},
	}

	err := PlayCard(room, "p1", "clubs-king")
	assert.ErrorIs(t, err, ErrMustFollowSuit)
	assert.Len(t, p1.Hand, 2)
}

func TestPlayCardResolvesTrickAndAdvancesTurnToWinner(t *testing.T) {
	room := newTestRoom()
	room.Game = &GameState{
		Phase:          PhasePlaying,
		DealerSeat:     3,
		TurnSeat:       3,
		Trump:          Spades,
		MakerTeam:      0,
		SittingOutSeat: -1,
		CurrentTrick: []TrickPlay{
			{SeatIndex: 0, Card: Card{ID: "c0", Suit: Hearts, Rank: Nine}},
			{SeatIndex: 1, Card: Card{ID: "c1", Suit: Hearts, Rank: King}},
			{SeatIndex: 2, Card: Card{ID: "c2", Suit: Hearts, Rank: Ten}},
		},
	}
	p3 := room.PlayerBySeat(3)
	p3.Hand = []Card{{ID: "c3", Suit: Hearts, Rank: Ace}}

	require.NoError(t, PlayCard(room, "p3", "c3"))

	require.Len(t, room.Game.CompletedTricks, 1)
	assert.Equal(t, 3, room.Game.CompletedTricks[0].WinnerSeat)
	assert.Equal(t, 3, room.Game.TurnSeat)
	assert.Empty(t, room.Game.CurrentTrick)
}

func TestFinalizeHandEuchresMakersAtTwoOrFewerTricks(t *testing.T) {
	room := newTestRoom()
	room.Game = &GameState{
		MakerTeam: 0,
		CompletedTricks: []CompletedTrick{
			{WinnerSeat: 1}, {WinnerSeat: 3}, {WinnerSeat: 1},
			{WinnerSeat: 0}, {WinnerSeat: 2},
		},
	}

	finalizeHand(room)

	require.NotNil(t, room.Game.HandSummary)
	assert.Equal(t, 2, room.Game.HandSummary.MakerTricks)
	assert.Equal(t, 3, room.Game.HandSummary.DefenderTricks)
	assert.Equal(t, 2, room.Game.HandSummary.PointsAwarded)
	assert.Equal(t, 1, room.Game.HandSummary.AwardedTo)
	assert.Equal(t, 2, room.Score.Team1)
	assert.Equal(t, PhaseHandOver, room.Game.Phase)
}

func TestFinalizeHandLonerSweepAwardsFourPoints(t *testing.T) {
	room := newTestRoom()
	room.Game = &GameState{
		MakerTeam:          0,
		GoingAlonePlayerID: "p0",
		CompletedTricks: []CompletedTrick{
			{WinnerSeat: 0}, {WinnerSeat: 0}, {WinnerSeat: 0},
			{WinnerSeat: 2}, {WinnerSeat: 0},
		},
	}

	finalizeHand(room)

	assert.Equal(t, 4, room.Game.HandSummary.PointsAwarded)
	assert.Equal(t, 0, room.Game.HandSummary.AwardedTo)
	assert.Equal(t, 4, room.Score.Team0)
}

func TestFinalizeHandEndsMatchAtTargetScore(t *testing.T) {
	room := newTestRoom()
	room.Score = Score{Team0: 8}
	room.Game = &GameState{
		MakerTeam:          0,
		GoingAlonePlayerID: "p0",
		CompletedTricks: []CompletedTrick{
			{WinnerSeat: 0}, {WinnerSeat: 0}, {WinnerSeat: 0},
			{WinnerSeat: 0}, {WinnerSeat: 0},
		},
	}

	finalizeHand(room)

	assert.Equal(t, 12, room.Score.Team0)
	assert.Equal(t, PhaseGameOver, room.Game.Phase)
}
