package domain

// statemachine.go implements the phase transition table in one place:
// deal -> bidding-round-1 -> bidding-round-2 -> dealer-discard -> playing
// -> hand-over/game-over. Every exported function here validates the
// acting seat and the phase guard before mutating room, mirroring how
// the teacher's room actor gates each handleX function on phase/lock
// before calling into its draft-state mutators.

// StartMatch deals the first hand of a fresh match. Dealer starts at
// seat 0; score is assumed already zero (RestartMatch zeroes it for a
// repeat match).
func StartMatch(room *Room) error {
	if !room.IsFull() {
		return PhaseErr("room is not full")
	}
	room.Status = StatusPlaying
	dealHand(room, 0, 1)
	return nil
}

// StartNextHand deals the next hand after a hand-over, rotating the
// dealer clockwise from the previous dealer.
func StartNextHand(room *Room) error {
	if room.Game == nil || room.Game.Phase != PhaseHandOver {
		return PhaseErr("no hand is awaiting start")
	}
	nextDealer := NextSeat(room.Game.DealerSeat)
	dealHand(room, nextDealer, room.Game.HandNumber+1)
	return nil
}

// RestartMatch zeroes the score and deals a fresh first hand after a
// game-over.
func RestartMatch(room *Room) error {
	if room.Game == nil || room.Game.Phase != PhaseGameOver {
		return PhaseErr("match is not over")
	}
	room.Score = Score{}
	room.Status = StatusPlaying
	dealHand(room, NextSeat(room.Game.DealerSeat), 1)
	return nil
}

func dealHand(room *Room, dealerSeat, handNumber int) {
	deck := NewDeck()
	Shuffle(deck)

	for _, p := range room.Players {
		p.Hand = make([]Card, 0, 5)
	}
	for i := 0; i < 5; i++ {
		for seat := 0; seat < 4; seat++ {
			p := room.PlayerBySeat(seat)
			card := deck[0]
			deck = deck[1:]
			if p != nil {
				p.Hand = append(p.Hand, card)
			}
		}
	}
	upcard := deck[0]
	kitty := append([]Card(nil), deck[1:4]...)

	room.Game = &GameState{
		Phase:          PhaseBiddingRound1,
		DealerSeat:     dealerSeat,
		TurnSeat:       NextSeat(dealerSeat),
		Upcard:         &upcard,
		Kitty:          kitty,
		SittingOutSeat: -1,
		HandNumber:     handNumber,
	}
}

func seatFor(room *Room, playerID string) (int, *Player, error) {
	p := room.PlayerByID(playerID)
	if p == nil {
		return -1, nil, Validation("unknown player")
	}
	return p.SeatIndex, p, nil
}

func requireTurn(g *GameState, seat int) error {
	if g.TurnSeat != seat {
		return ErrNotYourTurn
	}
	return nil
}

// Pass handles the "pass" action in either bidding round.
func Pass(room *Room, playerID string) error {
	g := room.Game
	if g == nil {
		return ErrWrongPhase
	}
	seat, _, err := seatFor(room, playerID)
	if err != nil {
		return err
	}
	if err := requireTurn(g, seat); err != nil {
		return err
	}

	switch g.Phase {
	case PhaseBiddingRound1:
		if seat == g.DealerSeat {
			g.BlockedSuit = g.Upcard.Suit
			g.Phase = PhaseBiddingRound2
			g.TurnSeat = NextSeat(g.DealerSeat)
			return nil
		}
		g.TurnSeat = NextSeat(seat)
		return nil
	case PhaseBiddingRound2:
		if seat == g.DealerSeat {
			// screw-the-dealer is explicitly OFF: redeal with the next dealer.
			dealHand(room, NextSeat(g.DealerSeat), g.HandNumber)
			return nil
		}
		g.TurnSeat = NextSeat(seat)
		return nil
	default:
		return ErrWrongPhase
	}
}

// OrderUp handles round-1 "order-up[alone]".
func OrderUp(room *Room, playerID string, alone bool) error {
	g := room.Game
	if g == nil || g.Phase != PhaseBiddingRound1 {
		return ErrWrongPhase
	}
	seat, player, err := seatFor(room, playerID)
	if err != nil {
		return err
	}
	if err := requireTurn(g, seat); err != nil {
		return err
	}
	if g.Upcard == nil {
		return ErrWrongPhase
	}

	dealer := room.PlayerBySeat(g.DealerSeat)
	dealer.Hand = append(dealer.Hand, *g.Upcard)
	g.Trump = g.Upcard.Suit
	g.Upcard = nil
	g.MakerTeam = Team(seat)
	g.CalledByPlayerID = player.ID
	applyLoner(g, seat, alone)
	g.Phase = PhaseDealerDiscard
	g.TurnSeat = g.DealerSeat
	return nil
}

// ChooseTrump handles round-2 "choose-trump{suit, alone?}".
func ChooseTrump(room *Room, playerID string, suit Suit, alone bool) error {
	g := room.Game
	if g == nil || g.Phase != PhaseBiddingRound2 {
		return ErrWrongPhase
	}
	if !suit.Valid() {
		return ErrInvalidSuit
	}
	seat, player, err := seatFor(room, playerID)
	if err != nil {
		return err
	}
	if err := requireTurn(g, seat); err != nil {
		return err
	}
	if suit == g.BlockedSuit {
		return ErrBlockedSuit
	}

	g.Trump = suit
	g.MakerTeam = Team(seat)
	g.CalledByPlayerID = player.ID
	applyLoner(g, seat, alone)
	g.Phase = PhasePlaying
	g.TurnSeat = g.NextActiveSeat(g.DealerSeat)
	return nil
}

func applyLoner(g *GameState, callerSeat int, alone bool) {
	g.SittingOutSeat = -1
	g.GoingAlonePlayerID = ""
	if alone {
		g.SittingOutSeat = PartnerSeat(callerSeat)
		g.GoingAlonePlayerID = g.CalledByPlayerID
	}
}

// Discard handles the dealer's "discard{cardId}" in dealer-discard phase.
func Discard(room *Room, playerID, cardID string) error {
	g := room.Game
	if g == nil || g.Phase != PhaseDealerDiscard {
		return ErrWrongPhase
	}
	seat, player, err := seatFor(room, playerID)
	if err != nil {
		return err
	}
	if seat != g.DealerSeat {
		return ErrNotYourTurn
	}
	idx := FindCard(player.Hand, cardID)
	if idx < 0 {
		return ErrInvalidCard
	}
	player.Hand = RemoveCard(player.Hand, idx)
	g.Phase = PhasePlaying
	g.TurnSeat = g.NextActiveSeat(g.DealerSeat)
	return nil
}

// LegalPlaysFor returns the legal plays for playerID given the current
// trick, or nil if it isn't their turn to play.
func LegalPlaysFor(room *Room, playerID string) []Card {
	g := room.Game
	if g == nil || g.Phase != PhasePlaying {
		return nil
	}
	seat, player, err := seatFor(room, playerID)
	if err != nil || g.TurnSeat != seat {
		return nil
	}
	return LegalPlays(player.Hand, g.CurrentTrick, g.Trump)
}

// PlayCard handles "play-card{cardId}" in the playing phase.
func PlayCard(room *Room, playerID, cardID string) error {
	g := room.Game
	if g == nil || g.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	seat, player, err := seatFor(room, playerID)
	if err != nil {
		return err
	}
	if err := requireTurn(g, seat); err != nil {
		return err
	}
	idx := FindCard(player.Hand, cardID)
	if idx < 0 {
		return ErrInvalidCard
	}
	card := player.Hand[idx]
	legal := LegalPlays(player.Hand, g.CurrentTrick, g.Trump)
	if FindCard(legal, cardID) < 0 {
		return ErrMustFollowSuit
	}

	player.Hand = RemoveCard(player.Hand, idx)
	g.CurrentTrick = append(g.CurrentTrick, TrickPlay{PlayerID: player.ID, SeatIndex: seat, Card: card})

	if len(g.CurrentTrick) < g.ActiveSeatCount() {
		g.TurnSeat = g.NextActiveSeat(seat)
		return nil
	}

	winner := TrickWinnerSeat(g.CurrentTrick, g.Trump)
	g.CompletedTricks = append(g.CompletedTricks, CompletedTrick{
		Index:      g.TrickIndex,
		WinnerSeat: winner,
		Cards:      g.CurrentTrick,
	})
	g.TrickIndex++
	g.CurrentTrick = nil
	g.TurnSeat = winner

	if len(g.CompletedTricks) == 5 {
		finalizeHand(room)
	}
	return nil
}

func finalizeHand(room *Room) {
	g := room.Game
	makerTricks, defenderTricks := 0, 0
	for _, t := range g.CompletedTricks {
		if Team(t.WinnerSeat) == g.MakerTeam {
			makerTricks++
		} else {
			defenderTricks++
		}
	}

	defenderTeam := 1 - g.MakerTeam
	var points, awardedTo int
	switch {
	case makerTricks <= 2:
		points, awardedTo = 2, defenderTeam
	case makerTricks == 5 && g.IsGoingAlone():
		points, awardedTo = 4, g.MakerTeam
	case makerTricks == 5:
		points, awardedTo = 2, g.MakerTeam
	default: // 3 or 4
		points, awardedTo = 1, g.MakerTeam
	}

	g.HandSummary = &HandSummary{
		MakerTeam:      g.MakerTeam,
		MakerTricks:    makerTricks,
		DefenderTricks: defenderTricks,
		PointsAwarded:  points,
		AwardedTo:      awardedTo,
	}

	if awardedTo == 0 {
		room.Score.Team0 += points
	} else {
		room.Score.Team1 += points
	}

	if room.Score.Team0 >= TargetScore || room.Score.Team1 >= TargetScore {
		g.Phase = PhaseGameOver
	} else {
		g.Phase = PhaseHandOver
	}
}
