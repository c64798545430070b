package ws

import "euchre-server/internal/domain"

// buildSnapshot renders room from playerID's point of view: every seat's
// public fields, but only playerID's own hand and only playerID's own
// legalPlays, per spec §4.5's "other players' hands are never revealed."
func buildSnapshot(room *domain.Room, playerID string) RoomSnapshot {
	players := make([]PlayerView, 0, len(room.Players))
	for _, p := range room.Players {
		players = append(players, PlayerView{
			ID:        p.ID,
			Name:      p.Name,
			SeatIndex: p.SeatIndex,
			Connected: p.Connected,
			IsBot:     p.IsBot,
			HandCount: len(p.Hand),
		})
	}

	snap := RoomSnapshot{
		RoomName:      room.Name,
		MaxPlayers:    room.MaxPlayers,
		Status:        room.Status,
		BotDifficulty: room.BotDifficulty,
		BotCount:      room.BotCount,
		Score:         room.Score,
		Players:       players,
		TargetScore:   domain.TargetScore,
	}

	if player := room.PlayerByID(playerID); player != nil {
		you := &YouView{
			PlayerID:  player.ID,
			SeatIndex: player.SeatIndex,
			Hand:      append([]domain.Card(nil), player.Hand...),
		}
		// Always surfaced to the creator rather than only on the very
		// first snapshot: simpler than tracking a one-time reveal, and
		// no less private since no other session's view ever carries it.
		if player.ID == room.CreatorPlayerID {
			you.CreatorToken = room.CreatorToken
		}
		snap.You = you
		snap.LegalPlays = domain.LegalPlaysFor(room, playerID)
	}

	if g := room.Game; g != nil {
		snap.Game = &GameView{
			Phase:              g.Phase,
			DealerSeat:         g.DealerSeat,
			TurnSeat:           g.TurnSeat,
			Upcard:             g.Upcard,
			KittySize:          len(g.Kitty),
			BlockedSuit:        g.BlockedSuit,
			Trump:              g.Trump,
			MakerTeam:          g.MakerTeam,
			CalledByPlayerID:   g.CalledByPlayerID,
			GoingAlonePlayerID: g.GoingAlonePlayerID,
			SittingOutSeat:     g.SittingOutSeat,
			CurrentTrick:       g.CurrentTrick,
			CompletedTricks:    g.CompletedTricks,
			TrickIndex:         g.TrickIndex,
			HandSummary:        g.HandSummary,
			HandNumber:         g.HandNumber,
		}
	}

	return snap
}
