package bot

import (
	"math/rand"

	"euchre-server/internal/domain"
)

// decide.go is the bot engine's entry point: given a room whose turnSeat
// is a bot, produce exactly one action appropriate to the current phase.
// The auto-advance scheduler is the only caller; it translates the
// returned Action into the matching domain state-machine call.

// ActionKind names the wire action the bot has chosen to take.
type ActionKind string

const (
	ActionPass        ActionKind = "pass"
	ActionOrderUp     ActionKind = "order-up"
	ActionChooseTrump ActionKind = "choose-trump"
	ActionDiscard     ActionKind = "discard"
	ActionPlayCard    ActionKind = "play-card"
)

// Action is the bot's chosen move, generic over phase.
type Action struct {
	Kind   ActionKind
	Suit   domain.Suit
	Alone  bool
	CardID string
}

// Act inspects room.Game.Phase and returns the bot's move for botSeat.
func Act(room *domain.Room, botSeat int, settings Settings, rng *rand.Rand) Action {
	g := room.Game
	switch g.Phase {
	case domain.PhaseBiddingRound1:
		return decideRound1(room, botSeat, settings, rng)
	case domain.PhaseBiddingRound2:
		return decideRound2(room, botSeat, settings, rng)
	case domain.PhaseDealerDiscard:
		return decideDiscard(room, botSeat, settings, rng)
	case domain.PhasePlaying:
		return decidePlay(room, botSeat, settings, rng)
	default:
		return Action{Kind: ActionPass}
	}
}

// buildNode determinizes opponent hands for one sample and returns a
// simNode seeded with the bot's real hand plus the sample, ready to
// search from turnSeat.
func buildNode(room *domain.Room, botSeat int, rng *rand.Rand) *simNode {
	g := room.Game
	det := Determinize(room, botSeat, rng)
	hands := make(map[int][]domain.Card, 4)
	for seat := 0; seat < 4; seat++ {
		if !g.IsActiveSeat(seat) {
			continue
		}
		if seat == botSeat {
			hands[seat] = append([]domain.Card(nil), room.PlayerBySeat(seat).Hand...)
			continue
		}
		hands[seat] = det.Hands[seat]
	}
	return &simNode{
		hands:        hands,
		trump:        g.Trump,
		currentTrick: append([]domain.TrickPlay(nil), g.CurrentTrick...),
		sittingOut:   g.SittingOutSeat,
		tricksWon:    completedTeamTricks(g),
	}
}

func completedTeamTricks(g *domain.GameState) [2]int {
	var t [2]int
	for _, trick := range g.CompletedTricks {
		t[domain.Team(trick.WinnerSeat)]++
	}
	return t
}

// decidePlay runs the sampled alpha-beta search over every legal card and
// returns the highest-scoring one, with the difficulty's chance of
// returning a uniformly random legal move instead.
func decidePlay(room *domain.Room, botSeat int, settings Settings, rng *rand.Rand) Action {
	g := room.Game
	hand := room.PlayerBySeat(botSeat).Hand
	legal := domain.LegalPlays(hand, g.CurrentTrick, g.Trump)
	if len(legal) == 0 {
		return Action{Kind: ActionPass}
	}
	if rng.Float64() < settings.RandomMoveRate {
		return Action{Kind: ActionPlayCard, CardID: legal[rng.Intn(len(legal))].ID}
	}

	botTeam := domain.Team(botSeat)
	totals := make(map[string]float64, len(legal))
	for i := 0; i < settings.SampleCount; i++ {
		base := buildNode(room, botSeat, rng)
		for _, card := range legal {
			child := base.clone()
			idx := domain.FindCard(child.hands[botSeat], card.ID)
			child.hands[botSeat] = removeCardAt(child.hands[botSeat], idx)
			child.currentTrick = append(child.currentTrick, domain.TrickPlay{SeatIndex: botSeat, Card: card})

			nextSeat := child.nextActiveSeat(botSeat)
			if len(child.currentTrick) >= child.activeSeatCount() {
				winner := domain.TrickWinnerSeat(child.currentTrick, child.trump)
				child.tricksWon[domain.Team(winner)]++
				child.currentTrick = nil
				nextSeat = winner
			}

			totals[card.ID] += alphaBeta(child, settings.SearchDepth-1, negInfF, posInfF, nextSeat, botTeam)
		}
	}

	best := legal[0]
	bestScore := negInfF
	for _, card := range legal {
		if s := totals[card.ID]; s > bestScore {
			bestScore = s
			best = card
		}
	}
	return Action{Kind: ActionPlayCard, CardID: best.ID}
}

// decideDiscard treats every card in the dealer's 6-card hand as a
// discard candidate and discards the one whose absence maximizes the
// summed search score of the remaining hand. On equal totals the card
// earlier in the hand is discarded.
func decideDiscard(room *domain.Room, botSeat int, settings Settings, rng *rand.Rand) Action {
	g := room.Game
	hand := room.PlayerBySeat(botSeat).Hand
	botTeam := domain.Team(botSeat)

	bestCard := hand[0]
	bestScore := negInfF
	for _, candidate := range hand {
		remaining := make([]domain.Card, 0, len(hand)-1)
		for _, c := range hand {
			if c.ID != candidate.ID {
				remaining = append(remaining, c)
			}
		}
		var total float64
		for i := 0; i < settings.SampleCount; i++ {
			base := buildNode(room, botSeat, rng)
			base.hands[botSeat] = append([]domain.Card(nil), remaining...)
			total += alphaBeta(base, settings.SearchDepth, negInfF, posInfF, g.DealerSeat, botTeam)
		}
		if total > bestScore {
			bestScore = total
			bestCard = candidate
		}
	}
	return Action{Kind: ActionDiscard, CardID: bestCard.ID}
}

// decideRound1 considers only the upcard's suit (the sole legal round-1
// call). It accepts order-up if the resulting search score clears the
// difficulty's bid threshold, going alone if it clears threshold+80.
func decideRound1(room *domain.Room, botSeat int, settings Settings, rng *rand.Rand) Action {
	g := room.Game
	score := scoreCall(room, botSeat, g.Upcard.Suit, settings, rng)
	if score < settings.BidThreshold {
		return Action{Kind: ActionPass}
	}
	return Action{Kind: ActionOrderUp, Alone: score >= settings.BidThreshold+80}
}

// decideRound2 scores every non-blocked suit and calls the best one if it
// clears the bid threshold.
func decideRound2(room *domain.Room, botSeat int, settings Settings, rng *rand.Rand) Action {
	g := room.Game
	var bestSuit domain.Suit
	bestScore := negInfF
	for _, suit := range []domain.Suit{domain.Clubs, domain.Diamonds, domain.Hearts, domain.Spades} {
		if suit == g.BlockedSuit {
			continue
		}
		score := scoreCall(room, botSeat, suit, settings, rng)
		if score > bestScore {
			bestScore = score
			bestSuit = suit
		}
	}
	if bestScore < settings.BidThreshold {
		return Action{Kind: ActionPass}
	}
	return Action{Kind: ActionChooseTrump, Suit: bestSuit, Alone: bestScore >= settings.BidThreshold+80}
}

// scoreCall estimates the value of naming suit as trump by running the
// sampled search from the seat after the dealer, with the bot's hand
// held fixed and trump set hypothetically.
func scoreCall(room *domain.Room, botSeat int, suit domain.Suit, settings Settings, rng *rand.Rand) float64 {
	g := room.Game
	botTeam := domain.Team(botSeat)
	startSeat := g.NextActiveSeat(g.DealerSeat)

	var total float64
	for i := 0; i < settings.SampleCount; i++ {
		node := buildNode(room, botSeat, rng)
		node.trump = suit
		total += alphaBeta(node, settings.SearchDepth, negInfF, posInfF, startSeat, botTeam)
	}
	return total / float64(settings.SampleCount)
}
