package bot

import (
	"math/rand"

	"euchre-server/internal/domain"
)

// Determinization is one sampled completion of the hidden information: a
// guess at what the three other seats hold, consistent with known hand
// sizes and any suit voids inferred from play so far. Per the design
// note, opponents' hands are never represented as "nullable cards" in
// the real domain.Room - this is a disposable, search-only artifact.
type Determinization struct {
	Hands map[int][]domain.Card // seatIndex -> sampled hand, for every active seat except the observer
}

// cardKey identifies a card by its deck identity (suit, rank) rather
// than its per-deal ID, since two cards dealt from different Shuffle
// calls never share an ID even when they're the same physical card.
type cardKey struct {
	suit domain.Suit
	rank domain.Rank
}

func keyOf(c domain.Card) cardKey {
	return cardKey{suit: c.Suit, rank: c.Rank}
}

// inferVoidSuits walks completed tricks and marks, per seat, every
// effective suit that seat failed to follow despite a trick requiring it.
func inferVoidSuits(g *domain.GameState) map[int]map[domain.Suit]bool {
	voids := make(map[int]map[domain.Suit]bool)
	for _, trick := range g.CompletedTricks {
		if len(trick.Cards) == 0 {
			continue
		}
		leadSuit := domain.EffectiveSuit(trick.Cards[0].Card, g.Trump)
		for _, play := range trick.Cards[1:] {
			if domain.EffectiveSuit(play.Card, g.Trump) != leadSuit {
				if voids[play.SeatIndex] == nil {
					voids[play.SeatIndex] = make(map[domain.Suit]bool)
				}
				voids[play.SeatIndex][leadSuit] = true
			}
		}
	}
	return voids
}

// Determinize samples one consistent completion of the unseen cards into
// the three other seats, respecting their known hand sizes and inferred
// voids. Greedy, largest-hand-first; relaxes void constraints rather than
// failing when an exact assignment is impossible.
func Determinize(room *domain.Room, observerSeat int, rng *rand.Rand) Determinization {
	g := room.Game
	// domain.NewDeck mints a fresh uuid per card, so a freshly built deck
	// never shares an ID with the cards actually dealt this hand - seen
	// must be keyed by (suit, rank) instead, the deck's true identity.
	seen := make(map[cardKey]bool)
	observer := room.PlayerBySeat(observerSeat)
	for _, c := range observer.Hand {
		seen[keyOf(c)] = true
	}
	for _, t := range g.CompletedTricks {
		for _, play := range t.Cards {
			seen[keyOf(play.Card)] = true
		}
	}
	for _, play := range g.CurrentTrick {
		seen[keyOf(play.Card)] = true
	}

	var unseen []domain.Card
	for _, c := range domain.NewDeck() {
		if !seen[keyOf(c)] {
			unseen = append(unseen, c)
		}
	}
	rng.Shuffle(len(unseen), func(i, j int) { unseen[i], unseen[j] = unseen[j], unseen[i] })

	type seatNeed struct {
		seat int
		size int
	}
	var needs []seatNeed
	for seat := 0; seat < 4; seat++ {
		if seat == observerSeat || !g.IsActiveSeat(seat) {
			continue
		}
		p := room.PlayerBySeat(seat)
		if p == nil {
			continue
		}
		needs = append(needs, seatNeed{seat: seat, size: len(p.Hand)})
	}
	// largest-first
	for i := 0; i < len(needs); i++ {
		for j := i + 1; j < len(needs); j++ {
			if needs[j].size > needs[i].size {
				needs[i], needs[j] = needs[j], needs[i]
			}
		}
	}

	voids := inferVoidSuits(g)
	result := Determinization{Hands: make(map[int][]domain.Card)}

	for _, n := range needs {
		hand := make([]domain.Card, 0, n.size)
		seatVoids := voids[n.seat]
		for len(hand) < n.size && len(unseen) > 0 {
			idx := pickNonVoidIndex(unseen, g.Trump, seatVoids)
			hand = append(hand, unseen[idx])
			unseen = append(unseen[:idx], unseen[idx+1:]...)
		}
		result.Hands[n.seat] = hand
	}
	return result
}

// pickNonVoidIndex returns the index of the first card in pool whose
// effective suit is not void for seatVoids, or 0 (relax) if every
// remaining card conflicts.
func pickNonVoidIndex(pool []domain.Card, trump domain.Suit, seatVoids map[domain.Suit]bool) int {
	if len(seatVoids) == 0 {
		return 0
	}
	for i, c := range pool {
		if !seatVoids[domain.EffectiveSuit(c, trump)] {
			return i
		}
	}
	return 0
}
