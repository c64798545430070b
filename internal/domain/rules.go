package domain

// rules.go is the pure-function rules kernel: bower identification,
// effective suit under trump, rank strength, legal plays, and trick
// resolution. Nothing here touches Room/GameState mutation or I/O.

// IsRightBower reports whether card is the jack of trump.
func IsRightBower(c Card, trump Suit) bool {
	return c.IsJack() && c.Suit == trump
}

// IsLeftBower reports whether card is the jack of trump's same-color suit.
func IsLeftBower(c Card, trump Suit) bool {
	return c.IsJack() && c.Suit == trump.sameColor()
}

// EffectiveSuit returns the suit a card counts as for following-suit and
// strength purposes, given trump. The left bower counts as trump.
func EffectiveSuit(c Card, trump Suit) Suit {
	if IsLeftBower(c, trump) {
		return trump
	}
	return c.Suit
}

// CardStrength returns a card's rank strength given the hand's trump and
// the effective suit of the trick's lead card. Higher wins.
func CardStrength(c Card, trump Suit, leadSuit Suit) int {
	if IsRightBower(c, trump) {
		return 100
	}
	if IsLeftBower(c, trump) {
		return 99
	}
	eff := EffectiveSuit(c, trump)
	if eff == trump {
		switch c.Rank {
		case Ace:
			return 98
		case King:
			return 97
		case Queen:
			return 96
		case Ten:
			return 95
		case Nine:
			return 94
		}
	}
	if eff == leadSuit {
		switch c.Rank {
		case Ace:
			return 60
		case King:
			return 59
		case Queen:
			return 58
		case Jack:
			return 57
		case Ten:
			return 56
		case Nine:
			return 55
		}
	}
	return 0
}

// LegalPlays returns the subset of hand that may legally be played,
// given the cards already played in the current trick and trump.
func LegalPlays(hand []Card, trick []TrickPlay, trump Suit) []Card {
	if len(trick) == 0 {
		return append([]Card(nil), hand...)
	}
	leadSuit := EffectiveSuit(trick[0].Card, trump)
	var followers []Card
	for _, c := range hand {
		if EffectiveSuit(c, trump) == leadSuit {
			followers = append(followers, c)
		}
	}
	if len(followers) > 0 {
		return followers
	}
	return append([]Card(nil), hand...)
}

// TrickWinnerSeat returns the seat index of the play with the highest
// rank strength in a completed (or in-progress) trick.
func TrickWinnerSeat(trick []TrickPlay, trump Suit) int {
	if len(trick) == 0 {
		return -1
	}
	leadSuit := EffectiveSuit(trick[0].Card, trump)
	bestIdx := 0
	bestStrength := CardStrength(trick[0].Card, trump, leadSuit)
	for i := 1; i < len(trick); i++ {
		s := CardStrength(trick[i].Card, trump, leadSuit)
		if s > bestStrength {
			bestStrength = s
			bestIdx = i
		}
	}
	return trick[bestIdx].SeatIndex
}
