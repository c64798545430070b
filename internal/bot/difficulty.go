package bot

import "euchre-server/internal/domain"

// Settings controls how hard a bot plays, per spec's exact difficulty table.
type Settings struct {
	SampleCount   int
	SearchDepth   int
	RandomMoveRate float64
	BidThreshold  float64
}

var table = map[domain.BotDifficulty]Settings{
	domain.DifficultyEasy:   {SampleCount: 4, SearchDepth: 2, RandomMoveRate: 0.35, BidThreshold: 45},
	domain.DifficultyMedium: {SampleCount: 8, SearchDepth: 4, RandomMoveRate: 0.12, BidThreshold: 20},
	domain.DifficultyHard:   {SampleCount: 16, SearchDepth: 8, RandomMoveRate: 0.00, BidThreshold: -5},
}

// SettingsFor returns the difficulty table entry, defaulting to medium for
// an unrecognized value rather than panicking.
func SettingsFor(d domain.BotDifficulty) Settings {
	if s, ok := table[d]; ok {
		return s
	}
	return table[domain.DifficultyMedium]
}
