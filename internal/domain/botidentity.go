package domain

// BotIdentity is a cosmetic entry from the bot roster: its display name
// is handed to an auto-filled seat instead of "Bot 3"; the avatar index
// is served with the roster but not stored on the seated bot. Adapted
// from the teacher's champion catalog (a small reference table served
// read-only over HTTP); the Euchre analog has no gameplay effect.
type BotIdentity struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	AvatarIndex  int    `json:"avatarIndex"`
}

// DefaultBotIdentities is the seeded roster new rooms draw bot names from.
func DefaultBotIdentities() []BotIdentity {
	return []BotIdentity{
		{ID: "bot-maud", Name: "Maud", AvatarIndex: 0},
		{ID: "bot-gus", Name: "Gus", AvatarIndex: 1},
		{ID: "bot-ruth", Name: "Ruth", AvatarIndex: 2},
		{ID: "bot-cyrus", Name: "Cyrus", AvatarIndex: 3},
		{ID: "bot-opal", Name: "Opal", AvatarIndex: 4},
		{ID: "bot-lou", Name: "Lou", AvatarIndex: 5},
	}
}
