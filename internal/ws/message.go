package ws

import "euchre-server/internal/domain"

// message.go defines the wire envelope. Spec's examples show every
// action's fields inlined at the top level of the frame rather than
// nested under a payload key, so the envelope (unlike the teacher's
// {Type, Payload json.RawMessage} wrapper in internal/websocket/message.go)
// carries every possible field directly, each omitempty.

// MessageType is the top-level "type" discriminator of every frame.
type MessageType string

const (
	TypePing   MessageType = "ping"
	TypePong   MessageType = "pong"
	TypeAction MessageType = "action"
	TypeInfo   MessageType = "info"
	TypeError  MessageType = "error"
	TypeState  MessageType = "state"
)

// ActionName is the "action" discriminator of an inbound {type:"action"} frame.
type ActionName string

const (
	ActionPass             ActionName = "pass"
	ActionOrderUp          ActionName = "order-up"
	ActionChooseTrump      ActionName = "choose-trump"
	ActionDiscard          ActionName = "discard"
	ActionPlayCard         ActionName = "play-card"
	ActionStartNextHand    ActionName = "start-next-hand"
	ActionRestartMatch     ActionName = "restart-match"
	ActionAddBot           ActionName = "add-bot"
	ActionRemoveBot        ActionName = "remove-bot"
	ActionSetSeat          ActionName = "set-seat"
	ActionSetBotDifficulty ActionName = "set-bot-difficulty"
	ActionStartRoom        ActionName = "start-room"
)

// Message is the single flat envelope used for both directions of the
// wire protocol.
type Message struct {
	Type MessageType `json:"type"`

	// Inbound {type:"action"} fields.
	Action         ActionName           `json:"action,omitempty"`
	Alone          bool                 `json:"alone,omitempty"`
	Suit           domain.Suit          `json:"suit,omitempty"`
	CardID         string               `json:"cardId,omitempty"`
	TargetPlayerID string               `json:"targetPlayerId,omitempty"`
	SeatIndex      int                  `json:"seatIndex,omitempty"`
	BotDifficulty  domain.BotDifficulty `json:"botDifficulty,omitempty"`

	// Outbound fields.
	Message string        `json:"message,omitempty"`
	State   *RoomSnapshot `json:"state,omitempty"`
}

// PlayerView is one seat's public information: every recipient sees
// handCount, but only the recipient's own hand (via YouView).
type PlayerView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SeatIndex int    `json:"seatIndex"`
	Connected bool   `json:"connected"`
	IsBot     bool   `json:"isBot"`
	HandCount int    `json:"handCount"`
}

// YouView is the recipient's own seat, hand included. CreatorToken is
// populated only when the recipient is the room's creator - simpler
// than tracking a one-time reveal, and no less private, since the
// token never appears in any other session's snapshot.
type YouView struct {
	PlayerID     string        `json:"playerId"`
	SeatIndex    int           `json:"seatIndex"`
	Hand         []domain.Card `json:"hand"`
	CreatorToken string        `json:"creatorToken,omitempty"`
}

// GameView mirrors domain.GameState for the wire, replacing the kitty's
// actual cards with a count: the kitty is never played, and revealing
// its contents would hand a client (or a cheating bot) information no
// hand ever held, narrowing the hidden-information search unfairly.
type GameView struct {
	Phase              domain.Phase            `json:"phase"`
	DealerSeat         int                     `json:"dealerSeat"`
	TurnSeat           int                     `json:"turnSeat"`
	Upcard             *domain.Card            `json:"upcard"`
	KittySize          int                     `json:"kittySize"`
	BlockedSuit        domain.Suit             `json:"blockedSuit,omitempty"`
	Trump              domain.Suit             `json:"trump,omitempty"`
	MakerTeam          int                     `json:"makerTeam"`
	CalledByPlayerID   string                  `json:"calledByPlayerId,omitempty"`
	GoingAlonePlayerID string                  `json:"goingAlonePlayerId,omitempty"`
	SittingOutSeat     int                     `json:"sittingOutSeat"`
	CurrentTrick       []domain.TrickPlay      `json:"currentTrick"`
	CompletedTricks    []domain.CompletedTrick `json:"completedTricks"`
	TrickIndex         int                     `json:"trickIndex"`
	HandSummary        *domain.HandSummary     `json:"handSummary,omitempty"`
	HandNumber         int                     `json:"handNumber"`
}

// RoomSnapshot is the personalized view sent to one session after every
// mutation, per spec §6.
type RoomSnapshot struct {
	RoomName      string               `json:"roomName"`
	MaxPlayers    int                  `json:"maxPlayers"`
	Status        domain.RoomStatus    `json:"status"`
	BotDifficulty domain.BotDifficulty `json:"botDifficulty"`
	BotCount      int                  `json:"botCount"`
	Score         domain.Score         `json:"score"`
	Players       []PlayerView         `json:"players"`
	You           *YouView             `json:"you,omitempty"`
	Game          *GameView            `json:"game,omitempty"`
	LegalPlays    []domain.Card        `json:"legalPlays,omitempty"`
	TargetScore   int                  `json:"targetScore"`
}

// RoomSummary is the listing-page shape returned by GET /rooms, per §6.
type RoomSummary struct {
	Name          string               `json:"name"`
	Players       int                  `json:"players"`
	MaxPlayers    int                  `json:"maxPlayers"`
	BotCount      int                  `json:"botCount"`
	BotDifficulty domain.BotDifficulty `json:"botDifficulty"`
	HasPassword   bool                 `json:"hasPassword"`
	Status        domain.RoomStatus    `json:"status"`
	CreatedAt     string               `json:"createdAt"`
}
