package domain

import "time"

// RoomStatus is the lobby/in-match status of a Room.
type RoomStatus string

const (
	StatusWaiting RoomStatus = "waiting"
	StatusPlaying RoomStatus = "playing"
)

// BotDifficulty selects the bot engine's sample count, search depth,
// random-move rate, and bid threshold (see internal/bot/difficulty.go).
type BotDifficulty string

const (
	DifficultyEasy   BotDifficulty = "easy"
	DifficultyMedium BotDifficulty = "medium"
	DifficultyHard   BotDifficulty = "hard"
)

func (d BotDifficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Score is the running match score by team.
type Score struct {
	Team0 int `json:"team0"`
	Team1 int `json:"team1"`
}

// Room is the top-level persisted aggregate: lobby metadata, seats, and
// (once a hand is underway) the current GameState. Its json tags govern
// how repository.RoomStore round-trips a Room through a JSON blob - they
// are not a wire format. The websocket layer never marshals a Room
// directly; internal/ws/snapshot.go hand-builds the personalized
// RoomSnapshot clients actually see, so PasswordHash and CreatorToken
// need ordinary tags here to survive a persist/restore cycle instead of
// being silently dropped on every cold start.
type Room struct {
	Name            string        `json:"name"`
	PasswordHash    string        `json:"passwordHash,omitempty"`
	HasPassword     bool          `json:"hasPassword"`
	CreatorToken    string        `json:"creatorToken,omitempty"`
	CreatorPlayerID string        `json:"creatorPlayerId,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
	MaxPlayers      int           `json:"maxPlayers"`
	Status          RoomStatus    `json:"status"`
	BotDifficulty   BotDifficulty `json:"botDifficulty"`
	BotCount        int           `json:"botCount"`
	Score           Score         `json:"score"`
	Players         []*Player     `json:"players"`
	Game            *GameState    `json:"game,omitempty"`
}

// Session is the binding from a live connection to a seated player.
type Session struct {
	SessionID string `json:"sessionId"`
	RoomName  string `json:"roomName"`
	PlayerID  string `json:"playerId"`
}

// NewRoom constructs an empty waiting-phase room.
func NewRoom(name, creatorToken string, botDifficulty BotDifficulty) *Room {
	now := time.Now()
	return &Room{
		Name:          name,
		CreatorToken:  creatorToken,
		CreatedAt:     now,
		UpdatedAt:     now,
		MaxPlayers:    4,
		Status:        StatusWaiting,
		BotDifficulty: botDifficulty,
		Players:       make([]*Player, 0, 4),
	}
}

// Expired reports whether the room has exceeded ttl since creation.
func (r *Room) Expired(ttl time.Duration) bool {
	return time.Since(r.CreatedAt) > ttl
}

// PlayerBySeat returns the player seated at seatIndex, or nil.
func (r *Room) PlayerBySeat(seatIndex int) *Player {
	for _, p := range r.Players {
		if p.SeatIndex == seatIndex {
			return p
		}
	}
	return nil
}

// PlayerByID returns the player with id, or nil.
func (r *Room) PlayerByID(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PlayerByName returns the player whose name matches (case-insensitive),
// used for reconnection-by-name.
func (r *Room) PlayerByName(name string) *Player {
	lower := lowerTrim(name)
	for _, p := range r.Players {
		if lowerTrim(p.Name) == lower {
			return p
		}
	}
	return nil
}

// OccupiedSeats returns the set of seat indices currently filled.
func (r *Room) OccupiedSeats() map[int]bool {
	occ := make(map[int]bool, len(r.Players))
	for _, p := range r.Players {
		occ[p.SeatIndex] = true
	}
	return occ
}

// FirstOpenSeat returns the lowest unoccupied seat index in [0,4), or -1.
func (r *Room) FirstOpenSeat() int {
	occ := r.OccupiedSeats()
	for i := 0; i < r.MaxPlayers; i++ {
		if !occ[i] {
			return i
		}
	}
	return -1
}

// IsFull reports whether all 4 seats are occupied.
func (r *Room) IsFull() bool {
	return len(r.Players) >= r.MaxPlayers
}

func lowerTrim(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	start, end := 0, len(b)
	for start < end && b[start] == ' ' {
		start++
	}
	for end > start && b[end-1] == ' ' {
		end--
	}
	return string(b[start:end])
}
