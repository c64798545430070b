package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"euchre-server/internal/domain"
	"euchre-server/internal/repository"
	"euchre-server/internal/scheduler"
	"golang.org/x/crypto/bcrypt"
)

// Hub owns the room registry: the one place room actors are created,
// looked up, and torn down, grounded on the teacher's
// internal/websocket/hub.go. Per spec §5 "the room table is only
// written by the connection accept path and room reaper; each entry is
// thereafter exclusive to its actor," so Hub's own mutex only ever
// guards the registry map itself, never a room's internal state.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]*registeredRoom

	store    repository.RoomStore
	cfg      scheduler.Config
	secret   string
	roomTTL  time.Duration
}

type registeredRoom struct {
	actor        *Room
	creatorToken string
}

// ConnectParams is the decoded form of the /websocket query string.
type ConnectParams struct {
	RoomName      string
	PlayerName    string
	Password      string
	Create        bool
	CreatorToken  string
	BotDifficulty domain.BotDifficulty
}

func NewHub(store repository.RoomStore, cfg scheduler.Config, creatorTokenSecret string, roomTTL time.Duration) *Hub {
	return &Hub{
		rooms:   make(map[string]*registeredRoom),
		store:   store,
		cfg:     cfg,
		secret:  creatorTokenSecret,
		roomTTL: roomTTL,
	}
}

// Restore loads every persisted room from store and spins up an actor
// for each, clearing connected flags on non-bot seats per spec §6's
// "on cold start all connected flags on non-bot players are cleared."
func (h *Hub) Restore(ctx context.Context) error {
	names, err := h.store.List(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		room, err := h.store.Load(ctx, name)
		if err != nil || room == nil {
			continue
		}
		for _, p := range room.Players {
			if !p.IsBot {
				p.Connected = false
			}
		}
		h.mu.Lock()
		h.rooms[name] = &registeredRoom{
			actor:        NewRoom(room, h.store, h.cfg),
			creatorToken: room.CreatorToken,
		}
		h.mu.Unlock()
	}
	return nil
}

// ListRooms reaps expired rooms first, then returns the listing-page
// projection for everything left, per spec §6's GET /rooms shape.
func (h *Hub) ListRooms() []RoomSummary {
	h.reapExpired()

	h.mu.Lock()
	actors := make([]*Room, 0, len(h.rooms))
	for _, rr := range h.rooms {
		actors = append(actors, rr.actor)
	}
	h.mu.Unlock()

	summaries := make([]RoomSummary, 0, len(actors))
	for _, actor := range actors {
		summaries = append(summaries, actor.Summary())
	}
	return summaries
}

// Connect resolves a /websocket query string into a joined playerID,
// performing every pre-upgrade check spec §4.5 requires (room
// existence, password, fullness, creator-token match on create) before
// the caller ever upgrades the connection. On success it also returns
// the actor the caller must Attach its Client to after upgrading.
func (h *Hub) Connect(p ConnectParams) (*Room, string, error) {
	h.reapExpired()

	roomName := trimTo(p.RoomName, 24)
	if roomName == "" {
		return nil, "", domain.ErrMissingRoomName
	}

	h.mu.Lock()
	rr, exists := h.rooms[roomName]
	freshlyCreated := false

	if p.Create {
		if exists {
			if p.CreatorToken == "" || p.CreatorToken != rr.creatorToken {
				h.mu.Unlock()
				return nil, "", domain.ErrRoomExists
			}
		} else {
			difficulty := p.BotDifficulty
			if !difficulty.Valid() {
				difficulty = domain.DifficultyMedium
			}
			token, err := MintCreatorToken(h.secret, roomName)
			if err != nil {
				h.mu.Unlock()
				return nil, "", err
			}
			room := domain.NewRoom(roomName, token, difficulty)
			if p.Password != "" {
				hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
				if err != nil {
					h.mu.Unlock()
					return nil, "", err
				}
				room.PasswordHash = string(hash)
				room.HasPassword = true
			}
			rr = &registeredRoom{actor: NewRoom(room, h.store, h.cfg), creatorToken: token}
			h.rooms[roomName] = rr
			freshlyCreated = true
		}
	} else if !exists {
		h.mu.Unlock()
		return nil, "", domain.ErrRoomNotFound
	}
	h.mu.Unlock()

	playerID, err := rr.actor.Join(p.PlayerName, p.Password, p.CreatorToken, freshlyCreated)
	if err != nil {
		return nil, "", err
	}
	return rr.actor, playerID, nil
}

// Simulate implements the dev-only POST /rooms/<name>/simulate endpoint
// (§11): creates the room if absent, then drives it to completion. No
// password or creator token applies to this entry point.
func (h *Hub) Simulate(roomName string, difficulty domain.BotDifficulty) (RoomSnapshot, error) {
	roomName = trimTo(roomName, 24)
	if roomName == "" {
		return RoomSnapshot{}, domain.ErrMissingRoomName
	}

	h.mu.Lock()
	rr, exists := h.rooms[roomName]
	if !exists {
		if !difficulty.Valid() {
			difficulty = domain.DifficultyMedium
		}
		token, err := MintCreatorToken(h.secret, roomName)
		if err != nil {
			h.mu.Unlock()
			return RoomSnapshot{}, err
		}
		room := domain.NewRoom(roomName, token, difficulty)
		rr = &registeredRoom{actor: NewRoom(room, h.store, h.cfg), creatorToken: token}
		h.rooms[roomName] = rr
	}
	h.mu.Unlock()

	return rr.actor.Simulate(difficulty)
}

// DeleteRoom implements DELETE /rooms/<name>?creatorToken=...
func (h *Hub) DeleteRoom(name, token string) error {
	h.mu.Lock()
	rr, exists := h.rooms[name]
	h.mu.Unlock()
	if !exists {
		return domain.ErrRoomNotFound
	}
	if err := rr.actor.RequestClose(token); err != nil {
		return err
	}
	h.mu.Lock()
	delete(h.rooms, name)
	h.mu.Unlock()
	return nil
}

// reapExpired closes and forgets every room older than roomTTL, per
// spec §4.5's "rooms older than one hour are reaped on the next fetch."
func (h *Hub) reapExpired() {
	h.mu.Lock()
	var expired []string
	for name, rr := range h.rooms {
		summary := rr.actor.Summary()
		createdAt, err := time.Parse(time.RFC3339, summary.CreatedAt)
		if err != nil || time.Since(createdAt) > h.roomTTL {
			expired = append(expired, name)
		}
	}
	actors := make([]*Room, 0, len(expired))
	for _, name := range expired {
		actors = append(actors, h.rooms[name].actor)
		delete(h.rooms, name)
	}
	h.mu.Unlock()

	for _, actor := range actors {
		actor.RequestSystemClose()
	}
}

// marshalRooms is a small helper for the HTTP handler's JSON body.
func marshalRooms(rooms []RoomSummary) ([]byte, error) {
	return json.Marshal(struct {
		Rooms []RoomSummary `json:"rooms"`
	}{Rooms: rooms})
}
