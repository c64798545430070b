package ws

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"euchre-server/internal/domain"
	"euchre-server/internal/repository"
	"euchre-server/internal/scheduler"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/crypto/bcrypt"
)

// room.go is the single-writer actor for one Room: a dedicated goroutine
// owning a *domain.Room exclusively, grounded on the teacher's
// internal/websocket/room.go Run() select loop. Every mutation - a join,
// a leave, a client action, an auto-advance step - passes through this
// one goroutine, so the domain package never needs its own locking.
//
// Unlike the teacher's TimerManager (an async time.AfterFunc feeding a
// "timer expired" event back into Run's select), auto-advance pacing
// here blocks this goroutine directly with time.Sleep between steps.
// Per spec §5's "different rooms may progress in parallel," blocking
// only this room's own writer during its own pacing delay is correct:
// no other room is affected, and a command arriving for this room
// during the sleep simply waits on the channel send until the actor
// resumes, which is the serialization the ordering guarantees require.

type joinRequest struct {
	name           string
	password       string
	creatorToken   string
	freshlyCreated bool
	result         chan joinResult
}

type joinResult struct {
	playerID string
	err      error
}

type attachRequest struct {
	playerID string
	client   *Client
}

type closeRequest struct {
	token  string
	system bool // true only for the hub's own TTL reaper: skips the token check entirely
	result chan error
}

type simulateRequest struct {
	difficulty domain.BotDifficulty
	result     chan simulateResult
}

type simulateResult struct {
	snapshot RoomSnapshot
	err      error
}

// simulationCap bounds POST /rooms/<name>/simulate (§11): generous
// enough to carry a bot-only match to game-over, unlike the 64-iteration
// per-invocation cap that governs one ordinary auto-advance pass.
const simulationCap = 2000

// Room is the per-room actor.
type Room struct {
	room     *domain.Room
	sessions map[string]*Client // playerID -> live client, actor-owned

	join     chan *joinRequest
	attach   chan *attachRequest
	leave    chan *Client
	actions  chan ClientAction
	closeCh  chan *closeRequest
	simulate chan *simulateRequest

	store        repository.RoomStore
	schedulerCfg scheduler.Config
	rng          *rand.Rand

	done chan struct{}

	summaryMu sync.Mutex
	summary   RoomSummary
}

// NewRoom starts the actor goroutine around room and returns it. Callers
// hand a *domain.Room that may already carry state restored from
// persistence (cold start) or a freshly minted empty lobby.
func NewRoom(room *domain.Room, store repository.RoomStore, cfg scheduler.Config) *Room {
	r := &Room{
		room:         room,
		sessions:     make(map[string]*Client),
		join:         make(chan *joinRequest),
		attach:       make(chan *attachRequest),
		leave:        make(chan *Client),
		actions:      make(chan ClientAction, 32),
		closeCh:      make(chan *closeRequest),
		simulate:     make(chan *simulateRequest),
		store:        store,
		schedulerCfg: cfg,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		done:         make(chan struct{}),
	}
	r.refreshSummary()
	go r.run()
	return r
}

func (r *Room) run() {
	defer close(r.done)
	for {
		select {
		case req := <-r.join:
			r.handleJoin(req)
		case req := <-r.attach:
			r.handleAttach(req)
		case client := <-r.leave:
			r.handleLeave(client)
		case ca := <-r.actions:
			r.handleAction(ca)
		case req := <-r.simulate:
			r.handleSimulate(req)
		case req := <-r.closeCh:
			if r.handleClose(req) {
				return
			}
		}
	}
}

// Join reserves a seat (or reattaches to an existing disconnected seat by
// name) and returns the playerID to bind to the eventual websocket
// connection. It runs synchronously against the actor so the HTTP
// handler can decide the upgrade's fate (200 vs 403/409) before ever
// opening the socket, per spec §4.5.
func (r *Room) Join(name, password, creatorToken string, freshlyCreated bool) (string, error) {
	result := make(chan joinResult, 1)
	r.join <- &joinRequest{name: name, password: password, creatorToken: creatorToken, freshlyCreated: freshlyCreated, result: result}
	res := <-result
	return res.playerID, res.err
}

// Attach binds a live connection to an already-joined playerID and sends
// its first personalized snapshot.
func (r *Room) Attach(playerID string, client *Client) {
	r.attach <- &attachRequest{playerID: playerID, client: client}
}

// Leave notifies the actor that client's connection closed.
func (r *Room) Leave(client *Client) {
	r.leave <- client
}

// Dispatch forwards one parsed action frame to the actor.
func (r *Room) Dispatch(action ClientAction) {
	r.actions <- action
}

// RequestClose closes the room on behalf of an HTTP caller: token must
// match the room's minted creator token, full stop. An empty or missing
// token is rejected rather than treated as "no check," since that is
// exactly what an unauthenticated DELETE /rooms/<name> call looks like.
func (r *Room) RequestClose(token string) error {
	result := make(chan error, 1)
	r.closeCh <- &closeRequest{token: token, result: result}
	err := <-result
	if err == nil {
		<-r.done
	}
	return err
}

// RequestSystemClose closes the room unconditionally, bypassing the
// creator-token check entirely. Only the hub's own TTL reaper may call
// this - never reachable from an HTTP handler.
func (r *Room) RequestSystemClose() error {
	result := make(chan error, 1)
	r.closeCh <- &closeRequest{system: true, result: result}
	err := <-result
	<-r.done
	return err
}

// Simulate fills every open seat with bots at difficulty, starts the
// match if it hasn't started, and drives it with the ordinary
// auto-advance scheduler until game-over or simulationCap iterations,
// returning the final snapshot. Backs the dev-only
// POST /rooms/<name>/simulate endpoint (§11).
func (r *Room) Simulate(difficulty domain.BotDifficulty) (RoomSnapshot, error) {
	result := make(chan simulateResult, 1)
	r.simulate <- &simulateRequest{difficulty: difficulty, result: result}
	res := <-result
	return res.snapshot, res.err
}

// Summary returns the latest cached listing-page projection without
// touching the actor goroutine, safe to call concurrently from any
// number of HTTP handlers.
func (r *Room) Summary() RoomSummary {
	r.summaryMu.Lock()
	defer r.summaryMu.Unlock()
	return r.summary
}

func (r *Room) handleJoin(req *joinRequest) {
	name := trimTo(req.name, 40)
	if name == "" {
		req.result <- joinResult{err: domain.ErrMissingPlayerName}
		return
	}

	if r.room.HasPassword {
		if err := bcrypt.CompareHashAndPassword([]byte(r.room.PasswordHash), []byte(req.password)); err != nil {
			req.result <- joinResult{err: domain.ErrWrongPassword}
			return
		}
	}

	existing := r.room.PlayerByName(name)
	var player *domain.Player
	switch {
	case existing != nil && !existing.Connected && !existing.IsBot:
		existing.Connected = true
		player = existing
	case existing != nil:
		req.result <- joinResult{err: domain.ErrNameTaken}
		return
	default:
		if r.room.IsFull() {
			req.result <- joinResult{err: domain.ErrRoomFull}
			return
		}
		player = &domain.Player{
			ID:        uuid.New().String(),
			Name:      name,
			SeatIndex: r.room.FirstOpenSeat(),
			Connected: true,
		}
		r.room.Players = append(r.room.Players, player)
	}

	if req.freshlyCreated {
		r.room.CreatorPlayerID = player.ID
	} else if req.creatorToken != "" && req.creatorToken == r.room.CreatorToken {
		r.room.CreatorPlayerID = player.ID
	}

	r.commit()
	r.runAutoAdvance()
	req.result <- joinResult{playerID: player.ID}
}

func (r *Room) handleAttach(req *attachRequest) {
	req.client.playerID = req.playerID
	r.sessions[req.playerID] = req.client
	r.sendTo(req.playerID)
}

func (r *Room) handleLeave(client *Client) {
	for id, c := range r.sessions {
		if c != client {
			continue
		}
		delete(r.sessions, id)
		if p := r.room.PlayerByID(id); p != nil && !p.IsBot {
			p.Connected = false
		}
		r.commit()
		r.runAutoAdvance()
		return
	}
}

func (r *Room) handleAction(ca ClientAction) {
	if ca.Client.playerID == "" {
		ca.Client.sendError("not joined to a room")
		return
	}
	if ca.Message.Type != TypeAction {
		return
	}

	if err := r.dispatchAction(ca.Client.playerID, ca.Message); err != nil {
		ca.Client.sendError(err.Error())
		return
	}
	r.commit()
	r.runAutoAdvance()
}

func (r *Room) dispatchAction(playerID string, msg Message) error {
	switch msg.Action {
	case ActionPass:
		return domain.Pass(r.room, playerID)
	case ActionOrderUp:
		return domain.OrderUp(r.room, playerID, msg.Alone)
	case ActionChooseTrump:
		return domain.ChooseTrump(r.room, playerID, msg.Suit, msg.Alone)
	case ActionDiscard:
		return domain.Discard(r.room, playerID, msg.CardID)
	case ActionPlayCard:
		return domain.PlayCard(r.room, playerID, msg.CardID)
	case ActionStartNextHand:
		return domain.StartNextHand(r.room)
	case ActionRestartMatch:
		return domain.RestartMatch(r.room)
	case ActionAddBot:
		return r.addBot(playerID)
	case ActionRemoveBot:
		return r.removeBot(playerID)
	case ActionSetSeat:
		return r.setSeat(playerID, msg.TargetPlayerID, msg.SeatIndex)
	case ActionSetBotDifficulty:
		return r.setBotDifficulty(playerID, msg.BotDifficulty)
	case ActionStartRoom:
		return r.startRoom(playerID)
	default:
		return domain.Validation("unrecognized action")
	}
}

func (r *Room) requireCreator(playerID string) error {
	if r.room.CreatorPlayerID == "" || playerID != r.room.CreatorPlayerID {
		return domain.ErrNotCreator
	}
	return nil
}

func (r *Room) requireLobby() error {
	if r.room.Status != domain.StatusWaiting {
		return domain.PhaseErr("this action is only legal before the room starts")
	}
	return nil
}

// addBot seats a bot drawn from the default identity roster, skipping
// any name already in use (bots reserve their names permanently, per
// spec §4.5).
func (r *Room) addBot(playerID string) error {
	if err := r.requireCreator(playerID); err != nil {
		return err
	}
	if err := r.requireLobby(); err != nil {
		return err
	}
	if r.room.IsFull() {
		return domain.ErrRoomFull
	}

	identity := r.nextBotIdentity()
	bot := &domain.Player{
		ID:        uuid.New().String(),
		Name:      identity.Name,
		SeatIndex: r.room.FirstOpenSeat(),
		Connected: true,
		IsBot:     true,
	}
	r.room.Players = append(r.room.Players, bot)
	r.room.BotCount++
	return nil
}

func (r *Room) nextBotIdentity() domain.BotIdentity {
	used := make(map[string]bool, len(r.room.Players))
	for _, p := range r.room.Players {
		used[strings.ToLower(p.Name)] = true
	}
	for _, identity := range domain.DefaultBotIdentities() {
		if !used[strings.ToLower(identity.Name)] {
			return identity
		}
	}
	return domain.BotIdentity{ID: "bot-extra", Name: fmt.Sprintf("Bot %d", len(r.room.Players)+1)}
}

// removeBot evicts the most recently seated bot.
func (r *Room) removeBot(playerID string) error {
	if err := r.requireCreator(playerID); err != nil {
		return err
	}
	if err := r.requireLobby(); err != nil {
		return err
	}
	idx := -1
	for i, p := range r.room.Players {
		if p.IsBot {
			idx = i
		}
	}
	if idx < 0 {
		return domain.Validation("no bot is seated")
	}
	r.room.Players = append(r.room.Players[:idx], r.room.Players[idx+1:]...)
	r.room.BotCount--
	return nil
}

// setSeat is not annotated creator-only in the wire protocol, unlike
// add-bot/remove-bot/start-room: a player may move themselves to any
// open seat, while moving someone else requires the creator, per
// DESIGN.md's decision on this underspecified action.
func (r *Room) setSeat(requesterID, targetID string, seatIndex int) error {
	if err := r.requireLobby(); err != nil {
		return err
	}
	if targetID == "" {
		targetID = requesterID
	}
	if targetID != requesterID {
		if err := r.requireCreator(requesterID); err != nil {
			return err
		}
	}
	if seatIndex < 0 || seatIndex >= r.room.MaxPlayers {
		return domain.ErrInvalidSeat
	}
	target := r.room.PlayerByID(targetID)
	if target == nil {
		return domain.Validation("unknown player")
	}
	if occupant := r.room.PlayerBySeat(seatIndex); occupant != nil && occupant.ID != targetID {
		return domain.Conflict("seat is occupied")
	}
	target.SeatIndex = seatIndex
	return nil
}

func (r *Room) setBotDifficulty(playerID string, difficulty domain.BotDifficulty) error {
	if err := r.requireCreator(playerID); err != nil {
		return err
	}
	if !difficulty.Valid() {
		return domain.Validation("invalid bot difficulty")
	}
	r.room.BotDifficulty = difficulty
	return nil
}

func (r *Room) startRoom(playerID string) error {
	if err := r.requireCreator(playerID); err != nil {
		return err
	}
	if err := r.requireLobby(); err != nil {
		return err
	}
	if !r.room.IsFull() {
		return domain.Conflict("all four seats must be filled to start")
	}
	return domain.StartMatch(r.room)
}

// runAutoAdvance implements spec §4.4 step by step: each iteration asks
// the scheduler for the next step, sleeps its pacing delay on this
// goroutine, applies exactly one action, then persists and broadcasts,
// up to MaxIterations as a safety cap against malformed state.
func (r *Room) runAutoAdvance() {
	for i := 0; i < scheduler.MaxIterations; i++ {
		decision := scheduler.Decide(r.room, r.schedulerCfg, r.rng)
		if decision.Stop {
			return
		}
		time.Sleep(decision.Delay)
		if err := decision.Apply(r.room); err != nil {
			log.Printf("room %s: auto-advance step failed: %v", r.room.Name, err)
			return
		}
		r.persist()
		r.refreshSummary()
		r.broadcast()
	}
}

func (r *Room) handleSimulate(req *simulateRequest) {
	difficulty := req.difficulty
	if !difficulty.Valid() {
		difficulty = domain.DifficultyMedium
	}
	r.room.BotDifficulty = difficulty

	for r.room.FirstOpenSeat() >= 0 {
		identity := r.nextBotIdentity()
		bot := &domain.Player{
			ID:        uuid.New().String(),
			Name:      identity.Name,
			SeatIndex: r.room.FirstOpenSeat(),
			Connected: true,
			IsBot:     true,
		}
		r.room.Players = append(r.room.Players, bot)
		r.room.BotCount++
	}

	if r.room.Status == domain.StatusWaiting {
		if err := domain.StartMatch(r.room); err != nil {
			req.result <- simulateResult{err: err}
			return
		}
	}
	r.commit()

	for i := 0; i < simulationCap; i++ {
		decision := scheduler.Decide(r.room, r.schedulerCfg, r.rng)
		if decision.Stop {
			break
		}
		time.Sleep(decision.Delay)
		if err := decision.Apply(r.room); err != nil {
			log.Printf("room %s: simulate step failed: %v", r.room.Name, err)
			break
		}
		r.persist()
		r.refreshSummary()
		r.broadcast()
	}

	req.result <- simulateResult{snapshot: buildSnapshot(r.room, "")}
}

// handleClose reports whether the room was closed; a rejected token
// leaves the actor running.
func (r *Room) handleClose(req *closeRequest) bool {
	if !req.system && (req.token == "" || req.token != r.room.CreatorToken) {
		req.result <- domain.ErrCreatorMismatch
		return false
	}
	for _, client := range r.sessions {
		client.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(1001, "room closed"), time.Now().Add(writeWait))
		client.Close()
	}
	if err := r.store.Delete(context.Background(), r.room.Name); err != nil {
		log.Printf("room %s: delete failed: %v", r.room.Name, err)
	}
	req.result <- nil
	return true
}

func (r *Room) commit() {
	r.persist()
	r.refreshSummary()
	r.broadcast()
}

func (r *Room) persist() {
	r.room.UpdatedAt = time.Now()
	if err := r.store.Save(context.Background(), r.room); err != nil {
		log.Printf("room %s: persist failed: %v", r.room.Name, err)
	}
}

func (r *Room) broadcast() {
	for playerID := range r.sessions {
		r.sendTo(playerID)
	}
}

func (r *Room) sendTo(playerID string) {
	client, ok := r.sessions[playerID]
	if !ok {
		return
	}
	snap := buildSnapshot(r.room, playerID)
	client.sendRaw(Message{Type: TypeState, State: &snap})
}

func (r *Room) refreshSummary() {
	r.summaryMu.Lock()
	defer r.summaryMu.Unlock()
	r.summary = RoomSummary{
		Name:          r.room.Name,
		Players:       len(r.room.Players),
		MaxPlayers:    r.room.MaxPlayers,
		BotCount:      r.room.BotCount,
		BotDifficulty: r.room.BotDifficulty,
		HasPassword:   r.room.HasPassword,
		Status:        r.room.Status,
		CreatedAt:     r.room.CreatedAt.Format(time.RFC3339),
	}
}

func trimTo(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) > max {
		return s[:max]
	}
	return s
}
