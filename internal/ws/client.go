package ws

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// client.go is the read/write pump pair, copied near-verbatim from the
// teacher's internal/websocket/client.go: same keepalive constants, same
// split between a blocking ReadPump (one per connection, goroutine-owned)
// and a WritePump draining an outbound channel so concurrent Send calls
// never race on the same *websocket.Conn.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024
)

// ClientAction pairs an inbound Message with the Client that sent it, the
// unit of work the room actor's Run loop consumes from its actions channel.
type ClientAction struct {
	Client  *Client
	Message Message
}

// Client wraps one websocket connection bound to one seated player.
// playerID is empty until the room actor's handleAttach binds it.
type Client struct {
	conn     *websocket.Conn
	room     *Room
	send     chan []byte
	playerID string
}

// NewClient wraps conn and starts neither pump; the caller starts
// ReadPump and WritePump once registered with the room.
func NewClient(conn *websocket.Conn, room *Room) *Client {
	return &Client{
		conn: conn,
		room: room,
		send: make(chan []byte, 16),
	}
}

// ReadPump blocks reading frames off the connection until it closes.
// A {type:"ping"} is answered immediately with {type:"pong"} without
// going through the room actor, per spec §6's "answered directly,
// without waking the room actor." Every other frame is forwarded to the
// room's actions channel and is handled there since it can mutate state.
func (c *Client) ReadPump() {
	defer func() {
		c.room.leave <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error: %v", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.sendError("malformed message")
			continue
		}

		if msg.Type == TypePing {
			c.sendRaw(Message{Type: TypePong})
			continue
		}

		c.room.actions <- ClientAction{Client: c, Message: msg}
	}
}

// WritePump drains c.send onto the connection and pings on pingPeriod,
// matching the teacher's ticker-driven keepalive loop.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) sendRaw(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal message: %v", err)
		return
	}
	c.trySend(data)
}

func (c *Client) sendError(message string) {
	c.sendRaw(Message{Type: TypeError, Message: message})
}

// trySend is a non-blocking, recover-guarded send, matching the teacher's
// Room.trySend: c.send may already be closed by WritePump's shutdown path
// racing a broadcast from the room actor, and a panic there must not take
// down the actor goroutine.
func (c *Client) trySend(data []byte) {
	defer func() {
		recover()
	}()
	select {
	case c.send <- data:
	default:
	}
}

// Close closes the outbound channel, stopping WritePump.
func (c *Client) Close() {
	defer func() {
		recover()
	}()
	close(c.send)
}
