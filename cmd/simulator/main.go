// Command simulator is a development CLI, adapted from the teacher's
// cmd/simulator (a fake-client pair driving drafts over HTTP/WS): it
// opens a room, joins as one human-like client, fills the rest with
// bots, starts the match, and logs every server frame until the match
// ends or the connection closes. It exercises the same wire protocol a
// browser client would use; it is not itself a spectator UI.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	fs := flag.NewFlagSet("simulator", flag.ExitOnError)
	addr := fs.String("addr", "localhost:8080", "server host:port")
	room := fs.String("room", "sim-room", "room name")
	name := fs.String("name", "Simulator", "this client's player name")
	difficulty := fs.String("difficulty", "medium", "bot difficulty: easy|medium|hard")
	fs.Parse(os.Args[1:])

	u := url.URL{
		Scheme:   "ws",
		Host:     *addr,
		Path:     "/websocket",
		RawQuery: fmt.Sprintf("room=%s&name=%s&create=1&botDifficulty=%s", url.QueryEscape(*room), url.QueryEscape(*name), *difficulty),
	}

	fmt.Printf("connecting to %s...\n", u.String())
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		fmt.Printf("connect failed: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	creatorToken := ""
	started := false

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			fmt.Printf("connection closed: %v\n", err)
			return
		}

		var msg map[string]interface{}
		if err := json.Unmarshal(raw, &msg); err != nil {
			fmt.Printf("malformed frame: %v\n", err)
			continue
		}

		switch msg["type"] {
		case "info":
			fmt.Printf("[info] %v\n", msg["message"])
		case "error":
			fmt.Printf("[error] %v\n", msg["message"])
		case "state":
			state, _ := msg["state"].(map[string]interface{})
			if you, ok := state["you"].(map[string]interface{}); ok {
				if tok, ok := you["creatorToken"].(string); ok && tok != "" {
					creatorToken = tok
				}
			}
			players, _ := state["players"].([]interface{})
			status, _ := state["status"].(string)
			fmt.Printf("[state] status=%s players=%d/%.0f creatorToken=%q\n",
				status, len(players), state["maxPlayers"], creatorToken)

			if !started && status == "waiting" {
				missing := int(state["maxPlayers"].(float64)) - len(players)
				for i := 0; i < missing; i++ {
					send(conn, map[string]interface{}{"type": "action", "action": "add-bot"})
					time.Sleep(50 * time.Millisecond)
				}
				send(conn, map[string]interface{}{"type": "action", "action": "start-room"})
				started = true
			}

			if game, ok := state["game"].(map[string]interface{}); ok {
				if game["phase"] == "game-over" {
					fmt.Println("match finished")
					return
				}
			}
		}
	}
}

func send(conn *websocket.Conn, msg map[string]interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	conn.WriteMessage(websocket.TextMessage, data)
}
