package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/gorilla/websocket"
)

const (
	baseURL = "http://localhost:3001/api"
	wsURL   = "ws://localhost:3001/api/ws"
)

// Simplified DTOs for the script
type authResponse struct {
	Data struct {
		Token string `json:"token"`
		User  struct {
			Id string `json:"id"`
		} `json:"user"`
	} `json:"data"`
}

type wsEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func main() {
	fmt.Println("=== Realtime Chat Simulation Client ===")

	aliceToken, aliceID := signIn("alice@example.com", "Alice", "password123")
	bobToken, bobID := signIn("bob@example.com", "Bob", "password123")

	color.Cyan("Alice: %s", aliceID)
	color.Cyan("Bob:   %s", bobID)

	aliceConn := dial(aliceToken)
	defer aliceConn.Close()
	bobConn := dial(bobToken)
	defer bobConn.Close()

	go listen("ALICE", color.New(color.FgGreen), aliceConn)
	go listen("BOB", color.New(color.FgYellow), bobConn)

	// Give the presence broadcasts a moment to land.
	time.Sleep(500 * time.Millisecond)

	send(aliceConn, "send-message", map[string]string{
		"receiver": bobID,
		"body":     "hey bob, are you online?",
	})

	time.Sleep(1 * time.Second)

	send(bobConn, "send-message", map[string]string{
		"receiver": aliceID,
		"body":     "yes! just got your message",
	})

	time.Sleep(2 * time.Second)
	fmt.Println("\nSimulation finished.")
}

func signIn(email, name, password string) (token, id string) {
	// Register is idempotent for the script: fall back to login on conflict.
	body, _ := json.Marshal(map[string]string{"name": name, "email": email, "password": password})
	resp, err := http.Post(baseURL+"/auth/register", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("register request failed: %v", err)
	}
	if resp.StatusCode == http.StatusConflict {
		resp.Body.Close()
		loginBody, _ := json.Marshal(map[string]string{"email": email, "password": password})
		resp, err = http.Post(baseURL+"/auth/login", "application/json", bytes.NewReader(loginBody))
		if err != nil {
			log.Fatalf("login request failed: %v", err)
		}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var auth authResponse
	if err := json.Unmarshal(raw, &auth); err != nil || auth.Data.Token == "" {
		log.Fatalf("unexpected auth response (%d): %s", resp.StatusCode, raw)
	}
	return auth.Data.Token, auth.Data.User.Id
}

func dial(token string) *websocket.Conn {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?token="+token, nil)
	if err != nil {
		log.Fatalf("websocket dial failed: %v", err)
	}
	return conn
}

// listen prints every event on the connection. The server may batch queued
// events into a single frame, so frames are drained with a json.Decoder
// rather than a single Unmarshal.
func listen(who string, c *color.Color, conn *websocket.Conn) {
	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			return
		}
		dec := json.NewDecoder(bytes.NewReader(frame))
		for {
			var ev wsEvent
			if err := dec.Decode(&ev); err != nil {
				break
			}
			c.Printf("[%s] %s: %s\n", who, ev.Type, ev.Data)
		}
	}
}

func send(conn *websocket.Conn, eventType string, data interface{}) {
	payload, _ := json.Marshal(map[string]interface{}{"type": eventType, "data": data})
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		log.Printf("write failed: %v", err)
	}
}
