package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"doublejump/internal/session"
	"doublejump/internal/wshub"

	"github.com/coder/websocket"
)

// envelope mirrors wshub.Envelope with a raw payload for decoding.
type envelope struct {
	Type string          `json:"t"`
	Data json.RawMessage `json:"d"`
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	hub := wshub.NewHub()
	// Clock deliberately not started: tests drive no round transitions.
	sess := session.New(session.DefaultConfig(), hub)

	srv := &Server{
		Session: sess,
		Hub:     hub,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", srv.handleWS)
	mux.HandleFunc("/health", srv.handleHealth)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, ts.URL+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msg map[string]any) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		t.Fatalf("write: %v", err)
	}
}

// readEvent reads frames until one with the wanted event type arrives.
// Broadcast pushes (roster changes, leaderboards) may precede it.
func readEvent(t *testing.T, conn *websocket.Conn, event string) envelope {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			t.Fatalf("read while waiting for %q: %v", event, err)
		}
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if env.Type == event {
			return env
		}
	}
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != `{"status":"ok"}` {
		t.Errorf("body = %s", body)
	}
}

func TestWS_Register(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)

	send(t, conn, map[string]any{"t": "register", "nickname": "Alice"})

	env := readEvent(t, conn, session.EventGameState)
	var state struct {
		Nickname string `json:"nickname"`
		Balance  string `json:"balance"`
	}
	if err := json.Unmarshal(env.Data, &state); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if state.Nickname != "Alice" {
		t.Errorf("Nickname = %q, want %q", state.Nickname, "Alice")
	}
	if state.Balance != "10" {
		t.Errorf("Balance = %q, want %q", state.Balance, "10")
	}
}

func TestWS_RegisterTwiceFails(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)

	send(t, conn, map[string]any{"t": "register", "nickname": "Alice"})
	readEvent(t, conn, session.EventGameState)

	send(t, conn, map[string]any{"t": "register", "nickname": "Alice"})
	env := readEvent(t, conn, session.EventError)

	var msg session.ErrorMessage
	if err := json.Unmarshal(env.Data, &msg); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if msg.Message == "" {
		t.Error("error message should not be empty")
	}
}

func TestWS_GetStateBeforeRegister(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)

	send(t, conn, map[string]any{"t": "getState"})
	readEvent(t, conn, session.EventError)
}

func TestWS_PlaceBet(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)

	send(t, conn, map[string]any{"t": "register", "nickname": "Alice"})
	readEvent(t, conn, session.EventGameState)

	send(t, conn, map[string]any{"t": "placeBet"})
	env := readEvent(t, conn, session.EventBetPlaced)

	var receipt struct {
		NewBalance   string `json:"newBalance"`
		OpenBetCount int    `json:"openBetCount"`
	}
	if err := json.Unmarshal(env.Data, &receipt); err != nil {
		t.Fatalf("unmarshal receipt: %v", err)
	}
	if receipt.NewBalance != "0" {
		t.Errorf("NewBalance = %q, want %q", receipt.NewBalance, "0")
	}
	if receipt.OpenBetCount != 1 {
		t.Errorf("OpenBetCount = %d, want 1", receipt.OpenBetCount)
	}

	// All-in means the second bet fails
	send(t, conn, map[string]any{"t": "placeBet"})
	readEvent(t, conn, session.EventError)
}

func TestWS_UnknownRequest(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)

	send(t, conn, map[string]any{"t": "bogus"})
	readEvent(t, conn, session.EventError)
}

func TestWS_DisconnectRemovesPlayer(t *testing.T) {
	srv, ts := newTestServer(t)

	conn := dial(t, ts)
	send(t, conn, map[string]any{"t": "register", "nickname": "Alice"})
	readEvent(t, conn, session.EventGameState)

	conn.Close(websocket.StatusNormalClosure, "")

	// Leave is processed on the server's read loop; give it a moment.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if srv.Hub.Count() == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("hub still has clients after disconnect")
}
