package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"doublejump/internal/session"
	"doublejump/internal/wshub"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Server struct {
	Session *session.Session
	Hub     *wshub.Hub
}

// clientMessage is the JSON structure received from clients.
type clientMessage struct {
	Type     string `json:"t"`
	Nickname string `json:"nickname,omitempty"`
}

// handleWS upgrades the connection and owns its read loop. Each
// connection gets a fresh session handle; closing the socket is the
// player's disconnect.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.WithError(err).Error("websocket accept failed")
		return
	}

	connID := uuid.New().String()
	client := &wshub.Client{
		ConnID: connID,
		Conn:   conn,
		Send:   make(chan []byte, 32),
	}
	s.Hub.Register(client)
	log.WithField("conn_id", connID).Info("connection opened")

	ctx := r.Context()
	go client.WritePump(ctx)

	defer func() {
		s.Hub.Unregister(connID)
		s.Session.Leave(connID)
		conn.Close(websocket.StatusNormalClosure, "")
		log.WithField("conn_id", connID).Info("connection closed")
	}()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.Hub.Push(connID, session.EventError, session.ErrorMessage{Message: "invalid message"})
			continue
		}
		s.dispatch(connID, msg)
	}
}

// dispatch routes one inbound request to the session. Errors go back to
// the requester only; other players never hear about them.
func (s *Server) dispatch(connID string, msg clientMessage) {
	switch msg.Type {
	case "register":
		state, err := s.Session.Join(connID, msg.Nickname)
		if err != nil {
			s.pushError(connID, err)
			return
		}
		s.Hub.Push(connID, session.EventGameState, state)
	case "getState":
		state, err := s.Session.Snapshot(connID)
		if err != nil {
			s.pushError(connID, err)
			return
		}
		s.Hub.Push(connID, session.EventGameState, state)
	case "placeBet":
		receipt, err := s.Session.PlaceBet(connID)
		if err != nil {
			s.pushError(connID, err)
			return
		}
		s.Hub.Push(connID, session.EventBetPlaced, receipt)
	default:
		s.pushError(connID, fmt.Errorf("unknown request type %q", msg.Type))
	}
}

func (s *Server) pushError(connID string, err error) {
	s.Hub.Push(connID, session.EventError, session.ErrorMessage{Message: err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, `{"status":"ok"}`)
}
