package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/talgya/mayor-sim/internal/city"
)

const (
	streamPingEvery = 15 * time.Second
	streamWriteWait = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// streamMessage is one frame on the state stream.
type streamMessage struct {
	Type  string          `json:"type"` // "state"
	State *city.GameState `json:"state"`
}

// handleStream upgrades to a websocket and pushes the full state after every
// change, starting with the current one.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if s.streams.Add(1) > maxStreamConns {
		s.streams.Add(-1)
		writeError(w, http.StatusServiceUnavailable, "too many stream connections")
		return
	}
	defer s.streams.Add(-1)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("stream upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	updates, cancel := s.sim.Subscribe()
	defer cancel()

	// The reader only notices the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	s.log.Info("stream client connected", "remote", clientIP(r))
	defer s.log.Info("stream client disconnected", "remote", clientIP(r))

	if !s.send(conn, s.sim.State()) {
		return
	}

	ping := time.NewTicker(streamPingEvery)
	defer ping.Stop()

	for {
		select {
		case g, ok := <-updates:
			if !ok || !s.send(conn, g) {
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func (s *Server) send(conn *websocket.Conn, g *city.GameState) bool {
	conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	if err := conn.WriteJSON(streamMessage{Type: "state", State: g}); err != nil {
		s.log.Debug("stream write failed", "error", err)
		return false
	}
	return true
}
