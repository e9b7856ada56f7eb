package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket upgrader with reasonable defaults.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The calibration UI is served from arbitrary local origins
		return true
	},
}

// CornerMessage moves one screen corner during drag calibration.
type CornerMessage struct {
	Type  string  `json:"type"` // "corner"
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// CalibrationUpdate is pushed after every accepted corner move so the UI
// can re-apply the render matrix immediately.
type CalibrationUpdate struct {
	Type    string        `json:"type"` // "update" or "error"
	Error   string        `json:"error,omitempty"`
	Screen  [4][2]float64 `json:"screen"`
	Render  [16]float64   `json:"render"`
	Forward [9]float64    `json:"forward"`
}

// calibrationWebSocketHandler handles live corner dragging.
func (s *Server) calibrationWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("WebSocket connection established", "remote_addr", r.RemoteAddr)
	s.handleWebSocketConnection(conn)
}

// handleWebSocketConnection processes corner messages until the client
// disconnects.
func (s *Server) handleWebSocketConnection(conn *websocket.Conn) {
	readTimeout := time.Duration(s.timeoutSec) * time.Second
	if readTimeout <= 0 {
		readTimeout = 60 * time.Second
	}

	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	// Keep the connection alive between drags
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
					return
				}
			}
		}
	}()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("WebSocket error", "error", err)
			}
			break
		}

		websocketMessagesTotal.WithLabelValues("received").Inc()

		if messageType == websocket.TextMessage {
			s.handleCornerMessage(conn, data)
		}
	}
}

// handleCornerMessage applies a single corner move and pushes the result.
func (s *Server) handleCornerMessage(conn *websocket.Conn, data []byte) {
	var msg CornerMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendUpdate(conn, CalibrationUpdate{Type: "error", Error: "invalid message"})
		return
	}
	if msg.Type != "corner" {
		s.sendUpdate(conn, CalibrationUpdate{Type: "error", Error: "unknown message type: " + msg.Type})
		return
	}

	cal, err := s.moveCorner(msg.Index, msg.X, msg.Y)
	if err != nil {
		// Degenerate drag position: report it, keep the last good solve
		s.sendUpdate(conn, CalibrationUpdate{Type: "error", Error: err.Error()})
		return
	}

	_, mapper := s.snapshot()
	update := CalibrationUpdate{
		Type:    "update",
		Render:  mapper.RenderMatrix(),
		Forward: mapper.Forward(),
	}
	for i, p := range cal.Screen {
		update.Screen[i] = [2]float64{p.X, p.Y}
	}
	s.sendUpdate(conn, update)
}

func (s *Server) sendUpdate(conn *websocket.Conn, update CalibrationUpdate) {
	data, err := json.Marshal(update)
	if err != nil {
		slog.Error("Failed to marshal WebSocket update", "error", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("Failed to write WebSocket message", "error", err)
		return
	}
	websocketMessagesTotal.WithLabelValues("sent").Inc()
}
