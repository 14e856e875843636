// Package monitor exposes a websocket feed of tick output and log lines for
// external tooling (a waveform viewer, a dashboard) watching a running
// Program. Ambient dev tooling, not part of the core interpreter's
// contract. Grounded on gorilla/websocket's standard upgrade-then-pump
// pattern.
package monitor

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"vlsng/internal/vlog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Event is one frame pushed to every connected client.
type Event struct {
	Kind    string    `json:"kind"` // "tick" or "log"
	Samples []float64 `json:"samples,omitempty"`
	Message string    `json:"message,omitempty"`
}

// Server fans out Events to every connected websocket client.
type Server struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewServer builds an empty Server and installs it as the process-wide log
// sink, so every print()/diagnostic line is also broadcast to clients.
func NewServer() *Server {
	s := &Server{clients: make(map[*websocket.Conn]bool)}
	vlog.SetSink(func(level vlog.Level, message string) {
		s.Broadcast(Event{Kind: "log", Message: message})
	})
	return s
}

// Broadcast sends ev to every connected client, dropping any that error.
func (s *Server) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			c.Close()
			delete(s.clients, c)
		}
	}
}

// Handler upgrades an HTTP request to a websocket connection and registers
// it to receive broadcast Events until it disconnects.
func (s *Server) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("monitor: upgrade failed: %v", err)
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	// Drain (and discard) client reads to detect disconnects; this feed is
	// one-directional, server to client.
	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// ListenAndServe starts an HTTP server exposing the websocket feed at /ws.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.Handler)
	return http.ListenAndServe(addr, mux)
}
