package gateway

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"forex-signalsv1/internal/journal"
	"forex-signalsv1/internal/markethours"
	"forex-signalsv1/internal/ringbuf"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Dashboard is served from arbitrary origins in development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server runs the WebSocket and REST API for dashboard clients.
type Server struct {
	hub     *Hub
	history *ringbuf.History
	journal *journal.Journal
	srv     *http.Server
}

// NewServer creates the gateway HTTP server.
func NewServer(addr string, hub *Hub, history *ringbuf.History, j *journal.Journal) *Server {
	s := &Server{hub: hub, history: history, journal: j}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/api/v1/signals/recent", s.handleRecent)
	mux.HandleFunc("/api/v1/pairs", s.handlePairs)
	mux.HandleFunc("/api/v1/journal/stats", s.handleStats)
	mux.HandleFunc("/api/v1/journal/trades", s.handleTrades)
	mux.HandleFunc("/api/v1/health", s.handleHealth)

	s.srv = &http.Server{Addr: addr, Handler: mux}
	return s
}

// Start launches the HTTP server in a goroutine.
func (s *Server) Start() {
	go func() {
		log.Printf("[gateway] listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("[gateway] server error: %v", err)
		}
	}()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) {
	s.srv.Shutdown(ctx)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[gateway] ws upgrade error: %v", err)
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, 256),
		hub:  s.hub,
	}
	s.hub.addClient(client)

	go client.writePump()
	go client.readPump()
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	pair := r.URL.Query().Get("pair")
	if pair == "" {
		httpError(w, http.StatusBadRequest, "pair is required")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	writeJSON(w, map[string]interface{}{
		"pair":    pair,
		"signals": s.history.Recent(pair, limit),
	})
}

func (s *Server) handlePairs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{"pairs": s.history.Pairs()})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		httpError(w, http.StatusNotFound, "virtual trading disabled")
		return
	}
	writeJSON(w, s.journal.Stats())
}

func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		httpError(w, http.StatusNotFound, "virtual trading disabled")
		return
	}
	writeJSON(w, map[string]interface{}{
		"open":   s.journal.OpenTrades(),
		"closed": s.journal.ClosedTrades(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	writeJSON(w, map[string]interface{}{
		"status":        "ok",
		"clients":       s.hub.ClientCount(),
		"market_open":   markethours.IsMarketOpen(now),
		"market_status": markethours.StatusString(now),
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
