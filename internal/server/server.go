// Package server serves the typing test to a browser over WebSocket. Each
// connection drives its own engine.
package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/verte-zerg/typespeed/internal/engine"
	"github.com/verte-zerg/typespeed/internal/model"
)

const writeTimeout = 5 * time.Second

//go:embed static/index.html
var indexHTML []byte

// Corpus supplies passages to every connection.
type Corpus interface {
	engine.Source
	Count() int
}

// Server hosts browser sessions.
type Server struct {
	corpus   Corpus
	logger   *log.Logger
	cfg      atomic.Pointer[model.Config]
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// New returns a Server using cfg for new connections. A nil logger uses the
// standard logger.
func New(corpus Corpus, cfg model.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		corpus: corpus,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		conns: map[*websocket.Conn]struct{}{},
	}
	s.cfg.Store(&cfg)
	return s
}

// SetConfig replaces the settings used by connections opened afterwards.
func (s *Server) SetConfig(cfg model.Config) {
	s.cfg.Store(&cfg)
}

// Config returns the current settings.
func (s *Server) Config() model.Config {
	return *s.cfg.Load()
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/api/passages", s.handlePassages)
	return mux
}

// Close terminates every open WebSocket session.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		_ = conn.Close()
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(indexHTML); err != nil {
		s.logger.Printf("failed to write index: %v", err)
	}
}

func (s *Server) handlePassages(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]int{"count": s.corpus.Count()}); err != nil {
		s.logger.Printf("failed to write passages: %v", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	cfg := s.Config()
	if v := r.URL.Query().Get("passage"); v != "" {
		idx, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid passage", http.StatusBadRequest)
			return
		}
		cfg.Passage = idx
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("WebSocket upgrade error: %v", err)
		return
	}
	s.track(conn)
	defer s.untrack(conn)

	out := &wsListener{conn: conn, logger: s.logger}
	eng := engine.New(s.corpus, out, engine.Options{
		RecomputeDelay: cfg.RecomputeDelay,
		Passage:        cfg.Passage,
	})
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		if err := eng.Run(ctx); err != nil {
			s.logger.Printf("session %s: %v", eng.ID(), err)
		}
	}()
	defer func() {
		cancel()
		<-stopped
	}()

	s.logger.Printf("session %s opened from %s", eng.ID(), r.RemoteAddr)
	s.readLoop(conn, eng)
	s.logger.Printf("session %s closed", eng.ID())
}

func (s *Server) readLoop(conn *websocket.Conn, eng *engine.Engine) {
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Printf("WebSocket error for session %s: %v", eng.ID(), err)
			}
			return
		}
		switch msg.Type {
		case TypeInput:
			raw, ok := msg.Data.(string)
			if !ok && msg.Data != nil {
				s.logger.Printf("invalid input payload: %v", msg.Data)
				continue
			}
			eng.InputChanged(raw)
		case TypePaste:
			eng.PasteAttempted()
		case TypeReset:
			eng.Reset()
		case TypeNew:
			eng.NewPassage()
		default:
			s.logger.Printf("unknown message type %q", msg.Type)
		}
	}
}

func (s *Server) track(conn *websocket.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	_ = conn.Close()
}

// wsListener forwards engine updates to one client.
type wsListener struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	logger *log.Logger
}

func (l *wsListener) OnDisplayUpdate(d model.Display) {
	l.write(Message{Type: TypeDisplay, Data: displayData(d)})
}

func (l *wsListener) OnStatsUpdate(st model.Stats) {
	l.write(Message{Type: TypeStats, Data: statsData(st)})
}

func (l *wsListener) OnTestCompleted(res model.Results) {
	l.write(Message{Type: TypeCompleted, Data: resultsData(res)})
}

func (l *wsListener) OnNotice(text string) {
	l.write(Message{Type: TypeNotice, Data: text})
}

func (l *wsListener) write(msg Message) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := l.conn.WriteJSON(msg); err != nil {
		l.logger.Printf("failed to send %s: %v", msg.Type, err)
	}
}
