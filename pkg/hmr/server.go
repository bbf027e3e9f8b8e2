package hmr

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Server fans reload messages out to every connected browser tab.
type Server struct {
	clients   map[*websocket.Conn]string
	broadcast chan Message
	mu        sync.RWMutex
	upgrader  websocket.Upgrader
	logger    *slog.Logger
	done      chan struct{}
	closeOnce sync.Once
}

func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		clients:   make(map[*websocket.Conn]string),
		broadcast: make(chan Message, 256),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
		done:   make(chan struct{}),
	}
}

func (s *Server) Start() {
	go s.handleBroadcasts()
}

// Close stops broadcasting and disconnects every client.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		close(s.done)

		s.mu.Lock()
		defer s.mu.Unlock()
		for conn := range s.clients {
			conn.Close()
			delete(s.clients, conn)
		}
	})
}

func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	id := uuid.NewString()

	s.mu.Lock()
	s.clients[conn] = id
	err = conn.WriteJSON(Message{Type: MsgTypeConnect, ClientID: id})
	s.mu.Unlock()
	if err != nil {
		s.drop(conn)
		return
	}
	s.logger.Debug("hmr client connected", "client", id)

	defer s.drop(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	id, ok := s.clients[conn]
	delete(s.clients, conn)
	s.mu.Unlock()

	conn.Close()
	if ok {
		s.logger.Debug("hmr client disconnected", "client", id)
	}
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) handleBroadcasts() {
	for {
		select {
		case <-s.done:
			return
		case msg := <-s.broadcast:
			s.send(msg)
		}
	}
}

func (s *Server) send(msg Message) {
	// Writes happen under the write lock: gorilla connections allow one
	// concurrent writer.
	s.mu.Lock()
	defer s.mu.Unlock()

	for conn, id := range s.clients {
		if err := conn.WriteJSON(msg); err != nil {
			s.logger.Debug("dropping hmr client", "client", id, "error", err)
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

func (s *Server) publish(msg Message) {
	select {
	case s.broadcast <- msg:
	case <-s.done:
	}
}

func (s *Server) BroadcastReload() {
	s.publish(Message{Type: MsgTypeReload})
}

func (s *Server) BroadcastWasmReload(path, hash string) {
	s.publish(Message{
		Type: MsgTypeWasmReload,
		Path: path,
		Hash: hash,
	})
}

// BroadcastRoutes announces the route table so open tabs can warn when a
// reload changed the match order.
func (s *Server) BroadcastRoutes(patterns []string) {
	s.publish(Message{
		Type:   MsgTypeRoutes,
		Routes: patterns,
	})
}
