package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// User message types
const (
	MsgScoreUpdated MessageType = "score_updated"
	MsgError        MessageType = "error"
)

// Admin message types
const (
	MsgSweepStarted   MessageType = "sweep_started"
	MsgSweepCompleted MessageType = "sweep_completed"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections for users and admins
type Hub struct {
	userConns  map[string]*Connection // userID -> conn (status badge stream)
	adminConns map[*Connection]bool   // sweep dashboard streams

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection
type Connection struct {
	UserID  string // Empty for admin connections
	IsAdmin bool
	Send    chan []byte
	Hub     *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	ToAdmins bool
	ToUser   string // Target user ID when ToAdmins is false
	Message  *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		userConns:  make(map[string]*Connection),
		adminConns: make(map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if conn.IsAdmin {
				h.adminConns[conn] = true
				log.Println("Admin connected to sweep stream")
			} else {
				h.userConns[conn.UserID] = conn
				log.Printf("User %s connected to score stream", conn.UserID)
			}
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conn.IsAdmin {
				if h.adminConns[conn] {
					delete(h.adminConns, conn)
					close(conn.Send)
					log.Println("Admin disconnected from sweep stream")
				}
			} else {
				if existing, ok := h.userConns[conn.UserID]; ok && existing == conn {
					delete(h.userConns, conn.UserID)
					close(conn.Send)
					log.Printf("User %s disconnected from score stream", conn.UserID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)

			if msg.ToAdmins {
				for conn := range h.adminConns {
					select {
					case conn.Send <- data:
					default:
						// Drop message if buffer full
					}
				}
			} else {
				if conn, ok := h.userConns[msg.ToUser]; ok {
					select {
					case conn.Send <- data:
					default:
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToUser sends a message to one user's score stream (implements service.Broadcaster)
func (h *Hub) BroadcastToUser(userID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		ToUser: userID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// BroadcastToAdmins sends a message to all admin sweep streams (implements service.Broadcaster)
func (h *Hub) BroadcastToAdmins(msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		ToAdmins: true,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
