package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgResponseReceived   MessageType = "response_received"
	MsgSummaryInvalidated MessageType = "summary_invalidated"
	MsgError              MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages dashboard WebSocket connections. A connection belongs to one
// account and optionally narrows its feed to a single survey.
type Hub struct {
	accountConns  map[string]map[*Connection]bool // accountID -> conns
	surveyWatches map[string]map[*Connection]bool // surveyID -> conns

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents one dashboard WebSocket connection
type Connection struct {
	AccountID string
	SurveyID  string // empty = account-wide feed
	Send      chan []byte
	Hub       *Hub
}

// BroadcastMessage is a message to fan out
type BroadcastMessage struct {
	AccountID string // non-empty: all of the account's connections
	SurveyID  string // non-empty: connections watching this survey
	Message   *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		accountConns:  make(map[string]map[*Connection]bool),
		surveyWatches: make(map[string]map[*Connection]bool),
		register:      make(chan *Connection),
		unregister:    make(chan *Connection),
		broadcast:     make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.accountConns[conn.AccountID] == nil {
				h.accountConns[conn.AccountID] = make(map[*Connection]bool)
			}
			h.accountConns[conn.AccountID][conn] = true
			if conn.SurveyID != "" {
				if h.surveyWatches[conn.SurveyID] == nil {
					h.surveyWatches[conn.SurveyID] = make(map[*Connection]bool)
				}
				h.surveyWatches[conn.SurveyID][conn] = true
			}
			log.Printf("Dashboard connected: account %s survey %q", conn.AccountID, conn.SurveyID)
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.accountConns[conn.AccountID]; ok && conns[conn] {
				delete(conns, conn)
				if len(conns) == 0 {
					delete(h.accountConns, conn.AccountID)
				}
				if conn.SurveyID != "" {
					if watches, ok := h.surveyWatches[conn.SurveyID]; ok {
						delete(watches, conn)
						if len(watches) == 0 {
							delete(h.surveyWatches, conn.SurveyID)
						}
					}
				}
				close(conn.Send)
				log.Printf("Dashboard disconnected: account %s", conn.AccountID)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)

			if msg.SurveyID != "" {
				for conn := range h.surveyWatches[msg.SurveyID] {
					select {
					case conn.Send <- data:
					default:
						// Drop message if buffer full
					}
				}
			} else if msg.AccountID != "" {
				for conn := range h.accountConns[msg.AccountID] {
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

// BroadcastToSurvey sends a message to connections watching a survey
// (implements service.Broadcaster)
func (h *Hub) BroadcastToSurvey(surveyID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		SurveyID: surveyID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// BroadcastToAccount sends a message to all of an account's connections
// (implements service.Broadcaster)
func (h *Hub) BroadcastToAccount(accountID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		AccountID: accountID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
