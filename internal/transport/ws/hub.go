package ws

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Student message types
const (
	MsgInsightReady MessageType = "insight_ready"
	MsgReportReady  MessageType = "report_ready"
	MsgError        MessageType = "error"
)

// Monitor message types
const (
	MsgFallbackUsed     MessageType = "fallback_used"
	MsgStudentConnected MessageType = "student_connected"
	MsgStudentLeft      MessageType = "student_left"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections: one per student per tool, plus any
// number of advisor monitor connections.
type Hub struct {
	studentConns map[string]*Connection // toolID|studentID -> conn
	monitorConns map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection
type Connection struct {
	ToolID    string
	StudentID string // Empty for monitor connections
	IsMonitor bool
	Send      chan []byte
	Hub       *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	ToolID     string
	StudentID  string // Empty plus ToMonitors means all monitors
	ToMonitors bool
	Message    *Message
}

func studentKey(toolID, studentID string) string {
	return fmt.Sprintf("%s|%s", toolID, studentID)
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		studentConns: make(map[string]*Connection),
		monitorConns: make(map[*Connection]bool),
		register:     make(chan *Connection),
		unregister:   make(chan *Connection),
		broadcast:    make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if conn.IsMonitor {
				h.monitorConns[conn] = true
				log.Println("Monitor connected")
			} else {
				h.studentConns[studentKey(conn.ToolID, conn.StudentID)] = conn
				log.Printf("Student %s connected for tool %s", conn.StudentID, conn.ToolID)
				h.notifyMonitors(MsgStudentConnected, conn)
			}
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conn.IsMonitor {
				if h.monitorConns[conn] {
					delete(h.monitorConns, conn)
					close(conn.Send)
					log.Println("Monitor disconnected")
				}
			} else {
				key := studentKey(conn.ToolID, conn.StudentID)
				if existing, ok := h.studentConns[key]; ok && existing == conn {
					delete(h.studentConns, key)
					close(conn.Send)
					log.Printf("Student %s disconnected from tool %s", conn.StudentID, conn.ToolID)
					h.notifyMonitors(MsgStudentLeft, conn)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)

			if msg.ToMonitors {
				for conn := range h.monitorConns {
					select {
					case conn.Send <- data:
					default:
						// Drop message if buffer full
					}
				}
			} else {
				if conn, ok := h.studentConns[studentKey(msg.ToolID, msg.StudentID)]; ok {
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

// BroadcastToStudent sends a message to one student's connection
// (implements service.Broadcaster)
func (h *Hub) BroadcastToStudent(toolID, studentID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		ToolID:    toolID,
		StudentID: studentID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// BroadcastToMonitors sends a message to all advisor monitor connections
// (implements service.Broadcaster)
func (h *Hub) BroadcastToMonitors(msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		ToMonitors: true,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

func (h *Hub) notifyMonitors(msgType MessageType, conn *Connection) {
	payload, _ := json.Marshal(map[string]string{
		"toolId":    conn.ToolID,
		"studentId": conn.StudentID,
	})
	data, _ := json.Marshal(&Message{Type: msgType, Payload: payload})
	for m := range h.monitorConns {
		select {
		case m.Send <- data:
		default:
		}
	}
}
