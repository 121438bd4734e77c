package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToStudent(toolID, studentID string, msgType string, payload interface{})
	BroadcastToMonitors(msgType string, payload interface{})
}
