package services

// Broadcaster pushes server-originated events to connected websocket
// clients. The hub implements it; services depend on this interface so the
// realtime layer stays injectable.
type Broadcaster interface {
	// BroadcastToRoom delivers an event to every client joined to a room.
	BroadcastToRoom(roomID int64, event string, payload interface{})
	// BroadcastToAll delivers an event to every connected client.
	BroadcastToAll(event string, payload interface{})
}

// NopBroadcaster discards every event; used when no hub is wired (tests).
type NopBroadcaster struct{}

func (NopBroadcaster) BroadcastToRoom(int64, string, interface{}) {}
func (NopBroadcaster) BroadcastToAll(string, interface{})         {}
