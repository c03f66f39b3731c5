package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// Envelope is the frame format both directions speak: an event name and a
// JSON payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	roomID  int64 // 0 broadcasts to every client
	exclude *Client
	data    []byte
}

type roomOp struct {
	client *Client
	roomID int64
}

// Hub tracks connected clients and their room subscriptions, and fans
// events out to them. It satisfies services.Broadcaster.
type Hub struct {
	clients map[*Client]bool
	rooms   map[int64]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	join       chan roomOp
	leave      chan roomOp
	broadcast  chan outbound

	mu     sync.RWMutex
	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		rooms:      make(map[int64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan roomOp),
		leave:      make(chan roomOp),
		broadcast:  make(chan outbound, 64),
		logger:     logger,
	}
}

// Run processes registrations, room membership changes and broadcasts.
// It runs until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case op := <-h.join:
			h.joinRoom(op.client, op.roomID)
		case op := <-h.leave:
			h.leaveRoom(op.client, op.roomID)
		case out := <-h.broadcast:
			h.deliver(out)
		}
	}
}

// BroadcastToRoom delivers an event to every client joined to a room
func (h *Hub) BroadcastToRoom(roomID int64, event string, payload interface{}) {
	h.enqueue(roomID, nil, event, payload)
}

// BroadcastToAll delivers an event to every connected client
func (h *Hub) BroadcastToAll(event string, payload interface{}) {
	h.enqueue(0, nil, event, payload)
}

func (h *Hub) broadcastToRoomExcept(roomID int64, exclude *Client, event string, payload interface{}) {
	h.enqueue(roomID, exclude, event, payload)
}

func (h *Hub) enqueue(roomID int64, exclude *Client, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("Failed to marshal event payload")
		return
	}
	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("Failed to marshal event frame")
		return
	}
	h.broadcast <- outbound{roomID: roomID, exclude: exclude, data: frame}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = true
	h.logger.Info().Int64("userID", client.userID).Msg("Websocket client connected")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	for roomID := range client.rooms {
		h.removeFromRoom(client, roomID)
	}
	close(client.send)
	h.logger.Info().Int64("userID", client.userID).Msg("Websocket client disconnected")
}

func (h *Hub) joinRoom(client *Client, roomID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[*Client]bool)
	}
	h.rooms[roomID][client] = true
	client.rooms[roomID] = true
	h.logger.Debug().Int64("userID", client.userID).Int64("roomID", roomID).Msg("Client joined room")
}

func (h *Hub) leaveRoom(client *Client, roomID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeFromRoom(client, roomID)
	delete(client.rooms, roomID)
}

// removeFromRoom assumes h.mu is held
func (h *Hub) removeFromRoom(client *Client, roomID int64) {
	if members, ok := h.rooms[roomID]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

func (h *Hub) deliver(out outbound) {
	h.mu.RLock()
	targets := make([]*Client, 0)
	if out.roomID == 0 {
		for client := range h.clients {
			targets = append(targets, client)
		}
	} else {
		for client := range h.rooms[out.roomID] {
			targets = append(targets, client)
		}
	}
	h.mu.RUnlock()

	var dropped []*Client
	for _, client := range targets {
		if client == out.exclude {
			continue
		}
		select {
		case client.send <- out.data:
		default:
			// Send buffer full: the client is too slow, cut it loose.
			dropped = append(dropped, client)
		}
	}
	for _, client := range dropped {
		h.logger.Warn().Int64("userID", client.userID).Msg("Dropping slow websocket client")
		h.unregisterClient(client)
		if client.conn != nil {
			client.conn.Close()
		}
	}
}

// RoomClientCount returns how many clients are joined to a room
func (h *Hub) RoomClientCount(roomID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// ClientCount returns how many clients are connected
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
