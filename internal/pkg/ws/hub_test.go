package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestClient(hub *Hub, userID int64, buffer int) *Client {
	return &Client{
		hub:    hub,
		send:   make(chan []byte, buffer),
		rooms:  make(map[int64]bool),
		userID: userID,
		logger: zerolog.Nop(),
	}
}

func startHub() *Hub {
	hub := NewHub(zerolog.Nop())
	go hub.Run()
	return hub
}

// drainHub waits until the hub loop has drained everything queued before it,
// by round-tripping one more synchronous op.
func drainHub(hub *Hub, c *Client) {
	hub.leave <- roomOp{client: c, roomID: -1}
}

func receiveFrame(t *testing.T, c *Client) Envelope {
	t.Helper()
	select {
	case raw, ok := <-c.send:
		if !ok {
			t.Fatal("send channel closed unexpectedly")
		}
		var frame Envelope
		if err := json.Unmarshal(raw, &frame); err != nil {
			t.Fatalf("failed to decode frame: %v", err)
		}
		return frame
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
	}
	return Envelope{}
}

func expectSilence(t *testing.T, c *Client) {
	t.Helper()
	select {
	case raw := <-c.send:
		t.Fatalf("expected no frame, got %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcastToRoomReachesOnlyMembers(t *testing.T) {
	hub := startHub()

	member1 := newTestClient(hub, 1, 8)
	member2 := newTestClient(hub, 2, 8)
	outsider := newTestClient(hub, 3, 8)
	for _, c := range []*Client{member1, member2, outsider} {
		hub.register <- c
	}
	hub.join <- roomOp{client: member1, roomID: 5}
	hub.join <- roomOp{client: member2, roomID: 5}
	drainHub(hub, outsider)

	hub.BroadcastToRoom(5, "chat:new-message", map[string]string{"content": "hi"})

	for _, c := range []*Client{member1, member2} {
		frame := receiveFrame(t, c)
		if frame.Event != "chat:new-message" {
			t.Errorf("expected chat:new-message, got %s", frame.Event)
		}
		var payload map[string]string
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if payload["content"] != "hi" {
			t.Errorf("expected content hi, got %q", payload["content"])
		}
	}
	expectSilence(t, outsider)
}

func TestBroadcastToAllReachesEveryClient(t *testing.T) {
	hub := startHub()

	c1 := newTestClient(hub, 1, 8)
	c2 := newTestClient(hub, 2, 8)
	hub.register <- c1
	hub.register <- c2
	drainHub(hub, c2)

	hub.BroadcastToAll("attendance:new-checkin", map[string]int64{"userId": 7})

	for _, c := range []*Client{c1, c2} {
		frame := receiveFrame(t, c)
		if frame.Event != "attendance:new-checkin" {
			t.Errorf("expected attendance:new-checkin, got %s", frame.Event)
		}
	}
}

func TestLeaveRoomStopsDelivery(t *testing.T) {
	hub := startHub()

	client := newTestClient(hub, 1, 8)
	hub.register <- client
	hub.join <- roomOp{client: client, roomID: 9}
	hub.leave <- roomOp{client: client, roomID: 9}

	hub.BroadcastToRoom(9, "chat:new-message", nil)
	expectSilence(t, client)
}

func TestSlowClientIsDropped(t *testing.T) {
	hub := startHub()

	slow := newTestClient(hub, 1, 0) // no buffer, nothing reading
	healthy := newTestClient(hub, 2, 8)
	hub.register <- slow
	hub.register <- healthy
	drainHub(hub, healthy)

	if got := hub.ClientCount(); got != 2 {
		t.Fatalf("expected 2 clients, got %d", got)
	}

	hub.BroadcastToAll("attendance:new-checkin", nil)

	if frame := receiveFrame(t, healthy); frame.Event != "attendance:new-checkin" {
		t.Errorf("expected healthy client to receive event, got %s", frame.Event)
	}
	drainHub(hub, healthy)
	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("expected slow client to be dropped, got %d clients", got)
	}
}

func TestUnregisterCleansUpRooms(t *testing.T) {
	hub := startHub()

	client := newTestClient(hub, 1, 8)
	hub.register <- client
	hub.join <- roomOp{client: client, roomID: 3}
	drainHub(hub, client)
	if got := hub.RoomClientCount(3); got != 1 {
		t.Fatalf("expected 1 room client, got %d", got)
	}

	hub.unregister <- client
	drainHub(hub, newTestClient(hub, 99, 1))
	if got := hub.RoomClientCount(3); got != 0 {
		t.Fatalf("expected empty room after unregister, got %d", got)
	}
}
