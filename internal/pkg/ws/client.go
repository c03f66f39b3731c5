package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/services"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024
)

// Client events
const (
	eventJoinRoom    = "chat:join-room"
	eventLeaveRoom   = "chat:leave-room"
	eventSendMessage = "chat:send-message"
	eventTyping      = "chat:typing"
)

// Server events
const (
	eventUserTyping = "chat:user-typing"
)

type roomPayload struct {
	RoomID int64 `json:"roomId"`
}

type sendMessagePayload struct {
	RoomID  int64  `json:"roomId"`
	Content string `json:"content"`
}

type typingNotice struct {
	RoomID   int64  `json:"roomId"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

// Client is a middleman between one websocket connection and the hub
type Client struct {
	hub         *Hub
	chatService services.ChatService
	conn        *websocket.Conn

	// Buffered channel of outbound frames
	send chan []byte

	// Room ids this client has joined; owned by the hub
	rooms map[int64]bool

	userID   int64
	username string
	logger   zerolog.Logger
}

// readPump pumps frames from the websocket connection to the hub until the
// peer disconnects.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Info().Int64("userID", c.userID).Msg("Websocket closed normally")
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn().Err(err).Int64("userID", c.userID).Msg("Unexpected websocket close")
			}
			break
		}

		var frame Envelope
		if err := json.Unmarshal(raw, &frame); err != nil {
			c.logger.Debug().Err(err).Int64("userID", c.userID).Msg("Discarding malformed frame")
			continue
		}
		c.handleFrame(&frame)
	}
}

func (c *Client) handleFrame(frame *Envelope) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch frame.Event {
	case eventJoinRoom:
		var p roomPayload
		if err := json.Unmarshal(frame.Data, &p); err != nil {
			return
		}
		member, err := c.chatService.IsMember(ctx, p.RoomID, c.userID)
		if err != nil || !member {
			c.logger.Debug().Int64("userID", c.userID).Int64("roomID", p.RoomID).Msg("Join refused")
			return
		}
		c.hub.join <- roomOp{client: c, roomID: p.RoomID}

	case eventLeaveRoom:
		var p roomPayload
		if err := json.Unmarshal(frame.Data, &p); err != nil {
			return
		}
		c.hub.leave <- roomOp{client: c, roomID: p.RoomID}

	case eventSendMessage:
		var p sendMessagePayload
		if err := json.Unmarshal(frame.Data, &p); err != nil || p.Content == "" {
			return
		}
		// The service persists and broadcasts chat:new-message itself.
		if _, err := c.chatService.SendMessage(ctx, p.RoomID, c.userID, p.Content); err != nil {
			c.logger.Warn().Err(err).Int64("userID", c.userID).Int64("roomID", p.RoomID).Msg("Relay send failed")
		}

	case eventTyping:
		var p roomPayload
		if err := json.Unmarshal(frame.Data, &p); err != nil {
			return
		}
		c.hub.broadcastToRoomExcept(p.RoomID, c, eventUserTyping, typingNotice{
			RoomID:   p.RoomID,
			UserID:   c.userID,
			Username: c.username,
		})

	default:
		c.logger.Debug().Str("event", frame.Event).Msg("Ignoring unknown event")
	}
}

// writePump pumps frames from the hub to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
