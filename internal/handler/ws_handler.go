package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"taskboard-api/internal/metrics"
	"taskboard-api/internal/middleware"
	"taskboard-api/internal/presence"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	presenceChannel = "presence:events"
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// presenceEvent is the client-to-server join message. The server trusts
// the authenticated user id from the token, not the one in the payload.
type presenceEvent struct {
	BoardID string `json:"boardId"`
	UserID  string `json:"userId,omitempty"`
}

// onlineUsersUpdate is broadcast to every socket in a board's room
// whenever the board's online set changes.
type onlineUsersUpdate struct {
	Type    string   `json:"type"`
	BoardID string   `json:"boardId"`
	Users   []string `json:"users"`
}

type wsClient struct {
	conn    *websocket.Conn
	send    chan []byte
	userID  uuid.UUID
	boardID uuid.UUID
	joined  bool
}

// boardMessage is a payload queued for fan-out to one board's room.
type boardMessage struct {
	boardID uuid.UUID
	payload []byte
}

// Hub keeps one room of websocket clients per board and rebroadcasts
// presence changes to the room. Registration happens when the client
// sends its join event, not at upgrade time.
type Hub struct {
	rooms      map[uuid.UUID]map[*wsClient]bool
	roomsMu    sync.RWMutex
	register   chan *wsClient
	unregister chan *wsClient
	broadcast  chan boardMessage

	tracker *presence.Tracker
	redis   *redis.Client
	metrics *metrics.Metrics
	logger  *zap.Logger

	online   int
	onlineMu sync.Mutex
}

// WSHandler upgrades presence websocket connections and drives the hub
type WSHandler struct {
	hub       *Hub
	jwtSecret string
	logger    *zap.Logger
}

// NewWSHandler creates the presence hub and starts its event loop
func NewWSHandler(tracker *presence.Tracker, redisClient *redis.Client, m *metrics.Metrics, jwtSecret string, logger *zap.Logger) *WSHandler {
	hub := &Hub{
		rooms:      make(map[uuid.UUID]map[*wsClient]bool),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		broadcast:  make(chan boardMessage, 256),
		tracker:    tracker,
		redis:      redisClient,
		metrics:    m,
		logger:     logger,
	}

	go hub.run()
	if redisClient != nil {
		go hub.subscribePresenceEvents()
	}

	return &WSHandler{
		hub:       hub,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.roomsMu.Lock()
			if h.rooms[client.boardID] == nil {
				h.rooms[client.boardID] = make(map[*wsClient]bool)
			}
			h.rooms[client.boardID][client] = true
			h.roomsMu.Unlock()

			changed := h.tracker.Join(client.boardID, client.userID)
			if changed {
				h.trackOnline(1)
			}

			h.logger.Info("Presence client joined",
				zap.String("boardId", client.boardID.String()),
				zap.String("userId", client.userID.String()))

			// New joiners always get the current set, even when they
			// were already online from another tab
			h.publishOnlineUsers(client.boardID)

		case client := <-h.unregister:
			h.roomsMu.Lock()
			if clients, ok := h.rooms[client.boardID]; ok {
				if _, exists := clients[client]; exists {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.rooms, client.boardID)
					}
				}
			}
			h.roomsMu.Unlock()

			changed := h.tracker.Leave(client.boardID, client.userID)
			if changed {
				h.trackOnline(-1)
				h.publishOnlineUsers(client.boardID)
			}

			h.logger.Info("Presence client left",
				zap.String("boardId", client.boardID.String()),
				zap.String("userId", client.userID.String()),
				zap.Bool("stillOnline", !changed))

		case msg := <-h.broadcast:
			h.broadcastToBoard(msg.boardID, msg.payload)
		}
	}
}

func (h *Hub) trackOnline(delta int) {
	h.onlineMu.Lock()
	h.online += delta
	count := h.online
	h.onlineMu.Unlock()
	if h.metrics != nil {
		h.metrics.SetPresenceUsersOnline(count)
	}
}

// publishOnlineUsers fans the board's online set out to the room. With
// Redis configured the update goes through pub/sub so every instance
// delivers it; otherwise it is broadcast to local sockets directly.
func (h *Hub) publishOnlineUsers(boardID uuid.UUID) {
	ids := h.tracker.MembersOf(boardID)
	users := make([]string, len(ids))
	for i, id := range ids {
		users[i] = id.String()
	}

	payload, err := json.Marshal(onlineUsersUpdate{
		Type:    "online-users-update",
		BoardID: boardID.String(),
		Users:   users,
	})
	if err != nil {
		h.logger.Error("Failed to marshal presence update", zap.Error(err))
		return
	}

	if h.redis != nil {
		err := h.redis.Publish(context.Background(), presenceChannel, payload).Err()
		if err == nil {
			return
		}
		h.logger.Warn("Redis publish failed, falling back to local broadcast", zap.Error(err))
	}
	h.broadcastToBoard(boardID, payload)
}

// subscribePresenceEvents keeps a pub/sub consumer alive for the life of
// the hub. A dropped subscription is re-established after a short pause
// so one Redis hiccup does not silence presence updates for good.
func (h *Hub) subscribePresenceEvents() {
	for {
		h.consumePresenceEvents()
		h.logger.Warn("Presence subscription ended, reconnecting")
		time.Sleep(2 * time.Second)
	}
}

func (h *Hub) consumePresenceEvents() {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Recovered from panic in presence subscription", zap.Any("panic", r))
		}
	}()

	pubsub := h.redis.Subscribe(context.Background(), presenceChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var update onlineUsersUpdate
		if err := json.Unmarshal([]byte(msg.Payload), &update); err != nil {
			h.logger.Warn("Failed to parse presence event", zap.Error(err))
			continue
		}
		boardID, err := uuid.Parse(update.BoardID)
		if err != nil {
			continue
		}
		h.enqueueBroadcast(boardID, []byte(msg.Payload))
	}
}

// enqueueBroadcast hands a payload to the hub goroutine for fan-out.
// Delivery and unregister are serialized there, so a send can never race
// the close of a client's send channel.
func (h *Hub) enqueueBroadcast(boardID uuid.UUID, payload []byte) {
	select {
	case h.broadcast <- boardMessage{boardID: boardID, payload: payload}:
	default:
		h.logger.Warn("Dropping presence update, broadcast queue full",
			zap.String("boardId", boardID.String()))
	}
}

// broadcastToBoard runs on the hub goroutine only.
func (h *Hub) broadcastToBoard(boardID uuid.UUID, message []byte) {
	h.roomsMu.RLock()
	clients := h.rooms[boardID]
	targets := make([]*wsClient, 0, len(clients))
	for client := range clients {
		targets = append(targets, client)
	}
	h.roomsMu.RUnlock()

	// Slow consumers drop updates rather than blocking the hub; the
	// next presence change resends the full set anyway.
	for _, client := range targets {
		select {
		case client.send <- message:
		default:
		}
	}
}

// HandleWebSocket handles GET /ws/presence. Authentication comes from
// the token query parameter because browsers cannot set headers on
// websocket upgrades.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
		return
	}

	userID, err := middleware.ParseToken(token, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", zap.Error(err))
		return
	}

	if h.hub.metrics != nil {
		h.hub.metrics.IncrementWebsocketConnections()
	}

	client := &wsClient{
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID,
	}

	go h.writePump(client)
	go h.readPump(client)
}

func (h *WSHandler) readPump(client *wsClient) {
	defer func() {
		if client.joined {
			h.hub.unregister <- client
		}
		client.conn.Close()
		if h.hub.metrics != nil {
			h.hub.metrics.DecrementWebsocketConnections()
		}
	}()

	client.conn.SetReadLimit(maxMessageSize)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("WebSocket error", zap.Error(err))
			}
			break
		}

		var event presenceEvent
		if err := json.Unmarshal(message, &event); err != nil {
			h.logger.Warn("Failed to parse presence event", zap.Error(err))
			continue
		}

		boardID, err := uuid.Parse(event.BoardID)
		if err != nil {
			h.logger.Warn("Invalid board id in presence event", zap.String("boardId", event.BoardID))
			continue
		}

		// One room per connection; switching boards needs a new socket
		if client.joined {
			if client.boardID != boardID {
				h.logger.Warn("Ignoring join for a second board on the same socket",
					zap.String("boardId", event.BoardID))
			}
			continue
		}

		client.boardID = boardID
		client.joined = true
		h.hub.register <- client
	}
}

func (h *WSHandler) writePump(client *wsClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
