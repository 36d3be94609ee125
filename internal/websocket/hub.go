package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"campus-assistant-be/internal/dto"
	"campus-assistant-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const clusterChannel = "chat_session_events"

// Hub fans session state updates out to the rendering surfaces watching
// each session. With Redis configured it also relays updates across
// instances so a session's watcher can be connected anywhere.
type Hub struct {
	// Registered clients map: SessionID -> List of Clients (multi-tab)
	clients map[string][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance relay (nil for single instance)
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionId] = append(h.clients[client.SessionId], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionId})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.SessionId]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.SessionId] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.SessionId]) == 0 {
					delete(h.clients, client.SessionId)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"session_id": client.SessionId})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send pushes the latest session view to every client watching the
// session, locally and (via Redis) on other instances.
func (h *Hub) Send(sessionId string, view *dto.SessionView) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "session_state",
		"data": view,
	})

	// The sends are non-blocking, so holding the read lock across them
	// is cheap and keeps Run from closing a channel mid-send.
	var backedUp []*Client
	h.mu.RLock()
	for _, client := range h.clients[sessionId] {
		select {
		case client.Send <- data:
		default:
			backedUp = append(backedUp, client)
		}
	}
	h.mu.RUnlock()

	// Backed-up clients are handed to Run, which owns the single close
	// of each Send channel.
	for _, client := range backedUp {
		h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"session_id": sessionId})
		h.unregister <- client
	}

	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_session_id": sessionId,
			"message":           data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), clusterChannel, jsonPayload)
	}
}

func (h *Hub) subscribeToRedis() {
	// Every instance subscribes to the shared channel and forwards a
	// message only if it holds the target session locally.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetSessionId string          `json:"target_session_id"`
			Message         json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		var backedUp []*Client
		h.mu.RLock()
		for _, client := range h.clients[payload.TargetSessionId] {
			select {
			case client.Send <- payload.Message:
			default:
				backedUp = append(backedUp, client)
			}
		}
		h.mu.RUnlock()

		for _, client := range backedUp {
			h.unregister <- client
		}
	}
}
