package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"cellmon/internal/fleet"
)

// Hub fans published snapshots out to all connected dashboard clients.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]*Connection

	nextID       atomic.Uint64
	writeTimeout time.Duration
	logger       *zap.Logger
	upgrader     websocket.Upgrader
}

// NewHub builds the broadcast hub.
func NewHub(writeTimeout time.Duration, logger *zap.Logger) *Hub {
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	return &Hub{
		connections:  make(map[string]*Connection),
		writeTimeout: writeTimeout,
		logger:       logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWS upgrades GET /ws requests and registers the client.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	id := fmt.Sprintf("dash-%d", h.nextID.Add(1))
	ctx, cancel := context.WithCancel(context.Background())
	connection := NewConnection(id, conn, h.writeTimeout, h.logger, func(closedID string) {
		h.mu.Lock()
		delete(h.connections, closedID)
		h.mu.Unlock()
		cancel()
	})

	h.mu.Lock()
	h.connections[id] = connection
	h.mu.Unlock()

	go connection.Start(ctx)
	h.logger.Info("dashboard client connected", zap.String("conn_id", id))
}

// Broadcast pushes a snapshot frame to every connected client.
func (h *Hub) Broadcast(snap *fleet.Snapshot) {
	frame, err := json.Marshal(snapshotFrame{
		Type:       "snapshot",
		Snapshot:   snap,
		Aggregates: snap.Aggregates(),
	})
	if err != nil {
		h.logger.Error("failed to encode snapshot frame", zap.Error(err))
		return
	}

	h.mu.RLock()
	for _, conn := range h.connections {
		conn.Send(frame)
	}
	h.mu.RUnlock()
}

// ClientCount reports connected dashboard clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

type snapshotFrame struct {
	Type       string           `json:"type"`
	Snapshot   *fleet.Snapshot  `json:"snapshot"`
	Aggregates fleet.Aggregates `json:"aggregates"`
}
