package socket

import (
	socketio "github.com/googollee/go-socket.io"
	"go.uber.org/zap"
)

// Hub pushes committed session state to the rendering layer over Socket.IO,
// so the UI does not have to poll the gateway for changes the engine already
// knows about. Each user gets a room named by their id; the session
// publishes into it.
type Hub struct {
	server *socketio.Server
	log    *zap.Logger
}

// NewHub initializes the Socket.IO server and its event handlers.
func NewHub(log *zap.Logger) *Hub {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Debug("socket connected", zap.String("socketId", c.ID()))
		return nil
	})

	// The rendering layer subscribes with its user id after login.
	server.OnEvent("/", "subscribe", func(c socketio.Conn, userID string) {
		if userID == "" {
			log.Warn("subscribe without userId", zap.String("socketId", c.ID()))
			return
		}
		c.Join(userID)
		log.Debug("socket subscribed", zap.String("socketId", c.ID()), zap.String("userId", userID))
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		log.Warn("socket error", zap.Error(err))
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Debug("socket disconnected", zap.String("socketId", c.ID()), zap.String("reason", reason))
	})

	return &Hub{server: server, log: log}
}

// Publish implements services.Notifier: broadcast a committed snapshot into
// the user's room.
func (h *Hub) Publish(userID, event string, payload interface{}) {
	h.server.BroadcastToRoom("/", userID, event, payload)
}

// Server exposes the underlying Socket.IO server for mounting and serving.
func (h *Hub) Server() *socketio.Server { return h.server }
