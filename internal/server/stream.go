package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const writeTimeout = 10 * time.Second

// handleStream upgrades the connection and pushes a freshly computed
// recommendation immediately and then on every interval tick. Snapshot
// refresh happens elsewhere (the serve command's refresh loop); each tick
// simply recomputes against whatever the store currently holds.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	connID := uuid.New().String()
	logger := s.logger.With(zap.String("connID", connID), zap.String("path", r.URL.Path))
	logger.Info("stream connected")

	// Reader goroutine: drain control frames, signal close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		_ = conn.Close()
		logger.Info("stream disconnected")
	}()

	ticker := time.NewTicker(s.streamInterval)
	defer ticker.Stop()

	if !s.streamOnce(conn, r, logger) {
		return
	}
	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if !s.streamOnce(conn, r, logger) {
				return
			}
		}
	}
}

// streamOnce sends one recommendation frame; errors go to the client as a
// JSON error object so a consumer can tell "no trade" from a dead socket.
func (s *Server) streamOnce(conn *websocket.Conn, r *http.Request, logger *zap.Logger) bool {
	rec, _, err := s.recommend(r)

	var payload any = rec
	if err != nil {
		payload = errorResponse{Error: err.Error()}
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(payload); err != nil {
		logger.Debug("stream write failed", zap.Error(err))
		return false
	}
	return true
}
