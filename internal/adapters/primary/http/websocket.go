package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed between client messages. Deck generation can take a
	// while, so the window is generous.
	readWait = 10 * time.Minute

	// Maximum chat message size allowed from the peer.
	maxMessageSize = 64 * 1024
)

// createUpgrader creates a WebSocket upgrader with origin validation.
func (s *Server) createUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return s.isValidOrigin(r)
		},
	}
}

// handleWebSocket runs a chat session: each incoming message is one deck
// request, answered with either a ChatResponse or an error envelope.
// Generation errors keep the session alive; only transport errors end it.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := s.createUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMessageSize)

	for {
		_ = conn.SetReadDeadline(time.Now().Add(readWait))

		var msg ChatMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read failed", slog.String("error", err.Error()))
			}
			return
		}

		resp, err := s.generate(r, msg)

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err != nil {
			_, message := errorStatus(err)
			s.logger.Warn("websocket request failed", slog.String("error", err.Error()))
			if werr := conn.WriteJSON(errorResponse{Error: true, Message: message}); werr != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(resp); err != nil {
			return
		}
	}
}

// isValidOrigin validates WebSocket connection origins against the
// configured CORS whitelist, with localhost always allowed.
func (s *Server) isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Same-origin requests carry no Origin header.
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		s.logger.Warn("websocket rejected: invalid origin",
			slog.String("origin", origin), slog.String("error", err.Error()))
		return false
	}

	hostname := originURL.Hostname()
	if hostname == "localhost" || hostname == "127.0.0.1" {
		return true
	}

	for _, allowed := range s.cfg.CORSOrigins {
		if originURL.String() == allowed {
			return true
		}
	}

	s.logger.Warn("websocket rejected: origin not in whitelist",
		slog.String("origin", originURL.String()))
	return false
}
