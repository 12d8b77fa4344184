package handlers

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/MrSnakeDoc/docnav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/docnav/internal/logger"
	"github.com/MrSnakeDoc/docnav/internal/session"
)

// Origins are checked by the CORS layer; host pages embed the docs anywhere.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamRequest is one keystroke's worth of filter input.
type streamRequest struct {
	Query string `json:"query"`
}

// streamMessage is pushed for every committed result, or on error.
type streamMessage struct {
	Type  string `json:"type"` // "result" or "error"
	Error string `json:"error,omitempty"`
	*filterResponse
}

// streamConn serializes writes; results arrive from debouncer workers.
type streamConn struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
	log    logger.Logger
}

func (c *streamConn) send(msg streamMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if err := c.conn.WriteJSON(msg); err != nil {
		c.log.Debug("Stream write failed", logger.Error(err))
	}
}

func (c *streamConn) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	_ = c.conn.Close()
}

// StreamSession upgrades to a websocket that accepts queries as they are
// typed. Queries go through the debouncer, so a fast typist only gets the
// result of the query they settled on. Closing the socket keeps the session.
func StreamSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := d.Sessions.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "unknown session", d.Logger)
			return
		}
		from := r.URL.Query().Get("from")

		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			d.Logger.Debug("Websocket upgrade failed", logger.Error(err))
			return
		}
		conn := &streamConn{conn: ws, log: d.Logger}
		defer conn.close()

		onResult := func(res session.Result) {
			view := sessionView(s, res, from)
			conn.send(streamMessage{Type: "result", filterResponse: &view})
		}

		for {
			var req streamRequest
			if err := ws.ReadJSON(&req); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					d.Logger.Debug("Stream read failed", logger.Error(err))
				}
				return
			}

			// Keep the session alive while it is being typed into.
			d.Sessions.Get(s.ID())

			if d.Debouncer == nil {
				res, err := s.SetQuery(req.Query)
				if err != nil {
					conn.send(streamMessage{Type: "error", Error: err.Error()})
					continue
				}
				onResult(res)
				continue
			}
			if err := d.Debouncer.Schedule(s, req.Query, onResult); err != nil {
				conn.send(streamMessage{Type: "error", Error: err.Error()})
			}
		}
	}
}
