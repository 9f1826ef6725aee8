package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"loan-portal/internal/domain/apperr"
	"loan-portal/internal/domain/event"
)

// Subscriber opens a user's realtime stream.
type Subscriber interface {
	Subscribe(ctx context.Context, userID string) (<-chan event.Event, func() error, error)
}

type EventsHandler struct {
	sub       Subscriber
	log       *zap.Logger
	heartbeat time.Duration
	upgrader  websocket.Upgrader
}

const wsWriteWait = 10 * time.Second

func NewEventsHandler(sub Subscriber, log *zap.Logger) *EventsHandler {
	return &EventsHandler{
		sub:       sub,
		log:       log,
		heartbeat: 25 * time.Second,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// bearer auth only, no cookies to ride on
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Stream serves the caller's events as Server-Sent Events until the client
// disconnects.
func (h *EventsHandler) Stream(c echo.Context) error {
	s, ok, err := session(c)
	if !ok {
		return err
	}
	ctx := c.Request().Context()
	ch, closeFn, err := h.sub.Subscribe(ctx, s.UserID)
	if err != nil {
		return respondError(c, h.log, apperr.Transient(err))
	}
	defer func() {
		if err := closeFn(); err != nil {
			h.log.Debug("event subscription close", zap.Error(err))
		}
	}()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			data, err := json.Marshal(ev)
			if err != nil {
				h.log.Warn("event encode failed", zap.String("kind", string(ev.Kind)), zap.Error(err))
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Kind, data); err != nil {
				return nil
			}
			w.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}

// Socket serves the same stream over a WebSocket: one JSON text frame per
// event. Client frames are ignored apart from close.
func (h *EventsHandler) Socket(c echo.Context) error {
	s, ok, err := session(c)
	if !ok {
		return err
	}
	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()
	ch, closeFn, err := h.sub.Subscribe(ctx, s.UserID)
	if err != nil {
		return respondError(c, h.log, apperr.Transient(err))
	}
	defer func() {
		if err := closeFn(); err != nil {
			h.log.Debug("event subscription close", zap.Error(err))
		}
	}()

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already replied
		h.log.Debug("websocket upgrade failed", zap.Error(err))
		return nil
	}
	defer conn.Close()

	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(wsWriteWait))
			return nil
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(ev); err != nil {
				h.log.Debug("websocket write failed", zap.String("user_id", s.UserID), zap.Error(err))
				return nil
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return nil
			}
		}
	}
}
