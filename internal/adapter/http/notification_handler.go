package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"loan-portal/internal/usecase/notification"
)

type NotificationHandler struct {
	uc  *notification.Usecase
	log *zap.Logger
}

func NewNotificationHandler(uc *notification.Usecase, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{uc: uc, log: log}
}

func (h *NotificationHandler) List(c echo.Context) error {
	s, ok, err := session(c)
	if !ok {
		return err
	}
	ctx := c.Request().Context()
	list, err := h.uc.List(ctx, s.UserID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	unread, err := h.uc.UnreadCount(ctx, s.UserID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"notifications": list,
		"unread":        unread,
	})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	s, ok, err := session(c)
	if !ok {
		return err
	}
	nid, ok, err := pathID(c, "notification_id")
	if !ok {
		return err
	}
	if err := h.uc.MarkRead(c.Request().Context(), s.UserID, nid); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	s, ok, err := session(c)
	if !ok {
		return err
	}
	n, err := h.uc.MarkAllRead(c.Request().Context(), s.UserID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"updated": n})
}
