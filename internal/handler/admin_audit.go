package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/audit"
)

// AuditHandler exposes the durable reservation trail. It is only registered
// when the MySQL recorder is configured.
type AuditHandler struct {
	Recorder *audit.Recorder
}

// NewAuditHandler constructs an AuditHandler.
func NewAuditHandler(r *audit.Recorder) *AuditHandler {
	if r == nil {
		panic("nil recorder passed to NewAuditHandler")
	}
	return &AuditHandler{Recorder: r}
}

// HistoryByRoom returns the audit rows for a room, newest first. Unlike the
// in-memory reservation history this survives restarts and keeps rows for
// rooms that were deleted since.
func (h *AuditHandler) HistoryByRoom(c echo.Context) error {
	roomID, err := parseID(c, "room_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	entries, err := h.Recorder.HistoryByRoom(c.Request().Context(), roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "audit store error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": entries})
}
