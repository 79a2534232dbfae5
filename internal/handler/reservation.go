package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/query"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	queue_publisher "github.com/iliyamo/hotel-reservation/internal/service"
)

// ReservationHandler serves the guest booking endpoints. Mutations go
// through the coordinator; reads go through the query service.
type ReservationHandler struct {
	Booking *booking.Coordinator
	Query   *query.Service
}

// NewReservationHandler constructs a ReservationHandler and panics on nil
// dependencies.
func NewReservationHandler(b *booking.Coordinator, q *query.Service) *ReservationHandler {
	if b == nil || q == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{Booking: b, Query: q}
}

type bookReq struct {
	CheckIn  string `json:"check_in"`  // date (2006-01-02) or RFC 3339
	CheckOut string `json:"check_out"` // exclusive boundary, same formats
}

// Book places a reservation for the authenticated guest. The room lock,
// overlap check and store write are all handled by the coordinator; the
// handler only parses input and publishes the broker event afterwards.
func (h *ReservationHandler) Book(c echo.Context) error {
	roomID, err := parseID(c, "room_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	iv, err := parseStayInterval(req.CheckIn, req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in/check_out must be dates"})
	}
	guestRef := guestRefFrom(c)
	if guestRef == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing guest identity"})
	}

	res, err := h.Booking.Book(c.Request().Context(), roomID, guestRef, iv)
	if err != nil {
		return writeDomainErr(c, err)
	}

	h.publishEvent(c.Request().Context(), queue.EventReservationConfirmed, *res)
	return c.JSON(http.StatusCreated, res)
}

// Cancel flips a confirmed reservation to CANCELLED and frees its interval.
// Guests may only cancel their own reservations; admins may cancel any.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	res, err := h.Query.GetReservation(c.Request().Context(), id)
	if err != nil {
		return writeDomainErr(c, err)
	}
	role, _ := c.Get("role").(string)
	if role != "ADMIN" && res.GuestRef != guestRefFrom(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Booking.Cancel(c.Request().Context(), id); err != nil {
		return writeDomainErr(c, err)
	}

	h.publishEvent(c.Request().Context(), queue.EventReservationCancelled, *res)
	return c.JSON(http.StatusOK, echo.Map{"cancelled": id})
}

// Get returns a single reservation. Guests only see their own.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	res, err := h.Query.GetReservation(c.Request().Context(), id)
	if err != nil {
		return writeDomainErr(c, err)
	}
	role, _ := c.Get("role").(string)
	if role != "ADMIN" && res.GuestRef != guestRefFrom(c) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	return c.JSON(http.StatusOK, res)
}

// ListByRoom returns a room's full reservation history, confirmed and
// cancelled, ordered by ID. Admin only.
func (h *ReservationHandler) ListByRoom(c echo.Context) error {
	roomID, err := parseID(c, "room_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	items, err := h.Query.ListReservationsByRoom(c.Request().Context(), roomID)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// publishEvent sends the broker notification on a detached context so a slow
// broker never delays the HTTP response. Failures are logged inside the
// publisher and otherwise ignored.
func (h *ReservationHandler) publishEvent(reqCtx context.Context, eventType string, res model.Reservation) {
	hotelID := uint64(0)
	if room, err := h.Query.GetRoom(reqCtx, res.RoomID); err == nil {
		hotelID = room.HotelID
	}
	ev := queue.ReservationEvent{
		Type:          eventType,
		ReservationID: res.ID,
		RoomID:        res.RoomID,
		HotelID:       hotelID,
		GuestRef:      res.GuestRef,
		CheckIn:       res.Interval.Start.Format(time.RFC3339),
		CheckOut:      res.Interval.End.Format(time.RFC3339),
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishReservationEvent(ctx, ev)
	}()
}
