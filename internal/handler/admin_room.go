package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/store"
)

type roomReq struct {
	Class     string `json:"class"` // SINGLE | MULTI | PENTHOUSE
	Beds      uint32 `json:"beds"`
	RateCents uint32 `json:"rate_cents"`
}

func (r roomReq) attrs() (store.RoomAttrs, bool) {
	class, ok := model.ParseRoomClass(strings.ToUpper(strings.TrimSpace(r.Class)))
	if !ok {
		return store.RoomAttrs{}, false
	}
	return store.RoomAttrs{Class: class, Beds: r.Beds, RateCents: r.RateCents}, true
}

// CreateRoom adds a room to an existing hotel.
func (h *AdminHandler) CreateRoom(c echo.Context) error {
	hotelID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	attrs, ok := req.attrs()
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "class must be SINGLE, MULTI or PENTHOUSE"})
	}

	room, err := h.Store.CreateRoom(c.Request().Context(), hotelID, attrs)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, room)
}

// UpdateRoom replaces a room's class, bed count and rate.
func (h *AdminHandler) UpdateRoom(c echo.Context) error {
	roomID, err := parseID(c, "room_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	attrs, ok := req.attrs()
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "class must be SINGLE, MULTI or PENTHOUSE"})
	}

	room, err := h.Store.UpdateRoom(c.Request().Context(), roomID, attrs)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// DeleteRoom removes a room. The store refuses while a confirmed reservation
// references it; cancelled reservations are removed along with the room.
func (h *AdminHandler) DeleteRoom(c echo.Context) error {
	roomID, err := parseID(c, "room_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	if err := h.Store.DeleteRoom(c.Request().Context(), roomID); err != nil {
		return writeDomainErr(c, err)
	}
	h.Index.Drop(roomID)
	return c.JSON(http.StatusOK, echo.Map{"deleted": roomID})
}
