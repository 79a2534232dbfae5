package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/query"
)

// PublicHandler serves unauthenticated browsing. All reads go through the
// query service so responses stay consistent with in-flight bookings.
type PublicHandler struct {
	Query *query.Service
}

// NewPublicHandler constructs a PublicHandler.
func NewPublicHandler(q *query.Service) *PublicHandler {
	if q == nil {
		panic("nil query service passed to NewPublicHandler")
	}
	return &PublicHandler{Query: q}
}

// ListHotels returns all hotels ordered by ID.
// Response JSON contains an "items" array.
func (h *PublicHandler) ListHotels(c echo.Context) error {
	hotels, err := h.Query.ListHotels(c.Request().Context())
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": hotels})
}

// GetHotel returns a single hotel.
func (h *PublicHandler) GetHotel(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	hotel, err := h.Query.GetHotel(c.Request().Context(), id)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, hotel)
}

// roomFilterFromQuery builds a RoomFilter from the request's query string.
// Supported parameters:
//
//	class          SINGLE | MULTI | PENTHOUSE
//	min_beds       minimum bed count
//	available_from / available_to   rooms fully free during the window
//	occupied_from  / occupied_to    rooms with at least one overlapping stay
func roomFilterFromQuery(c echo.Context) (query.RoomFilter, error) {
	var f query.RoomFilter

	if raw := strings.TrimSpace(c.QueryParam("class")); raw != "" {
		class, ok := model.ParseRoomClass(strings.ToUpper(raw))
		if !ok {
			return f, echo.NewHTTPError(http.StatusBadRequest, "class must be SINGLE, MULTI or PENTHOUSE")
		}
		f.Class = &class
	}
	if raw := strings.TrimSpace(c.QueryParam("min_beds")); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "min_beds must be a number")
		}
		beds := uint32(n)
		f.MinBeds = &beds
	}
	if from, to := c.QueryParam("available_from"), c.QueryParam("available_to"); from != "" || to != "" {
		iv, err := parseStayInterval(from, to)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "available_from/available_to must be dates")
		}
		f.AvailableDuring = &iv
	}
	if from, to := c.QueryParam("occupied_from"), c.QueryParam("occupied_to"); from != "" || to != "" {
		iv, err := parseStayInterval(from, to)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "occupied_from/occupied_to must be dates")
		}
		f.OccupiedDuring = &iv
	}
	return f, nil
}

// ListRooms returns a hotel's rooms, optionally narrowed by class, bed count
// and occupancy window. Results are ordered by room ID.
func (h *PublicHandler) ListRooms(c echo.Context) error {
	hotelID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	filter, err := roomFilterFromQuery(c)
	if err != nil {
		return err
	}

	rooms, err := h.Query.ListRooms(c.Request().Context(), hotelID, filter)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rooms})
}

// GetRoom returns a single room.
func (h *PublicHandler) GetRoom(c echo.Context) error {
	roomID, err := parseID(c, "room_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	room, err := h.Query.GetRoom(c.Request().Context(), roomID)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// FreeIntervals lists a room's maximal free gaps inside a window given by
// the required "from" and "to" query parameters.
func (h *PublicHandler) FreeIntervals(c echo.Context) error {
	roomID, err := parseID(c, "room_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	window, err := parseStayInterval(c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from/to must be dates"})
	}

	gaps, err := h.Query.FreeIntervals(c.Request().Context(), roomID, window)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": gaps})
}
