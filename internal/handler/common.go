// Package handler exposes HTTP handlers for the reservation API. Handlers are
// split by audience: auth, admin (hotel and room management), public browsing
// and guest reservations. This file holds the shared helpers.
package handler

import (
	"errors"  // sentinel error matching for status mapping
	"net/http"
	"strconv" // path parameter parsing
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/store"
)

// dateLayout is the preferred wire format for stay boundaries. Full RFC 3339
// timestamps are accepted as well for clients that book partial days.
const dateLayout = "2006-01-02"

// parseID reads a numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// parseStayTime accepts either a bare date or an RFC 3339 timestamp.
func parseStayTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// parseStayInterval builds an interval from two raw boundary strings.
func parseStayInterval(from, to string) (model.Interval, error) {
	start, err := parseStayTime(from)
	if err != nil {
		return model.Interval{}, err
	}
	end, err := parseStayTime(to)
	if err != nil {
		return model.Interval{}, err
	}
	return model.NewInterval(start, end), nil
}

// guestRefFrom pulls the authenticated guest reference set by the JWT middleware.
func guestRefFrom(c echo.Context) string {
	if s, ok := c.Get("guest_ref").(string); ok {
		return s
	}
	return ""
}

// writeDomainErr maps domain sentinel errors onto HTTP responses. Unknown
// errors become a generic 500 so internals never leak to clients.
func writeDomainErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, booking.ErrInvalidInterval), errors.Is(err, store.ErrInvalidArgument):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	case errors.Is(err, store.ErrForeignKeyViolation):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrDoubleBooking):
		return c.JSON(http.StatusConflict, echo.Map{"error": "room is already booked for the requested stay"})
	case errors.Is(err, store.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrBusy):
		c.Response().Header().Set("Retry-After", "1")
		return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "room is busy, retry shortly"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
