package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/availability"
	"github.com/iliyamo/hotel-reservation/internal/store"
)

// AdminHandler bundles the entity store and availability index for the
// management endpoints. Deleting rooms or hotels must also drop the
// corresponding interval sequences, which is why the index is held here.
type AdminHandler struct {
	Store *store.EntityStore
	Index *availability.Index
}

// NewAdminHandler constructs an AdminHandler and panics if a dependency is nil.
func NewAdminHandler(s *store.EntityStore, idx *availability.Index) *AdminHandler {
	if s == nil || idx == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{Store: s, Index: idx}
}

type hotelReq struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// CreateHotel registers a new hotel.
func (h *AdminHandler) CreateHotel(c echo.Context) error {
	var req hotelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	hotel, err := h.Store.CreateHotel(c.Request().Context(), req.Name, strings.TrimSpace(req.Address))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, hotel)
}

// UpdateHotel changes a hotel's name and address.
func (h *AdminHandler) UpdateHotel(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req hotelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	hotel, err := h.Store.UpdateHotel(c.Request().Context(), id, req.Name, strings.TrimSpace(req.Address))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, hotel)
}

// DeleteHotel removes a hotel together with its rooms. The store refuses the
// cascade while any room still has a confirmed reservation; on success the
// availability sequences of the removed rooms are dropped as well.
func (h *AdminHandler) DeleteHotel(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	roomIDs, err := h.Store.DeleteHotel(c.Request().Context(), id)
	if err != nil {
		return writeDomainErr(c, err)
	}
	for _, rid := range roomIDs {
		h.Index.Drop(rid)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": id, "rooms_removed": len(roomIDs)})
}
