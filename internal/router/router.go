package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework used for routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hotel-reservation/internal/auth"
	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication beyond the
// global middleware. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the login endpoint under /v1/auth and the
// token-protected /v1/me endpoint.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)

	me := e.Group("/v1")
	me.Use(middleware.JWTAuth(jwtSecret))
	me.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleGuest))
	me.GET("/me", a.Me)
}

// RegisterAdmin registers the hotel and room management endpoints. Every
// route requires a valid access token with the ADMIN role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(auth.RoleAdmin))

	g.POST("/hotels", h.CreateHotel)
	g.PUT("/hotels/:id", h.UpdateHotel)
	g.DELETE("/hotels/:id", h.DeleteHotel)

	g.POST("/hotels/:id/rooms", h.CreateRoom)
	g.PUT("/rooms/:room_id", h.UpdateRoom)
	g.DELETE("/rooms/:room_id", h.DeleteRoom)
}

// RegisterPublic registers the unauthenticated browse endpoints. GET
// responses are cached in Redis and rate limited per client when a Redis
// client is available; with a nil client both middlewares are no-ops.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cacheCfg config.CacheConfig, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/v1")
	g.Use(middleware.RateLimit(rlCfg, rdb))
	g.Use(middleware.ResponseCache(cacheCfg, rdb))

	g.GET("/hotels", p.ListHotels)
	g.GET("/hotels/:id", p.GetHotel)
	g.GET("/hotels/:id/rooms", p.ListRooms)
	g.GET("/rooms/:room_id", p.GetRoom)
	g.GET("/rooms/:room_id/free", p.FreeIntervals)
}

// RegisterAudit registers the durable audit trail endpoint. Callers only
// invoke this when a recorder is actually configured.
func RegisterAudit(e *echo.Echo, h *handler.AuditHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(auth.RoleAdmin))
	g.GET("/rooms/:room_id/audit", h.HistoryByRoom)
}

// RegisterReservations registers the booking endpoints. Both roles may book
// and cancel; the handler enforces that guests only touch their own
// reservations while room history stays admin only.
func RegisterReservations(e *echo.Echo, r *handler.ReservationHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleGuest))

	g.POST("/rooms/:room_id/reservations", r.Book)
	g.DELETE("/reservations/:id", r.Cancel)
	g.GET("/reservations/:id", r.Get)

	admin := e.Group("/v1/admin")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(auth.RoleAdmin))
	admin.GET("/rooms/:room_id/reservations", r.ListByRoom)
}
