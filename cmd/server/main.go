package main // Entry point package

import (
	"context" // bootstrap timeouts for optional infrastructure
	"log"     // Logging library
	"time"    // schema bootstrap timeout

	"github.com/labstack/echo/v4" // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/hotel-reservation/internal/audit"
	"github.com/iliyamo/hotel-reservation/internal/auth"
	"github.com/iliyamo/hotel-reservation/internal/availability"
	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/database"
	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/query"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/router"
	"github.com/iliyamo/hotel-reservation/internal/store"
)

func main() {
	cfg := config.Load() // Load environment config

	// Core state: entity store plus the availability index, coordinated by
	// the booking layer. Everything below is optional infrastructure.
	entityStore := store.New()
	index := availability.New()

	// MySQL-backed audit trail. The service runs fine without it; bookings
	// simply leave no durable history.
	var recorder *audit.Recorder
	if cfg.DBHost != "" {
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBMaxConns, cfg.DBConnTTL)
		if err != nil {
			log.Printf("audit trail disabled: %v", err)
		} else {
			recorder = audit.NewRecorder(db)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := recorder.EnsureSchema(ctx); err != nil {
				log.Printf("audit trail disabled: schema: %v", err)
				recorder = nil
			}
			cancel()
		}
	}

	opts := booking.Options{LockWait: cfg.LockWait}
	if recorder != nil {
		opts.Audit = recorder
	}
	coordinator := booking.New(entityStore, index, opts)
	queries := query.New(entityStore, index)

	// Seeded accounts: one admin for management, one guest for bookings.
	accounts := auth.NewRegistry()
	if err := accounts.Seed(cfg.AdminUser, cfg.AdminPass, auth.RoleAdmin, cfg.BcryptCost); err != nil {
		log.Fatalf("seed admin account: %v", err)
	}
	if err := accounts.Seed(cfg.GuestUser, cfg.GuestPass, auth.RoleGuest, cfg.BcryptCost); err != nil {
		log.Fatalf("seed guest account: %v", err)
	}

	// Redis backs the response cache and the rate limiter; nil disables both.
	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, accounts), cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminHandler(entityStore, index), cfg.JWTSecret)
	router.RegisterPublic(e, handler.NewPublicHandler(queries), cacheCfg, rlCfg, rdb)
	router.RegisterReservations(e, handler.NewReservationHandler(coordinator, queries), cfg.JWTSecret)
	if recorder != nil {
		router.RegisterAudit(e, handler.NewAuditHandler(recorder), cfg.JWTSecret)
	}

	// Background consumer mirroring broker events into logs/reservation.log.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
