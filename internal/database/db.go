// Package database opens the MySQL connection behind the reservation audit
// trail.  The audit writer is the only consumer, so the pool stays small
// and is tuned from configuration rather than hardcoded.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection with a short ping.
// maxConns bounds both open and idle connections; connTTL recycles pooled
// connections so long-lived processes survive server-side timeouts.
// Non-positive values fall back to a pool of 10 and a 30 minute lifetime.
func Open(user, pass, host, port, name string, maxConns int, connTTL time.Duration) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime maps DATETIME onto time.Time; loc=UTC keeps the audit rows
	// in the same zone the booking core normalises to.
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	if maxConns <= 0 {
		maxConns = 10
	}
	if connTTL <= 0 {
		connTTL = 30 * time.Minute
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(connTTL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}
