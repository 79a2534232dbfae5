package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time parses duration values

	"github.com/joho/godotenv" // godotenv loads a local .env file in development
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Database fields are optional: when DB_HOST is
// empty the MySQL audit trail is disabled and the service runs purely
// in-memory.
type Config struct {
	Env          string        // application environment (e.g. "dev", "prod")
	Port         string        // HTTP port to listen on
	DBUser       string        // audit database username (optional)
	DBPass       string        // audit database password (optional)
	DBHost       string        // audit database host; empty disables the audit trail
	DBPort       string        // audit database port
	DBName       string        // audit database name
	DBMaxConns   int           // connection pool ceiling for the audit database
	DBConnTTL    time.Duration // maximum lifetime of a pooled audit connection
	JWTSecret    string        // secret used to sign access tokens
	AccessTTLMin int           // access token time-to-live in minutes
	BcryptCost   int           // bcrypt cost for the seeded account hashes
	LockWait     time.Duration // bound on waiting for a room's exclusive section
	AdminUser    string        // seeded administrative account name
	AdminPass    string        // seeded administrative account password
	GuestUser    string        // seeded guest account name
	GuestPass    string        // seeded guest account password
}

// Load reads configuration from the environment, after merging in a .env
// file when one exists.  JWT_SECRET is the only hard requirement; the rest
// fall back to development defaults.
func Load() Config {
	_ = godotenv.Load() // missing .env is fine outside development

	return Config{
		Env:          getenv("APP_ENV", "dev"),
		Port:         getenv("APP_PORT", "8080"),
		DBUser:       os.Getenv("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"),
		DBHost:       os.Getenv("DB_HOST"),
		DBPort:       getenv("DB_PORT", "3306"),
		DBName:       getenv("DB_NAME", "hotel_reservation"),
		DBMaxConns:   atoi(getenv("DB_MAX_CONNS", "10")),
		DBConnTTL:    parseDur(getenv("DB_CONN_TTL", "30m"), 30*time.Minute),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: atoi(getenv("ACCESS_TOKEN_TTL_MIN", "30")),
		BcryptCost:   atoi(getenv("BCRYPT_COST", "10")),
		LockWait:     parseDur(getenv("ROOM_LOCK_WAIT", "3s"), 3*time.Second),
		AdminUser:    getenv("ADMIN_USER", "admin"),
		AdminPass:    getenv("ADMIN_PASS", "admin"),
		GuestUser:    getenv("GUEST_USER", "guest"),
		GuestPass:    getenv("GUEST_PASS", "guest"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseDur(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
