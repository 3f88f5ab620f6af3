package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr string

	// Place source. With no PLACES_BASE_URL the server falls back to a
	// small built-in station list, useful for local runs.
	PlacesBaseURL string
	PlacesAPIKey  string
	RadiusMeters  int
	PlacesCache   bool

	// Receipt archive: Postgres when DATABASE_URL is set, otherwise a
	// directory on disk.
	DatabaseURL    string
	ReceiptDir     string
	MigrateOnStart bool

	// Notification sink: NATS when enabled, otherwise a noop.
	NATSEnabled   bool
	NATSURL       string
	NATSSubject   string
	NotifyBuffer  int
	ShutdownGrace time.Duration
}

func Load() Config {
	var cfg Config
	cfg.HTTPAddr = getString("HTTP_ADDR", ":8080")
	cfg.PlacesBaseURL = os.Getenv("PLACES_BASE_URL")
	cfg.PlacesAPIKey = os.Getenv("PLACES_API_KEY")
	cfg.RadiusMeters = getInt("SEARCH_RADIUS_METERS", 5000)
	cfg.PlacesCache = getBool("PLACES_CACHE", true)
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.ReceiptDir = getString("RECEIPT_DIR", "receipts")
	cfg.MigrateOnStart = getBool("MIGRATE_ON_START", true)
	cfg.NATSEnabled = getBool("NATS_ENABLED", false)
	cfg.NATSURL = getString("NATS_URL", "nats://127.0.0.1:4222")
	cfg.NATSSubject = getString("NATS_SUBJECT", "refuel.notifications")
	cfg.NotifyBuffer = getInt("NOTIFY_BUFFER", 64)
	cfg.ShutdownGrace = getDuration("SHUTDOWN_GRACE", 10*time.Second)
	return cfg
}

func getString(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
