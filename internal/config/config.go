package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a Postgres connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Redis stores last-seen-status cache settings. An empty Addr disables the cache.
type Redis struct {
	Addr string
	DB   int
}

// Kafka stores status-event transport settings. Empty brokers disable it.
type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Auth stores session token settings.
type Auth struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// Login stores login rate limit settings.
type Login struct {
	RateLimit  int
	RateWindow time.Duration
}

// Nav stores navigation gateway settings. An empty RouteBaseURL disables
// route lookups; tracking links are then built from the location string only.
type Nav struct {
	RouteBaseURL string
	Destination  string
	MaxAttempts  int
	BaseDelay    time.Duration
	MaxDelay     time.Duration
}

// Config stores all service settings.
type Config struct {
	Port      int
	PprofPort int
	PprofUser string
	PprofPass string
	SeedAdmin bool
	DB        DB
	Redis     Redis
	Kafka     Kafka
	Auth      Auth
	Login     Login
	Nav       Nav
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      envInt("PORT", defaultPort),
		PprofPort: envInt("PPROF_PORT", defaultPprofPort),
		PprofUser: envStr("PPROF_USER", ""),
		PprofPass: envStr("PPROF_PASS", ""),
		SeedAdmin: envBool("SEED_ADMIN", false),
		DB: DB{
			Host: envStr("DB_HOST", defaultDB.Host),
			Port: envStr("DB_PORT", defaultDB.Port),
			User: envStr("DB_USER", defaultDB.User),
			Pass: envStr("DB_PASS", defaultDB.Pass),
			Name: envStr("DB_NAME", defaultDB.Name),
		},
		Redis: Redis{
			Addr: envStr("REDIS_ADDR", ""),
			DB:   envInt("REDIS_DB", 0),
		},
		Kafka: Kafka{
			Brokers: envList("KAFKA_BROKERS"),
			Topic:   envStr("KAFKA_TOPIC", defaultKafkaTopic),
			GroupID: envStr("KAFKA_GROUP_ID", defaultKafkaGroupID),
		},
		Auth: Auth{
			JWTSecret: envStr("JWT_SECRET", ""),
			TokenTTL:  envDuration("TOKEN_TTL", defaultTokenTTL),
		},
		Login: Login{
			RateLimit:  envInt("LOGIN_RATE_LIMIT", defaultLogin.RateLimit),
			RateWindow: envDuration("LOGIN_RATE_WINDOW", defaultLogin.RateWindow),
		},
		Nav: Nav{
			RouteBaseURL: envStr("NAV_ROUTE_URL", ""),
			Destination:  envStr("NAV_DESTINATION", defaultNav.Destination),
			MaxAttempts:  envInt("NAV_MAX_ATTEMPTS", defaultNav.MaxAttempts),
			BaseDelay:    envDuration("NAV_BASE_DELAY", defaultNav.BaseDelay),
			MaxDelay:     envDuration("NAV_MAX_DELAY", defaultNav.MaxDelay),
		},
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.BoolVar(&cfg.SeedAdmin, "seed-admin", cfg.SeedAdmin, "insert the default admin account if missing")
	pflag.Parse()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("invalid token ttl: %v", c.Auth.TokenTTL)
	}
	return nil
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
