package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings shared by the API and the matching worker.
type Config struct {
	Port      int
	LogLevel  string
	DB        DB
	Kafka     Kafka
	Matching  Matching
	Push      Push
	RateLimit RateLimit
	CORS      CORS
	Ops       Ops
}

// DB stores Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a postgres:// connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Kafka stores broker settings for the request-created topic.
type Kafka struct {
	Brokers       []string
	GroupID       string
	RequestsTopic string
}

// Matching tunes the donor matching worker.
type Matching struct {
	RunTimeout          time.Duration
	TopN                int
	StandardRadiusM     float64
	EmergencyRadiusM    float64
	MinDonationInterval time.Duration
}

// Push selects the notification provider: fcm, sns or log.
type Push struct {
	Provider           string
	FCMCredentialsFile string
}

// Push providers.
const (
	PushFCM = "fcm"
	PushSNS = "sns"
	PushLog = "log"
)

// RateLimit stores per-client API throttling settings.
type RateLimit struct {
	Enabled    bool
	RPS        float64
	Burst      int
	TTL        time.Duration
	MaxClients int
}

// CORS stores allowed browser origins.
type CORS struct {
	AllowedOrigins []string
}

// Ops stores the worker's metrics/pprof server settings. Port 0 disables it.
type Ops struct {
	Port int
	User string
	Pass string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	var err error

	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return nil, err
	}
	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)

	cfg.DB.Host = envString("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envString("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = envString("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = envString("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = envString("POSTGRES_DB", cfg.DB.Name)

	cfg.Kafka.Brokers = envList("KAFKA_BROKERS", cfg.Kafka.Brokers)
	cfg.Kafka.GroupID = envString("KAFKA_GROUP_ID", cfg.Kafka.GroupID)
	cfg.Kafka.RequestsTopic = envString("KAFKA_REQUESTS_TOPIC", cfg.Kafka.RequestsTopic)

	if cfg.Matching.RunTimeout, err = envDuration("MATCH_RUN_TIMEOUT", cfg.Matching.RunTimeout); err != nil {
		return nil, err
	}
	if cfg.Matching.TopN, err = envInt("MATCH_TOP_N", cfg.Matching.TopN); err != nil {
		return nil, err
	}
	if cfg.Matching.StandardRadiusM, err = envFloat("MATCH_STANDARD_RADIUS_M", cfg.Matching.StandardRadiusM); err != nil {
		return nil, err
	}
	if cfg.Matching.EmergencyRadiusM, err = envFloat("MATCH_EMERGENCY_RADIUS_M", cfg.Matching.EmergencyRadiusM); err != nil {
		return nil, err
	}
	if cfg.Matching.MinDonationInterval, err = envDuration("MATCH_MIN_DONATION_INTERVAL", cfg.Matching.MinDonationInterval); err != nil {
		return nil, err
	}

	cfg.Push.Provider = strings.ToLower(envString("PUSH_PROVIDER", cfg.Push.Provider))
	cfg.Push.FCMCredentialsFile = envString("FCM_CREDENTIALS_FILE", cfg.Push.FCMCredentialsFile)

	if cfg.RateLimit.Enabled, err = envBool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled); err != nil {
		return nil, err
	}
	if cfg.RateLimit.RPS, err = envFloat("RATE_LIMIT_RPS", cfg.RateLimit.RPS); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Burst, err = envInt("RATE_LIMIT_BURST", cfg.RateLimit.Burst); err != nil {
		return nil, err
	}

	cfg.CORS.AllowedOrigins = envList("CORS_ALLOWED_ORIGINS", cfg.CORS.AllowedOrigins)

	if cfg.Ops.Port, err = envInt("OPS_PORT", cfg.Ops.Port); err != nil {
		return nil, err
	}
	cfg.Ops.User = envString("PPROF_USER", cfg.Ops.User)
	cfg.Ops.Pass = envString("PPROF_PASS", cfg.Ops.Pass)

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.IntVar(&cfg.Ops.Port, "ops-port", cfg.Ops.Port, "worker metrics/pprof port (0 disables)")
	pflag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Ops.Port < 0 || c.Ops.Port > 65535 {
		return fmt.Errorf("invalid ops port: %d", c.Ops.Port)
	}
	if p, err := strconv.Atoi(c.DB.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid POSTGRES_PORT: %q", c.DB.Port)
	}
	if c.Matching.RunTimeout <= 0 {
		return fmt.Errorf("invalid MATCH_RUN_TIMEOUT: %s", c.Matching.RunTimeout)
	}
	if c.Matching.TopN <= 0 {
		return fmt.Errorf("invalid MATCH_TOP_N: %d", c.Matching.TopN)
	}
	if c.Matching.StandardRadiusM <= 0 || c.Matching.EmergencyRadiusM <= 0 {
		return fmt.Errorf("invalid search radius: standard=%g emergency=%g", c.Matching.StandardRadiusM, c.Matching.EmergencyRadiusM)
	}
	if c.Matching.MinDonationInterval < 0 {
		return fmt.Errorf("invalid MATCH_MIN_DONATION_INTERVAL: %s", c.Matching.MinDonationInterval)
	}
	switch c.Push.Provider {
	case PushFCM, PushSNS, PushLog:
	default:
		return fmt.Errorf("invalid PUSH_PROVIDER: %q", c.Push.Provider)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("invalid rate limit: rps=%g burst=%d", c.RateLimit.RPS, c.RateLimit.Burst)
	}
	return nil
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func envBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func envList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
