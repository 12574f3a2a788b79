package config

import (
	"time"

	"oasis-blood-platform/internal/matching"
)

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "oasis",
	Pass: "oasis",
	Name: "oasis",
}

var defaultKafka = Kafka{
	Brokers:       []string{"localhost:9092"},
	GroupID:       "donor-matching",
	RequestsTopic: "blood-requests.created",
}

var defaultMatching = Matching{
	RunTimeout:          30 * time.Second,
	TopN:                matching.DefaultTopN,
	StandardRadiusM:     matching.DefaultStandardRadiusMeters,
	EmergencyRadiusM:    matching.DefaultEmergencyRadiusMeters,
	MinDonationInterval: matching.DefaultMinDonationInterval,
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	RPS:        10,
	Burst:      20,
	TTL:        10 * time.Minute,
	MaxClients: 10_000,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultMatching returns the default matching settings.
func DefaultMatching() Matching {
	return defaultMatching
}

// Default returns a Config with every default applied.
func Default() Config {
	return Config{
		Port:      defaultPort,
		LogLevel:  "info",
		DB:        defaultDB,
		Kafka:     Kafka{Brokers: append([]string(nil), defaultKafka.Brokers...), GroupID: defaultKafka.GroupID, RequestsTopic: defaultKafka.RequestsTopic},
		Matching:  defaultMatching,
		Push:      Push{Provider: PushLog},
		RateLimit: defaultRateLimit,
		Ops:       Ops{Port: 9090},
	}
}
