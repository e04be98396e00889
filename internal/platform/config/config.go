package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	stringsutil "orgnet/pkg/platform/strings"
)

// Config captures everything the server needs from the environment so main
// stays lean. Optional integrations (event mirrors, verification cache) are
// disabled when their URL is empty.
type Config struct {
	Addr          string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string

	// EventMirrorPostgresURL enables the relational event mirror.
	EventMirrorPostgresURL string

	Kafka KafkaConfig
	Redis RedisConfig

	// VerifyCacheTTL bounds staleness of cached certificate verification
	// answers.
	VerifyCacheTTL time.Duration
}

// KafkaConfig targets the broker topic external indexers subscribe to.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// RedisConfig holds connection settings for the verification cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	cfg := Config{
		Addr:                   envOr("ORGNET_ADDR", ":8080"),
		JWTSigningKey:          envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:              envOr("JWT_ISSUER", "orgnet"),
		JWTAudience:            envOr("JWT_AUDIENCE", "orgnet-api"),
		EventMirrorPostgresURL: os.Getenv("EVENT_MIRROR_POSTGRES_URL"),
		Kafka: KafkaConfig{
			Topic: envOr("EVENT_KAFKA_TOPIC", "orgnet.events"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		VerifyCacheTTL: envDuration("VERIFY_CACHE_TTL", 5*time.Minute),
	}

	cfg.Kafka.Brokers = splitList(os.Getenv("EVENT_KAFKA_BROKERS"))

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	out := stringsutil.DedupeAndTrim(strings.Split(raw, ","))
	if len(out) == 0 {
		return nil
	}
	return out
}
