package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration. All backing services are
// optional: without DATABASE_URL datasets live in memory, without REDIS_URL
// snapshots are recomputed per request, without KAFKA_BROKERS audit events go
// to the log only, and without GEMINI_API_KEY the narrative endpoint reports
// narrative_unavailable.
type Server struct {
	Addr       string
	AdminToken string

	DatabaseURL string

	Redis RedisConfig

	KafkaBrokers    []string
	KafkaAuditTopic string

	Narrative NarrativeConfig
}

// RedisConfig holds snapshot cache settings.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	SnapshotTTL  time.Duration
}

// NarrativeConfig holds settings for the external narrative generator.
type NarrativeConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("CNA_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	adminToken := os.Getenv("CNA_ADMIN_TOKEN")
	if adminToken == "" {
		// Use a default for development - should be overridden in production
		adminToken = "dev-admin-token-change-in-production"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}
	auditTopic := os.Getenv("KAFKA_AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "cna.audit"
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.0-flash"
	}

	return Server{
		Addr:        addr,
		AdminToken:  adminToken,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			SnapshotTTL:  durationEnv("SNAPSHOT_CACHE_TTL", 15*time.Minute),
		},
		KafkaBrokers:    brokers,
		KafkaAuditTopic: auditTopic,
		Narrative: NarrativeConfig{
			APIKey:  os.Getenv("GEMINI_API_KEY"),
			Model:   model,
			Timeout: durationEnv("NARRATIVE_TIMEOUT", 30*time.Second),
		},
	}
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
