package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	strutil "vetting/pkg/platform/strings"
)

// Config is the full runtime configuration of the vetting server.
type Config struct {
	Server   Server
	Auth     AuthConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	LogLevel string

	// FixturesPath seeds the in-memory stores at startup when no database is
	// configured.
	FixturesPath string
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// AuthConfig configures reviewer token validation.
type AuthConfig struct {
	JWTSigningKey string
	Issuer        string
	Audience      string
}

// DatabaseConfig configures PostgreSQL. An empty URL selects the in-memory stores.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig configures the nominee cache. An empty URL disables caching.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
}

// KafkaConfig configures the audit event sink. No brokers keeps audit events
// in memory.
type KafkaConfig struct {
	Brokers           []string
	AuditTopic        string
	Partitions        int32
	ReplicationFactor int16
	AuditBuffer       int
	// ConsumerGroup is the group the audit projector joins to copy events
	// into PostgreSQL.
	ConsumerGroup string
}

// FromEnv builds a Config from VETTING_* environment variables so main stays lean.
func FromEnv() (Config, error) {
	var errs []string
	r := envReader{errs: &errs}

	cfg := Config{
		Server: Server{
			Addr:            r.str("VETTING_ADDR", ":8080"),
			ShutdownTimeout: r.duration("VETTING_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			// Use a default for development - should be overridden in production
			JWTSigningKey: r.str("VETTING_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			Issuer:        r.str("VETTING_JWT_ISSUER", "vetting"),
			Audience:      r.str("VETTING_JWT_AUDIENCE", "vetting-reviewers"),
		},
		Database: DatabaseConfig{
			URL:             r.str("VETTING_DATABASE_URL", ""),
			MaxOpenConns:    r.integer("VETTING_DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    r.integer("VETTING_DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: r.duration("VETTING_DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			URL:          r.str("VETTING_REDIS_URL", ""),
			PoolSize:     r.integer("VETTING_REDIS_POOL_SIZE", 10),
			MinIdleConns: r.integer("VETTING_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  r.duration("VETTING_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  r.duration("VETTING_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: r.duration("VETTING_REDIS_WRITE_TIMEOUT", 3*time.Second),
			CacheTTL:     r.duration("VETTING_CACHE_TTL", 5*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:           r.list("VETTING_KAFKA_BROKERS"),
			AuditTopic:        r.str("VETTING_KAFKA_AUDIT_TOPIC", "vetting.audit"),
			Partitions:        int32(r.integer("VETTING_KAFKA_PARTITIONS", 3)),
			ReplicationFactor: int16(r.integer("VETTING_KAFKA_REPLICATION_FACTOR", 1)),
			AuditBuffer:       r.integer("VETTING_AUDIT_BUFFER", 256),
			ConsumerGroup:     r.str("VETTING_KAFKA_CONSUMER_GROUP", "vetting-audit-projector"),
		},
		LogLevel:     r.str("VETTING_LOG_LEVEL", "info"),
		FixturesPath: r.str("VETTING_FIXTURES", ""),
	}

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

type envReader struct {
	errs *[]string
}

func (r envReader) str(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func (r envReader) integer(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*r.errs = append(*r.errs, fmt.Sprintf("%s must be an integer", key))
		return def
	}
	return n
}

func (r envReader) duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*r.errs = append(*r.errs, fmt.Sprintf("%s must be a duration", key))
		return def
	}
	return d
}

func (r envReader) list(key string) []string {
	out := strutil.DedupeAndTrim(strings.Split(os.Getenv(key), ","))
	if len(out) == 0 {
		return nil
	}
	return out
}
