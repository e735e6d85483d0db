package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/yungbote/suplementor-backend/internal/data/db"
	"github.com/yungbote/suplementor-backend/internal/modules/recommendation"
	"github.com/yungbote/suplementor-backend/internal/observability"
	"github.com/yungbote/suplementor-backend/internal/platform/neo4jdb"
	"github.com/yungbote/suplementor-backend/internal/platform/validate"
	"github.com/yungbote/suplementor-backend/internal/services"
)

const defaultServiceName = "suplementor-backend"

type ServerConfig struct {
	Port           int           `koanf:"port" validate:"gte=1,lte=65535"`
	AllowedOrigins []string      `koanf:"allowed_origins"`
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"gte=0"`
}

type LogConfig struct {
	Mode  string `koanf:"mode"`
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
}

type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"gte=0,lte=15"`
	Prefix   string `koanf:"prefix"`
}

type CacheConfig struct {
	CatalogSize int           `koanf:"catalog_size" validate:"gte=1"`
	GraphSize   int           `koanf:"graph_size" validate:"gte=1"`
	TTL         time.Duration `koanf:"ttl" validate:"gt=0"`

	// LocalTTL caps the process-local tier when Redis is shared between
	// replicas, bounding how long another replica's purge goes unseen.
	LocalTTL time.Duration `koanf:"local_ttl" validate:"gt=0"`
}

type AdminConfig struct {
	JWTSecret string `koanf:"jwt_secret"`
}

type Config struct {
	Server         ServerConfig                  `koanf:"server"`
	Log            LogConfig                     `koanf:"log"`
	Database       db.Config                     `koanf:"database"`
	Redis          RedisConfig                   `koanf:"redis"`
	Cache          CacheConfig                   `koanf:"cache"`
	Neo4j          neo4jdb.Config                `koanf:"neo4j"`
	Otel           observability.OtelConfig      `koanf:"otel"`
	Metrics        observability.MetricsConfig   `koanf:"metrics"`
	Recommendation services.RecommendationConfig `koanf:"recommendation"`
	Scoring        recommendation.Weights        `koanf:"scoring"`
	Admin          AdminConfig                   `koanf:"admin"`
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:           8080,
			RequestTimeout: 30 * time.Second,
		},
		Log: LogConfig{Mode: "development", Level: "info"},
		Database: db.Config{
			Driver:       db.DriverPostgres,
			Host:         "localhost",
			Port:         5432,
			User:         "postgres",
			Name:         "suplementor",
			SSLMode:      "disable",
			MaxOpenConns: 20,
			AutoMigrate:  true,
		},
		Redis: RedisConfig{Prefix: "suplementor"},
		Cache: CacheConfig{
			CatalogSize: 64,
			GraphSize:   128,
			TTL:         10 * time.Minute,
			LocalTTL:    30 * time.Second,
		},
		Neo4j: neo4jdb.Config{
			User:           "neo4j",
			TimeoutSeconds: 10,
		},
		Otel: observability.OtelConfig{
			ServiceName: defaultServiceName,
			Environment: "development",
			SampleRatio: 0.1,
		},
		Metrics: observability.MetricsConfig{
			Enabled:   true,
			Namespace: "suplementor",
		},
		Recommendation: services.DefaultRecommendationConfig(),
		Scoring:        recommendation.DefaultWeights(),
	}
}

// LoadConfig layers struct defaults, an optional YAML file and environment
// variables, in that order, then validates the result.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom("")
}

// LoadConfigFrom is LoadConfig with an explicit file path. An empty path
// falls back to CONFIG_PATH and the default locations.
func LoadConfigFrom(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		path = findConfigFile()
	}
	return loadConfig(path)
}

func loadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}
	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Validator().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Recommendation.DefaultLimit > c.Recommendation.MaxLimit {
		return fmt.Errorf("invalid config: recommendation.default_limit %d exceeds max_limit %d",
			c.Recommendation.DefaultLimit, c.Recommendation.MaxLimit)
	}
	if c.Otel.Enabled && strings.TrimSpace(c.Otel.ServiceName) == "" {
		return fmt.Errorf("invalid config: otel.service_name is required when tracing is enabled")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

var defaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/suplementor/config.yaml",
}

func findConfigFile() string {
	if p := strings.TrimSpace(os.Getenv("CONFIG_PATH")); p != "" {
		return p
	}
	for _, p := range defaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envMapping maps lowercased environment variable names to koanf paths.
// Variables not listed here are ignored.
var envMapping = map[string]string{
	"port":                         "server.port",
	"cors_allowed_origins":         "server.allowed_origins",
	"request_timeout":              "server.request_timeout",
	"log_mode":                     "log.mode",
	"log_level":                    "log.level",
	"db_driver":                    "database.driver",
	"postgres_host":                "database.host",
	"postgres_port":                "database.port",
	"postgres_user":                "database.user",
	"postgres_password":            "database.password",
	"postgres_name":                "database.name",
	"postgres_sslmode":             "database.sslmode",
	"sqlite_path":                  "database.sqlite_path",
	"db_max_open_conns":            "database.max_open_conns",
	"db_auto_migrate":              "database.auto_migrate",
	"db_seed":                      "database.seed",
	"redis_addr":                   "redis.addr",
	"redis_password":               "redis.password",
	"redis_db":                     "redis.db",
	"redis_prefix":                 "redis.prefix",
	"cache_catalog_size":           "cache.catalog_size",
	"cache_graph_size":             "cache.graph_size",
	"cache_ttl":                    "cache.ttl",
	"cache_local_ttl":              "cache.local_ttl",
	"neo4j_uri":                    "neo4j.uri",
	"neo4j_user":                   "neo4j.user",
	"neo4j_password":               "neo4j.password",
	"neo4j_database":               "neo4j.database",
	"neo4j_timeout_seconds":        "neo4j.timeout_seconds",
	"otel_enabled":                 "otel.enabled",
	"otel_service_name":            "otel.service_name",
	"otel_environment":             "otel.environment",
	"otel_exporter_otlp_endpoint":  "otel.endpoint",
	"otel_exporter_otlp_headers":   "otel.headers",
	"otel_exporter_otlp_insecure":  "otel.insecure",
	"otel_sampler_ratio":           "otel.sample_ratio",
	"metrics_enabled":              "metrics.enabled",
	"metrics_namespace":            "metrics.namespace",
	"recommendation_default_limit": "recommendation.default_limit",
	"recommendation_max_limit":     "recommendation.max_limit",
	"recommendation_max_stack":     "recommendation.max_stack",
	"admin_jwt_secret":             "admin.jwt_secret",
}

func envTransformFunc(key string) string {
	lower := strings.ToLower(key)
	if path, ok := envMapping[lower]; ok {
		return path
	}
	if strings.HasPrefix(lower, "scoring_") {
		return "scoring." + strings.TrimPrefix(lower, "scoring_")
	}
	return ""
}

var sliceFields = []string{
	"server.allowed_origins",
}

// processSliceFields splits comma separated env values into slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceFields {
		raw, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := []string{}
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("set %s: %w", path, err)
		}
	}
	return nil
}
