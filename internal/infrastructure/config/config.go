package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
}

type KafkaConfig struct {
	Brokers       []string
	Topic         string
	ConsumerGroup string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	// Secret signs HS256 tokens. PublicKeyPEM, when set, verifies RS256
	// tokens instead.
	Secret       string
	PublicKeyPEM string
	Issuer       string
}

// TLSConfig enables TLS on the gRPC listener when both files are set.
type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type Config struct {
	GRPCPort       int
	GRPCReflection bool
	HTTPPort       int
	DB             DatabaseConfig
	Kafka          KafkaConfig
	Redis          RedisConfig
	Auth           AuthConfig
	TLS            TLSConfig
	ServiceName    string
	LogLevel       string
	LogFormat      string
	QuoteCacheTTL  time.Duration
	OfferValidity  time.Duration
	RateLimitRPS   float64
	OTLPEndpoint   string
	MigrationsDir  string
}

// Validate reports missing required settings.
func (c Config) Validate() error {
	var errs []error
	if c.DB.Password == "" {
		errs = append(errs, errors.New("DB_PASSWORD environment variable is required"))
	}
	if c.Auth.Secret == "" && c.Auth.PublicKeyPEM == "" {
		errs = append(errs, errors.New("JWT_SECRET or JWT_PUBLIC_KEY environment variable is required"))
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	if c.OfferValidity <= 0 {
		errs = append(errs, errors.New("OFFER_VALIDITY must be positive"))
	}
	return errors.Join(errs...)
}

// Load reads settings from the environment, after merging a .env file from
// the working directory when one exists.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return fromViper(newViper()), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("GRPC_PORT", 9090)
	v.SetDefault("GRPC_REFLECTION", false)
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "dealerfin")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "dealerfin")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_TOPIC", "finance.events")
	v.SetDefault("KAFKA_CONSUMER_GROUP", "dealerfin-notifications")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_PUBLIC_KEY", "")
	v.SetDefault("JWT_ISSUER", "dealerfin")
	v.SetDefault("TLS_CERT_FILE", "")
	v.SetDefault("TLS_KEY_FILE", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("QUOTE_CACHE_TTL", "10m")
	v.SetDefault("OFFER_VALIDITY", "168h")
	v.SetDefault("RATE_LIMIT_RPS", 20.0)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("MIGRATIONS_DIR", "file://internal/infrastructure/persistence/postgres/migrations")
	v.AutomaticEnv()
	return v
}

func fromViper(v *viper.Viper) Config {
	return Config{
		GRPCPort:       v.GetInt("GRPC_PORT"),
		GRPCReflection: v.GetBool("GRPC_REFLECTION"),
		HTTPPort:       v.GetInt("HTTP_PORT"),
		DB: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Kafka: KafkaConfig{
			Brokers:       splitList(v.GetString("KAFKA_BROKERS")),
			Topic:         v.GetString("KAFKA_TOPIC"),
			ConsumerGroup: v.GetString("KAFKA_CONSUMER_GROUP"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Auth: AuthConfig{
			Secret:       v.GetString("JWT_SECRET"),
			PublicKeyPEM: v.GetString("JWT_PUBLIC_KEY"),
			Issuer:       v.GetString("JWT_ISSUER"),
		},
		TLS: TLSConfig{
			CertFile: v.GetString("TLS_CERT_FILE"),
			KeyFile:  v.GetString("TLS_KEY_FILE"),
		},
		ServiceName:   "dealerfin",
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFormat:     v.GetString("LOG_FORMAT"),
		QuoteCacheTTL: v.GetDuration("QUOTE_CACHE_TTL"),
		OfferValidity: v.GetDuration("OFFER_VALIDITY"),
		RateLimitRPS:  v.GetFloat64("RATE_LIMIT_RPS"),
		OTLPEndpoint:  v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		MigrationsDir: v.GetString("MIGRATIONS_DIR"),
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
