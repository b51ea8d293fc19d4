// Package config loads server settings from defaults, an optional YAML file, a .env file and
// the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	GRPC      GRPCConfig      `yaml:"grpc"`
	Storage   StorageConfig   `yaml:"storage"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	Auth      AuthConfig      `yaml:"auth"`
	Payments  PaymentsConfig  `yaml:"payments"`
	Orders    OrdersConfig    `yaml:"orders"`
	Events    EventsConfig    `yaml:"events"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type HTTPConfig struct {
	Addr          string `yaml:"addr"`
	SecureCookies bool   `yaml:"secure_cookies"`
}

type GRPCConfig struct {
	Addr string `yaml:"addr"`
}

type StorageConfig struct {
	Driver     string        `yaml:"driver"`
	MySQLDSN   string        `yaml:"mysql_dsn"`
	RedisAddr  string        `yaml:"redis_addr"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type RabbitMQConfig struct {
	// URL is optional; events are logged when empty.
	URL string `yaml:"url"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type PaymentsConfig struct {
	KeyID     string `yaml:"key_id"`
	KeySecret string `yaml:"key_secret"`
	BaseURL   string `yaml:"base_url"`
	Currency  string `yaml:"currency"`
}

type OrdersConfig struct {
	StrictTransitions bool   `yaml:"strict_transitions"`
	FallbackAddress   string `yaml:"fallback_address"`
}

type EventsConfig struct {
	Workers   int `yaml:"workers"`
	QueueSize int `yaml:"queue_size"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{Addr: ":8080"},
		GRPC: GRPCConfig{Addr: ":50051"},
		Storage: StorageConfig{
			Driver:     DriverMySQL,
			MySQLDSN:   "root:root@tcp(localhost:3306)/food?parseTime=true",
			RedisAddr:  "localhost:6379",
			SessionTTL: 14 * 24 * time.Hour,
		},
		Auth:      AuthConfig{TokenTTL: 24 * time.Hour},
		Payments:  PaymentsConfig{BaseURL: "https://api.razorpay.com", Currency: "INR"},
		Orders:    OrdersConfig{FallbackAddress: "Address not provided"},
		Events:    EventsConfig{Workers: 4, QueueSize: 1024},
		Log:       LogConfig{Level: "info"},
		Telemetry: TelemetryConfig{ServiceName: "food-order"},
	}
}

// Load builds the configuration. path may be empty; a missing .env file is ignored.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	setString(&c.HTTP.Addr, "FOOD_HTTP_ADDR")
	setString(&c.GRPC.Addr, "FOOD_GRPC_ADDR")
	setString(&c.Storage.Driver, "FOOD_STORAGE_DRIVER")
	setString(&c.Storage.MySQLDSN, "FOOD_MYSQL_DSN")
	setString(&c.Storage.RedisAddr, "FOOD_REDIS_ADDR")
	setString(&c.RabbitMQ.URL, "FOOD_RABBITMQ_URL")
	setString(&c.Auth.JWTSecret, "FOOD_JWT_SECRET")
	setString(&c.Payments.KeyID, "RAZORPAY_KEY_ID")
	setString(&c.Payments.KeySecret, "RAZORPAY_KEY_SECRET")
	setString(&c.Log.Level, "FOOD_LOG_LEVEL")

	if err := setBool(&c.HTTP.SecureCookies, "FOOD_SECURE_COOKIES"); err != nil {
		return err
	}
	if err := setBool(&c.Orders.StrictTransitions, "FOOD_STRICT_TRANSITIONS"); err != nil {
		return err
	}
	return setBool(&c.Telemetry.Enabled, "FOOD_TELEMETRY_ENABLED")
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	}
	switch c.Storage.Driver {
	case DriverMySQL:
		if c.Storage.MySQLDSN == "" {
			errs = append(errs, errors.New("storage.mysql_dsn is required for the mysql driver"))
		}
		if c.Storage.RedisAddr == "" {
			errs = append(errs, errors.New("storage.redis_addr is required for the mysql driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown storage.driver %q", c.Storage.Driver))
	}
	if c.Events.Workers <= 0 {
		errs = append(errs, errors.New("events.workers must be positive"))
	}
	if c.Events.QueueSize <= 0 {
		errs = append(errs, errors.New("events.queue_size must be positive"))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log.level %q", c.Log.Level))
	}
	return errors.Join(errs...)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setBool(dst *bool, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = b
	return nil
}
