package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FileEnv names the optional YAML file overlaid on the defaults. Environment
// variables still win over values from the file.
const FileEnv = "CONVEYOR_CONFIG_FILE"

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// RedisConfig configures the offer cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	OfferTTL time.Duration `yaml:"offer_ttl"`
}

type AuthConfig struct {
	JWTPublicKey     string `yaml:"jwt_public_key"`
	JWTPublicKeyFile string `yaml:"jwt_public_key_file"`
	JWTSecret        string `yaml:"jwt_secret"`
	Issuer           string `yaml:"issuer"`
}

type TLSConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// PricingConfig holds the read-only inputs of the rate engine.
type PricingConfig struct {
	BaseRate               decimal.Decimal `yaml:"base_rate"`
	MinRate                decimal.Decimal `yaml:"min_rate"`
	OfferInsurancePremium  decimal.Decimal `yaml:"offer_insurance_premium"`
	CreditInsurancePremium decimal.Decimal `yaml:"credit_insurance_premium"`
	MaxTermMonths          int             `yaml:"max_term_months"`
}

type Config struct {
	ServiceName    string         `yaml:"service_name"`
	GRPCPort       int            `yaml:"grpc_port"`
	HTTPPort       int            `yaml:"http_port"`
	GRPCReflection bool           `yaml:"grpc_reflection"`
	OTLPEndpoint   string         `yaml:"otlp_endpoint"`
	DB             DatabaseConfig `yaml:"database"`
	Kafka          KafkaConfig    `yaml:"kafka"`
	Redis          RedisConfig    `yaml:"redis"`
	Auth           AuthConfig     `yaml:"auth"`
	TLS            TLSConfig      `yaml:"tls"`
	Log            LogConfig      `yaml:"log"`
	Pricing        PricingConfig  `yaml:"pricing"`
}

// Defaults returns the configuration used when neither a file nor the
// environment says otherwise.
func Defaults() Config {
	return Config{
		ServiceName: "conveyor",
		GRPCPort:    9090,
		HTTPPort:    8080,
		DB: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "conveyor",
			Name:     "conveyor",
			SSLMode:  "require",
			MaxConns: 10,
		},
		Kafka: KafkaConfig{
			Brokers: []string{"localhost:9092"},
			Topic:   "conveyor.events",
		},
		Redis: RedisConfig{
			OfferTTL: 10 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Pricing: PricingConfig{
			BaseRate:               decimal.NewFromInt(15),
			MinRate:                decimal.NewFromInt(1),
			OfferInsurancePremium:  decimal.NewFromInt(100),
			CreditInsurancePremium: decimal.NewFromInt(100),
			MaxTermMonths:          360,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// CONVEYOR_CONFIG_FILE, then environment variables.
func Load() (Config, error) {
	cfg := Defaults()

	if path := os.Getenv(FileEnv); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(c *Config) error {
	c.ServiceName = getEnv("SERVICE_NAME", c.ServiceName)
	c.GRPCPort = getEnvInt("GRPC_PORT", c.GRPCPort)
	c.HTTPPort = getEnvInt("HTTP_PORT", c.HTTPPort)
	c.GRPCReflection = getEnvBool("GRPC_REFLECTION", c.GRPCReflection)
	c.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", c.OTLPEndpoint)

	c.DB.Host = getEnv("DB_HOST", c.DB.Host)
	c.DB.Port = getEnvInt("DB_PORT", c.DB.Port)
	c.DB.User = getEnv("DB_USER", c.DB.User)
	c.DB.Password = getEnv("DB_PASSWORD", c.DB.Password)
	c.DB.Name = getEnv("DB_NAME", c.DB.Name)
	c.DB.SSLMode = getEnv("DB_SSLMODE", c.DB.SSLMode)
	c.DB.MaxConns = getEnvInt("DB_MAX_CONNS", c.DB.MaxConns)

	c.Kafka.Brokers = getEnvList("KAFKA_BROKERS", c.Kafka.Brokers)
	c.Kafka.Topic = getEnv("KAFKA_TOPIC", c.Kafka.Topic)

	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvInt("REDIS_DB", c.Redis.DB)

	c.Auth.JWTPublicKey = getEnv("JWT_PUBLIC_KEY", c.Auth.JWTPublicKey)
	c.Auth.JWTPublicKeyFile = getEnv("JWT_PUBLIC_KEY_FILE", c.Auth.JWTPublicKeyFile)
	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.Issuer = getEnv("JWT_ISSUER", c.Auth.Issuer)

	c.TLS.CertFile = getEnv("TLS_CERT_FILE", c.TLS.CertFile)
	c.TLS.KeyFile = getEnv("TLS_KEY_FILE", c.TLS.KeyFile)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)

	var err error
	if c.Redis.OfferTTL, err = getEnvDuration("OFFER_CACHE_TTL", c.Redis.OfferTTL); err != nil {
		return err
	}
	if c.Pricing.BaseRate, err = getEnvDecimal("BASE_RATE", c.Pricing.BaseRate); err != nil {
		return err
	}
	if c.Pricing.MinRate, err = getEnvDecimal("MIN_RATE", c.Pricing.MinRate); err != nil {
		return err
	}
	if c.Pricing.OfferInsurancePremium, err = getEnvDecimal("OFFER_INSURANCE_PREMIUM", c.Pricing.OfferInsurancePremium); err != nil {
		return err
	}
	if c.Pricing.CreditInsurancePremium, err = getEnvDecimal("CREDIT_INSURANCE_PREMIUM", c.Pricing.CreditInsurancePremium); err != nil {
		return err
	}
	c.Pricing.MaxTermMonths = getEnvInt("MAX_TERM_MONTHS", c.Pricing.MaxTermMonths)
	return nil
}

// Validate reports every setting that makes the service unusable.
func (c Config) Validate() error {
	var errs []error
	if c.DB.Password == "" {
		errs = append(errs, errors.New("DB_PASSWORD environment variable is required"))
	}
	if !c.Pricing.BaseRate.IsPositive() {
		errs = append(errs, fmt.Errorf("base rate must be positive, got %s", c.Pricing.BaseRate))
	}
	if c.Pricing.MinRate.IsNegative() {
		errs = append(errs, fmt.Errorf("min rate must not be negative, got %s", c.Pricing.MinRate))
	}
	if c.Pricing.OfferInsurancePremium.IsNegative() || c.Pricing.CreditInsurancePremium.IsNegative() {
		errs = append(errs, errors.New("insurance premiums must not be negative"))
	}
	if c.Pricing.MaxTermMonths <= 0 {
		errs = append(errs, fmt.Errorf("max term must be positive, got %d", c.Pricing.MaxTermMonths))
	}
	if c.Auth.JWTPublicKey == "" && c.Auth.JWTPublicKeyFile == "" && c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("one of JWT_PUBLIC_KEY, JWT_PUBLIC_KEY_FILE or JWT_SECRET is required"))
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	return errors.Join(errs...)
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvDecimal(key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
