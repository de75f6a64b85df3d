package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Storage   StorageConfig   `mapstructure:"storage"`
	ECPay     ECPayConfig     `mapstructure:"ecpay"`
	Recaptcha RecaptchaConfig `mapstructure:"recaptcha"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Swagger   SwaggerConfig   `mapstructure:"swagger"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Port string `mapstructure:"port"`
}

// IsProduction reports whether the stricter production checks apply
func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

// DatabaseConfig selects postgres (Host..SSLMode) or sqlite (Path)
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	Path            string `mapstructure:"path"` // ":memory:" for an in-process database
	AutoMigrate     bool   `mapstructure:"auto_migrate"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // minutes
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // minutes
	SlowQueryMs     int    `mapstructure:"slow_query_ms"`      // zero or negative disables slow statement warnings
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret                string        `mapstructure:"secret"`
	AccessTokenExpiration time.Duration `mapstructure:"access_token_expiration"`
	Issuer                string        `mapstructure:"issuer"`
}

// AuthConfig controls route protection
type AuthConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, or file path
}

type HTTPConfig struct {
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	MaxHeaderBytes    int           `mapstructure:"max_header_bytes"`
	MaxBodySize       int64         `mapstructure:"max_body_size"`
	RateLimitEnabled  bool          `mapstructure:"rate_limit_enabled"`
	RateLimitRequests int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow   time.Duration `mapstructure:"rate_limit_window"`
	CORSAllowOrigins  []string      `mapstructure:"cors_allow_origins"`
	CORSAllowMethods  []string      `mapstructure:"cors_allow_methods"`
	CORSAllowHeaders  []string      `mapstructure:"cors_allow_headers"`
	TrustedProxies    []string      `mapstructure:"trusted_proxies"`
}

// StorageConfig points at the bucket holding product images and shop logos.
// Endpoint is empty for AWS and set for MinIO and other S3-compatible services.
type StorageConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	Bucket          string        `mapstructure:"bucket"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	UsePathStyle    bool          `mapstructure:"use_path_style"`
	PresignExpiry   time.Duration `mapstructure:"presign_expiry"`
}

// ECPayConfig holds the merchant credentials and gateway endpoints.
// An empty MerchantID leaves checkout and notify unavailable.
type ECPayConfig struct {
	MerchantID      string        `mapstructure:"merchant_id"`
	HashKey         string        `mapstructure:"hash_key"`
	HashIV          string        `mapstructure:"hash_iv"`
	CheckoutURL     string        `mapstructure:"checkout_url"` // AioCheckOut
	QueryURL        string        `mapstructure:"query_url"`    // QueryTradeInfo
	ReturnURL       string        `mapstructure:"return_url"`   // this service's /payment/notify
	ClientBackURL   string        `mapstructure:"client_back_url"`
	PaidStatusID    int64         `mapstructure:"paid_status_id"`
	FailedStatusID  int64         `mapstructure:"failed_status_id"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	IdempotencyTTL  time.Duration `mapstructure:"idempotency_ttl"`
	ItemDescription string        `mapstructure:"item_description"`
}

type RecaptchaConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	SecretKey      string        `mapstructure:"secret_key"`
	VerifyURL      string        `mapstructure:"verify_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type KafkaConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Brokers  []string `mapstructure:"brokers"`
	Topic    string   `mapstructure:"topic"`
	ClientID string   `mapstructure:"client_id"`
}

type SwaggerConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// TelemetryConfig holds OpenTelemetry and profiling settings
type TelemetryConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	CollectorEndpoint string        `mapstructure:"collector_endpoint"` // OTLP gRPC, e.g. localhost:4317
	SamplingRatio     float64       `mapstructure:"sampling_ratio"`
	ServiceName       string        `mapstructure:"service_name"`
	Insecure          bool          `mapstructure:"insecure"`
	DBTraceEnabled    bool          `mapstructure:"db_trace_enabled"`
	DBLogFullSQL      bool          `mapstructure:"db_log_full_sql"`
	MetricsEnabled    bool          `mapstructure:"metrics_enabled"`
	MetricsInterval   time.Duration `mapstructure:"metrics_interval"`
	LogsEnabled       bool          `mapstructure:"logs_enabled"`
	ProfilingEnabled  bool          `mapstructure:"profiling_enabled"`
	PyroscopeEndpoint string        `mapstructure:"pyroscope_endpoint"`
}

// defaults registers every key, so that SHOP_* variables are picked up for keys
// absent from config.toml as well.
var defaults = map[string]any{
	"app.name": "shopmall-backend",
	"app.env":  "development",
	"app.port": "8080",

	"database.driver":             "postgres",
	"database.host":               "localhost",
	"database.port":               5432,
	"database.user":               "postgres",
	"database.password":           "",
	"database.dbname":             "shopmall",
	"database.sslmode":            "disable",
	"database.path":               "shopmall.db",
	"database.auto_migrate":       false,
	"database.max_open_conns":     25,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  60,
	"database.conn_max_idle_time": 30,
	"database.slow_query_ms":      200,

	"redis.enabled":  false,
	"redis.host":     "localhost",
	"redis.port":     6379,
	"redis.password": "",
	"redis.db":       0,

	"jwt.secret":                  "",
	"jwt.access_token_expiration": 24 * time.Hour,
	"jwt.issuer":                  "shopmall-backend",
	"auth.enabled":                false,

	"log.level":  "info",
	"log.format": "console",
	"log.output": "stdout",

	"http.read_timeout":        15 * time.Second,
	"http.write_timeout":       15 * time.Second,
	"http.idle_timeout":        60 * time.Second,
	"http.max_header_bytes":    1 << 20,
	"http.max_body_size":       int64(2 << 20),
	"http.rate_limit_enabled":  false,
	"http.rate_limit_requests": 100,
	"http.rate_limit_window":   time.Minute,
	// no origin by default: cross-origin requests stay blocked until configured
	"http.cors_allow_origins": []string{},
	"http.cors_allow_methods": []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	"http.cors_allow_headers": []string{"Content-Type", "Authorization", "X-Request-ID"},
	"http.trusted_proxies":    []string{},

	"storage.enabled":           false,
	"storage.endpoint":          "",
	"storage.region":            "ap-northeast-1",
	"storage.bucket":            "shopmall-images",
	"storage.access_key_id":     "",
	"storage.secret_access_key": "",
	"storage.use_path_style":    false,
	"storage.presign_expiry":    15 * time.Minute,

	"ecpay.merchant_id":     "",
	"ecpay.hash_key":        "",
	"ecpay.hash_iv":         "",
	"ecpay.checkout_url":    "https://payment-stage.ecpay.com.tw/Cashier/AioCheckOut/V5",
	"ecpay.query_url":       "https://payment-stage.ecpay.com.tw/Cashier/QueryTradeInfo/V5",
	"ecpay.return_url":      "",
	"ecpay.client_back_url": "",
	// rows seeded by the lookup migration
	"ecpay.paid_status_id":   int64(2),
	"ecpay.failed_status_id": int64(3),
	"ecpay.request_timeout":  10 * time.Second,
	"ecpay.idempotency_ttl":  72 * time.Hour,
	"ecpay.item_description": "ShopMall order",

	"recaptcha.enabled":         false,
	"recaptcha.secret_key":      "",
	"recaptcha.verify_url":      "https://www.google.com/recaptcha/api/siteverify",
	"recaptcha.request_timeout": 5 * time.Second,

	"kafka.enabled":   false,
	"kafka.brokers":   []string{},
	"kafka.topic":     "shopmall.events",
	"kafka.client_id": "shopmall-backend",

	"swagger.enabled": false,

	"telemetry.enabled":            false,
	"telemetry.collector_endpoint": "localhost:4317",
	"telemetry.sampling_ratio":     1.0,
	"telemetry.service_name":       "shopmall-backend",
	"telemetry.insecure":           false,
	"telemetry.db_trace_enabled":   false,
	"telemetry.db_log_full_sql":    false,
	"telemetry.metrics_enabled":    false,
	"telemetry.metrics_interval":   30 * time.Second,
	"telemetry.logs_enabled":       false,
	"telemetry.profiling_enabled":  false,
	"telemetry.pyroscope_endpoint": "http://localhost:4040",
}

// Load reads config.toml from the working directory or /app, then applies
// SHOP_-prefixed environment variables (SHOP_DATABASE_PASSWORD overrides
// database.password). Missing keys take the built-in defaults.
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("SHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	db := c.Database
	switch {
	case db.Driver != "postgres" && db.Driver != "sqlite":
		return fmt.Errorf("database.driver must be postgres or sqlite, got %q", db.Driver)
	case db.MaxOpenConns <= 0:
		return errors.New("database.max_open_conns must be positive")
	case db.MaxIdleConns < 0:
		return errors.New("database.max_idle_conns cannot be negative")
	case db.MaxIdleConns > db.MaxOpenConns:
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			db.MaxIdleConns, db.MaxOpenConns)
	case c.Auth.Enabled && c.JWT.Secret == "":
		return errors.New("jwt.secret is required when auth.enabled is true")
	case c.Kafka.Enabled && len(c.Kafka.Brokers) == 0:
		return errors.New("kafka.brokers is required when kafka.enabled is true")
	case c.Recaptcha.Enabled && c.Recaptcha.SecretKey == "":
		return errors.New("recaptcha.secret_key is required when recaptcha.enabled is true")
	case c.HTTP.RateLimitEnabled && c.HTTP.RateLimitRequests < 1:
		return fmt.Errorf("http.rate_limit_requests must be at least 1, got %d", c.HTTP.RateLimitRequests)
	case c.HTTP.RateLimitEnabled && c.HTTP.RateLimitWindow <= 0:
		return fmt.Errorf("http.rate_limit_window must be positive, got %s", c.HTTP.RateLimitWindow)
	case c.Telemetry.SamplingRatio < 0 || c.Telemetry.SamplingRatio > 1:
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	if c.App.IsProduction() {
		return c.validateProduction()
	}
	return nil
}

func (c *Config) validateProduction() error {
	switch {
	case len(c.JWT.Secret) < 32:
		return errors.New("jwt.secret must be at least 32 characters in production")
	case c.Database.Driver != "postgres":
		return errors.New("database.driver must be postgres in production")
	case c.Database.Password == "":
		return errors.New("database.password is required in production")
	case c.Database.SSLMode == "disable":
		return errors.New("database.sslmode cannot be 'disable' in production")
	case slices.Contains(c.HTTP.CORSAllowOrigins, "*"):
		return errors.New("http.cors_allow_origins cannot contain '*' in production")
	case c.ECPay.HashKey == "" || c.ECPay.HashIV == "":
		return errors.New("ecpay.hash_key and ecpay.hash_iv are required in production")
	case c.Telemetry.DBLogFullSQL:
		return errors.New("telemetry.db_log_full_sql must be false in production")
	}
	return nil
}

// DSN returns the postgres URL with user info and parameters escaped
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}
