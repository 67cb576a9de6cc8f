package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	S3        S3Config
	Log       LogConfig
	CORS      CORSConfig
	Extractor ExtractorConfig
	Flights   FlightsConfig
	Billing   BillingConfig
	Calendar  CalendarConfig
	Queue     QueueConfig
	Email     EmailConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds receipt storage settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ExtractorProviderConfig holds settings for a single model provider.
type ExtractorProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ExtractorConfig holds extraction engine settings with an optional
// secondary fallback provider.
type ExtractorConfig struct {
	Primary   ExtractorProviderConfig `mapstructure:"primary"`
	Secondary ExtractorProviderConfig `mapstructure:"secondary"`
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (e *ExtractorConfig) SecondaryConfig() *ExtractorProviderConfig {
	if e.Secondary.Provider != "" {
		return &e.Secondary
	}
	return nil
}

// FlightsConfig holds flight-status API settings.
type FlightsConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Endpoint    string `mapstructure:"endpoint"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// BillingConfig holds payment provider settings.
type BillingConfig struct {
	StripeSecretKey string `mapstructure:"stripe_secret_key"`
	ProPriceID      string `mapstructure:"pro_price_id"`
	TeamPriceID     string `mapstructure:"team_price_id"`
	SuccessURL      string `mapstructure:"success_url"`
	CancelURL       string `mapstructure:"cancel_url"`
	Endpoint        string `mapstructure:"endpoint"`
	TimeoutSecs     int    `mapstructure:"timeout_secs"`
}

// CalendarConfig holds Google Calendar sync settings.
type CalendarConfig struct {
	ClientID      string `mapstructure:"client_id"`
	ClientSecret  string `mapstructure:"client_secret"`
	TokenEndpoint string `mapstructure:"token_endpoint"`
	APIEndpoint   string `mapstructure:"api_endpoint"`
	TimeoutSecs   int    `mapstructure:"timeout_secs"`
}

// QueueConfig holds receipt scan worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	MaxRetries       int `mapstructure:"max_retries"`
	Concurrency      int `mapstructure:"concurrency"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// Load reads configuration from environment variables with the TRIPSTACK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TRIPSTACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "tripstack")
	v.SetDefault("db.password", "tripstack_secret")
	v.SetDefault("db.name", "tripstack_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "tripstack")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "tripstack-receipts")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 25)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Extractor defaults
	v.SetDefault("extractor.primary.provider", "openai")
	v.SetDefault("extractor.primary.api_key", "")
	v.SetDefault("extractor.primary.default_model", "gpt-4o")
	v.SetDefault("extractor.primary.timeout_secs", 120)
	v.SetDefault("extractor.secondary.provider", "")
	v.SetDefault("extractor.secondary.api_key", "")
	v.SetDefault("extractor.secondary.default_model", "")
	v.SetDefault("extractor.secondary.timeout_secs", 120)

	// Flights defaults
	v.SetDefault("flights.api_key", "")
	v.SetDefault("flights.endpoint", "")
	v.SetDefault("flights.timeout_secs", 15)

	// Billing defaults
	v.SetDefault("billing.stripe_secret_key", "")
	v.SetDefault("billing.pro_price_id", "")
	v.SetDefault("billing.team_price_id", "")
	v.SetDefault("billing.success_url", "http://localhost:3000/billing/success")
	v.SetDefault("billing.cancel_url", "http://localhost:3000/billing/cancel")
	v.SetDefault("billing.endpoint", "")
	v.SetDefault("billing.timeout_secs", 20)

	// Calendar defaults
	v.SetDefault("calendar.client_id", "")
	v.SetDefault("calendar.client_secret", "")
	v.SetDefault("calendar.token_endpoint", "")
	v.SetDefault("calendar.api_endpoint", "")
	v.SetDefault("calendar.timeout_secs", 20)

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 10)
	v.SetDefault("queue.max_retries", 3)
	v.SetDefault("queue.concurrency", 3)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@tripstack.app")
	v.SetDefault("email.from_name", "TripStack")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                       "TRIPSTACK_SERVER_PORT",
		"server.read_timeout":               "TRIPSTACK_SERVER_READ_TIMEOUT",
		"server.write_timeout":              "TRIPSTACK_SERVER_WRITE_TIMEOUT",
		"server.environment":                "TRIPSTACK_SERVER_ENVIRONMENT",
		"db.host":                           "TRIPSTACK_DB_HOST",
		"db.port":                           "TRIPSTACK_DB_PORT",
		"db.user":                           "TRIPSTACK_DB_USER",
		"db.password":                       "TRIPSTACK_DB_PASSWORD",
		"db.name":                           "TRIPSTACK_DB_NAME",
		"db.sslmode":                        "TRIPSTACK_DB_SSLMODE",
		"db.max_open":                       "TRIPSTACK_DB_MAX_OPEN",
		"db.max_idle":                       "TRIPSTACK_DB_MAX_IDLE",
		"jwt.secret":                        "TRIPSTACK_JWT_SECRET",
		"jwt.access_expiry":                 "TRIPSTACK_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":                "TRIPSTACK_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                        "TRIPSTACK_JWT_ISSUER",
		"s3.region":                         "TRIPSTACK_S3_REGION",
		"s3.bucket":                         "TRIPSTACK_S3_BUCKET",
		"s3.endpoint":                       "TRIPSTACK_S3_ENDPOINT",
		"s3.access_key":                     "TRIPSTACK_S3_ACCESS_KEY",
		"s3.secret_key":                     "TRIPSTACK_S3_SECRET_KEY",
		"s3.max_file_size_mb":               "TRIPSTACK_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":                 "TRIPSTACK_S3_PRESIGN_EXPIRY",
		"log.level":                         "TRIPSTACK_LOG_LEVEL",
		"log.format":                        "TRIPSTACK_LOG_FORMAT",
		"cors.allowed_origins":              "TRIPSTACK_CORS_ALLOWED_ORIGINS",
		"extractor.primary.provider":        "TRIPSTACK_EXTRACTOR_PRIMARY_PROVIDER",
		"extractor.primary.api_key":         "TRIPSTACK_EXTRACTOR_PRIMARY_API_KEY",
		"extractor.primary.default_model":   "TRIPSTACK_EXTRACTOR_PRIMARY_DEFAULT_MODEL",
		"extractor.primary.timeout_secs":    "TRIPSTACK_EXTRACTOR_PRIMARY_TIMEOUT_SECS",
		"extractor.secondary.provider":      "TRIPSTACK_EXTRACTOR_SECONDARY_PROVIDER",
		"extractor.secondary.api_key":       "TRIPSTACK_EXTRACTOR_SECONDARY_API_KEY",
		"extractor.secondary.default_model": "TRIPSTACK_EXTRACTOR_SECONDARY_DEFAULT_MODEL",
		"extractor.secondary.timeout_secs":  "TRIPSTACK_EXTRACTOR_SECONDARY_TIMEOUT_SECS",
		"flights.api_key":                   "TRIPSTACK_FLIGHTS_API_KEY",
		"flights.endpoint":                  "TRIPSTACK_FLIGHTS_ENDPOINT",
		"flights.timeout_secs":              "TRIPSTACK_FLIGHTS_TIMEOUT_SECS",
		"billing.stripe_secret_key":         "TRIPSTACK_BILLING_STRIPE_SECRET_KEY",
		"billing.pro_price_id":              "TRIPSTACK_BILLING_PRO_PRICE_ID",
		"billing.team_price_id":             "TRIPSTACK_BILLING_TEAM_PRICE_ID",
		"billing.success_url":               "TRIPSTACK_BILLING_SUCCESS_URL",
		"billing.cancel_url":                "TRIPSTACK_BILLING_CANCEL_URL",
		"billing.endpoint":                  "TRIPSTACK_BILLING_ENDPOINT",
		"billing.timeout_secs":              "TRIPSTACK_BILLING_TIMEOUT_SECS",
		"calendar.client_id":                "TRIPSTACK_CALENDAR_CLIENT_ID",
		"calendar.client_secret":            "TRIPSTACK_CALENDAR_CLIENT_SECRET",
		"calendar.token_endpoint":           "TRIPSTACK_CALENDAR_TOKEN_ENDPOINT",
		"calendar.api_endpoint":             "TRIPSTACK_CALENDAR_API_ENDPOINT",
		"calendar.timeout_secs":             "TRIPSTACK_CALENDAR_TIMEOUT_SECS",
		"queue.poll_interval_secs":          "TRIPSTACK_QUEUE_POLL_INTERVAL_SECS",
		"queue.max_retries":                 "TRIPSTACK_QUEUE_MAX_RETRIES",
		"queue.concurrency":                 "TRIPSTACK_QUEUE_CONCURRENCY",
		"email.provider":                    "TRIPSTACK_EMAIL_PROVIDER",
		"email.region":                      "TRIPSTACK_EMAIL_REGION",
		"email.from_address":                "TRIPSTACK_EMAIL_FROM_ADDRESS",
		"email.from_name":                   "TRIPSTACK_EMAIL_FROM_NAME",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if TRIPSTACK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("TRIPSTACK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Extractor = ExtractorConfig{
		Primary: ExtractorProviderConfig{
			Provider:     v.GetString("extractor.primary.provider"),
			APIKey:       v.GetString("extractor.primary.api_key"),
			DefaultModel: v.GetString("extractor.primary.default_model"),
			TimeoutSecs:  v.GetInt("extractor.primary.timeout_secs"),
		},
		Secondary: ExtractorProviderConfig{
			Provider:     v.GetString("extractor.secondary.provider"),
			APIKey:       v.GetString("extractor.secondary.api_key"),
			DefaultModel: v.GetString("extractor.secondary.default_model"),
			TimeoutSecs:  v.GetInt("extractor.secondary.timeout_secs"),
		},
	}

	cfg.Flights = FlightsConfig{
		APIKey:      v.GetString("flights.api_key"),
		Endpoint:    v.GetString("flights.endpoint"),
		TimeoutSecs: v.GetInt("flights.timeout_secs"),
	}

	cfg.Billing = BillingConfig{
		StripeSecretKey: v.GetString("billing.stripe_secret_key"),
		ProPriceID:      v.GetString("billing.pro_price_id"),
		TeamPriceID:     v.GetString("billing.team_price_id"),
		SuccessURL:      v.GetString("billing.success_url"),
		CancelURL:       v.GetString("billing.cancel_url"),
		Endpoint:        v.GetString("billing.endpoint"),
		TimeoutSecs:     v.GetInt("billing.timeout_secs"),
	}

	cfg.Calendar = CalendarConfig{
		ClientID:      v.GetString("calendar.client_id"),
		ClientSecret:  v.GetString("calendar.client_secret"),
		TokenEndpoint: v.GetString("calendar.token_endpoint"),
		APIEndpoint:   v.GetString("calendar.api_endpoint"),
		TimeoutSecs:   v.GetInt("calendar.timeout_secs"),
	}

	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		MaxRetries:       v.GetInt("queue.max_retries"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	return cfg, nil
}
