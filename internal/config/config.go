package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Services  ServicesConfig
	Storage   StorageConfig
	Dispatch  DispatchConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Debug    bool
	LogLevel string
	Timezone string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret string
}

// ServicesConfig holds the endpoints of the remote collaborators: the
// billing store, the PDF rendering service and the message relay. The
// OAuth2 client credentials authenticate this API against the rendering
// and relay backends.
type ServicesConfig struct {
	BillingBaseURL  string
	DocumentBaseURL string
	DocumentViewURL string
	RelayBaseURL    string
	OAuthTokenURL   string
	OAuthClientID   string
	OAuthSecret     string
	Timeout         time.Duration
}

type StorageConfig struct {
	Path string
}

type DispatchConfig struct {
	RetryAttempts int
	RetryBackoff  time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "caredesk-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("APP_LOG_LEVEL", "info")
	viper.SetDefault("APP_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "caredesk")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("BILLING_BASE_URL", "http://localhost:9090/api")
	viper.SetDefault("DOCUMENT_BASE_URL", "http://localhost:9091")
	viper.SetDefault("DOCUMENT_VIEW_URL", "http://localhost:9091/bills/%s/view")
	viper.SetDefault("RELAY_BASE_URL", "http://localhost:9092")
	viper.SetDefault("SERVICES_OAUTH_TOKEN_URL", "")
	viper.SetDefault("SERVICES_OAUTH_CLIENT_ID", "")
	viper.SetDefault("SERVICES_OAUTH_SECRET", "")
	viper.SetDefault("SERVICES_TIMEOUT_SECONDS", 15)
	viper.SetDefault("STORAGE_PATH", "./storage")
	viper.SetDefault("DISPATCH_RETRY_ATTEMPTS", 3)
	viper.SetDefault("DISPATCH_RETRY_BACKOFF_MS", 500)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	return &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Env:      viper.GetString("APP_ENV"),
			Port:     viper.GetString("APP_PORT"),
			Debug:    viper.GetBool("APP_DEBUG"),
			LogLevel: viper.GetString("APP_LOG_LEVEL"),
			Timezone: viper.GetString("APP_TIMEZONE"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		Services: ServicesConfig{
			BillingBaseURL:  viper.GetString("BILLING_BASE_URL"),
			DocumentBaseURL: viper.GetString("DOCUMENT_BASE_URL"),
			DocumentViewURL: viper.GetString("DOCUMENT_VIEW_URL"),
			RelayBaseURL:    viper.GetString("RELAY_BASE_URL"),
			OAuthTokenURL:   viper.GetString("SERVICES_OAUTH_TOKEN_URL"),
			OAuthClientID:   viper.GetString("SERVICES_OAUTH_CLIENT_ID"),
			OAuthSecret:     viper.GetString("SERVICES_OAUTH_SECRET"),
			Timeout:         time.Duration(viper.GetInt("SERVICES_TIMEOUT_SECONDS")) * time.Second,
		},
		Storage: StorageConfig{
			Path: viper.GetString("STORAGE_PATH"),
		},
		Dispatch: DispatchConfig{
			RetryAttempts: viper.GetInt("DISPATCH_RETRY_ATTEMPTS"),
			RetryBackoff:  time.Duration(viper.GetInt("DISPATCH_RETRY_BACKOFF_MS")) * time.Millisecond,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
