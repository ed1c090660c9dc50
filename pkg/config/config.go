package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Typesense TypesenseConfig
	Firebase  FirebaseConfig
	Google    GoogleConfig
	Admin     AdminConfig
	Session   SessionConfig
	Mirror    MirrorConfig
	Locale    LocaleConfig
	Log       LogConfig
	OTEL      OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

// DatabaseConfig holds database configuration. Driver is either "sqlite"
// (file-resident, Path is used) or "postgres" (the network fields are used).
type DatabaseConfig struct {
	Driver   string
	Path     string
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// TypesenseConfig holds Typesense configuration
type TypesenseConfig struct {
	URL    string
	APIKey string
}

// FirebaseConfig holds the Firebase Admin SDK settings and the public web
// configuration handed to the admin login page.
type FirebaseConfig struct {
	CredentialsFile string
	ProjectID       string
	Web             FirebaseWebConfig
}

// FirebaseWebConfig is the browser-side Firebase configuration
type FirebaseWebConfig struct {
	APIKey            string `json:"apiKey"`
	AuthDomain        string `json:"authDomain"`
	ProjectID         string `json:"projectId"`
	StorageBucket     string `json:"storageBucket"`
	MessagingSenderID string `json:"messagingSenderId"`
	AppID             string `json:"appId"`
	MeasurementID     string `json:"measurementId"`
}

// GoogleConfig holds Google Sign-In configuration
type GoogleConfig struct {
	ClientID string
}

// AdminConfig holds the administrator allow-list and identity provider choice
type AdminConfig struct {
	Emails           []string
	EmailDomain      string
	IdentityProvider string
}

// SessionConfig holds admin session settings
type SessionConfig struct {
	Backend      string
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

// MirrorConfig holds secondary store settings
type MirrorConfig struct {
	Backend    string
	Collection string
	Timeout    time.Duration
}

// LocaleConfig holds language and time zone settings
type LocaleConfig struct {
	Language string
	TimeZone string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
	Env   string
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			Path:     getEnv("DB_PATH", "data/feedback.db"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "satisfaction_feedback"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Typesense: TypesenseConfig{
			URL:    getEnv("TYPESENSE_URL", "http://localhost:8108"),
			APIKey: getEnv("TYPESENSE_API_KEY", "xyz"),
		},
		Firebase: FirebaseConfig{
			CredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			Web: FirebaseWebConfig{
				APIKey:            getEnv("FIREBASE_API_KEY", ""),
				AuthDomain:        getEnv("FIREBASE_AUTH_DOMAIN", ""),
				ProjectID:         getEnv("FIREBASE_PROJECT_ID", ""),
				StorageBucket:     getEnv("FIREBASE_STORAGE_BUCKET", ""),
				MessagingSenderID: getEnv("FIREBASE_MESSAGING_SENDER_ID", ""),
				AppID:             getEnv("FIREBASE_APP_ID", ""),
				MeasurementID:     getEnv("FIREBASE_MEASUREMENT_ID", ""),
			},
		},
		Google: GoogleConfig{
			ClientID: getEnv("GOOGLE_CLIENT_ID", ""),
		},
		Admin: AdminConfig{
			Emails:           normalizeEmails(getEnvAsList("ADMIN_EMAILS", nil)),
			EmailDomain:      strings.ToLower(strings.TrimPrefix(strings.TrimSpace(getEnv("ADMIN_EMAIL_DOMAIN", "")), "@")),
			IdentityProvider: strings.ToLower(getEnv("IDENTITY_PROVIDER", "firebase")),
		},
		Session: SessionConfig{
			Backend:      strings.ToLower(getEnv("SESSION_BACKEND", "memory")),
			TTL:          getEnvAsDuration("SESSION_TTL", 12*time.Hour),
			CookieName:   getEnv("SESSION_COOKIE_NAME", "feedback_admin_session"),
			CookieSecure: getEnvAsBool("SESSION_COOKIE_SECURE", false),
		},
		Mirror: MirrorConfig{
			Backend:    strings.ToLower(getEnv("MIRROR_BACKEND", "none")),
			Collection: getEnv("MIRROR_COLLECTION", "feedback"),
			Timeout:    getEnvAsDuration("MIRROR_TIMEOUT", 5*time.Second),
		},
		Locale: LocaleConfig{
			Language: strings.ToLower(getEnv("LOCALE", "en")),
			TimeZone: getEnv("TIMEZONE", "Local"),
		},
		Log: LogConfig{
			Level: strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Env:   getEnv("APP_ENV", "development"),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "satisfaction-feedback"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	switch c.Session.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported SESSION_BACKEND %q", c.Session.Backend)
	}
	switch c.Mirror.Backend {
	case "none", "firestore", "typesense", "redis":
	default:
		return fmt.Errorf("unsupported MIRROR_BACKEND %q", c.Mirror.Backend)
	}
	switch c.Admin.IdentityProvider {
	case "firebase", "google", "none":
	default:
		return fmt.Errorf("unsupported IDENTITY_PROVIDER %q", c.Admin.IdentityProvider)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Location resolves the configured time zone. "Local" or an empty value
// means the host's zone.
func (c *LocaleConfig) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping blank items
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func normalizeEmails(emails []string) []string {
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		out = append(out, strings.ToLower(e))
	}
	return out
}
