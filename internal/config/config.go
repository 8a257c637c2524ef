package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage backends accepted in STORAGE_BACKEND.
const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageGCS   = "gcs"
)

// Config holds the configuration values for the application.
type Config struct {
	MongoURI      string   `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string   `env:"MONGO_DATABASE" envDefault:"health_record"`
	JWTSecret     string   `env:"JWT_SECRET"`
	Port          string   `env:"API_PORT" envDefault:"8080"`
	APIBaseURL    string   `env:"API_BASE_URL" envDefault:"http://localhost:8080"`
	CORSOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// TrustedProxies lists the proxy IPs or CIDRs whose X-Forwarded-For is
	// honored. Empty means the client IP is always the connection peer.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	Storage   StorageConfig
	RateLimit RateLimitConfig
	Textbelt  TextbeltConfig
}

type StorageConfig struct {
	Backend        string `env:"STORAGE_BACKEND" envDefault:"local"`
	UploadDir      string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"5242880"`

	Minio MinioConfig `envPrefix:"MINIO_"`
	GCS   GCSConfig   `envPrefix:"GCS_"`
}

type MinioConfig struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET"`
	UseSSL    bool   `env:"USE_SSL"`
	PublicURL string `env:"PUBLIC_URL"`
}

type GCSConfig struct {
	Bucket          string `env:"BUCKET"`
	ProjectID       string `env:"PROJECT_ID"`
	CredentialsFile string `env:"CREDENTIALS_FILE"`
	PublicURL       string `env:"PUBLIC_URL"`
}

// RateLimitConfig bounds how often one client may hit register/login.
type RateLimitConfig struct {
	RPS   float64 `env:"AUTH_RATE_LIMIT_RPS" envDefault:"1"`
	Burst int     `env:"AUTH_RATE_LIMIT_BURST" envDefault:"5"`
}

// TextbeltConfig enables SMS appointment confirmations when APIKey is set.
type TextbeltConfig struct {
	APIKey string `env:"TEXTBELT_API_KEY"`
	URL    string `env:"TEXTBELT_URL" envDefault:"https://textbelt.com/text"`
}

// Load reads a .env file if present and then parses the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}
	return Parse()
}

// Parse builds a Config from the current environment without touching .env.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)
	cfg.TrustedProxies = trimAll(cfg.TrustedProxies)
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that would keep the server from starting.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if len(c.CORSOrigins) == 0 {
		return errors.New("CORS_ALLOWED_ORIGINS must list at least one origin")
	}
	for _, p := range c.TrustedProxies {
		if !validProxy(p) {
			return fmt.Errorf("TRUSTED_PROXIES: invalid IP or CIDR %q", p)
		}
	}
	if c.Storage.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	switch c.Storage.Backend {
	case StorageLocal:
		if strings.TrimSpace(c.Storage.UploadDir) == "" {
			return errors.New("UPLOAD_DIR is required for local storage")
		}
	case StorageMinio:
		m := c.Storage.Minio
		if m.Endpoint == "" || m.AccessKey == "" || m.SecretKey == "" || m.Bucket == "" {
			return errors.New("MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY and MINIO_BUCKET are required for minio storage")
		}
	case StorageGCS:
		if c.Storage.GCS.Bucket == "" {
			return errors.New("GCS_BUCKET is required for gcs storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}
	return nil
}

func validProxy(p string) bool {
	if strings.Contains(p, "/") {
		_, _, err := net.ParseCIDR(p)
		return err == nil
	}
	return net.ParseIP(p) != nil
}

// trimAll drops blank entries left by stray commas.
func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
