package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	GCS       GCSConfig
	Gemini    GeminiConfig
	Geocoding GeocodingConfig
	Gotenberg GotenbergConfig
}

type ServerConfig struct {
	Port         string   `env:"SERVER_PORT" envDefault:"8080"`
	Environment  string   `env:"ENVIRONMENT" envDefault:"development"`
	BaseURL      string   `env:"BASE_URL"`
	AllowOrigins []string `env:"ALLOW_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:3001"`
}

type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"3306"`
	User     string `env:"DB_USER" envDefault:"root"`
	Password string `env:"DB_PASSWORD"`
	DBName   string `env:"DB_NAME" envDefault:"valuation_reports"`
}

type GCSConfig struct {
	BucketName      string `env:"GCS_BUCKET_NAME"`
	ProjectID       string `env:"GOOGLE_CLOUD_PROJECT"`
	CredentialsPath string `env:"GCS_CREDENTIALS_PATH"`
}

type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
}

type GeocodingConfig struct {
	APIKey  string `env:"GEOCODING_API_KEY"`
	BaseURL string `env:"GEOCODING_BASE_URL" envDefault:"https://maps.googleapis.com/maps/api/geocode/json"`
}

type GotenbergConfig struct {
	URL     string `env:"GOTENBERG_URL" envDefault:"http://localhost:3000"`
	Timeout string `env:"GOTENBERG_TIMEOUT" envDefault:"30s"`
}

// DSN builds a MySQL connection string, supporting the Cloud SQL unix-socket
// form when Host starts with a slash.
func (d *DatabaseConfig) DSN() string {
	if len(d.Host) > 0 && d.Host[0] == '/' {
		return fmt.Sprintf("%s:%s@unix(%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			d.User, d.Password, d.Host, d.DBName)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.DBName)
}

// Load reads .env if present, then parses the environment into a Config.
// A missing .env file is not an error; system environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file loaded: %v, using system environment variables\n", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, nil
}
