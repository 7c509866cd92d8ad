package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config contains service configuration parameters.
type Config struct {
	LogLevel  int      `env:"LOG_LEVEL" envDefault:"0"`
	LogFormat string   `env:"LOG_FORMAT" envDefault:"text"`
	HTTP      HTTP     `envPrefix:"HTTP_"`
	Database  Database `envPrefix:"DATABASE_"`
	Mail      Mail
	AMQP      AMQP   `envPrefix:"AMQP_"`
	Client    Client `envPrefix:"CLIENT_"`
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RateLimit       int           `env:"RATE_LIMIT" envDefault:"10"`
	RateWindow      time.Duration `env:"RATE_WINDOW" envDefault:"1m"`
}

// Database contains database connection parameters.
// Driver is "pgx" (default), "postgres" (lib/pq) or "memory".
type Database struct {
	Driver          string        `env:"DRIVER" envDefault:"pgx"`
	URL             string        `env:"URL"`
	ServiceKey      string        `env:"SERVICE_KEY"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m"`
	Migrate         bool          `env:"MIGRATE" envDefault:"true"`
}

// Configured reports whether a store can be built from this section.
func (d Database) Configured() bool {
	return d.Driver == "memory" || d.URL != ""
}

// DSN returns URL with ServiceKey as the password, so the credential can be
// kept out of the URL. URLs that are not postgres:// URLs are returned as is.
func (d Database) DSN() string {
	if d.ServiceKey == "" {
		return d.URL
	}
	u, err := url.Parse(d.URL)
	if err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
		return d.URL
	}
	user := ""
	if u.User != nil {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, d.ServiceKey)
	return u.String()
}

// Mail contains email transport parameters.
type Mail struct {
	ResendAPIKey  string `env:"RESEND_API_KEY"`
	From          string `env:"MAIL_FROM" envDefault:"Lhoman Group <noreply@lhomangroup.com>"`
	OfferURL      string `env:"MAIL_OFFER_URL" envDefault:"https://www.lhomangroup.com"`
	SMTPHost      string `env:"SMTP_HOST"`
	SMTPPort      int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser      string `env:"SMTP_USER"`
	SMTPPassword  string `env:"SMTP_PASSWORD"`
	AltServiceID  string `env:"EMAILJS_SERVICE_ID" envDefault:"service_lhoman"`
	AltTemplateID string `env:"EMAILJS_TEMPLATE_ID" envDefault:"template_checklist"`
}

// AMQP contains the optional event broker parameters. Empty URL disables publishing.
type AMQP struct {
	URL      string `env:"URL"`
	Exchange string `env:"EXCHANGE" envDefault:"ex.subscribers"`
}

// Client contains parameters of the submission client.
type Client struct {
	Endpoint      string        `env:"ENDPOINT"`
	AnonKey       string        `env:"ANON_KEY"`
	Mode          string        `env:"MODE" envDefault:"inline"`
	BookingURL    string        `env:"BOOKING_URL" envDefault:"https://www.lhomangroup.com"`
	RedirectDelay time.Duration `env:"REDIRECT_DELAY" envDefault:"3s"`
	FallbackDelay time.Duration `env:"FALLBACK_DELAY" envDefault:"1500ms"`
	Timeout       time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// NewConfig loads configuration from an optional .env file and environment variables.
func NewConfig() (*Config, error) {
	// a missing .env file is fine outside local development
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	switch cfg.Database.Driver {
	case "pgx", "postgres", "memory":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	return &cfg, nil
}
