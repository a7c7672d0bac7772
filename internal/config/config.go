package config

import "github.com/kelseyhightower/envconfig"

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port     int    `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Version  string `envconfig:"VERSION" default:"dev"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Hosted identity provider. The anon key authenticates token
	// verification calls; profile lookups go over the direct database
	// connection, which is not subject to row-level security.
	AuthURL     string `envconfig:"AUTH_URL" required:"true"`
	AuthAnonKey string `envconfig:"AUTH_ANON_KEY" required:"true"`

	// AdminEmail is the always-admin operator address. It is injected here
	// once and compared case-sensitively by the authorization gate.
	AdminEmail string `envconfig:"ADMIN_EMAIL" required:"true"`

	SessionCookieName string `envconfig:"SESSION_COOKIE_NAME" default:"sb-access-token"`

	S3Endpoint      string `envconfig:"S3_ENDPOINT" default:""`
	S3Region        string `envconfig:"S3_REGION" default:"eu-west-1"`
	S3Bucket        string `envconfig:"S3_BUCKET" default:"pousada-media"`
	S3AccessKey     string `envconfig:"S3_ACCESS_KEY" default:""`
	S3SecretKey     string `envconfig:"S3_SECRET_KEY" default:""`
	S3UsePathStyle  bool   `envconfig:"S3_USE_PATH_STYLE" default:"false"`
	S3PublicBaseURL string `envconfig:"S3_PUBLIC_BASE_URL" default:""`

	// Public-surface rate limits, requests per minute per client.
	PublicRatePerMinute  int `envconfig:"PUBLIC_RATE_PER_MINUTE" default:"120"`
	BookingRatePerMinute int `envconfig:"BOOKING_RATE_PER_MINUTE" default:"10"`

	// Housekeeper sweep interval and how long a booking may stay pending,
	// both in minutes.
	HousekeeperInterval int `envconfig:"HOUSEKEEPER_INTERVAL" default:"60"`
	BookingPendingTTL   int `envconfig:"BOOKING_PENDING_TTL" default:"2880"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
