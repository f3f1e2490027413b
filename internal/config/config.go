package config

import (
	"errors"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Settings holds the runtime configuration for the backend.
// It is loaded once at startup and never mutated afterwards.
type Settings struct {
	Environment string `envconfig:"ENV" default:"development"`
	Port        string `envconfig:"PORT" default:"5000"`

	MongoURI  string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017/stockpile"`
	JWTSecret string `envconfig:"JWT_SECRET"`

	// FrontendURL is used for password-reset links and as the default CORS origin.
	FrontendURL    string   `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS"`

	CloudinaryName      string `envconfig:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `envconfig:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `envconfig:"CLOUDINARY_API_SECRET"`

	EmailHost     string `envconfig:"EMAIL_HOST" default:"127.0.0.1"`
	EmailPort     int    `envconfig:"EMAIL_PORT" default:"587"`
	EmailUser     string `envconfig:"EMAIL_USER"`
	EmailPassword string `envconfig:"EMAIL_PASSWORD"`
	// SupportEmail receives contact-us submissions.
	SupportEmail string `envconfig:"SUPPORT_EMAIL"`
}

// Load reads settings from environment variables.
func Load() (*Settings, error) {
	var s Settings
	if err := envconfig.Process("", &s); err != nil {
		return nil, err
	}
	if strings.TrimSpace(s.JWTSecret) == "" {
		return nil, errors.New("JWT_SECRET must be provided")
	}
	// Fail at startup, not on the first email, when the relay
	// addresses are missing.
	if strings.TrimSpace(s.EmailUser) == "" {
		return nil, errors.New("EMAIL_USER must be provided")
	}
	if strings.TrimSpace(s.SupportEmail) == "" {
		return nil, errors.New("SUPPORT_EMAIL must be provided")
	}
	if len(s.AllowedOrigins) == 0 {
		s.AllowedOrigins = []string{s.FrontendURL}
	}
	return &s, nil
}

// IsProduction returns true when ENV is set to "production".
func (s *Settings) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(s.Environment)) == "production"
}
