// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultBaseURL    = "http://localhost:8000/api"
	defaultTicketsURL = "http://localhost:8000/profile/tickets"
	defaultLoginURL   = "http://localhost:8000/login"
	defaultTimeout    = 12 * time.Second
)

type Config struct {
	BaseURL     string        // REST API root
	TicketsURL  string        // browser page listing the user's tickets
	LoginURL    string        // browser login page
	HTTPTimeout time.Duration // per-request timeout for API calls
}

func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		BaseURL:     defaultBaseURL,
		TicketsURL:  defaultTicketsURL,
		LoginURL:    defaultLoginURL,
		HTTPTimeout: defaultTimeout,
	}
	if v := os.Getenv("CINEMA_API_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("CINEMA_TICKETS_URL"); v != "" {
		cfg.TicketsURL = v
	}
	if v := os.Getenv("CINEMA_LOGIN_URL"); v != "" {
		cfg.LoginURL = v
	}
	if v := os.Getenv("CINEMA_HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPTimeout = time.Duration(n) * time.Second
		}
	}
	return cfg
}
