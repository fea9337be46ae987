// Package config loads the application configuration from the environment.
package config

import (
	"time"
)

// Server holds the HTTP listener settings.
type Server struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port int    `envconfig:"PORT" default:"3000"`
}

// Persistence holds the remote account persistence service settings.
type Persistence struct {
	BaseURL     string        `envconfig:"BASE_URL" required:"true"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

// Redis holds the optional local durable mirror settings. An empty URL
// disables the mirror.
type Redis struct {
	URL       string `envconfig:"URL" default:""`
	KeyPrefix string `envconfig:"KEY_PREFIX" default:""`
}

// Gemini holds the AI collaborator settings. An empty API key disables the
// optimizer and the trade-history analyzer.
type Gemini struct {
	APIKey string `envconfig:"API_KEY"`
	Model  string `envconfig:"MODEL" default:"gemini-2.5-flash"`
}

// RateLimit holds the per-IP request limiter settings.
type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Scheduler holds the engine policy knobs.
type Scheduler struct {
	// FridayNewYork populates Friday's New York session instead of leaving
	// it empty.
	FridayNewYork bool `envconfig:"FRIDAY_NEW_YORK" default:"false"`
}

// App is the root application configuration.
type App struct {
	Env         string      `envconfig:"APP_ENV" default:"development"`
	Server      Server      `envconfig:"SERVER"`
	Persistence Persistence `envconfig:"PERSISTENCE"`
	Redis       Redis       `envconfig:"REDIS"`
	Gemini      Gemini      `envconfig:"GEMINI"`
	RateLimit   RateLimit   `envconfig:"RATE_LIMIT"`
	Scheduler   Scheduler   `envconfig:"SCHEDULER"`
}
