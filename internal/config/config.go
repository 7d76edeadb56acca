// internal/config/config.go

// Package config loads runtime settings.
//
// Precedence, lowest first:
//  1. Default()
//  2. YAML file ($XDG_CONFIG_HOME/wordle/config.yaml, or an explicit path)
//  3. Environment variables (a .env file in the working directory is loaded
//     into the environment first)
//
// The merged result is validated before it is returned.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordle/apps/solo/internal/stats"
)

// Log controls zerolog output.
type Log struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" validate:"oneof=trace debug info warn error"`
	File   string `yaml:"file" env:"LOG_FILE"`
	Pretty bool   `yaml:"pretty" env:"LOG_PRETTY"`
}

// HTTP configures the JSON API.
type HTTP struct {
	Port          string `yaml:"port" env:"PORT" validate:"required,numeric"`
	ClientOrigin  string `yaml:"client_origin" env:"CLIENT_ORIGIN" validate:"required"`
	SessionSecret string `yaml:"session_secret" env:"SESSION_SECRET" validate:"required"`
	CookieName    string `yaml:"cookie_name" env:"COOKIE_NAME" validate:"required"`
}

// Words names optional word-list files; empty means embedded lists.
type Words struct {
	AnswersFile string `yaml:"answers_file" env:"WORDS_ANSWERS_FILE"`
	AllowedFile string `yaml:"allowed_file" env:"WORDS_ALLOWED_FILE"`
}

// Stats selects the persistence backend.
type Stats struct {
	Backend   string `yaml:"backend" env:"STATS_BACKEND" validate:"oneof=memory file sqlite"`
	Path      string `yaml:"path" env:"STATS_PATH" validate:"required_unless=Backend memory"`
	Namespace string `yaml:"namespace" env:"STATS_NAMESPACE" validate:"required"`
}

// Config is the full application configuration.
type Config struct {
	Env   string `yaml:"env" env:"APP_ENV" validate:"oneof=development production"`
	Log   Log    `yaml:"log"`
	HTTP  HTTP   `yaml:"http"`
	Words Words  `yaml:"words"`
	Stats Stats  `yaml:"stats"`
}

// Production reports whether secure cookie settings should be used.
func (c Config) Production() bool { return c.Env == "production" }

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Env: "development",
		Log: Log{
			Level: "info",
			File:  filepath.Join(".wordle", "logs", "wordle.log"),
		},
		HTTP: HTTP{
			Port:          "5175",
			ClientOrigin:  "http://localhost:5173",
			SessionSecret: DevSessionSecret,
			CookieName:    "wordle_game",
		},
		Stats: Stats{
			Backend:   "file",
			Path:      filepath.Join(".wordle", "stats.json"),
			Namespace: stats.DefaultNamespace,
		},
	}
}

// DefaultPath returns the YAML config location.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wordle", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "wordle", "config.yaml")
}

// DevSessionSecret is the built-in token secret. It is refused in production.
const DevSessionSecret = "dev_secret_change_me"

// ErrDevSecret is returned by Load when production runs with DevSessionSecret.
var ErrDevSecret = errors.New("config: SESSION_SECRET must be set in production")

var validate = validator.New()

// Load builds the configuration. path may be empty to use DefaultPath; a
// missing file is not an error, an unparsable one is.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if err := overlayFile(&cfg, path); err != nil {
		return Config{}, err
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Production() && cfg.HTTP.SessionSecret == DevSessionSecret {
		return Config{}, ErrDevSecret
	}
	return cfg, nil
}

func overlayFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}
