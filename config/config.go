package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server and board settings read from the environment.
type Config struct {
	Port          string
	GinMode       string
	AllowedOrigin string
	MaxGridCells  int
	StreamBuffer  int
	StepDelay     time.Duration
	LayoutPath    string
}

const (
	DefaultPort          = "8080"
	DefaultGinMode       = "debug"
	DefaultAllowedOrigin = "http://localhost:3000"
	DefaultMaxGridCells  = 10000
	DefaultStreamBuffer  = 64
	DefaultLayoutPath    = "layout.json"

	// Size of the board used when no layout file is found.
	DefaultBoardWidth  = 40
	DefaultBoardHeight = 20
)

// Default returns the configuration used when no variable is set.
func Default() Config {
	return Config{
		Port:          DefaultPort,
		GinMode:       DefaultGinMode,
		AllowedOrigin: DefaultAllowedOrigin,
		MaxGridCells:  DefaultMaxGridCells,
		StreamBuffer:  DefaultStreamBuffer,
		LayoutPath:    DefaultLayoutPath,
	}
}

// Load reads envFiles (".env" when none are given) if they exist, then the
// process environment. Variables already set in the environment win over the
// files.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		err := godotenv.Load(file)
		if err == nil {
			log.Printf("[INFO] Environment loaded from %s\n", file)
			continue
		}
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	cfg := Default()
	cfg.Port = stringEnv("PORT", cfg.Port)
	cfg.GinMode = stringEnv("GIN_MODE", cfg.GinMode)
	cfg.AllowedOrigin = stringEnv("ALLOWED_ORIGIN", cfg.AllowedOrigin)
	cfg.LayoutPath = stringEnv("LAYOUT_PATH", cfg.LayoutPath)

	var err error
	if cfg.MaxGridCells, err = intEnv("MAX_GRID_CELLS", cfg.MaxGridCells, 1); err != nil {
		return Config{}, err
	}
	if cfg.StreamBuffer, err = intEnv("STREAM_BUFFER", cfg.StreamBuffer, 0); err != nil {
		return Config{}, err
	}
	delayMs, err := intEnv("STEP_DELAY_MS", 0, 0)
	if err != nil {
		return Config{}, err
	}
	cfg.StepDelay = time.Duration(delayMs) * time.Millisecond

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func stringEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func intEnv(key string, fallback, minimum int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s=%q: not an integer", key, value)
	}
	if n < minimum {
		return 0, fmt.Errorf("%s=%d: must be at least %d", key, n, minimum)
	}
	return n, nil
}
