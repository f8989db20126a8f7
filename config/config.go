package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"cardRevealServer/game"

	"github.com/joho/godotenv"
)

// Config is the runtime configuration read from the environment.
type Config struct {
	ServerAddr      string
	PayTablePath    string
	HoldBand        game.HoldBand
	RNGSeed         string
	FlipAckGrace    time.Duration
	DefaultBetIndex int
	LogLevel        string

	RedisURL      string
	RedisPassword string
	RedisDB       int
	Profile       string
}

// LoadEnv loads a .env file into the process environment. It reports whether
// a file was found; a missing file is not an error.
func LoadEnv(paths ...string) bool {
	return godotenv.Load(paths...) == nil
}

// FromEnv reads Config from environment variables, applying defaults.
func FromEnv() (Config, error) {
	cfg := Config{
		ServerAddr:      getEnv("SERVER_ADDR", ServerAddr),
		PayTablePath:    os.Getenv("PAYTABLE_PATH"),
		RNGSeed:         os.Getenv("RNG_SEED"),
		FlipAckGrace:    FlipAckGrace,
		DefaultBetIndex: DefaultBetIndex,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		RedisURL:        os.Getenv("REDIS_URL"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		Profile:         getEnv("SETTINGS_PROFILE", DefaultProfile),
	}

	band, err := game.ParseHoldBand(os.Getenv("RESULT_HOLD_BAND"))
	if err != nil {
		return Config{}, err
	}
	cfg.HoldBand = band

	if v := os.Getenv("FLIP_ACK_GRACE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("invalid FLIP_ACK_GRACE %q", v)
		}
		cfg.FlipAckGrace = d
	}

	if v := os.Getenv("DEFAULT_BET_INDEX"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil || i < 0 {
			return Config{}, fmt.Errorf("invalid DEFAULT_BET_INDEX %q", v)
		}
		cfg.DefaultBetIndex = i
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid REDIS_DB %q", v)
		}
		cfg.RedisDB = db
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
