package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cardRevealServer/config"
	"cardRevealServer/game"
	"cardRevealServer/logger"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to Redis and pings it.
func InitRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	log := logger.Named("redis")
	log.Info("🔌 Connecting to Redis...")

	if addr == "" {
		addr = config.RedisAddr
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     4,
		MinIdleConns: 1,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Infof("✅ Redis connected successfully - URL: %s", addr)
	return client, nil
}

/* =========================
   PLAYER SETTINGS
   Redis Key: cardreveal:settings:{profile} -> JSON{betIndex, speed}
========================= */

// SettingsStore keeps the bet index and speed of a profile between runs.
type SettingsStore struct {
	client  *redis.Client
	profile string
	ttl     time.Duration
}

func NewSettingsStore(client *redis.Client, profile string) *SettingsStore {
	if profile == "" {
		profile = config.DefaultProfile
	}
	return &SettingsStore{client: client, profile: profile, ttl: config.SettingsTTL}
}

func (s *SettingsStore) key() string {
	return fmt.Sprintf(config.RedisSettingsKey, s.profile)
}

// Load returns the saved settings and whether any were found.
func (s *SettingsStore) Load(ctx context.Context) (game.Settings, bool, error) {
	data, err := s.client.Get(ctx, s.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return game.Settings{}, false, nil
	}
	if err != nil {
		return game.Settings{}, false, fmt.Errorf("failed to load settings: %w", err)
	}

	var settings game.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return game.Settings{}, false, fmt.Errorf("failed to decode settings: %w", err)
	}
	return settings, true, nil
}

func (s *SettingsStore) Save(ctx context.Context, settings game.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := s.client.Set(ctx, s.key(), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *SettingsStore) Delete(ctx context.Context) error {
	return s.client.Del(ctx, s.key()).Err()
}

func (s *SettingsStore) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
