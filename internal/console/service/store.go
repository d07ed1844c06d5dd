package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sumo_console/internal/backend"

	"github.com/redis/go-redis/v9"
)

// ConsoleStore is the console's own little bit of durable state: the
// competition flag, the last ranking snapshot, the settings form, and the
// one-time form tokens. Everything else lives behind the backend API.
type ConsoleStore interface {
	SetCompeting(ctx context.Context, competing bool) error
	Competing(ctx context.Context) (bool, error)
	SaveRanking(ctx context.Context, ranking []backend.Clasificado) error
	Ranking(ctx context.Context) ([]backend.Clasificado, error)
	SaveSettings(ctx context.Context, s Settings) error
	LoadSettings(ctx context.Context) (Settings, bool, error)
	ClaimOnce(ctx context.Context, token string) (bool, error)
}

// Settings is the competition configuration kept console-side. The backend
// has no endpoint for it yet, so it lives in Redis until one exists.
type Settings struct {
	NumeroClasificados int `json:"numeroClasificados"`
	NumeroPistas       int `json:"numeroPistas"`
}

type redisStore struct {
	rdb         *redis.Client
	flagKey     string
	rankingKey  string
	settingsKey string
	onceTTL     time.Duration
}

func NewRedisStore(rdb *redis.Client, flagKey, rankingKey, settingsKey string, onceTTL time.Duration) ConsoleStore {
	return &redisStore{
		rdb:         rdb,
		flagKey:     flagKey,
		rankingKey:  rankingKey,
		settingsKey: settingsKey,
		onceTTL:     onceTTL,
	}
}

func (s *redisStore) SetCompeting(ctx context.Context, competing bool) error {
	if competing {
		if err := s.rdb.Set(ctx, s.flagKey, "1", 0).Err(); err != nil {
			return fmt.Errorf("redisStore.SetCompeting: %w", err)
		}
		return nil
	}
	if err := s.rdb.Del(ctx, s.flagKey).Err(); err != nil {
		return fmt.Errorf("redisStore.SetCompeting: %w", err)
	}
	return nil
}

func (s *redisStore) Competing(ctx context.Context) (bool, error) {
	_, err := s.rdb.Get(ctx, s.flagKey).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redisStore.Competing: %w", err)
	}
	return true, nil
}

func (s *redisStore) SaveRanking(ctx context.Context, ranking []backend.Clasificado) error {
	payload, err := json.Marshal(ranking)
	if err != nil {
		return fmt.Errorf("redisStore.SaveRanking: %w", err)
	}
	if err := s.rdb.Set(ctx, s.rankingKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("redisStore.SaveRanking: %w", err)
	}
	return nil
}

func (s *redisStore) Ranking(ctx context.Context) ([]backend.Clasificado, error) {
	raw, err := s.rdb.Get(ctx, s.rankingKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redisStore.Ranking: %w", err)
	}
	var ranking []backend.Clasificado
	if err := json.Unmarshal(raw, &ranking); err != nil {
		return nil, fmt.Errorf("redisStore.Ranking: %w", err)
	}
	return ranking, nil
}

func (s *redisStore) SaveSettings(ctx context.Context, cfg Settings) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("redisStore.SaveSettings: %w", err)
	}
	if err := s.rdb.Set(ctx, s.settingsKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("redisStore.SaveSettings: %w", err)
	}
	return nil
}

func (s *redisStore) LoadSettings(ctx context.Context) (Settings, bool, error) {
	raw, err := s.rdb.Get(ctx, s.settingsKey).Bytes()
	if err == redis.Nil {
		return Settings{}, false, nil
	}
	if err != nil {
		return Settings{}, false, fmt.Errorf("redisStore.LoadSettings: %w", err)
	}
	var cfg Settings
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Settings{}, false, fmt.Errorf("redisStore.LoadSettings: %w", err)
	}
	return cfg, true, nil
}

func (s *redisStore) ClaimOnce(ctx context.Context, token string) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, "once:"+token, "1", s.onceTTL).Result()
	if err != nil {
		return false, fmt.Errorf("redisStore.ClaimOnce: %w", err)
	}
	return ok, nil
}
