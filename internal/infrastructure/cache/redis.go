package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Wajihx/News-Article-Classifier/internal/domain/repository"
	"github.com/Wajihx/News-Article-Classifier/internal/infrastructure/config"
)

const keyPrefix = "newsclassifier:prediction:"

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr(), err)
	}

	return client, nil
}

type predictionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPredictionCache creates a Redis-backed prediction cache. A zero ttl keeps entries forever.
func NewPredictionCache(client *redis.Client, ttl time.Duration) repository.PredictionCache {
	return &predictionCache{client: client, ttl: ttl}
}

// Key derives the cache key for a text scored by a model version
func Key(modelVersion, text string) string {
	h := sha256.New()
	h.Write([]byte(modelVersion))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

func (c *predictionCache) Get(ctx context.Context, modelVersion, text string) (*repository.CachedPrediction, error) {
	data, err := c.client.Get(ctx, Key(modelVersion, text)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var p repository.CachedPrediction
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode cached prediction: %w", err)
	}
	return &p, nil
}

func (c *predictionCache) Set(ctx context.Context, modelVersion, text string, p *repository.CachedPrediction) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode prediction: %w", err)
	}
	return c.client.Set(ctx, Key(modelVersion, text), data, c.ttl).Err()
}
