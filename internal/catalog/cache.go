package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Domenick1991/tripflow/config"
	"github.com/Domenick1991/tripflow/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache shares the offer list across processes with a TTL.
type RedisCache struct {
	client    *redis.Client
	offersTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, offersTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		offersTTL: offersTTL,
	}
}

func (c *RedisCache) GetOffers(ctx context.Context) ([]domain.Offer, error) {
	data, err := c.client.Get(ctx, offersKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var offers []domain.Offer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

func (c *RedisCache) SetOffers(ctx context.Context, offers []domain.Offer) error {
	payload, err := json.Marshal(offers)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, offersKey(), payload, c.offersTTL).Err()
}

func offersKey() string {
	return "cache:offers"
}

var _ Cache = (*RedisCache)(nil)
