package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"charm-money/internal/domain"
)

// ResultCache guarda resultados ya persistidos por codigo.
type ResultCache interface {
	Get(ctx context.Context, code string) (domain.StoredResult, bool)
	Set(ctx context.Context, result domain.StoredResult)
}

type nopResultCache struct{}

// NewNopResultCache devuelve un cache que nunca guarda nada.
func NewNopResultCache() ResultCache {
	return nopResultCache{}
}

func (nopResultCache) Get(context.Context, string) (domain.StoredResult, bool) {
	return domain.StoredResult{}, false
}

func (nopResultCache) Set(context.Context, domain.StoredResult) {}

type redisKVClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	GetDel(ctx context.Context, key string) *redis.StringCmd
}

type redisResultCache struct {
	client redisKVClient
	ttl    time.Duration
	prefix string
}

func NewRedisResultCache(client *redis.Client, ttl time.Duration) ResultCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &redisResultCache{
		client: client,
		ttl:    ttl,
		prefix: "cmi:result:",
	}
}

// Get ignora errores de redis y de decode: un miss cae al repositorio.
func (c *redisResultCache) Get(ctx context.Context, code string) (domain.StoredResult, bool) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	raw, err := c.client.Get(ctx, c.prefix+code).Bytes()
	if err != nil {
		return domain.StoredResult{}, false
	}
	var res domain.StoredResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return domain.StoredResult{}, false
	}
	return res, true
}

func (c *redisResultCache) Set(ctx context.Context, result domain.StoredResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	_ = c.client.Set(ctx, c.prefix+result.Code, payload, c.ttl).Err()
}
