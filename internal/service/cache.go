package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"vedacart/internal/dto"
)

const (
	summaryCacheKey = "catalog:summaries"
	summaryCacheTTL = 5 * time.Minute
)

// SummaryCache is a read-through cache over the catalog summary list. Every
// write path invalidates it; cache failures degrade to DB reads, never to
// request failures. A nil client disables caching (tests).
type SummaryCache struct {
	rdb *redis.Client
}

func NewSummaryCache(rdb *redis.Client) *SummaryCache {
	return &SummaryCache{rdb: rdb}
}

func (c *SummaryCache) Get(ctx context.Context) ([]dto.ProductSummary, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, summaryCacheKey).Result()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("summary cache read failed")
		}
		return nil, false
	}
	var list []dto.ProductSummary
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		log.Warn().Err(err).Msg("summary cache entry corrupt, discarding")
		c.Invalidate(ctx)
		return nil, false
	}
	return list, true
}

func (c *SummaryCache) Set(ctx context.Context, list []dto.ProductSummary) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, summaryCacheKey, raw, summaryCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("summary cache write failed")
	}
}

func (c *SummaryCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, summaryCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("summary cache invalidation failed")
	}
}
