// Package cache keeps the current highest sub-bid per bid in Redis. The
// cache is advisory: the sub_bid table reduction stays the source of truth,
// entries expire on their own, and every failure here degrades to a database
// read instead of surfacing to the caller.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"bookhive-api/internal/entity"
)

const entryTTL = 10 * time.Minute

type HighestBidCache struct {
	client *redis.Client
	log    *zap.Logger
}

func NewHighestBidCache(addr, password string, db int, log *zap.Logger) (*HighestBidCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &HighestBidCache{client: rdb, log: log}, nil
}

func highestKey(bidId string) string {
	return fmt.Sprintf("bid:%s:highest", bidId)
}

// Get returns the cached highest sub-bid, or ok=false on a miss or any
// redis error.
func (c *HighestBidCache) Get(ctx context.Context, bidId string) (*entity.SubBid, bool) {
	payload, err := c.client.Get(ctx, highestKey(bidId)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("highest-bid cache read failed", zap.String("bidId", bidId), zap.Error(err))
		}

		return nil, false
	}

	var subBid entity.SubBid
	if err := json.Unmarshal(payload, &subBid); err != nil {
		c.log.Warn("highest-bid cache entry corrupt", zap.String("bidId", bidId), zap.Error(err))
		return nil, false
	}

	return &subBid, true
}

// Set overwrites the cached entry with a value computed from a full
// database reduction.
func (c *HighestBidCache) Set(ctx context.Context, bidId string, subBid *entity.SubBid) {
	payload, err := json.Marshal(subBid)
	if err != nil {
		c.log.Warn("highest-bid cache marshal failed", zap.String("bidId", bidId), zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, highestKey(bidId), payload, entryTTL).Err(); err != nil {
		c.log.Warn("highest-bid cache write failed", zap.String("bidId", bidId), zap.Error(err))
	}
}

// Record updates the cache after a successful sub-bid placement. The entry
// is only replaced when the new amount is strictly greater than the cached
// one, matching the leftmost-wins tie rule of the database reduction. With
// no cached entry it stays empty; the next read repopulates it from a full
// reduction rather than trusting a single append.
func (c *HighestBidCache) Record(ctx context.Context, bidId string, subBid *entity.SubBid) {
	cached, ok := c.Get(ctx, bidId)
	if !ok {
		return
	}

	if subBid.Amount.GreaterThan(cached.Amount) {
		c.Set(ctx, bidId, subBid)
	}
}

// Invalidate drops the cached entry, used when a bid is deleted.
func (c *HighestBidCache) Invalidate(ctx context.Context, bidId string) {
	if err := c.client.Del(ctx, highestKey(bidId)).Err(); err != nil {
		c.log.Warn("highest-bid cache invalidation failed", zap.String("bidId", bidId), zap.Error(err))
	}
}

func (c *HighestBidCache) Close() error {
	return c.client.Close()
}
