// Package cache holds the month read-model cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"roomcalendar/internal/domain"
)

const (
	keyPrefix  = "bookings:month:"
	DefaultTTL = 5 * time.Minute
)

// MonthKey returns the Redis key of a month, e.g. bookings:month:2025-06.
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%s%04d-%02d", keyPrefix, year, int(month))
}

// GenerationKey holds the month's invalidation counter. It has no TTL.
func GenerationKey(year int, month time.Month) string {
	return MonthKey(year, month) + ":gen"
}

type redisMonthCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisMonthCache stores month rows as JSON under MonthKey with the given TTL.
func NewRedisMonthCache(rdb *redis.Client, ttl time.Duration) domain.MonthCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &redisMonthCache{rdb: rdb, ttl: ttl}
}

func (c *redisMonthCache) GetMonth(ctx context.Context, year int, month time.Month) ([]domain.BookingWithEventDetails, bool, error) {
	raw, err := c.rdb.Get(ctx, MonthKey(year, month)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get month cache: %w", err)
	}
	var rows []domain.BookingWithEventDetails
	if err := json.Unmarshal(raw, &rows); err != nil {
		// A corrupt entry is treated as a miss and dropped.
		_ = c.rdb.Del(ctx, MonthKey(year, month)).Err()
		return nil, false, nil
	}
	if rows == nil {
		rows = []domain.BookingWithEventDetails{}
	}
	return rows, true, nil
}

func (c *redisMonthCache) MonthGeneration(ctx context.Context, year int, month time.Month) (int64, error) {
	gen, err := readGeneration(ctx, c.rdb, GenerationKey(year, month))
	if err != nil {
		return 0, fmt.Errorf("get month generation: %w", err)
	}
	return gen, nil
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, cmd getter, key string) (int64, error) {
	gen, err := cmd.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetMonth writes under WATCH of the generation key so a concurrent InvalidateMonths
// either aborts the write or is seen as a newer generation.
func (c *redisMonthCache) SetMonth(ctx context.Context, year int, month time.Month, gen int64, rows []domain.BookingWithEventDetails) (bool, error) {
	if rows == nil {
		rows = []domain.BookingWithEventDetails{}
	}
	raw, err := json.Marshal(rows)
	if err != nil {
		return false, fmt.Errorf("encode month cache: %w", err)
	}

	genKey := GenerationKey(year, month)
	stored := false
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, genKey)
		if err != nil {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, MonthKey(year, month), raw, c.ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("set month cache: %w", err)
	}
	return stored, nil
}

func (c *redisMonthCache) InvalidateMonths(ctx context.Context, dates ...domain.Date) error {
	if len(dates) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(dates))
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, d := range dates {
			k := MonthKey(d.Year, d.Month)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			pipe.Incr(ctx, GenerationKey(d.Year, d.Month))
			pipe.Del(ctx, k)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate month cache: %w", err)
	}
	return nil
}

type noopMonthCache struct{}

// NewNoopMonthCache is used when Redis is not configured. Every read is a miss.
func NewNoopMonthCache() domain.MonthCache { return noopMonthCache{} }

func (noopMonthCache) GetMonth(context.Context, int, time.Month) ([]domain.BookingWithEventDetails, bool, error) {
	return nil, false, nil
}

func (noopMonthCache) MonthGeneration(context.Context, int, time.Month) (int64, error) {
	return 0, nil
}

func (noopMonthCache) SetMonth(context.Context, int, time.Month, int64, []domain.BookingWithEventDetails) (bool, error) {
	return false, nil
}

func (noopMonthCache) InvalidateMonths(context.Context, ...domain.Date) error { return nil }
