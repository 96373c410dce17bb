// Package usage enforces the per-identity daily chat quota. Counts live in
// redis under a timezone-local day bucket; entries are incremented at most
// once per completed turn and never decremented.
package usage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/constants"
)

// ErrQuotaExceeded signals the caller has used up today's allowance.
var ErrQuotaExceeded = errors.New("daily chat limit reached")

// AdminRemaining is the sentinel remaining-count for admin callers, who
// bypass the quota entirely.
const AdminRemaining = -1

type Ledger struct {
	client redis.Cmdable
	limit  int
	loc    *time.Location
}

func NewLedger(client redis.Cmdable, limit int, timezone string) (*Ledger, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load quota timezone: %w", err)
	}
	return &Ledger{client: client, limit: limit, loc: loc}, nil
}

// Allow checks the caller's count for the current local day before the turn
// begins. Admin callers always pass.
func (l *Ledger) Allow(ctx context.Context, identity string, isAdmin bool) error {
	if isAdmin {
		return nil
	}
	count, err := l.count(ctx, identity)
	if err != nil {
		return err
	}
	if count >= l.limit {
		return ErrQuotaExceeded
	}
	return nil
}

// Remaining returns how many turns the caller has left today, or
// AdminRemaining for admins.
func (l *Ledger) Remaining(ctx context.Context, identity string, isAdmin bool) (int, error) {
	if isAdmin {
		return AdminRemaining, nil
	}
	count, err := l.count(ctx, identity)
	if err != nil {
		return 0, err
	}
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Record adds one usage entry for the current local day. Called once per
// completed turn, fire-and-forget relative to the response stream.
func (l *Ledger) Record(ctx context.Context, identity string) error {
	key := l.usageKey(identity, time.Now())

	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	// Buckets self-expire well after the day boundary has passed.
	pipe.Expire(ctx, key, 48*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	return nil
}

// ResetTime is the next local-midnight boundary, for the quota-exceeded
// message.
func (l *Ledger) ResetTime() time.Time {
	now := time.Now().In(l.loc)
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, l.loc).Add(24 * time.Hour)
}

func (l *Ledger) count(ctx context.Context, identity string) (int, error) {
	val, err := l.client.Get(ctx, l.usageKey(identity, time.Now())).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read usage: %w", err)
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("parse usage count: %w", err)
	}
	return n, nil
}

func (l *Ledger) usageKey(identity string, now time.Time) string {
	day := now.In(l.loc).Format("2006-01-02")
	return constants.RedisKeyUsagePrefix + identity + ":" + day
}
