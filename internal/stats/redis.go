package stats

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRecorder aggregates counters in Redis hashes.
type RedisRecorder struct {
	rdb       redis.Cmdable
	prefix    string
	ttl       time.Duration // per-minute and per-key hashes only
	trackKeys bool
}

// RedisOption configures a RedisRecorder.
type RedisOption func(*RedisRecorder)

func WithPrefix(prefix string) RedisOption {
	return func(r *RedisRecorder) { r.prefix = strings.Trim(prefix, ":") }
}

func WithTTL(d time.Duration) RedisOption {
	return func(r *RedisRecorder) { r.ttl = d }
}

// WithTrackKeys enables one hash per client key. Key cardinality grows with
// traffic, so pair it with a TTL.
func WithTrackKeys(track bool) RedisOption {
	return func(r *RedisRecorder) { r.trackKeys = track }
}

func NewRedisRecorder(rdb redis.Cmdable, opts ...RedisOption) *RedisRecorder {
	r := &RedisRecorder{
		rdb:    rdb,
		prefix: "payment_attempts",
		ttl:    24 * time.Hour,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RedisRecorder) Record(ctx context.Context, ev Event) error {
	if r == nil || r.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	field := outcome(ev.Allowed)

	pipe := r.rdb.Pipeline()
	pipe.HIncrBy(ctx, r.totalKey(), field, 1)

	minuteKey := r.minuteKey(at)
	pipe.HIncrBy(ctx, minuteKey, field, 1)
	if r.ttl > 0 {
		pipe.Expire(ctx, minuteKey, r.ttl)
	}

	if ev.Gateway != "" {
		pipe.HIncrBy(ctx, r.gatewayKey(), ev.Gateway+":"+field, 1)
	}

	if r.trackKeys && ev.Key != "" {
		k := r.clientKey(ev.Key)
		pipe.HIncrBy(ctx, k, field, 1)
		if r.ttl > 0 {
			pipe.Expire(ctx, k, r.ttl)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record payment attempt: %w", err)
	}
	return nil
}

// Total reads the cumulative counters.
func (r *RedisRecorder) Total(ctx context.Context) (Counters, error) {
	vals, err := r.rdb.HMGet(ctx, r.totalKey(), "allowed", "denied").Result()
	if err != nil {
		return Counters{}, fmt.Errorf("read payment attempt totals: %w", err)
	}
	return Counters{Allowed: toInt64(vals[0]), Denied: toInt64(vals[1])}, nil
}

func (r *RedisRecorder) totalKey() string   { return r.prefix + ":total" }
func (r *RedisRecorder) gatewayKey() string { return r.prefix + ":gateway" }

func (r *RedisRecorder) minuteKey(at time.Time) string {
	return fmt.Sprintf("%s:minute:%s", r.prefix, at.UTC().Format("200601021504"))
}

func (r *RedisRecorder) clientKey(key string) string {
	return r.prefix + ":key:" + strings.TrimSpace(key)
}

func toInt64(v any) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
