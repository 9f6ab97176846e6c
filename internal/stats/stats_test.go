package stats

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRecorder_CountsByOutcomeAndGateway(t *testing.T) {
	t.Parallel()

	m := NewMemoryRecorder(WithMemoryTrackKeys(true))
	ctx := context.Background()

	require.NoError(t, m.Record(ctx, Event{Key: "1.2.3.4:anonymous", Allowed: true, Gateway: "webpay"}))
	require.NoError(t, m.Record(ctx, Event{Key: "1.2.3.4:anonymous", Allowed: false, Gateway: "webpay"}))
	require.NoError(t, m.Record(ctx, Event{Key: "5.6.7.8:u1", Allowed: true, Gateway: "khipu"}))

	total, err := m.Total(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Counters{Allowed: 2, Denied: 1}, total)
	assert.Equal(t, Counters{Allowed: 1, Denied: 1}, m.ByGateway()["webpay"])
	assert.Equal(t, Counters{Allowed: 1}, m.ByGateway()["khipu"])
	assert.Equal(t, Counters{Allowed: 1, Denied: 1}, m.ByKey()["1.2.3.4:anonymous"])
}

func TestMemoryRecorder_KeysNotTrackedByDefault(t *testing.T) {
	t.Parallel()

	m := NewMemoryRecorder()
	require.NoError(t, m.Record(context.Background(), Event{Key: "k", Allowed: true}))

	assert.Empty(t, m.ByKey())
	assert.Empty(t, m.ByGateway(), "events without gateway are only totalled")
}

func TestMemoryRecorder_SnapshotsAreCopies(t *testing.T) {
	t.Parallel()

	m := NewMemoryRecorder()
	require.NoError(t, m.Record(context.Background(), Event{Allowed: true, Gateway: "webpay"}))

	snap := m.ByGateway()
	snap["webpay"] = Counters{Allowed: 100}

	assert.Equal(t, int64(1), m.ByGateway()["webpay"].Allowed)
}

func TestRedisRecorder_NilClientIsNoop(t *testing.T) {
	t.Parallel()

	var r *RedisRecorder
	assert.NoError(t, r.Record(context.Background(), Event{Allowed: true}))

	assert.NoError(t, NewRedisRecorder(nil).Record(context.Background(), Event{Allowed: true}))
}

func TestRedisRecorder_KeyLayout(t *testing.T) {
	t.Parallel()

	r := NewRedisRecorder(nil, WithPrefix(":cc:attempts:"), WithTTL(time.Hour))
	at := time.Date(2026, 3, 9, 14, 5, 59, 0, time.FixedZone("CLT", -3*3600))

	assert.Equal(t, "cc:attempts:total", r.totalKey())
	assert.Equal(t, "cc:attempts:gateway", r.gatewayKey())
	assert.Equal(t, "cc:attempts:minute:202603091705", r.minuteKey(at))
	assert.Equal(t, "cc:attempts:key:1.2.3.4:u1", r.clientKey(" 1.2.3.4:u1 "))
	assert.Equal(t, time.Hour, r.ttl)
}

func TestRedisRecorder_UnreachableServer_ReturnsError(t *testing.T) {
	t.Parallel()

	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	err := NewRedisRecorder(rdb).Record(context.Background(), Event{Allowed: false, Gateway: "khipu"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record payment attempt")
}

func TestToInt64(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(42), toInt64("42"))
	assert.Equal(t, int64(0), toInt64(nil))
	assert.Equal(t, int64(0), toInt64("x"))
}
