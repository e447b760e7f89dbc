package cache_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/weather-widget/internal/models"
	"github.com/Nazarious-ucu/weather-widget/internal/services/cache"
)

// fakeRedis keeps values in a map; every other Cmdable method panics.
type fakeRedis struct {
	redis.Cmdable

	mu      sync.Mutex
	data    map[string]string
	ttl     map[string]time.Duration
	readErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := value.([]byte)
	if !ok {
		return redis.NewStatusResult("", errors.New("unexpected value type"))
	}
	f.data[key] = string(b)
	f.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.readErr != nil {
		return redis.NewStringResult("", f.readErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func TestRedisClient_SetGet(t *testing.T) {
	rdb := newFakeRedis()
	c := cache.NewRedisClient[models.WeatherDisplay](rdb, zerolog.Nop(), 10*time.Minute)
	ctx := context.Background()

	value := models.WeatherDisplay{Temperature: 21, Humidity: 60, WindSpeed: 5.4, Location: "New York", Icon: models.IconClear}

	require.NoError(t, c.Set(ctx, "weather:New York", value))
	assert.Equal(t, 10*time.Minute, rdb.ttl["weather:New York"])

	got, err := c.Get(ctx, "weather:New York")
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestRedisClient_Miss(t *testing.T) {
	c := cache.NewRedisClient[models.WeatherDisplay](newFakeRedis(), zerolog.Nop(), time.Minute)

	got, err := c.Get(context.Background(), "weather:Nowhere")
	require.ErrorIs(t, err, redis.Nil)
	assert.ErrorIs(t, err, cache.ErrMiss)
	assert.Equal(t, models.WeatherDisplay{}, got)
}

func TestRedisClient_ReadFailureIsNotAMiss(t *testing.T) {
	rdb := newFakeRedis()
	rdb.readErr = errors.New("connection refused")
	c := cache.NewRedisClient[models.WeatherDisplay](rdb, zerolog.Nop(), time.Minute)

	_, err := c.Get(context.Background(), "weather:Kyiv")
	require.Error(t, err)
	assert.NotErrorIs(t, err, cache.ErrMiss)
	assert.ErrorIs(t, err, rdb.readErr)
}

func TestRedisClient_CorruptedValue(t *testing.T) {
	rdb := newFakeRedis()
	rdb.data["weather:Kyiv"] = "{not json"
	c := cache.NewRedisClient[models.WeatherDisplay](rdb, zerolog.Nop(), time.Minute)

	_, err := c.Get(context.Background(), "weather:Kyiv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

type recordingCollector struct {
	latencies []string
	counters  [][]string
}

func (r *recordingCollector) ObserveLatency(op string, _ time.Duration) {
	r.latencies = append(r.latencies, op)
}

func (r *recordingCollector) IncrementCounter(metric string, labels ...string) {
	r.counters = append(r.counters, append([]string{metric}, labels...))
}

func TestMetricsDecorator(t *testing.T) {
	collector := &recordingCollector{}
	inner := cache.NewRedisClient[models.WeatherDisplay](newFakeRedis(), zerolog.Nop(), time.Minute)
	c := cache.NewMetricsDecorator[models.WeatherDisplay](inner, collector)
	ctx := context.Background()

	_, err := c.Get(ctx, "weather:Lviv")
	require.Error(t, err)

	require.NoError(t, c.Set(ctx, "weather:Lviv", models.WeatherDisplay{Location: "Lviv"}))

	got, err := c.Get(ctx, "weather:Lviv")
	require.NoError(t, err)
	assert.Equal(t, "Lviv", got.Location)

	assert.Equal(t, []string{"cache_get", "cache_set", "cache_get"}, collector.latencies)
	assert.Equal(t, [][]string{
		{"cache_get", "miss"},
		{"cache_set", "success"},
		{"cache_get", "hit"},
	}, collector.counters)
}

func TestMetricsDecorator_ReadFailure(t *testing.T) {
	collector := &recordingCollector{}
	rdb := newFakeRedis()
	rdb.readErr = errors.New("i/o timeout")
	c := cache.NewMetricsDecorator[models.WeatherDisplay](
		cache.NewRedisClient[models.WeatherDisplay](rdb, zerolog.Nop(), time.Minute), collector)

	_, err := c.Get(context.Background(), "weather:Lviv")
	require.Error(t, err)
	assert.Equal(t, [][]string{{"cache_get", "error"}}, collector.counters)
}
