package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/books-api/internal/domain/book"
	"github.com/xiebiao/books-api/internal/infrastructure/config"
	"github.com/xiebiao/books-api/pkg/circuitbreaker"
)

func setupCache(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, book.Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{Redis: config.RedisConfig{BookTTL: ttl}}
	return mr, NewBookCache(client, cfg, zap.NewNop())
}

func testBook() *book.Book {
	return &book.Book{
		ISBN:      "8419187940",
		AmazonURL: "https://www.amazon.com",
		Author:    "John Doe",
		Language:  "English",
		Pages:     100,
		Publisher: "Some publisher",
		Title:     "Test Book",
		Year:      2000,
	}
}

func TestBookCache_SetGet(t *testing.T) {
	ctx := context.Background()
	mr, cache := setupCache(t, time.Minute)

	// 未命中，从未失效过的key版本号为0
	got, version, err := cache.Get(ctx, "8419187940")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, version)

	require.NoError(t, cache.Set(ctx, testBook(), version))
	assert.True(t, mr.Exists("book:8419187940"))
	assert.Equal(t, time.Minute, mr.TTL("book:8419187940"))

	got, _, err = cache.Get(ctx, "8419187940")
	require.NoError(t, err)
	assert.Equal(t, testBook(), got)
}

func TestBookCache_Expire(t *testing.T) {
	ctx := context.Background()
	mr, cache := setupCache(t, time.Minute)
	require.NoError(t, cache.Set(ctx, testBook(), 0))

	mr.FastForward(2 * time.Minute)

	got, _, err := cache.Get(ctx, "8419187940")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBookCache_Delete(t *testing.T) {
	ctx := context.Background()
	mr, cache := setupCache(t, time.Minute)
	require.NoError(t, cache.Set(ctx, testBook(), 0))

	require.NoError(t, cache.Delete(ctx, "8419187940"))
	assert.False(t, mr.Exists("book:8419187940"))
	assert.True(t, mr.Exists("book:8419187940:version"))

	// 不存在的key
	assert.NoError(t, cache.Delete(ctx, "12345"))
}

func TestBookCache_CorruptedValue(t *testing.T) {
	ctx := context.Background()
	mr, cache := setupCache(t, time.Minute)
	require.NoError(t, mr.Set("book:8419187940", "{not json"))

	// 损坏的内容按未命中处理，回填覆盖
	got, version, err := cache.Get(ctx, "8419187940")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, cache.Set(ctx, testBook(), version))
	got, _, err = cache.Get(ctx, "8419187940")
	require.NoError(t, err)
	assert.Equal(t, testBook(), got)
}

// TestBookCache_SetAfterDelete 读取版本号之后发生Delete，旧版本号的回填被丢弃
func TestBookCache_SetAfterDelete(t *testing.T) {
	ctx := context.Background()
	mr, cache := setupCache(t, time.Minute)

	// 1. 读请求未命中，拿到版本号后去查库
	_, staleVersion, err := cache.Get(ctx, "8419187940")
	require.NoError(t, err)

	// 2. 删除请求删库后失效缓存
	require.NoError(t, cache.Delete(ctx, "8419187940"))

	// 3. 读请求用旧版本号回填
	require.NoError(t, cache.Set(ctx, testBook(), staleVersion))
	assert.False(t, mr.Exists("book:8419187940"))

	got, freshVersion, err := cache.Get(ctx, "8419187940")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NotEqual(t, staleVersion, freshVersion)

	// 失效之后开始的读请求可以正常回填
	require.NoError(t, cache.Set(ctx, testBook(), freshVersion))
	assert.True(t, mr.Exists("book:8419187940"))

	// 连续两次失效版本号也不同
	require.NoError(t, cache.Delete(ctx, "8419187940"))
	_, second, err := cache.Get(ctx, "8419187940")
	require.NoError(t, err)
	require.NoError(t, cache.Delete(ctx, "8419187940"))
	require.NoError(t, cache.Set(ctx, testBook(), second))
	assert.False(t, mr.Exists("book:8419187940"))
}

func TestBookCache_ServerDown(t *testing.T) {
	mr, cache := setupCache(t, time.Minute)
	mr.Close()

	_, _, err := cache.Get(context.Background(), "8419187940")
	assert.Error(t, err)
	assert.Error(t, cache.Set(context.Background(), testBook(), 0))
}

func TestBookCache_BreakerOpens(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{Redis: config.RedisConfig{
		BookTTL: time.Minute, BreakerFailures: 2, BreakerTimeout: time.Hour,
	}}
	cache := NewBookCache(client, cfg, zap.NewNop())

	// 未命中不计入失败
	for i := 0; i < 3; i++ {
		got, _, err := cache.Get(ctx, "8419187940")
		require.NoError(t, err)
		assert.Nil(t, got)
	}

	mr.Close()
	for i := 0; i < 2; i++ {
		_, _, err := cache.Get(ctx, "8419187940")
		require.Error(t, err)
		assert.NotErrorIs(t, err, circuitbreaker.ErrOpenState)
	}

	// 熔断后不再访问Redis
	_, _, err := cache.Get(ctx, "8419187940")
	assert.ErrorIs(t, err, circuitbreaker.ErrOpenState)
	assert.ErrorIs(t, cache.Set(ctx, testBook(), 0), circuitbreaker.ErrOpenState)
	assert.ErrorIs(t, cache.Delete(ctx, "8419187940"), circuitbreaker.ErrOpenState)
}

func TestNewBookCache_Disabled(t *testing.T) {
	cache := NewBookCache(nil, &config.Config{}, zap.NewNop())
	assert.IsType(t, book.NopCache{}, cache)
}

func TestNewClient(t *testing.T) {
	t.Run("未启用", func(t *testing.T) {
		client, err := NewClient(&config.Config{}, zap.NewNop())
		require.NoError(t, err)
		assert.Nil(t, client)
	})

	t.Run("启用", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := &config.Config{Redis: config.RedisConfig{
			Enabled: true, Host: mr.Host(), Port: mustPort(t, mr), PoolSize: 2,
		}}
		client, err := NewClient(cfg, zap.NewNop())
		require.NoError(t, err)
		require.NotNil(t, client)
		_ = client.Close()
	})

	t.Run("连接失败", func(t *testing.T) {
		mr := miniredis.RunT(t)
		port := mustPort(t, mr)
		mr.Close()
		cfg := &config.Config{Redis: config.RedisConfig{
			Enabled: true, Host: "127.0.0.1", Port: port, DialTimeout: 200 * time.Millisecond,
		}}
		_, err := NewClient(cfg, zap.NewNop())
		assert.Error(t, err)
	})
}

func mustPort(t *testing.T, mr *miniredis.Miniredis) int {
	t.Helper()
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	return port
}
