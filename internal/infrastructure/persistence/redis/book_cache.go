package redis

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/books-api/internal/domain/book"
	"github.com/xiebiao/books-api/internal/infrastructure/config"
	"github.com/xiebiao/books-api/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/books-api/pkg/errors"
	"github.com/xiebiao/books-api/pkg/metrics"
)

// 缓存key
// book:{isbn}          图书详情JSON
// book:{isbn}:version  失效版本号，每次Delete写入新值
// books:version:seq     版本号序列（全局递增，不过期；前缀与详情key不同，避免和isbn冲突）
const (
	keyPrefix     = "book:"
	versionSuffix = ":version"
	versionSeqKey = "books:version:seq"
)

// versionTTL 版本号只需要比一次读请求活得久；过期后重新取序列号，不会和旧值相同
const versionTTL = 24 * time.Hour

// setIfVersionScript 版本号与读取时一致才写入（不存在按0处理）
// KEYS[1]=详情key KEYS[2]=版本key ARGV[1]=JSON ARGV[2]=版本号 ARGV[3]=TTL毫秒
var setIfVersionScript = redis.NewScript(`
local v = redis.call('GET', KEYS[2])
if (v or '0') ~= ARGV[2] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1
`)

// invalidateScript 取新版本号写入版本key，再删除详情key
// KEYS[1]=详情key KEYS[2]=版本key KEYS[3]=序列key ARGV[1]=版本key TTL秒
var invalidateScript = redis.NewScript(`
local v = redis.call('INCR', KEYS[3])
redis.call('SET', KEYS[2], v, 'EX', ARGV[1])
redis.call('DEL', KEYS[1])
return v
`)

// BookCache 图书详情缓存（Cache-Aside）
// 设计说明：
// 1. 只缓存单本图书详情，列表不缓存（任何写操作都会让列表失效，命中率低）
// 2. 值为JSON，带TTL，更新和删除时由应用层主动失效
// 3. 回填带版本号比较（Lua脚本原子执行），读库期间发生失效则放弃回填
// 4. 错误包装为ErrCodeRedisError，调用方只记录不返回
// 5. Redis命令经过熔断器，连续失败后直接返回错误，不再等待Redis超时
type BookCache struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *circuitbreaker.CircuitBreaker
	log     *zap.Logger
}

// NewBookCache 创建图书缓存，client为nil（未启用Redis）时返回NopCache
func NewBookCache(client *redis.Client, cfg *config.Config, log *zap.Logger) book.Cache {
	if client == nil {
		return book.NopCache{}
	}

	breaker := circuitbreaker.New("book-cache", circuitbreaker.Config{
		MaxFailures: cfg.Redis.BreakerFailures,
		Timeout:     cfg.Redis.BreakerTimeout,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			metrics.SetCacheBreakerState(int(to))
			log.Warn("缓存熔断器状态变化",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})
	return &BookCache{client: client, ttl: cfg.Redis.BookTTL, breaker: breaker, log: log}
}

// cachedBook 缓存中的JSON结构（领域实体不带json tag）
type cachedBook struct {
	ISBN      string `json:"isbn"`
	AmazonURL string `json:"amazon_url"`
	Author    string `json:"author"`
	Language  string `json:"language"`
	Pages     int    `json:"pages"`
	Publisher string `json:"publisher"`
	Title     string `json:"title"`
	Year      int    `json:"year"`
}

// Get 读取缓存和当前版本号（一次MGET），未命中返回(nil, version, nil)
// 缓存内容损坏按未命中处理，随后的回填会覆盖它
func (c *BookCache) Get(ctx context.Context, isbn string) (*book.Book, int64, error) {
	var values []interface{}
	err := c.breaker.Execute(func() error {
		var err error
		values, err = c.client.MGet(ctx, keyPrefix+isbn, versionKey(isbn)).Result()
		return err
	})
	if err != nil {
		return nil, 0, redisError(err, "读取图书缓存失败")
	}

	version, err := parseVersion(values[1])
	if err != nil {
		return nil, 0, redisError(err, "解析缓存版本号失败")
	}

	raw, ok := values[0].(string)
	if !ok {
		return nil, version, nil
	}

	var cb cachedBook
	if err := json.Unmarshal([]byte(raw), &cb); err != nil {
		c.log.Warn("图书缓存内容损坏，按未命中处理", zap.String("isbn", isbn), zap.Error(err))
		return nil, version, nil
	}
	return &book.Book{
		ISBN:      cb.ISBN,
		AmazonURL: cb.AmazonURL,
		Author:    cb.Author,
		Language:  cb.Language,
		Pages:     cb.Pages,
		Publisher: cb.Publisher,
		Title:     cb.Title,
		Year:      cb.Year,
	}, version, nil
}

// Set 回填缓存，版本号已变化（期间有Delete）时不写入
func (c *BookCache) Set(ctx context.Context, b *book.Book, version int64) error {
	data, err := json.Marshal(cachedBook{
		ISBN:      b.ISBN,
		AmazonURL: b.AmazonURL,
		Author:    b.Author,
		Language:  b.Language,
		Pages:     b.Pages,
		Publisher: b.Publisher,
		Title:     b.Title,
		Year:      b.Year,
	})
	if err != nil {
		return redisError(err, "序列化图书缓存失败")
	}

	err = c.breaker.Execute(func() error {
		return setIfVersionScript.Run(ctx, c.client,
			[]string{keyPrefix + b.ISBN, versionKey(b.ISBN)},
			data, strconv.FormatInt(version, 10), c.ttl.Milliseconds(),
		).Err()
	})
	if err != nil {
		return redisError(err, "写入图书缓存失败")
	}
	return nil
}

// Delete 失效缓存（key不存在不算错误）
// 写入新版本号和删除在同一个脚本里原子执行，正在读库的请求回填时会发现版本不一致
func (c *BookCache) Delete(ctx context.Context, isbn string) error {
	err := c.breaker.Execute(func() error {
		return invalidateScript.Run(ctx, c.client,
			[]string{keyPrefix + isbn, versionKey(isbn), versionSeqKey},
			int64(versionTTL/time.Second),
		).Err()
	})
	if err != nil {
		return redisError(err, "删除图书缓存失败")
	}
	return nil
}

func versionKey(isbn string) string {
	return keyPrefix + isbn + versionSuffix
}

func parseVersion(v interface{}) (int64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

func redisError(err error, message string) error {
	return &apperrors.AppError{Code: apperrors.ErrCodeRedisError, Message: message, Err: err}
}
