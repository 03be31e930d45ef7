package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/leafside/internal/domain/book"
	"github.com/xiebiao/leafside/pkg/metrics"
)

// BookCache 图书详情缓存（Cache-Aside）
// 更新数据库后删除缓存，下次读取时重新加载
type BookCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewBookCache 创建图书缓存
func NewBookCache(client *redis.Client, prefix string, ttl time.Duration) *BookCache {
	return &BookCache{client: client, prefix: prefix, ttl: ttl}
}

var _ book.Cache = (*BookCache)(nil)

// Get 未命中返回nil, nil
func (c *BookCache) Get(ctx context.Context, id uint) (*book.Book, error) {
	val, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.BookCacheRequests.WithLabelValues("miss").Inc()
			return nil, nil
		}
		metrics.BookCacheRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("获取缓存失败: %w", err)
	}

	var b book.Book
	if err := json.Unmarshal(val, &b); err != nil {
		return nil, fmt.Errorf("反序列化失败: %w", err)
	}
	metrics.BookCacheRequests.WithLabelValues("hit").Inc()
	return &b, nil
}

func (c *BookCache) Set(ctx context.Context, b *book.Book) error {
	val, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}
	if err := c.client.Set(ctx, c.key(b.ID), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("设置缓存失败: %w", err)
	}
	return nil
}

func (c *BookCache) Delete(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("删除缓存失败: %w", err)
	}
	return nil
}

func (c *BookCache) key(id uint) string {
	return fmt.Sprintf("%s:book:detail:%d", c.prefix, id)
}
