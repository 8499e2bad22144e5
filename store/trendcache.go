package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rushteam/stayrec/core"
	"github.com/rushteam/stayrec/popularity"
)

// TrendingCacheKeyPrefix 趋势榜缓存键前缀，按聚合条数区分。
const TrendingCacheKeyPrefix = "stayrec:trending"

// DefaultTrendingTTL 趋势榜缓存的逻辑有效期。
// 榜单按 7 天窗口聚合，几分钟的陈旧完全可接受。
const DefaultTrendingTTL = 5 * time.Minute

// TrendingCache 把趋势榜聚合结果缓存在 KV 存储里。
// TTL 写在负载里做逻辑过期，内存存储等无原生过期的后端也能用。
type TrendingCache struct {
	Store core.Store
	TTL   time.Duration

	// Now 可注入时钟，测试用。nil 时取 time.Now。
	Now func() time.Time
}

// NewTrendingCache 构造趋势榜缓存，ttl<=0 取缺省。
func NewTrendingCache(s core.Store, ttl time.Duration) *TrendingCache {
	if ttl <= 0 {
		ttl = DefaultTrendingTTL
	}
	return &TrendingCache{Store: s, TTL: ttl}
}

type trendingSnapshot struct {
	CachedAt time.Time                  `json:"cachedAt"`
	Entries  []popularity.TrendingEntry `json:"entries"`
}

func (c *TrendingCache) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *TrendingCache) key(n int) string {
	return fmt.Sprintf("%s:%d", TrendingCacheKeyPrefix, n)
}

// Get 返回缓存的前 n 条榜单。未命中、过期或负载损坏都按未命中处理。
func (c *TrendingCache) Get(ctx context.Context, n int) ([]popularity.TrendingEntry, bool) {
	data, err := c.Store.Get(ctx, c.key(n))
	if err != nil {
		return nil, false
	}
	var snap trendingSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false
	}
	if c.now().Sub(snap.CachedAt) > c.TTL {
		return nil, false
	}
	return snap.Entries, true
}

// Put 写入前 n 条榜单。
func (c *TrendingCache) Put(ctx context.Context, n int, entries []popularity.TrendingEntry) error {
	data, err := json.Marshal(trendingSnapshot{CachedAt: c.now(), Entries: entries})
	if err != nil {
		return err
	}
	return c.Store.Set(ctx, c.key(n), data)
}
