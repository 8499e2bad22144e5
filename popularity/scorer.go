// Package popularity 实现热度信号：单酒店热度分、7 天趋势聚合、兜底热门列表。
// 全部直接查询文档库的交互历史，不依赖拟合模型，因此天然支持冷启动回退。
package popularity

import (
	"context"
	"sort"
	"time"

	"github.com/rushteam/stayrec/core"
)

// 时间窗口常量
const (
	// RecentWindow 热度分的"近期"窗口
	RecentWindow = 30 * 24 * time.Hour

	// TrendingWindow 趋势聚合窗口
	TrendingWindow = 7 * 24 * time.Hour
)

// Scorer 从交互历史计算热度。Now 可注入，测试用固定时钟。
type Scorer struct {
	Store core.DocStore
	Now   func() time.Time
}

func NewScorer(store core.DocStore) *Scorer {
	return &Scorer{Store: store, Now: time.Now}
}

func (s *Scorer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Score 计算单酒店的热度分，有界 [0,1]：
//
//	min(1.0, recent/100 + recent/max(total,1))
//
// recent = 近 30 天交互数，total = 全部历史交互数。
// 无任何交互时返回 0。同时奖励绝对近期量与近期占比。
func (s *Scorer) Score(ctx context.Context, hotelID core.HotelID) (float64, error) {
	total, err := s.Store.CountHotelInteractions(ctx, hotelID, time.Time{})
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	recent, err := s.Store.CountHotelInteractions(ctx, hotelID, s.now().Add(-RecentWindow))
	if err != nil {
		return 0, err
	}

	score := float64(recent)/100 + float64(recent)/float64(total)
	if score > 1 {
		score = 1
	}
	return score, nil
}

// TrendingEntry 是趋势聚合的一条结果。
type TrendingEntry struct {
	HotelID      core.HotelID
	Score        float64
	Interactions int
	UniqueUsers  int
}

// Trending 聚合近 7 天交互，按趋势分降序：
//
//	score = 0.6*交互总数 + 0.4*去重用户数
//
// 平分按酒店首次出现顺序稳定排列。limit<=0 返回全部。
func (s *Scorer) Trending(ctx context.Context, limit int) ([]TrendingEntry, error) {
	interactions, err := s.Store.InteractionsSince(ctx, s.now().Add(-TrendingWindow))
	if err != nil {
		return nil, err
	}

	var order []core.HotelID
	counts := make(map[core.HotelID]int)
	users := make(map[core.HotelID]map[core.UserID]bool)

	for _, inter := range interactions {
		if _, ok := counts[inter.HotelID]; !ok {
			order = append(order, inter.HotelID)
			users[inter.HotelID] = make(map[core.UserID]bool)
		}
		counts[inter.HotelID]++
		users[inter.HotelID][inter.UserID] = true
	}

	entries := make([]TrendingEntry, 0, len(order))
	for _, id := range order {
		c := counts[id]
		u := len(users[id])
		entries = append(entries, TrendingEntry{
			HotelID:      id,
			Score:        0.6*float64(c) + 0.4*float64(u),
			Interactions: c,
			UniqueUsers:  u,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Popular 返回兜底热门列表：rating*0.7 + 历史交互数*0.001，降序取 limit。
// 冷启动（无画像、无矩阵行）时的推荐来源。
func (s *Scorer) Popular(ctx context.Context, limit int) ([]*core.Item, error) {
	hotels, err := s.Store.ListHotels(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*core.Item, 0, len(hotels))
	for _, h := range hotels {
		count, err := s.Store.CountHotelInteractions(ctx, h.ID, time.Time{})
		if err != nil {
			return nil, err
		}
		it := core.NewItem(h.ID)
		it.Hotel = h
		it.Score = h.Rating*0.7 + float64(count)*0.001
		it.AddReason("popular")
		items = append(items, it)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
