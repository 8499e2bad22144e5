package profile

import (
	"context"
	"sort"
	"time"

	"github.com/rushteam/stayrec/core"
)

// 画像分析的榜单与样本上限
const (
	topCities   = 5
	topTypes    = 3
	maxBookings = 10 // 订单统计只看最近 10 单
)

// CountedValue 是榜单的一项：取值 + 出现次数。
type CountedValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Analysis 是用户画像分析结果。
type Analysis struct {
	UserID            core.UserID                  `json:"userId"`
	Preference        *core.Preference             `json:"preference,omitempty"`
	TotalInteractions int                          `json:"totalInteractions"`
	KindCounts        map[core.InteractionKind]int `json:"kindCounts"`
	TopCities         []CountedValue               `json:"topCities"`
	TopTypes          []CountedValue               `json:"topTypes"`
	TotalBookings     int                          `json:"totalBookings"`
	RecentBookings    int                          `json:"recentBookings"`
	TotalSpent        float64                      `json:"totalSpent"`
	AvgRatingGiven    float64                      `json:"avgRatingGiven"`
	GeneratedAt       time.Time                    `json:"generatedAt"`
}

// Analyze 汇总用户的偏好、近 90 天行为分布与订单统计。
// AvgRatingGiven 只对打过分的订单求平均，无打分订单时为 0。
func (b *Builder) Analyze(ctx context.Context, userID core.UserID) (*Analysis, error) {
	now := b.now()
	a := &Analysis{
		UserID:      userID,
		KindCounts:  make(map[core.InteractionKind]int),
		GeneratedAt: now,
	}

	pref, err := b.Store.GetPreference(ctx, userID)
	if err != nil && !core.IsStoreNotFound(err) {
		return nil, err
	}
	a.Preference = pref

	inters, err := b.Store.UserInteractions(ctx, userID, now.Add(-HistoryWindow), 0)
	if err != nil {
		return nil, err
	}
	a.TotalInteractions = len(inters)

	var cityOrder, typeOrder []string
	cities := make(map[string]int)
	types := make(map[string]int)
	for _, inter := range inters {
		a.KindCounts[inter.Kind]++

		hotel, err := b.Store.GetHotel(ctx, inter.HotelID)
		if core.IsStoreNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if hotel.City != "" {
			if _, ok := cities[hotel.City]; !ok {
				cityOrder = append(cityOrder, hotel.City)
			}
			cities[hotel.City]++
		}
		if hotel.Type != "" {
			if _, ok := types[hotel.Type]; !ok {
				typeOrder = append(typeOrder, hotel.Type)
			}
			types[hotel.Type]++
		}
	}
	a.TopCities = topCounted(cityOrder, cities, topCities)
	a.TopTypes = topCounted(typeOrder, types, topTypes)

	bookings, err := b.Store.UserBookings(ctx, userID, maxBookings)
	if err != nil {
		return nil, err
	}
	a.TotalBookings = len(bookings)
	var ratingSum float64
	var rated int
	recentSince := now.Add(-HistoryWindow)
	for _, bk := range bookings {
		a.TotalSpent += bk.TotalAmount
		if bk.CreatedAt.After(recentSince) {
			a.RecentBookings++
		}
		if bk.Rated() {
			ratingSum += bk.Rating.Overall
			rated++
		}
	}
	if rated > 0 {
		a.AvgRatingGiven = ratingSum / float64(rated)
	}

	return a, nil
}

// topCounted 按次数降序取前 n，平分按首次出现顺序。
func topCounted(order []string, counts map[string]int, n int) []CountedValue {
	out := make([]CountedValue, 0, len(order))
	for _, v := range order {
		out = append(out, CountedValue{Value: v, Count: counts[v]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
