package filter

import (
	"context"
	"strings"

	"github.com/rushteam/stayrec/core"
)

// 各硬约束过滤器。候选缺少酒店快照时一律剔除：无法验证约束的
// 候选不能带着约束放行。

// LocationFilter 按城市精确匹配（大小写不敏感）。
type LocationFilter struct {
	City string
}

func (f *LocationFilter) Name() string { return "filter.location" }

func (f *LocationFilter) ShouldFilter(
	_ context.Context, _ *core.RecommendContext, item *core.Item,
) (bool, error) {
	if item.Hotel == nil {
		return true, nil
	}
	return !strings.EqualFold(item.Hotel.City, f.City), nil
}

// PriceFilter 按闭区间价格约束。Min/Max 为 nil 表示该端不限。
type PriceFilter struct {
	Range core.PriceRange
}

func (f *PriceFilter) Name() string { return "filter.price" }

func (f *PriceFilter) ShouldFilter(
	_ context.Context, _ *core.RecommendContext, item *core.Item,
) (bool, error) {
	if item.Hotel == nil {
		return true, nil
	}
	price := item.Hotel.Price
	if f.Range.Min != nil && price < *f.Range.Min {
		return true, nil
	}
	if f.Range.Max != nil && price > *f.Range.Max {
		return true, nil
	}
	return false, nil
}

// RatingFilter 按最低评分阈值过滤，阈值本身保留。
type RatingFilter struct {
	Min float64
}

func (f *RatingFilter) Name() string { return "filter.rating" }

func (f *RatingFilter) ShouldFilter(
	_ context.Context, _ *core.RecommendContext, item *core.Item,
) (bool, error) {
	if item.Hotel == nil {
		return true, nil
	}
	return item.Hotel.Rating < f.Min, nil
}

// TypeFilter 按酒店类型精确匹配（大小写不敏感）。
type TypeFilter struct {
	Type string
}

func (f *TypeFilter) Name() string { return "filter.type" }

func (f *TypeFilter) ShouldFilter(
	_ context.Context, _ *core.RecommendContext, item *core.Item,
) (bool, error) {
	if item.Hotel == nil {
		return true, nil
	}
	return !strings.EqualFold(item.Hotel.Type, f.Type), nil
}

// AmenityFilter 要求酒店包含全部列出的设施（超集匹配，大小写不敏感）。
type AmenityFilter struct {
	Amenities []string
}

func (f *AmenityFilter) Name() string { return "filter.amenity" }

func (f *AmenityFilter) ShouldFilter(
	_ context.Context, _ *core.RecommendContext, item *core.Item,
) (bool, error) {
	if item.Hotel == nil {
		return true, nil
	}
	for _, want := range f.Amenities {
		found := false
		for _, have := range item.Hotel.Amenities {
			if strings.EqualFold(have, want) {
				found = true
				break
			}
		}
		if !found {
			return true, nil
		}
	}
	return false, nil
}
