// Package corpus 把酒店记录转换为归一化的内容文档。
//
// 同一个函数既用于构建训练语料，也用于构建用户画像查询文本，
// 因此必须是纯函数：相同输入永远产出逐字节相同的输出。
package corpus

import (
	"strings"

	"github.com/rushteam/stayrec/core"
)

// 评分档位短语：四档完全划分，边界值取高档。
const (
	tierExcellent = "excellent luxury premium" // rating >= 4.5
	tierVeryGood  = "very good quality"        // rating >= 4.0
	tierGood      = "good standard"            // rating >= 3.5
	tierBudget    = "budget economy"           // 其余
)

// BuildDocument 按固定字段顺序拼接酒店的内容文档：
// name, type, city, desc, title, 各项 amenity, 各个周边景点的 name+category,
// 最后追加评分档位短语。空字段跳过，不产出空 token。
func BuildDocument(h *core.Hotel) string {
	if h == nil {
		return ""
	}

	parts := make([]string, 0, 8+len(h.Amenities)+2*len(h.NearbyAttractions))
	parts = appendNonEmpty(parts, h.Name)
	parts = appendNonEmpty(parts, h.Type)
	parts = appendNonEmpty(parts, h.City)
	parts = appendNonEmpty(parts, h.Desc)
	parts = appendNonEmpty(parts, h.Title)

	for _, a := range h.Amenities {
		parts = appendNonEmpty(parts, a)
	}

	for _, attr := range h.NearbyAttractions {
		parts = appendNonEmpty(parts, attr.Name)
		parts = appendNonEmpty(parts, attr.Category)
	}

	parts = append(parts, RatingTier(h.Rating))

	return strings.Join(parts, " ")
}

// RatingTier 返回评分对应的档位短语。对任意评分恰好命中一档。
func RatingTier(rating float64) string {
	switch {
	case rating >= 4.5:
		return tierExcellent
	case rating >= 4.0:
		return tierVeryGood
	case rating >= 3.5:
		return tierGood
	default:
		return tierBudget
	}
}

func appendNonEmpty(parts []string, s string) []string {
	if s == "" {
		return parts
	}
	return append(parts, s)
}
