package core

// Criteria 是推荐结果的硬约束过滤条件。
// 字段为零值时表示"不约束"（no-op），避免以 map 形式探测任意 key。
// 过滤只做剔除，从不重排。
type Criteria struct {
	// City 精确匹配（大小写不敏感）
	City string

	// PriceRange 闭区间价格约束
	PriceRange *PriceRange

	// MinRating 最低评分阈值
	MinRating *float64

	// Type 酒店类型精确匹配（大小写不敏感）
	Type string

	// Amenities 要求酒店包含全部列出的设施（超集匹配）
	Amenities []string

	// Rule 是可选的 CEL 业务规则表达式，如
	// `hotel.price < 200.0 && hotel.rating >= 4.0`
	Rule string
}

// Empty 判断是否没有任何约束。
func (c *Criteria) Empty() bool {
	if c == nil {
		return true
	}
	return c.City == "" && c.PriceRange == nil && c.MinRating == nil &&
		c.Type == "" && len(c.Amenities) == 0 && c.Rule == ""
}
