package core

// Preference 是用户的偏好画像。允许缺失：没有偏好记录是合法的冷启动状态。
type Preference struct {
	UserID UserID

	// 加权偏好列表，weight/importance 为整数权重（词频空间的软加权）
	Cities    []WeightedCity
	Types     []WeightedType
	Amenities []WeightedAmenity

	// PriceRange 是偏好价位（分析用，不参与内容画像文本）
	PriceRange *PriceRange

	// TravelStyle business / leisure / family / romantic / adventure / budget / luxury
	TravelStyle string
}

type WeightedCity struct {
	City   string
	Weight int
}

type WeightedType struct {
	Type   string
	Weight int
}

type WeightedAmenity struct {
	Amenity string
	Weight  int
}

// PriceRange 是闭区间价格约束，任一边界可缺省。
type PriceRange struct {
	Min *float64
	Max *float64
}
