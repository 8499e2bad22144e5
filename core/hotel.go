package core

// Hotel 是酒店的只读快照。所有字段由外部文档库拥有，引擎只读不写。
type Hotel struct {
	ID       HotelID
	Name     string
	Type     string // hotel / apartment / resort / villa / cabin
	City     string
	Address  string
	Title    string
	Desc     string
	Rating   float64 // 0-5
	Price    float64 // 最低房价
	Featured bool

	Amenities         []string
	NearbyAttractions []Attraction

	StarRating  int
	ReviewCount int
}

// Attraction 是酒店周边景点。
type Attraction struct {
	Name     string
	Distance string
	Category string
}

// HasAmenity 判断酒店是否提供某项设施。
func (h *Hotel) HasAmenity(amenity string) bool {
	for _, a := range h.Amenities {
		if a == amenity {
			return true
		}
	}
	return false
}
