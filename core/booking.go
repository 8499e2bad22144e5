package core

import "time"

// Booking 是一条订单记录（分析用，只读快照）。
type Booking struct {
	UserID      UserID
	HotelID     HotelID
	CheckIn     time.Time
	CheckOut    time.Time
	TotalAmount float64
	Status      string // pending / confirmed / cancelled / completed / no-show
	CreatedAt   time.Time

	// Rating 为入住后评分，Overall==0 表示未评分
	Rating BookingRating
}

// BookingRating 是订单的多维评分，1-5，0 表示未评。
type BookingRating struct {
	Overall     float64
	Cleanliness float64
	Service     float64
	Location    float64
}

// Rated 判断该订单是否已评分。
func (b *Booking) Rated() bool {
	return b.Rating.Overall > 0
}
