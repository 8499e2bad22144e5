package core

import "time"

// InteractionKind 是用户行为类型。只有 view/click/booking 参与模型训练。
type InteractionKind string

const (
	InteractionView    InteractionKind = "view"
	InteractionClick   InteractionKind = "click"
	InteractionBooking InteractionKind = "booking"
)

// Weight 返回该行为在交互矩阵中的固定权重。
// view=1.0 / click=2.0 / booking=5.0，未知类型视为无信号。
func (k InteractionKind) Weight() float64 {
	switch k {
	case InteractionView:
		return 1.0
	case InteractionClick:
		return 2.0
	case InteractionBooking:
		return 5.0
	default:
		return 0
	}
}

// Valid 判断是否为参与训练的行为类型。
func (k InteractionKind) Valid() bool {
	return k == InteractionView || k == InteractionClick || k == InteractionBooking
}

// Interaction 是一条用户-酒店交互事件。追加式数据：引擎只聚合，从不修改或删除。
type Interaction struct {
	UserID    UserID
	HotelID   HotelID
	Kind      InteractionKind
	CreatedAt time.Time
	Duration  int // 浏览时长（秒），可选
}
