package core

// HotelID 是酒店的不透明标识。
// 使用独立类型而不是裸 string，避免 user/hotel ID 在模型、存储、请求边界之间互相串用。
type HotelID string

// UserID 是用户的不透明标识。
type UserID string

func (id HotelID) String() string { return string(id) }
func (id UserID) String() string  { return string(id) }

// HotelIDStrings 转换为 []string（存储层/日志常用）。
func HotelIDStrings(ids []HotelID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
