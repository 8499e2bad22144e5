package core

import (
	"context"
	"time"
)

// DocStore 是文档库的领域接口：酒店、交互事件、偏好、订单。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 引擎视角全部只读；训练读全量快照，请求路径读窗口切片
//   - 实现方必须把"不存在"报告为 ErrStoreNotFound，让调用方区分
//     冷启动（合法状态）与存储故障（降级）
type DocStore interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// GetHotel 读取单个酒店快照
	GetHotel(ctx context.Context, id HotelID) (*Hotel, error)

	// ListHotels 读取全量酒店快照（训练用）
	ListHotels(ctx context.Context) ([]*Hotel, error)

	// ListInteractions 读取全量交互事件（训练用，只含 view/click/booking）
	ListInteractions(ctx context.Context) ([]*Interaction, error)

	// InteractionsSince 读取某时刻之后的全部交互事件（热度/趋势聚合用）
	InteractionsSince(ctx context.Context, since time.Time) ([]*Interaction, error)

	// UserInteractions 读取某用户在 since 之后的交互，按时间倒序，最多 limit 条。
	// since 为零值表示不限时间，limit<=0 表示不限条数。
	UserInteractions(ctx context.Context, userID UserID, since time.Time, limit int) ([]*Interaction, error)

	// CountHotelInteractions 统计某酒店在 since 之后的交互数。since 为零值表示全部历史。
	CountHotelInteractions(ctx context.Context, hotelID HotelID, since time.Time) (int64, error)

	// GetPreference 读取用户偏好；不存在时返回 ErrStoreNotFound（冷启动的合法状态）
	GetPreference(ctx context.Context, userID UserID) (*Preference, error)

	// UserBookings 读取某用户最近的订单，按创建时间倒序，最多 limit 条
	UserBookings(ctx context.Context, userID UserID, limit int) ([]*Booking, error)

	// Close 关闭连接/释放资源
	Close() error
}

// Store 是模型工件持久化的 KV 接口。
// 拟合好的模型代（generation）在重训成功后以快照形式写入，进程重启时加载。
//
// 实现：
//   - store.MemoryStore（测试/开发）
//   - store.RedisStore（生产）
type Store interface {
	// Name 返回存储后端名称
	Name() string

	// Get 读取单个 key 的值
	Get(ctx context.Context, key string) ([]byte, error)

	// Set 写入单个 key-value
	Set(ctx context.Context, key string, value []byte) error

	// Delete 删除单个 key
	Delete(ctx context.Context, key string) error

	// Close 关闭连接/释放资源
	Close() error
}

// Store 错误定义（使用统一的 DomainError）
var (
	// ErrStoreNotFound 表示 key/记录不存在
	ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: not found")

	// ErrStoreUnavailable 表示存储不可用
	ErrStoreUnavailable = NewDomainError(ModuleStore, ErrorCodeUnavailable, "store: unavailable")
)

// IsStoreNotFound 检查错误是否为记录不存在。
func IsStoreNotFound(err error) bool {
	domainErr := GetDomainError(err)
	if domainErr != nil && domainErr.Module == ModuleStore {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}
