package core

// Status 标记一次推荐的成色，让调用方区分"无信号"和"依赖故障"。
type Status string

const (
	// StatusOK 全部信号源正常
	StatusOK Status = "ok"

	// StatusDegraded 部分信号源失败或冷启动，已回退
	StatusDegraded Status = "degraded"

	// StatusInputError 请求缺少必要输入，未触发任何模型调用
	StatusInputError Status = "input_error"
)

// Result 是一次推荐操作的完整结果：排序列表 + 成色 + 降级原因。
// 请求级对象，随响应返回后丢弃。
type Result struct {
	Items  []*Item
	Status Status

	// Reason 在 Status != ok 时给出可读原因（cold_start / content_unavailable / ...）
	Reason string
}

// OKResult 构造正常结果。
func OKResult(items []*Item) *Result {
	return &Result{Items: items, Status: StatusOK}
}

// DegradedResult 构造降级结果。
func DegradedResult(items []*Item, reason string) *Result {
	return &Result{Items: items, Status: StatusDegraded, Reason: reason}
}

// InputErrorResult 构造输入错误结果。
func InputErrorResult(reason string) *Result {
	return &Result{Items: nil, Status: StatusInputError, Reason: reason}
}
