package core

import "github.com/rushteam/stayrec/pkg/utils"

// RecommendContext 承载一次推荐请求的用户/约束信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID UserID

	// Limit 是请求方期望的结果数量；召回阶段按 2x 超采，过滤后再截断
	Limit int

	// Criteria 是硬约束过滤条件，nil 表示不过滤
	Criteria *Criteria

	// Labels 是请求级标签（冷启动、降级原因等），可驱动 Pipeline 行为
	Labels map[string]utils.Label

	// Params 请求级上下文参数（场景、设备等），按需透传
	Params map[string]any
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}

// OverFetch 返回召回阶段的超采数量（2x 请求量，留出融合与过滤的余量）。
func (rctx *RecommendContext) OverFetch() int {
	if rctx.Limit <= 0 {
		return 20
	}
	return rctx.Limit * 2
}
