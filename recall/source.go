// Package recall 实现三路召回源与并发 fan-out 合并：
// 内容相似（TF-IDF）、协同过滤（KNN）、热门兜底。
package recall

import (
	"context"

	"github.com/rushteam/stayrec/core"
)

// Source 表示一个可复用的召回源（内容/CF/热门/...）。
// 你可以把它理解为"可并发 fan-out 的策略单元"。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
