package recall

import (
	"context"

	"github.com/rushteam/stayrec/core"
	"github.com/rushteam/stayrec/popularity"
)

// PopularRecall 是热门兜底召回源：按 rating*0.7 + 历史交互量*0.001 排序。
// 不依赖拟合模型，冷启动用户（无画像也不在交互矩阵）的唯一来源。
type PopularRecall struct {
	Scorer *popularity.Scorer
}

func (r *PopularRecall) Name() string { return "recall.popular" }

func (r *PopularRecall) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	return r.Scorer.Popular(ctx, rctx.OverFetch())
}
