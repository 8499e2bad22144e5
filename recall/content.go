package recall

import (
	"context"

	"github.com/rushteam/stayrec/core"
	"github.com/rushteam/stayrec/model"
	"github.com/rushteam/stayrec/profile"
)

// ContentRecall 是基于内容的召回源：把用户画像折叠成查询文本，
// 在 TF-IDF 向量空间里找相似酒店。
//
// Model 是取模型代的函数而不是模型本身：重训换代后下一个请求
// 自动拿到新代，召回源无需感知换代。
type ContentRecall struct {
	Model   func() *model.ContentModel
	Profile *profile.Builder
}

func (r *ContentRecall) Name() string { return "recall.content" }

// Recall 返回与用户画像最相似的酒店。
// 画像为空或全为词表外 token 时返回空（无信号，不是错误）。
// 模型未拟合时返回 ErrNotFitted，由 fan-out 降级处理。
func (r *ContentRecall) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	m := r.Model()
	if m == nil || m.Len() == 0 {
		return nil, model.ErrNotFitted
	}

	query, err := r.Profile.BuildQuery(ctx, rctx.UserID)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return nil, nil
	}

	scored := m.Query(query, rctx.OverFetch())
	items := make([]*core.Item, 0, len(scored))
	for _, s := range scored {
		it := core.NewItem(s.HotelID)
		it.Components.Content = s.Score
		it.Components.HasContent = true
		items = append(items, it)
	}
	return items, nil
}
