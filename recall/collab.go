package recall

import (
	"context"
	"errors"

	"github.com/rushteam/stayrec/core"
	"github.com/rushteam/stayrec/model"
)

// CollabRecall 是协同过滤召回源：在用户-酒店交互矩阵里找相似用户，
// 把他们交互过而当前用户没有交互过的酒店作为候选。
type CollabRecall struct {
	Model func() *model.CollabModel
}

func (r *CollabRecall) Name() string { return "recall.collab" }

// Recall 返回相似用户偏好的酒店。
// 用户不在交互矩阵里时返回空（冷启动的合法状态，不是错误）。
// 模型未拟合时返回 ErrNotFitted，由 fan-out 降级处理。
func (r *CollabRecall) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	m := r.Model()
	if m == nil || m.Len() == 0 {
		return nil, model.ErrNotFitted
	}

	scored, err := m.Recommend(rctx.UserID, rctx.OverFetch())
	if errors.Is(err, model.ErrUnknownUser) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	items := make([]*core.Item, 0, len(scored))
	for _, s := range scored {
		it := core.NewItem(s.HotelID)
		it.Components.Collab = s.Score
		it.Components.HasCollab = true
		items = append(items, it)
	}
	return items, nil
}
