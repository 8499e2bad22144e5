package recall

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/stayrec/core"
	"github.com/rushteam/stayrec/pipeline"
	"github.com/rushteam/stayrec/pkg/utils"
)

// DegradedLabel 是请求级标签 key：值为召回失败的源名（多个时 Merge 累积）。
// 引擎据此把响应状态降为 degraded。
const DegradedLabel = "recall_degraded"

// Fanout 是一个 Recall Node：并发执行多个召回源，并合并结果。
//
// 合并是确定性的：各源结果先落入按源顺序排列的槽位，全部完成后再按
// 源顺序逐槽合并。并发只加速执行，不影响输出顺序。
// 同一酒店被多个源召回时合并到首次出现的 Item 上：分项得分按源累积，
// 理由与标签合并。
// 单个源失败不中断其他源：跳过该源并打 DegradedLabel，让请求降级而不是失败。
type Fanout struct {
	Sources []Source
	Timeout time.Duration // 每个召回源的超时时间，0 表示不限制
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	slots := make([][]*core.Item, len(n.Sources))
	failed := make([]bool, len(n.Sources))
	eg, egCtx := errgroup.WithContext(ctx)

	for i, src := range n.Sources {
		i, s := i, src
		eg.Go(func() error {
			recallCtx := egCtx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(egCtx, n.Timeout)
				defer cancel()
			}

			items, err := s.Recall(recallCtx, rctx)
			if err != nil {
				failed[i] = true
				return nil
			}
			for _, it := range items {
				it.PutLabel("recall_source", utils.Label{Value: s.Name(), Source: "recall"})
			}
			slots[i] = items
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for i, f := range failed {
		if f {
			rctx.PutLabel(DegradedLabel, utils.Label{Value: n.Sources[i].Name(), Source: "recall"})
		}
	}

	return mergeSlots(slots), nil
}

// mergeSlots 按源顺序合并：首次出现的 Item 保留位置，重复出现时
// 将后来的分项得分/理由/标签并入首个。
func mergeSlots(slots [][]*core.Item) []*core.Item {
	seen := make(map[core.HotelID]*core.Item)
	var out []*core.Item
	for _, items := range slots {
		for _, it := range items {
			if it == nil {
				continue
			}
			old, ok := seen[it.ID]
			if !ok {
				seen[it.ID] = it
				out = append(out, it)
				continue
			}
			mergeInto(old, it)
		}
	}
	return out
}

func mergeInto(dst, src *core.Item) {
	if src.Components.HasContent {
		dst.Components.Content = src.Components.Content
		dst.Components.HasContent = true
	}
	if src.Components.HasCollab {
		dst.Components.Collab = src.Components.Collab
		dst.Components.HasCollab = true
	}
	if src.Components.Popularity > dst.Components.Popularity {
		dst.Components.Popularity = src.Components.Popularity
	}
	if dst.Hotel == nil {
		dst.Hotel = src.Hotel
	}
	for _, r := range src.Reasons {
		dst.AddReason(r)
	}
	for k, v := range src.Labels {
		dst.PutLabel(k, v)
	}
}
