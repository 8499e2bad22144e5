package rerank

import (
	"context"

	"github.com/rushteam/stayrec/core"
	"github.com/rushteam/stayrec/pipeline"
)

// Diversity 是可选的多样性重排：限制同一酒店类型的连续霸榜。
// 每个类型最多保留 MaxPerType 个，其余顺延剔除；保持通过者的相对顺序。
// MaxPerType <= 0 时不生效。
type Diversity struct {
	MaxPerType int
}

func (n *Diversity) Name() string        { return "rerank.diversity" }
func (n *Diversity) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.MaxPerType <= 0 || len(items) == 0 {
		return items, nil
	}

	counts := make(map[string]int)
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		typ := ""
		if it.Hotel != nil {
			typ = it.Hotel.Type
		}
		if typ == "" {
			out = append(out, it)
			continue
		}
		if counts[typ] >= n.MaxPerType {
			continue
		}
		counts[typ]++
		out = append(out, it)
	}
	return out, nil
}
