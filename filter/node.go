package filter

import (
	"context"

	"github.com/rushteam/stayrec/core"
	"github.com/rushteam/stayrec/pipeline"
	"github.com/rushteam/stayrec/pkg/utils"
)

// FilterNode 是过滤 Node，组合多个过滤器依次检查。
// 任何一个过滤器返回 true 该候选即被剔除。只做剔除，从不重排：
// 幸存者保持进入时的相对顺序。
type FilterNode struct {
	Filters []Filter
}

// FromCriteria 根据请求约束组装过滤链。无约束时返回空 Node（全量放行）。
// CEL 规则在这里编译，表达式非法直接报错，不进请求路径。
func FromCriteria(c *core.Criteria) (*FilterNode, error) {
	n := &FilterNode{}
	if c.Empty() {
		return n, nil
	}
	if c.City != "" {
		n.Filters = append(n.Filters, &LocationFilter{City: c.City})
	}
	if c.PriceRange != nil {
		n.Filters = append(n.Filters, &PriceFilter{Range: *c.PriceRange})
	}
	if c.MinRating != nil {
		n.Filters = append(n.Filters, &RatingFilter{Min: *c.MinRating})
	}
	if c.Type != "" {
		n.Filters = append(n.Filters, &TypeFilter{Type: c.Type})
	}
	if len(c.Amenities) > 0 {
		n.Filters = append(n.Filters, &AmenityFilter{Amenities: c.Amenities})
	}
	if c.Rule != "" {
		rf, err := NewRuleFilter(c.Rule)
		if err != nil {
			return nil, err
		}
		n.Filters = append(n.Filters, rf)
	}
	return n, nil
}

func (n *FilterNode) Name() string        { return "filter.node" }
func (n *FilterNode) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}

		filtered := false
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				return nil, err
			}
			if ok {
				filtered = true
				item.PutLabel("filtered", utils.Label{Value: "true", Source: f.Name()})
				break
			}
		}
		if filtered {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}
