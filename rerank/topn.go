// Package rerank 实现排序后的结果修整：Top-N 截断与可选的同类型分散。
package rerank

import (
	"context"

	"github.com/rushteam/stayrec/core"
	"github.com/rushteam/stayrec/pipeline"
)

// TopNNode 在过滤之后截取前 N 个候选，作为 Pipeline 的最后一节。
// N <= 0 或候选不足 N 个时不截断。
type TopNNode struct {
	N int
}

func (n *TopNNode) Name() string        { return "rerank.topn" }
func (n *TopNNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
