// Package rank 实现混合融合排序：内容相似 + 协同过滤 + 热度加成。
package rank

import (
	"context"
	"sort"

	"github.com/rushteam/stayrec/core"
	"github.com/rushteam/stayrec/pipeline"
	"github.com/rushteam/stayrec/pkg/utils"
	"github.com/rushteam/stayrec/popularity"
)

// 推荐理由标签，顺序固定：内容 → 协同 → 趋势
const (
	ReasonContent  = "content_similarity"
	ReasonCollab   = "collaborative_filtering"
	ReasonTrending = "trending"
)

// trendingThreshold 热度分超过该值的候选打 trending 理由
const trendingThreshold = 0.5

// DegradedLabel 标记排序阶段发生过降级：酒店快照读取失败的候选被跳过。
const DegradedLabel = "rank_degraded"

// Weights 是融合权重。各信号只在"有信号"时计入，缺失不等于 0 分。
type Weights struct {
	Content    float64 `yaml:"content"`
	Collab     float64 `yaml:"collab"`
	Popularity float64 `yaml:"popularity"`
}

// DefaultWeights 返回默认融合权重。
func DefaultWeights() Weights {
	return Weights{Content: 0.6, Collab: 0.4, Popularity: 0.1}
}

// Hybrid 是融合排序 Node：
//
//	score = content*0.6 + collab*0.4 + popularity*0.1
//
// content/collab 只在对应召回源返回了该候选时计入；popularity 对
// 所有候选实时计算并写入 Components。打完分后补全酒店快照（已下架
// 的候选剔除），按分数稳定降序排列，平分保持进入时的先后。
type Hybrid struct {
	Weights Weights
	Scorer  *popularity.Scorer
	Store   core.DocStore
}

func (n *Hybrid) Name() string        { return "rank.hybrid" }
func (n *Hybrid) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *Hybrid) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}

		if it.Hotel == nil {
			hotel, err := n.Store.GetHotel(ctx, it.ID)
			if core.IsStoreNotFound(err) {
				continue
			}
			if err != nil {
				// 存储抖动只牺牲单个候选，剩余候选带着降级标记继续
				rctx.PutLabel(DegradedLabel, utils.Label{Value: string(it.ID), Source: "rank"})
				continue
			}
			it.Hotel = hotel
		}

		var score float64
		if it.Components.HasContent {
			score += it.Components.Content * n.Weights.Content
			it.AddReason(ReasonContent)
		}
		if it.Components.HasCollab {
			score += it.Components.Collab * n.Weights.Collab
			it.AddReason(ReasonCollab)
		}

		// 热度是加成信号，取不到按 0 处理，不让存储抖动放大成整条链路失败
		pop, err := n.Scorer.Score(ctx, it.ID)
		if err != nil {
			pop = 0
		}
		it.Components.Popularity = pop
		score += pop * n.Weights.Popularity
		if pop > trendingThreshold {
			it.AddReason(ReasonTrending)
		}

		it.Score = score
		out = append(out, it)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out, nil
}
