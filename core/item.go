package core

import "github.com/rushteam/stayrec/pkg/utils"

// Item 是推荐链路中的统一承载结构：候选酒店、分数、分项得分、理由、标签。
// Components 用于融合与解释；Score 用于排序决策；Labels 用于观测与策略驱动。
// Item 是请求级对象，随响应组装结束而丢弃，从不落库。
type Item struct {
	ID    HotelID
	Score float64

	// Hotel 是候选对应的酒店快照，由召回源或引擎补全
	Hotel *Hotel

	// Components 是各信号源的原始得分（融合前）
	Components ComponentScores

	// Reasons 是有序的推荐理由标签（content_similarity / collaborative_filtering / trending / popular）
	Reasons []string

	Meta   map[string]any
	Labels map[string]utils.Label
}

// ComponentScores 记录各信号源对该候选的贡献。
// Has* 区分"得分为 0"与"该信号源没有返回这个候选"——缺失是"无信号"而不是"负信号"。
type ComponentScores struct {
	Content    float64
	HasContent bool

	Collab    float64
	HasCollab bool

	Popularity float64
}

func NewItem(id HotelID) *Item {
	return &Item{
		ID:     id,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// AddReason 追加一个推荐理由，保持顺序并去重。
func (it *Item) AddReason(reason string) {
	for _, r := range it.Reasons {
		if r == reason {
			return
		}
	}
	it.Reasons = append(it.Reasons, reason)
}
