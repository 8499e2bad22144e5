// Package stayrec 是一个混合酒店推荐引擎。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Rank → Filter → ReRank）
// - 三路信号: 内容相似（TF-IDF）、协同过滤（KNN）、热度，按权重融合
// - 模型代管理: 重训在后台拟合新代，成功后原子换代，请求路径永远读到完整一代
package stayrec

import "github.com/rushteam/stayrec/pipeline"

// 轻量 facade：便于直接 import "stayrec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall = pipeline.KindRecall
	KindRank   = pipeline.KindRank
	KindFilter = pipeline.KindFilter
	KindReRank = pipeline.KindReRank
)
