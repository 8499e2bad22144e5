package model

import (
	"sort"
	"time"

	"github.com/rushteam/stayrec/core"
	"github.com/rushteam/stayrec/corpus"
)

// ContentModel 是一代拟合好的内容模型：向量化器 + 特征矩阵 + 酒店 ID 列表。
//
// 绑定不变式：Rows 与 HotelIDs 等长且顺序一致（行 ↔ ID 双射），
// 在下一次重训整体替换之前不可变。三者必须作为同一代产物一起换入换出，
// 混用不同代的矩阵与 ID 列表是未定义行为。
type ContentModel struct {
	Vectorizer *TFIDFVectorizer
	Rows       []SparseVector
	HotelIDs   []core.HotelID
	FittedAt   time.Time

	rowIndex map[core.HotelID]int
}

// Scored 是一条带分数的候选。
type Scored struct {
	HotelID core.HotelID
	Score   float64
}

// ErrNotFitted 表示模型尚未拟合。
var ErrNotFitted = core.NewDomainError(core.ModuleModel, core.ErrorCodeNotFitted, "model: not fitted")

// FitContent 在全量酒店快照上拟合内容模型。
func FitContent(hotels []*core.Hotel, maxFeatures int) *ContentModel {
	docs := make([]string, 0, len(hotels))
	ids := make([]core.HotelID, 0, len(hotels))
	for _, h := range hotels {
		docs = append(docs, corpus.BuildDocument(h))
		ids = append(ids, h.ID)
	}

	vec := NewTFIDFVectorizer(maxFeatures)
	vec.Fit(docs)

	rows := make([]SparseVector, len(docs))
	for i, doc := range docs {
		rows[i] = vec.Transform(doc)
	}

	m := &ContentModel{
		Vectorizer: vec,
		Rows:       rows,
		HotelIDs:   ids,
		FittedAt:   time.Now().UTC(),
	}
	m.BuildIndex()
	return m
}

// BuildIndex 重建 ID → 行下标映射（从持久化快照加载后需调用一次）。
func (m *ContentModel) BuildIndex() {
	m.rowIndex = make(map[core.HotelID]int, len(m.HotelIDs))
	for i, id := range m.HotelIDs {
		m.rowIndex[id] = i
	}
}

// Len 返回矩阵行数（= 拟合时的酒店数）。
func (m *ContentModel) Len() int {
	return len(m.HotelIDs)
}

// Query 把查询文本投影到拟合时的向量空间，返回全部酒店按余弦相似度降序。
// 空文本或词表外文本产出空向量，返回 nil 表示"无信号"——调用方应回退热度。
// 平分按原始行序稳定排列。
func (m *ContentModel) Query(text string, k int) []Scored {
	if m == nil || len(m.Rows) == 0 {
		return nil
	}
	qv := m.Vectorizer.Transform(text)
	if len(qv) == 0 {
		return nil
	}
	return m.rank(qv, -1, k)
}

// SimilarTo 返回与指定酒店内容最相似的 k 家酒店，排除其自身。
// 酒店不在当前代中时返回 nil（空结果，不是错误）。
func (m *ContentModel) SimilarTo(id core.HotelID, k int) []Scored {
	if m == nil || len(m.Rows) == 0 {
		return nil
	}
	idx, ok := m.rowIndex[id]
	if !ok {
		return nil
	}
	return m.rank(m.Rows[idx], idx, k)
}

// rank 对全部行打分并取 Top-K。exclude >= 0 时跳过该行（自相似排除）。
func (m *ContentModel) rank(query SparseVector, exclude, k int) []Scored {
	scored := make([]Scored, 0, len(m.Rows))
	for i, row := range m.Rows {
		if i == exclude {
			continue
		}
		scored = append(scored, Scored{HotelID: m.HotelIDs[i], Score: query.Dot(row)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > 0 && len(scored) > k {
		scored = scored[:k]
	}
	return scored
}
