package model

import (
	"math"
	"sort"
)

// NearestNeighbors 是暴力检索的最近邻索引（余弦距离）。
// 用户量级在万以内时一次稠密扫描足够快，无需近似索引。
type NearestNeighbors struct {
	Rows [][]float64
}

// Neighbor 是一个检索结果：行下标及到查询向量的距离。
type Neighbor struct {
	Index    int
	Distance float64
}

// Fit 记录索引行。行内容在拟合后不可变。
func (nn *NearestNeighbors) Fit(rows [][]float64) {
	nn.Rows = rows
}

// KNeighbors 返回距离查询向量最近的 k 行，按距离升序，平距按行序（稳定）。
// k 超过行数时返回全部行。
func (nn *NearestNeighbors) KNeighbors(query []float64, k int) []Neighbor {
	if len(nn.Rows) == 0 || len(query) == 0 {
		return nil
	}
	if k <= 0 || k > len(nn.Rows) {
		k = len(nn.Rows)
	}

	neighbors := make([]Neighbor, len(nn.Rows))
	for i, row := range nn.Rows {
		neighbors[i] = Neighbor{Index: i, Distance: cosineDistance(query, row)}
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Distance < neighbors[j].Distance
	})
	return neighbors[:k]
}

// cosineDistance = 1 - 余弦相似度。零向量与任何向量的距离记为 1（无信号）。
func cosineDistance(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
