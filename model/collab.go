package model

import (
	"sort"
	"time"

	"github.com/rushteam/stayrec/core"
)

// CollabModel 是一代拟合好的协同过滤模型：
// 用户×酒店交互矩阵 + 逐列归一化参数 + 用户行上的最近邻索引。
//
// 矩阵语义：行 = 有过交互的用户，列 = 被交互过的酒店，
// 值 = 按行为权重（view=1/click=2/booking=5）累加的分数。
// 缺失值仅在归一化时按 0 处理，"用户是否有过信号"一律查 Raw。
// 同代的 Raw/Scaler/index 一起换入换出，从不单独替换。
type CollabModel struct {
	Users    []core.UserID
	Hotels   []core.HotelID
	Raw      [][]float64
	Scaler   *StandardScaler
	FittedAt time.Time

	scaled    [][]float64
	index     *NearestNeighbors
	userIndex map[core.UserID]int
}

// ErrUnknownUser 表示用户不在交互矩阵中（冷启动，调用方回退热度）。
var ErrUnknownUser = core.NewDomainError(core.ModuleModel, core.ErrorCodeNotFound, "model: user not in interaction matrix")

// FitCollab 把交互事件聚合为用户×酒店矩阵并拟合最近邻索引。
// 没有任何有效交互时返回空模型（Recommend 对所有用户返回 ErrUnknownUser）。
func FitCollab(interactions []*core.Interaction) *CollabModel {
	// 聚合 (user, hotel) -> 累计权重，保持首次出现顺序以保证行列确定性
	type cell struct{ user, hotel int }
	var users []core.UserID
	var hotels []core.HotelID
	userIdx := make(map[core.UserID]int)
	hotelIdx := make(map[core.HotelID]int)
	scores := make(map[cell]float64)

	for _, inter := range interactions {
		if inter == nil || !inter.Kind.Valid() {
			continue
		}
		ui, ok := userIdx[inter.UserID]
		if !ok {
			ui = len(users)
			userIdx[inter.UserID] = ui
			users = append(users, inter.UserID)
		}
		hi, ok := hotelIdx[inter.HotelID]
		if !ok {
			hi = len(hotels)
			hotelIdx[inter.HotelID] = hi
			hotels = append(hotels, inter.HotelID)
		}
		scores[cell{ui, hi}] += inter.Kind.Weight()
	}

	m := &CollabModel{
		Users:    users,
		Hotels:   hotels,
		FittedAt: time.Now().UTC(),
	}

	m.Raw = make([][]float64, len(users))
	for i := range m.Raw {
		m.Raw[i] = make([]float64, len(hotels))
	}
	for c, score := range scores {
		m.Raw[c.user][c.hotel] = score
	}

	m.Scaler = &StandardScaler{}
	m.Scaler.Fit(m.Raw)
	m.BuildIndex()
	return m
}

// BuildIndex 重建归一化矩阵、最近邻索引与用户映射（从持久化快照加载后需调用一次）。
func (m *CollabModel) BuildIndex() {
	m.userIndex = make(map[core.UserID]int, len(m.Users))
	for i, u := range m.Users {
		m.userIndex[u] = i
	}
	m.scaled = m.Scaler.TransformAll(m.Raw)
	m.index = &NearestNeighbors{}
	m.index.Fit(m.scaled)
}

// Len 返回矩阵行数（有交互的用户数）。
func (m *CollabModel) Len() int {
	return len(m.Users)
}

// HasUser 判断用户是否在当前代矩阵中。
func (m *CollabModel) HasUser(id core.UserID) bool {
	if m == nil {
		return false
	}
	_, ok := m.userIndex[id]
	return ok
}

// Recommend 为矩阵内用户计算协同过滤推荐：
//  1. 取 K = min(10, 行数) 个最近邻用户行（含自身，聚合时跳过）
//  2. 对目标用户未交互（Raw 为 0）的每一列，按邻居权重 1/(1+distance)
//     对邻居分数加权平均；仅当至少一个邻居给出正分时纳入
//  3. 按加权平均降序排列，平分按列序稳定
//
// 用户不在矩阵中时返回 ErrUnknownUser，调用方应回退热度路径。
func (m *CollabModel) Recommend(userID core.UserID, k int) ([]Scored, error) {
	if m == nil || len(m.Users) == 0 {
		return nil, ErrUnknownUser
	}
	ui, ok := m.userIndex[userID]
	if !ok {
		return nil, ErrUnknownUser
	}

	neighborK := 10
	if len(m.Users) < neighborK {
		neighborK = len(m.Users)
	}
	neighbors := m.index.KNeighbors(m.scaled[ui], neighborK)

	userRow := m.Raw[ui]
	scored := make([]Scored, 0)

	for hi, hotelID := range m.Hotels {
		if userRow[hi] > 0 {
			continue // 只推荐未交互的酒店
		}

		var weightedSum, totalWeight float64
		for _, nb := range neighbors {
			if nb.Index == ui {
				continue // 跳过自身
			}
			score := m.Raw[nb.Index][hi]
			if score <= 0 {
				continue
			}
			w := 1 / (1 + nb.Distance)
			weightedSum += w * score
			totalWeight += w
		}

		if totalWeight > 0 {
			scored = append(scored, Scored{HotelID: hotelID, Score: weightedSum / totalWeight})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if k > 0 && len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}
