package model

import "math"

// StandardScaler 对交互矩阵做逐列标准分归一化：x' = (x - mean) / std。
// 方差为零的列 std 记为 1，使该列归一化后恒为 0 而不是 NaN。
type StandardScaler struct {
	Mean []float64
	Std  []float64
}

// Fit 在矩阵上计算每列的均值与总体标准差。
func (s *StandardScaler) Fit(rows [][]float64) {
	if len(rows) == 0 {
		s.Mean, s.Std = nil, nil
		return
	}

	cols := len(rows[0])
	s.Mean = make([]float64, cols)
	s.Std = make([]float64, cols)
	n := float64(len(rows))

	for _, row := range rows {
		for j, v := range row {
			s.Mean[j] += v
		}
	}
	for j := range s.Mean {
		s.Mean[j] /= n
	}

	for _, row := range rows {
		for j, v := range row {
			d := v - s.Mean[j]
			s.Std[j] += d * d
		}
	}
	for j := range s.Std {
		s.Std[j] = math.Sqrt(s.Std[j] / n)
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}
}

// Transform 归一化单行。行宽与拟合列数不一致时返回 nil。
func (s *StandardScaler) Transform(row []float64) []float64 {
	if len(row) != len(s.Mean) {
		return nil
	}
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.Mean[j]) / s.Std[j]
	}
	return out
}

// TransformAll 归一化整个矩阵。
func (s *StandardScaler) TransformAll(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = s.Transform(row)
	}
	return out
}
