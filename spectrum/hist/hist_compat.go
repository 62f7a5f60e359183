package hist

import (
	"math"

	"spectra/infra/errorx"
	"spectra/infra/errorx/errCode"
)

// CheckCompatibility 统计两组测量不兼容的分箱数:
//
//	|v_a - v_b| > n * |σ_a - σ_b|
//
// 阈值用的是两个误差之差而不是平方和, 下游依赖这个口径, 保持不变.
// 返回值在 [0, Size()] 内; 分箱数不同返回 INCOMPATIBLE_SHAPE.
func (h *Histogram) CheckCompatibility(other *Histogram, n float64) (int, error) {
	if other == nil || len(other.values) != len(h.values) {
		got := 0
		if other != nil {
			got = len(other.values)
		}
		return 0, errorx.Newf(errCode.INCOMPATIBLE_SHAPE, "bin count mismatch: %d vs %d", len(h.values), got)
	}

	count := 0
	for i := range h.values {
		diff := math.Abs(h.values[i] - other.values[i])
		diffError := math.Abs(h.errors[i] - other.errors[i])
		if diff > n*diffError {
			count++
		}
	}
	return count, nil
}
