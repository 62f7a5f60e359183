// Package hist 一维分箱测量数据: bin edges, 每箱测量值与误差.
//
// Histogram 只能通过解析持久化文本构造 (FromPersisted / Load), 构造后不可变.
package hist

import (
	"math"

	"spectra/infra/errorx"
	"spectra/infra/errorx/errCode"
)

type Histogram struct {
	edges  []float64 // N+1 个严格递增的边界
	values []float64 // N 个测量值
	errors []float64 // N 个 1σ 误差, 非负
}

// Bin 单个分箱的只读视图
type Bin struct {
	Low   float64
	High  float64
	Value float64
	Error float64
}

// newHistogram takes ownership of the slices and validates them.
func newHistogram(edges, values, errs []float64) (*Histogram, error) {
	h := &Histogram{edges: edges, values: values, errors: errs}
	if err := h.assertSizes(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Histogram) assertSizes() error {
	if len(h.edges) != len(h.values)+1 {
		return errorx.Newf(errCode.INVARIANT_VIOLATED,
			"expected %d edges for %d values, got %d", len(h.values)+1, len(h.values), len(h.edges))
	}
	if len(h.errors) != len(h.values) {
		return errorx.Newf(errCode.INVARIANT_VIOLATED,
			"expected %d errors for %d values, got %d", len(h.values), len(h.values), len(h.errors))
	}
	for i := 0; i+1 < len(h.edges); i++ {
		// !(a > b) also rejects NaN edges
		if !(h.edges[i+1] > h.edges[i]) {
			return errorx.Newf(errCode.INVARIANT_VIOLATED,
				"bin %d: edges not strictly increasing (%g, %g)", i, h.edges[i], h.edges[i+1])
		}
	}
	for i, e := range h.errors {
		if e < 0 || math.IsNaN(e) {
			return errorx.Newf(errCode.INVARIANT_VIOLATED, "bin %d: negative or NaN error %g", i, e)
		}
	}
	return nil
}

// Size 分箱数 N
func (h *Histogram) Size() int { return len(h.values) }

// BinLow, BinHigh, Measurement and Error panic when i is outside [0, Size()).
func (h *Histogram) BinLow(i int) float64 {
	h.checkIndex(i)
	return h.edges[i]
}

func (h *Histogram) BinHigh(i int) float64 {
	h.checkIndex(i)
	return h.edges[i+1]
}

func (h *Histogram) Measurement(i int) float64 { return h.values[i] }

func (h *Histogram) Error(i int) float64 { return h.errors[i] }

// edges has one extra element, so BinLow(N) would not panic on its own.
func (h *Histogram) checkIndex(i int) {
	if i < 0 || i >= len(h.values) {
		panic(errorx.Newf(errCode.INVALID_VALUE, "bin index %d out of range [0, %d)", i, len(h.values)))
	}
}

// BinCenter 分箱中心, 用作模型的能量输入
func (h *Histogram) BinCenter(i int) float64 {
	h.checkIndex(i)
	return h.edges[i] + (h.edges[i+1]-h.edges[i])/2
}

func (h *Histogram) Bin(i int) Bin {
	h.checkIndex(i)
	return Bin{Low: h.edges[i], High: h.edges[i+1], Value: h.values[i], Error: h.errors[i]}
}

func (h *Histogram) Bins() []Bin {
	out := make([]Bin, len(h.values))
	for i := range out {
		out[i] = h.Bin(i)
	}
	return out
}

// Edges, Values and Errors return copies.
func (h *Histogram) Edges() []float64 { return cloneF64(h.edges) }

func (h *Histogram) Values() []float64 { return cloneF64(h.values) }

func (h *Histogram) Errors() []float64 { return cloneF64(h.errors) }

// Clone 深拷贝, 与原对象不共享底层数组
func (h *Histogram) Clone() *Histogram {
	return &Histogram{edges: cloneF64(h.edges), values: cloneF64(h.values), errors: cloneF64(h.errors)}
}

func cloneF64(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	return out
}
