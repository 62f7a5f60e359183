// Package combine 逆方差加权合并直方图.
//
// 对每个分箱: w_k = 1/σ_k², 合并值 = Σ w_k v_k / Σ w_k, 合并误差 = sqrt(1/Σ w_k).
// 结果以持久化格式写出, 可重新 Load 后继续合并.
package combine

import (
	"bytes"
	"io"
	"math"

	"github.com/gonum/stat"
	"gonum.org/v1/gonum/floats"

	"spectra/infra/errorx"
	"spectra/infra/errorx/errCode"
	"spectra/spectrum/hist"
)

// WeightedCombine 两个直方图逐箱逆方差加权平均, 结果写入 w.
// 分箱数或 edges 不一致返回 INCOMPATIBLE_SHAPE; 任一误差为零返回
// DEGENERATE_WEIGHT, 此时不写出任何内容.
func WeightedCombine(a, b *hist.Histogram, w io.Writer) error {
	return CombineN([]*hist.Histogram{a, b}, w)
}

// CombineN 一次性合并任意个直方图, edges 取第一个
func CombineN(hs []*hist.Histogram, w io.Writer) error {
	if len(hs) == 0 {
		return errorx.New(errCode.EMPTY_VALUE, "no histograms to combine")
	}
	for k, h := range hs {
		if h == nil {
			return errorx.Newf(errCode.EMPTY_VALUE, "histogram %d is nil", k)
		}
	}
	ref := hs[0]
	edges := ref.Edges()
	for k, h := range hs[1:] {
		if err := sameShape(edges, h, k+1); err != nil {
			return err
		}
	}

	n := ref.Size()
	values := make([]float64, n)
	errs := make([]float64, n)
	deltas := make([]float64, len(hs))
	ws := make([]float64, len(hs))
	for i := 0; i < n; i++ {
		for k, h := range hs {
			sigma := h.Error(i)
			if sigma == 0 {
				return errorx.Newf(errCode.DEGENERATE_WEIGHT, "histogram %d bin %d: zero error cannot be used as weight", k, i)
			}
			deltas[k] = h.Measurement(i) - ref.Measurement(i)
			ws[k] = 1 / (sigma * sigma)
		}
		sumW := floats.Sum(ws)
		// 以第一个输入为基准求加权偏移, 输入相同时结果与输入逐位相同
		values[i] = ref.Measurement(i) + stat.Mean(deltas, ws)
		errs[i] = math.Sqrt(1 / sumW)
	}
	return hist.Write(w, edges, values, errs)
}

func sameShape(edges []float64, h *hist.Histogram, k int) error {
	if h.Size()+1 != len(edges) {
		return errorx.Newf(errCode.INCOMPATIBLE_SHAPE, "histogram %d: bin count %d, expected %d", k, h.Size(), len(edges)-1)
	}
	if other := h.Edges(); !floats.Equal(edges, other) {
		for i := range edges {
			if edges[i] != other[i] {
				return errorx.Newf(errCode.INCOMPATIBLE_SHAPE, "histogram %d: edge %d is %g, expected %g", k, i, other[i], edges[i])
			}
		}
	}
	return nil
}

// Step 每次两两合并后回调: k 为刚并入的输入下标, avg 为读回的平均结果, raw 为其持久化文本.
// 返回错误会中止合并.
type Step func(k int, avg *hist.Histogram, raw []byte) error

// ChainSteps 从左到右两两合并, 每一步都经过持久化格式写出再读回,
// 与逐个文件 average 的做法一致. 返回最终结果, 只有一个输入时原样返回.
func ChainSteps(hs []*hist.Histogram, step Step) (*hist.Histogram, error) {
	if len(hs) == 0 {
		return nil, errorx.New(errCode.EMPTY_VALUE, "no histograms to combine")
	}
	if hs[0] == nil {
		return nil, errorx.New(errCode.EMPTY_VALUE, "histogram 0 is nil")
	}

	acc := hs[0]
	for k := 1; k < len(hs); k++ {
		var buf bytes.Buffer
		if err := WeightedCombine(acc, hs[k], &buf); err != nil {
			return nil, err
		}
		raw := buf.Bytes()
		next, err := hist.FromPersisted(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		if step != nil {
			if err := step(k, next, raw); err != nil {
				return nil, err
			}
		}
		acc = next
	}
	return acc, nil
}

// Chain 链式合并并把最终结果写入 w, 失败时不写出任何内容
func Chain(hs []*hist.Histogram, w io.Writer) error {
	var last []byte
	acc, err := ChainSteps(hs, func(_ int, _ *hist.Histogram, raw []byte) error {
		last = raw
		return nil
	})
	if err != nil {
		return err
	}
	if last == nil {
		_, err = acc.WriteTo(w)
		return err
	}
	_, err = w.Write(last)
	return err
}
