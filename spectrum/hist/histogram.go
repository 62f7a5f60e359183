package hist

import (
	"io"
	"math"

	"spectra/infra/errorx"
	"spectra/infra/errorx/errCode"
)

// HistogramBin 原始样本等宽分箱的计数
type HistogramBin struct {
	From  float64
	To    float64
	Count int
}

// BinSamples 按指定 bins 对 data 做等宽分箱统计, NaN/Inf 样本跳过.
// 没有有效样本时返回 nil; 取值范围无法用有限且严格递增的 edges 表示时返回 INVALID_VALUE.
func BinSamples(data []float64, bins int) ([]HistogramBin, error) {
	if bins <= 0 {
		return nil, errorx.Newf(errCode.INVALID_VALUE, "bins must be > 0, got %d", bins)
	}
	finite := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return nil, nil
	}

	// 1. 求最小值最大值
	minV, maxV := finite[0], finite[0]
	for _, v := range finite {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}

	// 避免 max == min 导致除0, 量级大时 1e-9 会被舍入掉
	if maxV == minV {
		maxV = minV + math.Max(1e-9, math.Abs(minV)*1e-9)
	}

	// 2. 分箱宽度
	width := (maxV - minV) / float64(bins)
	if math.IsInf(width, 0) || !(width > 0) {
		return nil, errorx.Newf(errCode.INVALID_VALUE, "sample range [%g, %g] cannot be split into %d bins", minV, maxV, bins)
	}

	// 3. 初始化 bins
	result := make([]HistogramBin, bins)
	for i := 0; i < bins; i++ {
		result[i] = HistogramBin{
			From: minV + float64(i)*width,
			To:   minV + float64(i+1)*width,
		}
	}
	// 浮点累积误差不能让最后一个上边界落在 maxV 之下
	result[bins-1].To = maxV
	for i, b := range result {
		if !(b.To > b.From) {
			return nil, errorx.Newf(errCode.INVALID_VALUE, "bin %d: edges not strictly increasing (%g, %g)", i, b.From, b.To)
		}
	}

	// 4. 遍历数据并统计
	for _, v := range finite {
		idx := int(math.Floor((v - minV) / width))
		if idx >= bins { // 处理 v == maxV 的边界
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		result[idx].Count++
	}

	return result, nil
}

// WriteSamples 把原始样本分箱后按持久化格式写出, 误差取泊松误差 sqrt(count).
// 结果再经 FromPersisted 读回成为 Histogram.
func WriteSamples(w io.Writer, data []float64, bins int) error {
	counts, err := BinSamples(data, bins)
	if err != nil {
		return err
	}
	if counts == nil {
		return Write(w, []float64{0}, nil, nil)
	}
	edges := make([]float64, 0, len(counts)+1)
	values := make([]float64, len(counts))
	errs := make([]float64, len(counts))
	edges = append(edges, counts[0].From)
	for i, b := range counts {
		edges = append(edges, b.To)
		values[i] = float64(b.Count)
		errs[i] = math.Sqrt(float64(b.Count))
	}
	return Write(w, edges, values, errs)
}
