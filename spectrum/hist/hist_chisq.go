package hist

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"spectra/infra/errorx"
	"spectra/infra/errorx/errCode"
)

// DEFAULT_DOF 原始数据集约定的自由度, 与 N 无关; 其他数据集通过配置注入
const DEFAULT_DOF = 52.0

// Model 给定能量 (分箱中心) 返回预测测量值
type Model func(energy float64) float64

type ChiSquareResult struct {
	Chi2    float64 // Σ (v_i - f(c_i))² / σ_i²
	DOF     float64
	Reduced float64 // Chi2 / DOF
	PValue  float64 // P(χ²_DOF >= Chi2)
}

// ChiSquare 约化卡方: Σ (v_i - model(c_i))² / σ_i² / dof.
// 任一 σ_i == 0 时返回 DEGENERATE_WEIGHT, 不产生 Inf/NaN.
func (h *Histogram) ChiSquare(model Model, dof float64) (float64, error) {
	chi2, err := h.chi2(model, dof)
	if err != nil {
		return 0, err
	}
	return chi2 / dof, nil
}

// ChiSquareTest 同 ChiSquare, 额外给出上尾 p 值
func (h *Histogram) ChiSquareTest(model Model, dof float64) (ChiSquareResult, error) {
	chi2, err := h.chi2(model, dof)
	if err != nil {
		return ChiSquareResult{}, err
	}
	dist := distuv.ChiSquared{K: dof}
	return ChiSquareResult{
		Chi2:    chi2,
		DOF:     dof,
		Reduced: chi2 / dof,
		PValue:  dist.Survival(chi2),
	}, nil
}

func (h *Histogram) chi2(model Model, dof float64) (float64, error) {
	if model == nil {
		return 0, errorx.New(errCode.INVALID_VALUE, "model is nil")
	}
	if !(dof > 0) {
		return 0, errorx.Newf(errCode.INVALID_VALUE, "dof must be > 0, got %g", dof)
	}

	terms := make([]float64, len(h.values))
	for i := range h.values {
		sigma := h.errors[i]
		if sigma == 0 {
			return 0, errorx.Newf(errCode.DEGENERATE_WEIGHT, "bin %d: zero error in chi-square denominator", i)
		}
		resid := h.values[i] - model(h.BinCenter(i))
		terms[i] = resid * resid / (sigma * sigma)
	}
	return floats.Sum(terms), nil
}
