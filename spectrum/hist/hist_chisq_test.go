package hist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spectra/infra/errorx"
	"spectra/infra/errorx/errCode"
)

func TestChiSquarePerfectModel(t *testing.T) {
	h := mustParse(t, "3 0 2 4 6 1 3 5 0.1 0.2 0.3")
	// values equal the bin centers
	identity := func(e float64) float64 { return e }

	got, err := h.ChiSquare(identity, DEFAULT_DOF)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestChiSquareValue(t *testing.T) {
	h := mustParse(t, "2 0 1 2 10 20 2 4")
	flat := func(float64) float64 { return 12 }

	// ((10-12)/2)^2 + ((20-12)/4)^2 = 1 + 4
	got, err := h.ChiSquare(flat, 5)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-12)

	got, err = h.ChiSquare(flat, DEFAULT_DOF)
	require.NoError(t, err)
	assert.InDelta(t, 5.0/52, got, 1e-12)
}

func TestChiSquareModelSeesBinCenters(t *testing.T) {
	h := mustParse(t, "2 0 1 3 1 1 1 1")
	var seen []float64
	_, err := h.ChiSquare(func(e float64) float64 {
		seen = append(seen, e)
		return 1
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 2}, seen)
}

func TestChiSquareDegenerate(t *testing.T) {
	h := mustParse(t, "2 0 1 2 1 1 1 0")
	_, err := h.ChiSquare(func(float64) float64 { return 1 }, DEFAULT_DOF)
	require.Error(t, err)
	assert.True(t, errorx.Is(err, errCode.DEGENERATE_WEIGHT))
	assert.Contains(t, err.Error(), "bin 1")
}

func TestChiSquareInvalidArgs(t *testing.T) {
	h := mustParse(t, "1 0 1 1 1")
	_, err := h.ChiSquare(nil, DEFAULT_DOF)
	assert.True(t, errorx.Is(err, errCode.INVALID_VALUE))

	for _, dof := range []float64{0, -3, math.NaN()} {
		_, err = h.ChiSquare(func(float64) float64 { return 0 }, dof)
		assert.True(t, errorx.Is(err, errCode.INVALID_VALUE), "dof=%g", dof)
	}
}

func TestChiSquareTestPValue(t *testing.T) {
	h := mustParse(t, "2 0 1 2 10 20 2 4")
	res, err := h.ChiSquareTest(func(float64) float64 { return 12 }, 2)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, res.Chi2, 1e-12)
	assert.InDelta(t, 2.5, res.Reduced, 1e-12)
	assert.Equal(t, 2.0, res.DOF)
	// chi-square with 2 dof: survival = exp(-x/2)
	assert.InDelta(t, math.Exp(-2.5), res.PValue, 1e-9)

	perfect, err := h.ChiSquareTest(func(e float64) float64 {
		if e < 1 {
			return 10
		}
		return 20
	}, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, perfect.PValue, 1e-12)
}
