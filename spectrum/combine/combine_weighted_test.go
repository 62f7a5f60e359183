package combine

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spectra/infra/errorx"
	"spectra/infra/errorx/errCode"
	"spectra/spectrum/hist"
)

func parse(t *testing.T, src string) *hist.Histogram {
	t.Helper()
	h, err := hist.FromPersisted(strings.NewReader(src))
	require.NoError(t, err)
	return h
}

func combined(t *testing.T, a, b *hist.Histogram) *hist.Histogram {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WeightedCombine(a, b, &buf))
	return parse(t, buf.String())
}

func TestWeightedCombineSingleBin(t *testing.T) {
	a := parse(t, "1\n0 1\n10\n2\n")
	b := parse(t, "1\n0 1\n12\n1\n")

	c := combined(t, a, b)
	require.Equal(t, 1, c.Size())
	assert.InDelta(t, 11.6, c.Measurement(0), 1e-12)
	assert.InDelta(t, math.Sqrt(1/1.25), c.Error(0), 1e-12)
	assert.InDelta(t, 0.894, c.Error(0), 1e-3)
	assert.Equal(t, 0.0, c.BinLow(0))
	assert.Equal(t, 1.0, c.BinHigh(0))
}

func TestWeightedCombineWithItself(t *testing.T) {
	a := parse(t, "3\n0 0.1 0.7 3\n0.3 17.25 -4.1\n0.7 0.03 2.9\n")

	c := combined(t, a, a)
	require.Equal(t, a.Size(), c.Size())
	assert.Equal(t, a.Edges(), c.Edges())
	assert.Equal(t, a.Values(), c.Values())
	for i := 0; i < a.Size(); i++ {
		assert.InDelta(t, a.Error(i)/math.Sqrt2, c.Error(i), 1e-12)
	}
}

func TestWeightedCombineLayout(t *testing.T) {
	a := parse(t, "2 0 1 2 1 3 1 1")
	b := parse(t, "2 0 1 2 3 5 1 1")

	var buf bytes.Buffer
	require.NoError(t, WeightedCombine(a, b, &buf))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "2", lines[0])
	assert.Equal(t, "0 1 2", lines[1])
	assert.Equal(t, "2 4", lines[2])
}

func TestWeightedCombineErrors(t *testing.T) {
	one := parse(t, "1 0 1 10 2")
	two := parse(t, "2 0 1 2 10 10 2 2")
	shifted := parse(t, "1 0 1.5 10 2")
	zero := parse(t, "1 0 1 10 0")

	tests := []struct {
		name string
		a, b *hist.Histogram
		code errCode.Code
	}{
		{"bin count", one, two, errCode.INCOMPATIBLE_SHAPE},
		{"edges differ", one, shifted, errCode.INCOMPATIBLE_SHAPE},
		{"zero error right", one, zero, errCode.DEGENERATE_WEIGHT},
		{"zero error left", zero, one, errCode.DEGENERATE_WEIGHT},
		{"nil input", one, nil, errCode.EMPTY_VALUE},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := WeightedCombine(tt.a, tt.b, &buf)
			require.Error(t, err)
			assert.Equal(t, tt.code, errorx.CodeOf(err), err.Error())
			assert.Zero(t, buf.Len(), "nothing is written on failure")
		})
	}
}

func TestChainMatchesCombineN(t *testing.T) {
	hs := []*hist.Histogram{
		parse(t, "2 0 1 2 10 4 2 0.5"),
		parse(t, "2 0 1 2 12 5 1 0.25"),
		parse(t, "2 0 1 2 11 3.5 0.5 1"),
		parse(t, "2 0 1 2 9 4.5 3 2"),
	}

	var chained, native bytes.Buffer
	require.NoError(t, Chain(hs, &chained))
	require.NoError(t, CombineN(hs, &native))

	c := parse(t, chained.String())
	n := parse(t, native.String())
	for i := 0; i < 2; i++ {
		assert.InDelta(t, n.Measurement(i), c.Measurement(i), 1e-12)
		assert.InDelta(t, n.Error(i), c.Error(i), 1e-12)
	}

	// chained by hand through WeightedCombine
	ab := combined(t, hs[0], hs[1])
	abc := combined(t, ab, hs[2])
	abcd := combined(t, abc, hs[3])
	assert.Equal(t, abcd.Values(), c.Values())
	assert.Equal(t, abcd.Errors(), c.Errors())
}

func TestChainEdgeCases(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, errorx.Is(Chain(nil, &buf), errCode.EMPTY_VALUE))
	assert.True(t, errorx.Is(CombineN(nil, &buf), errCode.EMPTY_VALUE))

	single := parse(t, "1 0 1 10 2")
	require.NoError(t, Chain([]*hist.Histogram{single}, &buf))
	assert.Equal(t, "1\n0 1\n10\n2\n", buf.String())
}

func TestChainSteps(t *testing.T) {
	hs := []*hist.Histogram{
		parse(t, "1 0 1 10 2"),
		parse(t, "1 0 1 12 1"),
		parse(t, "1 0 1 11 0.5"),
	}

	var ks []int
	var raws []string
	final, err := ChainSteps(hs, func(k int, avg *hist.Histogram, raw []byte) error {
		ks = append(ks, k)
		raws = append(raws, string(raw))
		assert.Equal(t, avg.Values(), parse(t, string(raw)).Values())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ks)
	assert.InDelta(t, 11.6, parse(t, raws[0]).Measurement(0), 1e-12)
	assert.InDelta(t, (0.25*10+12+4*11)/5.25, final.Measurement(0), 1e-12)

	var buf bytes.Buffer
	require.NoError(t, Chain(hs, &buf))
	assert.Equal(t, raws[1], buf.String())
}

func TestChainStepsStopsOnCallbackError(t *testing.T) {
	hs := []*hist.Histogram{
		parse(t, "1 0 1 10 2"),
		parse(t, "1 0 1 12 1"),
		parse(t, "1 0 1 11 0.5"),
	}
	stop := errorx.New(errCode.INVALID_VALUE, "disk full")
	calls := 0
	final, err := ChainSteps(hs, func(int, *hist.Histogram, []byte) error {
		calls++
		return stop
	})
	assert.Nil(t, final)
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)

	single, err := ChainSteps(hs[:1], nil)
	require.NoError(t, err)
	assert.Same(t, hs[0], single)
}
