package ndarray

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	assert.Equal(t, int64(10), Sum(Vector[int64](1, 2, 3, 4)))
	assert.Equal(t, int64(0), Sum(Vector[int64]()))

	b := Must(FromNested[int64]([][]int{{1, 1}, {2, 2}}))
	rows, err := SumAxis(b, 0)
	require.NoError(t, err)
	assert.Equal(t, "[3 3]", rows.String())

	cols, err := SumAxis(b, 1)
	require.NoError(t, err)
	assert.Equal(t, "[2 4]", cols.String())

	last, err := SumAxis(b, -1)
	require.NoError(t, err)
	assert.True(t, ArrayEqual(cols, last))

	_, err = SumAxis(b, 2)
	assert.ErrorIs(t, err, ErrAxisOutOfRange)
}

func TestAxisReductionDropsOneAxis(t *testing.T) {
	a := Must(Must(Arange[int64](0, 24, 1)).Reshape(2, 3, 4))
	for axis, want := range map[int][]int{0: {3, 4}, 1: {2, 4}, 2: {2, 3}} {
		s, err := SumAxis(a, axis)
		require.NoError(t, err)
		assert.Equal(t, want, s.Shape(), "axis %d", axis)
		assert.Equal(t, Sum(a), Sum(s))
	}

	s, err := SumAxis(a, 1)
	require.NoError(t, err)
	// a[0, :, 0] = 0, 4, 8
	v, _ := s.At(0, 0)
	assert.Equal(t, int64(12), v)
}

func TestMinMaxProd(t *testing.T) {
	a := Must(FromNested[float64]([][]float64{{0.45053314, 0.17296777, 0.34376245, 0.5510652}, {0.54627315, 0.05093587, 0.40067661, 0.55645993}, {0.12697628, 0.82485143, 0.26590556, 0.56917101}}))

	mx, err := Max(a)
	require.NoError(t, err)
	assert.Equal(t, 0.82485143, mx)

	mn, err := Min(a)
	require.NoError(t, err)
	assert.Equal(t, 0.05093587, mn)

	cols, err := MinAxis(a, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.12697628, 0.05093587, 0.26590556, 0.5510652}, cols.Values())

	rows, err := MaxAxis(a, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5510652, 0.55645993, 0.82485143}, rows.Values())

	_, err = Min(Vector[float64]())
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = MaxAxis(Must(Zeros[int64](2, 0)), 1)
	assert.ErrorIs(t, err, ErrEmpty)

	assert.Equal(t, int64(24), Prod(Vector[int64](1, 2, 3, 4)))
	p, err := ProdAxis(Must(FromNested[int64]([][]int{{1, 2}, {3, 4}})), 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 8}, p.Values())

	withNaN, err := Max(Vector(1.0, math.NaN(), 3.0))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(withNaN))
}

func TestMeanStd(t *testing.T) {
	a := Vector[int64](1, 2, 3, 4)
	assert.InDelta(t, 2.5, Mean(a), 1e-12)
	assert.InDelta(t, math.Sqrt(1.25), Std(a), 1e-12)
	assert.True(t, math.IsNaN(Mean(Vector[int64]())))

	b := Must(FromNested[int64]([][]int{{1, 1}, {2, 4}}))
	m, err := MeanAxis(b, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3}, m.Values())

	s, err := StdAxis(b, 0)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 1.5}, s.Values(), 1e-12)
}
