package ndarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromNestedMixedLeaves(t *testing.T) {
	a, err := FromNested[float64]([]any{[]any{1, 2.5}, []float32{3, 4}})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, a.Shape())
	assert.Equal(t, []float64{1, 2.5, 3, 4}, a.Values())
}

func TestFromNestedRagged(t *testing.T) {
	cases := []struct {
		name  string
		input any
	}{
		{"short row", [][]int{{1, 2, 3}, {4, 5}}},
		{"scalar beside row", []any{[]int{1, 2}, 3}},
		{"row beside scalar", []any{1, []int{2, 3}}},
		{"empty beside row", []any{[]int{}, []int{1}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := FromNested[int64](c.input)
			assert.ErrorIs(t, err, ErrShapeMismatch)
		})
	}
}

func TestFromNestedUnsupportedLeaf(t *testing.T) {
	_, err := FromNested[int64]([]string{"a"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFillConstructors(t *testing.T) {
	z, err := Zeros[float64](2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, z.Values())

	o, err := Ones[int64](2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 1}, o.Values())

	b, err := Ones[bool](2, 2)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, true, true}, b.Values())

	f, err := Full(7.5, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{7.5, 7.5, 7.5}, f.Values())

	// only shape and dtype of Empty are defined
	e, err := Empty[float64](3, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, e.Shape())
	assert.Equal(t, "float64", e.Dtype().Name())

	_, err = Zeros[float64](2, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestArange(t *testing.T) {
	cases := []struct {
		name              string
		start, stop, step int64
		want              []int64
	}{
		{"count", 0, 4, 1, []int64{0, 1, 2, 3}},
		{"stride", 2, 9, 2, []int64{2, 4, 6, 8}},
		{"descending", 5, 0, -2, []int64{5, 3, 1}},
		{"empty", 3, 3, 1, []int64{}},
		{"wrong direction", 0, 5, -1, []int64{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Arange(c.start, c.stop, c.step)
			require.NoError(t, err)
			assert.Equal(t, c.want, a.Values())
		})
	}

	f, err := Arange(0.0, 1.0, 0.25)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75}, f.Values())

	_, err = Arange[int64](0, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestLinspace(t *testing.T) {
	a, err := Linspace(0, 10, 5)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2.5, 5, 7.5, 10}, a.Values())
}

func TestRandomIsSeeded(t *testing.T) {
	a, err := Random(NewSource(42), 2, 3)
	require.NoError(t, err)
	b, err := Random(NewSource(42), 2, 3)
	require.NoError(t, err)
	assert.Equal(t, a.Values(), b.Values())
	for _, v := range a.Values() {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}

	ints, err := RandomIntegers(NewSource(1), 0, 5, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, ints.Shape())
	for _, v := range ints.Values() {
		assert.True(t, v >= 0 && v < 5)
	}
}
