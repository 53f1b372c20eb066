package ndarray

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	cube := Must(FromNested[int64]([][][]int{
		{{0, 1, 2, 3}, {4, 5, 6, 7}},
		{{0, 1, 2, 3}, {4, 5, 6, 7}},
	}))

	cases := []struct {
		name string
		got  fmt.Stringer
		want string
	}{
		{"ints", Vector[int64](10, 2, 3, 40, 5, 6), "[10  2  3 40  5  6]"},
		{"zeros", Must(Zeros[float64](2)), "[0. 0.]"},
		{"mixed fractions", Vector(1.0, 1.5, -0.25), "[ 1.    1.5  -0.25]"},
		{"random precision", Vector(0.7739560485559633, 0.4388784397520523), "[0.77395605 0.43887844]"},
		{"nan", Vector(math.NaN()), "[nan]"},
		{"scalar", Scalar[int64](5), "5"},
		{"empty", Vector[int64](), "[]"},
		{"column", Must(Vector[int64](1, 2, 3).ExpandDims(1)), "[[1]\n [2]\n [3]]"},
		{"cube", cube, "[[[0 1 2 3]\n  [4 5 6 7]]\n\n [[0 1 2 3]\n  [4 5 6 7]]]"},
		{"bools", Vector(true, false), "[ True False]"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.got.String())
		})
	}
}

func TestFormatShape(t *testing.T) {
	assert.Equal(t, "(3, 4)", FormatShape([]int{3, 4}))
	assert.Equal(t, "(6,)", FormatShape([]int{6}))
	assert.Equal(t, "()", FormatShape(nil))
}
