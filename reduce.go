package ndarray

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// reduceAxis applies fn to every lane along axis and returns an array with
// that axis removed.
func reduceAxis[T, R Element](a *Array[T], axis int, fn func(lane []T) (R, error)) (*Array[R], error) {
	axis, err := normalizeAxis(axis, a.NDim())
	if err != nil {
		return nil, err
	}
	n := a.shape[axis]
	vals := a.moveAxisLast(axis).Values()
	shape := make([]int, 0, a.NDim()-1)
	shape = append(shape, a.shape[:axis]...)
	shape = append(shape, a.shape[axis+1:]...)

	out := make([]R, shapeSize(shape))
	for i := range out {
		r, err := fn(vals[i*n : (i+1)*n])
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return newContiguous(out, shape), nil
}

func sumLane[T Number](lane []T) (T, error) {
	var s T
	for _, v := range lane {
		s += v
	}
	return s, nil
}

func prodLane[T Number](lane []T) (T, error) {
	p := T(1)
	for _, v := range lane {
		p *= v
	}
	return p, nil
}

func minLane[T Number](lane []T) (T, error) {
	if len(lane) == 0 {
		var zero T
		return zero, fmt.Errorf("%w: minimum has no identity", ErrEmpty)
	}
	m := lane[0]
	for _, v := range lane[1:] {
		if v < m || v != v {
			m = v
		}
	}
	return m, nil
}

func maxLane[T Number](lane []T) (T, error) {
	if len(lane) == 0 {
		var zero T
		return zero, fmt.Errorf("%w: maximum has no identity", ErrEmpty)
	}
	m := lane[0]
	for _, v := range lane[1:] {
		if v > m || v != v {
			m = v
		}
	}
	return m, nil
}

func floatLane[T Number](lane []T) []float64 {
	out := make([]float64, len(lane))
	for i, v := range lane {
		out[i] = toFloat64(v)
	}
	return out
}

func meanLane[T Number](lane []T) (float64, error) {
	if len(lane) == 0 {
		return math.NaN(), nil
	}
	return stat.Mean(floatLane(lane), nil), nil
}

// stdLane is the population standard deviation (divisor N).
func stdLane[T Number](lane []T) (float64, error) {
	if len(lane) == 0 {
		return math.NaN(), nil
	}
	return stat.PopStdDev(floatLane(lane), nil), nil
}

// Sum adds every element. The sum of an empty array is 0.
func Sum[T Number](a *Array[T]) T {
	s, _ := sumLane(a.Values())
	return s
}

// SumAxis sums along axis, removing it from the shape.
func SumAxis[T Number](a *Array[T], axis int) (*Array[T], error) {
	return reduceAxis(a, axis, sumLane[T])
}

// Prod multiplies every element. The product of an empty array is 1.
func Prod[T Number](a *Array[T]) T {
	p, _ := prodLane(a.Values())
	return p
}

// ProdAxis multiplies along axis, removing it from the shape.
func ProdAxis[T Number](a *Array[T], axis int) (*Array[T], error) {
	return reduceAxis(a, axis, prodLane[T])
}

// Min returns the smallest element; NaN propagates.
func Min[T Number](a *Array[T]) (T, error) {
	return minLane(a.Values())
}

// MinAxis takes the minimum along axis, removing it from the shape.
func MinAxis[T Number](a *Array[T], axis int) (*Array[T], error) {
	return reduceAxis(a, axis, minLane[T])
}

// Max returns the largest element; NaN propagates.
func Max[T Number](a *Array[T]) (T, error) {
	return maxLane(a.Values())
}

// MaxAxis takes the maximum along axis, removing it from the shape.
func MaxAxis[T Number](a *Array[T], axis int) (*Array[T], error) {
	return reduceAxis(a, axis, maxLane[T])
}

// Mean returns the arithmetic mean, NaN for an empty array.
func Mean[T Number](a *Array[T]) float64 {
	m, _ := meanLane(a.Values())
	return m
}

// MeanAxis averages along axis, removing it from the shape.
func MeanAxis[T Number](a *Array[T], axis int) (*Array[float64], error) {
	return reduceAxis(a, axis, meanLane[T])
}

// Std returns the population standard deviation, NaN for an empty array.
func Std[T Number](a *Array[T]) float64 {
	s, _ := stdLane(a.Values())
	return s
}

// StdAxis takes the population standard deviation along axis, removing it
// from the shape.
func StdAxis[T Number](a *Array[T], axis int) (*Array[float64], error) {
	return reduceAxis(a, axis, stdLane[T])
}
