package ndarray

import (
	"fmt"
	"reflect"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// FromNested builds an array from nested Go slices or arrays of uniform
// depth, such as [][]int or []any{[]float64{1, 2}, []float64{3, 4}}. The
// nesting depth becomes the number of dimensions and the length at each
// level the size of that axis. Leaves are converted to T. Sibling sequences
// of different lengths, or leaves at different depths, are reported as
// ErrShapeMismatch. A non-slice value yields a 0-d array.
func FromNested[T Element](v any) (*Array[T], error) {
	b := nestedBuilder[T]{shape: []int{}, leafDepth: -1}
	if err := b.visit(reflect.ValueOf(v), 0); err != nil {
		return nil, err
	}
	return newContiguous(b.data, b.shape), nil
}

type nestedBuilder[T Element] struct {
	shape     []int
	data      []T
	leafDepth int
}

func (b *nestedBuilder[T]) visit(v reflect.Value, depth int) error {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return fmt.Errorf("%w: nil value at depth %d", ErrInvalidArgument, depth)
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		if b.leafDepth == -1 {
			if depth != len(b.shape) {
				return fmt.Errorf("%w: scalar found at depth %d, expected a sequence", ErrShapeMismatch, depth)
			}
			b.leafDepth = depth
		} else if depth != b.leafDepth {
			return fmt.Errorf("%w: inhomogeneous nesting depth (%d vs %d)", ErrShapeMismatch, depth, b.leafDepth)
		}
		if !v.IsValid() {
			return fmt.Errorf("%w: invalid value at depth %d", ErrInvalidArgument, depth)
		}
		x, err := Convert[T](v.Interface())
		if err != nil {
			return err
		}
		b.data = append(b.data, x)
		return nil
	}

	if b.leafDepth != -1 && depth >= b.leafDepth {
		return fmt.Errorf("%w: inhomogeneous nesting depth at %d", ErrShapeMismatch, depth)
	}
	n := v.Len()
	switch {
	case depth == len(b.shape):
		b.shape = append(b.shape, n)
	case b.shape[depth] != n:
		return fmt.Errorf("%w: sequence of length %d at depth %d, expected %d", ErrShapeMismatch, n, depth, b.shape[depth])
	}
	for i := 0; i < n; i++ {
		if err := b.visit(v.Index(i), depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Zeros returns an array of the given shape filled with zero values.
func Zeros[T Element](shape ...int) (*Array[T], error) {
	if err := validateShape(shape); err != nil {
		return nil, err
	}
	return newContiguous(make([]T, shapeSize(shape)), slices.Clone(shape)), nil
}

// Ones returns an array of the given shape filled with ones (true for bool).
func Ones[T Element](shape ...int) (*Array[T], error) {
	return Full(fromInt64[T](1), shape...)
}

// Full returns an array of the given shape filled with v.
func Full[T Element](v T, shape ...int) (*Array[T], error) {
	a, err := Zeros[T](shape...)
	if err != nil {
		return nil, err
	}
	for i := range a.data {
		a.data[i] = v
	}
	return a, nil
}

// Empty returns an array of the given shape whose contents are unspecified.
// Callers must write every element before reading it.
func Empty[T Element](shape ...int) (*Array[T], error) {
	return Zeros[T](shape...)
}

// Arange returns evenly spaced values in the half-open interval
// [start, stop) with the given step. A zero step is an error; an empty
// interval yields an empty array.
func Arange[T Number](start, stop, step T) (*Array[T], error) {
	if step == 0 {
		return nil, fmt.Errorf("%w: arange step cannot be zero", ErrInvalidArgument)
	}
	var n int
	if isFloat[T]() {
		span := (toFloat64(stop) - toFloat64(start)) / toFloat64(step)
		if span > 0 {
			n = int(span)
			if float64(n) < span {
				n++
			}
		}
	} else {
		lo, hi, st := toInt64(start), toInt64(stop), toInt64(step)
		if st > 0 && hi > lo {
			n = int((hi - lo + st - 1) / st)
		} else if st < 0 && hi < lo {
			n = int((lo - hi - st - 1) / -st)
		}
	}
	out := make([]T, n)
	for i := range out {
		out[i] = start + T(i)*step
	}
	return newContiguous(out, []int{n}), nil
}

// Linspace returns num evenly spaced samples over the closed interval
// [start, stop].
func Linspace(start, stop float64, num int) (*Array[float64], error) {
	if num < 0 {
		return nil, fmt.Errorf("%w: negative sample count %d", ErrInvalidArgument, num)
	}
	out := make([]float64, num)
	switch num {
	case 0:
	case 1:
		out[0] = start
	default:
		floats.Span(out, start, stop)
	}
	return newContiguous(out, []int{num}), nil
}

func toInt64[T Element](v T) int64 {
	switch x := any(v).(type) {
	case bool:
		if x {
			return 1
		}
		return 0
	case uint8:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case float32:
		return int64(x)
	case float64:
		return int64(x)
	}
	return 0
}
