package ndarray

import (
	"fmt"
	"strconv"
	"strings"
)

// shapeSize returns the number of elements described by shape. The empty
// shape describes a scalar and has one element.
func shapeSize(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// rowMajorStrides calculates C-order strides (in elements) for shape:
// stride[i] is the product of all dimensions after i.
func rowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= shape[i]
	}
	return strides
}

func validateShape(shape []int) error {
	for i, d := range shape {
		if d < 0 {
			return fmt.Errorf("%w: negative dimension %d at axis %d", ErrInvalidArgument, d, i)
		}
	}
	return nil
}

func equalShapes(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// normalizeAxis maps a possibly negative axis onto [0, ndim).
func normalizeAxis(axis, ndim int) (int, error) {
	if axis < -ndim || axis >= ndim {
		return 0, fmt.Errorf("%w: axis %d for array of dimension %d", ErrAxisOutOfRange, axis, ndim)
	}
	if axis < 0 {
		axis += ndim
	}
	return axis, nil
}

// BroadcastShapes applies NumPy broadcasting rules: shapes are compared
// right to left, missing dimensions count as 1, and a pair of dimensions is
// compatible when they are equal or either is 1.
//
//	(3, 1) + (3, 5) -> (3, 5)
//	(2,)   + (3, 2) -> (3, 2)
//	(3, 4) + (3, 5) -> ErrBroadcast
func BroadcastShapes(a, b []int) ([]int, error) {
	n := max(len(a), len(b))
	out := make([]int, n)
	for i := 0; i < n; i++ {
		ad, bd := 1, 1
		if j := len(a) - 1 - i; j >= 0 {
			ad = a[j]
		}
		if j := len(b) - 1 - i; j >= 0 {
			bd = b[j]
		}
		switch {
		case ad == bd, bd == 1:
			out[n-1-i] = ad
		case ad == 1:
			out[n-1-i] = bd
		default:
			return nil, fmt.Errorf("%w: %s vs %s (axis %d: %d vs %d)",
				ErrBroadcast, FormatShape(a), FormatShape(b), n-1-i, ad, bd)
		}
	}
	return out, nil
}

// FormatShape renders a shape the way NumPy prints tuples: "(3, 4)",
// "(6,)" or "()".
func FormatShape(shape []int) string {
	parts := make([]string, len(shape))
	for i, d := range shape {
		parts[i] = strconv.Itoa(d)
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
