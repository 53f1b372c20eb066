package ndarray

import "fmt"

// Select returns the elements of a whose mask entry is true, in row-major
// order, as a new 1-D array. The mask must have a's shape.
func Select[T Element](a *Array[T], mask *Array[bool]) (*Array[T], error) {
	if !equalShapes(a.shape, mask.shape) {
		return nil, fmt.Errorf("%w: mask shape %s does not match array shape %s",
			ErrShapeMismatch, FormatShape(mask.shape), FormatShape(a.shape))
	}
	vals, keep := a.Values(), mask.Values()
	out := make([]T, 0, len(vals))
	for i, v := range vals {
		if keep[i] {
			out = append(out, v)
		}
	}
	return newContiguous(out, []int{len(out)}), nil
}

// Nonzero returns the coordinates of the non-zero (true) elements of a as
// one index sequence per axis. The k-th entry of sequence d is the position
// along axis d of the k-th selected element, enumerated in row-major order.
// When nothing is selected every sequence is empty, never nil.
func Nonzero[T Element](a *Array[T]) [][]int {
	n := a.NDim()
	coords := make([][]int, n)
	for d := range coords {
		coords[d] = []int{}
	}
	if a.Size() == 0 {
		return coords
	}

	var zero T
	idx := make([]int, n)
	for _, v := range a.Values() {
		if v != zero {
			for d := range coords {
				coords[d] = append(coords[d], idx[d])
			}
		}
		for d := n - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < a.shape[d] {
				break
			}
			idx[d] = 0
		}
	}
	return coords
}

// Coordinates pairs up the per-axis sequences returned by Nonzero into one
// coordinate tuple per selected element.
func Coordinates(coords [][]int) [][]int {
	if len(coords) == 0 {
		return [][]int{}
	}
	out := make([][]int, len(coords[0]))
	for k := range out {
		out[k] = make([]int, len(coords))
		for d := range coords {
			out[k][d] = coords[d][k]
		}
	}
	return out
}

// CountNonzero returns the number of non-zero (true) elements.
func CountNonzero[T Element](a *Array[T]) int {
	var zero T
	n := 0
	for _, v := range a.Values() {
		if v != zero {
			n++
		}
	}
	return n
}
