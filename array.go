// Package ndarray implements homogeneous N-dimensional arrays with
// NumPy semantics for the operations it supports.
//
// An Array is a structural descriptor (shape, strides, offset) over a flat
// buffer. Slicing, integer indexing, axis insertion, transposition and
// flipping return views that share the buffer with their source: writing
// through a view is visible in the source and vice versa. Copy, Flatten,
// boolean selection and every arithmetic operation allocate a new buffer.
//
//	a, _ := ndarray.FromNested[int64]([][]int{{1, 2, 3, 4}, {5, 6, 7, 8}})
//	row, _ := a.Slice(ndarray.I(0))  // view of the first row
//	row.Set(99, 0)                   // a is now [[99 2 3 4] [5 6 7 8]]
//
// Arrays are not safe for concurrent mutation.
package ndarray

import (
	"fmt"
	"slices"
)

// Array is an N-dimensional array of T.
type Array[T Element] struct {
	data    []T
	shape   []int
	strides []int
	offset  int
}

// New wraps data in an array of the given shape. The data slice is used as
// the buffer without copying. With no shape, data is treated as 1-D; use
// Scalar for a 0-d array.
func New[T Element](data []T, shape ...int) (*Array[T], error) {
	if len(shape) == 0 {
		shape = []int{len(data)}
	}
	if err := validateShape(shape); err != nil {
		return nil, err
	}
	if n := shapeSize(shape); n != len(data) {
		return nil, fmt.Errorf("%w: %d elements cannot fill shape %s", ErrShapeMismatch, len(data), FormatShape(shape))
	}
	return newContiguous(data, slices.Clone(shape)), nil
}

func newContiguous[T Element](data []T, shape []int) *Array[T] {
	return &Array[T]{
		data:    data,
		shape:   shape,
		strides: rowMajorStrides(shape),
	}
}

// Vector returns a 1-D array holding vals.
func Vector[T Element](vals ...T) *Array[T] {
	return newContiguous(slices.Clone(vals), []int{len(vals)})
}

// Scalar returns a 0-d array holding v. Scalars broadcast against any shape.
func Scalar[T Element](v T) *Array[T] {
	return newContiguous([]T{v}, []int{})
}

// Must is a helper that wraps a call to a function returning (*Array[T],
// error) and panics if the error is non-nil. It is intended for
// initializations from literals known to be well formed.
func Must[T Element](a *Array[T], err error) *Array[T] {
	if err != nil {
		panic(err)
	}
	return a
}

// NDim returns the number of dimensions.
func (a *Array[T]) NDim() int { return len(a.shape) }

// Shape returns a copy of the dimension sizes.
func (a *Array[T]) Shape() []int { return slices.Clone(a.shape) }

// Strides returns a copy of the per-axis element strides.
func (a *Array[T]) Strides() []int { return slices.Clone(a.strides) }

// Size returns the total number of elements, the product of Shape.
func (a *Array[T]) Size() int { return shapeSize(a.shape) }

// Dtype describes the element type.
func (a *Array[T]) Dtype() Dtype { return DtypeOf[T]() }

// SharesBuffer reports whether a and b are backed by the same buffer.
func (a *Array[T]) SharesBuffer(b *Array[T]) bool {
	if cap(a.data) == 0 || cap(b.data) == 0 {
		return false
	}
	return &a.data[:cap(a.data)][cap(a.data)-1] == &b.data[:cap(b.data)][cap(b.data)-1]
}

// IsContiguous reports whether the elements are laid out in row-major
// order without gaps, starting at the view's offset.
func (a *Array[T]) IsContiguous() bool {
	if a.Size() <= 1 {
		return true
	}
	want := rowMajorStrides(a.shape)
	for i, d := range a.shape {
		if d > 1 && a.strides[i] != want[i] {
			return false
		}
	}
	return true
}

// walk calls fn with the buffer offset of every element in row-major order.
func (a *Array[T]) walk(fn func(off int)) {
	n := a.Size()
	if n == 0 {
		return
	}
	idx := make([]int, len(a.shape))
	off := a.offset
	for k := 0; k < n; k++ {
		fn(off)
		for d := len(a.shape) - 1; d >= 0; d-- {
			idx[d]++
			off += a.strides[d]
			if idx[d] < a.shape[d] {
				break
			}
			off -= a.strides[d] * a.shape[d]
			idx[d] = 0
		}
	}
}

// Values returns the elements in row-major order as a newly allocated slice.
func (a *Array[T]) Values() []T {
	out := make([]T, 0, a.Size())
	a.walk(func(off int) {
		out = append(out, a.data[off])
	})
	return out
}

// Copy returns a deep copy with its own contiguous buffer.
func (a *Array[T]) Copy() *Array[T] {
	return newContiguous(a.Values(), slices.Clone(a.shape))
}

// offsetOf resolves a full coordinate, accepting negative indices.
func (a *Array[T]) offsetOf(idx []int) (int, error) {
	if len(idx) != len(a.shape) {
		return 0, fmt.Errorf("%w: %d indices for array of dimension %d", ErrIndexOutOfRange, len(idx), len(a.shape))
	}
	off := a.offset
	for d, i := range idx {
		n := a.shape[d]
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			return 0, fmt.Errorf("%w: index %d for axis %d with size %d", ErrIndexOutOfRange, idx[d], d, n)
		}
		off += i * a.strides[d]
	}
	return off, nil
}

// At returns the element at the given coordinate; one index per axis.
func (a *Array[T]) At(idx ...int) (T, error) {
	off, err := a.offsetOf(idx)
	if err != nil {
		var zero T
		return zero, err
	}
	return a.data[off], nil
}

// Set writes v at the given coordinate. The write is visible through every
// view sharing the buffer.
func (a *Array[T]) Set(v T, idx ...int) error {
	off, err := a.offsetOf(idx)
	if err != nil {
		return err
	}
	a.data[off] = v
	return nil
}

// Item returns the single element of a size-1 array.
func (a *Array[T]) Item() (T, error) {
	var zero T
	if a.Size() != 1 {
		return zero, fmt.Errorf("%w: item requires a size-1 array, got shape %s", ErrShapeMismatch, FormatShape(a.shape))
	}
	var v T
	a.walk(func(off int) { v = a.data[off] })
	return v, nil
}

// Fill sets every element of the view to v.
func (a *Array[T]) Fill(v T) {
	a.walk(func(off int) { a.data[off] = v })
}

// Assign copies src into a, broadcasting src to a's shape.
func (a *Array[T]) Assign(src *Array[T]) error {
	b, err := src.BroadcastTo(a.shape...)
	if err != nil {
		return err
	}
	vals := b.Values()
	i := 0
	a.walk(func(off int) {
		a.data[off] = vals[i]
		i++
	})
	return nil
}

// BroadcastTo returns a view of a with the given shape. Broadcast axes have
// stride zero, so every position along them aliases the same element.
func (a *Array[T]) BroadcastTo(shape ...int) (*Array[T], error) {
	out, err := BroadcastShapes(a.shape, shape)
	if err != nil {
		return nil, err
	}
	if !equalShapes(out, shape) {
		return nil, fmt.Errorf("%w: cannot broadcast %s to %s", ErrBroadcast, FormatShape(a.shape), FormatShape(shape))
	}
	strides := make([]int, len(shape))
	lead := len(shape) - len(a.shape)
	for i := range shape {
		j := i - lead
		if j < 0 || a.shape[j] == 1 && shape[i] != 1 {
			continue
		}
		strides[i] = a.strides[j]
	}
	return &Array[T]{data: a.data, shape: slices.Clone(shape), strides: strides, offset: a.offset}, nil
}
