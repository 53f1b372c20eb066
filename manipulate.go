package ndarray

import (
	"cmp"
	"fmt"
	"slices"
)

// ExpandDims inserts a length-1 axis at position axis of the result. It is
// equivalent to placing NewAxis at that position in a Slice expression.
// Negative axes count from the end of the result.
func (a *Array[T]) ExpandDims(axis int) (*Array[T], error) {
	axis, err := normalizeAxis(axis, a.NDim()+1)
	if err != nil {
		return nil, err
	}
	return &Array[T]{
		data:    a.data,
		shape:   insertAxis(a.shape, axis, 1),
		strides: insertAxis(a.strides, axis, 0),
		offset:  a.offset,
	}, nil
}

// Reshape returns an array with the same elements in row-major order and a
// new shape. At most one dimension may be -1; it is inferred from the size.
// The result is a view when a is contiguous and a copy otherwise.
func (a *Array[T]) Reshape(shape ...int) (*Array[T], error) {
	shape = slices.Clone(shape)
	infer := -1
	known := 1
	for i, d := range shape {
		switch {
		case d == -1 && infer == -1:
			infer = i
		case d < 0:
			return nil, fmt.Errorf("%w: invalid reshape dimension %d", ErrInvalidArgument, d)
		default:
			known *= d
		}
	}
	size := a.Size()
	if infer >= 0 {
		if known == 0 || size%known != 0 {
			return nil, fmt.Errorf("%w: cannot reshape array of size %d into %s", ErrShapeMismatch, size, FormatShape(shape))
		}
		shape[infer] = size / known
	}
	if shapeSize(shape) != size {
		return nil, fmt.Errorf("%w: cannot reshape array of size %d into %s", ErrShapeMismatch, size, FormatShape(shape))
	}

	src := a
	if !a.IsContiguous() {
		src = a.Copy()
	}
	return &Array[T]{data: src.data, shape: shape, strides: rowMajorStrides(shape), offset: src.offset}, nil
}

// Ravel returns the elements as a 1-D array, a view when possible.
func (a *Array[T]) Ravel() *Array[T] {
	r, _ := a.Reshape(-1)
	return r
}

// Flatten returns a 1-D copy of the elements in row-major order.
func (a *Array[T]) Flatten() *Array[T] {
	vals := a.Values()
	return newContiguous(vals, []int{len(vals)})
}

// Transpose permutes the axes. With no arguments the axis order is
// reversed. The result is a view.
func (a *Array[T]) Transpose(axes ...int) (*Array[T], error) {
	n := a.NDim()
	if len(axes) == 0 {
		axes = make([]int, n)
		for i := range axes {
			axes[i] = n - 1 - i
		}
	}
	if len(axes) != n {
		return nil, fmt.Errorf("%w: %d axes given for array of dimension %d", ErrInvalidArgument, len(axes), n)
	}
	seen := make([]bool, n)
	shape := make([]int, n)
	strides := make([]int, n)
	for i, ax := range axes {
		ax, err := normalizeAxis(ax, n)
		if err != nil {
			return nil, err
		}
		if seen[ax] {
			return nil, fmt.Errorf("%w: repeated axis %d in transpose", ErrInvalidArgument, ax)
		}
		seen[ax] = true
		shape[i] = a.shape[ax]
		strides[i] = a.strides[ax]
	}
	return &Array[T]{data: a.data, shape: shape, strides: strides, offset: a.offset}, nil
}

// Flip reverses the order of elements along the given axes, or along every
// axis when none are given. The result is a view.
func (a *Array[T]) Flip(axes ...int) (*Array[T], error) {
	if len(axes) == 0 {
		axes = make([]int, a.NDim())
		for i := range axes {
			axes[i] = i
		}
	}
	out := &Array[T]{data: a.data, shape: a.Shape(), strides: a.Strides(), offset: a.offset}
	for _, ax := range axes {
		ax, err := normalizeAxis(ax, a.NDim())
		if err != nil {
			return nil, err
		}
		if n := out.shape[ax]; n > 0 {
			out.offset += (n - 1) * out.strides[ax]
			out.strides[ax] = -out.strides[ax]
		}
	}
	return out, nil
}

// moveAxisLast returns a view with axis moved to the end and the remaining
// axes in their original order.
func (a *Array[T]) moveAxisLast(axis int) *Array[T] {
	perm := make([]int, 0, a.NDim())
	for i := 0; i < a.NDim(); i++ {
		if i != axis {
			perm = append(perm, i)
		}
	}
	t, _ := a.Transpose(append(perm, axis)...)
	return t
}

// Concatenate joins arrays along an existing axis. Every input must have
// the same number of dimensions and agree on every axis except axis.
func Concatenate[T Element](axis int, arrays ...*Array[T]) (*Array[T], error) {
	if len(arrays) == 0 {
		return nil, fmt.Errorf("%w: need at least one array to concatenate", ErrInvalidArgument)
	}
	first := arrays[0]
	if first.NDim() == 0 {
		return nil, fmt.Errorf("%w: zero-dimensional arrays cannot be concatenated", ErrInvalidArgument)
	}
	axis, err := normalizeAxis(axis, first.NDim())
	if err != nil {
		return nil, err
	}

	shape := first.Shape()
	shape[axis] = 0
	for i, arr := range arrays {
		if arr.NDim() != first.NDim() {
			return nil, fmt.Errorf("%w: array %d has %d dimensions, array 0 has %d",
				ErrShapeMismatch, i, arr.NDim(), first.NDim())
		}
		for d := range shape {
			if d != axis && arr.shape[d] != first.shape[d] {
				return nil, fmt.Errorf("%w: along dimension %d, array 0 has size %d and array %d has size %d",
					ErrShapeMismatch, d, first.shape[d], i, arr.shape[d])
			}
		}
		shape[axis] += arr.shape[axis]
	}

	out, err := Zeros[T](shape...)
	if err != nil {
		return nil, err
	}
	idx := make([]Index, axis+1)
	for d := 0; d < axis; d++ {
		idx[d] = All()
	}
	start := 0
	for _, arr := range arrays {
		n := arr.shape[axis]
		idx[axis] = S(start, start+n)
		dst, err := out.Slice(idx...)
		if err != nil {
			return nil, err
		}
		if err := dst.Assign(arr); err != nil {
			return nil, err
		}
		start += n
	}
	return out, nil
}

// VStack stacks arrays row-wise. 1-D inputs of length N are treated as
// rows of shape (1, N) before joining along axis 0.
func VStack[T Element](arrays ...*Array[T]) (*Array[T], error) {
	rows := make([]*Array[T], len(arrays))
	for i, arr := range arrays {
		rows[i] = atLeast2D(arr)
	}
	return Concatenate(0, rows...)
}

// HStack stacks arrays column-wise: along axis 1, or along axis 0 when the
// inputs are 1-D.
func HStack[T Element](arrays ...*Array[T]) (*Array[T], error) {
	cols := make([]*Array[T], len(arrays))
	for i, arr := range arrays {
		cols[i] = arr
		if arr.NDim() == 0 {
			cols[i], _ = arr.Reshape(1)
		}
	}
	if len(cols) > 0 && cols[0].NDim() == 1 {
		return Concatenate(0, cols...)
	}
	return Concatenate(1, cols...)
}

func atLeast2D[T Element](a *Array[T]) *Array[T] {
	switch a.NDim() {
	case 0:
		r, _ := a.Reshape(1, 1)
		return r
	case 1:
		r, _ := a.ExpandDims(0)
		return r
	}
	return a
}

// Sort returns a copy of a with each lane along the last axis sorted in
// ascending order. NaNs sort to the end.
func Sort[T Number](a *Array[T]) *Array[T] {
	out := a.Copy()
	if out.NDim() == 0 {
		return out
	}
	n := out.shape[out.NDim()-1]
	if n == 0 {
		return out
	}
	floating := isFloat[T]()
	for lo := 0; lo < len(out.data); lo += n {
		if floating {
			slices.SortFunc(out.data[lo:lo+n], compareNaNLast[T])
		} else {
			slices.Sort(out.data[lo : lo+n])
		}
	}
	return out
}

func compareNaNLast[T Number](x, y T) int {
	xn, yn := x != x, y != y
	switch {
	case xn && yn:
		return 0
	case xn:
		return 1
	case yn:
		return -1
	}
	return cmp.Compare(x, y)
}
