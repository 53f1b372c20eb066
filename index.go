package ndarray

import (
	"fmt"
	"slices"
)

type indexKind int

const (
	sliceIndex indexKind = iota
	intIndex
	newAxisIndex
)

// Index is one entry of an index expression passed to Slice. Build it with
// I, S, From, To, All or NewAxis.
type Index struct {
	kind     indexKind
	i        int
	start    int
	stop     int
	step     int
	hasStart bool
	hasStop  bool
}

// NewAxis inserts a length-1 axis at its position in an index expression.
var NewAxis = Index{kind: newAxisIndex}

// I selects a single position along an axis, removing that axis from the
// result. Negative values count from the end.
func I(i int) Index { return Index{kind: intIndex, i: i} }

// S selects the half-open range [start, stop).
func S(start, stop int) Index {
	return Index{start: start, stop: stop, step: 1, hasStart: true, hasStop: true}
}

// Step selects every step-th position of [start, stop). Equivalent to
// S(start, stop).By(step).
func Step(start, stop, step int) Index { return S(start, stop).By(step) }

// From selects [start, len).
func From(start int) Index { return Index{start: start, step: 1, hasStart: true} }

// To selects [0, stop).
func To(stop int) Index { return Index{stop: stop, step: 1, hasStop: true} }

// All selects the whole axis.
func All() Index { return Index{step: 1} }

// By returns a copy of a range index with the given step. Negative steps
// walk the axis backwards; omitted bounds then default to the last and
// before-the-first positions.
func (ix Index) By(step int) Index {
	ix.step = step
	return ix
}

func (ix Index) String() string {
	switch ix.kind {
	case intIndex:
		return fmt.Sprint(ix.i)
	case newAxisIndex:
		return "newaxis"
	}
	s := ""
	if ix.hasStart {
		s += fmt.Sprint(ix.start)
	}
	s += ":"
	if ix.hasStop {
		s += fmt.Sprint(ix.stop)
	}
	if ix.step != 1 {
		s += ":" + fmt.Sprint(ix.step)
	}
	return s
}

// resolve clamps the range against an axis of length n and returns the
// first position, step and resulting length.
func (ix Index) resolve(n int) (start, step, length int, err error) {
	step = ix.step
	if step == 0 {
		return 0, 0, 0, fmt.Errorf("%w: slice step cannot be zero", ErrInvalidArgument)
	}
	clamp := func(v int) int {
		if v < 0 {
			v += n
			if v < 0 {
				if step < 0 {
					return -1
				}
				return 0
			}
		} else if v >= n {
			if step < 0 {
				return n - 1
			}
			return n
		}
		return v
	}

	var stop int
	if step > 0 {
		start, stop = 0, n
	} else {
		start, stop = n-1, -1
	}
	if ix.hasStart {
		start = clamp(ix.start)
	}
	if ix.hasStop {
		stop = clamp(ix.stop)
	}

	switch {
	case step > 0 && start < stop:
		length = (stop-start-1)/step + 1
	case step < 0 && stop < start:
		length = (start-stop-1)/(-step) + 1
	}
	return start, step, length, nil
}

// Slice applies an index expression and returns a view sharing a's buffer.
// Each non-NewAxis entry consumes one axis; axes not covered are taken
// whole. Range bounds are clamped, integer indices must be in range.
func (a *Array[T]) Slice(idx ...Index) (*Array[T], error) {
	consumed := 0
	for _, ix := range idx {
		if ix.kind != newAxisIndex {
			consumed++
		}
	}
	if consumed > len(a.shape) {
		return nil, fmt.Errorf("%w: too many indices for array of dimension %d", ErrIndexOutOfRange, len(a.shape))
	}

	shape := make([]int, 0, len(a.shape)+len(idx))
	strides := make([]int, 0, cap(shape))
	off := a.offset
	d := 0
	for _, ix := range idx {
		switch ix.kind {
		case newAxisIndex:
			shape = append(shape, 1)
			strides = append(strides, 0)
			continue
		case intIndex:
			n := a.shape[d]
			i := ix.i
			if i < 0 {
				i += n
			}
			if i < 0 || i >= n {
				return nil, fmt.Errorf("%w: index %d for axis %d with size %d", ErrIndexOutOfRange, ix.i, d, n)
			}
			off += i * a.strides[d]
		default:
			start, step, length, err := ix.resolve(a.shape[d])
			if err != nil {
				return nil, err
			}
			if length > 0 {
				off += start * a.strides[d]
			}
			shape = append(shape, length)
			strides = append(strides, a.strides[d]*step)
		}
		d++
	}
	shape = append(shape, a.shape[d:]...)
	strides = append(strides, a.strides[d:]...)

	return &Array[T]{data: a.data, shape: shape, strides: strides, offset: off}, nil
}

// Index returns the view selected by position i along the first axis: a
// lower-dimensional view for N-d arrays, a 0-d view for 1-d arrays.
func (a *Array[T]) Index(i int) (*Array[T], error) {
	return a.Slice(I(i))
}

// Take gathers the elements at the coordinates described by one index
// sequence per axis, as returned by Nonzero, into a new 1-D array.
func Take[T Element](a *Array[T], coords [][]int) (*Array[T], error) {
	if len(coords) != a.NDim() {
		return nil, fmt.Errorf("%w: %d index sequences for array of dimension %d", ErrShapeMismatch, len(coords), a.NDim())
	}
	n := 0
	if len(coords) > 0 {
		n = len(coords[0])
	}
	for axis, c := range coords {
		if len(c) != n {
			return nil, fmt.Errorf("%w: index sequence %d has length %d, want %d", ErrShapeMismatch, axis, len(c), n)
		}
	}
	out := make([]T, n)
	pos := make([]int, len(coords))
	for k := 0; k < n; k++ {
		for axis := range coords {
			pos[axis] = coords[axis][k]
		}
		v, err := a.At(pos...)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return newContiguous(out, []int{n}), nil
}

func insertAxis(s []int, at, v int) []int {
	return slices.Insert(slices.Clone(s), at, v)
}
