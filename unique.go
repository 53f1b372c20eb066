package ndarray

import (
	"cmp"
	"slices"
)

// UniqueOptions selects the companion outputs of Unique and UniqueAxis.
type UniqueOptions struct {
	// ReturnIndex requests the position of the first occurrence of each
	// unique value (or sub-array) in the input.
	ReturnIndex bool
	// ReturnCounts requests the number of occurrences of each unique value.
	ReturnCounts bool
}

// UniqueResult holds the sorted distinct values and, when requested, the
// first-occurrence indices and counts aligned index for index with them.
type UniqueResult[T Number] struct {
	Values  *Array[T]
	Indices []int
	Counts  []int
}

// Unique returns the distinct elements of the flattened array in ascending
// order.
func Unique[T Number](a *Array[T], opts UniqueOptions) UniqueResult[T] {
	vals := a.Values()
	order := make([]int, len(vals))
	for i := range order {
		order[i] = i
	}
	// stable, so the first index of every run is its first occurrence
	slices.SortStableFunc(order, func(i, j int) int { return cmp.Compare(vals[i], vals[j]) })

	res := UniqueResult[T]{}
	var out []T
	for k := 0; k < len(order); {
		end := k + 1
		for end < len(order) && cmp.Compare(vals[order[end]], vals[order[k]]) == 0 {
			end++
		}
		out = append(out, vals[order[k]])
		if opts.ReturnIndex {
			res.Indices = append(res.Indices, order[k])
		}
		if opts.ReturnCounts {
			res.Counts = append(res.Counts, end-k)
		}
		k = end
	}
	if out == nil {
		out = []T{}
	}
	res.Values = newContiguous(out, []int{len(out)})
	fillEmpty(&res, opts)
	return res
}

// UniqueAxis returns the distinct sub-arrays along axis (rows for axis 0 of
// a 2-D array, columns for axis 1) in lexicographic ascending order.
func UniqueAxis[T Number](a *Array[T], axis int, opts UniqueOptions) (UniqueResult[T], error) {
	axis, err := normalizeAxis(axis, a.NDim())
	if err != nil {
		return UniqueResult[T]{}, err
	}

	perm := []int{axis}
	for d := 0; d < a.NDim(); d++ {
		if d != axis {
			perm = append(perm, d)
		}
	}
	front, err := a.Transpose(perm...)
	if err != nil {
		return UniqueResult[T]{}, err
	}
	n := a.shape[axis]
	vals := front.Values()
	width := 0
	if n > 0 {
		width = len(vals) / n
	}
	lane := func(i int) []T { return vals[i*width : (i+1)*width] }

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(i, j int) int { return slices.Compare(lane(i), lane(j)) })

	res := UniqueResult[T]{}
	out := []T{}
	k := 0
	for start := 0; start < n; {
		end := start + 1
		for end < n && slices.Compare(lane(order[end]), lane(order[start])) == 0 {
			end++
		}
		out = append(out, lane(order[start])...)
		if opts.ReturnIndex {
			res.Indices = append(res.Indices, order[start])
		}
		if opts.ReturnCounts {
			res.Counts = append(res.Counts, end-start)
		}
		k++
		start = end
	}

	shape := front.Shape()
	shape[0] = k
	inv := make([]int, len(perm))
	for i, p := range perm {
		inv[p] = i
	}
	back, err := newContiguous(out, shape).Transpose(inv...)
	if err != nil {
		return UniqueResult[T]{}, err
	}
	res.Values = back.Copy()
	fillEmpty(&res, opts)
	return res, nil
}

// fillEmpty replaces requested-but-empty companions with empty slices.
func fillEmpty[T Number](res *UniqueResult[T], opts UniqueOptions) {
	if opts.ReturnIndex && res.Indices == nil {
		res.Indices = []int{}
	}
	if opts.ReturnCounts && res.Counts == nil {
		res.Counts = []int{}
	}
}
