package walkthrough

import (
	ndarray "github.com/qri-io/ndarray-go"
)

func operations(d *Demo) error {
	data := ndarray.Vector[int64](1, 2)
	ones, err := ndarray.Ones[int64](2)
	if err != nil {
		return err
	}

	sum, err := ndarray.Add(data, ones)
	if err != nil {
		return err
	}
	d.println(sum)
	diff, err := ndarray.Sub(data, ones)
	if err != nil {
		return err
	}
	d.println(diff)
	prod, err := ndarray.Mul(data, data)
	if err != nil {
		return err
	}
	d.println(prod)
	quot, err := ndarray.Div(data, data)
	if err != nil {
		return err
	}
	d.println(quot)

	d.println(ndarray.Sum(ndarray.Vector[int64](1, 2, 3, 4)))

	b, err := gridOf([]int{1, 1}, []int{2, 2})
	if err != nil {
		return err
	}
	for axis := 0; axis < 2; axis++ {
		s, err := ndarray.SumAxis(b, axis)
		if err != nil {
			return err
		}
		d.println(s)
	}
	return nil
}

func broadcasting(d *Demo) error {
	data := ndarray.Vector(1.0, 2.0)
	d.println(ndarray.MulScalar(data, 1.6))

	m, err := gridOf([]int{1, 2}, []int{3, 4}, []int{5, 6})
	if err != nil {
		return err
	}
	row := ndarray.Vector[int64](1, 1)
	shifted, err := ndarray.Add(m, row)
	if err != nil {
		return err
	}
	d.println(shifted)

	col, err := gridOf([]int{10}, []int{20}, []int{30})
	if err != nil {
		return err
	}
	scaled, err := ndarray.Mul(m, col)
	if err != nil {
		return err
	}
	d.println(scaled)

	// trailing axes of length 2 and 3 are incompatible
	if _, err := ndarray.Add(m, ndarray.Vector[int64](1, 2, 3)); err != nil {
		d.println(err)
	}
	return nil
}

func aggregation(d *Demo) error {
	a := ndarray.Vector[int64](1, 2, 3, 4)
	mx, err := ndarray.Max(a)
	if err != nil {
		return err
	}
	mn, err := ndarray.Min(a)
	if err != nil {
		return err
	}
	d.println(mx, mn, ndarray.Sum(a), ndarray.Prod(a), ndarray.Mean(a))

	f, err := ndarray.FromNested[float64]([][]float64{
		{0.45053314, 0.17296777, 0.34376245, 0.5510652},
		{0.54627315, 0.05093587, 0.40067661, 0.55645993},
		{0.12697628, 0.82485143, 0.26590556, 0.56917101},
	})
	if err != nil {
		return err
	}
	d.println(ndarray.Vector(ndarray.Sum(f)))
	fmin, err := ndarray.Min(f)
	if err != nil {
		return err
	}
	d.println(ndarray.Vector(fmin))

	colMin, err := ndarray.MinAxis(f, 0)
	if err != nil {
		return err
	}
	d.println(colMin)
	rowMax, err := ndarray.MaxAxis(f, 1)
	if err != nil {
		return err
	}
	d.println(rowMax)

	mean, err := ndarray.MeanAxis(f, 0)
	if err != nil {
		return err
	}
	d.println(mean)
	d.println(ndarray.Vector(ndarray.Std(f)))
	return nil
}

func random(d *Demo) error {
	r, err := ndarray.Random(d.src, 3, 2)
	if err != nil {
		return err
	}
	d.println(ndarray.FormatShape(r.Shape()))
	d.println(r)

	ints, err := ndarray.RandomIntegers(d.src, 0, 5, 2, 4)
	if err != nil {
		return err
	}
	d.println(ints)
	return nil
}

func intsVector(v []int) *ndarray.Array[int64] {
	out := make([]int64, len(v))
	for i, x := range v {
		out[i] = int64(x)
	}
	return ndarray.Vector(out...)
}

func unique(d *Demo) error {
	a := ndarray.Vector[int64](11, 11, 12, 13, 14, 15, 16, 17, 12, 13, 11, 14, 18, 19, 20)
	d.println(ndarray.Unique(a, ndarray.UniqueOptions{}).Values)

	withIndex := ndarray.Unique(a, ndarray.UniqueOptions{ReturnIndex: true})
	d.println(intsVector(withIndex.Indices))

	withCounts := ndarray.Unique(a, ndarray.UniqueOptions{ReturnCounts: true})
	d.println(intsVector(withCounts.Counts))

	m, err := gridOf([]int{1, 2, 3, 4}, []int{5, 6, 7, 8}, []int{9, 10, 11, 12}, []int{1, 2, 3, 4})
	if err != nil {
		return err
	}
	d.println(ndarray.Unique(m, ndarray.UniqueOptions{}).Values)

	rows, err := ndarray.UniqueAxis(m, 0, ndarray.UniqueOptions{ReturnIndex: true, ReturnCounts: true})
	if err != nil {
		return err
	}
	d.println(rows.Values)
	d.println(intsVector(rows.Indices))
	d.println(intsVector(rows.Counts))
	return nil
}

func transform(d *Demo) error {
	r, err := ndarray.Arange[int64](1, 7, 1)
	if err != nil {
		return err
	}
	data, err := r.Reshape(2, 3)
	if err != nil {
		return err
	}
	d.println(data)
	tall, err := data.Reshape(3, -1)
	if err != nil {
		return err
	}
	d.println(tall)

	t, err := data.Transpose()
	if err != nil {
		return err
	}
	d.println(t)

	seq, err := ndarray.Arange[int64](1, 9, 1)
	if err != nil {
		return err
	}
	rev, err := seq.Flip()
	if err != nil {
		return err
	}
	d.println(rev)

	m, err := gridOf([]int{1, 2, 3, 4}, []int{5, 6, 7, 8}, []int{9, 10, 11, 12})
	if err != nil {
		return err
	}
	for _, axes := range [][]int{nil, {0}, {1}} {
		f, err := m.Flip(axes...)
		if err != nil {
			return err
		}
		d.println(f)
	}

	// reverse the second row in place
	second, err := m.Slice(ndarray.I(1))
	if err != nil {
		return err
	}
	flipped, err := second.Flip()
	if err != nil {
		return err
	}
	if err := second.Assign(flipped.Copy()); err != nil {
		return err
	}
	d.println(m)

	x, err := gridOf([]int{1, 2, 3, 4}, []int{5, 6, 7, 8}, []int{9, 10, 11, 12})
	if err != nil {
		return err
	}
	flat := x.Flatten()
	d.println(flat)
	if err := flat.Set(99, 0); err != nil {
		return err
	}
	d.println(x)
	d.println(flat)

	view := x.Ravel()
	if err := view.Set(98, 0); err != nil {
		return err
	}
	d.println(x)
	d.println(view)
	return nil
}
