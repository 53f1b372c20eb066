package walkthrough

import (
	ndarray "github.com/qri-io/ndarray-go"
)

func indexing(d *Demo) error {
	data := ndarray.Vector[int64](1, 2, 3)
	v, err := data.At(1)
	if err != nil {
		return err
	}
	d.println(v)
	for _, ix := range []ndarray.Index{ndarray.S(0, 2), ndarray.From(1), ndarray.From(-2)} {
		s, err := data.Slice(ix)
		if err != nil {
			return err
		}
		d.println(s)
	}

	a, err := gridOf([]int{1, 2, 3, 4}, []int{5, 6, 7, 8}, []int{9, 10, 11, 12})
	if err != nil {
		return err
	}

	small, err := ndarray.Select(a, ndarray.Less(a, 5))
	if err != nil {
		return err
	}
	d.println(small)

	fiveUp := ndarray.GreaterEqual(a, 5)
	d.println(fiveUp)
	big, err := ndarray.Select(a, fiveUp)
	if err != nil {
		return err
	}
	d.println(big)

	even, err := ndarray.Select(a, ndarray.Equal(ndarray.ModScalar(a, 2), 0))
	if err != nil {
		return err
	}
	d.println(even)

	between, err := ndarray.And(ndarray.Greater(a, 2), ndarray.Less(a, 11))
	if err != nil {
		return err
	}
	c, err := ndarray.Select(a, between)
	if err != nil {
		return err
	}
	d.println(c)

	either, err := ndarray.Or(ndarray.Greater(a, 5), ndarray.Equal(a, 5))
	if err != nil {
		return err
	}
	d.println(either)

	b := ndarray.Nonzero(ndarray.Less(a, 5))
	d.println(formatIndexTuple(b))
	for _, coord := range ndarray.Coordinates(b) {
		d.println(ndarray.FormatShape(coord))
	}
	picked, err := ndarray.Take(a, b)
	if err != nil {
		return err
	}
	d.println(picked)

	notThere := ndarray.Nonzero(ndarray.Equal(a, 42))
	d.println(formatIndexTuple(notThere))
	return nil
}

func fromExisting(d *Demo) error {
	a, err := ndarray.Arange[int64](1, 11, 1)
	if err != nil {
		return err
	}
	part, err := a.Slice(ndarray.S(3, 8))
	if err != nil {
		return err
	}
	d.println(part)

	a1, err := gridOf([]int{1, 1}, []int{2, 2})
	if err != nil {
		return err
	}
	a2, err := gridOf([]int{3, 3}, []int{4, 4})
	if err != nil {
		return err
	}
	v, err := ndarray.VStack(a1, a2)
	if err != nil {
		return err
	}
	d.println(v)
	h, err := ndarray.HStack(a1, a2)
	if err != nil {
		return err
	}
	d.println(h)

	m, err := gridOf([]int{1, 2, 3, 4}, []int{5, 6, 7, 8}, []int{9, 10, 11, 12})
	if err != nil {
		return err
	}
	b, err := m.Slice(ndarray.I(0), ndarray.All())
	if err != nil {
		return err
	}
	d.println(b)
	if err := b.Set(99, 0); err != nil {
		return err
	}
	d.println(b)
	d.println(m)

	// a copy owns its data
	c := m.Copy()
	if err := c.Set(-1, 0, 0); err != nil {
		return err
	}
	first, err := m.At(0, 0)
	if err != nil {
		return err
	}
	d.println(first, c.SharesBuffer(m))
	return nil
}
