package walkthrough

import (
	ndarray "github.com/qri-io/ndarray-go"
)

func gridOf(rows ...[]int) (*ndarray.Array[int64], error) {
	return ndarray.FromNested[int64](rows)
}

func readingExample(d *Demo) error {
	a, err := gridOf([]int{1, 2, 3}, []int{4, 5, 6})
	if err != nil {
		return err
	}
	d.println(ndarray.FormatShape(a.Shape()))
	return nil
}

func fundamentals(d *Demo) error {
	a := ndarray.Vector[int64](1, 2, 3, 4, 5, 6)
	d.println(a)

	first, err := a.At(0)
	if err != nil {
		return err
	}
	d.println(first)

	// arrays are mutable
	if err := a.Set(10, 0); err != nil {
		return err
	}
	d.println(a)

	head, err := a.Slice(ndarray.To(3))
	if err != nil {
		return err
	}
	d.println(head)

	// a slice is a view: writing through it changes a
	b, err := a.Slice(ndarray.From(3))
	if err != nil {
		return err
	}
	d.println(b)
	if err := b.Set(40, 0); err != nil {
		return err
	}
	d.println(a)

	m, err := gridOf([]int{1, 2, 3, 4}, []int{5, 6, 7, 8}, []int{9, 10, 11, 12})
	if err != nil {
		return err
	}
	d.println(m)

	v, err := m.At(1, 3)
	if err != nil {
		return err
	}
	d.println(v)
	return nil
}

func attributes(d *Demo) error {
	a, err := gridOf([]int{1, 2, 3, 4}, []int{5, 6, 7, 8}, []int{9, 10, 11, 12})
	if err != nil {
		return err
	}
	d.println(a.NDim())
	d.println(ndarray.FormatShape(a.Shape()))
	d.println(a.NDim() == len(a.Shape()))

	prod := 1
	for _, n := range a.Shape() {
		prod *= n
	}
	d.println(a.Size())
	d.println(a.Size() == prod)
	d.println(a.Dtype().Name())
	return nil
}

func creation(d *Demo) error {
	zeros, err := ndarray.Zeros[float64](2)
	if err != nil {
		return err
	}
	d.println(zeros)

	ones, err := ndarray.Ones[float64](2)
	if err != nil {
		return err
	}
	d.println(ones)

	// contents of an empty array are unspecified until written
	empty, err := ndarray.Empty[float64](2)
	if err != nil {
		return err
	}
	empty.Fill(3.14)
	d.println(empty)

	r, err := ndarray.Arange[int64](0, 4, 1)
	if err != nil {
		return err
	}
	d.println(r)

	stepped, err := ndarray.Arange[int64](2, 9, 2)
	if err != nil {
		return err
	}
	d.println(stepped)

	lin, err := ndarray.Linspace(0, 10, 5)
	if err != nil {
		return err
	}
	d.println(lin)

	intOnes, err := ndarray.Ones[int64](2)
	if err != nil {
		return err
	}
	d.println(intOnes)
	return nil
}

func sorting(d *Demo) error {
	d.println(ndarray.Sort(ndarray.Vector[int64](2, 1, 5, 3, 7, 4, 6, 8)))

	a := ndarray.Vector[int64](1, 2, 3, 4)
	b := ndarray.Vector[int64](5, 6, 7, 8)
	joined, err := ndarray.Concatenate(0, a, b)
	if err != nil {
		return err
	}
	d.println(joined)

	x, err := gridOf([]int{1, 2}, []int{3, 4})
	if err != nil {
		return err
	}
	d.println(x.NDim())
	d.println(ndarray.FormatShape(x.Shape()))

	y, err := gridOf([]int{5, 6})
	if err != nil {
		return err
	}
	d.println(y.NDim())
	d.println(ndarray.FormatShape(y.Shape()))

	rows, err := ndarray.Concatenate(0, x, y)
	if err != nil {
		return err
	}
	d.println(rows)

	col, err := gridOf([]int{5}, []int{6})
	if err != nil {
		return err
	}
	cols, err := ndarray.Concatenate(1, x, col)
	if err != nil {
		return err
	}
	d.println(cols)
	return nil
}

func shapeAndSize(d *Demo) error {
	a, err := ndarray.FromNested[int64]([][][]int{
		{{0, 1, 2, 3}, {4, 5, 6, 7}},
		{{0, 1, 2, 3}, {4, 5, 6, 7}},
		{{0, 1, 2, 3}, {4, 5, 6, 7}},
	})
	if err != nil {
		return err
	}
	d.println(a.NDim())
	d.println(a.Size())
	d.println(ndarray.FormatShape(a.Shape()))
	return nil
}

func newAxis(d *Demo) error {
	a := ndarray.Vector[int64](1, 2, 3, 4, 5, 6)
	d.println(ndarray.FormatShape(a.Shape()))

	row, err := a.Slice(ndarray.NewAxis, ndarray.All())
	if err != nil {
		return err
	}
	d.println(ndarray.FormatShape(row.Shape()))
	d.println(row)

	col, err := a.Slice(ndarray.All(), ndarray.NewAxis)
	if err != nil {
		return err
	}
	d.println(ndarray.FormatShape(col.Shape()))
	d.println(col)

	b, err := a.ExpandDims(1)
	if err != nil {
		return err
	}
	d.println(ndarray.FormatShape(b.Shape()))
	d.println(b)

	c, err := a.ExpandDims(0)
	if err != nil {
		return err
	}
	d.println(ndarray.FormatShape(c.Shape()))
	d.println(c)
	return nil
}
