package ndarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnique(t *testing.T) {
	a := Vector[int64](11, 11, 12, 13, 14, 15, 16, 17, 12, 13, 11, 14, 18, 19, 20)

	plain := Unique(a, UniqueOptions{})
	assert.Equal(t, []int64{11, 12, 13, 14, 15, 16, 17, 18, 19, 20}, plain.Values.Values())
	assert.Nil(t, plain.Indices)
	assert.Nil(t, plain.Counts)

	idx := Unique(a, UniqueOptions{ReturnIndex: true})
	assert.Equal(t, []int{0, 2, 3, 4, 5, 6, 7, 12, 13, 14}, idx.Indices)
	assert.Nil(t, idx.Counts)

	counts := Unique(a, UniqueOptions{ReturnCounts: true})
	assert.Equal(t, []int{3, 2, 2, 2, 1, 1, 1, 1, 1, 1}, counts.Counts)
	assert.Nil(t, counts.Indices)

	both := Unique(a, UniqueOptions{ReturnIndex: true, ReturnCounts: true})
	require.Equal(t, both.Values.Size(), len(both.Indices))
	require.Equal(t, both.Values.Size(), len(both.Counts))
}

func TestUniqueFlattensMatrix(t *testing.T) {
	a := Must(FromNested[int64]([][]int{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}, {1, 2, 3, 4}}))
	u := Unique(a, UniqueOptions{ReturnCounts: true})
	assert.Equal(t, []int{12}, u.Values.Shape())
	assert.Equal(t, []int{2, 2, 2, 2, 1, 1, 1, 1, 1, 1, 1, 1}, u.Counts)

	empty := Unique(Vector[float64](), UniqueOptions{ReturnIndex: true})
	assert.Equal(t, 0, empty.Values.Size())
	assert.NotNil(t, empty.Indices)
}

func TestUniqueAxis(t *testing.T) {
	a := Must(FromNested[int64]([][]int{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}, {1, 2, 3, 4}}))

	rows, err := UniqueAxis(a, 0, UniqueOptions{ReturnIndex: true, ReturnCounts: true})
	require.NoError(t, err)
	assert.Equal(t, "[[ 1  2  3  4]\n [ 5  6  7  8]\n [ 9 10 11 12]]", rows.Values.String())
	assert.Equal(t, []int{0, 1, 2}, rows.Indices)
	assert.Equal(t, []int{2, 1, 1}, rows.Counts)

	m := Must(FromNested[int64]([][]int{{2, 1, 2}, {0, 5, 0}}))
	cols, err := UniqueAxis(m, 1, UniqueOptions{ReturnCounts: true})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, cols.Values.Shape())
	assert.Equal(t, "[[1 2]\n [5 0]]", cols.Values.String())
	assert.Equal(t, []int{1, 2}, cols.Counts)

	_, err = UniqueAxis(m, 3, UniqueOptions{})
	assert.ErrorIs(t, err, ErrAxisOutOfRange)
}
