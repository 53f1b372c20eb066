package zarr

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	ndarray "github.com/qri-io/ndarray-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grid(t *testing.T) *ndarray.Array[int64] {
	t.Helper()
	a, err := ndarray.Arange[int64](1, 13, 1)
	require.NoError(t, err)
	a, err = a.Reshape(3, 4)
	require.NoError(t, err)
	return a
}

func TestSaveLoadChunked(t *testing.T) {
	s := NewMemoryStore()
	a := grid(t)

	z, err := Save(s, "foo/bar", a, SaveOptions{Chunks: []int{2, 3}})
	require.NoError(t, err)
	assert.Equal(t, `<zarr.Array "foo/bar" (3, 4) int64>`, z.Info())

	keys, err := s.Keys("foo/bar/")
	require.NoError(t, err)
	assert.Equal(t, []string{"foo/bar/.zarray", "foo/bar/0.0", "foo/bar/0.1", "foo/bar/1.0", "foo/bar/1.1"}, keys)

	got, err := Load[int64](s, "foo/bar")
	require.NoError(t, err)
	assert.True(t, ndarray.ArrayEqual(a, got), got.String())

	// edge chunks are padded to the full chunk shape
	rc, err := s.Get("foo/bar/1.1")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Len(t, data, 2*3*8)
}

func TestSaveCompressed(t *testing.T) {
	a, err := ndarray.Linspace(0, 1, 50)
	require.NoError(t, err)

	for _, id := range []string{CodecZstd, CodecGzip} {
		t.Run(id, func(t *testing.T) {
			comp, err := ParseCompressor(id)
			require.NoError(t, err)

			s := NewMemoryStore()
			_, err = Save(s, "lin", a, SaveOptions{Chunks: []int{16}, Compressor: comp})
			require.NoError(t, err)

			z, err := Open(s, "lin", ModeRead)
			require.NoError(t, err)
			assert.Equal(t, id, z.Meta().Compressor.ID)

			got, err := Read[float64](z)
			require.NoError(t, err)
			assert.True(t, ndarray.ArrayEqual(a, got))
		})
	}

	_, err = ParseCompressor("blosc")
	assert.ErrorIs(t, err, ErrUnsupported)
	none, err := ParseCompressor("none")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir)
	require.NoError(t, err)

	a := ndarray.Vector[float32](1.5, 2.5, -3)
	_, err = Save(s, "data/arr", a, SaveOptions{Attributes: Attributes{"units": "m"}})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "data", "arr", "0"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "data", "arr", ".zattrs"))
	require.NoError(t, err)

	keys, err := s.Keys("data/")
	require.NoError(t, err)
	assert.Equal(t, []string{"data/arr/.zarray", "data/arr/.zattrs", "data/arr/0"}, keys)

	z, err := Open(s, "data/arr", ModeReadWrite)
	require.NoError(t, err)
	v, err := z.ReadAll()
	require.NoError(t, err)
	got, ok := v.(*ndarray.Array[float32])
	require.True(t, ok)
	assert.Equal(t, []float32{1.5, 2.5, -3}, got.Values())

	attrs, err := z.Attributes()
	require.NoError(t, err)
	assert.Equal(t, "m", attrs["units"])

	_, err = s.Get("data/missing")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, s.Delete("data/missing"))
}

func TestColumnMajorChunks(t *testing.T) {
	s := NewMemoryStore()
	a, err := ndarray.FromNested[int32]([][]int{{1, 2}, {3, 4}})
	require.NoError(t, err)

	meta := NewArrayMeta[int32](a.Shape(), nil, nil)
	meta.Order = OrderF
	z, err := Create(s, "f", meta, ModeWrite)
	require.NoError(t, err)
	require.NoError(t, Write(z, a))

	rc, err := s.Get("f/0.0")
	require.NoError(t, err)
	raw := make([]int32, 4)
	require.NoError(t, binary.Read(rc, binary.LittleEndian, raw))
	assert.Equal(t, []int32{1, 3, 2, 4}, raw)

	got, err := Load[int32](s, "f")
	require.NoError(t, err)
	assert.True(t, ndarray.ArrayEqual(a, got))
}

func TestBigEndianChunks(t *testing.T) {
	s := NewMemoryStore()
	meta := `{"zarr_format": 2, "shape": [3], "chunks": [3], "dtype": ">i4", "compressor": null, "fill_value": 0, "order": "C", "filters": null}`
	require.NoError(t, s.Put("be/.zarray", bytes.NewBufferString(meta)))

	buf := &bytes.Buffer{}
	require.NoError(t, binary.Write(buf, binary.BigEndian, []int32{7, -8, 9}))
	require.NoError(t, s.Put("be/0", buf))

	got, err := Load[int32](s, "be")
	require.NoError(t, err)
	assert.Equal(t, []int32{7, -8, 9}, got.Values())
}

func TestMissingChunksReadFillValue(t *testing.T) {
	s := NewMemoryStore()
	meta := NewArrayMeta[float64]([]int{4}, []int{2}, nil)
	meta.FillValue = FillValueNaN
	z, err := Create(s, "sparse", meta, ModeWriteFail)
	require.NoError(t, err)

	got, err := Read[float64](z)
	require.NoError(t, err)
	for _, v := range got.Values() {
		assert.True(t, math.IsNaN(v))
	}

	require.NoError(t, Write(z, ndarray.Vector(1.0, 2.0, 3.0, 4.0)))
	require.NoError(t, s.Delete("sparse/1"))
	got, err = Read[float64](z)
	require.NoError(t, err)
	vals := got.Values()
	assert.Equal(t, []float64{1, 2}, vals[:2])
	assert.True(t, math.IsNaN(vals[2]))
}

func TestScalarArray(t *testing.T) {
	s := NewMemoryStore()
	_, err := Save(s, "answer", ndarray.Scalar[int64](42), SaveOptions{})
	require.NoError(t, err)

	keys, err := s.Keys("answer/")
	require.NoError(t, err)
	assert.Equal(t, []string{"answer/.zarray", "answer/0"}, keys)

	got, err := Load[int64](s, "answer")
	require.NoError(t, err)
	assert.Equal(t, 0, got.NDim())
	v, err := got.Item()
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
}

func TestMetadataKeepsByteOrderMarks(t *testing.T) {
	s := NewMemoryStore()
	_, err := Save(s, "a", ndarray.Vector[int64](1, 2), SaveOptions{})
	require.NoError(t, err)
	_, err = Save(s, "b", ndarray.Vector[float32](1, 2), SaveOptions{})
	require.NoError(t, err)
	_, err = Consolidate(s, "")
	require.NoError(t, err)

	for key, want := range map[string]string{
		"a/.zarray":  `"dtype": "<i8"`,
		"b/.zarray":  `"dtype": "<f4"`,
		".zmetadata": `"dtype": "<i8"`,
	} {
		rc, err := s.Get(key)
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		assert.Contains(t, string(data), want, key)
		assert.NotContains(t, string(data), `\u003c`, key)
	}
}

func TestBoolArray(t *testing.T) {
	s := NewMemoryStore()
	a := ndarray.Vector(true, false, true)
	_, err := Save(s, "mask", a, SaveOptions{Chunks: []int{2}})
	require.NoError(t, err)

	got, err := Load[bool](s, "mask")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, got.Values())
}

func TestPersistenceModes(t *testing.T) {
	s := NewMemoryStore()
	a := ndarray.Vector[int64](1, 2, 3, 4)
	_, err := Save(s, "arr", a, SaveOptions{Chunks: []int{1}})
	require.NoError(t, err)

	_, err = Save(s, "arr", a, SaveOptions{Mode: ModeWriteFail})
	assert.ErrorIs(t, err, ErrExists)

	_, err = Save(s, "other", a, SaveOptions{Mode: ModeReadWrite})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Save(s, "arr", a, SaveOptions{Mode: ModeRead})
	assert.ErrorIs(t, err, ErrReadOnly)

	_, err = Open(s, "arr", ModeWrite)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = Open(s, "missing", ModeRead)
	assert.ErrorIs(t, err, ErrNotFound)

	z, err := Open(s, "arr", ModeRead)
	require.NoError(t, err)
	assert.ErrorIs(t, Write(z, a), ErrReadOnly)
	assert.ErrorIs(t, z.SetAttributes(Attributes{"a": 1}), ErrReadOnly)

	// overwriting replaces stale chunks
	_, err = Save(s, "arr", ndarray.Vector[int64](9, 9), SaveOptions{Chunks: []int{1}})
	require.NoError(t, err)
	keys, err := s.Keys("arr/")
	require.NoError(t, err)
	assert.Equal(t, []string{"arr/.zarray", "arr/0", "arr/1"}, keys)

	// appending mode reuses an existing array
	z, err = Open(s, "arr", ModeReadWriteCreate)
	require.NoError(t, err)
	require.NoError(t, Write(z, ndarray.Vector[int64](5, 6)))
	got, err := Read[int64](z)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 6}, got.Values())
}

func TestReadWriteMismatch(t *testing.T) {
	s := NewMemoryStore()
	z, err := Save(s, "ints", ndarray.Vector[int64](1, 2), SaveOptions{})
	require.NoError(t, err)

	_, err = Load[float64](s, "ints")
	assert.ErrorIs(t, err, ndarray.ErrDtypeMismatch)

	err = Write(z, ndarray.Vector[int64](1, 2, 3))
	assert.ErrorIs(t, err, ndarray.ErrShapeMismatch)
}

func TestPath(t *testing.T) {
	p, err := NewPath(`\foo//bar/`)
	require.NoError(t, err)
	assert.Equal(t, "foo/bar", p.String())

	root, err := NewPath("/")
	require.NoError(t, err)
	assert.Equal(t, "", root.String())
	assert.Equal(t, ".zgroup", root.Join(".zgroup").String())

	_, err = NewPath("foo/../bar")
	assert.ErrorIs(t, err, ErrInvalidPath)

	base := make(Path, 1, 4)
	base[0] = "a"
	x := base.Join("x")
	y := base.Join("y")
	assert.Equal(t, "a/x", x.String())
	assert.Equal(t, "a/y", y.String())
}

func TestProjections(t *testing.T) {
	ps := projections([]int{5}, []int{2})
	require.Len(t, ps, 3)
	assert.Equal(t, []int{2}, ps[2].ChunkCoords)
	assert.Equal(t, "4:5", ps[2].OutSelection[0].String())
	assert.Equal(t, "0:1", ps[2].ChunkSelection[0].String())

	ps = projections([]int{3, 4}, []int{2, 3})
	require.Len(t, ps, 4)
	assert.Equal(t, []int{0, 1}, ps[1].ChunkCoords)
	assert.Equal(t, []int{1, 0}, ps[2].ChunkCoords)

	assert.Len(t, projections([]int{0, 3}, []int{1, 3}), 0)
	assert.Len(t, projections([]int{}, []int{}), 1)

	assert.Equal(t, "1.0.2", chunkKey([]int{1, 0, 2}, "."))
	assert.Equal(t, "1/0", chunkKey([]int{1, 0}, "/"))
	assert.Equal(t, "0", chunkKey(nil, "."))
}
