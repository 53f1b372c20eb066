package zarr

import (
	"encoding/json"
	"math"
	"testing"

	ndarray "github.com/qri-io/ndarray-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// https://zarr.readthedocs.io/en/stable/spec/v2.html#metadata
const specExample = `{
  "chunks": [
    1000,
    1000
  ],
	"compressor": {
			"id": "blosc",
			"cname": "lz4",
			"clevel": 5,
			"shuffle": 1
	},
	"dtype": "<f8",
	"fill_value": "NaN",
	"filters": [
			{"id": "delta", "dtype": "<f8", "astype": "<f4"}
	],
	"order": "C",
	"shape": [
			10000,
			10000
	],
	"zarr_format": 2
}`

func TestMetadataSerialization(t *testing.T) {
	m := &ArrayMeta{}
	require.NoError(t, json.Unmarshal([]byte(specExample), m))

	assert.Equal(t, []int{1000, 1000}, m.Chunks)
	assert.Equal(t, []int{10000, 10000}, m.Shape)
	assert.Equal(t, ndarray.DtypeOf[float64](), m.Dtype)
	assert.Equal(t, &CompressionMeta{ID: "blosc", Cname: "lz4", Clevel: 5, Shuffle: 1}, m.Compressor)
	assert.Equal(t, FillValueNaN, m.FillValue)
	assert.Equal(t, []Filter{{ID: "delta", Dtype: "<f8", AsType: "<f4"}}, m.Filters)

	// filters are not applied by this package
	assert.ErrorIs(t, m.Validate(), ErrUnsupported)
	m.Filters = nil
	assert.NoError(t, m.Validate())

	data, err := json.Marshal(NewArrayMeta[int32]([]int{2, 3}, nil, nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"zarr_format":2,"shape":[2,3],"chunks":[2,3],"dtype":"<i4","compressor":null,"fill_value":0,"order":"C","filters":null}`, string(data))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(m *ArrayMeta)
	}{
		{"format", func(m *ArrayMeta) { m.ZarrFormat = 3 }},
		{"chunk rank", func(m *ArrayMeta) { m.Chunks = []int{2} }},
		{"zero chunk", func(m *ArrayMeta) { m.Chunks = []int{0, 2} }},
		{"order", func(m *ArrayMeta) { m.Order = "X" }},
		{"separator", func(m *ArrayMeta) { m.DimensionSeparator = "-" }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := NewArrayMeta[float64]([]int{4, 4}, []int{2, 2}, nil)
			c.modify(m)
			assert.ErrorIs(t, m.Validate(), ErrInvalidMetadata)
		})
	}

	m := NewArrayMeta[float64]([]int{4}, nil, nil)
	m.Dtype = ndarray.Dtype{ByteOrder: ndarray.BOLittleEndian, BasicType: ndarray.BTComplex, ByteSize: 16}
	assert.ErrorIs(t, m.Validate(), ErrUnsupported)
}

func TestFillValues(t *testing.T) {
	assert.Equal(t, FillValueNaN, encodeFillValue(math.NaN()))
	assert.Equal(t, FillValueNegativeInfinity, encodeFillValue(float32(math.Inf(-1))))
	assert.Equal(t, int64(3), encodeFillValue(int64(3)))

	f, err := decodeFillValue[float64](FillValueInfinity)
	require.NoError(t, err)
	assert.True(t, math.IsInf(f, 1))

	i, err := decodeFillValue[int64](float64(7))
	require.NoError(t, err)
	assert.Equal(t, int64(7), i)

	z, err := decodeFillValue[float32](nil)
	require.NoError(t, err)
	assert.Equal(t, float32(0), z)

	_, err = decodeFillValue[int64](FillValueNaN)
	assert.ErrorIs(t, err, ErrInvalidMetadata)
	_, err = decodeFillValue[float64]("bogus")
	assert.ErrorIs(t, err, ErrInvalidMetadata)
}

func TestKeyMetaType(t *testing.T) {
	mt, ok := KeyMetaType("foo/bar/.zarray")
	assert.True(t, ok)
	assert.Equal(t, MTArray, mt)

	mt, ok = KeyMetaType(".zgroup")
	assert.True(t, ok)
	assert.Equal(t, MTGroup, mt)

	_, ok = KeyMetaType("foo/bar/0.0")
	assert.False(t, ok)
	_, ok = KeyMetaType("foo.zarray")
	assert.False(t, ok)
	_, ok = KeyMetaType(".zmetadata")
	assert.False(t, ok)
}

func TestConsolidatedMetadata(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, CreateGroup(s, "", Attributes{"title": "demo"}))
	require.NoError(t, CreateGroup(s, "sub", nil))

	_, err := Save(s, "sub/a", ndarray.Vector[int64](1, 2, 3), SaveOptions{})
	require.NoError(t, err)
	_, err = Save(s, "b", ndarray.Vector(0.5), SaveOptions{Attributes: Attributes{"units": "s"}})
	require.NoError(t, err)

	ok, err := IsGroup(s, "sub")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = IsGroup(s, "b")
	require.NoError(t, err)
	assert.False(t, ok)

	cm, err := Consolidate(s, "")
	require.NoError(t, err)
	assert.Equal(t, 1, cm.ConsolidatedFormat)
	assert.Equal(t, []string{"b", "sub/a"}, cm.Arrays())
	assert.Equal(t, []string{"", "sub"}, cm.Groups())

	opened, err := OpenConsolidated(s, "/")
	require.NoError(t, err)
	assert.Equal(t, cm.Arrays(), opened.Arrays())

	am, ok := opened.Array("sub/a")
	require.True(t, ok)
	assert.Equal(t, []int{3}, am.Shape)
	assert.Equal(t, Attributes{"title": "demo"}, opened.Metadata[".zattrs"])
	assert.Equal(t, Attributes{"units": "s"}, opened.Metadata["b/.zattrs"])

	sub, err := Consolidate(s, "sub")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, sub.Arrays())
	assert.Equal(t, []string{""}, sub.Groups())

	attrs, err := GroupAttributes(s, "")
	require.NoError(t, err)
	assert.Equal(t, "demo", attrs["title"])

	_, err = OpenConsolidated(s, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	bad := &ConsolidatedMetadata{}
	assert.Error(t, json.Unmarshal([]byte(`{"zarr_consolidated_format":1,"metadata":{"x/0.0":{}}}`), bad))
}
