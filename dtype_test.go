package ndarray

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDtype(t *testing.T) {
	cases := []struct {
		in        string
		name      string
		supported bool
	}{
		{"<i8", "int64", true},
		{">i4", "int32", true},
		{"<f8", "float64", true},
		{"<f4", "float32", true},
		{"|b1", "bool", true},
		{"|u1", "uint8", true},
		{"<u2", "uint16", false},
		{"<c16", "complex128", false},
		{"<M8[ns]", "datetime64", false},
		{"&lt;f8", "float64", true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			dt, err := ParseDtype(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.name, dt.Name())
			assert.Equal(t, c.supported, dt.Supported())
		})
	}

	dt, err := ParseDtype("<M8[ns]")
	require.NoError(t, err)
	assert.Equal(t, "[ns]", dt.Units)
	assert.Equal(t, "<M8[ns]", dt.String())

	for _, bad := range []string{"<i", "xi8", "<z8", "<ifoo"} {
		_, err := ParseDtype(bad)
		assert.Error(t, err, bad)
	}
}

func TestDtypeOf(t *testing.T) {
	assert.Equal(t, "<i8", DtypeOf[int64]().String())
	assert.Equal(t, "<i4", DtypeOf[int32]().String())
	assert.Equal(t, "<f8", DtypeOf[float64]().String())
	assert.Equal(t, "<f4", DtypeOf[float32]().String())
	assert.Equal(t, "|b1", DtypeOf[bool]().String())
	assert.Equal(t, "|u1", DtypeOf[uint8]().String())

	be, err := ParseDtype(">f8")
	require.NoError(t, err)
	assert.True(t, be.Equivalent(DtypeOf[float64]()))
	assert.False(t, be.Equivalent(DtypeOf[float32]()))
}

func TestDtypeJSON(t *testing.T) {
	data, err := DtypeOf[int64]().MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"<i8"`, string(data))

	// the default encoder escapes '<'; decoding still round-trips
	escaped, err := json.Marshal(DtypeOf[int64]())
	require.NoError(t, err)
	var back Dtype
	require.NoError(t, json.Unmarshal(escaped, &back))
	assert.Equal(t, DtypeOf[int64](), back)

	var dt Dtype
	require.NoError(t, json.Unmarshal([]byte(`"<f4"`), &dt))
	assert.Equal(t, DtypeOf[float32](), dt)

	assert.Error(t, json.Unmarshal([]byte(`4`), &dt))
}
