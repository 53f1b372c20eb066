package zarr

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	ndarray "github.com/qri-io/ndarray-go"
)

type MetaType string

const (
	// MTAttributes stores userland metadata keyed by array name
	MTAttributes MetaType = ".zattrs"
	// MTArray is the key for storing metadata on an array store
	MTArray MetaType = ".zarray"
	// MTGroup is the key for storing group definitions on an array store
	MTGroup MetaType = ".zgroup"
	// MTMetadata is the key for composite metadata
	MTMetadata MetaType = ".zmetadata"
)

type MetaTyper interface {
	MetaType() MetaType
}

var metaTypes = map[MetaType]struct{}{
	MTAttributes: {},
	MTArray:      {},
	MTGroup:      {},
}

// KeyMetaType reports which kind of metadata a store key holds. The metadata
// name must be the last path segment of the key.
func KeyMetaType(s string) (mt MetaType, ok bool) {
	i := strings.LastIndex(s, "/")
	mt = MetaType(s[i+1:])
	_, ok = metaTypes[mt]
	return mt, ok
}

type Attributes map[string]interface{}

func (Attributes) MetaType() MetaType { return MTAttributes }

// Arrays can be organized into groups which can also contain other groups.
// A group is created by storing group metadata under the “.zgroup” key under
// some logical path. E.g., a group exists at the root of an array store if the
// “.zgroup” key exists in the store, and a group exists at logical path
// “foo/bar” if the “foo/bar/.zgroup” key exists in the store.
type Group struct {
	ZarrFormat int `json:"zarr_format"`
}

func (Group) MetaType() MetaType { return MTGroup }

// ConsolidatedMetadata gathers every metadata document below a group into a
// single “.zmetadata” key so a hierarchy can be listed with one read.
type ConsolidatedMetadata struct {
	ConsolidatedFormat int                  `json:"zarr_consolidated_format"`
	Metadata           map[string]MetaTyper `json:"metadata"`
}

type consolidatedMetaDecoder struct {
	ConsolidatedFormat int                        `json:"zarr_consolidated_format"`
	Metadata           map[string]json.RawMessage `json:"metadata"`
}

func (m *ConsolidatedMetadata) UnmarshalJSON(d []byte) error {
	cd := consolidatedMetaDecoder{}
	if err := json.Unmarshal(d, &cd); err != nil {
		return err
	}
	cm := ConsolidatedMetadata{
		ConsolidatedFormat: cd.ConsolidatedFormat,
		Metadata:           map[string]MetaTyper{},
	}

	for key, data := range cd.Metadata {
		kt, ok := KeyMetaType(key)
		if !ok {
			return fmt.Errorf("invalid consolidated metadata key: %q", key)
		}

		switch kt {
		case MTArray:
			arr := &ArrayMeta{}
			if err := json.Unmarshal(data, arr); err != nil {
				return fmt.Errorf("reading %q metadata: %w", key, err)
			}
			cm.Metadata[key] = arr
		case MTAttributes:
			attr := Attributes{}
			if err := json.Unmarshal(data, &attr); err != nil {
				return fmt.Errorf("reading %q attributes: %w", key, err)
			}
			cm.Metadata[key] = attr
		case MTGroup:
			grp := Group{}
			if err := json.Unmarshal(data, &grp); err != nil {
				return fmt.Errorf("reading %q group: %w", key, err)
			}
			cm.Metadata[key] = grp
		}
	}

	*m = cm
	return nil
}

// Arrays returns the sorted paths of every array described by m.
func (m *ConsolidatedMetadata) Arrays() []string {
	return m.paths(MTArray)
}

// Groups returns the sorted paths of every group described by m. The root
// group is "".
func (m *ConsolidatedMetadata) Groups() []string {
	return m.paths(MTGroup)
}

func (m *ConsolidatedMetadata) paths(mt MetaType) []string {
	out := []string{}
	for key := range m.Metadata {
		if kt, _ := KeyMetaType(key); kt == mt {
			out = append(out, strings.TrimSuffix(strings.TrimSuffix(key, string(mt)), "/"))
		}
	}
	sort.Strings(out)
	return out
}

// Array returns the metadata of the array at path, if m describes one.
func (m *ConsolidatedMetadata) Array(path string) (*ArrayMeta, bool) {
	p, err := NewPath(path)
	if err != nil {
		return nil, false
	}
	am, ok := m.Metadata[p.Join(string(MTArray)).String()].(*ArrayMeta)
	return am, ok
}

// Each array requires essential configuration metadata to be stored,
// enabling correct interpretation of the stored data.
// This metadata is encoded using JSON and stored as the value of the
// “.zarray” key within an array store.
type ArrayMeta struct {
	// An integer defining the version of the storage specification to which
	// the array store adheres.
	ZarrFormat int `json:"zarr_format"`
	// A list of integers defining the length of each dimension of the array.
	Shape []int `json:"shape"`
	// A list of integers defining the length of each dimension of a chunk of the
	// array. Note that all chunks within a Zarr array have the same shape.
	Chunks []int `json:"chunks"`
	// The element type as a NumPy typestr.
	Dtype ndarray.Dtype `json:"dtype"`
	// A JSON object identifying the primary compression codec and providing
	// configuration parameters, or null if no compressor is to be used. The
	// object MUST contain an "id" key identifying the codec to be used.
	Compressor *CompressionMeta `json:"compressor"`

	// A scalar value providing the default value to use for uninitialized
	// portions of the array, or null if no fill_value is to be used.
	FillValue interface{} `json:"fill_value"`
	// Either “C” or “F”, defining the layout of bytes within each chunk of the
	// array. “C” means row-major order, i.e., the last dimension varies fastest;
	// “F” means column-major order, i.e., the first dimension varies fastest.
	Order string `json:"order"`
	// A list of JSON objects providing codec configurations, or null if no
	// filters are to be applied. Each codec configuration object MUST contain a
	// "id" key identifying the codec to be used.
	Filters []Filter `json:"filters"`

	// optional fields

	// If present, either the string "." or "/"" definining the separator placed
	// between the dimensions of a chunk. If the value is not set, then the
	// default MUST be assumed to be ".", leading to chunk keys of the form “0.0”.
	DimensionSeparator string `json:"dimension_separator,omitempty"`
}

func (a ArrayMeta) MetaType() MetaType { return MTArray }

// Validate checks that m describes an array this package can read or write.
func (m *ArrayMeta) Validate() error {
	if m.ZarrFormat != Version {
		return fmt.Errorf("%w: zarr_format %d", ErrInvalidMetadata, m.ZarrFormat)
	}
	if len(m.Chunks) != len(m.Shape) {
		return fmt.Errorf("%w: chunks %v do not match shape %v", ErrInvalidMetadata, m.Chunks, m.Shape)
	}
	for i, c := range m.Chunks {
		if c < 1 || m.Shape[i] < 0 {
			return fmt.Errorf("%w: chunks %v, shape %v", ErrInvalidMetadata, m.Chunks, m.Shape)
		}
	}
	switch m.Order {
	case OrderC, OrderF:
	default:
		return fmt.Errorf("%w: order %q", ErrInvalidMetadata, m.Order)
	}
	switch m.DimensionSeparator {
	case "", ".", "/":
	default:
		return fmt.Errorf("%w: dimension separator %q", ErrInvalidMetadata, m.DimensionSeparator)
	}
	if len(m.Filters) > 0 {
		return fmt.Errorf("%w: filter %q", ErrUnsupported, m.Filters[0].ID)
	}
	if !m.Dtype.Supported() {
		return fmt.Errorf("%w: dtype %s", ErrUnsupported, m.Dtype)
	}
	return nil
}

func (m *ArrayMeta) separator() string {
	if m.DimensionSeparator == "" {
		return "."
	}
	return m.DimensionSeparator
}

const (
	OrderC = "C"
	OrderF = "F"
)

type Filter struct {
	ID     string `json:"id"`
	Dtype  string `json:"dtype,omitempty"`
	AsType string `json:"astype,omitempty"`
}

const (
	// Not a Number
	FillValueNaN = "NaN"
	// Infinity
	FillValueInfinity = "Infinity"
	// -Infinity
	FillValueNegativeInfinity = "-Infinity"
)

// encodeFillValue returns the JSON representation of v. Non-finite floats
// are encoded as strings.
func encodeFillValue[T ndarray.Element](v T) interface{} {
	switch x := any(v).(type) {
	case float32:
		return encodeFloatFill(float64(x), v)
	case float64:
		return encodeFloatFill(x, v)
	}
	return v
}

func encodeFloatFill(f float64, v interface{}) interface{} {
	switch {
	case math.IsNaN(f):
		return FillValueNaN
	case math.IsInf(f, 1):
		return FillValueInfinity
	case math.IsInf(f, -1):
		return FillValueNegativeInfinity
	}
	return v
}

// decodeFillValue converts a fill_value read from JSON to T. A null fill
// value decodes to the zero value.
func decodeFillValue[T ndarray.Element](v interface{}) (T, error) {
	var zero T
	if v == nil {
		return zero, nil
	}
	if s, ok := v.(string); ok {
		var f float64
		switch s {
		case FillValueNaN:
			f = math.NaN()
		case FillValueInfinity:
			f = math.Inf(1)
		case FillValueNegativeInfinity:
			f = math.Inf(-1)
		default:
			return zero, fmt.Errorf("%w: fill value %q", ErrInvalidMetadata, s)
		}
		if ndarray.DtypeOf[T]().BasicType != ndarray.BTFloatingPoint {
			return zero, fmt.Errorf("%w: fill value %q for %s", ErrInvalidMetadata, s, ndarray.DtypeOf[T]().Name())
		}
		v = f
	}
	return ndarray.Convert[T](v)
}
