package ndarray

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Element is the set of Go types an Array can hold.
type Element interface {
	bool | uint8 | int32 | int64 | float32 | float64
}

// Number is the subset of Element that supports arithmetic and ordering.
type Number interface {
	uint8 | int32 | int64 | float32 | float64
}

// Dtype describes an element type as a NumPy array protocol type string
// (typestr). The format consists of 3 parts:
//   - One character describing the byteorder of the data:
//     "<": little-endian; ">": big-endian; "|": not-relevant
//   - One character code giving the basic type of the array:
//     "b" boolean, "i" integer, "u" unsigned integer, "f" floating point,
//     "c" complex, "m" timedelta, "M" datetime, "S" string,
//     "U" unicode, "V" other
//   - An integer specifying the number of bytes the type uses.
//
// Only boolean, integer, unsigned and floating point types can back an
// Array; the rest parse so that foreign metadata can still be described.
type Dtype struct {
	ByteOrder ByteOrder
	BasicType BasicType
	ByteSize  int
	Units     string
}

var (
	_ json.Unmarshaler = (*Dtype)(nil)
	_ json.Marshaler   = (*Dtype)(nil)
)

// DtypeOf returns the Dtype for the Go element type T. Multi-byte types are
// little-endian.
func DtypeOf[T Element]() Dtype {
	var zero T
	switch any(zero).(type) {
	case bool:
		return Dtype{ByteOrder: BONotRelevant, BasicType: BTBoolean, ByteSize: 1}
	case uint8:
		return Dtype{ByteOrder: BONotRelevant, BasicType: BTUnsigned, ByteSize: 1}
	case int32:
		return Dtype{ByteOrder: BOLittleEndian, BasicType: BTInteger, ByteSize: 4}
	case int64:
		return Dtype{ByteOrder: BOLittleEndian, BasicType: BTInteger, ByteSize: 8}
	case float32:
		return Dtype{ByteOrder: BOLittleEndian, BasicType: BTFloatingPoint, ByteSize: 4}
	default:
		return Dtype{ByteOrder: BOLittleEndian, BasicType: BTFloatingPoint, ByteSize: 8}
	}
}

func ParseDtype(s string) (dt Dtype, err error) {
	// bug in python implementation uses HTML escape sequences when serializaing JSON
	s = strings.Replace(s, "&lt;", "<", 1)
	s = strings.Replace(s, "&gt;", ">", 1)

	if len(s) < 3 {
		return dt, fmt.Errorf("invalid Dtype string. %q is too short", s)
	}

	boByte, s := s[0], s[1:]
	dt.ByteOrder, err = ParseByteOrder(rune(boByte))
	if err != nil {
		return dt, err
	}

	typeByte, s := s[0], s[1:]
	dt.BasicType, err = ParseBasicType(rune(typeByte))
	if err != nil {
		return dt, err
	}

	sizeStr, unitStr := s, ""
	if i := strings.IndexByte(s, '['); i >= 0 {
		sizeStr, unitStr = s[:i], s[i:]
	}

	size, err := strconv.ParseInt(sizeStr, 10, 0)
	if err != nil {
		return dt, err
	}
	dt.ByteSize = int(size)
	dt.Units = unitStr

	return dt, nil
}

func (dt Dtype) String() string {
	s := fmt.Sprintf("%s%s%d", string(dt.ByteOrder), string(dt.BasicType), dt.ByteSize)
	if dt.Units != "" {
		s += dt.Units
	}
	return s
}

// Name returns the NumPy name of the type, eg. "int64" or "bool".
func (dt Dtype) Name() string {
	bits := strconv.Itoa(dt.ByteSize * 8)
	switch dt.BasicType {
	case BTBoolean:
		return "bool"
	case BTInteger, BTUnsigned, BTFloatingPoint, BTComplex:
		return dt.BasicType.Human() + bits
	default:
		return dt.BasicType.Human()
	}
}

// Supported reports whether arrays of this dtype can be materialized.
func (dt Dtype) Supported() bool {
	switch dt.BasicType {
	case BTBoolean:
		return dt.ByteSize == 1
	case BTUnsigned:
		return dt.ByteSize == 1
	case BTInteger, BTFloatingPoint:
		return dt.ByteSize == 4 || dt.ByteSize == 8
	}
	return false
}

// Equivalent compares the basic type and size, ignoring byte order.
func (dt Dtype) Equivalent(other Dtype) bool {
	return dt.BasicType == other.BasicType && dt.ByteSize == other.ByteSize
}

func (dt Dtype) MarshalJSON() ([]byte, error) {
	return []byte(`"` + dt.String() + `"`), nil
}

func (dt *Dtype) UnmarshalJSON(d []byte) error {
	var s string
	if err := json.Unmarshal(d, &s); err != nil {
		return err
	}
	t, err := ParseDtype(s)
	if err != nil {
		return err
	}

	*dt = t
	return nil
}

type ByteOrder rune

func ParseByteOrder(r rune) (ByteOrder, error) {
	o := ByteOrder(r)
	if _, ok := byteOrders[o]; !ok {
		return o, fmt.Errorf("unsupported byte order format: %q", r)
	}
	return o, nil
}

const (
	BONotRelevant  ByteOrder = '|'
	BOLittleEndian ByteOrder = '<'
	BOBigEndian    ByteOrder = '>'
)

var byteOrders = map[ByteOrder]struct{}{
	BONotRelevant:  {},
	BOLittleEndian: {},
	BOBigEndian:    {},
}

type BasicType rune

func ParseBasicType(r rune) (BasicType, error) {
	t := BasicType(r)
	if _, ok := supportedBasicTypes[t]; !ok {
		return t, fmt.Errorf("unsupported basic type: %q", r)
	}
	return t, nil
}

func (bt BasicType) Human() string {
	return supportedBasicTypes[bt]
}

const (
	BTBoolean       BasicType = 'b'
	BTInteger       BasicType = 'i'
	BTUnsigned      BasicType = 'u'
	BTFloatingPoint BasicType = 'f'
	BTComplex       BasicType = 'c'
	BTTimedelta     BasicType = 'm'
	BTDatetime      BasicType = 'M'
	BTString        BasicType = 'S'
	BTUnicode       BasicType = 'U'
	BTOther         BasicType = 'V'
)

var supportedBasicTypes = map[BasicType]string{
	BTBoolean:       "bool",
	BTInteger:       "int",
	BTUnsigned:      "uint",
	BTFloatingPoint: "float",
	BTComplex:       "complex",
	BTTimedelta:     "timedelta64",
	BTDatetime:      "datetime64",
	BTString:        "bytes",
	BTUnicode:       "str",
	BTOther:         "void",
}

// isFloat reports whether T is a floating point type.
func isFloat[T Element]() bool {
	return DtypeOf[T]().BasicType == BTFloatingPoint
}

func fromInt64[T Element](i int64) T {
	var out T
	switch p := any(&out).(type) {
	case *bool:
		*p = i != 0
	case *uint8:
		*p = uint8(i)
	case *int32:
		*p = int32(i)
	case *int64:
		*p = i
	case *float32:
		*p = float32(i)
	case *float64:
		*p = float64(i)
	}
	return out
}

func fromFloat64[T Element](f float64) T {
	var out T
	switch p := any(&out).(type) {
	case *bool:
		*p = f != 0
	case *uint8:
		*p = uint8(f)
	case *int32:
		*p = int32(f)
	case *int64:
		*p = int64(f)
	case *float32:
		*p = float32(f)
	case *float64:
		*p = f
	}
	return out
}

func toFloat64[T Element](v T) float64 {
	switch x := any(v).(type) {
	case bool:
		if x {
			return 1
		}
		return 0
	case uint8:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	case float64:
		return x
	}
	return math.NaN()
}

// Convert converts a Go scalar of any built-in numeric or boolean
// kind to T.
func Convert[T Element](v any) (T, error) {
	var zero T
	switch x := v.(type) {
	case T:
		return x, nil
	case bool:
		if x {
			return fromInt64[T](1), nil
		}
		return fromInt64[T](0), nil
	case int:
		return fromInt64[T](int64(x)), nil
	case int8:
		return fromInt64[T](int64(x)), nil
	case int16:
		return fromInt64[T](int64(x)), nil
	case int32:
		return fromInt64[T](int64(x)), nil
	case int64:
		return fromInt64[T](x), nil
	case uint:
		return fromInt64[T](int64(x)), nil
	case uint8:
		return fromInt64[T](int64(x)), nil
	case uint16:
		return fromInt64[T](int64(x)), nil
	case uint32:
		return fromInt64[T](int64(x)), nil
	case uint64:
		return fromInt64[T](int64(x)), nil
	case float32:
		return fromFloat64[T](float64(x)), nil
	case float64:
		return fromFloat64[T](x), nil
	}
	return zero, fmt.Errorf("%w: cannot convert %T to %s", ErrInvalidArgument, v, DtypeOf[T]().Name())
}
