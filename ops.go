package ndarray

import (
	"fmt"
	"math"
)

// Zip applies fn elementwise to a and b after broadcasting them to a common
// shape, returning a new array.
func Zip[T, U, R Element](a *Array[T], b *Array[U], fn func(T, U) R) (*Array[R], error) {
	shape, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, err
	}
	ab, err := a.BroadcastTo(shape...)
	if err != nil {
		return nil, err
	}
	bb, err := b.BroadcastTo(shape...)
	if err != nil {
		return nil, err
	}
	av, bv := ab.Values(), bb.Values()
	out := make([]R, len(av))
	for i := range out {
		out[i] = fn(av[i], bv[i])
	}
	return newContiguous(out, shape), nil
}

// Map applies fn to every element, returning a new array of the same shape.
func Map[T, R Element](a *Array[T], fn func(T) R) *Array[R] {
	vals := a.Values()
	out := make([]R, len(vals))
	for i, v := range vals {
		out[i] = fn(v)
	}
	return newContiguous(out, a.Shape())
}

// Astype converts every element to R.
func Astype[R, T Element](a *Array[T]) *Array[R] {
	if isFloat[T]() {
		return Map(a, func(v T) R { return fromFloat64[R](toFloat64(v)) })
	}
	return Map(a, func(v T) R { return fromInt64[R](toInt64(v)) })
}

// Add returns a + b elementwise with broadcasting.
func Add[T Number](a, b *Array[T]) (*Array[T], error) {
	return Zip(a, b, func(x, y T) T { return x + y })
}

// Sub returns a - b elementwise with broadcasting.
func Sub[T Number](a, b *Array[T]) (*Array[T], error) {
	return Zip(a, b, func(x, y T) T { return x - y })
}

// Mul returns a * b elementwise with broadcasting.
func Mul[T Number](a, b *Array[T]) (*Array[T], error) {
	return Zip(a, b, func(x, y T) T { return x * y })
}

// Div returns the true quotient a / b elementwise with broadcasting. The
// result is always float64, so integer inputs do not truncate.
func Div[T Number](a, b *Array[T]) (*Array[float64], error) {
	return Zip(a, b, func(x, y T) float64 { return toFloat64(x) / toFloat64(y) })
}

// Mod returns the remainder of a / b elementwise with broadcasting. The
// result takes the sign of the divisor; an integer remainder by zero is 0.
func Mod[T Number](a, b *Array[T]) (*Array[T], error) {
	return Zip(a, b, mod[T])
}

func mod[T Number](x, y T) T {
	if isFloat[T]() {
		fx, fy := toFloat64(x), toFloat64(y)
		r := math.Mod(fx, fy)
		if r != 0 && (r < 0) != (fy < 0) {
			r += fy
		}
		return T(r)
	}
	ix, iy := toInt64(x), toInt64(y)
	if iy == 0 {
		return 0
	}
	r := ix % iy
	if r != 0 && (r < 0) != (iy < 0) {
		r += iy
	}
	return T(r)
}

// AddScalar returns a + v.
func AddScalar[T Number](a *Array[T], v T) *Array[T] {
	return Map(a, func(x T) T { return x + v })
}

// SubScalar returns a - v.
func SubScalar[T Number](a *Array[T], v T) *Array[T] {
	return Map(a, func(x T) T { return x - v })
}

// MulScalar returns a * v.
func MulScalar[T Number](a *Array[T], v T) *Array[T] {
	return Map(a, func(x T) T { return x * v })
}

// DivScalar returns the true quotient a / v.
func DivScalar[T Number](a *Array[T], v T) *Array[float64] {
	d := toFloat64(v)
	return Map(a, func(x T) float64 { return toFloat64(x) / d })
}

// ModScalar returns a % v with the sign of v.
func ModScalar[T Number](a *Array[T], v T) *Array[T] {
	return Map(a, func(x T) T { return mod(x, v) })
}

// CmpOp is an elementwise comparison operator.
type CmpOp int

const (
	Lt CmpOp = iota
	Le
	Gt
	Ge
	Eq
	Ne
)

var cmpOpSymbols = map[CmpOp]string{Lt: "<", Le: "<=", Gt: ">", Ge: ">=", Eq: "==", Ne: "!="}

func (op CmpOp) String() string {
	if s, ok := cmpOpSymbols[op]; ok {
		return s
	}
	return fmt.Sprintf("CmpOp(%d)", int(op))
}

func compare[T Number](op CmpOp) func(x, y T) bool {
	switch op {
	case Lt:
		return func(x, y T) bool { return x < y }
	case Le:
		return func(x, y T) bool { return x <= y }
	case Gt:
		return func(x, y T) bool { return x > y }
	case Ge:
		return func(x, y T) bool { return x >= y }
	case Eq:
		return func(x, y T) bool { return x == y }
	default:
		return func(x, y T) bool { return x != y }
	}
}

// Compare compares a and b elementwise with broadcasting and returns a
// boolean mask of the broadcast shape.
func Compare[T Number](a, b *Array[T], op CmpOp) (*Array[bool], error) {
	return Zip(a, b, compare[T](op))
}

// CompareScalar compares every element of a against v. The mask has a's
// shape.
func CompareScalar[T Number](a *Array[T], op CmpOp, v T) *Array[bool] {
	fn := compare[T](op)
	return Map(a, func(x T) bool { return fn(x, v) })
}

// Less returns the mask a < v.
func Less[T Number](a *Array[T], v T) *Array[bool] { return CompareScalar(a, Lt, v) }

// LessEqual returns the mask a <= v.
func LessEqual[T Number](a *Array[T], v T) *Array[bool] { return CompareScalar(a, Le, v) }

// Greater returns the mask a > v.
func Greater[T Number](a *Array[T], v T) *Array[bool] { return CompareScalar(a, Gt, v) }

// GreaterEqual returns the mask a >= v.
func GreaterEqual[T Number](a *Array[T], v T) *Array[bool] { return CompareScalar(a, Ge, v) }

// Equal returns the mask a == v.
func Equal[T Number](a *Array[T], v T) *Array[bool] { return CompareScalar(a, Eq, v) }

// NotEqual returns the mask a != v.
func NotEqual[T Number](a *Array[T], v T) *Array[bool] { return CompareScalar(a, Ne, v) }

// And combines two masks with logical AND, broadcasting.
func And(a, b *Array[bool]) (*Array[bool], error) {
	return Zip(a, b, func(x, y bool) bool { return x && y })
}

// Or combines two masks with logical OR, broadcasting.
func Or(a, b *Array[bool]) (*Array[bool], error) {
	return Zip(a, b, func(x, y bool) bool { return x || y })
}

// Xor combines two masks with logical exclusive OR, broadcasting.
func Xor(a, b *Array[bool]) (*Array[bool], error) {
	return Zip(a, b, func(x, y bool) bool { return x != y })
}

// Not inverts a mask.
func Not(a *Array[bool]) *Array[bool] {
	return Map(a, func(x bool) bool { return !x })
}

// ArrayEqual reports whether a and b have the same shape and elements.
func ArrayEqual[T Element](a, b *Array[T]) bool {
	if !equalShapes(a.shape, b.shape) {
		return false
	}
	av, bv := a.Values(), b.Values()
	for i := range av {
		if av[i] != bv[i] {
			return false
		}
	}
	return true
}

// AllClose reports whether a and b broadcast together and every pair of
// elements satisfies |a-b| <= atol + rtol*|b|.
func AllClose[T Number](a, b *Array[T], rtol, atol float64) bool {
	near, err := Zip(a, b, func(x, y T) bool {
		fx, fy := toFloat64(x), toFloat64(y)
		return math.Abs(fx-fy) <= atol+rtol*math.Abs(fy)
	})
	if err != nil {
		return false
	}
	for _, ok := range near.data {
		if !ok {
			return false
		}
	}
	return true
}
