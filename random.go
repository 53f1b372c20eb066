package ndarray

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// NewSource returns a deterministic random source for Random.
func NewSource(seed uint64) rand.Source {
	return rand.NewSource(seed)
}

// Random returns an array of the given shape filled with samples from the
// uniform distribution over [0, 1). A nil src draws from a time-seeded
// source.
func Random(src rand.Source, shape ...int) (*Array[float64], error) {
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	a, err := Zeros[float64](shape...)
	if err != nil {
		return nil, err
	}
	u := distuv.Uniform{Min: 0, Max: 1, Src: src}
	for i := range a.data {
		a.data[i] = u.Rand()
	}
	return a, nil
}

// RandomIntegers returns an array of the given shape filled with integers
// drawn uniformly from [low, high).
func RandomIntegers(src rand.Source, low, high int64, shape ...int) (*Array[int64], error) {
	if high <= low {
		return nil, fmt.Errorf("%w: high %d must exceed low %d", ErrInvalidArgument, high, low)
	}
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	a, err := Zeros[int64](shape...)
	if err != nil {
		return nil, err
	}
	r := rand.New(src)
	for i := range a.data {
		a.data[i] = low + r.Int63n(high-low)
	}
	return a, nil
}
