package zarr

import (
	"strconv"
	"strings"

	ndarray "github.com/qri-io/ndarray-go"
)

type chunkDimProjection struct {
	// Index of chunk.
	DimChunkIX int
	// Selection of items from chunk array.
	DimChunkSel ndarray.Index
	// Selection of items in target (output) array.
	DimOutSel ndarray.Index
}

// dimProjections lists, for one dimension, every chunk along it and the
// items that chunk holds. The last chunk may extend past the array edge;
// its selection covers only the items inside the array.
func dimProjections(length, chunk int) []chunkDimProjection {
	n := (length + chunk - 1) / chunk
	out := make([]chunkDimProjection, n)
	for i := range out {
		start := i * chunk
		stop := min(start+chunk, length)
		out[i] = chunkDimProjection{
			DimChunkIX:  i,
			DimChunkSel: ndarray.S(0, stop-start),
			DimOutSel:   ndarray.S(start, stop),
		}
	}
	return out
}

// A mapping of items from chunk to output array. Can be used to extract items
// from the chunk array for loading into an output array. Can also be used to
// extract items from a value array for setting/updating in a chunk array.
type chunkProjection struct {
	// Indices of chunk
	ChunkCoords []int
	// Selection of items from chunk array.
	ChunkSelection []ndarray.Index
	// Selection of items in target (output) array.
	OutSelection []ndarray.Index
}

// projections returns one chunkProjection per chunk of an array with the
// given shape, in row-major chunk order. A 0-d array has a single chunk; an
// array with a zero-length dimension has none.
func projections(shape, chunks []int) []chunkProjection {
	dims := make([][]chunkDimProjection, len(shape))
	total := 1
	for i, l := range shape {
		dims[i] = dimProjections(l, chunks[i])
		total *= len(dims[i])
	}

	out := make([]chunkProjection, 0, total)
	idx := make([]int, len(shape))
	for k := 0; k < total; k++ {
		p := chunkProjection{
			ChunkCoords:    make([]int, len(shape)),
			ChunkSelection: make([]ndarray.Index, len(shape)),
			OutSelection:   make([]ndarray.Index, len(shape)),
		}
		for d, i := range idx {
			dp := dims[d][i]
			p.ChunkCoords[d] = dp.DimChunkIX
			p.ChunkSelection[d] = dp.DimChunkSel
			p.OutSelection[d] = dp.DimOutSel
		}
		out = append(out, p)

		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < len(dims[d]) {
				break
			}
			idx[d] = 0
		}
	}
	return out
}

// chunkKey formats chunk coordinates as a store key segment, e.g. "0.1".
func chunkKey(coords []int, sep string) string {
	if len(coords) == 0 {
		return "0"
	}
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, sep)
}
