// Package zarr persists ndarray arrays in the Zarr v2 storage format: a JSON
// “.zarray” metadata document plus one binary key per chunk, held in any
// Store.
package zarr

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	ndarray "github.com/qri-io/ndarray-go"
)

const (
	// Version is the zarr storage format version this package reads and writes.
	Version = 2
)

var (
	ErrExists          = errors.New("already exists")
	ErrReadOnly        = errors.New("read-only")
	ErrInvalidMetadata = errors.New("invalid metadata")
	ErrInvalidPath     = errors.New("invalid path")
	ErrUnsupported     = errors.New("unsupported")
)

type Array struct {
	path  Path
	store Store
	mode  PersistenceMode
	meta  *ArrayMeta
}

// NewArrayMeta describes an array of T with the given shape. Empty chunks
// store the whole array as a single chunk.
func NewArrayMeta[T ndarray.Element](shape, chunks []int, compressor *CompressionMeta) *ArrayMeta {
	if len(chunks) == 0 {
		chunks = make([]int, len(shape))
		for i, d := range shape {
			chunks[i] = max(d, 1)
		}
	}
	var zero T
	return &ArrayMeta{
		ZarrFormat: Version,
		Shape:      slices.Clone(shape),
		Chunks:     slices.Clone(chunks),
		Dtype:      ndarray.DtypeOf[T](),
		Compressor: compressor,
		FillValue:  encodeFillValue(zero),
		Order:      OrderC,
	}
}

// Create writes metadata for an array at path and returns it. The mode
// decides what happens when an array already exists there:
// ModeWrite replaces it, ModeWriteFail fails with ErrExists,
// ModeReadWriteCreate overwrites its metadata, ModeReadWrite requires it and
// ModeRead is refused.
func Create(store Store, path string, meta *ArrayMeta, mode PersistenceMode) (*Array, error) {
	p, err := NewPath(path)
	if err != nil {
		return nil, err
	}
	if err := meta.Validate(); err != nil {
		return nil, err
	}

	key := p.Join(string(MTArray)).String()
	ok, err := exists(store, key)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModeRead:
		return nil, fmt.Errorf("%w: cannot create %q in mode %q", ErrReadOnly, path, mode)
	case ModeReadWrite:
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
	case ModeWriteFail:
		if ok {
			return nil, fmt.Errorf("%w: %s", ErrExists, key)
		}
	case ModeWrite:
		if err := clearPath(store, p); err != nil {
			return nil, err
		}
	case ModeReadWriteCreate:
	default:
		return nil, fmt.Errorf("%w: persistence mode %q", ErrUnsupported, mode)
	}

	if err := putJSON(store, key, meta); err != nil {
		return nil, err
	}
	return &Array{path: p, store: store, mode: mode, meta: meta}, nil
}

// Open reads the metadata of an existing array. Use Create for the ModeWrite
// and ModeWriteFail modes.
func Open(store Store, path string, mode PersistenceMode) (*Array, error) {
	switch mode {
	case ModeRead, ModeReadWrite, ModeReadWriteCreate:
	default:
		return nil, fmt.Errorf("%w: cannot open in mode %q", ErrUnsupported, mode)
	}

	p, err := NewPath(path)
	if err != nil {
		return nil, err
	}

	a := &Array{
		path:  p,
		store: store,
		mode:  mode,
		meta:  &ArrayMeta{},
	}

	f, err := store.Get(p.Join(string(MTArray)).String())
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(a.meta); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMetadata, err)
	}
	if err := a.meta.Validate(); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Array) Info() string {
	return fmt.Sprintf("<zarr.Array %q %s %s>", a.Path(), ndarray.FormatShape(a.meta.Shape), a.meta.Dtype.Name())
}

func (a *Array) Path() string {
	return a.path.String()
}

func (a *Array) Mode() PersistenceMode { return a.mode }

// Meta returns the array's metadata. Callers must not modify it.
func (a *Array) Meta() *ArrayMeta { return a.meta }

func (a *Array) Shape() []int { return slices.Clone(a.meta.Shape) }

// Attributes returns the user attributes stored with the array. An array
// without attributes returns an empty map.
func (a *Array) Attributes() (Attributes, error) {
	return readAttributes(a.store, a.path)
}

func (a *Array) SetAttributes(attrs Attributes) error {
	if a.mode == ModeRead {
		return fmt.Errorf("%w: %s", ErrReadOnly, a.Path())
	}
	return putJSON(a.store, a.path.Join(string(MTAttributes)).String(), attrs)
}

// ReadAll loads the whole array as an *ndarray.Array of the element type
// named by its metadata.
func (a *Array) ReadAll() (interface{}, error) {
	dt := a.meta.Dtype
	switch {
	case dt.Equivalent(ndarray.DtypeOf[bool]()):
		return Read[bool](a)
	case dt.Equivalent(ndarray.DtypeOf[uint8]()):
		return Read[uint8](a)
	case dt.Equivalent(ndarray.DtypeOf[int32]()):
		return Read[int32](a)
	case dt.Equivalent(ndarray.DtypeOf[int64]()):
		return Read[int64](a)
	case dt.Equivalent(ndarray.DtypeOf[float32]()):
		return Read[float32](a)
	case dt.Equivalent(ndarray.DtypeOf[float64]()):
		return Read[float64](a)
	}
	return nil, fmt.Errorf("%w: dtype %s", ErrUnsupported, dt)
}

// Read loads the whole array. Chunks missing from the store read as the
// fill value.
func Read[T ndarray.Element](a *Array) (*ndarray.Array[T], error) {
	if err := a.checkDtype(ndarray.DtypeOf[T]()); err != nil {
		return nil, err
	}
	fill, err := decodeFillValue[T](a.meta.FillValue)
	if err != nil {
		return nil, err
	}
	out, err := ndarray.Full(fill, a.meta.Shape...)
	if err != nil {
		return nil, err
	}

	for _, p := range projections(a.meta.Shape, a.meta.Chunks) {
		chunk, err := readChunk[T](a, p.ChunkCoords)
		if errors.Is(err, ErrNotFound) {
			continue
		} else if err != nil {
			return nil, err
		}

		src, err := chunk.Slice(p.ChunkSelection...)
		if err != nil {
			return nil, err
		}
		dst, err := out.Slice(p.OutSelection...)
		if err != nil {
			return nil, err
		}
		if err := dst.Assign(src); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Write stores every chunk of src. src must match the array's shape and
// element type. Chunks extending past the array edge are padded with the
// fill value.
func Write[T ndarray.Element](a *Array, src *ndarray.Array[T]) error {
	if a.mode == ModeRead {
		return fmt.Errorf("%w: %s", ErrReadOnly, a.Path())
	}
	if err := a.checkDtype(src.Dtype()); err != nil {
		return err
	}
	if !slices.Equal(src.Shape(), a.meta.Shape) {
		return fmt.Errorf("%w: writing %s into array of shape %s", ndarray.ErrShapeMismatch, ndarray.FormatShape(src.Shape()), ndarray.FormatShape(a.meta.Shape))
	}
	fill, err := decodeFillValue[T](a.meta.FillValue)
	if err != nil {
		return err
	}

	for _, p := range projections(a.meta.Shape, a.meta.Chunks) {
		chunk, err := ndarray.Full(fill, a.meta.Chunks...)
		if err != nil {
			return err
		}
		dst, err := chunk.Slice(p.ChunkSelection...)
		if err != nil {
			return err
		}
		part, err := src.Slice(p.OutSelection...)
		if err != nil {
			return err
		}
		if err := dst.Assign(part); err != nil {
			return err
		}
		if err := writeChunk(a, p.ChunkCoords, chunk); err != nil {
			return err
		}
	}
	return nil
}

// SaveOptions configures Save. The zero value stores the array as one
// uncompressed chunk, replacing anything already at the path.
type SaveOptions struct {
	Chunks     []int
	Compressor *CompressionMeta
	Mode       PersistenceMode
	Attributes Attributes
}

// Save creates an array at path shaped like src and writes src into it.
func Save[T ndarray.Element](store Store, path string, src *ndarray.Array[T], opts SaveOptions) (*Array, error) {
	if opts.Mode == "" {
		opts.Mode = ModeWrite
	}
	a, err := Create(store, path, NewArrayMeta[T](src.Shape(), opts.Chunks, opts.Compressor), opts.Mode)
	if err != nil {
		return nil, err
	}
	if err := Write(a, src); err != nil {
		return nil, err
	}
	if opts.Attributes != nil {
		if err := a.SetAttributes(opts.Attributes); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Load reads the array stored at path.
func Load[T ndarray.Element](store Store, path string) (*ndarray.Array[T], error) {
	a, err := Open(store, path, ModeRead)
	if err != nil {
		return nil, err
	}
	return Read[T](a)
}

func (a *Array) checkDtype(dt ndarray.Dtype) error {
	if !a.meta.Dtype.Equivalent(dt) {
		return fmt.Errorf("%w: array %q holds %s, not %s", ndarray.ErrDtypeMismatch, a.Path(), a.meta.Dtype.Name(), dt.Name())
	}
	return nil
}

func (a *Array) byteOrder() binary.ByteOrder {
	if a.meta.Dtype.ByteOrder == ndarray.BOBigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// readChunk decodes the chunk at coords into an array of the chunk shape.
func readChunk[T ndarray.Element](a *Array, coords []int) (*ndarray.Array[T], error) {
	f, err := a.store.Get(a.chunkPath(coords).String())
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rc, err := a.meta.Compressor.Decompressor(f)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	size := 1
	for _, c := range a.meta.Chunks {
		size *= c
	}
	buf := make([]T, size)
	if err := binary.Read(rc, a.byteOrder(), buf); err != nil {
		return nil, fmt.Errorf("reading chunk %s: %w", a.chunkPath(coords), err)
	}

	if len(a.meta.Chunks) == 0 {
		return ndarray.Scalar(buf[0]), nil
	}
	if a.meta.Order == OrderF {
		rev := slices.Clone(a.meta.Chunks)
		slices.Reverse(rev)
		ch, err := ndarray.New(buf, rev...)
		if err != nil {
			return nil, err
		}
		return ch.Transpose()
	}
	return ndarray.New(buf, a.meta.Chunks...)
}

func writeChunk[T ndarray.Element](a *Array, coords []int, chunk *ndarray.Array[T]) error {
	if a.meta.Order == OrderF {
		t, err := chunk.Transpose()
		if err != nil {
			return err
		}
		chunk = t
	}

	buf := &bytes.Buffer{}
	w, err := a.meta.Compressor.Compressor(buf)
	if err != nil {
		return err
	}
	if err := binary.Write(w, a.byteOrder(), chunk.Values()); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return a.store.Put(a.chunkPath(coords).String(), buf)
}

func (a *Array) chunkPath(coords []int) Path {
	return a.path.Join(chunkKey(coords, a.meta.separator()))
}

type PersistenceMode string

const (
	// Persistence mode:
	// ‘r’ means read only (must exist);
	ModeRead PersistenceMode = "r"
	//‘r+’ means read/write (must exist)
	ModeReadWrite PersistenceMode = "r+"
	// ‘a’ means read/write (create if doesn’t exist)
	ModeReadWriteCreate PersistenceMode = "a"
	// ‘w’ means create (overwrite if exists)
	ModeWrite PersistenceMode = "w"
	// ‘w-’ means create (fail if exists).
	ModeWriteFail PersistenceMode = "w-"
)

// Path is a normalized logical path within a store. The root is the empty
// Path.
type Path []string

// NewPath normalizes a logical path so keys are consistent across storage
// systems:
// * Replace all backward slash characters (”\”) with forward slash characters (“/”)
// * Strip any leading “/” characters
// * Strip any trailing “/” characters
// * Collapse any sequence of more than one “/” character into a single “/” character
//
// Segments of "." or ".." are rejected.
func NewPath(posix string) (Path, error) {
	p := Path{}
	for _, seg := range strings.Split(strings.ReplaceAll(posix, `\`, "/"), "/") {
		switch seg {
		case "":
			continue
		case ".", "..":
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, posix)
		}
		p = append(p, seg)
	}
	return p, nil
}

func (p Path) String() string {
	return strings.Join(p, "/")
}

// Join returns a new Path with elems appended. p is not modified.
func (p Path) Join(elems ...string) Path {
	return append(slices.Clone(p), elems...)
}

// prefix is the key prefix shared by everything below p.
func (p Path) prefix() string {
	if len(p) == 0 {
		return ""
	}
	return p.String() + "/"
}

// putJSON writes v as indented JSON. HTML escaping stays off so dtypes
// keep their literal '<' and '>' byte order marks.
func putJSON(store Store, key string, v interface{}) error {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return store.Put(key, buf)
}

// clearPath deletes every key below p.
func clearPath(store Store, p Path) error {
	keys, err := store.Keys(p.prefix())
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := store.Delete(k); err != nil {
			return err
		}
	}
	return nil
}
