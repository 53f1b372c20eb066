package zarr

import (
	"fmt"
	"io"

	"github.com/qri-io/dataset/compression"
)

// CompressionMeta defines compression settings zarr-go understands
type CompressionMeta struct {
	ID      string `json:"id"`
	Cname   string `json:"cname,omitempty"`
	Clevel  int    `json:"clevel,omitempty"`
	Shuffle int    `json:"shuffle,omitempty"`
}

const (
	CodecZstd = "zstd"
	CodecGzip = "gzip"
)

// codec ids mapped to dataset compression format names
var codecFormats = map[string]string{
	CodecZstd: "zst",
	CodecGzip: "gzip",
}

// ParseCompressor returns the compression settings for a codec id. The empty
// string and "none" mean no compression and return nil.
func ParseCompressor(id string) (*CompressionMeta, error) {
	switch id {
	case "", "none":
		return nil, nil
	}
	if _, ok := codecFormats[id]; !ok {
		return nil, fmt.Errorf("%w: compressor %q", ErrUnsupported, id)
	}
	return &CompressionMeta{ID: id}, nil
}

func (m *CompressionMeta) format() (string, error) {
	f, ok := codecFormats[m.ID]
	if !ok {
		return "", fmt.Errorf("%w: compressor %q", ErrUnsupported, m.ID)
	}
	return f, nil
}

// Compressor wraps w so writes are encoded with m's codec. A nil m writes
// through unchanged.
func (m *CompressionMeta) Compressor(w io.Writer) (io.WriteCloser, error) {
	if m == nil {
		return nopWriteCloser{w}, nil
	}
	f, err := m.format()
	if err != nil {
		return nil, err
	}
	return compression.Compressor(f, w)
}

// Decompressor wraps r so reads are decoded with m's codec. A nil m reads
// through unchanged.
func (m *CompressionMeta) Decompressor(r io.ReadCloser) (io.ReadCloser, error) {
	if m == nil {
		return r, nil
	}
	f, err := m.format()
	if err != nil {
		return nil, err
	}
	return compression.Decompressor(f, r)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
