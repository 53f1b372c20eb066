// Package tabular moves numeric arrays in and out of delimited text: CSV
// documents with a header row, and savetxt-style plain text.
package tabular

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/qri-io/dataset"
	"github.com/qri-io/dataset/dsio"
	ndarray "github.com/qri-io/ndarray-go"
)

var (
	// ErrUnknownColumn is returned when a requested column is not in the
	// header row.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrNoHeader is returned when a CSV document has no header row.
	ErrNoHeader = errors.New("missing header row")
)

// Table is a 2-D float64 array with one named column per header entry.
type Table struct {
	Columns []string
	Data    *ndarray.Array[float64]
}

// Column returns the named column as a 1-D view of t.Data.
func (t *Table) Column(name string) (*ndarray.Array[float64], error) {
	i := slices.Index(t.Columns, name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return t.Data.Slice(ndarray.All(), ndarray.I(i))
}

// csvStructure describes a CSV document with a header row whose columns
// are all numbers.
func csvStructure(header []string) *dataset.Structure {
	items := make([]interface{}, len(header))
	for i, h := range header {
		items[i] = map[string]interface{}{"title": h, "type": "number"}
	}
	return &dataset.Structure{
		Format: "csv",
		FormatConfig: map[string]interface{}{
			"headerRow":  true,
			"lazyQuotes": true,
		},
		Schema: map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":  "array",
				"items": items,
			},
		},
	}
}

// ReadCSV reads a CSV document whose first row names its columns. Every
// other cell must be a number; empty cells read as NaN. With columns, only
// those columns are kept, in the order given.
func ReadCSV(r io.Reader, columns ...string) (*Table, error) {
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && strings.TrimSpace(line) != "") {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoHeader
		}
		return nil, err
	}
	header, err := csv.NewReader(strings.NewReader(line)).Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoHeader, err)
	}

	keep := make([]int, len(header))
	for i := range keep {
		keep[i] = i
	}
	if len(columns) > 0 {
		keep = keep[:0]
		for _, c := range columns {
			i := slices.Index(header, c)
			if i < 0 {
				return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, c)
			}
			keep = append(keep, i)
		}
	}

	rdr, err := dsio.NewCSVReader(csvStructure(header), io.MultiReader(strings.NewReader(line), br))
	if err != nil {
		return nil, err
	}
	defer rdr.Close()

	var data []float64
	rows := 0
	for {
		ent, err := rdr.ReadEntry()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}

		vals, ok := ent.Value.([]interface{})
		if !ok || len(vals) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d fields, header has %d", ndarray.ErrShapeMismatch, rows+1, len(vals), len(header))
		}
		for _, i := range keep {
			f, err := toFloat(vals[i])
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", rows+1, header[i], err)
			}
			data = append(data, f)
		}
		rows++
	}

	if data == nil {
		data = []float64{}
	}
	arr, err := ndarray.New(data, rows, len(keep))
	if err != nil {
		return nil, err
	}
	names := make([]string, len(keep))
	for j, i := range keep {
		names[j] = header[i]
	}
	return &Table{Columns: names, Data: arr}, nil
}

func toFloat(v interface{}) (float64, error) {
	switch x := v.(type) {
	case nil:
		return math.NaN(), nil
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case string:
		x = strings.TrimSpace(x)
		if x == "" {
			return math.NaN(), nil
		}
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ndarray.ErrInvalidArgument, x)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: unexpected %T value", ndarray.ErrInvalidArgument, v)
}

// WriteCSV writes a as CSV with a header row. a must be 1-D (written as a
// single column) or 2-D with one header entry per column.
func WriteCSV[T ndarray.Number](w io.Writer, a *ndarray.Array[T], header []string) error {
	m, err := asMatrix(a)
	if err != nil {
		return err
	}
	shape := m.Shape()
	if len(header) != shape[1] {
		return fmt.Errorf("%w: %d header names for %d columns", ndarray.ErrShapeMismatch, len(header), shape[1])
	}

	wr, err := dsio.NewCSVWriter(csvStructure(header), w)
	if err != nil {
		return err
	}
	for i := 0; i < shape[0]; i++ {
		row, err := m.Index(i)
		if err != nil {
			return err
		}
		vals := row.Values()
		ent := make([]interface{}, len(vals))
		for j, v := range vals {
			ent[j] = formatNumber(v)
		}
		if err := wr.WriteEntry(dsio.Entry{Index: i, Value: ent}); err != nil {
			return err
		}
	}
	return wr.Close()
}

// asMatrix returns a as a 2-D array, turning a 1-D array into a column.
func asMatrix[T ndarray.Element](a *ndarray.Array[T]) (*ndarray.Array[T], error) {
	switch a.NDim() {
	case 1:
		return a.ExpandDims(1)
	case 2:
		return a, nil
	}
	return nil, fmt.Errorf("%w: expected a 1-D or 2-D array, got %d dimensions", ndarray.ErrShapeMismatch, a.NDim())
}

// formatNumber renders v with the fewest digits that read back exactly.
func formatNumber[T ndarray.Number](v T) string {
	switch x := any(v).(type) {
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	}
	return fmt.Sprint(v)
}
