package tabular

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	ndarray "github.com/qri-io/ndarray-go"
)

// TextOptions configures SaveText and LoadText. Zero fields take the
// defaults noted on each field.
type TextOptions struct {
	// Format is the fmt verb applied to each value. Defaults to "%.18e" for
	// floating point arrays and "%d" for integer arrays.
	Format string
	// Delimiter separates values on a line. Defaults to " "; LoadText then
	// splits on any run of whitespace.
	Delimiter string
	// Newline ends each line. Defaults to "\n".
	Newline string
	// Header and Footer are written before and after the data, each line
	// prefixed with Comments.
	Header string
	Footer string
	// Comments prefixes header and footer lines. Defaults to "# ". LoadText
	// skips lines starting with its first non-space character.
	Comments string
	// NoComments writes header and footer lines without a prefix, so a
	// header row can name the columns for ReadCSV. LoadText then skips
	// no lines.
	NoComments bool
}

func (o TextOptions) withDefaults(floating bool) TextOptions {
	if o.Format == "" {
		o.Format = "%d"
		if floating {
			o.Format = "%.18e"
		}
	}
	if o.Delimiter == "" {
		o.Delimiter = " "
	}
	if o.Newline == "" {
		o.Newline = "\n"
	}
	switch {
	case o.NoComments:
		o.Comments = ""
	case o.Comments == "":
		o.Comments = "# "
	}
	return o
}

// SaveText writes a 1-D or 2-D array as delimited text, one row per line. A
// 1-D array is written one value per line.
func SaveText[T ndarray.Number](w io.Writer, a *ndarray.Array[T], opts TextOptions) error {
	m, err := asMatrix(a)
	if err != nil {
		return err
	}
	opts = opts.withDefaults(a.Dtype().BasicType == ndarray.BTFloatingPoint)

	bw := bufio.NewWriter(w)
	writeComment := func(text string) {
		for _, line := range strings.Split(text, "\n") {
			bw.WriteString(opts.Comments + line + opts.Newline)
		}
	}
	if opts.Header != "" {
		writeComment(opts.Header)
	}

	rows := m.Shape()[0]
	for i := 0; i < rows; i++ {
		row, err := m.Index(i)
		if err != nil {
			return err
		}
		for j, v := range row.Values() {
			if j > 0 {
				bw.WriteString(opts.Delimiter)
			}
			fmt.Fprintf(bw, opts.Format, v)
		}
		bw.WriteString(opts.Newline)
	}

	if opts.Footer != "" {
		writeComment(opts.Footer)
	}
	return bw.Flush()
}

// LoadText reads delimited text written by SaveText into a 2-D float64
// array. Blank lines and comment lines are skipped; every data line must
// hold the same number of values.
func LoadText(r io.Reader, opts TextOptions) (*ndarray.Array[float64], error) {
	opts = opts.withDefaults(true)
	comment := strings.TrimSpace(opts.Comments)

	var (
		data []float64
		rows int
		cols = -1
		line int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || (comment != "" && strings.HasPrefix(text, comment)) {
			continue
		}

		var fields []string
		if strings.TrimSpace(opts.Delimiter) == "" {
			fields = strings.Fields(text)
		} else {
			fields = strings.Split(text, opts.Delimiter)
		}
		if cols >= 0 && len(fields) != cols {
			return nil, fmt.Errorf("%w: line %d has %d values, expected %d", ndarray.ErrShapeMismatch, line, len(fields), cols)
		}
		cols = len(fields)

		for _, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %q is not a number", ndarray.ErrInvalidArgument, line, f)
			}
			data = append(data, v)
		}
		rows++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if cols < 0 {
		return ndarray.Zeros[float64](0, 0)
	}
	return ndarray.New(data, rows, cols)
}
