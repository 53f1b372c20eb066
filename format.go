package ndarray

import (
	"math"
	"strconv"
	"strings"
)

// printPrecision matches NumPy's default print precision.
const printPrecision = 8

// String renders the array the way NumPy prints it:
//
//	[[ 1  2  3  4]
//	 [ 5  6  7  8]
//	 [ 9 10 11 12]]
//
// Elements are right-aligned to a common width. Floats use the shortest
// representation up to eight decimals with a trailing "." for whole values
// and fractions padded to a common length; booleans print as True/False.
func (a *Array[T]) String() string {
	cells := formatCells(a.Values())
	if a.NDim() == 0 {
		return strings.TrimSpace(cells[0])
	}
	if a.Size() == 0 {
		return "[]"
	}
	var sb strings.Builder
	pos := 0
	a.render(&sb, cells, &pos, 0)
	return sb.String()
}

func (a *Array[T]) render(sb *strings.Builder, cells []string, pos *int, depth int) {
	sb.WriteByte('[')
	n := a.shape[depth]
	last := depth == a.NDim()-1
	for i := 0; i < n; i++ {
		if i > 0 {
			if last {
				sb.WriteByte(' ')
			} else {
				sb.WriteString(strings.Repeat("\n", a.NDim()-depth-1))
				sb.WriteString(strings.Repeat(" ", depth+1))
			}
		}
		if last {
			sb.WriteString(cells[*pos])
			*pos++
		} else {
			a.render(sb, cells, pos, depth+1)
		}
	}
	sb.WriteByte(']')
}

// formatCells formats and pads every element to a common width.
func formatCells[T Element](vals []T) []string {
	cells := make([]string, len(vals))
	if len(vals) == 0 {
		return cells
	}
	switch any(vals[0]).(type) {
	case bool:
		for i, v := range vals {
			if any(v).(bool) {
				cells[i] = "True"
			} else {
				cells[i] = "False"
			}
		}
	case float32, float64:
		return formatFloats(vals)
	default:
		for i, v := range vals {
			cells[i] = strconv.FormatInt(toInt64(v), 10)
		}
	}
	return padLeft(cells)
}

func formatFloats[T Element](vals []T) []string {
	ints := make([]string, len(vals))
	fracs := make([]string, len(vals))
	fracWidth := 0
	for i, v := range vals {
		f := toFloat64(v)
		switch {
		case math.IsNaN(f):
			ints[i], fracs[i] = "nan", ""
			continue
		case math.IsInf(f, 1):
			ints[i], fracs[i] = "inf", ""
			continue
		case math.IsInf(f, -1):
			ints[i], fracs[i] = "-inf", ""
			continue
		}
		s := strconv.FormatFloat(f, 'f', printPrecision, 64)
		s = strings.TrimRight(s, "0")
		dot := strings.IndexByte(s, '.')
		ints[i], fracs[i] = s[:dot+1], s[dot+1:]
		fracWidth = max(fracWidth, len(fracs[i]))
	}
	ints = padLeft(ints)
	cells := make([]string, len(vals))
	for i := range vals {
		cells[i] = ints[i] + fracs[i] + strings.Repeat(" ", fracWidth-len(fracs[i]))
	}
	return cells
}

func padLeft(cells []string) []string {
	width := 0
	for _, c := range cells {
		width = max(width, len(c))
	}
	for i, c := range cells {
		cells[i] = strings.Repeat(" ", width-len(c)) + c
	}
	return cells
}
