package dal

import (
	"strconv"
	"strings"
	"time"
)

// Row is one result row. Cells hold nil, int64, float64, bool, string,
// []byte or time.Time values, as returned by the store.
type Row []any

// Table holds the rows returned by one statement.
type Table []Row

// CellText renders a cell value the way SQLite displays it:
// NULL as the empty string, integers in decimal, reals with up to 15
// significant digits and always with a decimal point or exponent, and text
// and blobs as they are.
func CellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return formatReal(x)
	case bool:
		if x {
			return "1"
		}
		return "0"
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	case interface{ String() string }:
		return x.String()
	}
	return ""
}

func formatReal(f float64) string {
	s := strconv.FormatFloat(f, 'g', 15, 64)
	if strings.ContainsAny(s, ".nN") { // has a point, or NaN/Inf
		return s
	}
	if i := strings.IndexByte(s, 'e'); i >= 0 {
		return s[:i] + ".0" + s[i:]
	}
	return s + ".0"
}

// isText reports whether a cell carries text which may be transliterated.
func isText(v any) bool {
	switch v.(type) {
	case string, []byte:
		return true
	}
	return false
}

// Strings returns the rows of t with every cell rendered by CellText.
func (t Table) Strings() [][]string {
	rows := make([][]string, len(t))
	for i, row := range t {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			rows[i][j] = CellText(cell)
		}
	}
	return rows
}
