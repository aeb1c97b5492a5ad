package records

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultSortField is the column tables are sorted by until a header is clicked.
const DefaultSortField = "clientName"

// SortState is the active sort column and direction of a table.
type SortState struct {
	Field string
	Desc  bool
}

// DefaultSort returns the initial sort of every table.
func DefaultSort() SortState {
	return SortState{Field: DefaultSortField}
}

// Toggle returns the state after clicking field: the same field flips
// direction, a different field starts ascending.
func (s SortState) Toggle(field string) SortState {
	if s.Field == field {
		return SortState{Field: field, Desc: !s.Desc}
	}
	return SortState{Field: field}
}

// Direction returns "asc" or "desc".
func (s SortState) Direction() string {
	if s.Desc {
		return "desc"
	}
	return "asc"
}

// Arrow returns the header indicator for column field.
func (s SortState) Arrow(field string) string {
	if s.Field != field {
		return ""
	}
	if s.Desc {
		return "▼"
	}
	return "▲"
}

// ParseSort builds a SortState from query values, falling back to the default.
func ParseSort(field, dir string) SortState {
	if field == "" {
		return DefaultSort()
	}
	return SortState{Field: field, Desc: strings.EqualFold(dir, "desc")}
}

// Sort returns a sorted copy of rows. Numeric fields compare as numbers
// with missing or unparseable values as zero; all other fields compare
// case- and accent-insensitively. Equal rows keep their input order.
func Sort(rows []Record, state SortState, numeric bool) []Record {
	out := slices.Clone(rows)
	if state.Field == "" {
		return out
	}

	var compare func(a, b Record) int
	if numeric {
		compare = func(a, b Record) int {
			return cmp.Compare(number(a[state.Field]), number(b[state.Field]))
		}
	} else {
		col := collate.New(language.Und, collate.Loose)
		compare = func(a, b Record) int {
			return col.CompareString(String(a[state.Field]), String(b[state.Field]))
		}
	}

	slices.SortStableFunc(out, func(a, b Record) int {
		if state.Desc {
			return compare(b, a)
		}
		return compare(a, b)
	})

	return out
}

func number(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(String(v)), 64)
	if err != nil {
		return 0
	}
	return f
}

// Sort orders rows by state using the table's column types.
func (s Schema) Sort(rows []Record, state SortState) []Record {
	return Sort(rows, state, s.Numeric(state.Field))
}
