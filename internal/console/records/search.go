package records

import "strings"

// Search keeps the rows whose serialized values contain term, ignoring case.
// An empty term keeps every row.
func Search(rows []Record, term string) []Record {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return append([]Record(nil), rows...)
	}

	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(Serialize(row)), term) {
			out = append(out, row)
		}
	}
	return out
}

// View applies search then sort, the order every table is displayed in.
func (s Schema) View(rows []Record, term string, state SortState) []Record {
	return s.Sort(Search(rows, term), state)
}
