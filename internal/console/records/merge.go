package records

import (
	"maps"
	"strings"
)

// Merge combines partial records in order. Later sources win on every
// field they set, including fields set to null.
func Merge(sources ...Record) Record {
	out := Record{}
	for _, src := range sources {
		maps.Copy(out, src)
	}
	return out
}

// SplitList normalizes a list field to a slice. Comma-joined strings are
// split, trimmed and emptied of blanks; slices pass through.
func SplitList(v any) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case []string:
		return append([]string{}, val...)
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, String(item))
		}
		return out
	}

	out := []string{}
	for _, part := range strings.Split(String(v), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// JoinList is the wire form of a list field.
func JoinList(items []string) string {
	return strings.Join(items, ",")
}

// AppendUnique adds item to list unless it is blank or already present.
func AppendUnique(list []string, item string) []string {
	item = strings.TrimSpace(item)
	if item == "" {
		return list
	}
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}

// FindByClient returns the first row linked to client id, matching on the
// string form of clientId.
func FindByClient(rows []Record, id string) Record {
	for _, row := range rows {
		if ref, err := DecodeRef(row); err == nil && ref.ClientID == id {
			return row
		}
	}
	return nil
}
