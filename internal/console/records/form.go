package records

import (
	"maps"
	"net/url"
	"strconv"
	"strings"
)

// NewItemSuffix names the text input that adds an entry to a list field,
// e.g. "listOfLanguage_new".
const NewItemSuffix = "_new"

// FromForm decodes a submitted client form. Number fields become numbers
// when they parse. A list field keeps its submitted entries and gains the
// value of its "_new" input. Blank and repeated entries are dropped.
func FromForm(form url.Values) Record {
	rec := make(Record, len(catalog))
	for _, f := range catalog {
		switch f.Kind {
		case KindList:
			list := []string{}
			for _, item := range form[f.Key] {
				list = AppendUnique(list, item)
			}
			rec[f.Key] = AppendUnique(list, form.Get(f.Key+NewItemSuffix))
		case KindNumber:
			rec[f.Key] = parseNumber(form.Get(f.Key))
		default:
			rec[f.Key] = form.Get(f.Key)
		}
	}
	return rec
}

func parseNumber(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// NormalizeLists returns a copy of rec with every list field as a slice.
func NormalizeLists(rec Record) Record {
	out := maps.Clone(rec)
	if out == nil {
		out = Record{}
	}
	for _, f := range catalog {
		if f.Kind == KindList {
			out[f.Key] = SplitList(out[f.Key])
		}
	}
	return out
}

// Payload returns a copy of rec ready to submit: list fields are joined
// back into their comma form.
func Payload(rec Record) Record {
	out := maps.Clone(rec)
	for _, f := range catalog {
		if f.Kind != KindList {
			continue
		}
		if v, ok := out[f.Key]; ok {
			out[f.Key] = JoinList(SplitList(v))
		}
	}
	return out
}

// Blank returns a copy of rec with the given fields set to "".
func Blank(rec Record, keys ...string) Record {
	out := maps.Clone(rec)
	if out == nil {
		out = Record{}
	}
	for _, k := range keys {
		out[k] = ""
	}
	return out
}

// FormValue renders the value rec holds for f as a form input value. Flag
// values are matched to FlagOptions ignoring case.
func (f Field) FormValue(rec Record) string {
	v := String(rec[f.Key])
	if f.Kind == KindFlag {
		for _, opt := range FlagOptions {
			if strings.EqualFold(v, opt) {
				return opt
			}
		}
	}
	return v
}
