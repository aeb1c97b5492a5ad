// Package records models the flat client configuration rows served by the
// backend: the declarative table schemas, sort/search over fetched rows and
// the edit-form merge rules.
package records

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Record is a flat configuration row keyed by backend column name.
type Record = map[string]any

// String renders a record value the way it is shown in tables and exports.
// Missing values render empty, whole numbers without a decimal point and
// lists comma-joined.
func String(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case []string:
		return strings.Join(val, ",")
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = String(item)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}

// Serialize concatenates every value of rec in key order. It is the text
// a free-text search matches against.
func Serialize(rec Record) string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(String(rec[k]))
	}
	return b.String()
}

// Ref identifies the client a row belongs to.
type Ref struct {
	ID         string `mapstructure:"id"`
	ClientID   string `mapstructure:"clientId"`
	ClientName string `mapstructure:"clientName"`
}

// DecodeRef reads the identifying columns of rec. Numeric ids are
// converted to their decimal form.
func DecodeRef(rec Record) (Ref, error) {
	var ref Ref
	if err := mapstructure.WeakDecode(rec, &ref); err != nil {
		return Ref{}, fmt.Errorf("failed to decode record reference: %w", err)
	}
	return ref, nil
}

// ClientKey returns the client id a row links to: clientId when present,
// otherwise the row's own id.
func ClientKey(rec Record) string {
	ref, err := DecodeRef(rec)
	if err != nil {
		return ""
	}
	if ref.ClientID != "" {
		return ref.ClientID
	}
	return ref.ID
}
