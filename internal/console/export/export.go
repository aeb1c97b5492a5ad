// Package export turns the rows currently shown in a table into a CSV or
// XLSX download.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/zancompute/zanconfig/internal/console/records"
)

// Format is a download format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrUnknownFormat is returned for formats other than csv and xlsx.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat validates a format name from a query string.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Filename returns base with the format's extension.
func (f Format) Filename(base string) string {
	return base + "." + string(f)
}

// Table is a header row plus data rows, all rendered as text.
type Table struct {
	Header []string
	Rows   [][]string
}

// FromSchema builds a table from rows using the schema's column keys as header.
func FromSchema(s records.Schema, rows []records.Record) Table {
	t := Table{Header: s.Keys(), Rows: make([][]string, len(rows))}
	for i, row := range rows {
		t.Rows[i] = s.Row(row)
	}
	return t
}

// Write encodes t in format f. sheet names the XLSX worksheet.
func Write(w io.Writer, f Format, sheet string, t Table) error {
	switch f {
	case FormatCSV:
		return CSV(w, t)
	case FormatXLSX:
		return XLSX(w, sheet, t)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}
