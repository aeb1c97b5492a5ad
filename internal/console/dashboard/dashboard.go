// Package dashboard shapes the monthly "last updated" feed into the
// device monitoring table: client filter, timestamp display and the
// staleness flag.
package dashboard

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/zancompute/zanconfig/internal/console/export"
	"github.com/zancompute/zanconfig/pkg/zanapi"
)

// AllClients is the filter value that keeps every row.
const AllClients = "All Clients"

// StaleAfterDays is the distance in calendar days from today at which a
// timestamp is flagged, in either direction.
const StaleAfterDays = 2

// Column is one column of the dashboard table.
type Column struct {
	ExportKey string
	Label     string
	Timestamp bool
	value     func(zanapi.LastUpdatedRow) string
}

// Columns lists the dashboard columns in display order.
var Columns = []Column{
	{ExportKey: "ClientName", Label: "Client", value: func(r zanapi.LastUpdatedRow) string { return r.ClientName }},
	{ExportKey: "CurrentTime", Label: "Current Time", Timestamp: true, value: func(r zanapi.LastUpdatedRow) string { return r.CurrentTime }},
	{ExportKey: "DeviceStatus", Label: "Device Status", Timestamp: true, value: func(r zanapi.LastUpdatedRow) string { return r.DeviceStatusLastUpdated }},
	{ExportKey: "PeopleCount", Label: "People Count", Timestamp: true, value: func(r zanapi.LastUpdatedRow) string { return r.PeopleLastUpdated }},
	{ExportKey: "Analytics", Label: "Analytics", Timestamp: true, value: func(r zanapi.LastUpdatedRow) string { return r.AnalyticsLastUpdated }},
	{ExportKey: "Flight", Label: "Flight", Timestamp: true, value: func(r zanapi.LastUpdatedRow) string { return r.FlightLastUpdated }},
	{ExportKey: "Traffic", Label: "Traffic", Timestamp: true, value: func(r zanapi.LastUpdatedRow) string { return r.TrafficLastUpdated }},
}

// Cell is one rendered dashboard cell.
type Cell struct {
	Text  string
	Stale bool
}

// Row is one rendered dashboard row.
type Row struct {
	ClientName string
	Cells      []Cell
}

// Build renders rows for display relative to today.
func Build(rows []zanapi.LastUpdatedRow, today time.Time) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		cells := make([]Cell, len(Columns))
		for j, c := range Columns {
			raw := c.value(r)
			if !c.Timestamp {
				cells[j] = Cell{Text: raw}
				continue
			}
			cells[j] = Cell{Text: FormatTimestamp(raw), Stale: IsStale(raw, today)}
		}
		out[i] = Row{ClientName: r.ClientName, Cells: cells}
	}
	return out
}

// Clients returns the filter choices: AllClients then each distinct client
// name in the order it first appears.
func Clients(rows []zanapi.LastUpdatedRow) []string {
	out := []string{AllClients}
	seen := map[string]bool{}
	for _, r := range rows {
		if seen[r.ClientName] {
			continue
		}
		seen[r.ClientName] = true
		out = append(out, r.ClientName)
	}
	return out
}

// Filter keeps the rows of one client. AllClients and "" keep every row.
func Filter(rows []zanapi.LastUpdatedRow, client string) []zanapi.LastUpdatedRow {
	if client == "" || client == AllClients {
		return rows
	}
	var out []zanapi.LastUpdatedRow
	for _, r := range rows {
		if r.ClientName == client {
			out = append(out, r)
		}
	}
	return out
}

// Table renders rows for export with display-formatted timestamps.
func Table(rows []zanapi.LastUpdatedRow) export.Table {
	t := export.Table{Header: make([]string, len(Columns)), Rows: make([][]string, len(rows))}
	for i, c := range Columns {
		t.Header[i] = c.ExportKey
	}
	for i, r := range rows {
		line := make([]string, len(Columns))
		for j, c := range Columns {
			if c.Timestamp {
				line[j] = FormatTimestamp(c.value(r))
			} else {
				line[j] = c.value(r)
			}
		}
		t.Rows[i] = line
	}
	return t
}

var whitespace = regexp.MustCompile(`\s+`)

// ExportName is the download base name for a filtered dashboard.
func ExportName(client string) string {
	if client == "" {
		client = AllClients
	}
	return "dashboard_" + whitespace.ReplaceAllString(client, "_")
}

// Period returns the year and month to load. Valid query values override now.
func Period(now time.Time, year, month string) (int, int) {
	y, m := now.Year(), int(now.Month())
	if v, err := strconv.Atoi(strings.TrimSpace(year)); err == nil && v > 0 {
		y = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(month)); err == nil && v >= 1 && v <= 12 {
		m = v
	}
	return y, m
}
