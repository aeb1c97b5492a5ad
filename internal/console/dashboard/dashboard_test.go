package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zancompute/zanconfig/pkg/zanapi"
)

func TestIsStale(t *testing.T) {
	t.Parallel()

	today := time.Date(2024, 6, 10, 15, 45, 0, 0, time.Local)

	cases := []struct {
		value string
		stale bool
	}{
		{"2024-06-08 23:59", true},
		{"2024-06-09 00:01", false},
		{"2024-06-10 08:00", false},
		{"2024-06-11 12:00", false},
		{"2024-06-12 00:00", true},
		{"2024-05-01 10:00", true},
		{"", false},
		{"not a date", false},
		{"2024-13-45 10:00", false},
	}

	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			require.Equal(t, tc.stale, IsStale(tc.value, today))
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	t.Parallel()

	require.Equal(t, "10 Jun 2024, 09:30 am", FormatTimestamp("2024-06-10 09:30"))
	require.Equal(t, "10 Jun 2024, 12:05 am", FormatTimestamp("2024-06-10 00:05"))
	require.Equal(t, "01 Dec 2023, 12:00 pm", FormatTimestamp("2023-12-01 12:00:59"))
	require.Equal(t, "01 Dec 2023, 11:15 pm", FormatTimestamp("2023-12-01 23:15"))
	require.Equal(t, "-", FormatTimestamp(""))
	require.Equal(t, "-", FormatTimestamp("2024-06-10"))
	require.Equal(t, "-", FormatTimestamp("2024-00-10 10:00"))
	require.Equal(t, "-", FormatTimestamp("ab-06-xx 10:zz"))
	require.Equal(t, "-", FormatTimestamp("2024-06-10 25:00"))
}

func sampleRows() []zanapi.LastUpdatedRow {
	return []zanapi.LastUpdatedRow{
		{ClientName: "PHL", CurrentTime: "2024-06-10 09:30", DeviceStatusLastUpdated: "2024-06-01 10:00"},
		{ClientName: "PIT", CurrentTime: "2024-06-10 09:30"},
		{ClientName: "PHL", CurrentTime: "2024-06-10 09:31"},
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	rows := sampleRows()
	require.Equal(t, []string{AllClients, "PHL", "PIT"}, Clients(rows))
	require.Len(t, Filter(rows, AllClients), 3)
	require.Len(t, Filter(rows, ""), 3)
	require.Len(t, Filter(rows, "PHL"), 2)
	require.Empty(t, Filter(rows, "NOPE"))
}

func TestBuild(t *testing.T) {
	t.Parallel()

	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	built := Build(sampleRows(), today)
	require.Len(t, built, 3)

	first := built[0]
	require.Equal(t, "PHL", first.Cells[0].Text)
	require.False(t, first.Cells[0].Stale)
	require.Equal(t, "10 Jun 2024, 09:30 am", first.Cells[1].Text)
	require.False(t, first.Cells[1].Stale)
	require.True(t, first.Cells[2].Stale)
	require.Equal(t, "-", first.Cells[3].Text)
	require.False(t, first.Cells[3].Stale)
}

func TestTable(t *testing.T) {
	t.Parallel()

	table := Table(Filter(sampleRows(), "PIT"))
	require.Equal(t, []string{"ClientName", "CurrentTime", "DeviceStatus", "PeopleCount", "Analytics", "Flight", "Traffic"}, table.Header)
	require.Equal(t, [][]string{{"PIT", "10 Jun 2024, 09:30 am", "-", "-", "-", "-", "-"}}, table.Rows)

	require.Equal(t, "dashboard_All_Clients", ExportName(AllClients))
	require.Equal(t, "dashboard_New_York_JFK", ExportName("New  York JFK"))
}

func TestPeriod(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	y, m := Period(now, "", "")
	require.Equal(t, 2024, y)
	require.Equal(t, 6, m)

	y, m = Period(now, "2023", "12")
	require.Equal(t, 2023, y)
	require.Equal(t, 12, m)

	y, m = Period(now, "abc", "13")
	require.Equal(t, 2024, y)
	require.Equal(t, 6, m)
}
