package records

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleRows() []Record {
	return []Record{
		{"id": float64(3), "clientName": "banana", "dbName": "b_db"},
		{"id": float64(10), "clientName": "Apple", "dbName": "a_db"},
		{"id": float64(1), "clientName": "cherry", "dbName": "c_db"},
		{"id": nil, "clientName": "apple", "dbName": "dup"},
	}
}

func names(rows []Record) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = String(r["clientName"])
	}
	return out
}

func TestSortState(t *testing.T) {
	t.Parallel()

	t.Run("same field flips direction", func(t *testing.T) {
		s := DefaultSort().Toggle("clientName")
		require.True(t, s.Desc)
		require.False(t, s.Toggle("clientName").Desc)
	})

	t.Run("new field resets to ascending", func(t *testing.T) {
		s := SortState{Field: "clientName", Desc: true}.Toggle("id")
		require.Equal(t, SortState{Field: "id"}, s)
	})

	t.Run("arrows", func(t *testing.T) {
		s := SortState{Field: "id", Desc: true}
		require.Equal(t, "▼", s.Arrow("id"))
		require.Equal(t, "", s.Arrow("clientName"))
		require.Equal(t, "▲", DefaultSort().Arrow("clientName"))
	})

	t.Run("parse", func(t *testing.T) {
		require.Equal(t, DefaultSort(), ParseSort("", "desc"))
		require.Equal(t, SortState{Field: "id", Desc: true}, ParseSort("id", "DESC"))
		require.Equal(t, SortState{Field: "id"}, ParseSort("id", "bogus"))
	})
}

func TestSort(t *testing.T) {
	t.Parallel()

	t.Run("strings ignore case and keep input order on ties", func(t *testing.T) {
		got := AppSchema.Sort(sampleRows(), DefaultSort())
		require.Equal(t, []string{"Apple", "apple", "banana", "cherry"}, names(got))
	})

	t.Run("id sorts numerically with missing as zero", func(t *testing.T) {
		got := AppSchema.Sort(sampleRows(), SortState{Field: "id"})
		require.Equal(t, []string{"apple", "cherry", "banana", "Apple"}, names(got))

		got = AppSchema.Sort(sampleRows(), SortState{Field: "id", Desc: true})
		require.Equal(t, []string{"Apple", "banana", "cherry", "apple"}, names(got))
	})

	t.Run("numeric strings sort as numbers", func(t *testing.T) {
		rows := []Record{{"id": "10"}, {"id": "9"}, {"id": "100"}}
		got := Sort(rows, SortState{Field: "id"}, true)
		require.Equal(t, "9", got[0]["id"])
		require.Equal(t, "100", got[2]["id"])
	})

	t.Run("toggling twice restores order", func(t *testing.T) {
		for _, field := range []string{"id", "clientName", "dbName"} {
			state := SortState{Field: field}
			first := AppSchema.Sort(sampleRows(), state)

			state = state.Toggle(field)
			second := AppSchema.Sort(first, state)

			state = state.Toggle(field)
			third := AppSchema.Sort(second, state)

			require.Equal(t, first, third, field)
		}
	})

	t.Run("input is not modified", func(t *testing.T) {
		rows := sampleRows()
		_ = AppSchema.Sort(rows, DefaultSort())
		require.Equal(t, sampleRows(), rows)
	})
}

func TestSearch(t *testing.T) {
	t.Parallel()

	rows := sampleRows()

	t.Run("empty term keeps every row", func(t *testing.T) {
		require.Len(t, Search(rows, "  "), len(rows))
	})

	t.Run("matches any field ignoring case", func(t *testing.T) {
		got := Search(rows, "A_DB")
		require.Equal(t, []string{"Apple"}, names(got))
	})

	t.Run("result is a subset containing the term", func(t *testing.T) {
		for _, term := range []string{"app", "1", "db", "zzz", "Cherry"} {
			got := Search(rows, term)
			require.LessOrEqual(t, len(got), len(rows))
			for _, row := range got {
				require.Contains(t, strings.ToLower(Serialize(row)), strings.ToLower(term))
				require.Contains(t, rows, row)
			}
		}
	})

	t.Run("view searches before sorting", func(t *testing.T) {
		got := AppSchema.View(rows, "apple", SortState{Field: "clientName", Desc: true})
		require.Equal(t, []string{"Apple", "apple"}, names(got))
	})
}

func TestLists(t *testing.T) {
	t.Parallel()

	t.Run("split trims and drops blanks", func(t *testing.T) {
		require.Equal(t, []string{"English", "German", "Dutch"}, SplitList(" English, German,,Dutch ,"))
		require.Equal(t, []string{}, SplitList(nil))
		require.Equal(t, []string{"a", "b"}, SplitList([]any{"a", "b"}))
	})

	t.Run("round trip", func(t *testing.T) {
		for _, list := range [][]string{
			{"English"},
			{"English", "German", "Dutch"},
			{"Français", "日本語"},
			{},
		} {
			require.Equal(t, list, SplitList(JoinList(list)))
		}
	})

	t.Run("append unique", func(t *testing.T) {
		list := []string{"English"}
		list = AppendUnique(list, "German")
		list = AppendUnique(list, " German ")
		list = AppendUnique(list, "")
		require.Equal(t, []string{"English", "German"}, list)
	})
}

func TestMerge(t *testing.T) {
	t.Parallel()

	defaults := Record{"menuColor": "#141b4d", "push": "True", "clientName": ""}
	details := Record{"id": float64(5), "clientId": float64(1), "dbName": "acme_db"}
	notif := Record{"id": float64(9), "clientId": float64(1), "push": "False"}
	base := Record{"id": float64(1), "clientName": "Acme", "menuColor": "#000000"}

	got := Merge(defaults, details, notif, base)

	require.Equal(t, float64(1), got["id"])
	require.Equal(t, "Acme", got["clientName"])
	require.Equal(t, "#000000", got["menuColor"])
	require.Equal(t, "False", got["push"])
	require.Equal(t, "acme_db", got["dbName"])
	require.Equal(t, "#141b4d", defaults["menuColor"])
}

func TestRefs(t *testing.T) {
	t.Parallel()

	ref, err := DecodeRef(Record{"id": float64(12), "clientId": float64(3), "clientName": "Acme", "other": true})
	require.NoError(t, err)
	require.Equal(t, Ref{ID: "12", ClientID: "3", ClientName: "Acme"}, ref)

	require.Equal(t, "3", ClientKey(Record{"id": float64(12), "clientId": float64(3)}))
	require.Equal(t, "12", ClientKey(Record{"id": "12"}))

	rows := []Record{{"clientId": float64(2)}, {"clientId": "3", "dbName": "x"}}
	require.Equal(t, "x", FindByClient(rows, "3")["dbName"])
	require.Nil(t, FindByClient(rows, "4"))
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("decode", func(t *testing.T) {
		form := url.Values{
			"clientName":                {"Acme"},
			"medianFlag":                {"2"},
			"pumpPercentage":            {"7.5"},
			"soapShots":                 {""},
			"listOfLanguage":            {"English", "German"},
			"listOfLanguage_new":        {"German"},
			"listOfDisplayLanguage_new": {"Dutch"},
		}

		rec := FromForm(form)
		require.Equal(t, "Acme", rec["clientName"])
		require.Equal(t, int64(2), rec["medianFlag"])
		require.Equal(t, 7.5, rec["pumpPercentage"])
		require.Equal(t, "", rec["soapShots"])
		require.Equal(t, []string{"English", "German"}, rec["listOfLanguage"])
		require.Equal(t, []string{"Dutch"}, rec["listOfDisplayLanguage"])
		require.Equal(t, "", rec["dbName"])
	})

	t.Run("repeated list entries collapse", func(t *testing.T) {
		rec := FromForm(url.Values{
			"listOfLanguage":     {"English", " English", "", "Arabic", "English"},
			"listOfLanguage_new": {"Arabic"},
		})
		require.Equal(t, []string{"English", "Arabic"}, rec["listOfLanguage"])
	})

	t.Run("payload joins lists", func(t *testing.T) {
		rec := Record{"listOfLanguage": []string{"English", "German"}, "listOfDisplayLanguage": "English"}
		payload := Payload(rec)
		require.Equal(t, "English,German", payload["listOfLanguage"])
		require.Equal(t, "English", payload["listOfDisplayLanguage"])
		require.Equal(t, []string{"English", "German"}, rec["listOfLanguage"])
	})

	t.Run("fallback defaults cover every field", func(t *testing.T) {
		defaults := FallbackDefaults()
		for _, f := range AllFields() {
			require.Contains(t, defaults, f.Key)
		}
		require.Equal(t, []string{"English"}, defaults["listOfLanguage"])
		require.Equal(t, 24, defaults["stateMaintainHours"])
	})

	t.Run("form groups", func(t *testing.T) {
		groups := FormGroups()
		require.Len(t, groups, 3)

		total := 0
		for _, g := range groups {
			for _, f := range g.Fields {
				require.Equal(t, g.Group, f.Group)
			}
			total += len(g.Fields)
		}
		require.Equal(t, len(AllFields()), total)
	})

	t.Run("form value", func(t *testing.T) {
		flag, ok := Lookup("trashEnabled")
		require.True(t, ok)
		require.Equal(t, "True", flag.FormValue(Record{"trashEnabled": true}))
		require.Equal(t, "False", flag.FormValue(Record{"trashEnabled": "false"}))

		num, ok := Lookup("soapShots")
		require.True(t, ok)
		require.Equal(t, "1000", num.FormValue(Record{"soapShots": float64(1000)}))
		require.Equal(t, "list", KindList.String())
		require.Equal(t, "text", KindText.String())
	})

	t.Run("blank", func(t *testing.T) {
		rec := Blank(Record{"clientName": "Acme", "menuColor": "#fff"}, "clientName", "dbName")
		require.Equal(t, "", rec["clientName"])
		require.Equal(t, "", rec["dbName"])
		require.Equal(t, "#fff", rec["menuColor"])
	})
}

func TestString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", String(nil))
	require.Equal(t, "24", String(float64(24)))
	require.Equal(t, "7.5", String(7.5))
	require.Equal(t, "a,b", String([]any{"a", "b"}))
	require.Equal(t, "true", String(true))
}

func TestSchemas(t *testing.T) {
	t.Parallel()

	s, ok := SchemaFor("notif")
	require.True(t, ok)
	require.Equal(t, "notification_config", s.FileName)
	require.Equal(t, "Escalation L1", s.Columns[20].Label)

	s, ok = SchemaFor("nope")
	require.False(t, ok)
	require.Equal(t, "app", s.Tab)

	require.Equal(t, []string{"1", "Acme"}, Schema{Columns: AppSchema.Columns[:2]}.Row(Record{"id": float64(1), "clientName": "Acme"}))
	require.True(t, DetailsSchema.Numeric("id"))
	require.False(t, DetailsSchema.Numeric("clientName"))
}
