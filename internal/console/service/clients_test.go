package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zancompute/zanconfig/internal/console/records"
	"github.com/zancompute/zanconfig/internal/console/service"
)

func TestClientDefaults(t *testing.T) {
	t.Parallel()

	b := newBackend(t)
	b.handle("GET /client-defaults", http.StatusOK, map[string]any{
		"ok":                  true,
		"client_details":      map[string]any{"clientName": "Template", "dbName": "template_db", "stateMaintainHours": 48},
		"client_appdetails":   map[string]any{"listOfLanguage": "English, Arabic", "id": 77},
		"notification_config": map[string]any{"alert": "Email", "clientId": 77},
	})
	svc := &service.ClientsService{API: b.client()}

	rec := svc.Defaults(context.Background(), testSession())

	require.Equal(t, "", rec["id"])
	require.Equal(t, "", rec["clientId"])
	require.Equal(t, "", rec["clientName"])
	require.Equal(t, "", rec["dbName"])
	require.EqualValues(t, 48, rec["stateMaintainHours"])
	require.Equal(t, []string{"English", "Arabic"}, rec["listOfLanguage"])
	require.Equal(t, "Email", rec["alert"])
	require.Equal(t, "Zanitor", rec["headerText"])
	require.Equal(t, "Bearer tok", b.authHeader("GET /client-defaults"))
}

func TestClientDefaultsFallback(t *testing.T) {
	t.Parallel()

	b := newBackend(t)
	b.handle("GET /client-defaults", http.StatusInternalServerError, map[string]any{"error": "db down"})
	svc := &service.ClientsService{API: b.client()}

	rec := svc.Defaults(context.Background(), testSession())
	require.Equal(t, []string{"English"}, rec["listOfLanguage"])
	require.EqualValues(t, 24, rec["stateMaintainHours"])
}

func TestClientLoadMergeOrder(t *testing.T) {
	t.Parallel()

	b := newBackend(t)
	b.handle("GET /client/{id}", http.StatusOK, map[string]any{
		"id": 5, "clientName": "Airport", "headerText": "From client row",
	})
	b.handle("GET /client-defaults", http.StatusOK, map[string]any{
		"ok":                  true,
		"client_details":      map[string]any{"recentAlertHours": 12, "dbName": "default_db"},
		"client_appdetails":   map[string]any{"headerText": "From defaults"},
		"notification_config": map[string]any{"alert": "Get"},
	})
	b.handle("GET /client-details", http.StatusOK, []map[string]any{
		{"clientId": 4, "dbName": "other_db"},
		{"clientId": 5, "dbName": "airport_db", "headerText": "From details row"},
	})
	b.handle("GET /notification-configs", http.StatusOK, []map[string]any{
		{"clientId": "5", "alert": "Push", "listOfDisplayLanguage": "English,French"},
	})
	svc := &service.ClientsService{API: b.client()}

	rec, err := svc.Load(context.Background(), testSession(), "5")
	require.NoError(t, err)

	require.Equal(t, "airport_db", rec["dbName"])
	require.Equal(t, "Push", rec["alert"])
	require.Equal(t, "From client row", rec["headerText"])
	require.EqualValues(t, 12, rec["recentAlertHours"])
	require.EqualValues(t, 6, records.FallbackDefaults()["recentAlertHours"])
	require.Equal(t, []string{"English", "French"}, rec["listOfDisplayLanguage"])
	require.EqualValues(t, 5, rec["id"])
}

func TestClientLoadMissing(t *testing.T) {
	t.Parallel()

	b := newBackend(t)
	b.handle("GET /client/{id}", http.StatusNotFound, map[string]any{"error": "Client not found"})
	svc := &service.ClientsService{API: b.client()}

	_, err := svc.Load(context.Background(), testSession(), "404")
	require.Error(t, err)
}

func TestClientCreateValidation(t *testing.T) {
	t.Parallel()

	b := newBackend(t)
	b.handle("POST /create-client", http.StatusOK, map[string]any{"ok": true})
	svc := &service.ClientsService{API: b.client()}
	ctx := context.Background()

	valid := func() records.Record {
		rec := records.FallbackDefaults()
		rec["clientName"] = "Airport"
		rec["dbName"] = "airport"
		rec["alert"] = "Push"
		return rec
	}

	cases := []struct {
		name  string
		key   string
		value any
		want  string
	}{
		{"client name", "clientName", "   ", "Client Name is required"},
		{"db name", "dbName", "", "DB Name is required"},
		{"alert", "alert", "", "Alert Type is required"},
		{"default language", "defaultLanguage", nil, "Default Language is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := valid()
			rec[tc.key] = tc.value
			err := svc.Create(ctx, testSession(), rec)
			require.ErrorIs(t, err, service.ErrValidation)
			require.Equal(t, tc.want, err.Error())
		})
	}
	require.Zero(t, b.count("POST /create-client"))

	rec := valid()
	rec["listOfLanguage"] = []string{"English", "Arabic"}
	require.NoError(t, svc.Create(ctx, testSession(), rec))
	require.Equal(t, 1, b.count("POST /create-client"))
}

func TestClientUpdateValidation(t *testing.T) {
	t.Parallel()

	b := newBackend(t)
	b.handle("PUT /update-client/{id}", http.StatusOK, map[string]any{"ok": true})
	svc := &service.ClientsService{API: b.client()}

	// Edit does not require the add-only fields.
	rec := records.Record{"clientName": "Airport", "dbName": "airport", "alert": ""}
	require.NoError(t, svc.Update(context.Background(), testSession(), "5", rec))

	rec["dbName"] = ""
	err := svc.Update(context.Background(), testSession(), "5", rec)
	require.Equal(t, "DB Name is required", err.Error())
	require.Equal(t, 1, b.count("PUT /update-client/5"))
}

func TestLoadTablesPartialFailure(t *testing.T) {
	t.Parallel()

	b := newBackend(t)
	b.handle("GET /clients", http.StatusOK, []map[string]any{{"id": 1, "clientName": "A"}})
	b.handle("GET /client-details", http.StatusInternalServerError, map[string]any{"error": "boom"})
	b.handle("GET /notification-configs", http.StatusOK, []map[string]any{})
	svc := &service.ClientsService{API: b.client()}

	tables := svc.LoadTables(context.Background(), testSession())
	require.Len(t, tables.Clients, 1)
	require.Empty(t, tables.Details)
	require.NotNil(t, tables.Details)
	require.Empty(t, tables.Notifications)
	require.Equal(t, []string{records.DetailsSchema.Title}, tables.Failed)
	require.Len(t, tables.Rows("app"), 1)
}

func TestClientDelete(t *testing.T) {
	t.Parallel()

	b := newBackend(t)
	b.handle("DELETE /delete-client/{id}", http.StatusOK, map[string]any{"ok": true})
	svc := &service.ClientsService{API: b.client()}

	require.NoError(t, svc.Delete(context.Background(), testSession(), "5"))
	require.Equal(t, 1, b.count("DELETE /delete-client/5"))
}
