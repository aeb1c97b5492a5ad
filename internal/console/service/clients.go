package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/zancompute/zanconfig/internal/console/records"
	"github.com/zancompute/zanconfig/internal/console/session"
	"github.com/zancompute/zanconfig/pkg/slogx"
	"github.com/zancompute/zanconfig/pkg/zanapi"
)

const (
	MsgClientSaveFailed   = "Failed to save client"
	MsgClientLoadFailed   = "Failed to load client data"
	MsgClientUpdated      = "Client updated successfully!"
	MsgClientDeleteFailed = "Error deleting client"
)

// ClientsService backs the client list and the add/edit forms.
type ClientsService struct {
	API *zanapi.Client
}

// Tables holds the three record tables, each empty when its load failed.
type Tables struct {
	Clients       []records.Record
	Details       []records.Record
	Notifications []records.Record
	Failed        []string
}

// Rows returns the rows backing tab.
func (t Tables) Rows(tab string) []records.Record {
	switch tab {
	case records.DetailsSchema.Tab:
		return t.Details
	case records.NotificationSchema.Tab:
		return t.Notifications
	default:
		return t.Clients
	}
}

// LoadTables fetches the three tables concurrently. A failed table is left
// empty and named in Failed; the others still render.
func (s *ClientsService) LoadTables(ctx context.Context, sess *session.Session) Tables {
	api := s.API.WithToken(sess.Token)
	log := slogx.FromContext(ctx)

	type result struct {
		rows []records.Record
		err  error
	}
	loaders := []struct {
		name string
		load func(context.Context) ([]zanapi.Record, error)
	}{
		{records.AppSchema.Title, api.ListClients},
		{records.DetailsSchema.Title, api.ListClientDetails},
		{records.NotificationSchema.Title, api.ListNotificationConfigs},
	}

	results := make([]chan result, len(loaders))
	for i, l := range loaders {
		results[i] = make(chan result, 1)
		go func() {
			rows, err := l.load(ctx)
			results[i] <- result{rows: rows, err: err}
		}()
	}

	var out Tables
	tables := []*[]records.Record{&out.Clients, &out.Details, &out.Notifications}
	for i, ch := range results {
		res := <-ch
		if res.err != nil {
			log.Warn("failed to load table", "table", loaders[i].name, "err", res.err)
			out.Failed = append(out.Failed, loaders[i].name)
			*tables[i] = []records.Record{}
			continue
		}
		*tables[i] = res.rows
	}
	return out
}

// Defaults is the add-form prefill: built-in fallbacks overlaid by the
// backend's defaults, with identity fields cleared. A failed defaults call
// falls back to the built-in values.
func (s *ClientsService) Defaults(ctx context.Context, sess *session.Session) records.Record {
	sources := []records.Record{records.FallbackDefaults()}

	defaults, err := s.API.WithToken(sess.Token).GetClientDefaults(ctx)
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to load client defaults", "err", err)
	} else {
		sources = append(sources, defaults.ClientDetails, defaults.ClientAppDetails, defaults.NotificationConfig)
	}

	rec := records.Merge(sources...)
	rec = records.Blank(rec, "id", "clientId", "clientName", "dbName")
	return records.NormalizeLists(rec)
}

// Load builds the edit form for client id. Fields merge, last source
// winning, in the order: fallback defaults, backend defaults, stored
// details row, stored notification row, stored client row.
func (s *ClientsService) Load(ctx context.Context, sess *session.Session, id string) (records.Record, error) {
	api := s.API.WithToken(sess.Token)

	client, err := api.GetClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get client %s: %w", id, err)
	}

	sources := []records.Record{records.FallbackDefaults()}

	if defaults, err := api.GetClientDefaults(ctx); err == nil {
		sources = append(sources, defaults.ClientDetails, defaults.ClientAppDetails, defaults.NotificationConfig)
	} else {
		slogx.FromContext(ctx).Warn("failed to load client defaults", "err", err)
	}

	details, err := api.ListClientDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("list client details: %w", err)
	}
	notifications, err := api.ListNotificationConfigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notification configs: %w", err)
	}

	sources = append(sources,
		records.FindByClient(details, id),
		records.FindByClient(notifications, id),
		client,
	)

	return records.NormalizeLists(records.Merge(sources...)), nil
}

// ClientInput holds the fields every save requires.
type ClientInput struct {
	ClientName string `validate:"required"`
	DBName     string `validate:"required"`
}

// NewClientInput adds the fields the add flow also requires.
type NewClientInput struct {
	ClientName             string `validate:"required"`
	DBName                 string `validate:"required"`
	Alert                  string `validate:"required"`
	DefaultLanguage        string `validate:"required"`
	DefaultDisplayLanguage string `validate:"required"`
}

var clientMessages = map[string]string{
	"ClientName.required":             "Client Name is required",
	"DBName.required":                 "DB Name is required",
	"Alert.required":                  "Alert Type is required",
	"DefaultLanguage.required":        "Default Language is required",
	"DefaultDisplayLanguage.required": "Default Display Language is required",
}

func field(rec records.Record, key string) string {
	return strings.TrimSpace(records.String(rec[key]))
}

// ValidateNew checks an add-form record before the review step.
func ValidateNew(rec records.Record) error {
	return checkInput(NewClientInput{
		ClientName:             field(rec, "clientName"),
		DBName:                 field(rec, "dbName"),
		Alert:                  field(rec, "alert"),
		DefaultLanguage:        field(rec, "defaultLanguage"),
		DefaultDisplayLanguage: field(rec, "defaultDisplayLanguage"),
	}, clientMessages)
}

// ValidateExisting checks an edit-form record before it is saved.
func ValidateExisting(rec records.Record) error {
	return checkInput(ClientInput{
		ClientName: field(rec, "clientName"),
		DBName:     field(rec, "dbName"),
	}, clientMessages)
}

// Create validates rec and submits it as one combined payload.
func (s *ClientsService) Create(ctx context.Context, sess *session.Session, rec records.Record) error {
	if err := ValidateNew(rec); err != nil {
		return err
	}

	if _, err := s.API.WithToken(sess.Token).CreateClient(ctx, records.Payload(rec)); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("client created", "client_name", field(rec, "clientName"))
	return nil
}

// Update validates rec and saves it over client id.
func (s *ClientsService) Update(ctx context.Context, sess *session.Session, id string, rec records.Record) error {
	if err := ValidateExisting(rec); err != nil {
		return err
	}

	if _, err := s.API.WithToken(sess.Token).UpdateClient(ctx, id, records.Payload(rec)); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("client updated", "client_id", id)
	return nil
}

// Delete removes client id.
func (s *ClientsService) Delete(ctx context.Context, sess *session.Session, id string) error {
	if err := s.API.WithToken(sess.Token).DeleteClient(ctx, id); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("client deleted", "client_id", id)
	return nil
}
