package zanapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ============================================================================
// Listing
// ============================================================================

// ListClients returns the joined client rows (core settings plus app details).
func (s *Session) ListClients(ctx context.Context) ([]Record, error) {
	return s.list(ctx, "/clients")
}

// ListClientDetails returns every client_details row with its clientId.
func (s *Session) ListClientDetails(ctx context.Context) ([]Record, error) {
	return s.list(ctx, "/client-details")
}

// ListNotificationConfigs returns every notification configuration row with its clientId.
func (s *Session) ListNotificationConfigs(ctx context.Context) ([]Record, error) {
	return s.list(ctx, "/notification-configs")
}

func (s *Session) list(ctx context.Context, path string) ([]Record, error) {
	var rows []Record
	if err := s.do(ctx, http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}

	return rows, nil
}

// ============================================================================
// Single Client
// ============================================================================

// GetClientDefaults returns the server-side baseline values for a new client.
func (s *Session) GetClientDefaults(ctx context.Context) (*ClientDefaults, error) {
	var resp ClientDefaults
	if err := s.do(ctx, http.MethodGet, "/client-defaults", nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// GetClient returns the merged record of one client. An unknown id yields
// an empty record rather than an error.
func (s *Session) GetClient(ctx context.Context, id string) (Record, error) {
	var rec Record
	if err := s.do(ctx, http.MethodGet, "/client/"+url.PathEscape(id), nil, &rec); err != nil {
		return nil, err
	}

	if rec == nil {
		rec = Record{}
	}

	return rec, nil
}

// CreateClient stores a new client from the combined form payload.
func (s *Session) CreateClient(ctx context.Context, payload Record) (*Status, error) {
	var resp Status
	if err := s.do(ctx, http.MethodPost, "/create-client", payload, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// UpdateClient overwrites a client with the combined form payload.
func (s *Session) UpdateClient(ctx context.Context, id string, payload Record) (*Status, error) {
	var resp Status
	if err := s.do(ctx, http.MethodPut, "/update-client/"+url.PathEscape(id), payload, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// DeleteClient removes a client and its dependent rows.
func (s *Session) DeleteClient(ctx context.Context, id string) error {
	var resp Status
	return s.do(ctx, http.MethodDelete, "/delete-client/"+url.PathEscape(id), nil, &resp)
}

// ============================================================================
// Dashboard
// ============================================================================

// LastUpdated returns the per-client freshness rows for one month.
func (s *Session) LastUpdated(ctx context.Context, year, month int) ([]LastUpdatedRow, error) {
	q := url.Values{
		"year":  {strconv.Itoa(year)},
		"month": {fmt.Sprintf("%02d", month)},
	}

	var rows []LastUpdatedRow
	if err := s.do(ctx, http.MethodGet, "/lastupdated?"+q.Encode(), nil, &rows); err != nil {
		return nil, err
	}

	return rows, nil
}
