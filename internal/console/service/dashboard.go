package service

import (
	"context"
	"time"

	"github.com/zancompute/zanconfig/internal/console/dashboard"
	"github.com/zancompute/zanconfig/internal/console/session"
	"github.com/zancompute/zanconfig/pkg/zanapi"
)

const (
	MsgDashboardFailed = "Failed to load dashboard data"
	MsgDashboardEmpty  = "No data available"
)

type DashboardService struct {
	API *zanapi.Client

	// Now defaults to time.Now.
	Now func() time.Time
}

// DashboardView is the dashboard for one period and client filter.
type DashboardView struct {
	Year, Month int
	Client      string
	Clients     []string
	Rows        []zanapi.LastUpdatedRow // filtered
	Display     []dashboard.Row
}

func (s *DashboardService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Load fetches the last-updated feed for the requested period (blank
// values mean the current month) and applies the client filter.
func (s *DashboardService) Load(ctx context.Context, sess *session.Session, year, month, client string) (*DashboardView, error) {
	now := s.now()
	y, m := dashboard.Period(now, year, month)

	rows, err := s.API.WithToken(sess.Token).LastUpdated(ctx, y, m)
	if err != nil {
		return nil, err
	}

	if client == "" {
		client = dashboard.AllClients
	}
	filtered := dashboard.Filter(rows, client)

	return &DashboardView{
		Year:    y,
		Month:   m,
		Client:  client,
		Clients: dashboard.Clients(rows),
		Rows:    filtered,
		Display: dashboard.Build(filtered, now),
	}, nil
}
