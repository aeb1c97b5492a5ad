package http

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/zancompute/zanconfig/internal/console/dashboard"
	"github.com/zancompute/zanconfig/internal/console/export"
	"github.com/zancompute/zanconfig/internal/console/service"
	"github.com/zancompute/zanconfig/internal/console/session"
	"github.com/zancompute/zanconfig/pkg/httpx"
	"github.com/zancompute/zanconfig/pkg/slogx"
	"github.com/zancompute/zanconfig/pkg/zanapi"
)

// dashboardSheet is the worksheet name of dashboard exports.
const dashboardSheet = "Dashboard"

// DashboardHandler serves the device monitoring dashboard.
type DashboardHandler struct {
	DashboardService *service.DashboardService

	// Refresh is the page's reload interval, zero disables it.
	Refresh time.Duration

	views *renderer
}

type dashboardData struct {
	Columns []dashboard.Column
	Rows    []dashboard.Row
	Clients []string
	Client  string
	Year    string
	Month   string
	CSVURL  string
	XLSXURL string
}

// LastUpdatedResponse is the JSON feed behind the dashboard.
type LastUpdatedResponse struct {
	Year    int                     `json:"year"`
	Month   int                     `json:"month"`
	Client  string                  `json:"client"`
	Clients []string                `json:"clients"`
	Rows    []zanapi.LastUpdatedRow `json:"rows"`
}

// periodQuery carries the dashboard's period and filter into its links.
func periodQuery(year, month int, client string) url.Values {
	q := url.Values{}
	q.Set("year", fmt.Sprintf("%04d", year))
	q.Set("month", fmt.Sprintf("%02d", month))
	if client != "" && client != dashboard.AllClients {
		q.Set("client", client)
	}
	return q
}

func exportURL(path string, q url.Values, format export.Format) string {
	q.Set("format", string(format))
	return path + "?" + q.Encode()
}

// HandleDashboard handles GET /
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := session.FromContext(ctx)
	q := r.URL.Query()

	p := page{
		Title:   "Dashboard",
		Nav:     "dashboard",
		Refresh: int(h.Refresh.Seconds()),
	}

	view, err := h.DashboardService.Load(ctx, sess, q.Get("year"), q.Get("month"), q.Get("client"))
	if err != nil {
		slogx.FromContext(ctx).Error("failed to load dashboard", "err", err)
		year, month := dashboard.Period(time.Now(), q.Get("year"), q.Get("month"))
		p.Error = messageFor(err, service.MsgDashboardFailed)
		p.Data = dashboardData{
			Columns: dashboard.Columns,
			Clients: []string{dashboard.AllClients},
			Client:  dashboard.AllClients,
			Year:    fmt.Sprintf("%04d", year),
			Month:   fmt.Sprintf("%02d", month),
		}
		h.views.render(w, r, statusFor(err), "dashboard.html", p)
		return
	}

	if len(view.Display) == 0 {
		p.Notice = service.MsgDashboardEmpty
	}

	p.Data = dashboardData{
		Columns: dashboard.Columns,
		Rows:    view.Display,
		Clients: view.Clients,
		Client:  view.Client,
		Year:    fmt.Sprintf("%04d", view.Year),
		Month:   fmt.Sprintf("%02d", view.Month),
		CSVURL:  exportURL("/dashboard/export", periodQuery(view.Year, view.Month, view.Client), export.FormatCSV),
		XLSXURL: exportURL("/dashboard/export", periodQuery(view.Year, view.Month, view.Client), export.FormatXLSX),
	}
	h.views.render(w, r, http.StatusOK, "dashboard.html", p)
}

// HandleExport handles GET /dashboard/export?format=csv|xlsx. The export
// holds the rows the dashboard shows for the same period and filter.
func (h *DashboardHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	q := r.URL.Query()

	format, err := export.ParseFormat(q.Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := h.DashboardService.Load(ctx, session.FromContext(ctx), q.Get("year"), q.Get("month"), q.Get("client"))
	if err != nil {
		log.Error("failed to load dashboard for export", "err", err)
		http.Error(w, messageFor(err, service.MsgDashboardFailed), statusFor(err))
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, dashboardSheet, dashboard.Table(view.Rows)); err != nil {
		log.Error("failed to encode dashboard export", "format", format, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	name := format.Filename(dashboard.ExportName(view.Client))
	log.Info("dashboard exported", "format", format, "rows", len(view.Rows), "file", name)
	httpx.WriteAttachment(w, name, format.ContentType(), buf.Bytes())
}

// HandleLastUpdated handles GET /api/lastupdated
//
//	@Summary		Device freshness feed
//	@Description	Returns the last-updated timestamps of every client for a month, filtered the same way as the dashboard.
//	@Tags			Dashboard
//	@Produce		json
//	@Security		SessionCookie
//	@Param			year	query		int						false	"Year, defaults to the current year"
//	@Param			month	query		int						false	"Month 1-12, defaults to the current month"
//	@Param			client	query		string					false	"Client name filter"
//	@Success		200		{object}	LastUpdatedResponse		"period, filter and rows"
//	@Failure		401		{object}	ErrorResponse			"no live session"
//	@Failure		502		{object}	ErrorResponse			"backend unavailable"
//	@Router			/api/lastupdated [get].
func (h *DashboardHandler) HandleLastUpdated(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	view, err := h.DashboardService.Load(ctx, session.FromContext(ctx), q.Get("year"), q.Get("month"), q.Get("client"))
	if err != nil {
		slogx.FromContext(ctx).Error("failed to load last-updated feed", "err", err)
		httpx.WriteJSON(w, http.StatusBadGateway, ErrorResponse{
			Error: messageFor(err, service.MsgDashboardFailed),
		})
		return
	}

	rows := view.Rows
	if rows == nil {
		rows = []zanapi.LastUpdatedRow{}
	}
	httpx.WriteJSON(w, http.StatusOK, LastUpdatedResponse{
		Year:    view.Year,
		Month:   view.Month,
		Client:  view.Client,
		Clients: view.Clients,
		Rows:    rows,
	})
}
