package http

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/zancompute/zanconfig/internal/console/export"
	"github.com/zancompute/zanconfig/internal/console/records"
	"github.com/zancompute/zanconfig/internal/console/service"
	"github.com/zancompute/zanconfig/internal/console/session"
	"github.com/zancompute/zanconfig/pkg/httpx"
	"github.com/zancompute/zanconfig/pkg/slogx"
)

// Form steps and the actions their buttons submit.
const (
	stepForm   = "form"
	stepReview = "review"

	actionAdd     = "add"
	actionBack    = "back"
	actionReview  = "review"
	actionConfirm = "confirm"
	actionSave    = "save"
)

// ClientsHandler serves the client list and the add/edit forms.
type ClientsHandler struct {
	ClientsService *service.ClientsService
	views          *renderer
}

// listState is the tab, sort and search of the client list, all carried
// in the query string.
type listState struct {
	Schema records.Schema
	Sort   records.SortState
	Query  string
}

func parseListState(q url.Values) listState {
	schema, _ := records.SchemaFor(q.Get("tab"))
	return listState{
		Schema: schema,
		Sort:   records.ParseSort(q.Get("sort"), q.Get("dir")),
		Query:  strings.TrimSpace(q.Get("q")),
	}
}

func (s listState) values() url.Values {
	q := url.Values{}
	q.Set("tab", s.Schema.Tab)
	q.Set("sort", s.Sort.Field)
	q.Set("dir", s.Sort.Direction())
	if s.Query != "" {
		q.Set("q", s.Query)
	}
	return q
}

func (s listState) link(path string) string {
	return path + "?" + s.values().Encode()
}

type tabLink struct {
	Title  string
	URL    string
	Active bool
}

type headerLink struct {
	Label string
	URL   string
	Arrow string
}

type listRow struct {
	Cells     []string
	EditURL   string
	DeleteURL string
}

type clientsData struct {
	Tabs    []tabLink
	Tab     string
	Query   string
	Sort    records.SortState
	Headers []headerLink
	Rows    []listRow
	Count   int
	CSVURL  string
	XLSXURL string
}

// rowID is the client a list row edits or deletes: the row's own id on
// the client tab, its clientId on the others.
func rowID(schema records.Schema, rec records.Record) string {
	if schema.Tab == records.AppSchema.Tab {
		ref, err := records.DecodeRef(rec)
		if err != nil {
			return ""
		}
		return ref.ID
	}
	return records.ClientKey(rec)
}

func clientPath(id, action string) string {
	return "/clients/" + url.PathEscape(id) + "/" + action
}

// HandleList handles GET /clients?tab=&sort=&dir=&q=
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, http.StatusOK, "")
}

func (h *ClientsHandler) renderList(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	ctx := r.Context()
	state := parseListState(r.URL.Query())
	tables := h.ClientsService.LoadTables(ctx, session.FromContext(ctx))

	if errMsg == "" && len(tables.Failed) > 0 {
		errMsg = fmt.Sprintf("%s: %s", service.MsgClientLoadFailed, strings.Join(tables.Failed, ", "))
	}

	rows := state.Schema.View(tables.Rows(state.Schema.Tab), state.Query, state.Sort)

	data := clientsData{
		Tab:     state.Schema.Tab,
		Query:   state.Query,
		Sort:    state.Sort,
		Count:   len(rows),
		CSVURL:  exportURL("/clients/export", state.values(), export.FormatCSV),
		XLSXURL: exportURL("/clients/export", state.values(), export.FormatXLSX),
	}

	for _, s := range records.Schemas() {
		tab := listState{Schema: s, Sort: records.DefaultSort(), Query: state.Query}
		data.Tabs = append(data.Tabs, tabLink{
			Title:  s.Title,
			URL:    tab.link("/clients"),
			Active: s.Tab == state.Schema.Tab,
		})
	}

	for _, c := range state.Schema.Columns {
		next := state
		next.Sort = state.Sort.Toggle(c.Key)
		data.Headers = append(data.Headers, headerLink{
			Label: c.Label,
			URL:   next.link("/clients"),
			Arrow: state.Sort.Arrow(c.Key),
		})
	}

	back := state.values().Encode()
	for _, rec := range rows {
		row := listRow{Cells: state.Schema.Row(rec)}
		if id := rowID(state.Schema, rec); id != "" {
			row.EditURL = clientPath(id, "edit")
			row.DeleteURL = clientPath(id, "delete") + "?" + back
		}
		data.Rows = append(data.Rows, row)
	}

	h.views.render(w, r, status, "clients.html", page{
		Title: "Clients",
		Nav:   "clients",
		Error: errMsg,
		Data:  data,
	})
}

// HandleExport handles GET /clients/export?tab=&format=. The file holds
// the rows the list shows for the same tab, search and sort.
func (h *ClientsHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	q := r.URL.Query()

	format, err := export.ParseFormat(q.Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	state := parseListState(q)
	tables := h.ClientsService.LoadTables(ctx, session.FromContext(ctx))
	for _, failed := range tables.Failed {
		if failed == state.Schema.Title {
			http.Error(w, service.MsgClientLoadFailed, http.StatusBadGateway)
			return
		}
	}

	rows := state.Schema.View(tables.Rows(state.Schema.Tab), state.Query, state.Sort)

	var buf bytes.Buffer
	if err := export.Write(&buf, format, export.DefaultSheet, export.FromSchema(state.Schema, rows)); err != nil {
		log.Error("failed to encode export", "tab", state.Schema.Tab, "format", format, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	name := format.Filename(state.Schema.FileName)
	log.Info("clients exported", "tab", state.Schema.Tab, "format", format, "rows", len(rows))
	httpx.WriteAttachment(w, name, format.ContentType(), buf.Bytes())
}

type formField struct {
	Key     string
	Label   string
	Kind    string
	Value   string
	Options []string
	Items   []string
}

// NewItemName is the input that appends to a list field.
func (f formField) NewItemName() string {
	return f.Key + records.NewItemSuffix
}

type formGroup struct {
	Title  string
	Fields []formField
}

type formData struct {
	Heading     string
	Action      string
	Submit      string
	SubmitLabel string
	Groups      []formGroup
}

type doneData struct {
	Heading  string
	Mode     string
	CloseURL string
}

func buildGroups(rec records.Record) []formGroup {
	var groups []formGroup
	for _, g := range records.FormGroups() {
		group := formGroup{Title: g.Title}
		for _, f := range g.Fields {
			field := formField{
				Key:   f.Key,
				Label: f.Label,
				Kind:  f.Kind.String(),
				Value: f.FormValue(rec),
			}
			switch f.Kind {
			case records.KindFlag:
				field.Options = records.FlagOptions
			case records.KindChoice:
				field.Options = f.Options
			case records.KindList:
				field.Items = records.SplitList(rec[f.Key])
			}
			group.Fields = append(group.Fields, field)
		}
		groups = append(groups, group)
	}
	return groups
}

func (h *ClientsHandler) renderNewForm(w http.ResponseWriter, r *http.Request, status int, rec records.Record, errMsg string) {
	h.views.render(w, r, status, "client_form.html", page{
		Title: "Add Client",
		Nav:   "new",
		Error: errMsg,
		Data: formData{
			Heading:     "Add Client",
			Action:      "/clients/new",
			Submit:      actionReview,
			SubmitLabel: "Review",
			Groups:      buildGroups(rec),
		},
	})
}

func (h *ClientsHandler) renderReview(w http.ResponseWriter, r *http.Request, status int, rec records.Record, errMsg string) {
	h.views.render(w, r, status, "client_review.html", page{
		Title: "Review Client",
		Nav:   "new",
		Error: errMsg,
		Data: formData{
			Heading: "Review Client",
			Action:  "/clients/new",
			Groups:  buildGroups(rec),
		},
	})
}

// HandleNewForm handles GET /clients/new, prefilled with the defaults.
func (h *ClientsHandler) HandleNewForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rec := h.ClientsService.Defaults(ctx, session.FromContext(ctx))
	h.renderNewForm(w, r, http.StatusOK, rec, "")
}

// HandleNew handles POST /clients/new. The hidden step field says which
// page was submitted: the form goes to review once it validates, and the
// review page creates the client on confirm.
func (h *ClientsHandler) HandleNew(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	rec := records.FromForm(r.PostForm)
	step, action := r.PostFormValue("step"), r.PostFormValue("action")

	switch {
	case action == actionAdd, action == actionBack:
		h.renderNewForm(w, r, http.StatusOK, rec, "")

	case step == stepReview && action == actionConfirm:
		if err := h.ClientsService.Create(ctx, session.FromContext(ctx), rec); err != nil {
			slogx.FromContext(ctx).Warn("failed to create client", "err", err)
			h.renderReview(w, r, statusFor(err), rec, messageFor(err, service.MsgClientSaveFailed))
			return
		}
		h.views.render(w, r, http.StatusOK, "client_done.html", page{
			Title: "Client Created",
			Nav:   "new",
			Data:  doneData{Heading: "Client created successfully!", Mode: "new"},
		})

	default:
		if err := service.ValidateNew(rec); err != nil {
			h.renderNewForm(w, r, statusFor(err), rec, messageFor(err, service.MsgClientSaveFailed))
			return
		}
		h.renderReview(w, r, http.StatusOK, rec, "")
	}
}

func (h *ClientsHandler) renderEditForm(w http.ResponseWriter, r *http.Request, status int, id string, rec records.Record, errMsg string) {
	data := formData{
		Heading:     "Edit Client",
		Action:      clientPath(id, "edit"),
		Submit:      actionSave,
		SubmitLabel: "Save",
	}
	if rec != nil {
		data.Groups = buildGroups(rec)
	}

	h.views.render(w, r, status, "client_form.html", page{
		Title: "Edit Client",
		Nav:   "clients",
		Error: errMsg,
		Data:  data,
	})
}

// HandleEditForm handles GET /clients/{id}/edit
func (h *ClientsHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	rec, err := h.ClientsService.Load(ctx, session.FromContext(ctx), id)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to load client", "client_id", id, "err", err)
		h.renderEditForm(w, r, statusFor(err), id, nil, messageFor(err, service.MsgClientLoadFailed))
		return
	}

	h.renderEditForm(w, r, http.StatusOK, id, rec, "")
}

// HandleEdit handles POST /clients/{id}/edit
func (h *ClientsHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	rec := records.FromForm(r.PostForm)

	if r.PostFormValue("action") == actionAdd {
		h.renderEditForm(w, r, http.StatusOK, id, rec, "")
		return
	}

	if err := h.ClientsService.Update(ctx, session.FromContext(ctx), id, rec); err != nil {
		slogx.FromContext(ctx).Warn("failed to update client", "client_id", id, "err", err)
		h.renderEditForm(w, r, statusFor(err), id, rec, messageFor(err, service.MsgClientSaveFailed))
		return
	}

	h.views.render(w, r, http.StatusOK, "client_done.html", page{
		Title: "Client Updated",
		Nav:   "clients",
		Data: doneData{
			Heading:  service.MsgClientUpdated,
			Mode:     "edit",
			CloseURL: clientPath(id, "edit"),
		},
	})
}

// HandleDelete handles POST /clients/{id}/delete and returns to the list
// the request came from.
func (h *ClientsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if err := h.ClientsService.Delete(ctx, session.FromContext(ctx), id); err != nil {
		slogx.FromContext(ctx).Warn("failed to delete client", "client_id", id, "err", err)
		h.renderList(w, r, statusFor(err), messageFor(err, service.MsgClientDeleteFailed))
		return
	}

	httpx.Redirect(w, r, parseListState(r.URL.Query()).link("/clients"))
}
