package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/zancompute/zanconfig/internal/console/session"
	"github.com/zancompute/zanconfig/pkg/httpx"
	"github.com/zancompute/zanconfig/pkg/slogx"
	"github.com/zancompute/zanconfig/pkg/zanapi"
)

//go:embed templates/*.html
var templateFS embed.FS

// page is the data every template receives. Page-specific values go in Data.
type page struct {
	Title   string
	Nav     string
	User    *zanapi.User
	CSRF    template.HTML
	Error   string
	Notice  string
	Refresh int // seconds between automatic reloads, 0 disables
	Data    any
}

var funcs = template.FuncMap{
	"join": strings.Join,
}

// renderer holds one parsed template set per page, each layered on layout.html.
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, err
	}

	r := &renderer{pages: map[string]*template.Template{}}
	for _, e := range entries {
		name := e.Name()
		if name == "layout.html" {
			continue
		}

		tpl, err := template.New("layout.html").Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = tpl
	}
	return r, nil
}

// render writes name with status. The page is executed into a buffer first
// so a template error never leaves a half-written response.
func (rd *renderer) render(w http.ResponseWriter, r *http.Request, status int, name string, p page) {
	tpl, ok := rd.pages[name]
	if !ok {
		slogx.FromContext(r.Context()).Error("unknown template", "template", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	p.CSRF = csrf.TemplateField(r)
	if s := session.FromContext(r.Context()); s != nil && p.User == nil {
		user := s.User
		p.User = &user
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, p); err != nil {
		slogx.FromContext(r.Context()).Error("render failed", "template", name, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
