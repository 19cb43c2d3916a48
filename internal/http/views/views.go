package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"time"

	"github.com/rogerio-castellano/medisync/internal/auth"
	"github.com/rogerio-castellano/medisync/internal/http/flash"
)

//go:embed templates/*.html
var files embed.FS

// Page names, one per file under templates/ besides the layout.
const (
	Login         = "login"
	Dashboard     = "dashboard"
	Products      = "products"
	Purchases     = "purchases"
	Orders        = "orders"
	Notifications = "notifications"
)

// Page is what every template receives.
type Page struct {
	Title   string
	Active  string
	Session auth.Session
	Flashes []flash.Message
	Data    any
}

// AddError shows msg on the page being rendered.
func (p *Page) AddError(msg string) {
	p.Flashes = append(p.Flashes, flash.Message{Category: flash.Error, Text: msg})
}

type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
	"dateptr": func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format("2006-01-02")
	},
	"datetime": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
	"intptr": func(p *int) int {
		if p == nil {
			return 0
		}
		return *p
	},
	"eqptr": func(p *int, v int) bool {
		return p != nil && *p == v
	},
}

// New parses the layout together with each page.
func New() (*Renderer, error) {
	names, err := fs.Glob(files, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: map[string]*template.Template{}}
	for _, name := range names {
		base := path.Base(name)
		if base == "layout.html" {
			continue
		}
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(files, "templates/layout.html", name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		r.pages[base[:len(base)-len(".html")]] = t
	}
	return r, nil
}

// Render writes the page with the given status. Output is buffered so a template error
// never produces half a page.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", page); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
