package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names understood by Renderer.Render.
const (
	PageHome     = "index"
	PageAbout    = "about"
	PageServices = "services"
	PageProducts = "products"
	PageBooking  = "booking"
	PageContact  = "contact"
	PageError    = "error"
)

var pageNames = []string{PageHome, PageAbout, PageServices, PageProducts, PageBooking, PageContact, PageError}

// Page is the value every template executes against.
type Page struct {
	Title       string
	Nav         string
	Flashes     []Flash
	CurrentYear int
	Data        any
}

// Renderer executes the embedded page templates inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
	now   func() time.Time
}

func NewRenderer() (*Renderer, error) {
	title := cases.Title(language.English)
	funcs := template.FuncMap{
		"price": func(d decimal.Decimal) string { return d.StringFixed(2) },
		"title": title.String,
		"date":  func(t time.Time) string { return t.Format("2006-01-02") },
	}

	layout, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = t
	}

	return &Renderer{pages: pages, now: time.Now}, nil
}

// Render writes page name with the given status. The template runs into a
// buffer first so a template failure still produces a clean 500.
func (rn *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, page Page) {
	t, ok := rn.pages[name]
	if !ok {
		zerolog.Ctx(r.Context()).Error().Str("page", name).Msg("unknown page template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	page.CurrentYear = rn.now().Year()

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", page); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("page", name).Msg("render template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// RenderError renders the generic error page.
func (rn *Renderer) RenderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	rn.Render(w, r, status, PageError, Page{
		Title: http.StatusText(status),
		Data:  message,
	})
}

// StaticHandler serves the embedded css, js and images under /static/.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
