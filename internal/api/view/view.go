// Package view renders the console's server-side pages. Templates are
// embedded so the binary is self-contained.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"sumo_console/internal/common"
	"sumo_console/internal/console/session"
)

//go:embed templates/*.html
var files embed.FS

type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded template set. onceToken is called from
// mutating forms to embed a fresh one-time token per form.
func NewRenderer(onceToken func() string) (*Renderer, error) {
	t := template.New("").Funcs(template.FuncMap{
		"once": onceToken,
	})
	t, err := t.ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{tmpl: t}, nil
}

// Page is the envelope every template receives.
type Page struct {
	Title    string
	Identity session.Identity
	Flash    *common.Flash
	Data     any
}

func (v *Renderer) Render(w http.ResponseWriter, name string, page Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := v.tmpl.ExecuteTemplate(w, name, page); err != nil {
		// Headers are already out; all that's left is to log.
		log.Printf("rendering %s: %v", name, err)
	}
}

// FormField describes one editable attribute of a resource, shared by the
// create form and the per-row edit forms.
type FormField struct {
	Name  string
	Label string
	Type  string // "text", "date", "number", "email", "password"
}

// Row is one record flattened for the generic table page. Values align
// with the page's Fields.
type Row struct {
	ID     int
	Values []string
}

// DetailsTable is a read-only denormalized view rendered under a resource
// table (the /details endpoints).
type DetailsTable struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// EntityPage is the Data payload of the generic resource screen.
type EntityPage struct {
	Name    string // path segment under /dashboard
	Fields  []FormField
	Rows    []Row
	Details *DetailsTable
}
