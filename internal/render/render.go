// Package render projects a portfolio snapshot into one of the named page
// templates. Skills are regrouped on every render; nothing is cached.
package render

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"

	"github.com/Zachkp/portfolio-builder/internal/portfolio"
)

//go:embed templates/*.html
var templateFS embed.FS

// ErrUnknownTemplate means no layout matches the requested name.
var ErrUnknownTemplate = errors.New("no template matches")

// EmptyPage is rendered when the selected template matches nothing.
const EmptyPage = "empty.html"

// Page is the data handed to every layout.
type Page struct {
	portfolio.Snapshot
	Groups        []portfolio.CategoryGroup
	ShareURL      string
	ContactAction string
	Notice        string
}

// NewPage prepares snap for rendering.
func NewPage(snap portfolio.Snapshot) Page {
	return Page{Snapshot: snap, Groups: portfolio.GroupByCategory(snap.Skills)}
}

type Renderer struct {
	tmpl     *template.Template
	md       goldmark.Markdown
	sanitize *bluemonday.Policy
}

func New() (*Renderer, error) {
	r := &Renderer{
		md:       goldmark.New(),
		sanitize: bluemonday.UGCPolicy(),
	}
	tmpl, err := template.New("").Funcs(r.funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parsing templates")
	}
	r.tmpl = tmpl
	return r, nil
}

// Templates exposes the parsed set so it can be installed on a gin engine.
func (r *Renderer) Templates() *template.Template {
	return r.tmpl
}

// FileFor maps a template name to its layout file.
func FileFor(name string) (string, bool) {
	if !slices.Contains(portfolio.Templates, name) {
		return "", false
	}
	return name + ".html", true
}

// Render writes the named layout. An unrecognised name writes nothing and
// returns ErrUnknownTemplate.
func (r *Renderer) Render(w io.Writer, name string, page Page) error {
	file, ok := FileFor(name)
	if !ok {
		return errors.Wrapf(ErrUnknownTemplate, "%q", name)
	}
	if page.Groups == nil {
		page.Groups = portfolio.GroupByCategory(page.Skills)
	}
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, file, page); err != nil {
		return errors.Wrapf(err, "rendering %s", name)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Markdown renders user text as sanitised HTML.
func (r *Renderer) Markdown(s string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(s), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(s))
	}
	return template.HTML(r.sanitize.SanitizeBytes(buf.Bytes()))
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"markdown": r.Markdown,
		"stars":    portfolio.Stars,
		"starRow":  starRow,
		"initials": initials,
		"count": func(n *int) string {
			if n == nil {
				return "0"
			}
			return humanize.Comma(int64(*n))
		},
		"join": strings.Join,
	}
}

// starRow draws a filled/empty rating for a level, e.g. "★★☆".
func starRow(level string) string {
	n := portfolio.Stars(level)
	return strings.Repeat("★", n) + strings.Repeat("☆", portfolio.MaxStars-n)
}

func initials(name string) string {
	var b strings.Builder
	for _, f := range strings.Fields(name) {
		b.WriteString(strings.ToUpper(string([]rune(f)[0])))
	}
	return b.String()
}
