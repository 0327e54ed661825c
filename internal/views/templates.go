package views

import (
	"embed"
	"html/template"
	"io"

	"github.com/Masterminds/sprig"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(
	template.New("views").
		Funcs(sprig.FuncMap()).
		ParseFS(templateFS, "templates/*.html"),
)

// Component is anything that renders itself as markup
type Component interface {
	Render(w io.Writer) error
}

func execute(w io.Writer, name string, data any) error {
	return templates.ExecuteTemplate(w, name, data)
}

var (
	_ Component = (*Card)(nil)
	_ Component = (*Modal)(nil)
	_ Presenter = (*Modal)(nil)
)
