package http

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageNames = []string{
	"index.html",
	"about.html",
	"contact.html",
	"newsletters.html",
	"newsletter_detail.html",
}

var funcs = template.FuncMap{
	// Newsletter bodies are written by the publishing process and rendered as is.
	"trusted": func(s string) template.HTML {
		return template.HTML(s)
	},
	"date": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	"year": func() int {
		return time.Now().Year()
	},
}

type page struct {
	tmpl *template.Template
}

func parsePages() (map[string]*page, error) {
	pages := make(map[string]*page, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("base.html").Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse template %s", name)
		}
		pages[name] = &page{tmpl: tmpl}
	}

	return pages, nil
}

// render executes the page into a buffer first so a template error can still
// become a 500 response.
func (s *Server) render(w http.ResponseWriter, status int, name string, data interface{}) error {
	p, ok := s.pages[name]
	if !ok {
		return errors.Errorf("unknown page %s", name)
	}

	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return errors.Wrapf(err, "failed to render %s", name)
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func (s *Server) pageHandler(name string) appHandler {
	data := map[string]interface{}{}
	switch name {
	case "index.html":
		data["IsHome"] = true
	case "about.html":
		data["IsAbout"] = true
	case "contact.html":
		data["IsContact"] = true
	}

	return func(w http.ResponseWriter, r *http.Request) error {
		return s.render(w, http.StatusOK, name, data)
	}
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
