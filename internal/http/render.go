package http

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"finapp/internal/core"
	applog "finapp/internal/log"
	appweb "finapp/web"
)

var templateFuncs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"categories": func(kind core.Kind) []string {
		return kind.Categories()
	},
	"goalsField": func(goals string) goalsFieldView {
		return goalsFieldView{Goals: goals}
	},
}

func parseTemplates() (*template.Template, error) {
	t, err := template.New("").Funcs(templateFuncs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// render executes a named template into a buffer first so a failing template
// never leaves a half-written response.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	s.renderWith(w, r, NewHTMXResponse(), name, data)
}

// renderWith is render with extra response headers such as HX-Trigger.
func (s *Server) renderWith(w http.ResponseWriter, r *http.Request, b *HTMXResponseBuilder, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.structlog.LogError(r.Context(), "Template execution failed", err,
			applog.ComponentTemplate, applog.OpRender, applog.LogFields{"template": name})
		InternalServerError("Something went wrong rendering this page.").Write(w)
		return
	}
	b.BodyHTML(buf.String()).Write(w)
}
