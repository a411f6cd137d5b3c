package ranger

import (
	"bytes"
	"net/http"
	"path"

	"github.com/xy-planning-network/personachat/http/template"
	"github.com/xy-planning-network/personachat/logger"
)

// MaintModeHandler responds to every request with 503 and the maintenance page,
// asking clients to retry in ten minutes.
// If the page cannot render, the body is left empty.
func MaintModeHandler(p template.Parser, l logger.Logger, contact string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "600")

		tmpl, err := p.Parse(template.MaintenanceTmpl)
		if err != nil {
			l.Error("parsing maintenance page", &logger.LogContext{Error: err, Request: r})
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		b := new(bytes.Buffer)
		data := struct{ Contact string }{Contact: contact}
		if err := tmpl.ExecuteTemplate(b, path.Base(template.MaintenanceTmpl), data); err != nil {
			l.Error("rendering maintenance page", &logger.LogContext{Error: err, Request: r})
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		if _, err := b.WriteTo(w); err != nil {
			l.Error("writing maintenance page", &logger.LogContext{Error: err, Request: r})
		}
	}
}
