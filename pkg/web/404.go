package web

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"os"

	"github.com/author-analysis/gateway/config"
)

// NotFoundHandler renders the 404 page: the file at cfg.NotFoundPage when set,
// otherwise the embedded page. The page is loaded once.
func NotFoundHandler(cfg config.WebConfig) (http.HandlerFunc, error) {
	var page []byte
	if cfg.NotFoundPage != "" {
		b, err := os.ReadFile(cfg.NotFoundPage)
		if err != nil {
			return nil, fmt.Errorf("unable to read 404 page: %w", err)
		}
		page = b
	}

	tmpl, err := template.ParseFS(TemplatesFS, "templates/404.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		if page != nil {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write(page)
			return
		}

		var buf bytes.Buffer
		if err := tmpl.ExecuteTemplate(&buf, "404.html", r.URL.Path); err != nil {
			log.Errorf("Failed to execute template: %s", err)
			http.Error(w, "Failed to execute template", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNotFound)
		_, _ = buf.WriteTo(w)
	}, nil
}
