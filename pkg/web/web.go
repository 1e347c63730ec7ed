package web

import (
	"embed"
	"net/http"
	"path"

	"github.com/author-analysis/gateway/config"
	"github.com/author-analysis/gateway/internal"
)

var log = internal.GetLogger()

//go:embed templates/*
var TemplatesFS embed.FS

// StaticHandler serves the front-end from cfg.PublicDir. Paths that do not name a
// file, or a directory with an index.html, get the 404 page.
func StaticHandler(cfg config.WebConfig) (http.Handler, error) {
	notFound, err := NotFoundHandler(cfg)
	if err != nil {
		return nil, err
	}

	root := http.Dir(cfg.PublicDir)
	fileServer := http.FileServer(root)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)
		if !exists(root, name) {
			notFound(w, r)
			return
		}
		fileServer.ServeHTTP(w, r)
	}), nil
}

func exists(root http.FileSystem, name string) bool {
	f, err := root.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false
	}
	if info.IsDir() {
		return exists(root, path.Join(name, "index.html"))
	}
	return true
}
