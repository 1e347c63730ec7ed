package attribution

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/author-analysis/gateway/internal"
)

// ModelKey identifies the model an attribution needs.
type ModelKey struct {
	Language   string
	Genre      string
	FeatureSet int
}

// Registry finds model directories on disk. Model paths are rendered from a
// text/template so the layout the analysis program expects can be matched
// exactly.
type Registry struct {
	root         string
	pathTemplate string
}

// NewRegistry returns a Registry resolving relative model paths against root.
func NewRegistry(root, pathTemplate string) (*Registry, error) {
	r := &Registry{root: root, pathTemplate: pathTemplate}
	if _, err := r.Path(ModelKey{Language: "EN", Genre: "novel", FeatureSet: 1}); err != nil {
		return nil, fmt.Errorf("invalid model path template: %w", err)
	}
	return r, nil
}

// Path renders the model path for key, as passed to the analysis program.
func (r *Registry) Path(key ModelKey) (string, error) {
	return internal.RenderTemplate("model_path", r.pathTemplate, key)
}

// Locate returns the model path for key if the directory exists.
func (r *Registry) Locate(key ModelKey) (string, bool) {
	if !isPathSegment(key.Language) || !isPathSegment(key.Genre) {
		return "", false
	}

	path, err := r.Path(key)
	if err != nil {
		log.Errorf("unable to render model path: %v", err)
		return "", false
	}

	onDisk := path
	if !filepath.IsAbs(path) {
		onDisk = filepath.Join(r.root, path)
	}

	info, err := os.Stat(onDisk)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return path, true
}

// GenreString renders a genre as it appears in model paths and arguments. Numeric
// genres lose any trailing ".0".
func GenreString(genre any) string {
	switch g := genre.(type) {
	case string:
		return g
	case float64:
		return strconv.FormatFloat(g, 'f', -1, 64)
	case int:
		return strconv.Itoa(g)
	default:
		return fmt.Sprint(g)
	}
}

// isPathSegment rejects identifiers that would move the model lookup outside
// the model layout.
func isPathSegment(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`)
}
