package attribution

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/author-analysis/gateway/config"
	"github.com/author-analysis/gateway/internal"
	"github.com/author-analysis/gateway/pkg/backend"
	"github.com/author-analysis/gateway/pkg/models"
	"github.com/author-analysis/gateway/pkg/runner"
)

var log = internal.GetLogger()

// KnownTextSeparator joins the known author's texts into a single argument.
const KnownTextSeparator = "\n\n"

var _ backend.Backend = &Attributor{}

// Attributor answers authorship verification requests by running the
// attribution program (GLAD) against a model for the request's language, genre
// and feature set.
type Attributor struct {
	runner   runner.Runner
	registry *Registry
	command  string
	args     []string
	workDir  string
	env      map[string]string
}

func NewAttributor(cfg config.AttributionConfig, r runner.Runner) (*Attributor, error) {
	registry, err := NewRegistry(cfg.WorkDir, cfg.ModelPathTemplate)
	if err != nil {
		return nil, err
	}

	return &Attributor{
		runner:   r,
		registry: registry,
		command:  cfg.Command,
		args:     cfg.Args,
		workDir:  cfg.WorkDir,
		env:      cfg.Env,
	}, nil
}

func (a *Attributor) Name() string {
	return "attribution"
}

// Validate reports whether request is an AttributionRequest: every field present
// with the right JSON type, and at least one known text.
func (a *Attributor) Validate(request any) bool {
	m, ok := backend.AsObject(request)
	if !ok {
		return false
	}

	genre := m["genre"]
	return backend.IsStringList(m["knownAuthorTexts"], 1) &&
		backend.IsString(m["unknownAuthorText"]) &&
		backend.IsString(m["language"]) &&
		(backend.IsString(genre) || backend.IsNumber(genre)) &&
		backend.IsInteger(m["featureSet"])
}

func (a *Attributor) Process(ctx context.Context, request any) (any, error) {
	req, err := decodeRequest(request)
	if err != nil {
		return nil, err
	}

	key := ModelKey{
		Language:   req.Language,
		Genre:      GenreString(req.Genre),
		FeatureSet: req.FeatureSet,
	}
	modelPath, ok := a.registry.Locate(key)
	if !ok {
		return nil, models.NewInvalidRequestError(
			fmt.Sprintf("no model for language %q, genre %q, feature set %d", key.Language, key.Genre, key.FeatureSet),
		)
	}

	res, err := a.runner.Run(ctx, runner.Command{
		Name: a.command,
		Args: a.buildArgs(req, key, modelPath),
		Dir:  a.workDir,
		Env:  a.env,
	})
	if err != nil {
		return nil, models.NewProcessingError("attribution program", err)
	}

	out, err := ParseOutput(res.Stdout)
	if err != nil {
		log.WithField("run_id", res.RunID.String()).Debugf("unparsable output: %q", res.Stdout)
		return nil, models.NewProcessingError("attribution output", err)
	}

	return out, nil
}

func (a *Attributor) buildArgs(req *models.AttributionRequest, key ModelKey, modelPath string) []string {
	args := make([]string, 0, len(a.args)+12)
	args = append(args, a.args...)
	return append(args,
		"--inputknown", JoinKnownTexts(req.KnownAuthorTexts),
		"--inputunknown", backend.Sanitize(req.UnknownAuthorText),
		"--language", key.Language,
		"--genre", key.Genre,
		"--featureset", strconv.Itoa(key.FeatureSet),
		"-m", modelPath,
	)
}

// JoinKnownTexts sanitizes each known text and joins them with
// KnownTextSeparator. The separator itself is not escaped.
func JoinKnownTexts(texts []string) string {
	sanitized := make([]string, len(texts))
	for i, text := range texts {
		sanitized[i] = backend.Sanitize(text)
	}
	return strings.Join(sanitized, KnownTextSeparator)
}

func decodeRequest(request any) (*models.AttributionRequest, error) {
	m, ok := backend.AsObject(request)
	if !ok {
		return nil, models.ErrInvalidInput
	}

	var req models.AttributionRequest
	if err := backend.Decode(m, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	return &req, nil
}
