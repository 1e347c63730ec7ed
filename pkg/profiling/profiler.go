package profiling

import (
	"context"
	"fmt"

	"github.com/author-analysis/gateway/config"
	"github.com/author-analysis/gateway/internal"
	"github.com/author-analysis/gateway/pkg/backend"
	"github.com/author-analysis/gateway/pkg/models"
	"github.com/author-analysis/gateway/pkg/runner"
)

var log = internal.GetLogger()

var _ backend.Backend = &Profiler{}

// Profiler estimates the age group and gender of a text's author by running
// the profiling program.
type Profiler struct {
	runner  runner.Runner
	command string
	args    []string
	workDir string
	env     map[string]string
}

func NewProfiler(cfg config.ProfilingConfig, r runner.Runner) *Profiler {
	return &Profiler{
		runner:  r,
		command: cfg.Command,
		args:    cfg.Args,
		workDir: cfg.WorkDir,
		env:     cfg.Env,
	}
}

func (p *Profiler) Name() string {
	return "profiling"
}

// Validate accepts any object with string "text" and "language" fields. Other
// keys are ignored.
func (p *Profiler) Validate(request any) bool {
	m, ok := backend.AsObject(request)
	if !ok {
		return false
	}
	return backend.IsString(m["text"]) && backend.IsString(m["language"])
}

func (p *Profiler) Process(ctx context.Context, request any) (any, error) {
	m, ok := backend.AsObject(request)
	if !ok {
		return nil, models.ErrInvalidInput
	}

	var req models.ProfilingRequest
	if err := backend.Decode(m, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	args := make([]string, 0, len(p.args)+2)
	args = append(args, p.args...)
	args = append(args, req.Language, backend.Sanitize(req.Text))

	res, err := p.runner.Run(ctx, runner.Command{
		Name: p.command,
		Args: args,
		Dir:  p.workDir,
		Env:  p.env,
	})
	if err != nil {
		return nil, models.NewProcessingError("profiling program", err)
	}

	out, err := ParseOutput(res.Stdout)
	if err != nil {
		log.WithField("run_id", res.RunID.String()).Debugf("unparsable output: %q", res.Stdout)
		return nil, models.NewProcessingError("profiling output", err)
	}

	return out, nil
}
