package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/dustin/go-humanize"
	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/bulkhead"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/author-analysis/gateway/internal"
)

var log = internal.GetLogger()

const (
	// maxStderrInError bounds how much of stderr is carried in returned errors.
	maxStderrInError = 512
	// waitDelay bounds how long Run waits for output pipes after the process is
	// killed, in case it left children holding them open.
	waitDelay = time.Second
)

var ErrTimeout = errors.New("external program timed out")

// Command describes one invocation of an external analysis program.
type Command struct {
	Name string
	Args []string
	Dir  string
	// Env is added to the gateway's own environment. Keys are upper-cased.
	Env map[string]string
}

type Result struct {
	RunID    uuid.UUID
	Stdout   []byte
	Stderr   []byte
	Duration time.Duration
}

// Runner runs external programs to completion.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

type Options struct {
	// MaxConcurrent is the number of programs allowed to run at once.
	MaxConcurrent uint
	// MaxWait is how long an invocation may wait for a free slot. Zero rejects
	// immediately when all slots are taken.
	MaxWait time.Duration
	// Timeout bounds a single invocation.
	Timeout time.Duration
	// Env is shared by every invocation; Command.Env wins on conflicts.
	Env map[string]string
}

var _ Runner = &ExecRunner{}

// ExecRunner spawns programs with os/exec behind a bulkhead that limits how many
// run at the same time.
type ExecRunner struct {
	timeout  time.Duration
	env      map[string]string
	bulkhead bulkhead.Bulkhead[*Result]
}

func NewExecRunner(opts Options) *ExecRunner {
	maxConcurrent := opts.MaxConcurrent
	if maxConcurrent == 0 {
		maxConcurrent = 1
	}

	bh := bulkhead.Builder[*Result](maxConcurrent).
		WithMaxWaitTime(opts.MaxWait).
		Build()

	return &ExecRunner{
		timeout:  opts.Timeout,
		env:      opts.Env,
		bulkhead: bh,
	}
}

// Run executes cmd and returns its output once it exits with status zero. A
// non-zero exit, a spawn failure, a timeout or a full bulkhead are errors.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	runID := uuid.New()
	logger := log.WithFields(logrus.Fields{
		"run_id":  runID.String(),
		"command": cmd.Name,
		"dir":     cmd.Dir,
	})

	result, err := failsafe.NewExecutor[*Result](r.bulkhead).
		WithContext(ctx).
		Get(func() (*Result, error) {
			return r.run(ctx, runID, cmd, logger)
		})
	if err != nil {
		// a caller that gave up while queued for a permit
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		logger.Errorf("external program failed: %v", err)
		return nil, fmt.Errorf("run %s: %w", cmd.Name, err)
	}

	return result, nil
}

func (r *ExecRunner) run(
	ctx context.Context,
	runID uuid.UUID,
	cmd Command,
	logger *logrus.Entry,
) (*Result, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	env, err := r.environ(cmd.Env)
	if err != nil {
		return nil, err
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = env
	c.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	logger.Debugf("starting external program with %d args", len(cmd.Args))
	start := time.Now()
	err = c.Run()
	duration := time.Since(start)

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w after %s", ErrTimeout, r.timeout)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, truncate(stderr.String(), maxStderrInError))
	}

	logger.Debugf(
		"external program finished in %s, stdout %s, stderr %s",
		duration,
		humanize.Bytes(uint64(stdout.Len())),
		humanize.Bytes(uint64(stderr.Len())),
	)

	return &Result{
		RunID:    runID,
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: duration,
	}, nil
}

// environ returns the process environment extended with the shared and the
// command-specific variables.
func (r *ExecRunner) environ(cmdEnv map[string]string) ([]string, error) {
	merged := map[string]string{}
	for _, src := range []map[string]string{cmdEnv, r.env} {
		if len(src) == 0 {
			continue
		}
		// keys already present are kept, so the command's own values win
		if err := mergo.Merge(&merged, src); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := os.Environ()
	for _, k := range keys {
		env = append(env, strings.ToUpper(k)+"="+merged[k])
	}
	return env, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
