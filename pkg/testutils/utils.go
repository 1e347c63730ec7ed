package testutils

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/author-analysis/gateway/pkg/runner"
)

var _ runner.Runner = &FakeRunner{}

// FakeRunner records commands instead of running them and replies with Stdout
// or Err.
type FakeRunner struct {
	mu       sync.Mutex
	commands []runner.Command

	Stdout string
	Err    error
}

func (f *FakeRunner) Run(_ context.Context, cmd runner.Command) (*runner.Result, error) {
	f.mu.Lock()
	f.commands = append(f.commands, cmd)
	f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}
	return &runner.Result{
		RunID:    uuid.New(),
		Stdout:   []byte(f.Stdout),
		Duration: time.Millisecond,
	}, nil
}

// Commands returns the commands run so far.
func (f *FakeRunner) Commands() []runner.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]runner.Command(nil), f.commands...)
}

// Calls returns how many commands were run.
func (f *FakeRunner) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.commands)
}

// MakeModelDirs creates a model directory for each relative path under root.
func MakeModelDirs(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if err := os.MkdirAll(filepath.Join(root, p), 0o755); err != nil {
			t.Fatalf("unable to create model dir %s: %v", p, err)
		}
	}
}

// AuthorText returns a random multi-sentence text with embedded quotes and
// newlines, the characters the gateway escapes.
func AuthorText() string {
	return gofakeit.Sentence(8) + "\n\"" + gofakeit.Sentence(6) + "\"\r\n" + gofakeit.Paragraph(1, 3, 10, "\n")
}
