package app

import (
	"github.com/author-analysis/gateway/config"
	"github.com/author-analysis/gateway/pkg/backend"
)

// AppState is a struct that holds the state of the application
// Use cmd.NewAppState to create a new instance
type AppState struct {
	Config      *config.Config
	Attribution *backend.Wrapper
	Profiling   *backend.Wrapper
}
