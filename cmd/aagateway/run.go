package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/author-analysis/gateway/config"
	"github.com/author-analysis/gateway/pkg/app"
	"github.com/author-analysis/gateway/pkg/attribution"
	"github.com/author-analysis/gateway/pkg/auth"
	"github.com/author-analysis/gateway/pkg/backend"
	"github.com/author-analysis/gateway/pkg/observability"
	"github.com/author-analysis/gateway/pkg/profiling"
	"github.com/author-analysis/gateway/pkg/runner"
	"github.com/author-analysis/gateway/pkg/server"
)

const shutdownTimeout = 30 * time.Second

// run is the entrypoint for the gateway server
func run(ctx context.Context) error {
	if showVersion {
		fmt.Println(config.VersionString)
		return nil
	}

	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Errorf("Error configuring the gateway: %s", err)
		return err
	}

	if done, err := handleCLIOptions(cfg); done || err != nil {
		return err
	}

	config.SetLogLevel(cfg)
	log.Infof("Starting aagateway version %s", config.VersionString)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Errorf("Error shutting down tracing: %v", err)
		}
	}()

	appState, err := NewAppState(cfg)
	if err != nil {
		log.Errorf("Error initializing backends: %s", err)
		return err
	}

	srv, err := server.Create(appState)
	if err != nil {
		return err
	}

	return serve(ctx, srv)
}

// NewAppState creates an AppState from the config: one process runner shared by
// both backends, so the admission limit covers every spawned program.
func NewAppState(cfg *config.Config) (*app.AppState, error) {
	r := runner.NewExecRunner(runner.Options{
		MaxConcurrent: cfg.Backend.MaxConcurrent,
		MaxWait:       cfg.Backend.MaxWait,
		Timeout:       cfg.Backend.Timeout,
		Env:           cfg.Backend.Env,
	})

	attributor, err := attribution.NewAttributor(cfg.Attribution, r)
	if err != nil {
		return nil, err
	}
	profiler := profiling.NewProfiler(cfg.Profiling, r)

	log.Infof(
		"Backends ready: %s in %q, %s in %q",
		attributor.Name(), cfg.Attribution.WorkDir,
		profiler.Name(), cfg.Profiling.WorkDir,
	)

	return &app.AppState{
		Config:      cfg,
		Attribution: backend.NewWrapper(attributor),
		Profiling:   backend.NewWrapper(profiler),
	}, nil
}

// handleCLIOptions handles CLI options that don't require the server to run
func handleCLIOptions(cfg *config.Config) (bool, error) {
	if dumpConfig {
		out, err := config.Dump(cfg)
		if err != nil {
			return true, err
		}
		fmt.Print(string(out))
		return true, nil
	}
	if generateKey {
		token, err := auth.GenerateJWT(cfg)
		if err != nil {
			return true, err
		}
		fmt.Println(token)
		return true, nil
	}
	return false, nil
}

// serve runs srv until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("Listening on: %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Error during shutdown: %v", err)
		return err
	}
	return nil
}
